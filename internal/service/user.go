package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/staffpicks/staffpicks-server/internal/auth"
	"github.com/staffpicks/staffpicks-server/internal/domain"
	domainerrors "github.com/staffpicks/staffpicks-server/internal/errors"
	"github.com/staffpicks/staffpicks-server/internal/id"
	"github.com/staffpicks/staffpicks-server/internal/scope"
	"github.com/staffpicks/staffpicks-server/internal/store"
	"github.com/staffpicks/staffpicks-server/internal/validation"
)

// UserService manages staff accounts: creation, edits, the status
// machine, and soft deletion.
type UserService struct {
	store    *store.Store
	validate *validation.Validator
	logger   *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(st *store.Store, validate *validation.Validator, logger *slog.Logger) *UserService {
	return &UserService{store: st, validate: validate, logger: logger}
}

// CreateUserRequest contains the data for a new staff account.
type CreateUserRequest struct {
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,strongpw"`
	Role      domain.Role `json:"role" validate:"required"`
	StoreID   string      `json:"storeId,omitempty"`
	FirstName string      `json:"firstName" validate:"required"`
	LastName  string      `json:"lastName" validate:"required"`
	Sections  []string    `json:"sections,omitempty"`
}

// UpdateUserRequest contains editable staff account fields. Email and
// password are not managed here; users change those through their own
// profile.
type UpdateUserRequest struct {
	FirstName string      `json:"firstName" validate:"required"`
	LastName  string      `json:"lastName" validate:"required"`
	Role      domain.Role `json:"role,omitempty"`
	StoreID   string      `json:"storeId,omitempty"`
	Sections  []string    `json:"sections,omitempty"`
}

// Status change actions accepted by ChangeStatus.
const (
	StatusActionActivate   = "activate"
	StatusActionDeactivate = "deactivate"
	StatusActionSuspend    = "suspend"
)

// statusActionTargets maps an action to the status it moves the account to.
var statusActionTargets = map[string]domain.UserStatus{
	StatusActionActivate:   domain.UserStatusActive,
	StatusActionDeactivate: domain.UserStatusInactive,
	StatusActionSuspend:    domain.UserStatusSuspended,
}

// ListUsers returns the staff accounts the caller is allowed to see.
// Platform admins read across every tenant, or one tenant when
// companyID narrows the scan; for tenant callers the filter is ignored.
func (s *UserService) ListUsers(ctx context.Context, access scope.Access, companyID string) ([]*domain.User, error) {
	var (
		users []*domain.User
		err   error
	)
	if company := scopeCompany(access, companyID); company == "" {
		users, err = s.store.ListAllUsers(ctx)
	} else {
		users, err = s.store.ListUsersByCompany(ctx, company)
	}
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	visible := make([]*domain.User, 0, len(users))
	for _, u := range users {
		if !u.IsDeleted() && access.CanSeeUser(u) {
			visible = append(visible, u)
		}
	}
	return redactUsers(visible), nil
}

// GetUser returns one staff account. Records outside the caller's scope
// answer not-found, the same as a missing ID.
func (s *UserService) GetUser(ctx context.Context, access scope.Access, userID string) (*domain.User, error) {
	user, err := s.getVisibleUser(ctx, access, userID)
	if err != nil {
		return nil, err
	}
	return redactUser(user), nil
}

// getVisibleUser fetches a user and applies the visibility collapse.
// Returns the unredacted record for internal mutation.
func (s *UserService) getVisibleUser(ctx context.Context, access scope.Access, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !access.CanSeeUser(user) {
		return nil, domainerrors.NotFound("user not found")
	}
	return user, nil
}

// CreateUser adds a staff account to the caller's company.
func (s *UserService) CreateUser(ctx context.Context, access scope.Access, req CreateUserRequest) (*domain.User, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	if !req.Role.Valid() {
		return nil, domainerrors.Validationf("invalid role %q", req.Role)
	}
	if !access.CanCreateUserWithRole(req.Role) {
		return nil, domainerrors.Forbidden("not allowed to create users with this role")
	}
	if access.CompanyID == "" {
		return nil, domainerrors.Validation("caller has no company context")
	}

	storeID := req.StoreID
	if access.Role == domain.RoleStoreAdmin {
		// storeAdmins hire only into their own store.
		storeID = access.StoreID
	}
	if req.Role.RequiresStore() {
		if storeID == "" {
			return nil, domainerrors.Validationf("role %q requires a store assignment", req.Role)
		}
		storefront, err := s.store.GetStore(ctx, storeID)
		if err != nil {
			if errors.Is(err, store.ErrStoreNotFound) {
				return nil, domainerrors.NotFound("store not found")
			}
			return nil, fmt.Errorf("get store: %w", err)
		}
		if !access.CanSeeStore(storefront) {
			return nil, domainerrors.NotFound("store not found")
		}
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		CompanyID:    access.CompanyID,
		StoreID:      storeID,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         req.Role,
		Status:       domain.UserStatusActive,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Sections:     req.Sections,
	}
	user.ID = id.MustGenerate("usr")

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, domainerrors.AlreadyExists("email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user created", "userId", user.ID, "role", user.Role, "by", access.UserID)
	return redactUser(user), nil
}

// UpdateUser edits a staff account the caller manages.
func (s *UserService) UpdateUser(ctx context.Context, access scope.Access, userID string, req UpdateUserRequest) (*domain.User, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.getVisibleUser(ctx, access, userID)
	if err != nil {
		return nil, err
	}
	if !access.CanManageUser(user) {
		return nil, domainerrors.Forbidden("not allowed to manage this user")
	}

	if req.Role != "" && req.Role != user.Role {
		if !req.Role.Valid() {
			return nil, domainerrors.Validationf("invalid role %q", req.Role)
		}
		// Changing someone's role needs the same privilege as hiring at
		// the new role.
		if !access.CanCreateUserWithRole(req.Role) {
			return nil, domainerrors.Forbidden("not allowed to assign this role")
		}
		user.Role = req.Role
	}

	if req.StoreID != "" && req.StoreID != user.StoreID {
		storefront, err := s.store.GetStore(ctx, req.StoreID)
		if err != nil {
			if errors.Is(err, store.ErrStoreNotFound) {
				return nil, domainerrors.NotFound("store not found")
			}
			return nil, fmt.Errorf("get store: %w", err)
		}
		if !access.CanSeeStore(storefront) {
			return nil, domainerrors.NotFound("store not found")
		}
		user.StoreID = req.StoreID
	}
	if user.Role.RequiresStore() && user.StoreID == "" {
		return nil, domainerrors.Validationf("role %q requires a store assignment", user.Role)
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Sections = req.Sections

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("user updated", "userId", user.ID, "by", access.UserID)
	return redactUser(user), nil
}

// ChangeStatus runs the account status machine: activate, deactivate, or
// suspend. Self-targeted changes are always refused, and illegal
// transitions (reviving a suspended account to inactive, repeating the
// current status) fail validation.
func (s *UserService) ChangeStatus(ctx context.Context, access scope.Access, userID, action string) (*domain.User, error) {
	target, ok := statusActionTargets[action]
	if !ok {
		return nil, domainerrors.Validationf("unknown status action %q", action)
	}

	user, err := s.getVisibleUser(ctx, access, userID)
	if err != nil {
		return nil, err
	}
	if user.ID == access.UserID {
		return nil, domainerrors.Forbidden("cannot change your own status")
	}
	if !access.CanManageUser(user) {
		return nil, domainerrors.Forbidden("not allowed to manage this user")
	}
	if !user.Status.CanTransitionTo(target) {
		return nil, domainerrors.Validationf("cannot move account from %q to %q", user.Status, target)
	}

	user.Status = target
	user.Touch()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user status: %w", err)
	}

	s.logger.Info("user status changed", "userId", user.ID, "status", target, "by", access.UserID)
	return redactUser(user), nil
}

// DeleteUser soft-deletes a staff account. The record survives for audit
// and its email stays reserved; the account disappears from every read
// surface and its sessions stop verifying.
func (s *UserService) DeleteUser(ctx context.Context, access scope.Access, userID string) error {
	user, err := s.getVisibleUser(ctx, access, userID)
	if err != nil {
		return err
	}
	if user.ID == access.UserID {
		return domainerrors.Forbidden("cannot delete yourself")
	}
	if !access.CanSoftDeleteUser(user) {
		return domainerrors.Forbidden("not allowed to delete this user")
	}

	if err := s.store.SoftDeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info("user deleted", "userId", userID, "by", access.UserID)
	return nil
}
