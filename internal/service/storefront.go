package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/staffpicks/staffpicks-server/internal/domain"
	domainerrors "github.com/staffpicks/staffpicks-server/internal/errors"
	"github.com/staffpicks/staffpicks-server/internal/id"
	"github.com/staffpicks/staffpicks-server/internal/scope"
	"github.com/staffpicks/staffpicks-server/internal/store"
	"github.com/staffpicks/staffpicks-server/internal/util"
	"github.com/staffpicks/staffpicks-server/internal/validation"
)

// StoreService manages bookstore locations within a tenant.
type StoreService struct {
	store    *store.Store
	validate *validation.Validator
	logger   *slog.Logger
}

// NewStoreService creates a new store service.
func NewStoreService(st *store.Store, validate *validation.Validator, logger *slog.Logger) *StoreService {
	return &StoreService{store: st, validate: validate, logger: logger}
}

// CreateStoreRequest contains the data for a new store location.
// Code is optional; when empty it is derived from the name.
type CreateStoreRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=120"`
	Code    string `json:"code,omitempty" validate:"omitempty,max=60"`
	Address string `json:"address,omitempty" validate:"omitempty,max=500"`
	City    string `json:"city,omitempty" validate:"omitempty,max=120"`
	Region  string `json:"region,omitempty" validate:"omitempty,max=120"`
	Country string `json:"country,omitempty" validate:"omitempty,max=120"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=40"`
}

// UpdateStoreRequest contains editable store fields. The code is part of
// URLs and reports, so it stays fixed after creation.
type UpdateStoreRequest struct {
	Name    string             `json:"name" validate:"required,min=2,max=120"`
	Status  domain.StoreStatus `json:"status,omitempty"`
	Address string             `json:"address,omitempty" validate:"omitempty,max=500"`
	City    string             `json:"city,omitempty" validate:"omitempty,max=120"`
	Region  string             `json:"region,omitempty" validate:"omitempty,max=120"`
	Country string             `json:"country,omitempty" validate:"omitempty,max=120"`
	Phone   string             `json:"phone,omitempty" validate:"omitempty,max=40"`
}

// ListStores returns the stores of the caller's company. Platform
// admins read across every tenant, or one tenant when companyID narrows
// the scan; for tenant callers the filter is ignored.
func (s *StoreService) ListStores(ctx context.Context, access scope.Access, companyID string) ([]*domain.Store, error) {
	var (
		stores []*domain.Store
		err    error
	)
	if company := scopeCompany(access, companyID); company == "" {
		stores, err = s.store.ListAllStores(ctx)
	} else {
		stores, err = s.store.ListStoresByCompany(ctx, company)
	}
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

// GetStore returns one store. Cross-tenant probes answer not-found, the
// same as a missing ID.
func (s *StoreService) GetStore(ctx context.Context, access scope.Access, storeID string) (*domain.Store, error) {
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
	return storefront, nil
}

// CreateStore adds a location to the caller's company. A colliding code
// gets a numeric suffix rather than an error.
func (s *StoreService) CreateStore(ctx context.Context, access scope.Access, req CreateStoreRequest) (*domain.Store, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	if !access.CanWriteStore(access.CompanyID) || access.CompanyID == "" {
		return nil, domainerrors.Forbidden("not allowed to create stores")
	}

	base := util.Slugify(req.Code)
	if base == "" {
		base = util.Slugify(req.Name)
	}
	if base == "" {
		return nil, domainerrors.Validation("store name yields an empty code")
	}
	code, err := util.UniqueSlug(base, func(candidate string) (bool, error) {
		return s.store.StoreCodeExists(ctx, access.CompanyID, candidate)
	})
	if err != nil {
		return nil, fmt.Errorf("resolve store code: %w", err)
	}

	storefront := domain.NewStore(access.CompanyID, req.Name, code)
	storefront.ID = id.MustGenerate("sto")
	storefront.Address = req.Address
	storefront.City = req.City
	storefront.Region = req.Region
	storefront.Country = req.Country
	storefront.Phone = req.Phone

	if err := s.store.CreateStore(ctx, storefront); err != nil {
		if errors.Is(err, store.ErrStoreCodeExists) {
			return nil, domainerrors.AlreadyExists("store code already in use")
		}
		return nil, fmt.Errorf("create store: %w", err)
	}

	s.logger.Info("store created", "storeId", storefront.ID, "companyId", access.CompanyID, "code", code)
	return storefront, nil
}

// UpdateStore applies changes to a store location.
func (s *StoreService) UpdateStore(ctx context.Context, access scope.Access, storeID string, req UpdateStoreRequest) (*domain.Store, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	storefront, err := s.GetStore(ctx, access, storeID)
	if err != nil {
		return nil, err
	}
	if !access.CanWriteStore(storefront.CompanyID) {
		return nil, domainerrors.Forbidden("not allowed to edit stores")
	}
	if req.Status != "" && !req.Status.Valid() {
		return nil, domainerrors.Validationf("invalid store status %q", req.Status)
	}

	storefront.Name = req.Name
	if req.Status != "" {
		storefront.Status = req.Status
	}
	storefront.Address = req.Address
	storefront.City = req.City
	storefront.Region = req.Region
	storefront.Country = req.Country
	storefront.Phone = req.Phone

	if err := s.store.UpdateStore(ctx, storefront); err != nil {
		return nil, fmt.Errorf("update store: %w", err)
	}

	s.logger.Info("store updated", "storeId", storefront.ID, "by", access.UserID)
	return storefront, nil
}

// DeleteStore removes a store. Deletion is refused while any non-deleted
// user is still assigned to the store; staff must be moved or removed
// first.
func (s *StoreService) DeleteStore(ctx context.Context, access scope.Access, storeID string) error {
	storefront, err := s.GetStore(ctx, access, storeID)
	if err != nil {
		return err
	}
	if !access.CanWriteStore(storefront.CompanyID) {
		return domainerrors.Forbidden("not allowed to delete stores")
	}

	if err := s.store.DeleteStore(ctx, storeID); err != nil {
		if errors.Is(err, store.ErrStoreHasUsers) {
			return domainerrors.Validation("store still has assigned staff; reassign or remove them first")
		}
		return fmt.Errorf("delete store: %w", err)
	}

	s.logger.Info("store deleted", "storeId", storeID, "by", access.UserID)
	return nil
}

// UnassignUser detaches a user from a store, typically ahead of deleting
// the store. The user record survives with no store assignment.
func (s *StoreService) UnassignUser(ctx context.Context, access scope.Access, storeID, userID string) error {
	storefront, err := s.GetStore(ctx, access, storeID)
	if err != nil {
		return err
	}
	if !access.CanWriteStore(storefront.CompanyID) {
		return domainerrors.Forbidden("not allowed to manage store staff")
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return fmt.Errorf("get user: %w", err)
	}
	if !access.CanSeeUser(user) || user.StoreID != storeID {
		return domainerrors.NotFound("user not assigned to this store")
	}
	if !access.CanManageUser(user) {
		return domainerrors.Forbidden("not allowed to manage this user")
	}

	user.StoreID = ""
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("unassign user: %w", err)
	}

	s.logger.Info("user unassigned from store", "storeId", storeID, "userId", userID, "by", access.UserID)
	return nil
}
