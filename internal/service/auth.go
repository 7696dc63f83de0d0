package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/staffpicks/staffpicks-server/internal/auth"
	"github.com/staffpicks/staffpicks-server/internal/domain"
	domainerrors "github.com/staffpicks/staffpicks-server/internal/errors"
	"github.com/staffpicks/staffpicks-server/internal/id"
	"github.com/staffpicks/staffpicks-server/internal/scope"
	"github.com/staffpicks/staffpicks-server/internal/store"
	"github.com/staffpicks/staffpicks-server/internal/util"
	"github.com/staffpicks/staffpicks-server/internal/validation"
)

// Where the dashboard sends users after each flow.
const (
	loginRedirectURL  = "/dashboard"
	signupRedirectURL = "/dashboard/settings/onboarding"
)

// AuthService handles login, tenant signup, and session verification.
type AuthService struct {
	store            *store.Store
	sessions         *auth.SessionService
	validate         *validation.Validator
	logger           *slog.Logger
	maxLoginAttempts int
	lockoutDuration  time.Duration
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	st *store.Store,
	sessions *auth.SessionService,
	validate *validation.Validator,
	maxLoginAttempts int,
	lockoutDuration time.Duration,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:            st,
		sessions:         sessions,
		validate:         validate,
		logger:           logger,
		maxLoginAttempts: maxLoginAttempts,
		lockoutDuration:  lockoutDuration,
	}
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IPAddress string `json:"-"` // Extracted from request by handler
}

// AuthResponse carries the authenticated user and the session token the
// handler turns into a cookie.
type AuthResponse struct {
	User        *domain.User `json:"user"`
	RedirectURL string       `json:"redirectUrl"`
	Token       string       `json:"-"`
}

// SignupRequest contains the tenant bootstrap data.
type SignupRequest struct {
	CompanyName     string `json:"companyName" validate:"required,min=2,max=120"`
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,strongpw"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	IPAddress       string `json:"-"`
}

// SignupResponse carries the new tenant and its first admin.
type SignupResponse struct {
	User        *domain.User    `json:"user"`
	Company     *domain.Company `json:"company"`
	RedirectURL string          `json:"redirectUrl"`
	Token       string          `json:"-"`
}

// Login authenticates a user against their stored Argon2id hash.
//
// Lockout: the check runs before password verification, so a locked
// account answers 423 even to the correct password. Failed attempts
// count toward the lockout threshold; a success resets the counter.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Don't leak whether email exists
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user.IsLocked() {
		return nil, domainerrors.Locked("account temporarily locked, try again later")
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		user.RecordFailedLogin(s.maxLoginAttempts, s.lockoutDuration)
		if err := s.store.UpdateUser(ctx, user); err != nil {
			s.logger.Warn("failed to record login attempt", "userId", user.ID, "error", err)
		}
		if user.IsLocked() {
			return nil, domainerrors.Locked("account temporarily locked, try again later")
		}
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	if !user.IsActive() {
		return nil, domainerrors.Forbidden("account is not active")
	}

	user.RecordSuccessfulLogin(req.IPAddress)
	if err := s.store.UpdateUser(ctx, user); err != nil {
		// Log but don't fail login
		s.logger.Warn("failed to update last login", "userId", user.ID, "error", err)
	}

	token, err := s.sessions.GenerateSessionToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	s.logger.Info("user logged in", "userId", user.ID, "companyId", user.CompanyID)

	return &AuthResponse{
		User:        redactUser(user),
		RedirectURL: loginRedirectURL,
		Token:       token,
	}, nil
}

// Signup bootstraps a new tenant: a trial company, its default store, and
// the first companyAdmin user, all in one request.
//
// Badger gives no cross-entity transaction, so partial failures are
// unwound with compensating deletes rather than left as orphans.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	if req.Password != req.ConfirmPassword {
		return nil, domainerrors.Validation("passwords do not match")
	}

	// Fail fast on a taken email before creating anything.
	if _, err := s.store.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, domainerrors.AlreadyExists("email already in use")
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	slug, err := util.UniqueSlug(util.Slugify(req.CompanyName), func(candidate string) (bool, error) {
		return s.store.CompanySlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, fmt.Errorf("resolve company slug: %w", err)
	}

	company := domain.NewTrialCompany(req.CompanyName, slug)
	company.ID = id.MustGenerate("cmp")
	company.Email = req.Email
	if err := s.store.CreateCompany(ctx, company); err != nil {
		if errors.Is(err, store.ErrCompanySlugExists) {
			return nil, domainerrors.AlreadyExists("company name already in use")
		}
		return nil, fmt.Errorf("create company: %w", err)
	}

	storefront := domain.NewStore(company.ID, req.CompanyName, domain.DefaultStoreCode)
	storefront.ID = id.MustGenerate("sto")
	if err := s.store.CreateStore(ctx, storefront); err != nil {
		s.compensate(ctx, company.ID, "")
		return nil, fmt.Errorf("create default store: %w", err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.compensate(ctx, company.ID, storefront.ID)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		CompanyID:    company.ID,
		StoreID:      storefront.ID,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         domain.RoleCompanyAdmin,
		Status:       domain.UserStatusActive,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	user.ID = id.MustGenerate("usr")
	if err := s.store.CreateUser(ctx, user); err != nil {
		s.compensate(ctx, company.ID, storefront.ID)
		if errors.Is(err, store.ErrEmailExists) {
			return nil, domainerrors.AlreadyExists("email already in use")
		}
		return nil, fmt.Errorf("create admin user: %w", err)
	}

	token, err := s.sessions.GenerateSessionToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	s.logger.Info("tenant signed up",
		"companyId", company.ID,
		"slug", company.Slug,
		"userId", user.ID,
		"ip", req.IPAddress,
	)

	return &SignupResponse{
		User:        redactUser(user),
		Company:     company,
		RedirectURL: signupRedirectURL,
		Token:       token,
	}, nil
}

// compensate unwinds a partially completed signup.
func (s *AuthService) compensate(ctx context.Context, companyID, storeID string) {
	if storeID != "" {
		if err := s.store.Stores.Delete(ctx, storeID); err != nil {
			s.logger.Error("signup compensation failed to remove store", "storeId", storeID, "error", err)
		}
	}
	if err := s.store.DeleteCompany(ctx, companyID); err != nil {
		s.logger.Error("signup compensation failed to remove company", "companyId", companyID, "error", err)
	}
}

// VerifySession decrypts the session token and revalidates the user on
// every request. Sessions of missing, soft-deleted, or non-active users
// are rejected so status changes take effect immediately.
func (s *AuthService) VerifySession(ctx context.Context, tokenString string) (*domain.User, scope.Access, error) {
	claims, err := s.sessions.VerifySessionToken(tokenString)
	if err != nil {
		return nil, scope.Access{}, domainerrors.Unauthorized("invalid or expired session")
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, scope.Access{}, domainerrors.Unauthorized("session user no longer exists")
		}
		return nil, scope.Access{}, fmt.Errorf("get session user: %w", err)
	}

	if !user.IsActive() {
		return nil, scope.Access{}, domainerrors.Unauthorized("account is not active")
	}

	return user, scope.ForUser(user), nil
}

// SessionDuration exposes the configured cookie lifetime to handlers.
func (s *AuthService) SessionDuration() time.Duration {
	return s.sessions.Duration()
}
