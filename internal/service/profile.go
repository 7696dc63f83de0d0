package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/staffpicks/staffpicks-server/internal/auth"
	"github.com/staffpicks/staffpicks-server/internal/domain"
	domainerrors "github.com/staffpicks/staffpicks-server/internal/errors"
	"github.com/staffpicks/staffpicks-server/internal/scope"
	"github.com/staffpicks/staffpicks-server/internal/store"
	"github.com/staffpicks/staffpicks-server/internal/validation"
)

// ProfileService is the self-service surface: users edit their own name,
// avatar, and password here, regardless of who manages their account.
type ProfileService struct {
	store    *store.Store
	validate *validation.Validator
	logger   *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(st *store.Store, validate *validation.Validator, logger *slog.Logger) *ProfileService {
	return &ProfileService{store: st, validate: validate, logger: logger}
}

// UpdateProfileRequest contains the fields a user may change on their own
// account. A password change requires the current password; role, store,
// and status stay under admin control.
type UpdateProfileRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	DisplayName string `json:"displayName,omitempty" validate:"omitempty,max=120"`
	AvatarURL   string `json:"avatarUrl,omitempty" validate:"omitempty,url"`

	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword,omitempty" validate:"omitempty,strongpw"`
}

// GetProfile returns the caller's own account.
func (s *ProfileService) GetProfile(ctx context.Context, access scope.Access) (*domain.User, error) {
	user, err := s.self(ctx, access)
	if err != nil {
		return nil, err
	}
	return redactUser(user), nil
}

// self fetches the caller's record. A session whose user has vanished
// since the middleware check counts as unauthorized, not missing.
func (s *ProfileService) self(ctx context.Context, access scope.Access) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, access.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.Unauthorized("account no longer exists")
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

// UpdateProfile applies self-service changes to the caller's account.
func (s *ProfileService) UpdateProfile(ctx context.Context, access scope.Access, req UpdateProfileRequest) (*domain.User, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.self(ctx, access)
	if err != nil {
		return nil, err
	}

	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			return nil, domainerrors.Validation("current password is required to set a new one")
		}
		valid, err := auth.VerifyPassword(user.PasswordHash, req.CurrentPassword)
		if err != nil {
			return nil, fmt.Errorf("verify password: %w", err)
		}
		if !valid {
			return nil, domainerrors.InvalidCredentials("current password is incorrect")
		}
		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.DisplayName = req.DisplayName
	user.AvatarURL = req.AvatarURL

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.logger.Info("profile updated", "userId", user.ID)
	return redactUser(user), nil
}
