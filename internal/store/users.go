package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/staffpicks/staffpicks-server/internal/domain"
)

var (
	// ErrUserNotFound is returned when a user cannot be found by ID or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when a user's email is already in use.
	// Emails stay claimed by soft-deleted accounts.
	ErrEmailExists = errors.New("email already in use")
)

// CreateUser creates a new user account.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	user.InitTimestamps()
	if err := s.Users.Create(ctx, user.ID, user); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return ErrEmailExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID. Soft-deleted users read as not found.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.Users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.IsDeleted() {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email address. Lookup is
// case-insensitive. Soft-deleted users read as not found.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.Users.GetByIndex(ctx, "email", email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}
	if user.IsDeleted() {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateUser persists changes to an existing user.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	user.Touch()
	if err := s.Users.Update(ctx, user.ID, user); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrUserNotFound
		}
		if errors.Is(err, ErrAlreadyExists) {
			return ErrEmailExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// SoftDeleteUser marks a user as deleted without removing the record.
// The email index entry stays, so the address cannot be reused.
func (s *Store) SoftDeleteUser(ctx context.Context, id string) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	user.MarkDeleted()
	if err := s.Users.Update(ctx, user.ID, user); err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	return nil
}

// ListUsersByCompany returns all non-deleted users in a company.
func (s *Store) ListUsersByCompany(ctx context.Context, companyID string) ([]*domain.User, error) {
	return s.Users.Find(ctx, func(u *domain.User) bool {
		return u.CompanyID == companyID && !u.IsDeleted()
	})
}

// ListAllUsersByCompany returns every user in a company, soft-deleted
// included. Used to build the deleted-author exclusion set.
func (s *Store) ListAllUsersByCompany(ctx context.Context, companyID string) ([]*domain.User, error) {
	return s.Users.Find(ctx, func(u *domain.User) bool {
		return u.CompanyID == companyID
	})
}

// ListAllUsers returns every user across all tenants, soft-deleted
// included. Serves platform-admin reads and the cross-tenant
// deleted-author exclusion set.
func (s *Store) ListAllUsers(ctx context.Context) ([]*domain.User, error) {
	return s.Users.Find(ctx, func(*domain.User) bool { return true })
}

// CountUsersByStore counts non-deleted users assigned to a store.
// Store deletion is refused while this is non-zero.
func (s *Store) CountUsersByStore(ctx context.Context, storeID string) (int, error) {
	return s.Users.Count(ctx, func(u *domain.User) bool {
		return u.StoreID == storeID && !u.IsDeleted()
	})
}
