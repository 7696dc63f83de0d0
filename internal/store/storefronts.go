package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/staffpicks/staffpicks-server/internal/domain"
)

var (
	// ErrStoreNotFound is returned when a storefront cannot be found.
	ErrStoreNotFound = errors.New("store not found")
	// ErrStoreCodeExists is returned on a store code collision within a company.
	ErrStoreCodeExists = errors.New("store code already in use")
	// ErrStoreHasUsers is returned when deleting a store that still has
	// users assigned to it.
	ErrStoreHasUsers = errors.New("store still has assigned users")
)

// CreateStore creates a new storefront within a company.
func (s *Store) CreateStore(ctx context.Context, store *domain.Store) error {
	store.InitTimestamps()
	if err := s.Stores.Create(ctx, store.ID, store); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return ErrStoreCodeExists
		}
		return fmt.Errorf("create store: %w", err)
	}
	return nil
}

// GetStore retrieves a storefront by ID.
func (s *Store) GetStore(ctx context.Context, id string) (*domain.Store, error) {
	store, err := s.Stores.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return store, nil
}

// UpdateStore persists changes to a storefront.
func (s *Store) UpdateStore(ctx context.Context, store *domain.Store) error {
	store.Touch()
	if err := s.Stores.Update(ctx, store.ID, store); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrStoreNotFound
		}
		if errors.Is(err, ErrAlreadyExists) {
			return ErrStoreCodeExists
		}
		return fmt.Errorf("update store: %w", err)
	}
	return nil
}

// DeleteStore removes a storefront. Fails with ErrStoreHasUsers while any
// non-deleted user is still assigned to it.
func (s *Store) DeleteStore(ctx context.Context, id string) error {
	count, err := s.CountUsersByStore(ctx, id)
	if err != nil {
		return fmt.Errorf("count store users: %w", err)
	}
	if count > 0 {
		return ErrStoreHasUsers
	}
	if err := s.Stores.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	return nil
}

// ListAllStores returns every tenant's storefronts. Serves
// platform-admin reads that span companies.
func (s *Store) ListAllStores(ctx context.Context) ([]*domain.Store, error) {
	return s.Stores.Find(ctx, func(*domain.Store) bool { return true })
}

// ListStoresByCompany returns all storefronts in a company.
func (s *Store) ListStoresByCompany(ctx context.Context, companyID string) ([]*domain.Store, error) {
	return s.Stores.Find(ctx, func(st *domain.Store) bool {
		return st.CompanyID == companyID
	})
}

// StoreCodeExists reports whether a code is taken within a company.
// Probed by the store code suffix loop.
func (s *Store) StoreCodeExists(ctx context.Context, companyID, code string) (bool, error) {
	return s.Stores.ExistsByIndex(ctx, "code", companyID+"/"+code)
}
