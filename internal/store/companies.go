package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/staffpicks/staffpicks-server/internal/domain"
)

var (
	// ErrCompanyNotFound is returned when a company cannot be found.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrCompanySlugExists is returned on a company slug collision.
	ErrCompanySlugExists = errors.New("company slug already in use")
)

// CreateCompany creates a new company tenant.
func (s *Store) CreateCompany(ctx context.Context, company *domain.Company) error {
	company.InitTimestamps()
	if err := s.Companies.Create(ctx, company.ID, company); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return ErrCompanySlugExists
		}
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

// GetCompany retrieves a company by ID.
func (s *Store) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	company, err := s.Companies.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return company, nil
}

// UpdateCompany persists changes to a company.
func (s *Store) UpdateCompany(ctx context.Context, company *domain.Company) error {
	company.Touch()
	if err := s.Companies.Update(ctx, company.ID, company); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrCompanyNotFound
		}
		if errors.Is(err, ErrAlreadyExists) {
			return ErrCompanySlugExists
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// CompanySlugExists reports whether a company slug is taken.
// Probed by the signup slug suffix loop.
func (s *Store) CompanySlugExists(ctx context.Context, slug string) (bool, error) {
	return s.Companies.ExistsByIndex(ctx, "slug", slug)
}

// DeleteCompany removes a company record. Used only to unwind a partially
// completed signup.
func (s *Store) DeleteCompany(ctx context.Context, id string) error {
	return s.Companies.Delete(ctx, id)
}
