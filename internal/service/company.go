package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/staffpicks/staffpicks-server/internal/domain"
	domainerrors "github.com/staffpicks/staffpicks-server/internal/errors"
	"github.com/staffpicks/staffpicks-server/internal/scope"
	"github.com/staffpicks/staffpicks-server/internal/store"
	"github.com/staffpicks/staffpicks-server/internal/validation"
)

// CompanyService exposes the tenant settings surface.
type CompanyService struct {
	store    *store.Store
	validate *validation.Validator
	logger   *slog.Logger
}

// NewCompanyService creates a new company service.
func NewCompanyService(st *store.Store, validate *validation.Validator, logger *slog.Logger) *CompanyService {
	return &CompanyService{store: st, validate: validate, logger: logger}
}

// UpdateCompanyRequest carries editable tenant settings. The slug is
// assigned at signup and never changes; plan and status are billing
// concerns outside this surface.
type UpdateCompanyRequest struct {
	Name     string                  `json:"name" validate:"required,min=2,max=120"`
	Email    string                  `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string                  `json:"phone,omitempty" validate:"omitempty,max=40"`
	Website  string                  `json:"website,omitempty" validate:"omitempty,url"`
	Address  string                  `json:"address,omitempty" validate:"omitempty,max=500"`
	LogoURL  string                  `json:"logoUrl,omitempty" validate:"omitempty,url"`
	Settings *domain.CompanySettings `json:"settings,omitempty"`
}

// GetCompany returns the caller's own tenant record.
func (s *CompanyService) GetCompany(ctx context.Context, access scope.Access) (*domain.Company, error) {
	if access.CompanyID == "" {
		return nil, domainerrors.Validation("caller has no company context")
	}
	company, err := s.store.GetCompany(ctx, access.CompanyID)
	if err != nil {
		if errors.Is(err, store.ErrCompanyNotFound) {
			return nil, domainerrors.NotFound("company not found")
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return company, nil
}

// UpdateCompany applies tenant setting changes. Only admins and the
// tenant's companyAdmins may edit.
func (s *CompanyService) UpdateCompany(ctx context.Context, access scope.Access, req UpdateCompanyRequest) (*domain.Company, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	company, err := s.GetCompany(ctx, access)
	if err != nil {
		return nil, err
	}
	if !access.CanWriteCompany(company.ID) {
		return nil, domainerrors.Forbidden("not allowed to edit company settings")
	}

	company.Name = req.Name
	company.Email = req.Email
	company.Phone = req.Phone
	company.Website = req.Website
	company.Address = req.Address
	company.LogoURL = req.LogoURL
	if req.Settings != nil {
		company.Settings = *req.Settings
	}

	if err := s.store.UpdateCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("update company: %w", err)
	}

	s.logger.Info("company updated", "companyId", company.ID, "by", access.UserID)
	return company, nil
}
