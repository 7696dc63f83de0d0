package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/staffpicks/staffpicks-server/internal/domain"
	"github.com/staffpicks/staffpicks-server/internal/service"
)

func (s *Server) registerCompanyRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCompany",
		Method:      http.MethodGet,
		Path:        "/api/company",
		Summary:     "Get tenant settings",
		Description: "Returns the caller's company record",
		Tags:        []string{"Company"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleGetCompany)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCompany",
		Method:      http.MethodPut,
		Path:        "/api/company",
		Summary:     "Update tenant settings",
		Tags:        []string{"Company"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleUpdateCompany)
}

// CompanyOutput wraps a company record.
type CompanyOutput struct {
	Body *domain.Company
}

// UpdateCompanyInput wraps the update-company request.
type UpdateCompanyInput struct {
	Body service.UpdateCompanyRequest
}

func (s *Server) handleGetCompany(ctx context.Context, _ *struct{}) (*CompanyOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	company, err := s.services.Company.GetCompany(ctx, access)
	if err != nil {
		return nil, err
	}
	return &CompanyOutput{Body: company}, nil
}

func (s *Server) handleUpdateCompany(ctx context.Context, input *UpdateCompanyInput) (*CompanyOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	company, err := s.services.Company.UpdateCompany(ctx, access, input.Body)
	if err != nil {
		return nil, err
	}
	return &CompanyOutput{Body: company}, nil
}
