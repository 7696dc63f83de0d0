package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/staffpicks/staffpicks-server/internal/service"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/user/profile",
		Summary:     "Get own profile",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleGetProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProfile",
		Method:      http.MethodPut,
		Path:        "/api/user/profile",
		Summary:     "Update own profile",
		Description: "Self-service name, avatar, and password changes. A password change requires the current password.",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleUpdateProfile)
}

// UpdateProfileInput wraps the self-service profile update.
type UpdateProfileInput struct {
	Body service.UpdateProfileRequest
}

func (s *Server) handleGetProfile(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Profile.GetProfile(ctx, access)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, input *UpdateProfileInput) (*UserOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Profile.UpdateProfile(ctx, access, input.Body)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}
