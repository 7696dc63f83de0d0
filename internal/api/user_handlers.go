package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/staffpicks/staffpicks-server/internal/domain"
	"github.com/staffpicks/staffpicks-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/users",
		Summary:     "List staff accounts",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createUser",
		Method:        http.MethodPost,
		Path:          "/api/users",
		Summary:       "Create a staff account",
		Tags:          []string{"Users"},
		Security:      []map[string][]string{{"session": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/users/{id}",
		Summary:     "Get a staff account",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateUser",
		Method:      http.MethodPut,
		Path:        "/api/users/{id}",
		Summary:     "Update a staff account",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleUpdateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "changeUserStatus",
		Method:      http.MethodPatch,
		Path:        "/api/users/{id}/status",
		Summary:     "Activate, deactivate, or suspend a staff account",
		Description: "Suspended accounts can only be reactivated, never deactivated",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleChangeUserStatus)

	// Soft delete answers on a POST sub-resource (the dashboard's form
	// action) and on a plain DELETE; both run the same handler. The
	// record survives for audit and keeps its email reserved.
	huma.Register(s.api, huma.Operation{
		OperationID: "deleteUser",
		Method:      http.MethodPost,
		Path:        "/api/users/{id}/delete",
		Summary:     "Soft-delete a staff account",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleDeleteUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteUserByID",
		Method:      http.MethodDelete,
		Path:        "/api/users/{id}",
		Summary:     "Soft-delete a staff account",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleDeleteUser)
}

// === DTOs ===

// UserListOutput wraps a page of users.
type UserListOutput struct {
	Body struct {
		Users []*domain.User `json:"users"`
		Total int            `json:"total"`
	}
}

// UserOutput wraps a single user.
type UserOutput struct {
	Body *domain.User
}

// CreateUserInput wraps the create-user request.
type CreateUserInput struct {
	Body service.CreateUserRequest
}

// UserByIDInput selects a user by ID.
type UserByIDInput struct {
	ID string `path:"id" doc:"User ID"`
}

// UpdateUserInput wraps the update-user request.
type UpdateUserInput struct {
	ID   string `path:"id" doc:"User ID"`
	Body service.UpdateUserRequest
}

// ChangeUserStatusInput carries the status action verb.
type ChangeUserStatusInput struct {
	ID   string `path:"id" doc:"User ID"`
	Body struct {
		Action string `json:"action" enum:"activate,deactivate,suspend" doc:"Status transition to apply"`
	}
}

// ListUsersInput carries the optional tenant filter. Honored for
// platform admins only.
type ListUsersInput struct {
	CompanyID string `query:"companyId" validate:"omitempty,max=60" doc:"Platform admins: narrow the listing to one company"`
}

// === Handlers ===

func (s *Server) handleListUsers(ctx context.Context, input *ListUsersInput) (*UserListOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.services.User.ListUsers(ctx, access, input.CompanyID)
	if err != nil {
		return nil, err
	}

	out := &UserListOutput{}
	out.Body.Users = users
	out.Body.Total = len(users)
	return out, nil
}

func (s *Server) handleCreateUser(ctx context.Context, input *CreateUserInput) (*UserOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.User.CreateUser(ctx, access, input.Body)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *UserByIDInput) (*UserOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.User.GetUser(ctx, access, input.ID)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleUpdateUser(ctx context.Context, input *UpdateUserInput) (*UserOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.User.UpdateUser(ctx, access, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleChangeUserStatus(ctx context.Context, input *ChangeUserStatusInput) (*UserOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.User.ChangeStatus(ctx, access, input.ID, input.Body.Action)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleDeleteUser(ctx context.Context, input *UserByIDInput) (*MessageOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.User.DeleteUser(ctx, access, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "user deleted"}}, nil
}
