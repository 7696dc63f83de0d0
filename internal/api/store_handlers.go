package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/staffpicks/staffpicks-server/internal/domain"
	"github.com/staffpicks/staffpicks-server/internal/service"
)

func (s *Server) registerStoreRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listStores",
		Method:      http.MethodGet,
		Path:        "/api/stores",
		Summary:     "List stores",
		Tags:        []string{"Stores"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleListStores)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createStore",
		Method:        http.MethodPost,
		Path:          "/api/stores",
		Summary:       "Create a store",
		Description:   "Creates a store location; the code is derived from the name when omitted",
		Tags:          []string{"Stores"},
		Security:      []map[string][]string{{"session": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateStore)

	huma.Register(s.api, huma.Operation{
		OperationID: "getStore",
		Method:      http.MethodGet,
		Path:        "/api/stores/{id}",
		Summary:     "Get a store",
		Tags:        []string{"Stores"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleGetStore)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateStore",
		Method:      http.MethodPut,
		Path:        "/api/stores/{id}",
		Summary:     "Update a store",
		Tags:        []string{"Stores"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleUpdateStore)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteStore",
		Method:      http.MethodDelete,
		Path:        "/api/stores/{id}",
		Summary:     "Delete a store",
		Description: "Fails while staff are still assigned to the store",
		Tags:        []string{"Stores"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleDeleteStore)

	huma.Register(s.api, huma.Operation{
		OperationID: "unassignStoreUser",
		Method:      http.MethodDelete,
		Path:        "/api/stores/{id}/users/{userId}",
		Summary:     "Remove a staff member from a store",
		Description: "Clears the user's store assignment; the account itself is untouched",
		Tags:        []string{"Stores"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleUnassignStoreUser)
}

// === DTOs ===

// StoreListOutput wraps a page of stores.
type StoreListOutput struct {
	Body struct {
		Stores []*domain.Store `json:"stores"`
		Total  int             `json:"total"`
	}
}

// StoreOutput wraps a single store.
type StoreOutput struct {
	Body *domain.Store
}

// CreateStoreInput wraps the create-store request.
type CreateStoreInput struct {
	Body service.CreateStoreRequest
}

// StoreByIDInput selects a store by ID.
type StoreByIDInput struct {
	ID string `path:"id" doc:"Store ID"`
}

// UpdateStoreInput wraps the update-store request.
type UpdateStoreInput struct {
	ID   string `path:"id" doc:"Store ID"`
	Body service.UpdateStoreRequest
}

// UnassignStoreUserInput selects the store and the user to unassign.
type UnassignStoreUserInput struct {
	ID     string `path:"id" doc:"Store ID"`
	UserID string `path:"userId" doc:"User ID"`
}

// ListStoresInput carries the optional tenant filter. Honored for
// platform admins only.
type ListStoresInput struct {
	CompanyID string `query:"companyId" validate:"omitempty,max=60" doc:"Platform admins: narrow the listing to one company"`
}

// === Handlers ===

func (s *Server) handleListStores(ctx context.Context, input *ListStoresInput) (*StoreListOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	stores, err := s.services.Store.ListStores(ctx, access, input.CompanyID)
	if err != nil {
		return nil, err
	}

	out := &StoreListOutput{}
	out.Body.Stores = stores
	out.Body.Total = len(stores)
	return out, nil
}

func (s *Server) handleCreateStore(ctx context.Context, input *CreateStoreInput) (*StoreOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	storefront, err := s.services.Store.CreateStore(ctx, access, input.Body)
	if err != nil {
		return nil, err
	}
	return &StoreOutput{Body: storefront}, nil
}

func (s *Server) handleGetStore(ctx context.Context, input *StoreByIDInput) (*StoreOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	storefront, err := s.services.Store.GetStore(ctx, access, input.ID)
	if err != nil {
		return nil, err
	}
	return &StoreOutput{Body: storefront}, nil
}

func (s *Server) handleUpdateStore(ctx context.Context, input *UpdateStoreInput) (*StoreOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	storefront, err := s.services.Store.UpdateStore(ctx, access, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &StoreOutput{Body: storefront}, nil
}

func (s *Server) handleDeleteStore(ctx context.Context, input *StoreByIDInput) (*MessageOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Store.DeleteStore(ctx, access, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "store deleted"}}, nil
}

func (s *Server) handleUnassignStoreUser(ctx context.Context, input *UnassignStoreUserInput) (*MessageOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Store.UnassignUser(ctx, access, input.ID, input.UserID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "user removed from store"}}, nil
}
