package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/staffpicks/staffpicks-server/internal/domain"
	"github.com/staffpicks/staffpicks-server/internal/service"
)

func (s *Server) registerListRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listLists",
		Method:      http.MethodGet,
		Path:        "/api/lists",
		Summary:     "List curated lists",
		Description: "Returns the lists visible to the caller's role and store",
		Tags:        []string{"Lists"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleListLists)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createList",
		Method:        http.MethodPost,
		Path:          "/api/lists",
		Summary:       "Create a list",
		Tags:          []string{"Lists"},
		Security:      []map[string][]string{{"session": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateList)

	huma.Register(s.api, huma.Operation{
		OperationID: "getList",
		Method:      http.MethodGet,
		Path:        "/api/lists/{id}",
		Summary:     "Get a list",
		Tags:        []string{"Lists"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleGetList)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateList",
		Method:      http.MethodPut,
		Path:        "/api/lists/{id}",
		Summary:     "Update a list",
		Tags:        []string{"Lists"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleUpdateList)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteList",
		Method:      http.MethodDelete,
		Path:        "/api/lists/{id}",
		Summary:     "Delete a list",
		Description: "Soft-deletes the list; its slug becomes available again",
		Tags:        []string{"Lists"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleDeleteList)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addListItem",
		Method:        http.MethodPost,
		Path:          "/api/lists/{id}/items",
		Summary:       "Add a book to a list",
		Tags:          []string{"Lists"},
		Security:      []map[string][]string{{"session": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddListItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "reorderListItem",
		Method:      http.MethodPut,
		Path:        "/api/lists/{id}/items",
		Summary:     "Reorder a list item",
		Description: "Moves one book to a new position; the rest shift to keep positions dense",
		Tags:        []string{"Lists"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleReorderListItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeListItem",
		Method:      http.MethodDelete,
		Path:        "/api/lists/{id}/items/{bookId}",
		Summary:     "Remove a book from a list",
		Tags:        []string{"Lists"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleRemoveListItem)
}

// === DTOs ===

// ListListsOutput wraps a page of lists.
type ListListsOutput struct {
	Body struct {
		Lists []*domain.List `json:"lists"`
		Total int            `json:"total"`
	}
}

// ListOutput wraps a single list.
type ListOutput struct {
	Body *domain.List
}

// CreateListInput wraps the create-list request.
type CreateListInput struct {
	Body service.CreateListRequest
}

// ListByIDInput selects a list by ID.
type ListByIDInput struct {
	ID string `path:"id" doc:"List ID"`
}

// UpdateListInput wraps the update-list request.
type UpdateListInput struct {
	ID   string `path:"id" doc:"List ID"`
	Body service.UpdateListRequest
}

// AddListItemInput wraps the add-item request.
type AddListItemInput struct {
	ID   string `path:"id" doc:"List ID"`
	Body service.AddItemRequest
}

// ReorderListItemInput wraps the reorder request.
type ReorderListItemInput struct {
	ID   string `path:"id" doc:"List ID"`
	Body service.ReorderItemRequest
}

// RemoveListItemInput selects the list and the book to remove.
type RemoveListItemInput struct {
	ID     string `path:"id" doc:"List ID"`
	BookID string `path:"bookId" doc:"Book ID"`
}

// ListListsInput carries the optional tenant filter. Honored for
// platform admins only.
type ListListsInput struct {
	CompanyID string `query:"companyId" validate:"omitempty,max=60" doc:"Platform admins: narrow the listing to one company"`
}

// === Handlers ===

func (s *Server) handleListLists(ctx context.Context, input *ListListsInput) (*ListListsOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	lists, err := s.services.List.ListLists(ctx, access, input.CompanyID)
	if err != nil {
		return nil, err
	}

	out := &ListListsOutput{}
	out.Body.Lists = lists
	out.Body.Total = len(lists)
	return out, nil
}

func (s *Server) handleCreateList(ctx context.Context, input *CreateListInput) (*ListOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.services.List.CreateList(ctx, access, input.Body)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Body: list}, nil
}

func (s *Server) handleGetList(ctx context.Context, input *ListByIDInput) (*ListOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.services.List.GetList(ctx, access, input.ID)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Body: list}, nil
}

func (s *Server) handleUpdateList(ctx context.Context, input *UpdateListInput) (*ListOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.services.List.UpdateList(ctx, access, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Body: list}, nil
}

func (s *Server) handleDeleteList(ctx context.Context, input *ListByIDInput) (*MessageOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.List.DeleteList(ctx, access, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "list deleted"}}, nil
}

func (s *Server) handleAddListItem(ctx context.Context, input *AddListItemInput) (*ListOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.services.List.AddItem(ctx, access, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Body: list}, nil
}

func (s *Server) handleReorderListItem(ctx context.Context, input *ReorderListItemInput) (*ListOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.services.List.ReorderItem(ctx, access, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Body: list}, nil
}

func (s *Server) handleRemoveListItem(ctx context.Context, input *RemoveListItemInput) (*ListOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.services.List.RemoveItem(ctx, access, input.ID, input.BookID)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Body: list}, nil
}
