package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/staffpicks/staffpicks-server/internal/domain"
	"github.com/staffpicks/staffpicks-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/books",
		Summary:     "List books",
		Description: "Returns the books visible to the caller's role and store",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/api/books",
		Summary:       "Add a book",
		Tags:          []string{"Books"},
		Security:      []map[string][]string{{"session": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/books/{id}",
		Summary:     "Get a book",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/api/books/{id}",
		Summary:     "Update a book",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/books/{id}",
		Summary:     "Delete a book",
		Description: "Removes the book from the catalog and strips it from every list that references it",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleDeleteBook)
}

// === DTOs ===

// ListBooksInput carries the optional tenant filter. Only platform
// admins can reach outside their own company, so the filter is ignored
// for everyone else.
type ListBooksInput struct {
	CompanyID string `query:"companyId" validate:"omitempty,max=60" doc:"Platform admins: narrow the listing to one company"`
}

// BookListOutput wraps a page of books.
type BookListOutput struct {
	Body struct {
		Books []*domain.Book `json:"books"`
		Total int            `json:"total"`
	}
}

// BookOutput wraps a single book.
type BookOutput struct {
	Body *domain.Book
}

// CreateBookInput wraps the create-book request.
type CreateBookInput struct {
	Body service.CreateBookRequest
}

// BookByIDInput selects a book by ID.
type BookByIDInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// UpdateBookInput wraps the update-book request.
type UpdateBookInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body service.UpdateBookRequest
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*BookListOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	books, err := s.services.Book.ListBooks(ctx, access, input.CompanyID)
	if err != nil {
		return nil, err
	}

	out := &BookListOutput{}
	out.Body.Books = books
	out.Body.Total = len(books)
	return out, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	book, err := s.services.Book.CreateBook(ctx, access, input.Body)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: book}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *BookByIDInput) (*BookOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	book, err := s.services.Book.GetBook(ctx, access, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: book}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	book, err := s.services.Book.UpdateBook(ctx, access, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: book}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *BookByIDInput) (*MessageOutput, error) {
	access, err := requireAccess(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Book.DeleteBook(ctx, access, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "book deleted"}}, nil
}
