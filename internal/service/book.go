package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/staffpicks/staffpicks-server/internal/domain"
	domainerrors "github.com/staffpicks/staffpicks-server/internal/errors"
	"github.com/staffpicks/staffpicks-server/internal/id"
	"github.com/staffpicks/staffpicks-server/internal/scope"
	"github.com/staffpicks/staffpicks-server/internal/store"
	"github.com/staffpicks/staffpicks-server/internal/validation"
)

// BookService manages the catalog. Books are hard-deleted; removing one
// also strips it from every list that references it.
type BookService struct {
	store    *store.Store
	validate *validation.Validator
	logger   *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(st *store.Store, validate *validation.Validator, logger *slog.Logger) *BookService {
	return &BookService{store: st, validate: validate, logger: logger}
}

// CreateBookRequest contains the data for a new catalog entry.
type CreateBookRequest struct {
	ISBN     string          `json:"isbn" validate:"required,min=10,max=17"`
	BookData domain.BookData `json:"bookData"`
	StoreID  string          `json:"storeId,omitempty"`

	Genre    string `json:"genre,omitempty" validate:"omitempty,max=60"`
	Tone     string `json:"tone,omitempty" validate:"omitempty,max=60"`
	AgeGroup string `json:"ageGroup,omitempty" validate:"omitempty,max=60"`

	PurchaseLink   string `json:"purchaseLink,omitempty" validate:"omitempty,url"`
	Recommendation string `json:"recommendation,omitempty" validate:"omitempty,max=2000"`

	AssignedTo []string `json:"assignedTo,omitempty"`
	Sections   []string `json:"sections,omitempty"`
}

// UpdateBookRequest contains editable book fields. ISBN and ownership
// are fixed at creation.
type UpdateBookRequest struct {
	BookData domain.BookData `json:"bookData"`

	Genre    string `json:"genre,omitempty" validate:"omitempty,max=60"`
	Tone     string `json:"tone,omitempty" validate:"omitempty,max=60"`
	AgeGroup string `json:"ageGroup,omitempty" validate:"omitempty,max=60"`

	PurchaseLink   string `json:"purchaseLink,omitempty" validate:"omitempty,url"`
	Recommendation string `json:"recommendation,omitempty" validate:"omitempty,max=2000"`

	AssignedTo []string `json:"assignedTo,omitempty"`
	Sections   []string `json:"sections,omitempty"`
}

// deletedAuthors builds the exclusion set covering content authored by
// soft-deleted users in the company.
func deletedAuthors(ctx context.Context, st *store.Store, companyID string) (scope.ExcludeDeletedAuthors, error) {
	users, err := st.ListAllUsersByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("scan users for exclusion: %w", err)
	}
	return scope.NewExcludeDeletedAuthors(users), nil
}

// deletedAuthorsEverywhere builds the exclusion set across every tenant.
// Used by platform-admin reads that are not narrowed to one company.
func deletedAuthorsEverywhere(ctx context.Context, st *store.Store) (scope.ExcludeDeletedAuthors, error) {
	users, err := st.ListAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan users for exclusion: %w", err)
	}
	return scope.NewExcludeDeletedAuthors(users), nil
}

// scopeCompany resolves the company a listing operation reads from.
// Tenant callers always read their own company; the explicit filter is
// honored only for platform admins, whose empty filter means all
// tenants.
func scopeCompany(access scope.Access, companyID string) string {
	if access.CompanyID != "" {
		return access.CompanyID
	}
	return companyID
}

// ListBooks returns the catalog entries the caller may see. Books
// created by since-deleted staff are hidden; books from merely inactive
// or suspended staff stay visible. Platform admins read across every
// tenant, or one tenant when companyID narrows the scan; for tenant
// callers the filter is ignored.
func (s *BookService) ListBooks(ctx context.Context, access scope.Access, companyID string) ([]*domain.Book, error) {
	var (
		books    []*domain.Book
		excluded scope.ExcludeDeletedAuthors
		err      error
	)
	if company := scopeCompany(access, companyID); company == "" {
		books, err = s.store.ListAllBooks(ctx)
		if err != nil {
			return nil, fmt.Errorf("list books: %w", err)
		}
		excluded, err = deletedAuthorsEverywhere(ctx, s.store)
	} else {
		books, err = s.store.ListBooksByCompany(ctx, company)
		if err != nil {
			return nil, fmt.Errorf("list books: %w", err)
		}
		excluded, err = deletedAuthors(ctx, s.store, company)
	}
	if err != nil {
		return nil, err
	}

	visible := make([]*domain.Book, 0, len(books))
	for _, b := range books {
		if access.CanSeeBook(b) && !excluded.Excludes(b.CreatedBy) {
			visible = append(visible, b)
		}
	}
	return visible, nil
}

// GetBook returns one catalog entry. Out-of-scope or deleted-author
// records answer not-found, the same as a missing ID.
func (s *BookService) GetBook(ctx context.Context, access scope.Access, bookID string) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	if !access.CanSeeBook(book) {
		return nil, domainerrors.NotFound("book not found")
	}
	excluded, err := deletedAuthors(ctx, s.store, book.CompanyID)
	if err != nil {
		return nil, err
	}
	if excluded.Excludes(book.CreatedBy) {
		return nil, domainerrors.NotFound("book not found")
	}
	return book, nil
}

// CreateBook adds a catalog entry. The creator becomes the owner; a
// librarian creator is always in the assignment set so the book does not
// vanish from their own view.
func (s *BookService) CreateBook(ctx context.Context, access scope.Access, req CreateBookRequest) (*domain.Book, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	if req.BookData.Title == "" {
		return nil, domainerrors.Validation("book title is required")
	}
	if !access.CanCreateBook() || access.CompanyID == "" {
		return nil, domainerrors.Forbidden("not allowed to create books")
	}

	storeID := req.StoreID
	if access.StoreID != "" {
		storeID = access.StoreID
	}

	assignedTo := req.AssignedTo
	sections := req.Sections
	if !access.CanSetAssignments() {
		assignedTo = nil
		sections = nil
	}
	if access.Role == domain.RoleLibrarian && !containsString(assignedTo, access.UserID) {
		assignedTo = append(assignedTo, access.UserID)
	}

	book := &domain.Book{
		CompanyID:      access.CompanyID,
		StoreID:        storeID,
		ISBN:           req.ISBN,
		BookData:       req.BookData,
		Genre:          req.Genre,
		Tone:           req.Tone,
		AgeGroup:       req.AgeGroup,
		PurchaseLink:   req.PurchaseLink,
		Recommendation: req.Recommendation,
		OwnerUserID:    access.UserID,
		CreatedBy:      access.UserID,
		AssignedTo:     assignedTo,
		Sections:       sections,
	}
	book.ID = id.MustGenerate("book")

	if err := s.store.CreateBook(ctx, book); err != nil {
		if errors.Is(err, store.ErrBookExists) {
			return nil, domainerrors.AlreadyExists("book with this ISBN already in your catalog")
		}
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.logger.Info("book created", "bookId", book.ID, "isbn", book.ISBN, "by", access.UserID)
	return book, nil
}

// UpdateBook applies changes to a catalog entry. Librarian updates keep
// the current assignment set and sections regardless of what the request
// carries.
func (s *BookService) UpdateBook(ctx context.Context, access scope.Access, bookID string, req UpdateBookRequest) (*domain.Book, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	book, err := s.GetBook(ctx, access, bookID)
	if err != nil {
		return nil, err
	}
	if !access.CanWriteBook(book) {
		return nil, domainerrors.Forbidden("not allowed to edit this book")
	}
	if req.BookData.Title == "" {
		return nil, domainerrors.Validation("book title is required")
	}

	book.BookData = req.BookData
	book.Genre = req.Genre
	book.Tone = req.Tone
	book.AgeGroup = req.AgeGroup
	book.PurchaseLink = req.PurchaseLink
	book.Recommendation = req.Recommendation
	book.UpdatedBy = access.UserID
	if access.CanSetAssignments() {
		book.AssignedTo = req.AssignedTo
		book.Sections = req.Sections
	}

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.logger.Info("book updated", "bookId", book.ID, "by", access.UserID)
	return book, nil
}

// DeleteBook hard-deletes a catalog entry and strips it from every list
// that references it, renumbering their remaining items.
func (s *BookService) DeleteBook(ctx context.Context, access scope.Access, bookID string) error {
	book, err := s.GetBook(ctx, access, bookID)
	if err != nil {
		return err
	}
	if !access.CanWriteBook(book) {
		return domainerrors.Forbidden("not allowed to delete this book")
	}

	lists, err := s.store.ListsContainingBook(ctx, book.CompanyID, bookID)
	if err != nil {
		return fmt.Errorf("find lists referencing book: %w", err)
	}
	for _, list := range lists {
		if list.RemoveItem(bookID) {
			if err := s.store.UpdateList(ctx, list); err != nil {
				return fmt.Errorf("strip book from list %s: %w", list.ID, err)
			}
		}
	}

	if err := s.store.DeleteBook(ctx, bookID); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	s.logger.Info("book deleted", "bookId", bookID, "strippedFromLists", len(lists), "by", access.UserID)
	return nil
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
