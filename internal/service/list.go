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
	"github.com/staffpicks/staffpicks-server/internal/util"
	"github.com/staffpicks/staffpicks-server/internal/validation"
)

// ListService manages curated lists: metadata, membership, ordering, and
// the publish lifecycle.
type ListService struct {
	store    *store.Store
	validate *validation.Validator
	logger   *slog.Logger
}

// NewListService creates a new list service.
func NewListService(st *store.Store, validate *validation.Validator, logger *slog.Logger) *ListService {
	return &ListService{store: st, validate: validate, logger: logger}
}

// CreateListRequest contains the data for a new curated list.
type CreateListRequest struct {
	Title         string                `json:"title" validate:"required,min=2,max=200"`
	Description   string                `json:"description,omitempty" validate:"omitempty,max=2000"`
	CoverImageURL string                `json:"coverImageUrl,omitempty" validate:"omitempty,url"`
	Visibility    domain.ListVisibility `json:"visibility,omitempty"`
	StoreID       string                `json:"storeId,omitempty"`
	AssignedTo    []string              `json:"assignedTo,omitempty"`
	Sections      []string              `json:"sections,omitempty"`
}

// UpdateListRequest contains editable list fields. The slug is derived
// from the title at creation and stays stable so shared links keep
// working after a rename.
type UpdateListRequest struct {
	Title         string                `json:"title" validate:"required,min=2,max=200"`
	Description   string                `json:"description,omitempty" validate:"omitempty,max=2000"`
	CoverImageURL string                `json:"coverImageUrl,omitempty" validate:"omitempty,url"`
	Visibility    domain.ListVisibility `json:"visibility,omitempty"`
	AssignedTo    []string              `json:"assignedTo,omitempty"`
	Sections      []string              `json:"sections,omitempty"`
}

// AddItemRequest adds a book to the end of a list.
type AddItemRequest struct {
	BookID         string `json:"bookId" validate:"required"`
	Recommendation string `json:"recommendation,omitempty" validate:"omitempty,max=2000"`
}

// ReorderItemRequest moves a book to a new position on the list.
type ReorderItemRequest struct {
	BookID   string `json:"bookId" validate:"required"`
	Position int    `json:"position" validate:"min=0"`
}

// ListLists returns the curated lists the caller may see, minus lists
// created by since-deleted staff. Platform admins read across every
// tenant, or one tenant when companyID narrows the scan; for tenant
// callers the filter is ignored.
func (s *ListService) ListLists(ctx context.Context, access scope.Access, companyID string) ([]*domain.List, error) {
	var (
		lists    []*domain.List
		excluded scope.ExcludeDeletedAuthors
		err      error
	)
	if company := scopeCompany(access, companyID); company == "" {
		lists, err = s.store.ListAllLists(ctx)
		if err != nil {
			return nil, fmt.Errorf("list lists: %w", err)
		}
		excluded, err = deletedAuthorsEverywhere(ctx, s.store)
	} else {
		lists, err = s.store.ListListsByCompany(ctx, company)
		if err != nil {
			return nil, fmt.Errorf("list lists: %w", err)
		}
		excluded, err = deletedAuthors(ctx, s.store, company)
	}
	if err != nil {
		return nil, err
	}

	visible := make([]*domain.List, 0, len(lists))
	for _, l := range lists {
		if access.CanSeeList(l) && !excluded.Excludes(l.CreatedBy) {
			visible = append(visible, l)
		}
	}
	return visible, nil
}

// GetList returns one curated list. Out-of-scope or deleted-author
// records answer not-found, the same as a missing ID.
func (s *ListService) GetList(ctx context.Context, access scope.Access, listID string) (*domain.List, error) {
	list, err := s.store.GetList(ctx, listID)
	if err != nil {
		if errors.Is(err, store.ErrListNotFound) {
			return nil, domainerrors.NotFound("list not found")
		}
		return nil, fmt.Errorf("get list: %w", err)
	}
	if !access.CanSeeList(list) {
		return nil, domainerrors.NotFound("list not found")
	}
	excluded, err := deletedAuthors(ctx, s.store, list.CompanyID)
	if err != nil {
		return nil, err
	}
	if excluded.Excludes(list.CreatedBy) {
		return nil, domainerrors.NotFound("list not found")
	}
	return list, nil
}

// CreateList adds a curated list. The slug comes from the title; a
// collision with another of the owner's live lists gets a numeric
// suffix. Moving straight to public visibility stamps publishedAt.
func (s *ListService) CreateList(ctx context.Context, access scope.Access, req CreateListRequest) (*domain.List, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	if !access.CanCreateList() || access.CompanyID == "" {
		return nil, domainerrors.Forbidden("not allowed to create lists")
	}
	if req.Visibility != "" && !req.Visibility.Valid() {
		return nil, domainerrors.Validationf("invalid visibility %q", req.Visibility)
	}

	base := util.Slugify(req.Title)
	if base == "" {
		return nil, domainerrors.Validation("list title yields an empty slug")
	}
	slug, err := util.UniqueSlug(base, func(candidate string) (bool, error) {
		return s.store.ListSlugExists(ctx, access.CompanyID, access.UserID, candidate)
	})
	if err != nil {
		return nil, fmt.Errorf("resolve list slug: %w", err)
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

	list := &domain.List{
		CompanyID:     access.CompanyID,
		StoreID:       storeID,
		OwnerUserID:   access.UserID,
		CreatedBy:     access.UserID,
		Title:         req.Title,
		Slug:          slug,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
		Visibility:    domain.ListVisibilityDraft,
		AssignedTo:    assignedTo,
		Sections:      sections,
		Items:         []domain.ListItem{},
	}
	list.ID = id.MustGenerate("list")
	list.InitTimestamps()
	if req.Visibility != "" {
		list.SetVisibility(req.Visibility)
	}

	if err := s.store.CreateList(ctx, list); err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}

	s.logger.Info("list created", "listId", list.ID, "slug", slug, "by", access.UserID)
	return list, nil
}

// UpdateList applies changes to a curated list. Librarian updates keep
// the current assignment set and sections regardless of what the request
// carries; visibility changes stamp the publish timestamps.
func (s *ListService) UpdateList(ctx context.Context, access scope.Access, listID string, req UpdateListRequest) (*domain.List, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	list, err := s.GetList(ctx, access, listID)
	if err != nil {
		return nil, err
	}
	if !access.CanWriteList(list) {
		return nil, domainerrors.Forbidden("not allowed to edit this list")
	}
	if req.Visibility != "" && !req.Visibility.Valid() {
		return nil, domainerrors.Validationf("invalid visibility %q", req.Visibility)
	}

	list.Title = req.Title
	list.Description = req.Description
	list.CoverImageURL = req.CoverImageURL
	list.UpdatedBy = access.UserID
	if access.CanSetAssignments() {
		list.AssignedTo = req.AssignedTo
		list.Sections = req.Sections
	}
	if req.Visibility != "" {
		list.SetVisibility(req.Visibility)
	}
	list.Touch()

	if err := s.store.UpdateList(ctx, list); err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}

	s.logger.Info("list updated", "listId", list.ID, "by", access.UserID)
	return list, nil
}

// DeleteList soft-deletes a curated list. Its slug stays reserved on the
// record but no longer blocks new lists from taking it.
func (s *ListService) DeleteList(ctx context.Context, access scope.Access, listID string) error {
	list, err := s.GetList(ctx, access, listID)
	if err != nil {
		return err
	}
	if !access.CanWriteList(list) {
		return domainerrors.Forbidden("not allowed to delete this list")
	}

	if err := s.store.SoftDeleteList(ctx, listID); err != nil {
		return fmt.Errorf("delete list: %w", err)
	}

	s.logger.Info("list deleted", "listId", listID, "by", access.UserID)
	return nil
}

// AddItem appends a book to the list. The book must itself be visible to
// the caller; duplicates conflict.
func (s *ListService) AddItem(ctx context.Context, access scope.Access, listID string, req AddItemRequest) (*domain.List, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	list, err := s.GetList(ctx, access, listID)
	if err != nil {
		return nil, err
	}
	if !access.CanWriteList(list) {
		return nil, domainerrors.Forbidden("not allowed to edit this list")
	}

	book, err := s.store.GetBook(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	if !access.CanSeeBook(book) {
		return nil, domainerrors.NotFound("book not found")
	}

	if !list.AddItem(req.BookID, req.Recommendation) {
		return nil, domainerrors.Conflict("book is already on this list")
	}
	list.UpdatedBy = access.UserID

	if err := s.store.UpdateList(ctx, list); err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}

	s.logger.Info("list item added", "listId", list.ID, "bookId", req.BookID, "by", access.UserID)
	return list, nil
}

// RemoveItem takes a book off the list, renumbering the remaining items
// so positions stay dense.
func (s *ListService) RemoveItem(ctx context.Context, access scope.Access, listID, bookID string) (*domain.List, error) {
	list, err := s.GetList(ctx, access, listID)
	if err != nil {
		return nil, err
	}
	if !access.CanWriteList(list) {
		return nil, domainerrors.Forbidden("not allowed to edit this list")
	}

	if !list.RemoveItem(bookID) {
		return nil, domainerrors.NotFound("book is not on this list")
	}
	list.UpdatedBy = access.UserID

	if err := s.store.UpdateList(ctx, list); err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}

	s.logger.Info("list item removed", "listId", list.ID, "bookId", bookID, "by", access.UserID)
	return list, nil
}

// ReorderItem moves a book to a new position; out-of-range positions
// clamp to the list ends.
func (s *ListService) ReorderItem(ctx context.Context, access scope.Access, listID string, req ReorderItemRequest) (*domain.List, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	list, err := s.GetList(ctx, access, listID)
	if err != nil {
		return nil, err
	}
	if !access.CanWriteList(list) {
		return nil, domainerrors.Forbidden("not allowed to edit this list")
	}

	if !list.Reorder(req.BookID, req.Position) {
		return nil, domainerrors.NotFound("book is not on this list")
	}
	list.UpdatedBy = access.UserID

	if err := s.store.UpdateList(ctx, list); err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}
	return list, nil
}
