package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/staffpicks/staffpicks-server/internal/domain"
)

// ErrListNotFound is returned when a list cannot be found or is soft-deleted.
var ErrListNotFound = errors.New("list not found")

// CreateList creates a new curated list and pushes it to the search index.
func (s *Store) CreateList(ctx context.Context, list *domain.List) error {
	list.InitTimestamps()
	if err := s.Lists.Create(ctx, list.ID, list); err != nil {
		return fmt.Errorf("create list: %w", err)
	}
	if err := s.searchIndexer.IndexList(list); err != nil {
		s.logger.Warn("failed to index list", "listId", list.ID, "error", err)
	}
	return nil
}

// GetList retrieves a list by ID. Soft-deleted lists read as not found.
func (s *Store) GetList(ctx context.Context, id string) (*domain.List, error) {
	list, err := s.Lists.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("get list: %w", err)
	}
	if list.IsDeleted() {
		return nil, ErrListNotFound
	}
	return list, nil
}

// UpdateList persists changes to a list and reindexes it.
func (s *Store) UpdateList(ctx context.Context, list *domain.List) error {
	list.Touch()
	if err := s.Lists.Update(ctx, list.ID, list); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrListNotFound
		}
		return fmt.Errorf("update list: %w", err)
	}
	if err := s.searchIndexer.IndexList(list); err != nil {
		s.logger.Warn("failed to reindex list", "listId", list.ID, "error", err)
	}
	return nil
}

// SoftDeleteList marks a list as deleted and drops it from the search
// index. The record stays; its slug remains claimed by it forever, which
// is why new slugs are probed against live lists only.
func (s *Store) SoftDeleteList(ctx context.Context, id string) error {
	list, err := s.GetList(ctx, id)
	if err != nil {
		return err
	}
	list.MarkDeleted()
	if err := s.Lists.Update(ctx, list.ID, list); err != nil {
		return fmt.Errorf("soft delete list: %w", err)
	}
	if err := s.searchIndexer.DeleteList(id); err != nil {
		s.logger.Warn("failed to remove list from index", "listId", id, "error", err)
	}
	return nil
}

// ListListsByCompany returns all non-deleted lists in a company.
func (s *Store) ListListsByCompany(ctx context.Context, companyID string) ([]*domain.List, error) {
	return s.Lists.Find(ctx, func(l *domain.List) bool {
		return l.CompanyID == companyID && !l.IsDeleted()
	})
}

// ListAllLists returns every tenant's non-deleted lists. Serves
// platform-admin reads that span companies.
func (s *Store) ListAllLists(ctx context.Context) ([]*domain.List, error) {
	return s.Lists.Find(ctx, func(l *domain.List) bool {
		return !l.IsDeleted()
	})
}

// ListSlugExists reports whether a live list owned by the user within the
// company already uses the slug. Soft-deleted lists do not block reuse.
func (s *Store) ListSlugExists(ctx context.Context, companyID, ownerUserID, slug string) (bool, error) {
	matches, err := s.Lists.Find(ctx, func(l *domain.List) bool {
		return l.CompanyID == companyID && l.OwnerUserID == ownerUserID &&
			l.Slug == slug && !l.IsDeleted()
	})
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

// ListsContainingBook returns non-deleted lists in the company that
// reference the book. Used to strip items when a book is hard-deleted.
func (s *Store) ListsContainingBook(ctx context.Context, companyID, bookID string) ([]*domain.List, error) {
	return s.Lists.Find(ctx, func(l *domain.List) bool {
		return l.CompanyID == companyID && !l.IsDeleted() && l.ContainsBook(bookID)
	})
}
