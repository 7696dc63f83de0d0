package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/staffpicks/staffpicks-server/internal/scope"
	"github.com/staffpicks/staffpicks-server/internal/search"
	"github.com/staffpicks/staffpicks-server/internal/store"
)

// SearchService runs federated search over books and lists, applying the
// caller's visibility scope on top of the index's tenant filter.
type SearchService struct {
	store  *store.Store
	index  *search.SearchIndex
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(st *store.Store, index *search.SearchIndex, logger *slog.Logger) *SearchService {
	return &SearchService{store: st, index: index, logger: logger}
}

// Search executes a query within the caller's reach: tenant callers get
// their own company, platform admins get every tenant or one named
// company. The index filters by tenant; role-based visibility and the
// deleted-author exclusion are
// applied by re-checking each hit against the live record, so a stale
// index entry can reduce but never widen what a caller sees.
//
// Facet counts come from the pre-filter result set and may overcount for
// store-scoped callers.
func (s *SearchService) Search(ctx context.Context, access scope.Access, params search.SearchParams) (*search.SearchResult, error) {
	// Tenant callers search their own company no matter what the request
	// says. Platform admins search every tenant, or one tenant when the
	// request names a company.
	params.CompanyID = scopeCompany(access, params.CompanyID)

	result, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	var excluded scope.ExcludeDeletedAuthors
	if params.CompanyID == "" {
		excluded, err = deletedAuthorsEverywhere(ctx, s.store)
	} else {
		excluded, err = deletedAuthors(ctx, s.store, params.CompanyID)
	}
	if err != nil {
		return nil, err
	}

	visible := make([]search.SearchHit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ok, err := s.hitVisible(ctx, access, excluded, hit)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, hit)
		}
	}

	dropped := len(result.Hits) - len(visible)
	if dropped > 0 {
		result.Total -= uint64(dropped)
	}
	result.Hits = visible
	return result, nil
}

// hitVisible re-validates one hit against the store. Hits whose backing
// record has vanished are dropped silently; the index catches up on the
// next write or rebuild.
func (s *SearchService) hitVisible(ctx context.Context, access scope.Access, excluded scope.ExcludeDeletedAuthors, hit search.SearchHit) (bool, error) {
	switch hit.Type {
	case search.DocTypeBook:
		book, err := s.store.GetBook(ctx, hit.ID)
		if err != nil {
			if errors.Is(err, store.ErrBookNotFound) {
				return false, nil
			}
			return false, fmt.Errorf("revalidate book hit: %w", err)
		}
		return access.CanSeeBook(book) && !excluded.Excludes(book.CreatedBy), nil
	case search.DocTypeList:
		list, err := s.store.GetList(ctx, hit.ID)
		if err != nil {
			if errors.Is(err, store.ErrListNotFound) {
				return false, nil
			}
			return false, fmt.Errorf("revalidate list hit: %w", err)
		}
		return access.CanSeeList(list) && !excluded.Excludes(list.CreatedBy), nil
	}
	return false, nil
}

// Rebuild drops the index and reindexes every live book and list. Used
// at startup after a mapping change and by operational tooling.
func (s *SearchService) Rebuild(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	var docs []*search.SearchDocument
	for book, err := range s.store.Books.List(ctx) {
		if err != nil {
			return fmt.Errorf("scan books: %w", err)
		}
		docs = append(docs, search.BookToSearchDocument(book))
	}
	for list, err := range s.store.Lists.List(ctx) {
		if err != nil {
			return fmt.Errorf("scan lists: %w", err)
		}
		if !list.IsDeleted() {
			docs = append(docs, search.ListToSearchDocument(list))
		}
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("reindex documents: %w", err)
	}

	s.logger.Info("search index rebuilt", "documents", len(docs))
	return nil
}
