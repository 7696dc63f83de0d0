// Package store provides persistent storage backed by BadgerDB.
//
// Each entity type lives under its own key prefix with optional unique
// secondary indexes ("prefix+idx:name:key" -> id). Uniqueness that must
// survive soft deletes (list slugs) is enforced by the service layer with
// a lookup loop instead of an index, since soft-deleted records keep
// their slugs.
package store

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/staffpicks/staffpicks-server/internal/domain"
	"github.com/staffpicks/staffpicks-server/internal/logger"
)

// SearchIndexer receives entity change notifications for search indexing.
// Implemented by the search package; a no-op implementation is used when
// search is disabled.
type SearchIndexer interface {
	IndexBook(book *domain.Book) error
	DeleteBook(bookID string) error
	IndexList(list *domain.List) error
	DeleteList(listID string) error
}

// NoopSearchIndexer discards all indexing notifications.
type NoopSearchIndexer struct{}

func (NoopSearchIndexer) IndexBook(*domain.Book) error { return nil }
func (NoopSearchIndexer) DeleteBook(string) error      { return nil }
func (NoopSearchIndexer) IndexList(*domain.List) error { return nil }
func (NoopSearchIndexer) DeleteList(string) error      { return nil }

// Store provides persistent storage using BadgerDB.
type Store struct {
	db            *badger.DB
	logger        *logger.Logger
	searchIndexer SearchIndexer

	Companies *Entity[domain.Company]
	Stores    *Entity[domain.Store]
	Users     *Entity[domain.User]
	Books     *Entity[domain.Book]
	Lists     *Entity[domain.List]
}

// New creates a new Store instance with BadgerDB at the given path.
func New(dbPath string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.New(logger.Config{Writer: io.Discard})
	}

	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Disable badger's default logger
	opts.SyncWrites = true
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	s := &Store{
		db:            db,
		logger:        log,
		searchIndexer: NoopSearchIndexer{},
	}

	s.initCompanies()
	s.initStores()
	s.initUsers()
	s.initBooks()
	s.initLists()

	return s, nil
}

// SetSearchIndexer wires the search indexer after store creation.
// The search index depends on the store for rebuilds, so this breaks
// the construction cycle.
func (s *Store) SetSearchIndexer(indexer SearchIndexer) {
	if indexer == nil {
		indexer = NoopSearchIndexer{}
	}
	s.searchIndexer = indexer
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeEmail lowercases and trims an email for index storage and lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Store) initCompanies() {
	s.Companies = NewEntity[domain.Company](s, "company:").
		WithIndex("slug", func(c *domain.Company) []string {
			if c.Slug == "" {
				return nil
			}
			return []string{c.Slug}
		})
}

func (s *Store) initStores() {
	// Store codes are unique per company, not globally.
	s.Stores = NewEntity[domain.Store](s, "storefront:").
		WithIndex("code", func(st *domain.Store) []string {
			if st.CompanyID == "" || st.Code == "" {
				return nil
			}
			return []string{st.CompanyID + "/" + st.Code}
		})
}

func (s *Store) initUsers() {
	// Email uniqueness is platform-wide and case-insensitive. Soft-deleted
	// users keep their index entry, which blocks email reuse deliberately.
	s.Users = NewEntity[domain.User](s, "user:").
		WithIndexTransform("email",
			func(u *domain.User) []string {
				if u.Email == "" {
					return nil
				}
				return []string{normalizeEmail(u.Email)}
			},
			normalizeEmail,
		)
}

func (s *Store) initBooks() {
	// One catalog entry per ISBN per owner within a company.
	s.Books = NewEntity[domain.Book](s, "book:").
		WithIndex("isbn", func(b *domain.Book) []string {
			if b.ISBN == "" {
				return nil
			}
			return []string{b.CompanyID + "/" + b.OwnerUserID + "/" + b.ISBN}
		})
}

func (s *Store) initLists() {
	s.Lists = NewEntity[domain.List](s, "list:")
}
