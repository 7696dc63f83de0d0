package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/staffpicks/staffpicks-server/internal/domain"
)

var (
	// ErrBookNotFound is returned when a book cannot be found.
	ErrBookNotFound = errors.New("book not found")
	// ErrBookExists is returned when the owner already has a catalog entry
	// for the ISBN within the company.
	ErrBookExists = errors.New("book already in catalog")
)

// CreateBook adds a book to the catalog and pushes it to the search index.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	book.InitTimestamps()
	if err := s.Books.Create(ctx, book.ID, book); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return ErrBookExists
		}
		return fmt.Errorf("create book: %w", err)
	}
	if err := s.searchIndexer.IndexBook(book); err != nil {
		s.logger.Warn("failed to index book", "bookId", book.ID, "error", err)
	}
	return nil
}

// GetBook retrieves a book by ID.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.Books.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// UpdateBook persists changes to a book and reindexes it.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	book.Touch()
	if err := s.Books.Update(ctx, book.ID, book); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrBookNotFound
		}
		if errors.Is(err, ErrAlreadyExists) {
			return ErrBookExists
		}
		return fmt.Errorf("update book: %w", err)
	}
	if err := s.searchIndexer.IndexBook(book); err != nil {
		s.logger.Warn("failed to reindex book", "bookId", book.ID, "error", err)
	}
	return nil
}

// DeleteBook removes a book permanently. Books are hard-deleted; only
// users and lists soft-delete.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	if err := s.Books.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if err := s.searchIndexer.DeleteBook(id); err != nil {
		s.logger.Warn("failed to remove book from index", "bookId", id, "error", err)
	}
	return nil
}

// ListBooksByCompany returns all books in a company's catalog.
func (s *Store) ListBooksByCompany(ctx context.Context, companyID string) ([]*domain.Book, error) {
	return s.Books.Find(ctx, func(b *domain.Book) bool {
		return b.CompanyID == companyID
	})
}

// ListAllBooks returns every tenant's catalog. Serves platform-admin
// reads that span companies.
func (s *Store) ListAllBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.Books.Find(ctx, func(*domain.Book) bool { return true })
}
