// Package search provides full-text search functionality using Bleve.
// It enables federated search across books and curated lists with faceted
// filtering and fuzzy matching, scoped to a single company per query.
package search

import (
	"github.com/staffpicks/staffpicks-server/internal/domain"
)

// DocType represents the type of document in the unified index.
type DocType string

// Document types for the search index.
const (
	DocTypeBook DocType = "book"
	DocTypeList DocType = "list"
)

// SearchDocument is the unified document structure for the Bleve index.
// All searchable entities are indexed as SearchDocuments with type
// discrimination.
//
// Design note: author names and the staff recommendation are denormalized
// into book documents so a single query covers everything a bookseller
// would type into the search box.
type SearchDocument struct {
	// Identity
	ID   string  `json:"id"`   // Original entity ID (book-xxx, list-xxx)
	Type DocType `json:"type"` // Discriminator for result grouping

	// Tenancy - every query filters on company_id
	CompanyID string `json:"company_id"`
	StoreID   string `json:"store_id,omitempty"`

	// Primary searchable text: book title or list title
	Name string `json:"name"`

	// Book-specific fields (empty for lists)
	Subtitle  string `json:"subtitle,omitempty"`
	Author    string `json:"author,omitempty"` // Denormalized for search
	Publisher string `json:"publisher,omitempty"`
	Genre     string `json:"genre,omitempty"`
	Tone      string `json:"tone,omitempty"`
	AgeGroup  string `json:"age_group,omitempty"`

	// Shared text fields
	Description    string `json:"description,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`

	// Section tags for exact filtering
	Sections []string `json:"sections,omitempty"`

	// List-specific fields
	Visibility string `json:"visibility,omitempty"`
	ItemCount  int    `json:"item_count,omitempty"`

	// Timestamps for sorting
	CreatedAt int64 `json:"created_at"` // Unix millis
	UpdatedAt int64 `json:"updated_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// This ensures field names match the Bleve index mapping.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *SearchDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"type":       string(d.Type),
		"company_id": d.CompanyID,
		"name":       d.Name,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	// Optional fields - only add if non-empty
	if d.StoreID != "" {
		m["store_id"] = d.StoreID
	}
	if d.Subtitle != "" {
		m["subtitle"] = d.Subtitle
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.Author != "" {
		m["author"] = d.Author
	}
	if d.Publisher != "" {
		m["publisher"] = d.Publisher
	}
	if d.Genre != "" {
		m["genre"] = d.Genre
	}
	if d.Tone != "" {
		m["tone"] = d.Tone
	}
	if d.AgeGroup != "" {
		m["age_group"] = d.AgeGroup
	}
	if d.Recommendation != "" {
		m["recommendation"] = d.Recommendation
	}
	if len(d.Sections) > 0 {
		m["sections"] = d.Sections
	}
	if d.Visibility != "" {
		m["visibility"] = d.Visibility
	}
	if d.ItemCount > 0 {
		m["item_count"] = d.ItemCount
	}

	return m
}

// BookToSearchDocument converts a domain Book to a SearchDocument.
func BookToSearchDocument(book *domain.Book) *SearchDocument {
	return &SearchDocument{
		ID:             book.ID,
		Type:           DocTypeBook,
		CompanyID:      book.CompanyID,
		StoreID:        book.StoreID,
		Name:           book.BookData.Title,
		Subtitle:       book.BookData.Subtitle,
		Description:    book.BookData.Description,
		Author:         book.AuthorLine(),
		Publisher:      book.BookData.Publisher,
		Genre:          book.Genre,
		Tone:           book.Tone,
		AgeGroup:       book.AgeGroup,
		Recommendation: book.Recommendation,
		Sections:       book.Sections,
		CreatedAt:      book.CreatedAt.UnixMilli(),
		UpdatedAt:      book.UpdatedAt.UnixMilli(),
	}
}

// ListToSearchDocument converts a domain List to a SearchDocument.
// Soft-deleted lists are never indexed; callers delete instead.
func ListToSearchDocument(list *domain.List) *SearchDocument {
	return &SearchDocument{
		ID:          list.ID,
		Type:        DocTypeList,
		CompanyID:   list.CompanyID,
		StoreID:     list.StoreID,
		Name:        list.Title,
		Description: list.Description,
		Sections:    list.Sections,
		Visibility:  string(list.Visibility),
		ItemCount:   len(list.Items),
		CreatedAt:   list.CreatedAt.UnixMilli(),
		UpdatedAt:   list.UpdatedAt.UnixMilli(),
	}
}
