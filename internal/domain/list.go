package domain

import "time"

// ListVisibility controls where a list is exposed. Drafts are staff-only,
// unlisted lists are reachable by direct link, and public lists appear on
// customer-facing surfaces.
type ListVisibility string

const (
	ListVisibilityDraft    ListVisibility = "draft"
	ListVisibilityUnlisted ListVisibility = "unlisted"
	ListVisibilityPublic   ListVisibility = "public"
)

// Valid reports whether v is a known visibility.
func (v ListVisibility) Valid() bool {
	switch v {
	case ListVisibilityDraft, ListVisibilityUnlisted, ListVisibilityPublic:
		return true
	}
	return false
}

// ListItem is one entry on a curated list. Positions are zero-based and
// dense: after any removal the remaining items are renumbered 0..n-1.
type ListItem struct {
	BookID         string    `json:"bookId"`
	Position       int       `json:"position"`
	Recommendation string    `json:"recommendation,omitempty"` // staff blurb for this title
	AddedAt        time.Time `json:"addedAt"`
}

// List is a curated, ordered collection of book references. Lists belong
// to a company and a store; librarians see only lists whose AssignedTo
// contains them. The slug is unique per (company, owner) among non-deleted
// lists.
type List struct {
	Tracked
	CompanyID   string `json:"companyId"`
	StoreID     string `json:"storeId,omitempty"`
	OwnerUserID string `json:"ownerUserId"`
	CreatedBy   string `json:"createdBy"`
	UpdatedBy   string `json:"updatedBy,omitempty"`

	Title         string         `json:"title"`
	Slug          string         `json:"slug"`
	Description   string         `json:"description,omitempty"`
	CoverImageURL string         `json:"coverImageUrl,omitempty"`
	Visibility    ListVisibility `json:"visibility"`

	// AssignedTo holds the librarian user IDs permitted to see and manage
	// this list. Sections are content-category tags.
	AssignedTo []string `json:"assignedTo,omitempty"`
	Sections   []string `json:"sections,omitempty"`

	Items []ListItem `json:"items"`

	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
	UnpublishedAt *time.Time `json:"unpublishedAt,omitempty"`
}

// IsAssignedTo reports whether the user appears in the list's assignment set.
func (l *List) IsAssignedTo(userID string) bool {
	for _, id := range l.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}

// ContainsBook reports whether the book already appears on the list.
func (l *List) ContainsBook(bookID string) bool {
	for _, item := range l.Items {
		if item.BookID == bookID {
			return true
		}
	}
	return false
}

// AddItem appends a book at the end of the list. Returns false if the
// book is already present.
func (l *List) AddItem(bookID, recommendation string) bool {
	if l.ContainsBook(bookID) {
		return false
	}
	l.Items = append(l.Items, ListItem{
		BookID:         bookID,
		Position:       len(l.Items),
		Recommendation: recommendation,
		AddedAt:        time.Now(),
	})
	l.Touch()
	return true
}

// RemoveItem deletes a book from the list and renumbers the remaining
// items so positions stay dense. Returns false if the book was not on
// the list.
func (l *List) RemoveItem(bookID string) bool {
	idx := -1
	for i, item := range l.Items {
		if item.BookID == bookID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	l.Items = append(l.Items[:idx], l.Items[idx+1:]...)
	for i := range l.Items {
		l.Items[i].Position = i
	}
	l.Touch()
	return true
}

// Reorder moves a book to the given position, shifting everything else.
// Positions outside the list are clamped. Returns false if the book is
// not on the list.
func (l *List) Reorder(bookID string, position int) bool {
	idx := -1
	for i, item := range l.Items {
		if item.BookID == bookID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	if position < 0 {
		position = 0
	}
	if position >= len(l.Items) {
		position = len(l.Items) - 1
	}

	moved := l.Items[idx]
	rest := append(l.Items[:idx:idx], l.Items[idx+1:]...)
	l.Items = append(rest[:position:position], append([]ListItem{moved}, rest[position:]...)...)
	for i := range l.Items {
		l.Items[i].Position = i
	}
	l.Touch()
	return true
}

// SetVisibility applies a visibility change. Moving to public stamps
// PublishedAt; leaving public stamps UnpublishedAt. No-op when unchanged.
func (l *List) SetVisibility(v ListVisibility) {
	if l.Visibility == v {
		return
	}
	now := time.Now()
	wasPublic := l.Visibility == ListVisibilityPublic
	l.Visibility = v
	if v == ListVisibilityPublic {
		l.PublishedAt = &now
	} else if wasPublic {
		l.UnpublishedAt = &now
	}
	l.Touch()
}
