// Package domain contains the core business entities and domain logic for the StaffPicks curation platform.
package domain

// BookData is the bibliographic record nested inside a Book, as returned
// by ISBN lookup or entered by staff.
type BookData struct {
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	Publisher   string   `json:"publisher,omitempty"`
	PublishDate string   `json:"publishDate,omitempty"`
	PageCount   int      `json:"pageCount,omitempty"`
	Language    string   `json:"language,omitempty"`
	Description string   `json:"description,omitempty"`

	// Cover image as served by the upload proxy.
	CoverURL      string `json:"coverUrl,omitempty"`
	CoverBlurhash string `json:"coverBlurhash,omitempty"`
}

// Book is a catalog item owned by a company. Books are hard-deleted when
// removed; duplicate detection keys on (company, owner, ISBN).
type Book struct {
	Tracked
	CompanyID string `json:"companyId"`
	StoreID   string `json:"storeId,omitempty"`

	ISBN     string   `json:"isbn"`
	BookData BookData `json:"bookData"`

	// Facet tags used for filtering and grouping.
	Genre    string `json:"genre,omitempty"`
	Tone     string `json:"tone,omitempty"`
	AgeGroup string `json:"ageGroup,omitempty"`

	PurchaseLink   string `json:"purchaseLink,omitempty"`
	Recommendation string `json:"recommendation,omitempty"` // staff blurb

	// Ownership and audit references.
	OwnerUserID string `json:"ownerUserId"`
	CreatedBy   string `json:"createdBy"`
	UpdatedBy   string `json:"updatedBy,omitempty"`

	// AssignedTo holds the librarian user IDs permitted to see and manage
	// this book under the librarian visibility rule.
	AssignedTo []string `json:"assignedTo,omitempty"`
	// Sections are content-category tags (e.g. "fiction", "kids").
	Sections []string `json:"sections,omitempty"`
}

// IsAssignedTo reports whether the user appears in the book's assignment set.
func (b *Book) IsAssignedTo(userID string) bool {
	for _, id := range b.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}

// AuthorLine returns the authors joined for display and search.
func (b *Book) AuthorLine() string {
	authors := b.BookData.Authors
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	}
	line := authors[0]
	for _, a := range authors[1:] {
		line += ", " + a
	}
	return line
}
