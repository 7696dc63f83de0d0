// Package scope implements the role-scoped visibility and mutation policy
// for multi-tenant data access.
//
// Every read is implicitly tenant-scoped: an Access value derived from the
// session decides which records are visible, and per-entity write checks
// decide which are mutable. Write scope is deliberately not identical to
// read scope (a companyAdmin reads every list in the company but may not
// edit any of them).
package scope

import (
	"github.com/staffpicks/staffpicks-server/internal/domain"
)

// Access captures the identity claims a request acts under.
type Access struct {
	UserID    string
	Role      domain.Role
	CompanyID string // empty only for platform admins
	StoreID   string // set only for storeAdmin and librarian
}

// ForUser derives the access scope from a freshly revalidated user record.
func ForUser(u *domain.User) Access {
	return Access{
		UserID:    u.ID,
		Role:      u.Role,
		CompanyID: u.CompanyID,
		StoreID:   u.StoreID,
	}
}

// sameCompany reports whether the record's company matches the caller's.
// Platform admins cross tenant boundaries.
func (a Access) sameCompany(companyID string) bool {
	if a.Role == domain.RoleAdmin {
		return true
	}
	return a.CompanyID != "" && a.CompanyID == companyID
}

// CanSeeCompany reports whether the caller may read the company record.
func (a Access) CanSeeCompany(c *domain.Company) bool {
	return a.sameCompany(c.ID)
}

// CanSeeStore reports whether the caller may read the store record.
func (a Access) CanSeeStore(s *domain.Store) bool {
	return a.sameCompany(s.CompanyID)
}

// CanSeeUser reports whether the caller may read the user record.
// Soft-deleted users are invisible to everyone. Librarians see only
// themselves; storeAdmins see their own store's staff.
func (a Access) CanSeeUser(u *domain.User) bool {
	if u.IsDeleted() {
		return false
	}
	if a.Role == domain.RoleAdmin {
		return true
	}
	if !a.sameCompany(u.CompanyID) {
		return false
	}
	switch a.Role {
	case domain.RoleCompanyAdmin:
		return true
	case domain.RoleStoreAdmin:
		return u.StoreID == a.StoreID || u.ID == a.UserID
	case domain.RoleLibrarian:
		return u.ID == a.UserID
	}
	return false
}

// CanSeeBook reports whether the caller may read the book.
//
// Librarian visibility keys on the current assignment set, not
// authorship: a librarian unassigned from a book they created loses
// sight of it.
func (a Access) CanSeeBook(b *domain.Book) bool {
	if a.Role == domain.RoleAdmin {
		return true
	}
	if !a.sameCompany(b.CompanyID) {
		return false
	}
	switch a.Role {
	case domain.RoleCompanyAdmin:
		return true
	case domain.RoleStoreAdmin:
		return b.StoreID == a.StoreID
	case domain.RoleLibrarian:
		return b.IsAssignedTo(a.UserID)
	}
	return false
}

// CanSeeList reports whether the caller may read the list.
// Soft-deleted lists are invisible to everyone.
func (a Access) CanSeeList(l *domain.List) bool {
	if l.IsDeleted() {
		return false
	}
	if a.Role == domain.RoleAdmin {
		return true
	}
	if !a.sameCompany(l.CompanyID) {
		return false
	}
	switch a.Role {
	case domain.RoleCompanyAdmin:
		return true
	case domain.RoleStoreAdmin:
		return l.StoreID == a.StoreID
	case domain.RoleLibrarian:
		return l.IsAssignedTo(a.UserID)
	}
	return false
}

// CanCreateList reports whether the caller may create lists.
// companyAdmin is a viewer-only role for lists.
func (a Access) CanCreateList() bool {
	switch a.Role {
	case domain.RoleAdmin, domain.RoleStoreAdmin, domain.RoleLibrarian:
		return true
	}
	return false
}

// CanWriteList reports whether the caller may update or delete the list.
// companyAdmin reads every list in the company but edits none.
func (a Access) CanWriteList(l *domain.List) bool {
	if a.Role == domain.RoleCompanyAdmin {
		return false
	}
	return a.CanSeeList(l)
}

// CanSetAssignments reports whether an update from this caller may
// change assignedTo and sections on books and lists. Librarian updates
// silently drop those fields rather than failing.
func (a Access) CanSetAssignments() bool {
	return a.Role != domain.RoleLibrarian
}

// CanCreateBook reports whether the caller may add books to the catalog.
func (a Access) CanCreateBook() bool {
	return a.Role.Valid()
}

// CanWriteBook reports whether the caller may update or delete the book.
func (a Access) CanWriteBook(b *domain.Book) bool {
	return a.CanSeeBook(b)
}

// CanWriteStore reports whether the caller may create, update, or delete
// stores in the given company.
func (a Access) CanWriteStore(companyID string) bool {
	switch a.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleCompanyAdmin:
		return a.sameCompany(companyID)
	}
	return false
}

// CanWriteCompany reports whether the caller may update tenant settings.
func (a Access) CanWriteCompany(companyID string) bool {
	switch a.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleCompanyAdmin:
		return a.sameCompany(companyID)
	}
	return false
}

// CanManageUser reports whether the caller may create, edit, or change
// the status of the target user. Self-targeted management (status
// changes, deletion) is always refused; users edit themselves through
// the profile surface instead.
//
// The privilege matrix:
//   - admin manages anyone
//   - companyAdmin manages storeAdmins and librarians in their company,
//     but never admins or fellow companyAdmins
//   - storeAdmin manages only librarians in their own store
//   - librarian manages no one
func (a Access) CanManageUser(target *domain.User) bool {
	if target.ID == a.UserID {
		return false
	}
	switch a.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleCompanyAdmin:
		if !a.sameCompany(target.CompanyID) {
			return false
		}
		return target.Role != domain.RoleAdmin && target.Role != domain.RoleCompanyAdmin
	case domain.RoleStoreAdmin:
		return a.sameCompany(target.CompanyID) &&
			target.Role == domain.RoleLibrarian &&
			target.StoreID == a.StoreID
	}
	return false
}

// CanCreateUserWithRole reports whether the caller may create a user
// holding the given role.
func (a Access) CanCreateUserWithRole(role domain.Role) bool {
	switch a.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleCompanyAdmin:
		return role != domain.RoleAdmin && role != domain.RoleCompanyAdmin
	case domain.RoleStoreAdmin:
		return role == domain.RoleLibrarian
	}
	return false
}

// CanSoftDeleteUser reports whether the caller may soft-delete the target.
// Only admin and companyAdmin hold delete rights, never against
// themselves.
func (a Access) CanSoftDeleteUser(target *domain.User) bool {
	if a.Role != domain.RoleAdmin && a.Role != domain.RoleCompanyAdmin {
		return false
	}
	return a.CanManageUser(target)
}

// ExcludeDeletedAuthors filters content authored by soft-deleted users.
// The deleted set is materialized first (one pass over the company's
// users), then applied as a predicate; content from merely inactive or
// suspended authors stays visible.
type ExcludeDeletedAuthors map[string]struct{}

// NewExcludeDeletedAuthors builds the exclusion set from a user scan.
func NewExcludeDeletedAuthors(users []*domain.User) ExcludeDeletedAuthors {
	set := make(ExcludeDeletedAuthors)
	for _, u := range users {
		if u.IsDeleted() {
			set[u.ID] = struct{}{}
		}
	}
	return set
}

// Excludes reports whether content created by the given user is hidden.
func (e ExcludeDeletedAuthors) Excludes(createdBy string) bool {
	_, hidden := e[createdBy]
	return hidden
}
