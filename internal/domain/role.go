package domain

// Role represents the user's permission level in the system.
//
// The four roles form a strict hierarchy:
//
//	admin > companyAdmin > storeAdmin > librarian
//
// admin is platform staff and crosses tenant boundaries; everyone else
// is confined to their own company.
type Role string

const (
	// RoleAdmin grants platform-wide administrative access across all companies.
	RoleAdmin Role = "admin"
	// RoleCompanyAdmin grants administrative access within a single company.
	RoleCompanyAdmin Role = "companyAdmin"
	// RoleStoreAdmin grants management access within a single store.
	RoleStoreAdmin Role = "storeAdmin"
	// RoleLibrarian grants content-curation access to explicitly assigned items.
	RoleLibrarian Role = "librarian"
)

// privilege orders roles for comparisons; higher means more access.
var privilege = map[Role]int{
	RoleAdmin:        4,
	RoleCompanyAdmin: 3,
	RoleStoreAdmin:   2,
	RoleLibrarian:    1,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := privilege[r]
	return ok
}

// AtLeast reports whether r has privilege greater than or equal to other.
func (r Role) AtLeast(other Role) bool {
	return privilege[r] >= privilege[other]
}

// Outranks reports whether r has strictly higher privilege than other.
func (r Role) Outranks(other Role) bool {
	return privilege[r] > privilege[other]
}

// RequiresStore reports whether users holding this role must be assigned
// to a store. Store admins and librarians operate within one store;
// admins and company admins do not.
func (r Role) RequiresStore() bool {
	return r == RoleStoreAdmin || r == RoleLibrarian
}
