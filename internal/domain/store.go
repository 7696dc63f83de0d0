package domain

// StoreStatus represents a store's operational state. Unlike users and
// lists, stores are never soft-deleted; an inactive store keeps its
// history and can be brought back.
type StoreStatus string

const (
	// StoreStatusActive is a normally operating store.
	StoreStatusActive StoreStatus = "active"
	// StoreStatusInactive hides the store from public surfaces.
	StoreStatusInactive StoreStatus = "inactive"
	// StoreStatusMaintenance marks a store temporarily offline.
	StoreStatusMaintenance StoreStatus = "maintenance"
)

// Valid reports whether s is a known store status.
func (s StoreStatus) Valid() bool {
	switch s {
	case StoreStatusActive, StoreStatusInactive, StoreStatusMaintenance:
		return true
	}
	return false
}

// DefaultStoreCode is the code given to the store created during signup.
const DefaultStoreCode = "main"

// Store is a physical or virtual bookstore location within a company.
// Its code is unique within the company and appears in URLs and reports.
type Store struct {
	Tracked
	CompanyID string      `json:"companyId"`
	Name      string      `json:"name"`
	Code      string      `json:"code"` // unique per company
	Status    StoreStatus `json:"status"`
	Address   string      `json:"address,omitempty"`
	City      string      `json:"city,omitempty"`
	Region    string      `json:"region,omitempty"`
	Country   string      `json:"country,omitempty"`
	Phone     string      `json:"phone,omitempty"`
}

// NewStore builds an active store for the given company.
func NewStore(companyID, name, code string) *Store {
	s := &Store{
		CompanyID: companyID,
		Name:      name,
		Code:      code,
		Status:    StoreStatusActive,
	}
	s.InitTimestamps()
	return s
}
