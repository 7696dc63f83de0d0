package domain

import "time"

// CompanyStatus represents a tenant's subscription state.
type CompanyStatus string

const (
	// CompanyStatusTrial is the initial state after signup.
	CompanyStatusTrial CompanyStatus = "trial"
	// CompanyStatusActive indicates a paying tenant.
	CompanyStatusActive CompanyStatus = "active"
	// CompanyStatusSuspended blocks logins for the whole tenant.
	CompanyStatusSuspended CompanyStatus = "suspended"
)

// Valid reports whether s is a known company status.
func (s CompanyStatus) Valid() bool {
	switch s {
	case CompanyStatusTrial, CompanyStatusActive, CompanyStatusSuspended:
		return true
	}
	return false
}

// TrialPeriod is how long a new company stays on trial after signup.
const TrialPeriod = 30 * 24 * time.Hour

// CompanySettings holds tenant-level feature flags.
type CompanySettings struct {
	PublicListsEnabled bool `json:"publicListsEnabled"`
	ISBNLookupEnabled  bool `json:"isbnLookupEnabled"`
}

// DefaultCompanySettings returns the settings applied to new tenants.
func DefaultCompanySettings() CompanySettings {
	return CompanySettings{
		PublicListsEnabled: true,
		ISBNLookupEnabled:  true,
	}
}

// Company is a tenant: a bookstore business owning stores, users, books,
// and lists. All tenant-scoped records carry its ID.
type Company struct {
	Tracked
	Name        string          `json:"name"`
	Slug        string          `json:"slug"` // globally unique, URL-safe
	Status      CompanyStatus   `json:"status"`
	Plan        string          `json:"plan,omitempty"`
	TrialEndsAt *time.Time      `json:"trialEndsAt,omitempty"`
	Email       string          `json:"email,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Website     string          `json:"website,omitempty"`
	Address     string          `json:"address,omitempty"`
	LogoURL     string          `json:"logoUrl,omitempty"`
	Settings    CompanySettings `json:"settings"`
}

// NewTrialCompany builds a company in its signup state: trial status with
// the trial clock started from now.
func NewTrialCompany(name, slug string) *Company {
	ends := time.Now().Add(TrialPeriod)
	c := &Company{
		Name:        name,
		Slug:        slug,
		Status:      CompanyStatusTrial,
		Plan:        "trial",
		TrialEndsAt: &ends,
		Settings:    DefaultCompanySettings(),
	}
	c.InitTimestamps()
	return c
}

// TrialExpired reports whether the trial window has passed.
// Always false for companies not on trial.
func (c *Company) TrialExpired() bool {
	if c.Status != CompanyStatusTrial || c.TrialEndsAt == nil {
		return false
	}
	return time.Now().After(*c.TrialEndsAt)
}
