package domain

import "time"

// UserStatus represents the user's account status. Status is a reversible
// operational toggle; removal from the system is a separate soft delete.
type UserStatus string

const (
	// UserStatusActive indicates the user can log in and use the system.
	UserStatusActive UserStatus = "active"
	// UserStatusInactive indicates a deactivated account (e.g. on leave).
	UserStatusInactive UserStatus = "inactive"
	// UserStatusSuspended indicates an account blocked by an administrator.
	UserStatusSuspended UserStatus = "suspended"
)

// Valid reports whether s is a known user status.
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended:
		return true
	}
	return false
}

// CanTransitionTo reports whether a status change from s to target is
// allowed. active and inactive toggle freely, either can be suspended,
// and a suspended account can only be reactivated.
func (s UserStatus) CanTransitionTo(target UserStatus) bool {
	if s == target {
		return false
	}
	switch s {
	case UserStatusActive:
		return target == UserStatusInactive || target == UserStatusSuspended
	case UserStatusInactive:
		return target == UserStatusActive || target == UserStatusSuspended
	case UserStatusSuspended:
		return target == UserStatusActive
	}
	return false
}

// User represents a staff account in the system. Every user belongs to a
// company; store admins and librarians are additionally pinned to a store.
type User struct {
	Tracked
	CompanyID    string     `json:"companyId"`
	StoreID      string     `json:"storeId,omitempty"` // required for storeAdmin and librarian
	Email        string     `json:"email"`
	PasswordHash string     `json:"passwordHash,omitempty"` // Stored hashed, filter from API responses
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	DisplayName  string     `json:"displayName,omitempty"`
	AvatarURL    string     `json:"avatarUrl,omitempty"`
	// Sections are content-category tags limiting what a librarian curates.
	Sections []string `json:"sections,omitempty"`

	// Login lockout bookkeeping.
	FailedLoginAttempts int        `json:"failedLoginAttempts,omitempty"`
	LockedUntil         *time.Time `json:"lockedUntil,omitempty"`
	LastLoginAt         *time.Time `json:"lastLoginAt,omitempty"`
	LastLoginIP         string     `json:"lastLoginIp,omitempty"`
}

// IsActive returns true if the user can log in and use the system.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsLocked returns true if the user is under a login lockout window.
func (u *User) IsLocked() bool {
	return u.LockedUntil != nil && time.Now().Before(*u.LockedUntil)
}

// RecordFailedLogin increments the failure counter and, once the counter
// reaches maxAttempts, locks the account for lockFor.
func (u *User) RecordFailedLogin(maxAttempts int, lockFor time.Duration) {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= maxAttempts {
		until := time.Now().Add(lockFor)
		u.LockedUntil = &until
	}
	u.Touch()
}

// RecordSuccessfulLogin resets the lockout state and stamps the login.
func (u *User) RecordSuccessfulLogin(ip string) {
	now := time.Now()
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
	u.LastLoginAt = &now
	u.LastLoginIP = ip
	u.Touch()
}

// FullName returns the user's full name, composed from first and last names.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.DisplayName
	}
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Name returns the best available name to display for the user.
// Prefers DisplayName, falls back to FullName, then email.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	fullName := u.FullName()
	if fullName != "" {
		return fullName
	}
	return u.Email
}
