package auth

import (
	"time"

	"github.com/staffpicks/staffpicks-server/internal/domain"
)

// SessionClaims represents the claims stored in a PASETO session token.
// These are encrypted in v4.local tokens, so they're not readable without the key.
//
// The claims are a snapshot taken at login; the session middleware
// re-fetches the user on every request, so stale role or status values
// in the cookie cannot extend access.
type SessionClaims struct {
	UserID    string      `json:"userId"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	CompanyID string      `json:"companyId"`
	StoreID   string      `json:"storeId,omitempty"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}
