package domain

import "time"

// ============================================================================
// User
// ============================================================================

// User mirrors the identity record synced from the Google-backed auth provider.
// Authentication itself is token-based; this row exists for profile lookups
// and relational integrity.
type User struct {
	ID            int64     `json:"id"`
	GoogleSub     string    `json:"google_sub"`
	Email         string    `json:"email"`
	Name          *string   `json:"name,omitempty"`
	GivenName     *string   `json:"given_name,omitempty"`
	FamilyName    *string   `json:"family_name,omitempty"`
	Picture       *string   `json:"picture,omitempty"`
	Locale        *string   `json:"locale,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AuthenticatedUser is the request-scoped identity extracted from a bearer token.
type AuthenticatedUser struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}
