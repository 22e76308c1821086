package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssuerName is the value of the "iss" claim in every token we sign.
const IssuerName = "pizzeria-auth"

// Claims are the structured fields carried inside a signed token.
// The role claim holds exactly one role per token; extending this to
// multiple roles requires changing the claim shape end-to-end, not just
// the accessor.
type Claims struct {
	// Role is the single role granted to the subject.
	Role string `json:"role"`

	jwt.RegisteredClaims
}

// Authorities converts the single role claim into the one-element
// authority set handed to the principal resolver.
func (c *Claims) Authorities() []string {
	return []string{c.Role}
}

// Expiry returns the expiration instant of the token.
// Only valid after a successful Parse, which guarantees the claim is present.
func (c *Claims) Expiry() time.Time {
	return c.ExpiresAt.Time
}
