package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/core"
)

// Issuer creates signed tokens for authenticated identities.
// The signing secret and TTL are deployment configuration, fixed at startup.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	clock  core.Clock
}

// NewIssuer creates an Issuer. A nil clock defaults to time.Now.
func NewIssuer(secret []byte, ttl time.Duration, clock core.Clock) *Issuer {
	if clock == nil {
		clock = time.Now
	}
	return &Issuer{
		secret: secret,
		ttl:    ttl,
		clock:  clock,
	}
}

// Issue signs a token for the given subject and role.
// The caller must have verified the subject's password first.
func (i *Issuer) Issue(subject, role string) (string, time.Time, error) {
	now := i.clock()
	exp := now.Add(i.ttl)

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    IssuerName,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token for subject '%s': %w", subject, err)
	}
	return signed, exp, nil
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}
