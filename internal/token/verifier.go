package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/core"
)

var (
	// ErrInvalidSignature means the token's signature does not verify
	// against the shared secret.
	ErrInvalidSignature = fmt.Errorf("invalid token signature")

	// ErrMalformed means the token could not be decoded into the expected
	// claim shape.
	ErrMalformed = fmt.Errorf("malformed token")
)

// Verifier validates tokens against the shared secret. Verification is a pure
// function of the token bytes and the injected clock; it performs no I/O, so
// every service holding the secret can verify tokens independently.
type Verifier struct {
	secret []byte
	clock  core.Clock
}

// NewVerifier creates a Verifier. A nil clock defaults to time.Now.
func NewVerifier(secret []byte, clock core.Clock) *Verifier {
	if clock == nil {
		clock = time.Now
	}
	return &Verifier{
		secret: secret,
		clock:  clock,
	}
}

// Parse decodes the token and verifies its signature. Expiration is checked
// separately via Expired, so an expired-but-authentic token still parses.
func (v *Verifier) Parse(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method '%s'", t.Method.Alg())
		}
		return v.secret, nil
	}, jwt.WithoutClaimsValidation(), jwt.WithStrictDecoding())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Subject == "" || claims.Role == "" || claims.ExpiresAt == nil {
		return nil, ErrMalformed
	}
	return claims, nil
}

// Expired reports whether the token is no longer fresh.
// A token is expired at and after its expiration instant (now >= exp).
func (v *Verifier) Expired(c *Claims) bool {
	return !v.clock().Before(c.ExpiresAt.Time)
}
