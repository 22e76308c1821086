package core

import (
	"context"
	"fmt"
	"time"
)

// ErrIdentityNotFound is returned by credential stores when no record exists
// for the requested ID. Callers on the authentication path must fold this
// into the same failure as a password mismatch.
var ErrIdentityNotFound = fmt.Errorf("identity not found")

// CredentialStore holds identity records.
// Implementations: in-memory store, file-backed store.
type CredentialStore interface {
	// FindIdentity returns the record for the given ID,
	// or ErrIdentityNotFound if no such identity exists.
	FindIdentity(ctx context.Context, id string) (*Identity, error)

	// ListIdentities returns all stored records.
	ListIdentities(ctx context.Context) ([]Identity, error)
}

// Clock is the wall-clock source used for token issuance and expiry checks.
// It is injected so expiration logic is testable without waiting for real time.
type Clock func() time.Time
