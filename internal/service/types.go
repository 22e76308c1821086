package service

import "time"

type LoginRequest struct {
	// ID is the login identifier of the identity.
	ID string

	// Password is the submitted plaintext credential.
	Password string
}

type LoginResult struct {
	// Token is the signed bearer token.
	Token string

	// ExpiresAt indicates when the token becomes invalid.
	ExpiresAt time.Time
}
