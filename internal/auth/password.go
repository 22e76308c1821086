// Package auth implements password verification against stored bcrypt hashes.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// VerifyPassword reports whether the submitted plaintext password matches the
// stored bcrypt hash. It has no side effects and never reveals why a
// comparison failed.
func VerifyPassword(submitted, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(submitted)) == nil
}

// HashPassword returns the bcrypt hash of a plaintext password,
// suitable for storing in a credential store.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
