package core

import "github.com/expr-lang/expr/vm"

// Identity is a stored user record the auth service can verify passwords against.
type Identity struct {
	// ID is the unique login identifier (e.g., NetID, email).
	ID string `yaml:"id" mapstructure:"id"`

	// PasswordHash is the bcrypt hash of the user's password.
	// The plaintext password is never stored.
	PasswordHash string `yaml:"password_hash" mapstructure:"password_hash"`

	// Role is the single role assigned to this identity (e.g., "MANAGER").
	Role string `yaml:"role" mapstructure:"role"`
}

// Principal is the resolved, request-scoped identity derived from a verified token.
// It is immutable after construction and must never be shared across requests.
type Principal struct {
	// Subject is the unique identifier of the authenticated user.
	Subject string `json:"subject"`

	// Authorities are the granted roles. The token carries exactly one role,
	// so this is currently always a one-element set.
	Authorities []string `json:"authorities"`
}

// HasAuthority reports whether the principal holds the given role.
func (p *Principal) HasAuthority(role string) bool {
	for _, a := range p.Authorities {
		if a == role {
			return true
		}
	}
	return false
}

// Requirement describes what a route demands from the caller.
type Requirement string

const (
	// RequirePublic allows any caller, authenticated or not.
	RequirePublic Requirement = "public"

	// RequireAuthenticated allows any caller with a valid principal.
	RequireAuthenticated Requirement = "authenticated"

	// RequireRole allows only principals holding the entry's Role.
	RequireRole Requirement = "role"
)

// PolicyEntry maps a route pattern to the minimum requirement for access.
// Entries are evaluated in order; the first pattern match wins.
type PolicyEntry struct {
	// Pattern is the route pattern. A trailing '*' matches any suffix,
	// a bare "*" matches every route.
	Pattern string `yaml:"pattern"`

	// Require is one of "public", "authenticated" or "role".
	Require Requirement `yaml:"require"`

	// Role is the required role. Only valid (and required) with Require "role".
	Role string `yaml:"role,omitempty"`

	// When is an optional expression evaluated against the matched principal,
	// e.g. `principal.Subject == "root"`. An entry whose When evaluates to
	// false denies access even if Require is satisfied.
	When string `yaml:"when,omitempty"`

	// CompiledWhen is the compiled form of When, populated during validation.
	CompiledWhen *vm.Program `yaml:"-"`
}
