// Package policy evaluates the route authorization table.
package policy

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/rs/zerolog/log"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/core"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/validation"
)

// Decision is the outcome of evaluating a request against the policy table.
type Decision int

const (
	// Allow lets the request proceed.
	Allow Decision = iota

	// DenyUnauthenticated rejects because no valid principal is present.
	DenyUnauthenticated

	// DenyForbidden rejects because the principal lacks the required role.
	DenyForbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "deny (unauthenticated)"
	case DenyForbidden:
		return "deny (forbidden)"
	}
	return "unknown"
}

// Table holds the ordered policy entries. It is built once at startup and is
// safe for unsynchronized concurrent reads.
type Table struct {
	entries []core.PolicyEntry
}

// New validates the entries, compiles their conditions, and builds the table.
// Order matters: narrower patterns must be listed before broader catch-alls,
// because the first matching pattern wins.
func New(entries []core.PolicyEntry) (*Table, error) {
	valid, err := validation.ValidateEntries(entries)
	if err != nil {
		return nil, err
	}
	return &Table{entries: valid}, nil
}

// Entries returns the normalized policy entries in evaluation order.
func (t *Table) Entries() []core.PolicyEntry {
	return t.entries
}

// Authorize evaluates the path against the table. A nil principal means the
// request carries no valid identity. Paths matching no entry are public.
func (t *Table) Authorize(path string, principal *core.Principal) Decision {
	for _, entry := range t.entries {
		if !matchPattern(entry.Pattern, path) {
			continue
		}
		return decide(entry, path, principal)
	}
	return Allow
}

func decide(entry core.PolicyEntry, path string, principal *core.Principal) Decision {
	switch entry.Require {
	case core.RequirePublic:
		return Allow
	case core.RequireAuthenticated, core.RequireRole:
		if principal == nil {
			return DenyUnauthenticated
		}
		if entry.Require == core.RequireRole && !principal.HasAuthority(entry.Role) {
			return DenyForbidden
		}
	}

	if entry.CompiledWhen != nil && !evalWhen(entry, path, principal) {
		return DenyForbidden
	}
	return Allow
}

func evalWhen(entry core.PolicyEntry, path string, principal *core.Principal) bool {
	out, err := expr.Run(entry.CompiledWhen, validation.WhenEnv(principal, path))
	if err != nil {
		log.Warn().Err(err).Msgf("error evaluating 'when' for policy entry '%s'", entry.Pattern)
		return false
	}
	ok, isBool := out.(bool)
	return isBool && ok
}

// matchPattern reports whether path matches pattern. A trailing '*' matches
// any suffix (including the empty one); otherwise the match is exact.
func matchPattern(pattern, path string) bool {
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(path, pattern[:len(pattern)-1])
	}
	return pattern == path
}
