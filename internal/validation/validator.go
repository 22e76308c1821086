package validation

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/core"
)

// ValidateEntries checks policy entries for shape errors and compiles their
// optional 'when' expressions. It returns the normalized entries.
func ValidateEntries(entries []core.PolicyEntry) ([]core.PolicyEntry, error) {
	var valid []core.PolicyEntry

	for i, entry := range entries {
		if entry.Pattern == "" {
			return nil, fmt.Errorf("policy entry #%d missing pattern", i)
		}
		if star := strings.IndexByte(entry.Pattern, '*'); star >= 0 && star != len(entry.Pattern)-1 {
			return nil, fmt.Errorf("policy entry '%s': wildcard is only allowed as the last character", entry.Pattern)
		}

		switch entry.Require {
		case core.RequirePublic, core.RequireAuthenticated:
			if entry.Role != "" {
				return nil, fmt.Errorf("policy entry '%s' sets role but require is '%s'", entry.Pattern, entry.Require)
			}
		case core.RequireRole:
			if entry.Role == "" {
				return nil, fmt.Errorf("policy entry '%s' requires a role but none is set", entry.Pattern)
			}
		default:
			return nil, fmt.Errorf("policy entry '%s' has unknown requirement '%s'", entry.Pattern, entry.Require)
		}

		if entry.When != "" {
			if entry.Require == core.RequirePublic {
				return nil, fmt.Errorf("policy entry '%s' has a 'when' condition but is public; conditions need a principal", entry.Pattern)
			}
			program, err := expr.Compile(entry.When, expr.AsBool(), expr.Env(whenEnv(&core.Principal{}, "")))
			if err != nil {
				return nil, fmt.Errorf("compiling 'when' for policy entry '%s': %w", entry.Pattern, err)
			}
			entry.CompiledWhen = program
		}

		valid = append(valid, entry)
	}

	return valid, nil
}

// WhenEnv builds the evaluation environment for a compiled 'when' expression.
func WhenEnv(principal *core.Principal, path string) map[string]any {
	return whenEnv(principal, path)
}

func whenEnv(principal *core.Principal, path string) map[string]any {
	return map[string]any{
		"principal": principal,
		"path":      path,
	}
}
