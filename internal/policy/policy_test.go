package policy

import (
	"testing"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/core"
)

func principal(subject string, roles ...string) *core.Principal {
	return &core.Principal{Subject: subject, Authorities: roles}
}

func TestTable_FirstMatchWins(t *testing.T) {
	policyTable, err := New([]core.PolicyEntry{
		{Pattern: "/order/listAll", Require: core.RequireRole, Role: "MANAGER"},
		{Pattern: "/order/*", Require: core.RequireAuthenticated},
		{Pattern: "*", Require: core.RequirePublic},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		name      string
		path      string
		principal *core.Principal
		want      Decision
	}{
		{
			name:      "Restricted Route Denied For Staff",
			path:      "/order/listAll",
			principal: principal("bob", "STAFF"),
			want:      DenyForbidden,
		},
		{
			name:      "Restricted Route Allowed For Manager",
			path:      "/order/listAll",
			principal: principal("alice", "MANAGER"),
			want:      Allow,
		},
		{
			name:      "Wildcard Route Allowed For Any Principal",
			path:      "/order/list",
			principal: principal("bob", "STAFF"),
			want:      Allow,
		},
		{
			name:      "Wildcard Route Denied Without Principal",
			path:      "/order/list",
			principal: nil,
			want:      DenyUnauthenticated,
		},
		{
			name:      "Restricted Route Denied Without Principal",
			path:      "/order/listAll",
			principal: nil,
			want:      DenyUnauthenticated,
		},
		{
			name:      "Catch-All Is Public",
			path:      "/store/info",
			principal: nil,
			want:      Allow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policyTable.Authorize(tt.path, tt.principal); got != tt.want {
				t.Errorf("Authorize(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestTable_OrderMatters(t *testing.T) {
	// with the catch-all first, the narrower entry is silently bypassed;
	// the evaluator must not merge or reorder entries
	policyTable, err := New([]core.PolicyEntry{
		{Pattern: "*", Require: core.RequirePublic},
		{Pattern: "/order/listAll", Require: core.RequireRole, Role: "MANAGER"},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got := policyTable.Authorize("/order/listAll", nil); got != Allow {
		t.Errorf("Authorize = %v, want Allow (first match must win, even when misconfigured)", got)
	}
}

func TestTable_NoMatchDefaultsToPublic(t *testing.T) {
	policyTable, err := New([]core.PolicyEntry{
		{Pattern: "/admin/*", Require: core.RequireRole, Role: "MANAGER"},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got := policyTable.Authorize("/store/info", nil); got != Allow {
		t.Errorf("unmatched route = %v, want Allow", got)
	}
}

func TestTable_WhenCondition(t *testing.T) {
	policyTable, err := New([]core.PolicyEntry{
		{
			Pattern: "/order/cancelAll",
			Require: core.RequireRole,
			Role:    "MANAGER",
			When:    `principal.Subject == "alice"`,
		},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got := policyTable.Authorize("/order/cancelAll", principal("alice", "MANAGER")); got != Allow {
		t.Errorf("matching subject = %v, want Allow", got)
	}
	if got := policyTable.Authorize("/order/cancelAll", principal("mallory", "MANAGER")); got != DenyForbidden {
		t.Errorf("non-matching subject = %v, want DenyForbidden", got)
	}
	if got := policyTable.Authorize("/order/cancelAll", nil); got != DenyUnauthenticated {
		t.Errorf("anonymous = %v, want DenyUnauthenticated", got)
	}
}

func TestNew_RejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []core.PolicyEntry
	}{
		{
			name:    "Empty Pattern",
			entries: []core.PolicyEntry{{Require: core.RequirePublic}},
		},
		{
			name:    "Wildcard In Middle",
			entries: []core.PolicyEntry{{Pattern: "/order/*/cancel", Require: core.RequirePublic}},
		},
		{
			name:    "Unknown Requirement",
			entries: []core.PolicyEntry{{Pattern: "/x", Require: "maybe"}},
		},
		{
			name:    "Role Requirement Without Role",
			entries: []core.PolicyEntry{{Pattern: "/x", Require: core.RequireRole}},
		},
		{
			name:    "Role On Public Entry",
			entries: []core.PolicyEntry{{Pattern: "/x", Require: core.RequirePublic, Role: "MANAGER"}},
		},
		{
			name:    "When On Public Entry",
			entries: []core.PolicyEntry{{Pattern: "/x", Require: core.RequirePublic, When: "true"}},
		},
		{
			name:    "Broken When Expression",
			entries: []core.PolicyEntry{{Pattern: "/x", Require: core.RequireAuthenticated, When: "principal ==="}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.entries); err == nil {
				t.Error("New must reject the entries")
			}
		})
	}
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*", "/anything", true},
		{"/order/*", "/order/list", true},
		{"/order/*", "/order/", true},
		{"/order/*", "/order", false},
		{"/order/list", "/order/list", true},
		{"/order/list", "/order/listAll", false},
		{"/order*", "/order/list", true},
	}

	for _, tt := range tests {
		if got := matchPattern(tt.pattern, tt.path); got != tt.want {
			t.Errorf("matchPattern(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}
