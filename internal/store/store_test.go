package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/config"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/core"
)

func TestInMemoryCredentialStore(t *testing.T) {
	s := NewInMemoryCredentialStore([]core.Identity{
		{ID: "alice", PasswordHash: "$2a$10$fake", Role: "MANAGER"},
		{ID: "bob", PasswordHash: "$2a$10$fake", Role: "STAFF"},
	})

	identity, err := s.FindIdentity(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FindIdentity failed: %v", err)
	}
	if identity.Role != "MANAGER" {
		t.Errorf("role = %q, want MANAGER", identity.Role)
	}

	if _, err := s.FindIdentity(context.Background(), "mallory"); !errors.Is(err, core.ErrIdentityNotFound) {
		t.Errorf("unknown identity = %v, want ErrIdentityNotFound", err)
	}

	identities, err := s.ListIdentities(context.Background())
	if err != nil {
		t.Fatalf("ListIdentities failed: %v", err)
	}
	if len(identities) != 2 {
		t.Errorf("got %d identities, want 2", len(identities))
	}
}

func TestBuildMemoryStore(t *testing.T) {
	credStore, err := Build(config.StoreConfig{
		Type: "memory",
		Config: map[string]any{
			"identities": []any{
				map[string]any{"id": "alice", "password_hash": "$2a$10$fake", "role": "MANAGER"},
			},
		},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	identity, err := credStore.FindIdentity(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FindIdentity failed: %v", err)
	}
	if identity.PasswordHash != "$2a$10$fake" {
		t.Errorf("password_hash = %q, want $2a$10$fake", identity.PasswordHash)
	}
}

func TestBuildFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identities.yaml")
	content := `identities:
  - id: alice
    password_hash: "$2a$10$fake"
    role: MANAGER
  - id: bob
    password_hash: "$2a$10$fake"
    role: STAFF
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing identity file: %v", err)
	}

	credStore, err := Build(config.StoreConfig{
		Type:   "file",
		Config: map[string]any{"path": path},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	identity, err := credStore.FindIdentity(context.Background(), "bob")
	if err != nil {
		t.Fatalf("FindIdentity failed: %v", err)
	}
	if identity.Role != "STAFF" {
		t.Errorf("role = %q, want STAFF", identity.Role)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.StoreConfig
	}{
		{name: "Unknown Type", cfg: config.StoreConfig{Type: "postgres"}},
		{name: "File Without Path", cfg: config.StoreConfig{Type: "file"}},
		{name: "File Missing", cfg: config.StoreConfig{Type: "file", Config: map[string]any{"path": "/does/not/exist.yaml"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(tt.cfg); err == nil {
				t.Error("Build must fail")
			}
		})
	}
}
