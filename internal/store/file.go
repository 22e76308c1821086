package store

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/core"
)

// identityFile is the on-disk shape of a file-backed credential store.
type identityFile struct {
	Identities []core.Identity `yaml:"identities"`
}

// NewFileCredentialStore loads identity records from a YAML file into an
// in-memory store. The file is read once at startup; password changes via
// the file require a restart.
func NewFileCredentialStore(path string) (*InMemoryCredentialStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading identity file '%s': %w", path, err)
	}

	var f identityFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing identity file '%s': %w", path, err)
	}

	for i, identity := range f.Identities {
		if identity.ID == "" {
			return nil, fmt.Errorf("identity #%d in '%s' has an empty id", i, path)
		}
		if identity.PasswordHash == "" {
			return nil, fmt.Errorf("identity '%s' in '%s' has an empty password_hash", identity.ID, path)
		}
	}

	return NewInMemoryCredentialStore(f.Identities), nil
}
