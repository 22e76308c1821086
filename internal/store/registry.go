package store

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/config"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/core"
)

type memoryStoreConfig struct {
	// Identities are inline user records.
	Identities []core.Identity `mapstructure:"identities"`
}

type fileStoreConfig struct {
	// Path to the YAML identity file.
	Path string `mapstructure:"path"`
}

// Build constructs the credential store selected by the config.
func Build(cfg config.StoreConfig) (core.CredentialStore, error) {
	switch cfg.Type {
	case "memory":
		var conf memoryStoreConfig
		if err := decode(cfg, &conf); err != nil {
			return nil, err
		}
		return NewInMemoryCredentialStore(conf.Identities), nil
	case "file":
		var conf fileStoreConfig
		if err := decode(cfg, &conf); err != nil {
			return nil, err
		}
		if conf.Path == "" {
			return nil, fmt.Errorf("file store requires a path")
		}
		return NewFileCredentialStore(conf.Path)
	default:
		return nil, fmt.Errorf("unknown store type '%s'", cfg.Type)
	}
}

func decode(cfg config.StoreConfig, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   result,
	})
	if err != nil {
		return fmt.Errorf("creating decoder for '%s' store config: %w", cfg.Type, err)
	}
	if err := decoder.Decode(cfg.Config); err != nil {
		return fmt.Errorf("decoding config for '%s' store: %w", cfg.Type, err)
	}
	return nil
}
