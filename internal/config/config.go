package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/core"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/validation"
)

// DefaultTokenTTL is used when no token TTL is configured.
const DefaultTokenTTL = time.Hour

type Config struct {
	Server ServerConfig      `yaml:"server"`
	Auth   AuthConfig        `yaml:"auth"`
	Store  StoreConfig       `yaml:"store"`
	Policy []core.PolicyEntry `yaml:"policy"`
}

type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`
}

// AuthConfig holds the shared signing secret and the fixed token TTL.
// Both are deployment configuration, never request input.
type AuthConfig struct {
	// Secret is the shared symmetric signing secret. Every service verifying
	// tokens must be configured with the same value.
	Secret string `yaml:"secret"`

	// SecretFile reads the secret from a file instead (e.g. a mounted secret).
	// Exactly one of Secret and SecretFile must be set.
	SecretFile string `yaml:"secret_file"`

	// TokenTTL is the fixed lifetime of issued tokens.
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// SecretBytes returns the resolved signing secret.
func (c *AuthConfig) SecretBytes() []byte {
	return []byte(c.Secret)
}

// StoreConfig selects and configures the credential store backend.
type StoreConfig struct {
	Type   string         `yaml:"type"`    // e.g., "memory", "file"
	Config map[string]any `yaml:",inline"` // Capture remaining fields
}

// Load reads, parses and validates the configuration file at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration and normalizes it. A missing or
// unresolvable signing secret is a fatal configuration error: the process
// must not start without one.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}

	if err := c.Auth.validate(); err != nil {
		return fmt.Errorf("validating auth config: %w", err)
	}

	if c.Store.Type == "" {
		return fmt.Errorf("store.type is required")
	}

	validEntries, err := validation.ValidateEntries(c.Policy)
	if err != nil {
		return fmt.Errorf("validating policy entries: %w", err)
	}
	c.Policy = validEntries

	return nil
}

func (c *AuthConfig) validate() error {
	switch {
	case c.Secret != "" && c.SecretFile != "":
		return fmt.Errorf("secret and secret_file are mutually exclusive")
	case c.Secret == "" && c.SecretFile == "":
		return fmt.Errorf("signing secret is required (set secret or secret_file)")
	case c.SecretFile != "":
		data, err := os.ReadFile(c.SecretFile)
		if err != nil {
			return fmt.Errorf("reading secret file '%s': %w", c.SecretFile, err)
		}
		c.Secret = strings.TrimSpace(string(data))
		if c.Secret == "" {
			return fmt.Errorf("secret file '%s' is empty", c.SecretFile)
		}
	}

	if c.TokenTTL < 0 {
		return fmt.Errorf("token_ttl must not be negative")
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = DefaultTokenTTL
	}
	return nil
}
