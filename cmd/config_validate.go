package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/config"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/store"
)

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the server configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configCfgFile)
		if err != nil {
			return logError(err, "", "config is invalid")
		}

		credStore, err := store.Build(cfg.Store)
		if err != nil {
			return logError(err, "", "credential store config is invalid")
		}

		identities, err := credStore.ListIdentities(cmd.Context())
		if err != nil {
			return logError(err, "", "listing identities failed")
		}

		logSuccess("config is valid: %s store with %d identities, %d policy entries, token TTL %s",
			bold(cfg.Store.Type), len(identities), len(cfg.Policy), cfg.Auth.TokenTTL)
		fmt.Printf("  listen address: %s\n", cfg.Server.Addr)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}
