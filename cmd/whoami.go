package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the principal the server resolves for the saved token",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}

		principal, correlationID, err := cli.Me(cmd.Context())
		if err != nil {
			return logError(err, correlationID, "could not resolve principal")
		}

		fmt.Printf("subject:     %s\n", bold(principal.Subject))
		fmt.Printf("authorities: %s\n", strings.Join(principal.Authorities, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
