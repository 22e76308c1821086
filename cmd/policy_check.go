package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/config"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/core"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/policy"
)

var (
	checkRole    string
	checkSubject string
)

var policyCheckCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Evaluate a request path against the policy table",
	Long: `Evaluates a path the way the server would. Without --role the request
is treated as anonymous; with --role a principal holding that single role is
assumed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		cfg, err := config.Load(policyCfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		policyTable, err := policy.New(cfg.Policy)
		if err != nil {
			return fmt.Errorf("building policy table: %w", err)
		}

		var principal *core.Principal
		if checkRole != "" {
			subject := checkSubject
			if subject == "" {
				subject = "test-user"
			}
			principal = &core.Principal{
				Subject:     subject,
				Authorities: []string{checkRole},
			}
		}

		decision := policyTable.Authorize(path, principal)
		if decision == policy.Allow {
			logSuccess("%s: %s", bold(path), decision)
			return nil
		}

		fmt.Printf("%s %s: %s\n", redCross, bold(path), decision)
		return BeQuietError{}
	},
}

func init() {
	policyCmd.AddCommand(policyCheckCmd)

	policyCheckCmd.Flags().StringVar(&checkRole, "role", "", "Role of the assumed principal (omit for anonymous)")
	policyCheckCmd.Flags().StringVar(&checkSubject, "subject", "", "Subject of the assumed principal")
}
