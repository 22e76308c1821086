package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/config"
)

var policyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the policy table in evaluation order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(policyCfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"#", "Pattern", "Require", "Role", "When"})
		for i, entry := range cfg.Policy {
			t.AppendRow(table.Row{i + 1, entry.Pattern, entry.Require, entry.Role, entry.When})
		}
		t.Render()

		fmt.Println("first matching pattern wins; unmatched routes are public")
		return nil
	},
}

func init() {
	policyCmd.AddCommand(policyListCmd)
}
