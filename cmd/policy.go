package cmd

import "github.com/spf13/cobra"

var policyCfgFile string

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect and test the route policy table",
}

func init() {
	rootCmd.AddCommand(policyCmd)

	policyCmd.PersistentFlags().StringVarP(&policyCfgFile, "config", "c", "pizzauth.yaml", "path to the server config file")
}
