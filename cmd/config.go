package cmd

import "github.com/spf13/cobra"

var configCfgFile string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Work with the server configuration",
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.PersistentFlags().StringVarP(&configCfgFile, "config", "c", "pizzauth.yaml", "path to the server config file")
}
