package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := application.Config()
		for _, key := range cfg.Keys() {
			v, _ := cfg.Get(key)
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %q\n", key, fmt.Sprint(v))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
