// Package cli provides the command-line interface for the soldoc
// documentation tools.
package cli

import (
	"github.com/spf13/cobra"
)

// Execute creates and runs the root command.
func Execute() error {
	rootCmd := &cobra.Command{
		Use:   "soldoc",
		Short: "Documentation tools for the Binary Ninja Lua plugin",
	}

	rootCmd.AddCommand(newAPICommand())
	rootCmd.AddCommand(newLuaCommand())
	rootCmd.AddCommand(newDocsCommand())

	return rootCmd.Execute()
}
