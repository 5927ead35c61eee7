// Package cli defines the inkpost command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd runs the API server when called without a subcommand.
var RootCmd = &cobra.Command{
	Use:          "inkpost [command]",
	Short:        "inkpost: a small blogging API",
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the command tree. It is called once by main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
