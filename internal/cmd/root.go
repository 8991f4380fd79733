// Package cmd implements the wardenctl command tree.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wardenctl",
	Short: "Administer the Warden access-control platform",
	Long: `wardenctl is the command-line admin client for the Warden access-control
platform. It manages the local login session and answers capability queries
(which modules and operations the logged-in user may perform) against the
tenant the session is scoped to.`,
	SilenceUsage: true,
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
