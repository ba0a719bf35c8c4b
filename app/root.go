// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "godocvault",
	Short: "GoDocVault is the authentication and access-control service for document management",
	Long: `GoDocVault provides accounts, sessions, optional one-time-code second
factors, password-reset tickets and per-document access control behind a
JSON API for a document management system.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
