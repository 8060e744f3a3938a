// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "volunteerhub",
	Short: "VolunteerHub is the coordination backend for volunteer sandwich events",
	Long: `VolunteerHub is the web backend for coordinating volunteer-run
sandwich events: event request intake, host management, document sharing,
collection tracking and per-user permissions.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
