// Package cli implements the helperctl commands for inspecting the
// question history database.
package cli

import (
	"fmt"

	"assignhelper/internal/store"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the helperctl command tree.
func NewRootCommand(version string, repo store.Repository) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "helperctl",
		Short: "helperctl inspects the assignment helper's question history.",
		Long: `helperctl reads the same history database the server writes,
listing recent and most frequently asked questions and purging history.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if repo == nil {
				return fmt.Errorf("history store not initialized for command %s", cmd.Name())
			}
			return nil
		},
	}

	rootCmd.AddCommand(NewRecentCommand(repo))
	rootCmd.AddCommand(NewFrequentCommand(repo))
	rootCmd.AddCommand(NewPurgeCommand(repo))

	return rootCmd
}
