package cli

import (
	"fmt"

	"assignhelper/internal/store"

	"github.com/spf13/cobra"
)

// NewPurgeCommand creates the 'purge' subcommand.
func NewPurgeCommand(repo store.Repository) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete all question history.",
		Long:  `Removes every entry from the question history database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPurgeCmd(cmd, repo, confirmed)
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm deletion of all history")
	return cmd
}

func runPurgeCmd(cmd *cobra.Command, repo store.Repository, confirmed bool) error {
	if !confirmed {
		fmt.Println(warningColor("Refusing to purge without --yes."))
		return nil
	}

	deleted, err := repo.PurgeAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("could not purge history: %w", err)
	}

	fmt.Println(successColor(fmt.Sprintf("Deleted %d history entries.", deleted)))
	return nil
}
