package cli

import (
	"fmt"
	"os"

	"assignhelper/internal/store"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewRecentCommand creates the 'recent' subcommand.
func NewRecentCommand(repo store.Repository) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently answered questions.",
		Long:  `Displays the newest entries in the question history, newest first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecentCmd(cmd, repo, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of entries to show")
	return cmd
}

func runRecentCmd(cmd *cobra.Command, repo store.Repository, limit int) error {
	entries, err := repo.RecentQuestions(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("could not list recent questions: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println(infoColor("No questions have been asked yet."))
		return nil
	}

	fmt.Println(headerColor("Recent questions:"))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Asked At", "Question", "Answer", "File"})
	table.SetBorder(true)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER,
	})

	for _, entry := range entries {
		file := ""
		if entry.HadFile {
			file = "yes"
		}
		table.Append([]string{entry.AskedAtDisplay(), entry.Question, entry.Answer, file})
	}
	table.Render()
	return nil
}
