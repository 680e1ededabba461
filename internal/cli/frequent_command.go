package cli

import (
	"fmt"
	"os"
	"strconv"

	"assignhelper/internal/store"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewFrequentCommand creates the 'frequent' subcommand.
func NewFrequentCommand(repo store.Repository) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "frequent",
		Short: "List the most frequently asked questions.",
		Long:  `Displays questions ranked by how many times they have been asked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrequentCmd(cmd, repo, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "maximum number of entries to show")
	return cmd
}

func runFrequentCmd(cmd *cobra.Command, repo store.Repository, limit int) error {
	entries, err := repo.MostFrequent(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("could not list frequent questions: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println(infoColor("No questions have been asked yet."))
		return nil
	}

	fmt.Println(headerColor("Most frequent questions:"))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Question", "Count"})
	table.SetBorder(true)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for _, entry := range entries {
		table.Append([]string{entry.Question, strconv.Itoa(entry.Count)})
	}
	table.Render()
	return nil
}
