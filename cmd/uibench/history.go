package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/uibench/uibench/internal/config"
	"github.com/uibench/uibench/internal/database"
	"github.com/uibench/uibench/internal/report"
)

// historyListLimit caps how many rows `history list` prints.
const historyListLimit = 50

// NewHistoryCmd creates the history command with its subcommands.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse past benchmark runs",
		Long: `History lists and shows past runs from the local run store.

The store outlives the rolling index: runs that have aged out of the
index can still be inspected here.`,
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryShowCmd())

	return cmd
}

// newHistoryListCmd creates the history list subcommand.
func newHistoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List past runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openHistory()
			if err != nil {
				return err
			}
			defer db.Close()

			summaries, err := db.ListRuns(cmd.Context(), historyListLimit)
			if err != nil {
				return fmt.Errorf("listing runs: %w", err)
			}
			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN ID\tDATE\tPRESET\tURLS\tSCORED\tWINNER")
			for _, s := range summaries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
					s.RunID,
					s.Timestamp.Format("2006-01-02 15:04"),
					s.Preset,
					len(s.URLs),
					s.ScoreCount,
					s.ComparisonWinner,
				)
			}
			return tw.Flush()
		},
	}
}

// newHistoryShowCmd creates the history show subcommand.
func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run as a Markdown summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openHistory()
			if err != nil {
				return err
			}
			defer db.Close()

			record, err := db.GetRun(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("loading run: %w", err)
			}
			if record == nil {
				return fmt.Errorf("run %q not found", args[0])
			}

			return report.NewMarkdownWriter(cmd.OutOrStdout()).WriteRecord(record)
		},
	}
}

// openHistory opens the run store, requiring it to exist already.
func openHistory() (*database.RunDB, error) {
	db, err := database.Open(config.XDGDataDir(), database.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("no run history yet (run an analysis first): %w", err)
	}
	return db, nil
}
