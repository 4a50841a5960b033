package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/uibench/uibench/internal/config"
	"github.com/uibench/uibench/internal/log"
	"github.com/uibench/uibench/internal/report"
)

// NewReindexCmd creates the reindex command.
func NewReindexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the rolling index from metadata records",
		Long: `Reindex scans the output directory for run metadata records and rewrites
the rolling index from scratch, newest first.

Use this after deleting runs by hand, or when the index file was lost or
corrupted. Records that cannot be parsed are skipped with a warning.`,
		Args: cobra.NoArgs,
		RunE: runReindexCmd,
	}

	cmd.Flags().StringP("dir", "d", "",
		"Output directory to scan (default: XDG data dir)")

	return cmd
}

// runReindexCmd executes the reindex command.
func runReindexCmd(cmd *cobra.Command, _ []string) error {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}
	if dir == "" {
		dir = config.XDGDataDir()
	}

	logger := log.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	idx := report.NewIndex(filepath.Join(dir, "index.json"),
		report.WithIndexLogger(logger),
	)

	count, err := idx.Rebuild(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d run(s) from %s\n", count, dir)
	return nil
}
