// Package main provides the entry point for the UIBench CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for UIBench.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uibench",
		Short: "Competitive UI benchmarking with a vision model",
		Long: `UIBench captures screenshots of web pages at named viewports, scores each
page against a weighted design rubric using a vision model, and emits a
self-contained HTML report plus a durable metadata record.

Pass --compare with two or more URLs to additionally rank the pages
against each other.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewReindexCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewPresetsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
