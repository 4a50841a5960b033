package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/uibench/uibench/internal/log"
	"github.com/uibench/uibench/internal/preset"
)

// NewPresetsCmd creates the presets command.
func NewPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "List rubric presets or print one fully resolved",
		Long: `Without arguments, presets lists every preset name the resolver can find:
the built-in default plus any .json preset files on the search path.

With a name, it prints that preset fully resolved as JSON, with its
inheritance chain flattened into a single dimension list.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPresetsCmd,
	}

	cmd.Flags().StringP("dir", "d", "",
		"Extra directory to search for preset files")

	return cmd
}

// runPresetsCmd executes the presets command.
func runPresetsCmd(cmd *cobra.Command, args []string) error {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}

	logger := log.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	opts := []preset.ResolverOption{preset.WithResolverLogger(logger)}
	if dir != "" {
		opts = append(opts, preset.WithPresetDir(dir))
	}
	resolver := preset.NewResolver(opts...)

	if len(args) == 0 {
		for _, name := range resolver.Available() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	resolved, err := resolver.Resolve(args[0])
	if err != nil {
		return fmt.Errorf("resolving preset %q: %w", args[0], err)
	}

	data, err := json.MarshalIndent(resolved, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding preset: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
