package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/uibench/uibench/internal/capture"
	"github.com/uibench/uibench/internal/config"
	"github.com/uibench/uibench/internal/database"
	"github.com/uibench/uibench/internal/log"
	"github.com/uibench/uibench/internal/model"
	"github.com/uibench/uibench/internal/pipeline"
	"github.com/uibench/uibench/internal/preset"
	"github.com/uibench/uibench/internal/report"
	"github.com/uibench/uibench/internal/scoring"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <url>...",
		Short: "Capture, score, and report on one or more web pages",
		Long: `Analyze runs the full benchmarking pipeline against the given URLs.

For every (URL, viewport) pair it captures a full-page and an above-the-fold
screenshot in a headless browser, scores the fold image against a weighted
design rubric using a vision model, and writes a self-contained HTML report
plus a JSON metadata record into the output directory.

The vision model API key is read from the ANTHROPIC_API_KEY environment
variable (override the variable name with --api-key-env).

Examples:
  # Analyze a single page at the default desktop viewport
  uibench analyze example.com

  # Analyze at several viewports
  uibench analyze --viewports desktop,tablet,mobile example.com

  # Compare competitor landing pages
  uibench analyze --compare a.example b.example c.example

  # Score against a custom preset and print a terminal summary
  uibench analyze --preset saas-landing --summary example.com

Configuration file (.uibench) example:
  preset: saas-landing
  viewports: [desktop, mobile]
  sites:
    app.example.com:
      cookie: "session=abc123"
      settleDelaySeconds: 5`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	// Target selection flags
	cmd.Flags().StringP("viewports", "w", config.DefaultViewport,
		"Comma-separated viewport names (desktop, tablet, mobile)")
	cmd.Flags().StringP("preset", "p", preset.DefaultName,
		"Rubric preset to score against")
	cmd.Flags().Bool("compare", false,
		"Rank the URLs against each other (requires at least two URLs)")

	// Scoring flags
	cmd.Flags().StringP("model", "m", config.DefaultModel,
		"Vision model identifier")
	cmd.Flags().String("api-key-env", config.APIKeyEnv,
		"Environment variable holding the vision model API key")
	cmd.Flags().Duration("scoring-delay", config.DefaultScoringDelay,
		"Fixed delay between consecutive model calls")
	cmd.Flags().Duration("scoring-timeout", config.DefaultScoringTimeout,
		"Timeout for a single model call")

	// Capture flags
	cmd.Flags().Duration("navigation-timeout", config.DefaultNavigationTimeout,
		"Timeout for each page navigation's network-idle wait")
	cmd.Flags().Duration("settle-delay", config.DefaultSettleDelay,
		"Fixed wait before screenshots are taken")
	cmd.Flags().Duration("capture-delay", config.DefaultCaptureDelay,
		"Delay between consecutive captures")

	// Output flags
	cmd.Flags().StringP("output", "o", "",
		"Output directory for screenshots, reports, and metadata (default: XDG data dir)")
	cmd.Flags().BoolP("summary", "s", false,
		"Print a Markdown run summary to stdout after the run")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .uibench in current or home directory)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAnalyze(ctx, cmd, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the optional
// configuration file. Explicit flags always win over file settings.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	viewportList, err := cmd.Flags().GetString("viewports")
	if err != nil {
		return nil, err
	}
	cfg.Viewports = config.ParseViewports(viewportList)

	cfg.PresetName, err = cmd.Flags().GetString("preset")
	if err != nil {
		return nil, err
	}

	cfg.Compare, err = cmd.Flags().GetBool("compare")
	if err != nil {
		return nil, err
	}

	cfg.Model, err = cmd.Flags().GetString("model")
	if err != nil {
		return nil, err
	}

	apiKeyEnv, err := cmd.Flags().GetString("api-key-env")
	if err != nil {
		return nil, err
	}
	if apiKeyEnv != config.APIKeyEnv {
		cfg.APIKey = os.Getenv(apiKeyEnv)
	}

	cfg.ScoringDelay, err = cmd.Flags().GetDuration("scoring-delay")
	if err != nil {
		return nil, err
	}

	cfg.ScoringTimeout, err = cmd.Flags().GetDuration("scoring-timeout")
	if err != nil {
		return nil, err
	}

	cfg.NavigationTimeout, err = cmd.Flags().GetDuration("navigation-timeout")
	if err != nil {
		return nil, err
	}

	cfg.SettleDelay, err = cmd.Flags().GetDuration("settle-delay")
	if err != nil {
		return nil, err
	}

	cfg.CaptureDelay, err = cmd.Flags().GetDuration("capture-delay")
	if err != nil {
		return nil, err
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	if output != "" {
		cfg.OutputDir = output
	}

	cfg.Summary, err = cmd.Flags().GetBool("summary")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load site-specific configurations from the config file.
	// An explicitly requested file that is missing is an error; the
	// default search failing silently yields an empty config.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(cfg.SiteConfigs,
			cmd.Flags().Changed("preset"),
			cmd.Flags().Changed("viewports"),
			cmd.Flags().Changed("output"),
			cmd.Flags().Changed("model"),
		)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	// Normalize positional arguments into full URLs.
	cfg.URLs = make([]string, 0, len(args))
	for _, target := range args {
		normalized, err := config.NormalizeURL(target)
		if err != nil {
			return nil, fmt.Errorf("invalid target %q: %w", target, err)
		}
		cfg.URLs = append(cfg.URLs, normalized)
	}

	return cfg, nil
}

// runAnalyze assembles the pipeline and executes a full run.
func runAnalyze(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	run := model.NewRunReport(cfg.URLs, cfg.Viewports, cfg.PresetName, cfg.Compare)

	logger.Info("starting run",
		"run_id", run.RunID,
		"urls", cfg.URLs,
		"viewports", cfg.Viewports,
		"preset", cfg.PresetName,
		"compare", cfg.Compare,
	)

	// The history store is a convenience; a failure to open it must not
	// block a benchmark run.
	var history *database.RunDB
	history, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		logger.Warn("run history unavailable", "error", err)
		history = nil
	} else {
		defer history.Close()
	}

	resolverOpts := []preset.ResolverOption{preset.WithResolverLogger(logger)}
	if cfg.PresetDir != "" {
		resolverOpts = append(resolverOpts, preset.WithPresetDir(cfg.PresetDir))
	}
	resolver := preset.NewResolver(resolverOpts...)

	captureEngine := capture.NewEngine(cfg.ScreenshotDir(run.RunID),
		capture.WithNavigationTimeout(cfg.NavigationTimeout),
		capture.WithSettleDelay(cfg.SettleDelay),
		capture.WithCaptureDelay(cfg.CaptureDelay),
		capture.WithSiteConfigs(cfg.SiteConfigs),
		capture.WithLogger(logger),
	)

	scoringEngine := scoring.NewEngine(
		scoring.NewClient(cfg.APIKey,
			scoring.WithModel(cfg.Model),
			scoring.WithTimeout(cfg.ScoringTimeout),
		),
		scoring.WithScoringDelay(cfg.ScoringDelay),
		scoring.WithEngineLogger(logger),
	)

	indexStepOpts := []pipeline.IndexStepOption{pipeline.WithIndexStepLogger(logger)}
	if history != nil {
		indexStepOpts = append(indexStepOpts, pipeline.WithHistory(history))
	}

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewResolvePresetStep(resolver),
		pipeline.NewCaptureStep(captureEngine),
		pipeline.NewScoreStep(scoringEngine),
		pipeline.NewReportStep(report.NewWriter(cfg.OutputDir, report.WithWriterLogger(logger))),
		pipeline.NewIndexStep(report.NewIndex(cfg.IndexPath(), report.WithIndexLogger(logger)), indexStepOpts...),
	)

	startTime := time.Now()
	if err := p.Execute(ctx, run); err != nil {
		return fmt.Errorf("run %s failed: %w", run.RunID, err)
	}
	elapsed := time.Since(startTime).Round(time.Millisecond)

	out := cmd.OutOrStdout()
	if cfg.Summary {
		if err := report.NewMarkdownWriter(out).Write(run); err != nil {
			logger.Error("failed to render summary", "error", err)
		}
	} else {
		fmt.Fprintf(out, "Run %s completed in %s\n", run.RunID, elapsed)
		fmt.Fprintf(out, "  report:   %s\n", run.DocumentPath)
		fmt.Fprintf(out, "  metadata: %s\n", run.MetadataPath)
	}

	return nil
}
