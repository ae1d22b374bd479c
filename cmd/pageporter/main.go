// Package main implements the pageporter CLI: batch migration of legacy
// content pages into the destination schema, plus the card display-option
// post-pass over already-migrated output.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/pageporter/internal/assets"
	"github.com/fyrsmithlabs/pageporter/internal/batch"
	"github.com/fyrsmithlabs/pageporter/internal/cards"
	"github.com/fyrsmithlabs/pageporter/internal/config"
	"github.com/fyrsmithlabs/pageporter/internal/logging"
)

// version information (set via ldflags during build)
var version = "dev"

var (
	configPath    string
	templatesRoot string
	outputRoot    string
	assetTable    string
	globalLog     string
	workers       int
	applyRun      bool
	watchMode     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pageporter",
	Short: "Migrate legacy content pages into the destination page schema",
	Long: `pageporter maps legacy page documents onto destination templates:
it classifies content blocks, transforms metadata, and embeds a migration
summary into every produced page for human audit.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")

	migrateCmd.Flags().StringVar(&templatesRoot, "templates", "", "destination template root (mirrors the source root)")
	migrateCmd.Flags().StringVar(&outputRoot, "output", "", "output root for migrated pages")
	migrateCmd.Flags().StringVar(&assetTable, "asset-table", "", "TOML filename-to-asset-id table")
	migrateCmd.Flags().StringVar(&globalLog, "global-log", "", "cross-run append-only audit log")
	migrateCmd.Flags().IntVar(&workers, "workers", 0, "parallel file workers")
	migrateCmd.Flags().BoolVar(&applyRun, "apply", false, "write migrated pages (default is preview)")
	migrateCmd.Flags().BoolVar(&watchMode, "watch", false, "after the run, re-preview files as they change")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(fixCardsCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate <source-root>",
	Short: "Run the batch migration over a source tree",
	Long: `Discover origin pages under the source root, pair each with its
destination template by relative path, and run the migration pipeline per
pair. Files with no template are skipped; a file's failure never stops the
run.

Examples:
  # Preview a tree (no files written)
  pageporter migrate legacy/pages --templates legacy/templates

  # Migrate for real
  pageporter migrate legacy/pages --templates legacy/templates --apply

  # Iterate on origin cleanup with live re-previews
  pageporter migrate legacy/pages --templates legacy/templates --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runMigrate,
}

var fixCardsCmd = &cobra.Command{
	Use:   "fix-cards <output-root>",
	Short: "Fix card display options on already-migrated pages",
	Long: `Sweep migrated pages and set the no-image display option on card
groups whose populated cards carry no imagery. Re-running after a clean
sweep changes nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runFixCards,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.Paths.Source = args[0]
	applyFlagOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = logging.WithLogger(ctx, logger)

	resolver, err := newResolver(ctx, cfg, logger)
	if err != nil {
		return err
	}

	o := batch.New(cfg, resolver, logger)
	res, err := o.Run(ctx)
	if err != nil {
		return err
	}
	printResult(res)

	if watchMode {
		if err := o.Watch(ctx); err != nil && ctx.Err() == nil {
			return err
		}
	}

	if res.Failed > 0 {
		return fmt.Errorf("%d file(s) failed", res.Failed)
	}
	return nil
}

func runFixCards(cmd *cobra.Command, args []string) error {
	res, err := cards.Sweep(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Files seen:     %d\n", res.FilesSeen)
	fmt.Printf("Files changed:  %d\n", res.FilesChanged)
	fmt.Printf("Groups changed: %d\n", res.GroupsChanged)
	return nil
}

// applyFlagOverrides copies explicitly-set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("templates") {
		cfg.Paths.Templates = templatesRoot
	}
	if flags.Changed("output") {
		cfg.Paths.Output = outputRoot
	}
	if flags.Changed("asset-table") {
		cfg.Paths.AssetTable = assetTable
	}
	if flags.Changed("global-log") {
		cfg.Paths.GlobalLog = globalLog
	}
	if flags.Changed("workers") {
		cfg.Run.Workers = workers
	}
	if flags.Changed("apply") {
		cfg.Run.Apply = applyRun
	}
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	logCfg := logging.NewDefaultConfig()
	logCfg.Format = cfg.Logging.Format
	level, err := logging.LevelFromString(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logCfg.Level = level
	return logging.NewLogger(logCfg)
}

// newResolver loads the asset table when configured; without one every
// image resolves to the explicit no-asset-id marker.
func newResolver(ctx context.Context, cfg *config.Config, logger *logging.Logger) (assets.Resolver, error) {
	if cfg.Paths.AssetTable == "" {
		logger.Warn(ctx, "no asset table configured; all images will be unresolved")
		return assets.NewTable(nil), nil
	}
	table, err := assets.LoadTable(cfg.Paths.AssetTable)
	if err != nil {
		return nil, fmt.Errorf("load asset table: %w", err)
	}
	return table, nil
}

func printResult(res *batch.Result) {
	fmt.Printf("Run:        %s\n", res.RunID)
	fmt.Printf("Seen:       %d\n", res.Seen)
	fmt.Printf("Succeeded:  %d\n", res.Succeeded)
	fmt.Printf("Failed:     %d\n", res.Failed)
	fmt.Printf("Skipped:    %d\n", res.Skipped)
	fmt.Printf("Sections:   %d\n", res.Sections)
	fmt.Printf("Items:      %d\n", res.Items)
	fmt.Printf("Exclusions: %d\n", res.Exclusions)
	if len(res.Failures) > 0 {
		fmt.Println("Failures (bounded preview):")
		for _, f := range res.Failures {
			fmt.Printf("  - %s\n", f)
		}
		if res.Failed > len(res.Failures) {
			fmt.Printf("  ... and %d more\n", res.Failed-len(res.Failures))
		}
	}
}
