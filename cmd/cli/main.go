package main

import (
	"context"
	"fmt"
	"os"

	"stailab/domain/study"
	"stailab/internal"
	"stailab/internal/config"
	"stailab/internal/container"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// flags shared by every subcommand; set values override the environment.
type globalFlags struct {
	data     string
	out      string
	workers  int
	noCharts bool
	markdown bool
	html     bool
	xlsx     bool
	logLevel string
}

func main() {
	_ = godotenv.Load()

	var flags globalFlags
	rootCmd := &cobra.Command{
		Use:   "stailab",
		Short: "STAI-S condition and element analysis",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.logLevel != "" {
				internal.DefaultLogger.SetLevel(internal.ParseLogLevel(flags.logLevel))
			}
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.data, "data", "", "participant table (.csv or .xlsx); overrides DATA_FILE")
	pf.StringVar(&flags.out, "out", "", "output directory; overrides OUTPUT_DIR")
	pf.IntVar(&flags.workers, "workers", 0, "dimensions analyzed in parallel; overrides WORKERS")
	pf.BoolVar(&flags.noCharts, "no-charts", false, "skip box plot PNGs")
	pf.BoolVar(&flags.markdown, "markdown", false, "also write report.md")
	pf.BoolVar(&flags.html, "html", false, "also write report.html")
	pf.BoolVar(&flags.xlsx, "xlsx", false, "also write analysis_summary.xlsx")
	pf.StringVar(&flags.logLevel, "log-level", "", "ERROR, WARN, INFO, DEBUG or TRACE")

	rootCmd.AddCommand(
		newAnalyzeCmd(&flags),
		newPairedCmd(&flags),
		newGroupsCmd(&flags),
		newCorrelateCmd(&flags),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildContainer loads the environment config and applies flag overrides.
func buildContainer(flags *globalFlags) (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, flags)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return container.New(cfg)
}

func applyFlags(cfg *config.Config, flags *globalFlags) {
	if flags.data != "" {
		cfg.Data.File = flags.data
	}
	if flags.out != "" {
		cfg.Output.Dir = flags.out
	}
	if flags.workers > 0 {
		cfg.Runtime.Workers = flags.workers
	}
	if flags.noCharts {
		cfg.Charts.Enabled = false
	}
	cfg.Output.Markdown = cfg.Output.Markdown || flags.markdown
	cfg.Output.HTML = cfg.Output.HTML || flags.html
	cfg.Output.SummaryExcel = cfg.Output.SummaryExcel || flags.xlsx
}

func loadDataset(flags *globalFlags) (*container.Container, *study.Dataset, error) {
	c, err := buildContainer(flags)
	if err != nil {
		return nil, nil, err
	}
	ds, err := c.Loader.Load()
	if err != nil {
		return nil, nil, err
	}
	return c, ds, nil
}

func withTimeout(parent context.Context, c *container.Container) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, c.Config.Runtime.Timeout)
}
