package container

import (
	"os"
	"path/filepath"

	"stailab/adapters/chart"
	"stailab/adapters/excel"
	"stailab/adapters/report"
	"stailab/app"
	"stailab/internal/config"
	"stailab/internal/errors"
	"stailab/ports"
)

// Container holds all application dependencies built from one Config.
type Container struct {
	Config *config.Config

	Loader   ports.DatasetLoader
	Charts   ports.ChartRenderer
	Summary  ports.SummaryTableWriter
	Console  ports.ReportRenderer
	Analysis *app.AnalysisService
}

// New wires the adapters for cfg. DATA_FILE must be set.
func New(cfg *config.Config) (*Container, error) {
	if cfg.Data.File == "" {
		return nil, errors.ConfigInvalid("DATA_FILE is required (or pass --data)")
	}
	if _, err := os.Stat(cfg.Data.File); err != nil {
		return nil, errors.WithCode(errors.CodeNotFound, err)
	}

	c := &Container{
		Config:  cfg,
		Loader:  excel.NewDataReader(cfg.Data.File),
		Summary: excel.NewSummaryWriter(),
		Console: report.NewConsoleRenderer(os.Stdout),
	}

	if cfg.Charts.Enabled {
		c.Charts = chart.NewBoxPlotRenderer(filepath.Clean(cfg.Output.Dir), chart.Options{
			WidthCM:    cfg.Charts.WidthCM,
			HeightCM:   cfg.Charts.HeightCM,
			JitterSD:   cfg.Charts.JitterSD,
			JitterSeed: cfg.Charts.JitterSeed,
		})
	}

	c.Analysis = app.NewAnalysisService(app.AnalysisOptions{
		OutputDir:    cfg.Output.Dir,
		Workers:      cfg.Runtime.Workers,
		Markdown:     cfg.Output.Markdown,
		HTML:         cfg.Output.HTML,
		SummaryExcel: cfg.Output.SummaryExcel,
		Charts:       c.Charts,
		Excel:        c.Summary,
	})
	return c, nil
}
