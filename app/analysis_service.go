package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"stailab/adapters/report"
	"stailab/domain/core"
	domainstats "stailab/domain/stats"
	"stailab/domain/study"
	"stailab/internal"
	"stailab/internal/analysis/comparison"
	"stailab/internal/errors"
	"stailab/ports"

	"golang.org/x/sync/semaphore"
)

// AnalysisOptions selects which artifacts a run writes.
type AnalysisOptions struct {
	OutputDir    string
	Workers      int
	Markdown     bool
	HTML         bool
	SummaryExcel bool
	// Nil disables charts.
	Charts ports.ChartRenderer
	// Nil skips the workbook even when SummaryExcel is set.
	Excel ports.SummaryTableWriter
}

// AnalysisService runs the whole study analysis: paired comparison, per
// dimension frequencies, group comparisons and correlations, then artifacts.
type AnalysisService struct {
	opts AnalysisOptions
	log  *internal.Logger
}

func NewAnalysisService(opts AnalysisOptions) *AnalysisService {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &AnalysisService{opts: opts, log: internal.DefaultLogger.WithComponent("Analysis")}
}

// dimensionOutcome is the result for one dimension, indexed to keep order.
type dimensionOutcome struct {
	index       int
	comparison  *domainstats.ComparisonResult
	correlation *domainstats.CorrelationResult
	skipped     *domainstats.SkippedDimension
	chart       string
	err         error
}

// Analyze computes the report for ds. The only files it writes are chart
// PNGs, and only when a chart renderer is configured; OutputDir is created
// for them. Tables and reports are left to WriteArtifacts.
func (s *AnalysisService) Analyze(ctx context.Context, ds *study.Dataset) (*domainstats.Report, error) {
	start := time.Now()
	if s.opts.Charts != nil {
		if err := s.ensureOutputDir(); err != nil {
			return nil, err
		}
	}
	rep := &domainstats.Report{
		RunID:        core.NewRunID(),
		Source:       ds.Source,
		Fingerprint:  ds.Fingerprint,
		GeneratedAt:  core.Now(),
		Participants: len(ds.Observations),
		DroppedRows:  ds.DroppedRows,
	}
	s.log.Info("run %s: %d participants, %d dimensions", rep.RunID, rep.Participants, len(ds.Dimensions))

	paired, err := comparison.ComparePaired(ds.ScoresA(), ds.ScoresB())
	switch {
	case err == nil:
		rep.Paired = paired
	case core.IsInsufficientData(err):
		s.log.Warn("paired comparison skipped: %v", err)
	default:
		return nil, errors.Wrap(err, "paired comparison")
	}

	for _, dim := range ds.Dimensions {
		rep.Frequencies = append(rep.Frequencies, domainstats.DimensionFrequencies{
			Dimension: dim,
			Rows:      comparison.Frequencies(ds.Observations, dim),
		})
	}

	outcomes, err := s.runDimensions(ctx, ds)
	if err != nil {
		return nil, err
	}
	for _, o := range outcomes {
		if o.comparison != nil {
			rep.Comparisons = append(rep.Comparisons, o.comparison)
		}
		if o.correlation != nil {
			rep.Correlations = append(rep.Correlations, o.correlation)
		}
		if o.skipped != nil {
			rep.Skipped = append(rep.Skipped, *o.skipped)
		}
		if o.chart != "" {
			rep.Charts = append(rep.Charts, o.chart)
		}
	}

	s.log.Info("run %s: %d compared, %d skipped in %v", rep.RunID, len(rep.Comparisons), len(rep.Skipped), time.Since(start))
	return rep, nil
}

// runDimensions compares every dimension with at most Workers in flight.
func (s *AnalysisService) runDimensions(ctx context.Context, ds *study.Dataset) ([]dimensionOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "analysis canceled")
	}
	sem := semaphore.NewWeighted(int64(s.opts.Workers))
	results := make(chan dimensionOutcome, len(ds.Dimensions))
	var wg sync.WaitGroup

	for i, dim := range ds.Dimensions {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, errors.Wrap(err, "waiting for a worker")
		}
		wg.Add(1)
		go func(i int, dim study.Dimension) {
			defer wg.Done()
			defer sem.Release(1)
			results <- s.analyzeDimension(i, dim, ds.Observations)
		}(i, dim)
	}

	wg.Wait()
	close(results)

	outcomes := make([]dimensionOutcome, len(ds.Dimensions))
	for o := range results {
		if o.err != nil {
			return nil, o.err
		}
		outcomes[o.index] = o
	}
	return outcomes, nil
}

func (s *AnalysisService) analyzeDimension(index int, dim study.Dimension, observations []study.Observation) dimensionOutcome {
	out := dimensionOutcome{index: index}

	cmp, err := comparison.Compare(observations, dim)
	switch {
	case err == nil:
		out.comparison = cmp
		s.log.Debug("%s: %s p=%.4f", dim.Column, cmp.TestChoice, cmp.PValue)
	case core.IsInsufficientData(err):
		s.log.Warn("%s skipped: %v", dim.Column, err)
		out.skipped = &domainstats.SkippedDimension{Dimension: dim, Reason: err.Error()}
	default:
		out.err = errors.Wrapf(err, "compare %s", dim.Column)
		return out
	}

	corr, err := comparison.CorrelateDimension(observations, dim)
	switch {
	case err == nil:
		out.correlation = corr
	case core.IsInsufficientData(err):
		s.log.Debug("%s correlation skipped: %v", dim.Column, err)
	default:
		out.err = errors.Wrapf(err, "correlate %s", dim.Column)
		return out
	}

	if cmp != nil && s.opts.Charts != nil {
		path, err := s.opts.Charts.Render(cmp, observations)
		if err != nil {
			out.err = err
			return out
		}
		out.chart = path
	}
	return out
}

// Run analyzes ds, writes the summary table and optional reports under
// OutputDir, and returns the report.
func (s *AnalysisService) Run(ctx context.Context, ds *study.Dataset) (*domainstats.Report, error) {
	if err := s.ensureOutputDir(); err != nil {
		return nil, err
	}

	rep, err := s.Analyze(ctx, ds)
	if err != nil {
		return nil, err
	}
	if err := s.WriteArtifacts(rep); err != nil {
		return rep, err
	}
	return rep, nil
}

// WriteArtifacts writes analysis_summary.csv and whichever optional reports are enabled.
func (s *AnalysisService) WriteArtifacts(rep *domainstats.Report) error {
	rows := rep.SummaryRows()

	csvPath := filepath.Join(s.opts.OutputDir, "analysis_summary.csv")
	if err := writeFile(csvPath, func(f *os.File) error { return report.WriteSummaryCSV(f, rows) }); err != nil {
		return err
	}
	s.log.Info("summary saved: %s", csvPath)

	if s.opts.SummaryExcel && s.opts.Excel != nil {
		path := filepath.Join(s.opts.OutputDir, "analysis_summary.xlsx")
		if err := s.opts.Excel.Write(path, rows); err != nil {
			return err
		}
		s.log.Info("summary saved: %s", path)
	}

	if s.opts.Markdown {
		path := filepath.Join(s.opts.OutputDir, "report.md")
		if err := writeBytes(path, report.Markdown(rep)); err != nil {
			return err
		}
	}
	if s.opts.HTML {
		path := filepath.Join(s.opts.OutputDir, "report.html")
		if err := writeBytes(path, report.HTML(rep)); err != nil {
			return err
		}
	}
	return nil
}

func (s *AnalysisService) ensureOutputDir() error {
	if err := os.MkdirAll(s.opts.OutputDir, 0o755); err != nil {
		return errors.Wrapf(err, "create output directory %s", s.opts.OutputDir)
	}
	return nil
}

func writeFile(path string, fill func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.RenderError(path, err)
	}
	if err := fill(f); err != nil {
		f.Close()
		return errors.RenderError(path, err)
	}
	if err := f.Close(); err != nil {
		return errors.RenderError(path, err)
	}
	return nil
}

func writeBytes(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.RenderError(path, fmt.Errorf("write: %w", err))
	}
	return nil
}
