package main

import (
	"fmt"
	"strings"

	"stailab/adapters/report"
	"stailab/domain/core"
	domainstats "stailab/domain/stats"
	"stailab/domain/study"
	"stailab/internal/analysis/comparison"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis and write all artifacts",
		Long: `Run the paired A/B comparison, the per-element group comparisons and the
Spearman correlations, then write analysis_summary.csv, the box plots and any
optional reports to the output directory.

Example: stailab analyze --data study.xlsx --out element_analysis --html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ds, err := loadDataset(flags)
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd.Context(), c)
			defer cancel()

			rep, err := c.Analysis.Run(ctx, ds)
			if err != nil {
				return err
			}
			return report.NewConsoleRenderer(cmd.OutOrStdout()).Render(rep)
		},
	}
}

func newPairedCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "paired",
		Short: "Compare condition A with condition B over the whole sample",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ds, err := loadDataset(flags)
			if err != nil {
				return err
			}
			res, err := comparison.ComparePaired(ds.ScoresA(), ds.ScoresB())
			if err != nil {
				return err
			}
			rep := newReport(ds)
			rep.Paired = res
			return report.NewConsoleRenderer(cmd.OutOrStdout()).Render(rep)
		},
	}
}

func newGroupsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "groups [column...]",
		Short: "Compare delta STAI-S across the groups of element columns",
		Long: `Run the adaptive group comparison for the named element columns, or for
every element column in the file when none are given.

Example: stailab groups Element1_Obligation Element3_Rejection --data study.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ds, err := loadDataset(flags)
			if err != nil {
				return err
			}
			dims, err := selectDimensions(ds, args)
			if err != nil {
				return err
			}

			rep := newReport(ds)
			for _, dim := range dims {
				res, err := comparison.Compare(ds.Observations, dim)
				if core.IsInsufficientData(err) {
					rep.Skipped = append(rep.Skipped, domainstats.SkippedDimension{Dimension: dim, Reason: err.Error()})
					continue
				}
				if err != nil {
					return err
				}
				rep.Comparisons = append(rep.Comparisons, res)
			}
			return report.NewConsoleRenderer(cmd.OutOrStdout()).Render(rep)
		},
	}
}

func newCorrelateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "correlate [column...]",
		Short: "Spearman correlation between element labels and delta STAI-S",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ds, err := loadDataset(flags)
			if err != nil {
				return err
			}
			dims, err := selectDimensions(ds, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, dim := range dims {
				res, err := comparison.CorrelateDimension(ds.Observations, dim)
				if core.IsInsufficientData(err) {
					fmt.Fprintf(out, "%s: skipped (%v)\n", dim.Name, err)
					continue
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: rho = %.3f, %s %s (n=%d)\n",
					dim.Name, res.Rho, domainstats.FormatPaperP(res.PValue), res.Significance.Marker(), res.N)
			}
			return nil
		},
	}
}

// newReport starts a report header for a single-section command.
func newReport(ds *study.Dataset) *domainstats.Report {
	return &domainstats.Report{
		RunID:        core.NewRunID(),
		Source:       ds.Source,
		Fingerprint:  ds.Fingerprint,
		GeneratedAt:  core.Now(),
		Participants: len(ds.Observations),
		DroppedRows:  ds.DroppedRows,
	}
}

// selectDimensions resolves column names against the loaded dimensions.
func selectDimensions(ds *study.Dataset, columns []string) ([]study.Dimension, error) {
	if len(columns) == 0 {
		return ds.Dimensions, nil
	}
	dims := make([]study.Dimension, 0, len(columns))
	for _, col := range columns {
		found := false
		for _, d := range ds.Dimensions {
			if strings.EqualFold(d.Column, col) {
				dims = append(dims, d)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: element column %s not in %s", core.ErrMissingColumn, col, ds.Source)
		}
	}
	return dims, nil
}
