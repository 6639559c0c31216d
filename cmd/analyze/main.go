// Command analyze runs the analysis engine against a local file without a
// database, for quick inspection of a dataset before uploading it.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"datalens/adapters/tabular"
	"datalens/internal/config"
	internaldataset "datalens/internal/dataset"
	internaleda "datalens/internal/eda"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Offline exploratory analysis of CSV and XLSX files",
	}

	rootCmd.AddCommand(
		newReportCmd(),
		newHistogramCmd(),
		newMissingCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newReportCmd() *cobra.Command {
	var target string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Profile every column and compute feature correlations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			columns, err := tabular.NewDataReader(args[0]).ReadColumns()
			if err != nil {
				return err
			}

			cfg := config.DefaultAnalysisConfig()
			analyzer := internaleda.NewAnalyzer(internaleda.Config{
				TopValuesCap:     cfg.TopValuesCap,
				NumericThreshold: cfg.NumericThreshold,
			})
			report := analyzer.Analyze(columns, target)

			if asJSON {
				return printJSON(report)
			}

			fmt.Printf("Rows: %d  Columns: %d (%d numerical, %d categorical)\n",
				report.Summary.TotalRows, report.Summary.TotalColumns,
				report.Summary.NumericalFeatures, report.Summary.CategoricalFeatures)
			fmt.Printf("Missing: %.1f%%  Quality: %.1f%%\n\n",
				report.Summary.MissingPct, report.Summary.OverallQuality*100)

			for _, w := range report.Warnings {
				fmt.Printf("warning [%s]: %s\n", w.Code, w.Message)
			}

			for _, f := range report.Features {
				fmt.Printf("%-24s %-12s missing %5.1f%%  unique %d",
					f.Name, f.Type, f.MissingPct, f.UniqueCount)
				if f.Numerical != nil {
					fmt.Printf("  mean %.3f  std %.3f  skew %.2f",
						f.Numerical.Mean, f.Numerical.Std, f.Numerical.Skewness)
				}
				fmt.Println()
			}

			if len(report.Correlations) > 0 {
				fmt.Println("\nStrongest correlations:")
				for _, c := range report.Correlations {
					fmt.Printf("  %s x %s: %.3f (%s, n=%d)\n",
						c.Feature1, c.Feature2, c.Correlation, c.Strength, c.SampleSize)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Target column for relevance ranking")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full report as JSON")

	return cmd
}

func newHistogramCmd() *cobra.Command {
	var bins int

	cmd := &cobra.Command{
		Use:   "histogram [file]",
		Short: "Compute distribution buckets for every numerical column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			columns, err := tabular.NewDataReader(args[0]).ReadColumns()
			if err != nil {
				return err
			}

			processor := offlineProcessor(internaldataset.Options{HistogramBins: bins})
			histograms, err := processor.Histograms(context.Background(), columns)
			if err != nil {
				return err
			}
			return printJSON(histograms)
		},
	}

	cmd.Flags().IntVar(&bins, "bins", 12, "Number of histogram buckets")

	return cmd
}

func newMissingCmd() *cobra.Command {
	var chunks int

	cmd := &cobra.Command{
		Use:   "missing [file]",
		Short: "Segment missingness over the row order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			columns, err := tabular.NewDataReader(args[0]).ReadColumns()
			if err != nil {
				return err
			}

			processor := offlineProcessor(internaldataset.Options{MissingChunks: chunks})
			return printJSON(processor.MissingPatterns(columns))
		},
	}

	cmd.Flags().IntVar(&chunks, "chunks", 10, "Number of row segments")

	return cmd
}

func offlineProcessor(opts internaldataset.Options) *internaldataset.Processor {
	return internaldataset.NewProcessor(nil, nil, internaleda.DefaultConfig(), opts)
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
