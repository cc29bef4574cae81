package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/delvescope/delvescope/internal/batch"
	"github.com/delvescope/delvescope/pkg/scoring"
)

func newBatchCmd() *cobra.Command {
	var (
		configPath string
		workers    int
		csvPath    string
	)

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Assess every level file under a directory",
		Long: `Walks a directory for .json level files, assesses them concurrently, and
prints a summary. With --csv the per-level scores are exported for
spreadsheet analysis.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(configPath)
			if err != nil {
				return err
			}

			paths, err := batch.FindLevelFiles(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Assessing %d levels...\n", len(paths))

			runner := &batch.Runner{
				Workers:   workers,
				Params:    cfg.Params(),
				Metrics:   cfg.EnabledMetrics(),
				Inference: cfg.InferenceOptions(),
			}
			summary, err := runner.Run(cmd.Context(), paths)
			if err != nil {
				return err
			}

			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", csvPath, err)
				}
				defer f.Close()
				if err := batch.WriteCSV(f, summary); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "CSV written: %s\n", csvPath)
			}

			printBatchSummary(summary)
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d levels failed", summary.Failed, len(summary.Items))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: find .delvescope/config.yaml)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent assessors (default: GOMAXPROCS)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Export per-level scores to this CSV file")

	return cmd
}

const summaryRounding = 10 * time.Millisecond

func printBatchSummary(summary *batch.Summary) {
	fmt.Printf("Batch %s: %d assessed, %d failed in %s\n",
		summary.BatchID, summary.Assessed, summary.Failed, summary.Duration.Round(summaryRounding))
	if summary.Assessed > 0 {
		fmt.Printf("Mean score %.2f (grade %s)\n",
			summary.MeanScore, scoring.GradeFromScore(summary.MeanScore))
	}

	grades := make([]string, 0, len(summary.Grades))
	for g := range summary.Grades {
		grades = append(grades, g)
	}
	sort.Strings(grades)
	for _, g := range grades {
		fmt.Printf("  %s: %d\n", g, summary.Grades[g])
	}

	for _, item := range summary.Items {
		if item.Err != nil {
			fmt.Fprintf(os.Stderr, "  failed: %v\n", item.Err)
		}
	}
}
