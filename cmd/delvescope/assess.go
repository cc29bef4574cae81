package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/scoring"
	"github.com/delvescope/delvescope/pkg/surface"
)

func newAssessCmd() *cobra.Command {
	var (
		configPath string
		outputFmt  string
		metricsCSV string
		failBelow  float64
	)

	cmd := &cobra.Command{
		Use:   "assess <level.json>",
		Short: "Assess a dungeon level",
		Long: `Loads a level file, builds its adjacency graph (inferring topology from
room geometry when the file declares no connections), evaluates every enabled
metric, and renders the aggregated assessment.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(configPath)
			if err != nil {
				return err
			}

			keys := cfg.EnabledMetrics()
			if metricsCSV != "" {
				keys = splitKeys(metricsCSV)
			}
			engine, err := scoring.NewEngineForKeys(cfg.Params(), keys)
			if err != nil {
				return err
			}
			engine = engine.WithInferenceOptions(cfg.InferenceOptions())

			level, err := dungeon.LoadLevel(args[0])
			if err != nil {
				return err
			}
			result, err := engine.Assess(level)
			if err != nil {
				return fmt.Errorf("assessing %s: %w", args[0], err)
			}

			if err := surface.ForFormat(outputFmt).Render(os.Stdout, result); err != nil {
				return fmt.Errorf("rendering: %w", err)
			}

			if failBelow > 0 && result.OverallScore < failBelow {
				return fmt.Errorf("overall score %.2f below threshold %.2f",
					result.OverallScore, failBelow)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: find .delvescope/config.yaml)")
	cmd.Flags().StringVar(&outputFmt, "format", "terminal", "Output format: terminal or json")
	cmd.Flags().StringVar(&metricsCSV, "metrics", "", "Comma-separated metric keys to run (default: config or all)")
	cmd.Flags().Float64Var(&failBelow, "fail-below", 0, "Exit non-zero when the overall score is below this value")

	return cmd
}

func splitKeys(csv string) []string {
	var keys []string
	for _, k := range strings.Split(csv, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
