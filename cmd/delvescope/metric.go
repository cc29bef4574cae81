package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/scoring"
)

func newMetricCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metric",
		Short: "Inspect and run individual metrics",
	}
	cmd.AddCommand(newMetricListCmd(), newMetricEvalCmd())
	return cmd
}

func newMetricListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tCATEGORY\tNAME")
			for _, m := range scoring.DefaultMetrics(scoring.DefaultParams()) {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Key(), m.Category(), m.Name())
			}
			return tw.Flush()
		},
	}
}

func newMetricEvalCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "eval <key> <level.json>",
		Short: "Evaluate one metric against a level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(configPath)
			if err != nil {
				return err
			}
			engine, err := scoring.NewEngineForKeys(cfg.Params(), scoring.MetricKeys())
			if err != nil {
				return err
			}
			engine = engine.WithInferenceOptions(cfg.InferenceOptions())

			level, err := dungeon.LoadLevel(args[1])
			if err != nil {
				return err
			}
			result, err := engine.EvaluateMetric(args[0], level)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: find .delvescope/config.yaml)")
	return cmd
}
