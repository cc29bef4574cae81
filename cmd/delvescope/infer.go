package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/spatial"
)

func newInferCmd() *cobra.Command {
	var (
		configPath string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "infer <level.json>",
		Short: "Infer topology from room geometry",
		Long: `Adds inferred connections for geometrically adjacent room pairs and fills
in door positions for connections that lack one, then writes the enriched
level document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(configPath)
			if err != nil {
				return err
			}

			level, err := dungeon.LoadLevel(args[0])
			if err != nil {
				return err
			}

			before := len(level.Connections)
			enriched := spatial.InferTopologyWithOptions(level, cfg.InferenceOptions())
			fmt.Fprintf(os.Stderr, "Inferred %d connections (%d declared)\n",
				len(enriched.Connections)-before, before)

			if outPath != "" {
				return dungeon.SaveLevel(outPath, enriched)
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(enriched)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: find .delvescope/config.yaml)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the enriched level to this file instead of stdout")

	return cmd
}
