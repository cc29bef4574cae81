// Package main provides the delvescope CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/delvescope/delvescope/pkg/config"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "delvescope",
		Short: "Quality assessment for dungeon maps",
		Long: `Delvescope builds the room-adjacency graph of a dungeon level, infers
topology from geometry when none is declared, and scores the layout against
structural, gameplay, and aesthetic design heuristics.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newAssessCmd(),
		newMetricCmd(),
		newInferCmd(),
		newBatchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfig loads an explicit config path, or walks up from the working
// directory looking for .delvescope/config.yaml, falling back to defaults.
func resolveConfig(path string) (*config.Config, error) {
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(wd)
		}
	}
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}
