// Package config handles loading and managing Delvescope configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/delvescope/delvescope/pkg/scoring"
	"github.com/delvescope/delvescope/pkg/spatial"
)

// Config is the top-level configuration for Delvescope.
type Config struct {
	Assessment AssessmentConfig `yaml:"assessment"`
	Inference  InferenceConfig  `yaml:"inference"`
}

// AssessmentConfig controls which metrics run and with what thresholds.
type AssessmentConfig struct {
	// Metrics lists the metric keys to evaluate. Empty means the full
	// registry.
	Metrics []string `yaml:"metrics"`
	// Thresholds overrides individual evaluator tunables by name, e.g.
	// dead_end_ceiling: 0.4.
	Thresholds map[string]float64 `yaml:"thresholds"`
}

// InferenceConfig controls geometric topology inference.
type InferenceConfig struct {
	// AdjacencyGap is the maximum axis-aligned gap, in map units, at which
	// two rooms still count as adjacent.
	AdjacencyGap float64 `yaml:"adjacency_gap"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Assessment: AssessmentConfig{
			Thresholds: map[string]float64{},
		},
		Inference: InferenceConfig{
			AdjacencyGap: spatial.DefaultAdjacencyThreshold,
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	known := map[string]bool{}
	for _, key := range scoring.MetricKeys() {
		known[key] = true
	}
	for _, key := range c.Assessment.Metrics {
		if !known[key] {
			return fmt.Errorf("config: unknown metric %q", key)
		}
	}
	for name := range c.Assessment.Thresholds {
		if _, ok := thresholdSetters[name]; !ok {
			return fmt.Errorf("config: unknown threshold %q", name)
		}
	}
	if c.Inference.AdjacencyGap < 0 {
		return fmt.Errorf("config: adjacency_gap must be non-negative, got %g", c.Inference.AdjacencyGap)
	}
	return nil
}

// Params returns the evaluator thresholds with config overrides applied.
func (c *Config) Params() scoring.Params {
	p := scoring.DefaultParams()
	for name, value := range c.Assessment.Thresholds {
		if set, ok := thresholdSetters[name]; ok {
			set(&p, value)
		}
	}
	return p
}

// EnabledMetrics returns the configured metric keys, defaulting to the full
// registry.
func (c *Config) EnabledMetrics() []string {
	if len(c.Assessment.Metrics) == 0 {
		return scoring.MetricKeys()
	}
	return c.Assessment.Metrics
}

// InferenceOptions returns the spatial inference options for this config.
func (c *Config) InferenceOptions() spatial.Options {
	opts := spatial.DefaultOptions()
	opts.AdjacencyThreshold = c.Inference.AdjacencyGap
	return opts
}

// thresholdSetters maps config threshold names onto Params fields. Names use
// the same vocabulary as the metric keys so overrides read naturally in YAML.
var thresholdSetters = map[string]func(*scoring.Params, float64){
	"accessibility_ideal_lo":   func(p *scoring.Params, v float64) { p.AccessibilityIdealLo = v },
	"accessibility_ideal_hi":   func(p *scoring.Params, v float64) { p.AccessibilityIdealHi = v },
	"accessibility_over_floor": func(p *scoring.Params, v float64) { p.AccessibilityOverFloor = v },
	"dead_end_ceiling":         func(p *scoring.Params, v float64) { p.DeadEndCeiling = v },
	"loop_ideal_ratio":         func(p *scoring.Params, v float64) { p.LoopIdealRatio = v },
	"loop_spread":              func(p *scoring.Params, v float64) { p.LoopSpread = v },
	"degree_variance_center":   func(p *scoring.Params, v float64) { p.DegreeVarianceCenter = v },
	"degree_variance_spread":   func(p *scoring.Params, v float64) { p.DegreeVarianceSpread = v },
	"door_mean_lo":             func(p *scoring.Params, v float64) { p.DoorMeanLo = v },
	"door_mean_hi":             func(p *scoring.Params, v float64) { p.DoorMeanHi = v },
	"door_spread_penalty":      func(p *scoring.Params, v float64) { p.DoorSpreadPenalty = v },
	"path_diversity_target":    func(p *scoring.Params, v float64) { p.PathDiversityTarget = v },
	"path_diversity_spread":    func(p *scoring.Params, v float64) { p.PathDiversitySpread = v },
	"path_max_len":             func(p *scoring.Params, v float64) { p.PathMaxLen = int(v) },
	"path_budget_per_pair":     func(p *scoring.Params, v float64) { p.PathBudgetPerPair = int(v) },
	"path_max_pair_samples":    func(p *scoring.Params, v float64) { p.PathMaxPairSamples = int(v) },
	"path_sample_seed":         func(p *scoring.Params, v float64) { p.PathSampleSeed = int64(v) },
	"key_path_ideal_lo":        func(p *scoring.Params, v float64) { p.KeyPathIdealLo = v },
	"key_path_ideal_hi":        func(p *scoring.Params, v float64) { p.KeyPathIdealHi = v },
	"element_density_lo":       func(p *scoring.Params, v float64) { p.ElementDensityLo = v },
	"element_density_hi":       func(p *scoring.Params, v float64) { p.ElementDensityHi = v },
	"element_min_spread_ratio": func(p *scoring.Params, v float64) { p.ElementMinSpreadRatio = v },
	"element_guard_max_ratio":  func(p *scoring.Params, v float64) { p.ElementGuardMaxRatio = v },
}

// FindConfigFile looks for .delvescope/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".delvescope", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns the cache directory for a given project path.
// Uses ~/.cache/delvescope/<slug>/ to avoid polluting the project.
func CacheDir(projectPath string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "delvescope", projectSlug(projectPath))
}

// ResultsDir returns the assessment result storage directory for a project.
func ResultsDir(projectPath string) string {
	return filepath.Join(CacheDir(projectPath), "results")
}

// projectSlug creates a filesystem-safe identifier from a project path.
// Uses the last two path components for readability.
func projectSlug(projectPath string) string {
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		abs = projectPath
	}
	dir := filepath.Base(filepath.Dir(abs))
	base := filepath.Base(abs)
	return dir + "_" + base
}
