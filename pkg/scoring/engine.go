package scoring

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/graph"
	"github.com/delvescope/delvescope/pkg/spatial"
)

// Metric is the interface all quality metrics implement.
type Metric interface {
	// Key returns the machine-readable metric identifier.
	Key() string
	// Name returns the human-readable metric name.
	Name() string
	// Category returns the aggregation bucket the metric belongs to.
	Category() Category
	// Evaluate computes the metric score for a level and its derived graph.
	// Implementations handle their own degenerate inputs and return a
	// zero-score result with an error detail instead of failing.
	Evaluate(g *graph.Graph, level *dungeon.Level) MetricResult
}

// Configuration errors, reported before any computation starts.
var (
	ErrUnknownMetric = errors.New("unknown metric")
	ErrNoMetrics     = errors.New("no metrics enabled")
)

// Engine runs a fixed set of metrics against levels and aggregates their
// scores. Engines are immutable after construction and safe for concurrent
// use; each assessment builds its own graph.
type Engine struct {
	metrics []Metric
	infer   spatial.Options
}

// NewEngine creates an engine running the given metrics.
func NewEngine(metrics ...Metric) (*Engine, error) {
	if len(metrics) == 0 {
		return nil, ErrNoMetrics
	}
	return &Engine{metrics: metrics, infer: spatial.DefaultOptions()}, nil
}

// NewEngineForKeys creates an engine running only the named metrics from the
// default registry, with the given thresholds. Every key must exist.
func NewEngineForKeys(p Params, keys []string) (*Engine, error) {
	if len(keys) == 0 {
		return nil, ErrNoMetrics
	}
	registry := make(map[string]Metric)
	for _, m := range DefaultMetrics(p) {
		registry[m.Key()] = m
	}
	enabled := make(map[string]bool, len(keys))
	for _, k := range keys {
		if _, ok := registry[k]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, k)
		}
		enabled[k] = true
	}
	// Preserve canonical registry order regardless of request order.
	var metrics []Metric
	for _, m := range DefaultMetrics(p) {
		if enabled[m.Key()] {
			metrics = append(metrics, m)
		}
	}
	return &Engine{metrics: metrics, infer: spatial.DefaultOptions()}, nil
}

// Default returns an engine running all metrics with default thresholds.
func Default() *Engine {
	e, _ := NewEngine(DefaultMetrics(DefaultParams())...)
	return e
}

// WithInferenceOptions returns a copy of the engine that uses the given
// spatial options when a level declares no connections.
func (e *Engine) WithInferenceOptions(opts spatial.Options) *Engine {
	clone := *e
	clone.infer = opts
	return &clone
}

// Metrics returns the enabled metrics in evaluation order.
func (e *Engine) Metrics() []Metric { return e.metrics }

// Assess evaluates every enabled metric against the level and aggregates the
// results. When the level declares no connections at all, spatial inference
// runs first so the metrics see a usable topology. Graph construction
// failures abort the whole assessment; individual metric failures do not.
func (e *Engine) Assess(level *dungeon.Level) (*AssessmentResult, error) {
	assessed := level
	inferred := false
	if len(level.Connections) == 0 && len(level.Rooms) > 1 {
		assessed = spatial.InferTopologyWithOptions(level, e.infer)
		inferred = true
	}

	g, err := graph.Build(assessed)
	if err != nil {
		return nil, err
	}

	result := &AssessmentResult{
		ID:               uuid.New().String(),
		LevelName:        level.Name,
		Categories:       make(map[Category]float64),
		Scores:           make(map[string]MetricResult, len(e.metrics)),
		TopologyInferred: inferred,
		RoomCount:        g.NodeCount(),
		ConnectionCount:  g.EdgeCount(),
		AssessedAt:       time.Now().UTC(),
	}

	for _, m := range e.metrics {
		result.Scores[m.Key()] = evaluateSafe(m, g, assessed)
	}

	result.Categories = categoryAverages(result.Scores)
	result.OverallScore = overallScore(result.Categories)
	result.Grade = GradeFromScore(result.OverallScore)

	return result, nil
}

// EvaluateMetric runs a single enabled metric against a level, applying the
// same conditional inference as Assess.
func (e *Engine) EvaluateMetric(key string, level *dungeon.Level) (MetricResult, error) {
	var metric Metric
	for _, m := range e.metrics {
		if m.Key() == key {
			metric = m
			break
		}
	}
	if metric == nil {
		return MetricResult{}, fmt.Errorf("%w: %q", ErrUnknownMetric, key)
	}

	assessed := level
	if len(level.Connections) == 0 && len(level.Rooms) > 1 {
		assessed = spatial.InferTopologyWithOptions(level, e.infer)
	}
	g, err := graph.Build(assessed)
	if err != nil {
		return MetricResult{}, err
	}
	return evaluateSafe(metric, g, assessed), nil
}

// evaluateSafe isolates metric-local failures: a panic inside one evaluator
// becomes a zero-score result instead of aborting its siblings.
func evaluateSafe(m Metric, g *graph.Graph, level *dungeon.Level) (result MetricResult) {
	defer func() {
		if r := recover(); r != nil {
			result = errResult(m, fmt.Sprintf("metric panicked: %v", r))
		}
	}()
	result = m.Evaluate(g, level)
	result.Score = clamp01(result.Score)
	return result
}

// categoryAverages computes the mean score within each category that has at
// least one enabled metric. Scores are summed in sorted key order so repeated
// assessments produce bit-identical averages.
func categoryAverages(scores map[string]MetricResult) map[Category]float64 {
	keys := make([]string, 0, len(scores))
	for k := range scores {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sums := make(map[Category]float64)
	counts := make(map[Category]int)
	for _, k := range keys {
		mr := scores[k]
		sums[mr.Category] += mr.Score
		counts[mr.Category]++
	}
	out := make(map[Category]float64, len(sums))
	for cat, sum := range sums {
		out[cat] = sum / float64(counts[cat])
	}
	return out
}

// overallScore fuses category averages with equal weight across the
// categories present.
func overallScore(categories map[Category]float64) float64 {
	if len(categories) == 0 {
		return 0
	}
	cats := make([]string, 0, len(categories))
	for c := range categories {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)
	var sum float64
	for _, c := range cats {
		sum += categories[Category(c)]
	}
	return sum / float64(len(categories))
}
