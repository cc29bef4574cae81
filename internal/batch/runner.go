// Package batch assesses many level files in parallel and summarizes the
// results.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/delvescope/delvescope/pkg/dungeon"
	"github.com/delvescope/delvescope/pkg/scoring"
	"github.com/delvescope/delvescope/pkg/spatial"
)

// Item is the outcome for a single level file. Exactly one of Result and Err
// is set.
type Item struct {
	Path   string
	Result *scoring.AssessmentResult
	Err    error
}

// Summary aggregates a batch run.
type Summary struct {
	BatchID   string
	Items     []Item
	Assessed  int
	Failed    int
	MeanScore float64
	Grades    map[string]int
	Duration  time.Duration
}

// Runner assesses level files concurrently. Each worker gets its own engine,
// so metric state never crosses goroutines.
type Runner struct {
	// Workers is the number of concurrent assessors; <= 0 means GOMAXPROCS.
	Workers int
	// Params configures every worker's evaluators.
	Params scoring.Params
	// Metrics lists the enabled metric keys; empty means the full registry.
	Metrics []string
	// Inference tunes topology inference for connection-less levels; the zero
	// value keeps the spatial defaults.
	Inference spatial.Options
}

// Run assesses every path and returns a summary with items in input order.
// File-level failures (unreadable or invalid levels) are recorded per item;
// Run itself fails only on bad configuration or a canceled context.
func (r *Runner) Run(ctx context.Context, paths []string) (*Summary, error) {
	keys := r.Metrics
	if len(keys) == 0 {
		keys = scoring.MetricKeys()
	}
	// Fail fast on unknown keys before spawning workers.
	if _, err := scoring.NewEngineForKeys(r.Params, keys); err != nil {
		return nil, err
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(paths) && len(paths) > 0 {
		workers = len(paths)
	}

	start := time.Now()
	items := make([]Item, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			engine, err := scoring.NewEngineForKeys(r.Params, keys)
			if err != nil {
				return
			}
			if r.Inference.AdjacencyThreshold > 0 {
				engine = engine.WithInferenceOptions(r.Inference)
			}
			for i := range jobs {
				items[i] = assessFile(engine, paths[i])
			}
		}()
	}

	var ctxErr error
dispatch:
	for i := range paths {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if ctxErr != nil {
		return nil, ctxErr
	}

	summary := &Summary{
		BatchID:  uuid.NewString(),
		Items:    items,
		Grades:   map[string]int{},
		Duration: time.Since(start),
	}
	var total float64
	for _, item := range items {
		if item.Err != nil {
			summary.Failed++
			continue
		}
		summary.Assessed++
		total += item.Result.OverallScore
		summary.Grades[item.Result.Grade]++
	}
	if summary.Assessed > 0 {
		summary.MeanScore = total / float64(summary.Assessed)
	}
	return summary, nil
}

func assessFile(engine *scoring.Engine, path string) Item {
	level, err := dungeon.LoadLevel(path)
	if err != nil {
		return Item{Path: path, Err: fmt.Errorf("load %s: %w", path, err)}
	}
	if level.Name == "" {
		level.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	result, err := engine.Assess(level)
	if err != nil {
		return Item{Path: path, Err: fmt.Errorf("assess %s: %w", path, err)}
	}
	return Item{Path: path, Result: result}
}

// FindLevelFiles returns the .json files under dir, sorted, so batch output
// order is stable across runs.
func FindLevelFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no level files found under %s", dir)
	}
	return paths, nil
}
