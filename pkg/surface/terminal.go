package surface

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/delvescope/delvescope/pkg/scoring"
)

// TerminalRenderer renders AssessmentResult as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func gradeColor(grade string) string {
	if noColor() {
		return ""
	}
	switch grade {
	case "A", "B":
		return colorGreen
	case "C":
		return colorYellow
	case "D", "F":
		return colorRed
	default:
		return ""
	}
}

func scoreColor(score float64) string {
	if noColor() {
		return ""
	}
	switch {
	case score >= 0.8:
		return colorGreen
	case score >= 0.4:
		return colorYellow
	default:
		return colorRed
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, result *scoring.AssessmentResult) error {
	gc := gradeColor(result.Grade)

	// Header
	fmt.Fprintf(w, "%s\n",
		bold(fmt.Sprintf("Delvescope: Grade %s — Score %.2f",
			colored(result.Grade, gc), result.OverallScore)))

	name := result.LevelName
	if name == "" {
		name = "(unnamed level)"
	}
	inferred := ""
	if result.TopologyInferred {
		inferred = " (topology inferred)"
	}
	fmt.Fprintf(w, "%s — %d rooms / %d connections%s\n\n",
		name, result.RoomCount, result.ConnectionCount, inferred)

	// Category breakdown in fixed order; skip categories with no metrics.
	fmt.Fprintln(w, "Categories:")
	for _, cat := range []scoring.Category{
		scoring.CategoryStructural, scoring.CategoryGameplay, scoring.CategoryAesthetic,
	} {
		score, ok := result.Categories[cat]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-12s %s\n", cat, colored(fmt.Sprintf("%.2f", score), scoreColor(score)))
	}
	fmt.Fprintln(w)

	// Per-metric lines in canonical registry order; anything the registry
	// doesn't know goes last, alphabetically.
	fmt.Fprintln(w, "Metrics:")
	for _, mr := range orderedScores(result) {
		fmt.Fprintf(w, "  %s  %s",
			colored(fmt.Sprintf("%.2f", mr.Score), scoreColor(mr.Score)), bold(mr.Name))
		if reason, ok := mr.Detail["error"].(string); ok {
			fmt.Fprintf(w, "  %s", colored("! "+reason, colorRed))
		} else if summary := detailSummary(mr); summary != "" {
			fmt.Fprintf(w, "  %s", dim(summary))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	return nil
}

func orderedScores(result *scoring.AssessmentResult) []scoring.MetricResult {
	var out []scoring.MetricResult
	seen := map[string]bool{}
	for _, key := range scoring.MetricKeys() {
		if mr, ok := result.Scores[key]; ok {
			out = append(out, mr)
			seen[key] = true
		}
	}
	var rest []string
	for key := range result.Scores {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		out = append(out, result.Scores[key])
	}
	return out
}

// detailSummary picks the one diagnostic per metric worth a glance on the
// terminal; the full detail map is always available via --format json.
func detailSummary(mr scoring.MetricResult) string {
	d := mr.Detail
	switch mr.Key {
	case "accessibility":
		if reach, ok := d["reachable_rooms"].(int); ok {
			return fmt.Sprintf("%d/%v rooms reachable from %v", reach, d["total_rooms"], d["entrance"])
		}
	case "dead_end_ratio":
		if count, ok := d["dead_end_count"].(int); ok {
			return fmt.Sprintf("%d dead ends", count)
		}
	case "loop_ratio":
		if cycles, ok := d["independent_cycles"].(int); ok {
			return fmt.Sprintf("%d independent cycles", cycles)
		}
	case "door_distribution":
		if mean, ok := d["mean_doors_per_room"].(float64); ok {
			return fmt.Sprintf("%.1f doors per room", mean)
		}
	case "path_diversity":
		if avg, ok := d["avg_paths"].(float64); ok {
			return fmt.Sprintf("%.1f routes per sampled pair", avg)
		}
	case "key_path_length":
		if length, ok := d["path_length"].(int); ok {
			return fmt.Sprintf("%v to %v in %d hops (diameter %v)",
				d["entrance"], d["exit"], length, d["diameter"])
		}
	case "element_distribution":
		if reason, ok := d["reason"].(string); ok {
			return reason
		}
		if n, ok := d["elements"].(int); ok {
			return fmt.Sprintf("%d elements placed", n)
		}
	}
	return ""
}
