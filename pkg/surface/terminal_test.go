package surface_test

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/delvescope/delvescope/pkg/scoring"
	"github.com/delvescope/delvescope/pkg/surface"
)

func sampleResult() *scoring.AssessmentResult {
	return &scoring.AssessmentResult{
		ID:           "9e1f0f2c-0000-0000-0000-000000000000",
		LevelName:    "catacombs-1",
		OverallScore: 0.64,
		Grade:        "B",
		Categories: map[scoring.Category]float64{
			scoring.CategoryStructural: 0.71,
			scoring.CategoryGameplay:   0.52,
			scoring.CategoryAesthetic:  0.70,
		},
		Scores: map[string]scoring.MetricResult{
			"accessibility": {
				Key: "accessibility", Name: "Accessibility",
				Category: scoring.CategoryStructural, Score: 0.92,
				Detail: map[string]any{
					"entrance": "entry_hall", "reachable_rooms": 22, "total_rooms": 24,
				},
			},
			"dead_end_ratio": {
				Key: "dead_end_ratio", Name: "Dead-end ratio",
				Category: scoring.CategoryStructural, Score: 0.55,
				Detail:   map[string]any{"dead_end_count": 6},
			},
			"key_path_length": {
				Key: "key_path_length", Name: "Key path length",
				Category: scoring.CategoryGameplay, Score: 0,
				Detail:   map[string]any{"error": "no path between entrance and exit"},
			},
		},
		TopologyInferred: true,
		RoomCount:        24,
		ConnectionCount:  31,
		AssessedAt:       time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
	}
}

func TestTerminalRendererBasicOutput(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	var buf bytes.Buffer
	if err := (&surface.TerminalRenderer{}).Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Grade B",
		"Score 0.64",
		"catacombs-1 — 24 rooms / 31 connections (topology inferred)",
		"structural",
		"Accessibility",
		"22/24 rooms reachable from entry_hall",
		"Dead-end ratio",
		"6 dead ends",
		"! no path between entrance and exit",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\n%s", want, output)
		}
	}
}

func TestTerminalRendererMetricOrder(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	var buf bytes.Buffer
	if err := (&surface.TerminalRenderer{}).Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	output := buf.String()

	// Registry order: accessibility before dead_end_ratio before key_path_length.
	a := strings.Index(output, "Accessibility")
	d := strings.Index(output, "Dead-end ratio")
	k := strings.Index(output, "Key path length")
	if a < 0 || d < 0 || k < 0 || !(a < d && d < k) {
		t.Errorf("metrics out of canonical order (positions %d, %d, %d)\n%s", a, d, k, output)
	}
}

func TestTerminalRendererColorRespected(t *testing.T) {
	os.Unsetenv("NO_COLOR")

	var buf bytes.Buffer
	if err := (&surface.TerminalRenderer{}).Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "\033[") {
		t.Error("expected ANSI escape codes when NO_COLOR is not set")
	}
}

func TestJSONRendererRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := (&surface.JSONRenderer{}).Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var decoded scoring.AssessmentResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Grade != "B" || decoded.OverallScore != 0.64 {
		t.Errorf("round trip lost fields: %+v", decoded)
	}
	if len(decoded.Scores) != 3 {
		t.Errorf("Scores = %d entries, want 3", len(decoded.Scores))
	}
}

func TestForFormat(t *testing.T) {
	if _, ok := surface.ForFormat("json").(*surface.JSONRenderer); !ok {
		t.Error(`ForFormat("json") did not return the JSON renderer`)
	}
	if _, ok := surface.ForFormat("terminal").(*surface.TerminalRenderer); !ok {
		t.Error(`ForFormat("terminal") did not return the terminal renderer`)
	}
}
