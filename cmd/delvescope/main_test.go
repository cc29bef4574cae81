package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSplitKeys(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"accessibility", []string{"accessibility"}},
		{"accessibility,loop_ratio", []string{"accessibility", "loop_ratio"}},
		{" accessibility , loop_ratio ", []string{"accessibility", "loop_ratio"}},
		{"a,,b", []string{"a", "b"}},
		{"", nil},
	}
	for _, tc := range tests {
		if got := splitKeys(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitKeys(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestResolveConfigExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "inference:\n  adjacency_gap: 3\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(path)
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.Inference.AdjacencyGap != 3 {
		t.Errorf("AdjacencyGap = %g, want 3", cfg.Inference.AdjacencyGap)
	}
}

func TestResolveConfigFallsBackToDefaults(t *testing.T) {
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig("")
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.Inference.AdjacencyGap != 1.0 {
		t.Errorf("AdjacencyGap = %g, want default 1.0", cfg.Inference.AdjacencyGap)
	}
}
