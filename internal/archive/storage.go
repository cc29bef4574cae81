// Package archive abstracts blob storage for level documents and assessment
// results, keyed by project.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// StorageClient abstracts blob storage for levels and results.
type StorageClient interface {
	PutLevel(ctx context.Context, projectID, levelID string, data []byte) error
	GetLevel(ctx context.Context, projectID, levelID string) ([]byte, error)
	PutResult(ctx context.Context, projectID, runID string, data []byte) error
	GetResult(ctx context.Context, projectID, runID string) ([]byte, error)
}

// LevelRef is the storage reference recorded alongside a run for the level
// document it was assessed from.
func LevelRef(projectID, levelID string) string {
	return projectID + "/levels/" + levelID + ".json"
}

// LocalStorage implements StorageClient using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(projectID, kind, id string) string {
	return filepath.Join(s.BaseDir, projectID, kind, id+".json")
}

func (s *LocalStorage) put(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PutLevel stores a level document.
func (s *LocalStorage) PutLevel(ctx context.Context, projectID, levelID string, data []byte) error {
	return s.put(s.path(projectID, "levels", levelID), data)
}

// GetLevel retrieves a level document.
func (s *LocalStorage) GetLevel(ctx context.Context, projectID, levelID string) ([]byte, error) {
	return os.ReadFile(s.path(projectID, "levels", levelID))
}

// PutResult stores an assessment result blob.
func (s *LocalStorage) PutResult(ctx context.Context, projectID, runID string, data []byte) error {
	return s.put(s.path(projectID, "results", runID), data)
}

// GetResult retrieves an assessment result blob.
func (s *LocalStorage) GetResult(ctx context.Context, projectID, runID string) ([]byte, error) {
	return os.ReadFile(s.path(projectID, "results", runID))
}
