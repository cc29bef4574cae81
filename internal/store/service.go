// Package store persists projects and assessment runs in Postgres.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/delvescope/delvescope/pkg/scoring"
)

// Service provides project and run persistence backed by Postgres.
type Service struct {
	db *sql.DB
}

// Project groups the assessment runs of one map collection.
type Project struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// RunRow represents a stored assessment run.
type RunRow struct {
	ID               string
	ProjectID        string
	LevelName        string
	OverallScore     float64
	Grade            string
	Categories       json.RawMessage
	Scores           json.RawMessage
	TopologyInferred bool
	RoomCount        int
	ConnectionCount  int
	LevelRef         string
	CreatedAt        time.Time
}

// NewService creates a new store Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// CreateProject creates a new project.
func (s *Service) CreateProject(ctx context.Context, name string) (*Project, error) {
	p := &Project{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO projects (name)
		 VALUES ($1)
		 RETURNING id, name, created_at`,
		name,
	).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

// GetProjectByName looks up a project by name.
func (s *Service) GetProjectByName(ctx context.Context, name string) (*Project, error) {
	p := &Project{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM projects WHERE name = $1`,
		name,
	).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", name, err)
	}
	return p, nil
}

// EnsureProject gets or creates a project by name.
func (s *Service) EnsureProject(ctx context.Context, name string) (*Project, error) {
	p, err := s.GetProjectByName(ctx, name)
	if err == nil {
		return p, nil
	}
	p, err = s.CreateProject(ctx, name)
	if err != nil {
		// Could be a race with a concurrent create; try getting again.
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return s.GetProjectByName(ctx, name)
		}
		return nil, fmt.Errorf("ensure project: %w", err)
	}
	return p, nil
}

// ListProjects returns all projects ordered by name.
func (s *Service) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM projects ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// InsertRun stores a completed assessment. levelRef points at the archived
// level document the run was computed from; it may be empty for ad-hoc runs.
func (s *Service) InsertRun(ctx context.Context, projectID, levelRef string, result *scoring.AssessmentResult) (*RunRow, error) {
	categories, err := json.Marshal(result.Categories)
	if err != nil {
		return nil, fmt.Errorf("marshal categories: %w", err)
	}
	scores, err := json.Marshal(result.Scores)
	if err != nil {
		return nil, fmt.Errorf("marshal scores: %w", err)
	}

	r := &RunRow{}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO assessment_runs
		   (id, project_id, level_name, overall_score, grade,
		    categories, scores, topology_inferred, room_count, connection_count, level_ref)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, project_id, level_name, overall_score, grade,
		           categories, scores, topology_inferred, room_count, connection_count,
		           level_ref, created_at`,
		result.ID, projectID, result.LevelName, result.OverallScore, result.Grade,
		categories, scores, result.TopologyInferred, result.RoomCount, result.ConnectionCount, levelRef,
	).Scan(
		&r.ID, &r.ProjectID, &r.LevelName, &r.OverallScore, &r.Grade,
		&r.Categories, &r.Scores, &r.TopologyInferred, &r.RoomCount, &r.ConnectionCount,
		&r.LevelRef, &r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return r, nil
}

// GetRunByID returns a single run by ID.
func (s *Service) GetRunByID(ctx context.Context, runID string) (*RunRow, error) {
	r := &RunRow{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, project_id, level_name, overall_score, grade,
		        categories, scores, topology_inferred, room_count, connection_count,
		        level_ref, created_at
		 FROM assessment_runs WHERE id = $1`,
		runID,
	).Scan(
		&r.ID, &r.ProjectID, &r.LevelName, &r.OverallScore, &r.Grade,
		&r.Categories, &r.Scores, &r.TopologyInferred, &r.RoomCount, &r.ConnectionCount,
		&r.LevelRef, &r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", runID, err)
	}
	return r, nil
}

// ListRunsByProject returns runs for a project, newest first. A limit of 0
// means no limit.
func (s *Service) ListRunsByProject(ctx context.Context, projectID string, limit int) ([]RunRow, error) {
	query := `SELECT id, project_id, level_name, overall_score, grade,
	                 categories, scores, topology_inferred, room_count, connection_count,
	                 level_ref, created_at
	          FROM assessment_runs WHERE project_id = $1 ORDER BY created_at DESC`
	args := []any{projectID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// LatestRunForLevel returns the most recent run of a named level within a
// project.
func (s *Service) LatestRunForLevel(ctx context.Context, projectID, levelName string) (*RunRow, error) {
	r := &RunRow{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, project_id, level_name, overall_score, grade,
		        categories, scores, topology_inferred, room_count, connection_count,
		        level_ref, created_at
		 FROM assessment_runs WHERE project_id = $1 AND level_name = $2
		 ORDER BY created_at DESC LIMIT 1`,
		projectID, levelName,
	).Scan(
		&r.ID, &r.ProjectID, &r.LevelName, &r.OverallScore, &r.Grade,
		&r.Categories, &r.Scores, &r.TopologyInferred, &r.RoomCount, &r.ConnectionCount,
		&r.LevelRef, &r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get latest run for %s: %w", levelName, err)
	}
	return r, nil
}

func scanRuns(rows *sql.Rows) ([]RunRow, error) {
	var runs []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(
			&r.ID, &r.ProjectID, &r.LevelName, &r.OverallScore, &r.Grade,
			&r.Categories, &r.Scores, &r.TopologyInferred, &r.RoomCount, &r.ConnectionCount,
			&r.LevelRef, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Result reconstructs the AssessmentResult stored in a run row.
func (r *RunRow) Result() (*scoring.AssessmentResult, error) {
	result := &scoring.AssessmentResult{
		ID:               r.ID,
		LevelName:        r.LevelName,
		OverallScore:     r.OverallScore,
		Grade:            r.Grade,
		TopologyInferred: r.TopologyInferred,
		RoomCount:        r.RoomCount,
		ConnectionCount:  r.ConnectionCount,
		AssessedAt:       r.CreatedAt,
	}
	if len(r.Categories) > 0 {
		if err := json.Unmarshal(r.Categories, &result.Categories); err != nil {
			return nil, fmt.Errorf("unmarshal categories: %w", err)
		}
	}
	if len(r.Scores) > 0 {
		if err := json.Unmarshal(r.Scores, &result.Scores); err != nil {
			return nil, fmt.Errorf("unmarshal scores: %w", err)
		}
	}
	return result, nil
}
