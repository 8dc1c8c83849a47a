// Package store provides storage backends for MarketForge projects.
//
// This file implements a PostgreSQL-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	_ "github.com/lib/pq"

	"github.com/ForgeLabs/MarketForge/internal/models"
)

// Database connection pool configuration constants
const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections in the pool
	DefaultMaxIdleConns = 25
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("PostgresStore.NewPostgresStore: creating Postgres store", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run Postgres migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")
	return &PostgresStore{db: db}, nil
}

// SaveProject inserts or replaces the project snapshot.
func (s *PostgresStore) SaveProject(p models.Project) error {
	turns, completed, err := marshalProjectBlobs(p)
	if err != nil {
		slog.Error("PostgresStore.SaveProject marshal failed", "error", err, "projectID", p.ID)
		return err
	}
	_, err = s.db.Exec(`INSERT INTO projects
		(id, name, flow, turns, current_step, current_prompt_id, completed_prompts, report, complete, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			flow = EXCLUDED.flow,
			turns = EXCLUDED.turns,
			current_step = EXCLUDED.current_step,
			current_prompt_id = EXCLUDED.current_prompt_id,
			completed_prompts = EXCLUDED.completed_prompts,
			report = EXCLUDED.report,
			complete = EXCLUDED.complete,
			updated_at = EXCLUDED.updated_at`,
		p.ID, p.Name, string(p.Flow), turns, p.CurrentStep, p.CurrentPromptID, completed, p.Report, p.Complete, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		slog.Error("PostgresStore.SaveProject failed", "error", err, "projectID", p.ID)
		return fmt.Errorf("failed to save project %s: %w", p.ID, err)
	}
	slog.Debug("PostgresStore.SaveProject succeeded", "projectID", p.ID, "turnCount", len(p.Turns))
	return nil
}

// GetProject returns the project or models.ErrProjectNotFound.
func (s *PostgresStore) GetProject(id string) (models.Project, error) {
	row := s.db.QueryRow(`SELECT id, name, flow, turns, current_step, current_prompt_id, completed_prompts, report, complete, created_at, updated_at
		FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return models.Project{}, models.ErrProjectNotFound
	}
	if err != nil {
		slog.Error("PostgresStore.GetProject failed", "error", err, "projectID", id)
		return models.Project{}, fmt.Errorf("failed to get project %s: %w", id, err)
	}
	return p, nil
}

// ListProjects returns all projects ordered by creation time.
func (s *PostgresStore) ListProjects() ([]models.Project, error) {
	rows, err := s.db.Query(`SELECT id, name, flow, turns, current_step, current_prompt_id, completed_prompts, report, complete, created_at, updated_at
		FROM projects ORDER BY created_at, id`)
	if err != nil {
		slog.Error("PostgresStore.ListProjects query failed", "error", err)
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			slog.Error("PostgresStore.ListProjects scan failed", "error", err)
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate project rows: %w", err)
	}
	slog.Debug("PostgresStore.ListProjects succeeded", "count", len(projects))
	return projects, nil
}

// DeleteProject removes the project.
func (s *PostgresStore) DeleteProject(id string) error {
	res, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		slog.Error("PostgresStore.DeleteProject failed", "error", err, "projectID", id)
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return models.ErrProjectNotFound
	}
	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
