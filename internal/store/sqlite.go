// Package store provides storage backends for MarketForge projects.
//
// This file implements an SQLite-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ForgeLabs/MarketForge/internal/models"
)

// DefaultDirPermissions defines the default permissions for database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN should be a file path to the SQLite database file.
// If the directory doesn't exist, it will be created.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	slog.Debug("Opening SQLite database connection")
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}
	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run SQLite migrations", "dsn", dsn, "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully", "dsn", dsn)
	return &SQLiteStore{db: db}, nil
}

// SaveProject inserts or replaces the project snapshot.
func (s *SQLiteStore) SaveProject(p models.Project) error {
	turns, completed, err := marshalProjectBlobs(p)
	if err != nil {
		slog.Error("SQLiteStore.SaveProject marshal failed", "error", err, "projectID", p.ID)
		return err
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO projects
		(id, name, flow, turns, current_step, current_prompt_id, completed_prompts, report, complete, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, string(p.Flow), turns, p.CurrentStep, p.CurrentPromptID, completed, p.Report, p.Complete, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		slog.Error("SQLiteStore.SaveProject failed", "error", err, "projectID", p.ID)
		return fmt.Errorf("failed to save project %s: %w", p.ID, err)
	}
	slog.Debug("SQLiteStore.SaveProject succeeded", "projectID", p.ID, "turnCount", len(p.Turns))
	return nil
}

// GetProject returns the project or models.ErrProjectNotFound.
func (s *SQLiteStore) GetProject(id string) (models.Project, error) {
	row := s.db.QueryRow(`SELECT id, name, flow, turns, current_step, current_prompt_id, completed_prompts, report, complete, created_at, updated_at
		FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return models.Project{}, models.ErrProjectNotFound
	}
	if err != nil {
		slog.Error("SQLiteStore.GetProject failed", "error", err, "projectID", id)
		return models.Project{}, fmt.Errorf("failed to get project %s: %w", id, err)
	}
	return p, nil
}

// ListProjects returns all projects ordered by creation time.
func (s *SQLiteStore) ListProjects() ([]models.Project, error) {
	rows, err := s.db.Query(`SELECT id, name, flow, turns, current_step, current_prompt_id, completed_prompts, report, complete, created_at, updated_at
		FROM projects ORDER BY created_at, id`)
	if err != nil {
		slog.Error("SQLiteStore.ListProjects query failed", "error", err)
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			slog.Error("SQLiteStore.ListProjects scan failed", "error", err)
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate project rows: %w", err)
	}
	slog.Debug("SQLiteStore.ListProjects succeeded", "count", len(projects))
	return projects, nil
}

// DeleteProject removes the project.
func (s *SQLiteStore) DeleteProject(id string) error {
	res, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		slog.Error("SQLiteStore.DeleteProject failed", "error", err, "projectID", id)
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
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
