// Package store provides storage backends for MarketForge projects.
//
// It includes an in-memory store for tests and ephemeral use, plus
// SQLite and PostgreSQL backed stores for durable persistence.
package store

import "github.com/ForgeLabs/MarketForge/internal/models"

// Store defines persistence operations for projects. Projects are saved
// as whole snapshots: the orchestrator applies immutable updates and
// writes the resulting state back in one call.
type Store interface {
	// SaveProject inserts or replaces the project snapshot.
	SaveProject(p models.Project) error
	// GetProject returns the project or models.ErrProjectNotFound.
	GetProject(id string) (models.Project, error)
	// ListProjects returns all projects ordered by creation time.
	ListProjects() ([]models.Project, error)
	// DeleteProject removes the project and its turns. Deleting a missing
	// project returns models.ErrProjectNotFound.
	DeleteProject(id string) error
	// Close releases any underlying resources.
	Close() error
}

// Opts holds configuration options for store backends.
type Opts struct {
	// DSN is the database connection string: a file path for SQLite, a
	// connection URL for Postgres.
	DSN string
}

// Option configures store construction.
type Option func(*Opts)

// WithDSN sets the database connection string.
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}
