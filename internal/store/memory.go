package store

import (
	"sort"
	"sync"

	"github.com/ForgeLabs/MarketForge/internal/models"
)

// InMemoryStore keeps projects in a map guarded by a mutex. Suitable for
// tests and single-process ephemeral deployments.
type InMemoryStore struct {
	mu       sync.RWMutex
	projects map[string]models.Project
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{projects: make(map[string]models.Project)}
}

// SaveProject inserts or replaces the project snapshot.
func (s *InMemoryStore) SaveProject(p models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = p
	return nil
}

// GetProject returns the project or models.ErrProjectNotFound.
func (s *InMemoryStore) GetProject(id string) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return models.Project{}, models.ErrProjectNotFound
	}
	return p, nil
}

// ListProjects returns all projects ordered by creation time.
func (s *InMemoryStore) ListProjects() ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projects := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool {
		if projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].ID < projects[j].ID
		}
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})
	return projects, nil
}

// DeleteProject removes the project.
func (s *InMemoryStore) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return models.ErrProjectNotFound
	}
	delete(s.projects, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
