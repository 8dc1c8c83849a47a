package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ForgeLabs/MarketForge/internal/models"
)

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// marshalProjectBlobs serializes the turn log and completed-prompt set for
// column storage. Nil slices are stored as empty JSON arrays so scans
// round-trip cleanly.
func marshalProjectBlobs(p models.Project) (turns, completed string, err error) {
	t := p.Turns
	if t == nil {
		t = []models.Turn{}
	}
	tb, err := json.Marshal(t)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal turns: %w", err)
	}
	c := p.CompletedPrompts
	if c == nil {
		c = []int{}
	}
	cb, err := json.Marshal(c)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal completed prompts: %w", err)
	}
	return string(tb), string(cb), nil
}

// scanProject reads one project row in the canonical column order.
func scanProject(row rowScanner) (models.Project, error) {
	var (
		p         models.Project
		flow      string
		turns     string
		completed string
		createdAt time.Time
		updatedAt time.Time
	)
	err := row.Scan(&p.ID, &p.Name, &flow, &turns, &p.CurrentStep, &p.CurrentPromptID, &completed, &p.Report, &p.Complete, &createdAt, &updatedAt)
	if err != nil {
		return models.Project{}, err
	}
	p.Flow = models.FlowName(flow)
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	if err := json.Unmarshal([]byte(turns), &p.Turns); err != nil {
		return models.Project{}, fmt.Errorf("failed to unmarshal turns: %w", err)
	}
	if err := json.Unmarshal([]byte(completed), &p.CompletedPrompts); err != nil {
		return models.Project{}, fmt.Errorf("failed to unmarshal completed prompts: %w", err)
	}
	return p, nil
}
