// Package flow implements the conversation orchestration for MarketForge:
// step-cursor advancement, streaming assembly, refinement folding, and the
// orchestrator tying them to the store and completion gateway.
package flow

import (
	"time"

	"github.com/ForgeLabs/MarketForge/internal/models"
	"github.com/ForgeLabs/MarketForge/internal/util"
)

// State operations follow an immutable-update discipline: each returns a
// new Project snapshot with a copied turn slice, leaving the input
// untouched. This keeps the cursor and assembler testable as pure
// functions of (state, event).

func cloneProject(p models.Project) models.Project {
	turns := make([]models.Turn, len(p.Turns))
	copy(turns, p.Turns)
	p.Turns = turns
	completed := make([]int, len(p.CompletedPrompts))
	copy(completed, p.CompletedPrompts)
	p.CompletedPrompts = completed
	return p
}

// AppendTurn returns a snapshot with the given turn appended. The turn is
// assigned an ID and timestamp if it has none.
func AppendTurn(p models.Project, turn models.Turn) models.Project {
	next := cloneProject(p)
	if turn.ID == "" {
		turn.ID = util.GenerateTurnID()
	}
	if turn.SentAt.IsZero() {
		turn.SentAt = time.Now()
	}
	next.Turns = append(next.Turns, turn)
	next.UpdatedAt = time.Now()
	return next
}

// BeginStreamingTurn returns a snapshot with a new empty assistant turn
// marked by the given transient stream ID. Only this turn is eligible for
// in-place content updates until the stream finishes.
func BeginStreamingTurn(p models.Project, streamID string, step int) models.Project {
	return AppendTurn(p, models.Turn{
		Role:     models.RoleAssistant,
		Content:  "",
		Step:     step,
		StreamID: streamID,
	})
}

// UpdateStreamingTurn returns a snapshot where the turn carrying streamID
// has its content replaced with the full accumulated string. If no turn
// carries that ID the snapshot is returned unchanged; a stale stream must
// not mutate state.
func UpdateStreamingTurn(p models.Project, streamID, content string) models.Project {
	next := cloneProject(p)
	for i := range next.Turns {
		if next.Turns[i].StreamID == streamID {
			next.Turns[i].Content = content
			next.UpdatedAt = time.Now()
			return next
		}
	}
	return next
}

// FinalizeStreamingTurn returns a snapshot where the turn carrying
// streamID has its stream ID cleared, making it immutable. The final
// content replaces whatever was accumulated so far.
func FinalizeStreamingTurn(p models.Project, streamID, content string) models.Project {
	next := cloneProject(p)
	for i := range next.Turns {
		if next.Turns[i].StreamID == streamID {
			next.Turns[i].Content = content
			next.Turns[i].StreamID = ""
			next.UpdatedAt = time.Now()
			return next
		}
	}
	return next
}

