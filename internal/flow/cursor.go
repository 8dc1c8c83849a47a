package flow

import (
	"fmt"
	"log/slog"

	"github.com/ForgeLabs/MarketForge/internal/catalog"
	"github.com/ForgeLabs/MarketForge/internal/models"
)

// StepTransitionMessage builds the assistant turn injected when the cursor
// crosses a step boundary.
func StepTransitionMessage(step catalog.Step) string {
	return fmt.Sprintf("Moving to %s. %s", step.Title, step.Description)
}

// AdvanceLinear applies the linear-exhaustion policy after a finalized
// assistant turn: advance to the next prompt within the step, injecting
// its body as a new assistant turn; at the end of a step advance the step
// and inject a transition announcement; at the end of the last step mark
// the flow complete. The caller invokes this exactly once per completed
// request/response cycle.
func AdvanceLinear(f catalog.Flow, p models.Project) models.Project {
	if p.Complete {
		return cloneProject(p)
	}
	step, ok := f.Step(p.CurrentStep)
	if !ok {
		slog.Warn("Cursor.AdvanceLinear: current step not in catalog", "projectID", p.ID, "step", p.CurrentStep)
		return cloneProject(p)
	}

	if p.CurrentPromptID < len(step.Prompts) {
		next := cloneProject(p)
		next.CurrentPromptID++
		prompt, ok := f.Prompt(next.CurrentStep, next.CurrentPromptID)
		if !ok {
			return next
		}
		return AppendTurn(next, models.Turn{
			Role:    models.RoleAssistant,
			Content: prompt.Body,
			Step:    next.CurrentStep,
		})
	}

	if p.CurrentStep < len(f.Steps) {
		return advanceToStep(f, p, p.CurrentStep+1)
	}

	next := cloneProject(p)
	next.Complete = true
	slog.Info("Cursor.AdvanceLinear: flow complete", "projectID", p.ID, "flow", f.Name)
	return next
}

// advanceToStep moves the cursor to step n, resets the prompt pointer and
// completed set, and injects the transition announcement.
func advanceToStep(f catalog.Flow, p models.Project, n int) models.Project {
	step, ok := f.Step(n)
	if !ok {
		return cloneProject(p)
	}
	next := cloneProject(p)
	next.CurrentStep = n
	next.CurrentPromptID = 1
	next.CompletedPrompts = nil
	return AppendTurn(next, models.Turn{
		Role:    models.RoleAssistant,
		Content: StepTransitionMessage(step),
		Step:    n,
	})
}

// AdvanceStep performs an explicit user-driven step advancement, used by
// selection-gated flows. Advancing past the last step marks the flow
// complete without injecting a turn.
func AdvanceStep(f catalog.Flow, p models.Project) models.Project {
	if p.Complete {
		return cloneProject(p)
	}
	if p.CurrentStep < len(f.Steps) {
		return advanceToStep(f, p, p.CurrentStep+1)
	}
	next := cloneProject(p)
	next.Complete = true
	slog.Info("Cursor.AdvanceStep: flow complete", "projectID", p.ID, "flow", f.Name)
	return next
}

// CompletePrompt records prompt id as answered within the current step.
// Adding an already-recorded id is a no-op, keeping re-invocation for the
// same finalized turn idempotent.
func CompletePrompt(p models.Project, id int) models.Project {
	next := cloneProject(p)
	for _, done := range next.CompletedPrompts {
		if done == id {
			return next
		}
	}
	next.CompletedPrompts = append(next.CompletedPrompts, id)
	return next
}

// PromptAvailable reports whether prompt id may be selected under the
// selection-gated policy: a prompt is available only when every prompt
// with a lower id in the current step is already completed.
func PromptAvailable(f catalog.Flow, p models.Project, id int) bool {
	step, ok := f.Step(p.CurrentStep)
	if !ok {
		return false
	}
	if id < 1 || id > len(step.Prompts) {
		return false
	}
	return id <= minIncomplete(step, p.CompletedPrompts)
}

// AvailablePrompts returns the prompts of the current step that are
// selectable right now. A step with zero prompts yields an empty list.
func AvailablePrompts(f catalog.Flow, p models.Project) []catalog.Prompt {
	step, ok := f.Step(p.CurrentStep)
	if !ok || len(step.Prompts) == 0 {
		return nil
	}
	gate := minIncomplete(step, p.CompletedPrompts)
	var available []catalog.Prompt
	for _, prompt := range step.Prompts {
		if prompt.ID <= gate {
			available = append(available, prompt)
		}
	}
	return available
}

// minIncomplete returns the lowest prompt id in the step that has not been
// completed, or one past the last id when all are done.
func minIncomplete(step catalog.Step, completed []int) int {
	done := make(map[int]bool, len(completed))
	for _, id := range completed {
		done[id] = true
	}
	for _, prompt := range step.Prompts {
		if !done[prompt.ID] {
			return prompt.ID
		}
	}
	return len(step.Prompts) + 1
}
