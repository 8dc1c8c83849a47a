package flow

import (
	"strings"
	"testing"

	"github.com/ForgeLabs/MarketForge/internal/catalog"
	"github.com/ForgeLabs/MarketForge/internal/models"
)

func newProject(flow models.FlowName) models.Project {
	return models.Project{
		ID:              "proj_test",
		Name:            "Acme Skincare",
		Flow:            flow,
		CurrentStep:     1,
		CurrentPromptID: 1,
	}
}

func TestAdvanceLinearWithinStep(t *testing.T) {
	f, _ := catalog.Lookup(models.FlowVisualBrand)
	p := newProject(models.FlowVisualBrand)

	next := AdvanceLinear(f, p)
	if next.CurrentStep != 1 || next.CurrentPromptID != 2 {
		t.Fatalf("cursor = (%d, %d), want (1, 2)", next.CurrentStep, next.CurrentPromptID)
	}
	if len(next.Turns) != 1 {
		t.Fatalf("expected one injected turn, got %d", len(next.Turns))
	}
	prompt, _ := f.Prompt(1, 2)
	if next.Turns[0].Content != prompt.Body {
		t.Errorf("injected turn = %q, want next prompt body", next.Turns[0].Content)
	}
	if next.Turns[0].Role != models.RoleAssistant {
		t.Errorf("injected turn role = %q", next.Turns[0].Role)
	}

	// Input snapshot untouched
	if p.CurrentPromptID != 1 || len(p.Turns) != 0 {
		t.Error("AdvanceLinear mutated its input")
	}
}

func TestAdvanceLinearStepTransition(t *testing.T) {
	f, _ := catalog.Lookup(models.FlowVisualBrand)
	p := newProject(models.FlowVisualBrand)
	step1, _ := f.Step(1)
	p.CurrentPromptID = len(step1.Prompts)
	p.CompletedPrompts = []int{1, 2}

	next := AdvanceLinear(f, p)
	if next.CurrentStep != 2 || next.CurrentPromptID != 1 {
		t.Fatalf("cursor = (%d, %d), want (2, 1)", next.CurrentStep, next.CurrentPromptID)
	}
	if len(next.CompletedPrompts) != 0 {
		t.Errorf("completed set not cleared on step transition: %v", next.CompletedPrompts)
	}
	if len(next.Turns) != 1 {
		t.Fatalf("expected one transition turn, got %d", len(next.Turns))
	}
	step2, _ := f.Step(2)
	want := "Moving to " + step2.Title + ". " + step2.Description
	if next.Turns[0].Content != want {
		t.Errorf("transition turn = %q, want %q", next.Turns[0].Content, want)
	}
}

// After N successful responses, where N is the total prompt count, the
// flow is complete and nothing further is injected.
func TestAdvanceLinearExhaustsFlow(t *testing.T) {
	f, _ := catalog.Lookup(models.FlowVisualBrand)
	p := newProject(models.FlowVisualBrand)

	total := f.TotalPrompts()
	for i := 0; i < total; i++ {
		if p.Complete {
			t.Fatalf("flow complete after %d of %d responses", i, total)
		}
		p = AdvanceLinear(f, p)
	}
	if !p.Complete {
		t.Fatal("flow not complete after exhausting all prompts")
	}

	turnsBefore := len(p.Turns)
	p = AdvanceLinear(f, p)
	if len(p.Turns) != turnsBefore {
		t.Error("completed flow injected further turns")
	}
	if !p.Complete {
		t.Error("completed flow lost its complete flag")
	}
}

func TestAdvanceLinearInvalidStep(t *testing.T) {
	f, _ := catalog.Lookup(models.FlowVisualBrand)
	p := newProject(models.FlowVisualBrand)
	p.CurrentStep = 99

	next := AdvanceLinear(f, p)
	if next.CurrentStep != 99 || len(next.Turns) != 0 {
		t.Error("invalid step should leave state unchanged")
	}
}

func TestPromptAvailabilityOrdering(t *testing.T) {
	f, _ := catalog.Lookup(models.FlowMetaAds)
	p := newProject(models.FlowMetaAds)
	p.CurrentStep = 2 // Campaign Details has several prompts

	step, _ := f.Step(2)
	if len(step.Prompts) < 3 {
		t.Fatalf("test requires a step with at least 3 prompts, got %d", len(step.Prompts))
	}

	if !PromptAvailable(f, p, 1) {
		t.Error("prompt 1 should be available with nothing completed")
	}
	if PromptAvailable(f, p, 2) {
		t.Error("prompt 2 should be gated behind prompt 1")
	}

	p = CompletePrompt(p, 1)
	if !PromptAvailable(f, p, 2) {
		t.Error("prompt 2 should open after completing prompt 1")
	}
	if PromptAvailable(f, p, 3) {
		t.Error("prompt 3 should remain gated behind prompt 2")
	}

	// Completed prompts stay selectable for revisiting.
	if !PromptAvailable(f, p, 1) {
		t.Error("completed prompt 1 should remain available")
	}

	got := AvailablePrompts(f, p)
	if len(got) != 2 {
		t.Fatalf("AvailablePrompts returned %d prompts, want 2", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("AvailablePrompts ids = %d, %d", got[0].ID, got[1].ID)
	}
}

func TestCompletePromptIdempotent(t *testing.T) {
	p := newProject(models.FlowMetaAds)
	p = CompletePrompt(p, 1)
	p = CompletePrompt(p, 1)
	if len(p.CompletedPrompts) != 1 {
		t.Errorf("completed set = %v, want single entry", p.CompletedPrompts)
	}
}

func TestAvailablePromptsOutOfRangeStep(t *testing.T) {
	f, _ := catalog.Lookup(models.FlowMetaAds)
	for _, step := range []int{0, len(f.Steps) + 1} {
		p := newProject(models.FlowMetaAds)
		p.CurrentStep = step
		if got := AvailablePrompts(f, p); got != nil {
			t.Errorf("step %d: AvailablePrompts = %v, want nil", step, got)
		}
		if PromptAvailable(f, p, 1) {
			t.Errorf("step %d: PromptAvailable(1) = true", step)
		}
	}
}

func TestAdvanceStepExplicit(t *testing.T) {
	f, _ := catalog.Lookup(models.FlowGoogleAds)
	p := newProject(models.FlowGoogleAds)
	p.CompletedPrompts = []int{1, 2}

	next := AdvanceStep(f, p)
	if next.CurrentStep != 2 || next.CurrentPromptID != 1 {
		t.Fatalf("cursor = (%d, %d), want (2, 1)", next.CurrentStep, next.CurrentPromptID)
	}
	if len(next.CompletedPrompts) != 0 {
		t.Error("completed set not cleared")
	}
	if len(next.Turns) != 1 || !strings.HasPrefix(next.Turns[0].Content, "Moving to ") {
		t.Errorf("expected transition turn, got %+v", next.Turns)
	}
}

func TestAdvanceStepPastLast(t *testing.T) {
	f, _ := catalog.Lookup(models.FlowGoogleAds)
	p := newProject(models.FlowGoogleAds)
	p.CurrentStep = len(f.Steps)

	next := AdvanceStep(f, p)
	if !next.Complete {
		t.Error("advancing past the last step should mark the flow complete")
	}
	if len(next.Turns) != 0 {
		t.Error("completion should not inject a turn")
	}
}
