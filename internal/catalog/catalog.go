// Package catalog defines the static prompt catalogs for MarketForge's
// guided-conversation flows.
//
// A Flow is an ordered list of Steps, each holding an ordered list of
// Prompts. Catalog data is immutable and defined at build time; lookups
// are direct indexing and report "not found" instead of panicking, since
// user-driven advancement can transiently request one past the end.
package catalog

import (
	"github.com/ForgeLabs/MarketForge/internal/models"
)

// AdvanceMode configures how a flow's prompt cursor moves.
type AdvanceMode string

const (
	// AdvanceLinear advances the prompt cursor automatically after every
	// successful response, exhausting each step's prompts in order.
	AdvanceLinear AdvanceMode = "linear"
	// AdvanceSelection exposes a step's prompts as ordered selectable
	// suggestions; the step itself only advances by explicit user action.
	AdvanceSelection AdvanceMode = "selection"
)

// Prompt is a single catalog entry sent to the completion gateway. Body
// may contain bracketed placeholders such as [niche] that the end user is
// expected to substitute manually.
type Prompt struct {
	ID    int
	Title string
	Body  string
}

// Step is an ordered group of prompts with its own title and description.
type Step struct {
	Number      int
	Title       string
	Description string
	Prompts     []Prompt
}

// Flow is a named, ordered catalog of steps used by one wizard feature.
// Instruction builds the system prompt for a given step/prompt pair;
// selecting it at construction time keeps orchestration logic free of
// per-flow dispatch.
type Flow struct {
	Name        models.FlowName
	Title       string
	Mode        AdvanceMode
	Streaming   bool
	Welcome     string
	Steps       []Step
	Instruction func(step Step, promptID int, projectContext string) string
	// Report builds the system prompt for a flow-level summary report.
	// Nil for flows that do not produce one.
	Report func(projectContext string) string
	// Image builds the system prompt for deriving an image-generation
	// prompt from the flow's report. Nil for flows without one.
	Image func(report string) string
}

var flows = map[models.FlowName]Flow{}

func register(f Flow) {
	flows[f.Name] = f
}

// Lookup returns the catalog for the named flow.
func Lookup(name models.FlowName) (Flow, bool) {
	f, ok := flows[name]
	return f, ok
}

// Step returns the 1-based step n, or ok=false when n is out of range.
func (f Flow) Step(n int) (Step, bool) {
	if n < 1 || n > len(f.Steps) {
		return Step{}, false
	}
	return f.Steps[n-1], true
}

// Prompt returns the prompt with the given id inside step n, or ok=false
// when either index is out of range.
func (f Flow) Prompt(n, id int) (Prompt, bool) {
	step, ok := f.Step(n)
	if !ok {
		return Prompt{}, false
	}
	if id < 1 || id > len(step.Prompts) {
		return Prompt{}, false
	}
	return step.Prompts[id-1], true
}

// TotalPrompts returns the number of prompts across all steps of the flow.
func (f Flow) TotalPrompts() int {
	total := 0
	for _, s := range f.Steps {
		total += len(s.Prompts)
	}
	return total
}

// SystemPrompt builds the gateway system instruction for the given cursor
// position. It returns "" when the step does not exist.
func (f Flow) SystemPrompt(stepNumber, promptID int, projectContext string) string {
	step, ok := f.Step(stepNumber)
	if !ok {
		return ""
	}
	if f.Instruction == nil {
		return ""
	}
	return f.Instruction(step, promptID, projectContext)
}

// ReportPrompt builds the system instruction for generating the flow's
// summary report. It returns "" for flows without one.
func (f Flow) ReportPrompt(projectContext string) string {
	if f.Report == nil {
		return ""
	}
	return f.Report(projectContext)
}

// ImagePrompt builds the system instruction for turning the flow's report
// into an image-generation prompt. It returns "" for flows without one.
func (f Flow) ImagePrompt(report string) string {
	if f.Image == nil {
		return ""
	}
	return f.Image(report)
}
