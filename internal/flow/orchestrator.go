package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/openai/openai-go"

	"github.com/ForgeLabs/MarketForge/internal/catalog"
	"github.com/ForgeLabs/MarketForge/internal/genai"
	"github.com/ForgeLabs/MarketForge/internal/models"
	"github.com/ForgeLabs/MarketForge/internal/store"
	"github.com/ForgeLabs/MarketForge/internal/util"
)

// DefaultGatewayTimeout bounds how long a single completion request may
// run before it is treated as failed.
const DefaultGatewayTimeout = 50 * time.Second

// historyLimit caps how many prior turns are sent to the gateway with
// each request.
const historyLimit = 10

// RequestKind tells the orchestrator what the caller wants from a
// streamed request. Supplied explicitly instead of inferred from message
// content.
type RequestKind string

const (
	// KindMessage answers the current catalog prompt.
	KindMessage RequestKind = "message"
	// KindReport generates the flow's summary report from the full
	// conversation.
	KindReport RequestKind = "report"
	// KindImagePrompt derives an image-generation prompt from the
	// project's stored report.
	KindImagePrompt RequestKind = "image_prompt"
)

// Orchestrator coordinates projects across the store, the prompt catalog,
// and the completion gateway.
type Orchestrator struct {
	store   store.Store
	genai   genai.ClientInterface
	timeout time.Duration

	mu sync.Mutex
	// activeStreams maps project ID to the stream ID of the only request
	// allowed to mutate that project's in-flight turn. A stream whose ID
	// has been superseded stops writing.
	activeStreams map[string]string
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithGatewayTimeout overrides the completion request deadline.
func WithGatewayTimeout(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) { o.timeout = d }
}

// NewOrchestrator creates an orchestrator around the given store and
// gateway client.
func NewOrchestrator(st store.Store, client genai.ClientInterface, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		store:         st,
		genai:         client,
		timeout:       DefaultGatewayTimeout,
		activeStreams: make(map[string]string),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CreateProject creates a project for the named flow and injects the
// initial assistant turn from the catalog.
func (o *Orchestrator) CreateProject(name string, flowName models.FlowName) (models.Project, error) {
	f, ok := catalog.Lookup(flowName)
	if !ok && flowName != models.FlowRefine {
		return models.Project{}, models.ErrInvalidFlowName
	}

	now := time.Now()
	p := models.Project{
		ID:              util.GenerateProjectID(),
		Name:            name,
		Flow:            flowName,
		CurrentStep:     1,
		CurrentPromptID: 1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if flowName != models.FlowRefine {
		opening := f.Welcome
		if opening == "" {
			if prompt, ok := f.Prompt(1, 1); ok {
				opening = prompt.Body
			}
		}
		if opening != "" {
			p = AppendTurn(p, models.Turn{Role: models.RoleAssistant, Content: opening, Step: 1})
		}
	}

	if err := o.store.SaveProject(p); err != nil {
		return models.Project{}, fmt.Errorf("failed to save new project: %w", err)
	}
	slog.Info("Orchestrator.CreateProject: project created", "projectID", p.ID, "flow", flowName, "name", name)
	return p, nil
}

// GetProject returns the project by ID.
func (o *Orchestrator) GetProject(id string) (models.Project, error) {
	return o.store.GetProject(id)
}

// ListProjects returns all projects.
func (o *Orchestrator) ListProjects() ([]models.Project, error) {
	return o.store.ListProjects()
}

// DeleteProject removes the project and cancels any active stream claim.
func (o *Orchestrator) DeleteProject(id string) error {
	o.mu.Lock()
	delete(o.activeStreams, id)
	o.mu.Unlock()
	return o.store.DeleteProject(id)
}

// AvailablePrompts returns the currently selectable prompts for the
// project's step under its flow's advancement policy.
func (o *Orchestrator) AvailablePrompts(projectID string) ([]catalog.Prompt, error) {
	p, err := o.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	f, ok := catalog.Lookup(p.Flow)
	if !ok {
		return nil, models.ErrInvalidFlowName
	}
	return AvailablePrompts(f, p), nil
}

// AdvanceProjectStep performs an explicit step advancement and persists
// the result.
func (o *Orchestrator) AdvanceProjectStep(projectID string) (models.Project, error) {
	p, err := o.store.GetProject(projectID)
	if err != nil {
		return models.Project{}, err
	}
	f, ok := catalog.Lookup(p.Flow)
	if !ok {
		return models.Project{}, models.ErrInvalidFlowName
	}
	if p.Complete {
		return models.Project{}, models.ErrFlowComplete
	}
	next := AdvanceStep(f, p)
	if err := o.store.SaveProject(next); err != nil {
		return models.Project{}, fmt.Errorf("failed to save advanced project: %w", err)
	}
	return next, nil
}

// buildMessages assembles the gateway request: the system instruction
// followed by the most recent turns, oldest first.
func buildMessages(system string, turns []models.Turn) []openai.ChatCompletionMessageParamUnion {
	messages := []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(system)}
	start := 0
	if len(turns) > historyLimit {
		start = len(turns) - historyLimit
	}
	for _, turn := range turns[start:] {
		switch turn.Role {
		case models.RoleUser:
			messages = append(messages, openai.UserMessage(turn.Content))
		case models.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		}
	}
	return messages
}

// failureTurnContent maps a gateway error to the user-facing failure text.
func failureTurnContent(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return TimeoutMessage
	}
	return FailureMessage
}

// SendMessage handles a non-streamed send: append the user turn, invoke
// the gateway under the timeout, fold in the assistant response, and run
// linear advancement. Gateway failures substitute a single failure turn
// and leave the cursor unmoved.
func (o *Orchestrator) SendMessage(ctx context.Context, projectID string, req models.SendMessageRequest) (models.Project, models.SendMessageResponse, error) {
	p, err := o.store.GetProject(projectID)
	if err != nil {
		return models.Project{}, models.SendMessageResponse{}, err
	}
	f, ok := catalog.Lookup(p.Flow)
	if !ok {
		return models.Project{}, models.SendMessageResponse{}, models.ErrInvalidFlowName
	}
	if p.Complete {
		return models.Project{}, models.SendMessageResponse{}, models.ErrFlowComplete
	}
	if f.Streaming || f.Mode == catalog.AdvanceSelection {
		return models.Project{}, models.SendMessageResponse{}, models.ErrStreamingOnly
	}

	step, ok := f.Step(p.CurrentStep)
	if !ok {
		return models.Project{}, models.SendMessageResponse{}, models.ErrStepNotFound
	}

	p = AppendTurn(p, models.Turn{Role: models.RoleUser, Content: req.Content, Step: p.CurrentStep})

	system := f.SystemPrompt(p.CurrentStep, p.CurrentPromptID, p.Name)
	reqCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	content, err := o.genai.GenerateWithMessages(reqCtx, buildMessages(system, p.Turns))
	if err != nil {
		slog.Error("Orchestrator.SendMessage: gateway request failed", "error", err, "projectID", projectID)
		p = AppendTurn(p, models.Turn{Role: models.RoleAssistant, Content: failureTurnContent(err), Step: p.CurrentStep})
		if saveErr := o.store.SaveProject(p); saveErr != nil {
			return models.Project{}, models.SendMessageResponse{}, saveErr
		}
		return p, models.SendMessageResponse{
			Message:      failureTurnContent(err),
			NextPromptID: p.CurrentPromptID,
		}, nil
	}

	p = AppendTurn(p, models.Turn{Role: models.RoleAssistant, Content: content, Step: p.CurrentStep})

	stepComplete := p.CurrentPromptID >= len(step.Prompts)
	if f.Mode == catalog.AdvanceLinear {
		p = AdvanceLinear(f, p)
	}
	if err := o.store.SaveProject(p); err != nil {
		return models.Project{}, models.SendMessageResponse{}, fmt.Errorf("failed to save project: %w", err)
	}

	return p, models.SendMessageResponse{
		Message:      content,
		NextPromptID: p.CurrentPromptID,
		StepComplete: stepComplete,
		FlowComplete: p.Complete,
	}, nil
}

// claimStream registers streamID as the only writer for the project,
// superseding any previous claim.
func (o *Orchestrator) claimStream(projectID, streamID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.activeStreams[projectID] = streamID
}

// releaseStream clears the claim if streamID still holds it.
func (o *Orchestrator) releaseStream(projectID, streamID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.activeStreams[projectID] == streamID {
		delete(o.activeStreams, projectID)
	}
}

// saveStreamSnapshot persists the snapshot only while streamID still owns
// the project's in-flight turn. The registry lock is held across the
// check and the write, so a superseding stream's state can never be
// clobbered by a stale snapshot. active is false once the claim is lost.
func (o *Orchestrator) saveStreamSnapshot(projectID, streamID string, p models.Project) (active bool, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.activeStreams[projectID] != streamID {
		return false, nil
	}
	return true, o.store.SaveProject(p)
}

// StreamMessage handles a streamed request. For KindMessage the user's
// content is appended and the current catalog prompt answered; for
// KindReport the flow's report instruction is used and the result stored
// as the project report. Each accumulated fragment is passed to emit.
// A newer stream for the same project supersedes this one: once the claim
// is lost no further state is written.
func (o *Orchestrator) StreamMessage(ctx context.Context, projectID string, req models.SendMessageRequest, kind RequestKind, emit func(delta string) error) (models.Project, error) {
	p, err := o.store.GetProject(projectID)
	if err != nil {
		return models.Project{}, err
	}
	f, ok := catalog.Lookup(p.Flow)
	if !ok {
		return models.Project{}, models.ErrInvalidFlowName
	}
	if p.Complete && kind == KindMessage {
		return models.Project{}, models.ErrFlowComplete
	}
	if kind == KindMessage && !f.Streaming {
		return models.Project{}, models.ErrStreamingUnsupported
	}

	promptID := p.CurrentPromptID
	if f.Mode == catalog.AdvanceSelection && kind == KindMessage {
		if req.PromptID != 0 {
			promptID = req.PromptID
		}
		if !PromptAvailable(f, p, promptID) {
			return models.Project{}, models.ErrPromptNotAvailable
		}
	}

	var system string
	switch kind {
	case KindReport:
		system = f.ReportPrompt(p.Name)
		if system == "" {
			return models.Project{}, fmt.Errorf("flow %s has no report", p.Flow)
		}
	case KindImagePrompt:
		if p.Report == "" {
			return models.Project{}, models.ErrNoReport
		}
		system = f.ImagePrompt(p.Report)
		if system == "" {
			return models.Project{}, fmt.Errorf("flow %s has no image prompt", p.Flow)
		}
	default:
		system = f.SystemPrompt(p.CurrentStep, promptID, p.Name)
		if system == "" {
			return models.Project{}, models.ErrStepNotFound
		}
	}

	if kind == KindMessage {
		p = AppendTurn(p, models.Turn{Role: models.RoleUser, Content: req.Content, Step: p.CurrentStep})
	}

	messages := buildMessages(system, p.Turns)

	// Seal any abandoned in-flight turn from a superseded stream so at
	// most one turn is ever mutable.
	for i := range p.Turns {
		if p.Turns[i].StreamID != "" {
			p = FinalizeStreamingTurn(p, p.Turns[i].StreamID, p.Turns[i].Content)
		}
	}

	streamID := util.GenerateStreamID()
	o.claimStream(projectID, streamID)
	defer o.releaseStream(projectID, streamID)

	p = BeginStreamingTurn(p, streamID, p.CurrentStep)
	if err := o.store.SaveProject(p); err != nil {
		return models.Project{}, fmt.Errorf("failed to save project: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	fragments, errc := o.genai.StreamWithMessages(reqCtx, messages)

	var asm Assembler
	for delta := range fragments {
		asm.Fold(delta)
		p = UpdateStreamingTurn(p, streamID, asm.Content())
		active, saveErr := o.saveStreamSnapshot(projectID, streamID, p)
		if !active {
			slog.Info("Orchestrator.StreamMessage: stream superseded, stopping", "projectID", projectID, "streamID", streamID)
			return o.store.GetProject(projectID)
		}
		if saveErr != nil {
			slog.Error("Orchestrator.StreamMessage: failed to persist fragment", "error", saveErr, "projectID", projectID)
		}
		if emit != nil {
			if err := emit(delta); err != nil {
				slog.Warn("Orchestrator.StreamMessage: emit failed, finalizing early", "error", err, "projectID", projectID)
				return o.finalizeStream(f, p, projectID, streamID, asm.Content(), kind, promptID, false)
			}
		}
	}

	streamErr := <-errc
	if streamErr != nil {
		slog.Error("Orchestrator.StreamMessage: stream failed", "error", streamErr, "projectID", projectID)
		return o.finalizeStream(f, p, projectID, streamID, failureTurnContent(streamErr), kind, promptID, false)
	}
	return o.finalizeStream(f, p, projectID, streamID, asm.Content(), kind, promptID, true)
}

// finalizeStream seals the in-flight turn and, on success, applies the
// flow's advancement policy and report bookkeeping. The final snapshot is
// written under the claim check; a superseded stream leaves the stored
// state untouched.
func (o *Orchestrator) finalizeStream(f catalog.Flow, p models.Project, projectID, streamID, content string, kind RequestKind, promptID int, succeeded bool) (models.Project, error) {
	p = FinalizeStreamingTurn(p, streamID, content)

	if succeeded {
		switch {
		case kind == KindReport:
			p.Report = content
		case kind == KindImagePrompt:
			// The derived prompt lives in the sealed turn; the cursor
			// does not move.
		case f.Mode == catalog.AdvanceLinear:
			p = AdvanceLinear(f, p)
		case f.Mode == catalog.AdvanceSelection:
			p = CompletePrompt(p, promptID)
		}
	}

	active, err := o.saveStreamSnapshot(projectID, streamID, p)
	if !active {
		return o.store.GetProject(projectID)
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to save project: %w", err)
	}
	o.releaseStream(projectID, streamID)
	return p, nil
}

// GenerateImage renders a marketing image from the given prompt and
// returns its URL. Stateless; the caller supplies the prompt, typically
// one derived by a KindImagePrompt stream.
func (o *Orchestrator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	url, err := o.genai.GenerateImage(reqCtx, prompt)
	if err != nil {
		slog.Error("Orchestrator.GenerateImage: gateway request failed", "error", err)
		return "", err
	}
	slog.Info("Orchestrator.GenerateImage: image generated", "promptLength", len(prompt))
	return url, nil
}

// ExpertChat answers a stateless expert consultation: the caller supplies
// the full message history and an expert role, optionally with extracted
// document text for the expert to analyze. Nothing is persisted.
func (o *Orchestrator) ExpertChat(ctx context.Context, req models.ExpertChatRequest) (string, error) {
	system := catalog.ExpertSystemPrompt(req.ExpertRole, req.DocumentContext)

	messages := []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(system)}
	for _, m := range req.Messages {
		switch m.Role {
		case models.RoleUser:
			messages = append(messages, openai.UserMessage(m.Content))
		case models.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	content, err := o.genai.GenerateWithMessages(reqCtx, messages)
	if err != nil {
		slog.Error("Orchestrator.ExpertChat: gateway request failed", "error", err, "expertRole", req.ExpertRole)
		return "", err
	}
	return content, nil
}

// Refine folds new information into the project's canonical document. On
// success the gateway's response becomes both the newest assistant turn
// and the project's tracked report; on failure the previous document is
// left untouched.
func (o *Orchestrator) Refine(ctx context.Context, req models.RefineRequest) (models.Project, string, error) {
	p, err := o.store.GetProject(req.ProjectID)
	if err != nil {
		return models.Project{}, "", err
	}

	prevDoc := p.Report
	if prevDoc == "" {
		prevDoc = req.Document
	}
	history := p.Turns

	p = AppendTurn(p, models.Turn{Role: models.RoleUser, Content: req.NewInformation})

	reqCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	content, err := o.genai.GenerateWithMessages(reqCtx, BuildRefineMessages(prevDoc, req.NewInformation, history))
	if err != nil {
		slog.Error("Orchestrator.Refine: gateway request failed", "error", err, "projectID", req.ProjectID)
		p = AppendTurn(p, models.Turn{Role: models.RoleAssistant, Content: failureTurnContent(err)})
		if saveErr := o.store.SaveProject(p); saveErr != nil {
			return models.Project{}, "", saveErr
		}
		return p, "", nil
	}

	p = AppendTurn(p, models.Turn{Role: models.RoleAssistant, Content: content})
	p.Report = content
	if err := o.store.SaveProject(p); err != nil {
		return models.Project{}, "", fmt.Errorf("failed to save project: %w", err)
	}
	slog.Info("Orchestrator.Refine: document updated", "projectID", req.ProjectID, "documentLength", len(content))
	return p, content, nil
}
