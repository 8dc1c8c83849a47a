// Package models defines the core data structures for MarketForge.
//
// It includes types for projects, conversation turns, and the JSON API
// envelope, which are shared across modules.
package models

import (
	"errors"
	"time"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	// RoleUser marks a turn written by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks a turn produced by the completion gateway or
	// injected from the prompt catalog.
	RoleAssistant Role = "assistant"
)

// FlowName identifies a guided-conversation flow in the prompt catalog.
type FlowName string

const (
	FlowFullService FlowName = "full-service"
	FlowMetaAds     FlowName = "meta-ads"
	FlowGoogleAds   FlowName = "google-ads"
	FlowBasicCRM    FlowName = "basic-crm"
	FlowVisualBrand FlowName = "visual-brand"
	FlowRefine      FlowName = "refine"
)

// Validation constants for input validation
const (
	// MaxProjectNameLength defines the maximum allowed length for project names
	MaxProjectNameLength = 200
	// MaxMessageLength defines the maximum allowed length for a single user message
	MaxMessageLength = 32768
)

// Error variables for better error handling and testability
var (
	ErrEmptyProjectName     = errors.New("project name cannot be empty")
	ErrProjectNameTooLong   = errors.New("project name exceeds maximum length")
	ErrInvalidFlowName      = errors.New("invalid flow name")
	ErrEmptyMessage         = errors.New("message content cannot be empty")
	ErrMessageTooLong       = errors.New("message content exceeds maximum length")
	ErrProjectNotFound      = errors.New("project not found")
	ErrPromptNotFound       = errors.New("prompt not found")
	ErrStepNotFound         = errors.New("step not found")
	ErrPromptNotAvailable   = errors.New("prompt is not yet available")
	ErrFlowComplete         = errors.New("flow is already complete")
	ErrEmptyExpertRole      = errors.New("expert role cannot be empty")
	ErrEmptyImagePrompt     = errors.New("image prompt cannot be empty")
	ErrNoReport             = errors.New("project has no generated report")
	ErrStreamingOnly        = errors.New("flow accepts messages only on the streaming endpoint")
	ErrStreamingUnsupported = errors.New("flow does not support streamed messages")
)

// IsValidFlowName checks if the given flow name is supported.
func IsValidFlowName(f FlowName) bool {
	switch f {
	case FlowFullService, FlowMetaAds, FlowGoogleAds, FlowBasicCRM, FlowVisualBrand, FlowRefine:
		return true
	default:
		return false
	}
}

// Turn represents a single message in a project's conversation log.
// StreamID is only set while the turn is being filled in by an active
// stream; it is cleared when the stream finishes.
type Turn struct {
	ID       string    `json:"id"`
	Role     Role      `json:"role"`
	Content  string    `json:"content"`
	Step     int       `json:"step,omitempty"`
	StreamID string    `json:"stream_id,omitempty"`
	SentAt   time.Time `json:"sent_at"`
}

// Project represents one guided-conversation session and its cursor state.
// The turn log is append-only except for in-place content updates of the
// single in-flight streaming turn.
type Project struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Flow             FlowName  `json:"flow"`
	Turns            []Turn    `json:"turns"`
	CurrentStep      int       `json:"current_step"`
	CurrentPromptID  int       `json:"current_prompt_id"`
	CompletedPrompts []int     `json:"completed_prompts"`
	Report           string    `json:"report,omitempty"`
	Complete         bool      `json:"complete"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateProjectRequest is the payload for POST /projects.
type CreateProjectRequest struct {
	Name string   `json:"name"`
	Flow FlowName `json:"flow"`
}

// Validate performs validation on a CreateProjectRequest.
func (r *CreateProjectRequest) Validate() error {
	if r.Name == "" {
		return ErrEmptyProjectName
	}
	if len(r.Name) > MaxProjectNameLength {
		return ErrProjectNameTooLong
	}
	if !IsValidFlowName(r.Flow) {
		return ErrInvalidFlowName
	}
	return nil
}

// SendMessageRequest is the payload for message and stream endpoints.
// PromptID is only meaningful for selection-gated flows, where the user
// picks which catalog prompt they are answering.
type SendMessageRequest struct {
	Content  string `json:"content"`
	PromptID int    `json:"prompt_id,omitempty"`
}

// Validate performs validation on a SendMessageRequest.
func (r *SendMessageRequest) Validate() error {
	if r.Content == "" {
		return ErrEmptyMessage
	}
	if len(r.Content) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}

// SendMessageResponse is the JSON reply for non-streamed sends.
type SendMessageResponse struct {
	Message      string `json:"message"`
	NextPromptID int    `json:"next_prompt_id"`
	StepComplete bool   `json:"is_step_complete"`
	FlowComplete bool   `json:"is_flow_complete"`
}

// ChatMessage is a role/content pair for stateless chat endpoints that
// carry their own history instead of a stored turn log.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ExpertChatRequest is the payload for the stateless expert-chat endpoint.
// DocumentContext optionally carries extracted document text for the
// expert to analyze.
type ExpertChatRequest struct {
	ExpertRole      string        `json:"expert_role"`
	Messages        []ChatMessage `json:"messages"`
	DocumentContext string        `json:"document_context,omitempty"`
}

// Validate performs validation on an ExpertChatRequest.
func (r *ExpertChatRequest) Validate() error {
	if r.ExpertRole == "" {
		return ErrEmptyExpertRole
	}
	if len(r.Messages) == 0 {
		return ErrEmptyMessage
	}
	for _, m := range r.Messages {
		if len(m.Content) > MaxMessageLength {
			return ErrMessageTooLong
		}
	}
	return nil
}

// GenerateImageRequest is the payload for the image-generation endpoint.
type GenerateImageRequest struct {
	Prompt string `json:"prompt"`
}

// Validate performs validation on a GenerateImageRequest.
func (r *GenerateImageRequest) Validate() error {
	if r.Prompt == "" {
		return ErrEmptyImagePrompt
	}
	return nil
}

// RefineRequest is the payload for the document-refinement flow. Document
// seeds the canonical document on the first call; afterwards the project's
// tracked document is used and Document is ignored.
type RefineRequest struct {
	ProjectID      string `json:"project_id"`
	NewInformation string `json:"new_information"`
	Document       string `json:"document,omitempty"`
}

// Validate performs validation on a RefineRequest.
func (r *RefineRequest) Validate() error {
	if r.NewInformation == "" {
		return ErrEmptyMessage
	}
	return nil
}
