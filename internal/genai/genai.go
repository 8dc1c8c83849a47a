// Package genai wraps the OpenAI chat completion API behind a small
// gateway used by the conversation flows.
package genai

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Default generation parameters applied when no option overrides them.
const (
	DefaultModel               = openai.ChatModelGPT4o
	DefaultTemperature         = 0.7
	DefaultMaxCompletionTokens = 4096
	DefaultImageModel          = openai.ImageModelDallE3
)

// ClientInterface defines the completion operations the flow layer needs.
// Implemented by Client; tests substitute mocks.
type ClientInterface interface {
	// GenerateWithMessages returns the full assistant response for the
	// given conversation.
	GenerateWithMessages(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error)
	// StreamWithMessages starts a streamed completion and returns a
	// channel of content fragments plus a channel that delivers the
	// terminal error (nil on clean completion). Both channels are closed
	// when the stream ends.
	StreamWithMessages(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (<-chan string, <-chan error)
	// GenerateImage renders one image from the prompt and returns its URL.
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// chatService defines the minimal interface for non-streamed completions,
// kept narrow so tests can stub it.
type chatService interface {
	Create(ctx context.Context, params openai.ChatCompletionNewParams) (openai.ChatCompletion, error)
}

// openaiChatService adapts the real SDK client to chatService.
type openaiChatService struct {
	client openai.Client
}

func (s openaiChatService) Create(ctx context.Context, params openai.ChatCompletionNewParams) (openai.ChatCompletion, error) {
	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return openai.ChatCompletion{}, err
	}
	return *resp, nil
}

// imageService defines the minimal interface for image generation, kept
// narrow so tests can stub it.
type imageService interface {
	Generate(ctx context.Context, params openai.ImageGenerateParams) (openai.ImagesResponse, error)
}

// openaiImageService adapts the real SDK client to imageService.
type openaiImageService struct {
	client openai.Client
}

func (s openaiImageService) Generate(ctx context.Context, params openai.ImageGenerateParams) (openai.ImagesResponse, error) {
	resp, err := s.client.Images.Generate(ctx, params)
	if err != nil {
		return openai.ImagesResponse{}, err
	}
	return *resp, nil
}

// Client is the production gateway to the OpenAI API.
type Client struct {
	chat                chatService
	images              imageService
	sdk                 openai.Client
	model               openai.ChatModel
	imageModel          openai.ImageModel
	temperature         float64
	maxCompletionTokens int64
}

// Opts holds construction options for Client.
type Opts struct {
	APIKey              string
	Model               openai.ChatModel
	ImageModel          openai.ImageModel
	Temperature         float64
	MaxCompletionTokens int64
}

// Option customizes client construction.
type Option func(*Opts)

// WithAPIKey sets the API key explicitly instead of reading OPENAI_API_KEY.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithModel overrides the default completion model.
func WithModel(model openai.ChatModel) Option {
	return func(o *Opts) { o.Model = model }
}

// WithImageModel overrides the default image generation model.
func WithImageModel(model openai.ImageModel) Option {
	return func(o *Opts) { o.ImageModel = model }
}

// WithTemperature overrides the default sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *Opts) { o.Temperature = t }
}

// WithMaxCompletionTokens overrides the default completion token limit.
func WithMaxCompletionTokens(n int64) Option {
	return func(o *Opts) { o.MaxCompletionTokens = n }
}

// NewClient builds a Client from options, falling back to the
// OPENAI_API_KEY environment variable when no key option is given.
func NewClient(opts ...Option) (*Client, error) {
	cfg := Opts{
		Model:               DefaultModel,
		ImageModel:          DefaultImageModel,
		Temperature:         DefaultTemperature,
		MaxCompletionTokens: DefaultMaxCompletionTokens,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("genai.NewClient: no API key provided and OPENAI_API_KEY not set")
	}

	sdk := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	slog.Debug("GenAI client initialized", "model", cfg.Model, "temperature", cfg.Temperature, "maxCompletionTokens", cfg.MaxCompletionTokens)
	return &Client{
		chat:                openaiChatService{client: sdk},
		images:              openaiImageService{client: sdk},
		sdk:                 sdk,
		model:               cfg.Model,
		imageModel:          cfg.ImageModel,
		temperature:         cfg.Temperature,
		maxCompletionTokens: cfg.MaxCompletionTokens,
	}, nil
}

func (c *Client) params(messages []openai.ChatCompletionMessageParamUnion) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model:               c.model,
		Messages:            messages,
		Temperature:         openai.Float(c.temperature),
		MaxCompletionTokens: openai.Int(c.maxCompletionTokens),
	}
}

// GenerateWithMessages performs a non-streamed completion and returns the
// assistant's content.
func (c *Client) GenerateWithMessages(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	slog.Debug("GenAI.GenerateWithMessages: sending completion request", "messageCount", len(messages), "model", c.model)
	resp, err := c.chat.Create(ctx, c.params(messages))
	if err != nil {
		slog.Error("GenAI.GenerateWithMessages: completion request failed", "error", err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		slog.Error("GenAI.GenerateWithMessages: completion returned no choices")
		return "", fmt.Errorf("chat completion returned no choices")
	}
	content := resp.Choices[0].Message.Content
	slog.Debug("GenAI.GenerateWithMessages: completion received", "responseLength", len(content))
	return content, nil
}

// GenerateImage renders a single 1024x1024 standard-quality image from
// the prompt and returns its hosted URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	slog.Debug("GenAI.GenerateImage: sending image request", "promptLength", len(prompt), "model", c.imageModel)
	resp, err := c.images.Generate(ctx, openai.ImageGenerateParams{
		Model:   c.imageModel,
		Prompt:  prompt,
		N:       openai.Int(1),
		Size:    openai.ImageGenerateParamsSize1024x1024,
		Quality: openai.ImageGenerateParamsQualityStandard,
	})
	if err != nil {
		slog.Error("GenAI.GenerateImage: image request failed", "error", err)
		return "", fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		slog.Error("GenAI.GenerateImage: image request returned no URL")
		return "", fmt.Errorf("image generation returned no URL")
	}
	return resp.Data[0].URL, nil
}

// StreamWithMessages performs a streamed completion. Fragments are the raw
// content deltas in arrival order. The error channel receives exactly one
// value after the fragment channel closes.
func (c *Client) StreamWithMessages(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (<-chan string, <-chan error) {
	fragments := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(fragments)
		defer close(errc)

		slog.Debug("GenAI.StreamWithMessages: starting streamed completion", "messageCount", len(messages), "model", c.model)
		stream := c.sdk.Chat.Completions.NewStreaming(ctx, c.params(messages))
		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}
			delta := chunk.Choices[0].Delta.Content
			if delta == "" {
				continue
			}
			select {
			case fragments <- delta:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		if err := stream.Err(); err != nil {
			slog.Error("GenAI.StreamWithMessages: stream terminated with error", "error", err)
			errc <- fmt.Errorf("chat completion stream failed: %w", err)
			return
		}
		slog.Debug("GenAI.StreamWithMessages: stream completed")
		errc <- nil
	}()

	return fragments, errc
}
