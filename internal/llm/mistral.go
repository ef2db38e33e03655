package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://api.mistral.ai"
	DefaultModel   = "mistral-large-latest"
)

var (
	// ErrNotConfigured is returned when no API key is available
	ErrNotConfigured = errors.New("mistral API key not configured")
	// ErrNoJSON is returned when model output holds no JSON value
	ErrNoJSON = errors.New("no JSON found in model output")
)

// Message is a single chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a chat completion request. Zero Temperature leaves the
// provider default in place.
type Request struct {
	Messages    []Message
	Temperature float64
}

// ChatCompleter turns a conversation into the assistant's reply text
type ChatCompleter interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// MistralClient calls the Mistral chat completions API
type MistralClient struct {
	apiKey string
	model  string
	client *resty.Client
}

var _ ChatCompleter = (*MistralClient)(nil)

type chatPayload struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Option customizes a MistralClient
type Option func(*MistralClient)

// WithBaseURL points the client at a different API host
func WithBaseURL(url string) Option {
	return func(c *MistralClient) {
		c.client.SetBaseURL(url)
	}
}

// WithModel overrides the default model
func WithModel(model string) Option {
	return func(c *MistralClient) {
		if model != "" {
			c.model = model
		}
	}
}

// NewMistralClient creates a new Mistral chat client
func NewMistralClient(apiKey string, opts ...Option) (*MistralClient, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	c := &MistralClient{
		apiKey: apiKey,
		model:  DefaultModel,
		client: resty.New().
			SetBaseURL(defaultBaseURL).
			SetTimeout(60 * time.Second).
			SetHeader("User-Agent", "Campaign-Agents/1.0"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Complete sends the conversation and returns the first choice's content
func (c *MistralClient) Complete(ctx context.Context, req Request) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(chatPayload{
			Model:       c.model,
			Messages:    req.Messages,
			Temperature: req.Temperature,
		}).
		Post("/v1/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to call Mistral API: %w", err)
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("mistral API returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(resp.Body(), &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse Mistral response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("mistral API returned no choices")
	}

	logrus.Debugf("Mistral completion with %s returned %d bytes", c.model, len(chatResp.Choices[0].Message.Content))
	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
