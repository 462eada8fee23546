// Package gemini implements the Planner, Generator and Repairer contracts on
// top of the Gemini API. Every request is sent at temperature 0 with a fixed
// seed; the service still does not promise identical output, so Gemini runs
// are reproducible only as far as the model is.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/specialistvlad/axiomgrid/internal/ctxlog"
	genai "google.golang.org/genai"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrEmptyResponse is returned when the model produced no text part.
var ErrEmptyResponse = errors.New("gemini: empty response")

// Model is the single call the collaborators need. Client implements it;
// tests substitute a scripted one.
type Model interface {
	Generate(ctx context.Context, prompt string, jsonMode bool) (string, error)
}

// Config configures the Gemini client.
type Config struct {
	APIKey     string
	Model      string
	HTTPClient *http.Client
	// Attempts bounds retries of failed calls. Zero means 3.
	Attempts int
	// Seed is sent with every request.
	Seed int32
}

// Client is a thin wrapper around the official genai client.
type Client struct {
	cli      *genai.Client
	model    string
	attempts int
	seed     int32
	backoff  time.Duration
}

var _ Model = (*Client)(nil)

// NewClient creates a Gemini API client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini API key is required")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = 3
	}
	return &Client{cli: cli, model: model, attempts: attempts, seed: cfg.Seed, backoff: 300 * time.Millisecond}, nil
}

// Name identifies the backend in logs.
func (c *Client) Name() string { return "Gemini:" + c.model }

func (c *Client) Generate(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	logger := ctxlog.FromContext(ctx).With("model", c.model)
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
		Seed:        genai.Ptr(c.seed),
	}
	if jsonMode {
		cfg.ResponseMIMEType = "application/json"
	}

	var lastErr error
	for attempt := 0; attempt < c.attempts; attempt++ {
		if attempt > 0 {
			wait := c.backoff * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}
		logger.Debug("Sending Gemini request.", "attempt", attempt+1, "prompt_bytes", len(prompt))

		resp, err := c.cli.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			logger.Warn("Gemini request failed.", "attempt", attempt+1, "error", err)
			continue
		}
		text, err := firstText(resp)
		if err != nil {
			lastErr = err
			continue
		}
		return text, nil
	}
	return "", fmt.Errorf("gemini request failed after %d attempts: %w", c.attempts, lastErr)
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	var b strings.Builder
	for _, p := range content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}
