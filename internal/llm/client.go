// Package llm wraps an OpenAI-compatible chat-completions API behind a
// small synchronous interface. The pipeline treats every call here as
// best-effort: callers fall back to defaults when a call fails, so this
// package reports errors instead of panicking or blocking forever.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Diaa1123/amz-qoder/pkg/config"
	"github.com/Diaa1123/amz-qoder/pkg/httputil"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
	"github.com/Diaa1123/amz-qoder/pkg/redis"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("llm client disabled")

// Client calls a chat-completions endpoint with model fallback.
// A failed call on the primary model is retried once on the fallback
// model before giving up.
type Client struct {
	http          *httputil.Client
	log           *logger.Logger
	baseURL       string
	model         string
	fallbackModel string
	maxTokens     int
	temperature   float64
	enabled       bool
}

// New creates a Client from config. The returned client is safe to use
// even without an API key; calls then fail fast with ErrDisabled.
func New(cfg *config.Config, log *logger.Logger, limiter *redis.RateLimiter) *Client {
	httpClient := httputil.NewWithTimeout(log, cfg.LLM.Timeout).
		WithHeader("Authorization", "Bearer "+cfg.LLM.APIKey).
		WithHeader("Content-Type", "application/json")
	if limiter != nil {
		httpClient = httpClient.WithRateLimiter(limiter, redis.LLMRateLimit)
	}

	return &Client{
		http:          httpClient,
		log:           log.WithField("component", "llm"),
		baseURL:       strings.TrimRight(cfg.LLM.BaseURL, "/"),
		model:         cfg.LLM.Model,
		fallbackModel: cfg.LLM.FallbackModel,
		maxTokens:     cfg.LLM.MaxTokens,
		temperature:   cfg.LLM.Temperature,
		enabled:       cfg.LLM.APIKey != "",
	}
}

// Enabled reports whether the client can make outbound calls
func (c *Client) Enabled() bool {
	return c != nil && c.enabled
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a system/user prompt pair and returns the trimmed text
// of the first choice. The fallback model is tried when the primary
// model's call fails outright.
func (c *Client) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	text, err := c.completeWithModel(ctx, c.model, systemPrompt, userMessage)
	if err == nil {
		return text, nil
	}
	if c.fallbackModel == "" || c.fallbackModel == c.model {
		return "", err
	}

	c.log.WithError(err).WithFields(map[string]interface{}{
		"model":    c.model,
		"fallback": c.fallbackModel,
	}).Warn("Primary model failed, trying fallback")

	text, fallbackErr := c.completeWithModel(ctx, c.fallbackModel, systemPrompt, userMessage)
	if fallbackErr != nil {
		return "", fmt.Errorf("primary: %w; fallback: %v", err, fallbackErr)
	}
	return text, nil
}

// CompleteJSON instructs the model to answer with strict JSON and
// decodes the response into v.
func (c *Client) CompleteJSON(ctx context.Context, systemPrompt, userMessage string, v interface{}) error {
	fullSystem := systemPrompt + "\n\n" +
		"You MUST respond with a single valid JSON object. " +
		"Do NOT include any text outside the JSON."

	raw, err := c.Complete(ctx, fullSystem, userMessage)
	if err != nil {
		return err
	}
	return DecodeJSON(raw, v)
}

func (c *Client) completeWithModel(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	resp, err := c.http.PostJSON(ctx, c.baseURL+"/chat/completions", reqBody)
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("chat completion status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}

// DecodeJSON strips markdown fences and surrounding prose from raw model
// output, then unmarshals the remaining JSON object into v.
func DecodeJSON(raw string, v interface{}) error {
	cleaned := normalizeJSONBlock(raw)
	if cleaned == "" {
		return errors.New("empty model response")
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("parse model response: %w", err)
	}
	return nil
}

// normalizeJSONBlock removes a ```json fence if present and narrows the
// text to the outermost JSON object.
func normalizeJSONBlock(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.IndexRune(trimmed, '\n'); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
		if strings.HasSuffix(trimmed, "```") {
			trimmed = trimmed[:len(trimmed)-3]
		}
	}
	trimmed = strings.TrimSpace(trimmed)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end >= start {
		return strings.TrimSpace(trimmed[start : end+1])
	}
	return trimmed
}
