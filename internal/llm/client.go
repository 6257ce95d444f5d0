// Package llm holds the HTTP transport for the hosted AI gateway. The
// request shape follows the OpenAI Chat Completions API specification,
// which the gateway exposes as a unified endpoint for various models.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/docaura/backend/internal/config"
	"github.com/docaura/backend/internal/domain"
)

// Message represents a single message in the conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents the request payload sent to the AI gateway.
type Request struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// Client is a one-shot chat-completions client. Every call is bounded by
// the configured timeout; the provider hanging is mapped to the same
// failure as any other upstream error, never an indefinite wait.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	logger   *slog.Logger
}

// NewClient creates a client for the configured AI gateway. A missing
// credential is allowed at construction; calls fail closed instead.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		endpoint: cfg.AIGatewayURL,
		apiKey:   cfg.AIGatewayKey,
		http:     &http.Client{Timeout: cfg.AITimeout},
		logger:   logger,
	}
}

// Configured reports whether an AI credential is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Complete sends a system+user prompt pair and returns the assistant's
// reply content. Upstream failures come back as domain.UpstreamError
// already mapped to the status the caller should see.
func (c *Client) Complete(ctx context.Context, model, system, user string) (string, error) {
	if !c.Configured() {
		return "", &domain.UpstreamError{
			Message: "AI service not configured",
			Status:  http.StatusInternalServerError,
		}
	}

	payload, err := json.Marshal(Request{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("AI gateway request failed", "error", err)
		return "", &domain.UpstreamError{
			Message: "AI analysis failed",
			Status:  http.StatusInternalServerError,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		c.logger.Error("AI gateway response read failed", "error", err)
		return "", &domain.UpstreamError{
			Message: "AI analysis failed",
			Status:  http.StatusInternalServerError,
		}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &domain.UpstreamError{
			Message: "Rate limit exceeded. Please try again later.",
			Status:  http.StatusTooManyRequests,
		}
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", &domain.UpstreamError{
			Message: "AI credits exhausted. Please add credits.",
			Status:  http.StatusPaymentRequired,
		}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		// Upstream detail stays server-side only
		c.logger.Error("AI gateway returned error",
			"status", resp.StatusCode,
			"body", string(body),
		)
		return "", &domain.UpstreamError{
			Message: "AI analysis failed",
			Status:  http.StatusInternalServerError,
		}
	}

	// The reply envelope is untrusted; pull the content out without
	// binding to the rest of its shape.
	content := gjson.GetBytes(body, "choices.0.message.content").String()
	return content, nil
}
