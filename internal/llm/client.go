// internal/llm/client.go

// Package llm holds a small client for an OpenAI-compatible chat
// completion service. The assistant works without it; callers fall back
// to rule-based answers when the client errs.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"finhealth-assistant/internal/common/config"
	"finhealth-assistant/internal/common/errors"
	"finhealth-assistant/internal/common/logger"
)

type Client struct {
	cfg     config.CompletionConfig
	client  *http.Client
	breaker *breaker
	logger  logger.Logger
}

func NewClient(cfg config.CompletionConfig, log logger.Logger) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			// No client timeout, the per-call context bounds each request.
		},
		breaker: newBreaker(5, 30*time.Second),
		logger: log.With(map[string]interface{}{
			"component": "completion",
		}),
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends one system/user message pair and returns the model's
// reply. Retries with exponential backoff up to the configured limit;
// a deadline hit maps to a COMPLETION_TIMEOUT error. Repeated failures
// open a circuit breaker that rejects calls until the service recovers.
func (c *Client) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if !c.breaker.allow() {
		return "", errors.NewCompletionFailedError(fmt.Errorf("completion service unavailable"))
	}
	reply, err := c.complete(ctx, systemPrompt, userMessage)
	c.breaker.record(err)
	return reply, err
}

func (c *Client) complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, config.GetDuration(c.cfg.Timeout))
	defer cancel()

	body, _ := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", errors.NewCompletionTimeoutError()
			}
		}

		req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
		if err != nil {
			return "", errors.NewCompletionFailedError(err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.cfg.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		}

		resp, lastErr = c.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}

		if ctx.Err() != nil {
			return "", errors.NewCompletionTimeoutError()
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.NewCompletionTimeoutError()
		}
		return "", errors.NewCompletionFailedError(lastErr)
	}
	if resp == nil {
		return "", errors.NewCompletionFailedError(fmt.Errorf("no successful response after retries"))
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", errors.NewCompletionFailedError(fmt.Errorf("decode error: %v", err))
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", errors.NewCompletionFailedError(fmt.Errorf("empty completion"))
	}

	reply := strings.TrimSpace(parsed.Choices[0].Message.Content)
	c.logger.Debug("Completion received", map[string]interface{}{
		"chars": len(reply),
	})
	return reply, nil
}
