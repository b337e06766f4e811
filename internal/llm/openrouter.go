package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Tom1779/NASAHackathon2025/internal/config"
	"github.com/Tom1779/NASAHackathon2025/internal/metrics"
)

// Client talks to the OpenRouter chat-completion endpoint.
type Client struct {
	cfg        *config.OpenRouterConfig
	httpClient *http.Client
}

func NewClient(cfg *config.OpenRouterConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, payload Payload) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", c.cfg.AppURL)
	req.Header.Set("X-Title", "Asteroid Composition Analyzer")
	return req, nil
}

// completionBody mirrors the subset of the buffered response we read:
// the served model and choices[0].message.content.
type completionBody struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete performs a buffered chat completion. A non-2xx upstream response
// is returned as a *StatusError carrying the upstream status and body.
func (c *Client) Complete(ctx context.Context, payload Payload) (*Completion, error) {
	req, err := c.newRequest(ctx, payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openrouter request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var body completionBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode openrouter response: %w", err)
	}

	comp := &Completion{Model: body.Model}
	if len(body.Choices) > 0 {
		comp.Content = body.Choices[0].Message.Content
	}
	return comp, nil
}

// Stream performs a streaming chat completion and returns a lazily produced
// sequence of normalized events. The channel always ends with exactly one
// terminal event and is then closed. Upstream failures surface in-stream as
// one error event followed by the terminal event, so consumers always see a
// clean close. Cancel ctx to release the upstream connection early.
func (c *Client) Stream(ctx context.Context, payload Payload) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		req, err := c.newRequest(ctx, payload)
		if err != nil {
			c.emitFailure(ctx, events, fmt.Sprintf("Unexpected error: %v", err))
			return
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			slog.Error("openrouter streaming request failed", "error", err)
			c.emitFailure(ctx, events, fmt.Sprintf("Unexpected error: %v", err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body, _ := io.ReadAll(resp.Body)
			statusErr := &StatusError{Code: resp.StatusCode, Body: string(body)}
			slog.Error("openrouter returned error status", "status", resp.StatusCode, "body", statusErr.Body)
			c.emitFailure(ctx, events, statusErr.Error())
			return
		}

		r := NewReassembler()
		buf := make([]byte, 4096)
		for {
			n, readErr := resp.Body.Read(buf)
			if n > 0 {
				for _, ev := range r.Feed(buf[:n]) {
					if !send(ctx, events, ev) {
						return
					}
					if ev.Done {
						return
					}
				}
			}
			if readErr != nil {
				if readErr != io.EOF && !errors.Is(readErr, context.Canceled) {
					slog.Error("unexpected error during streaming", "error", readErr)
					if !send(ctx, events, Event{Err: fmt.Sprintf("Unexpected error: %v", readErr)}) {
						return
					}
				}
				for _, ev := range r.Finish() {
					if !send(ctx, events, ev) {
						return
					}
				}
				return
			}
		}
	}()

	return events
}

// emitFailure delivers the one-error-then-terminal pair for calls that fail
// before or instead of producing a normal stream.
func (c *Client) emitFailure(ctx context.Context, events chan<- Event, msg string) {
	if !send(ctx, events, Event{Err: msg}) {
		return
	}
	send(ctx, events, Event{Done: true})
}

func send(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		if ev.Content != "" {
			metrics.StreamEventsEmitted.Inc()
		}
		return true
	case <-ctx.Done():
		return false
	}
}
