// internal/agentgw/client.go
package agentgw

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dangerclosesec/atrium/internal/model"
	"github.com/go-resty/resty/v2"
)

// EventType mirrors the upstream agent gateway's streamed event envelope.
type EventType string

const (
	EventContent  EventType = "content"
	EventStatus   EventType = "status"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
)

// Event is one streamed chunk from agent execution.
type Event struct {
	Type      EventType `json:"type"`
	Content   string    `json:"content,omitempty"`
	ToolsUsed []string  `json:"tools_used,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Runner executes an agent against a message plus history and yields events
// until the upstream closes the stream or ctx is cancelled.
type Runner interface {
	ExecuteStream(ctx context.Context, agent *model.Agent, message string, history []*model.Message) (<-chan Event, error)
}

// Completer is the single-shot completion capability used for title
// generation. Callers must treat failures as recoverable.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config represents the configuration for the agent gateway client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client speaks the agent gateway's HTTP API: newline-delimited JSON events
// for execution, a plain completion endpoint for titles.
type Client struct {
	http    *resty.Client
	baseURL string
}

func NewClient(cfg Config) *Client {
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/x-ndjson")
	if cfg.APIKey != "" {
		rc.SetAuthToken(cfg.APIKey)
	}

	return &Client{http: rc, baseURL: cfg.BaseURL}
}

type executeRequest struct {
	AgentID      string           `json:"agent_id"`
	ModelName    string           `json:"model_name"`
	SystemPrompt string           `json:"system_prompt,omitempty"`
	Message      string           `json:"message"`
	History      []historyMessage `json:"history,omitempty"`
}

type historyMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ExecuteStream starts an agent run and returns a channel of events. The
// channel closes when the upstream stream ends; an upstream failure is
// delivered as a final error event rather than tearing the channel down.
func (c *Client) ExecuteStream(ctx context.Context, agent *model.Agent, message string, history []*model.Message) (<-chan Event, error) {
	req := executeRequest{
		AgentID:      agent.ID.String(),
		ModelName:    agent.ModelName,
		SystemPrompt: agent.SystemPrompt,
		Message:      message,
	}
	for _, m := range history {
		req.History = append(req.History, historyMessage{Role: string(m.Role), Content: m.Content})
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetDoNotParseResponse(true).
		Post("/v1/agents/execute")
	if err != nil {
		return nil, fmt.Errorf("starting agent execution: %w", err)
	}
	if resp.StatusCode() >= 400 {
		resp.RawBody().Close()
		return nil, fmt.Errorf("agent gateway returned status %d", resp.StatusCode())
	}

	events := make(chan Event)
	go func() {
		defer close(events)
		defer resp.RawBody().Close()

		scanner := bufio.NewScanner(resp.RawBody())
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			var ev Event
			if err := json.Unmarshal([]byte(line), &ev); err != nil {
				ev = Event{Type: EventError, Error: fmt.Sprintf("malformed event: %v", err)}
			}

			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}

			if ev.Type == EventComplete || ev.Type == EventError {
				return
			}
		}

		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			select {
			case events <- Event{Type: EventError, Error: err.Error()}:
			case <-ctx.Done():
			}
		}
	}()

	return events, nil
}

type completeRequest struct {
	Prompt string `json:"prompt"`
}

type completeResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// Complete runs a one-shot completion, used for conversation titles.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	var out completeResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetBody(completeRequest{Prompt: prompt}).
		SetResult(&out).
		Post("/v1/completions")
	if err != nil {
		return "", fmt.Errorf("requesting completion: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return "", fmt.Errorf("completion endpoint returned status %d", resp.StatusCode())
	}
	if out.Error != "" {
		return "", fmt.Errorf("completion failed: %s", out.Error)
	}

	return strings.TrimSpace(out.Text), nil
}
