// Package openai implements the agents capability over the OpenAI chat
// completions API. Agents and threads are kept client-side: an agent is a
// stored role configuration, a thread is a message transcript, and a run
// is one completion call with the agent's instructions as the system
// prompt and the transcript as history.
package openai

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/leofalp/abstractreview/providers/agents"
)

// ErrUnknownHandle is returned when an agent or thread handle does not
// refer to anything this client created (or it was already deleted).
var ErrUnknownHandle = errors.New("agents/openai: unknown handle")

// Client implements [agents.Client] over chat completions.
type Client struct {
	model string
	opts  []option.RequestOption

	mu      sync.Mutex
	agents  map[string]agents.RoleConfig
	threads map[string][]agents.Message
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL overrides the default API endpoint, e.g. for an Azure or
// proxy deployment.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.opts = append(c.opts, option.WithBaseURL(baseURL))
		}
	}
}

// New creates a chat-completions-backed agents client. The model is the
// default deployment used when a [agents.RoleConfig] does not name one.
func New(apiKey, model string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("agents/openai: api key is required")
	}
	if model == "" {
		return nil, errors.New("agents/openai: model is required")
	}
	c := &Client{
		model:   model,
		opts:    []option.RequestOption{option.WithAPIKey(apiKey)},
		agents:  make(map[string]agents.RoleConfig),
		threads: make(map[string][]agents.Message),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) CreateAgent(_ context.Context, cfg agents.RoleConfig) (agents.AgentHandle, error) {
	if cfg.Name == "" {
		return agents.AgentHandle{}, errors.New("agents/openai: agent name is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	id := uuid.NewString()
	c.agents[id] = cfg
	return agents.AgentHandle{ID: id}, nil
}

func (c *Client) CreateThread(_ context.Context) (agents.ThreadHandle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := uuid.NewString()
	c.threads[id] = nil
	return agents.ThreadHandle{ID: id}, nil
}

func (c *Client) PostMessage(_ context.Context, thread agents.ThreadHandle, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.threads[thread.ID]; !ok {
		return fmt.Errorf("%w: thread %s", ErrUnknownHandle, thread.ID)
	}
	c.threads[thread.ID] = append(c.threads[thread.ID], agents.Message{Role: "user", Text: text})
	return nil
}

// Run performs one chat completion: the agent's instructions become the
// system prompt and the thread transcript the message history. The reply
// is appended to the thread. An empty choice list is a service-side
// failure and is reported through the RunResult, not as an error.
func (c *Client) Run(ctx context.Context, thread agents.ThreadHandle, agent agents.AgentHandle) (agents.RunResult, error) {
	c.mu.Lock()
	cfg, agentOK := c.agents[agent.ID]
	history, threadOK := c.threads[thread.ID]
	c.mu.Unlock()

	if !agentOK {
		return agents.RunResult{}, fmt.Errorf("%w: agent %s", ErrUnknownHandle, agent.ID)
	}
	if !threadOK {
		return agents.RunResult{}, fmt.Errorf("%w: thread %s", ErrUnknownHandle, thread.ID)
	}

	msgs := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(cfg.Instructions),
	}
	for _, m := range history {
		switch m.Role {
		case "assistant":
			msgs = append(msgs, openai.ChatCompletionMessageParamOfAssistant(m.Text))
		default:
			msgs = append(msgs, openai.UserMessage(m.Text))
		}
	}

	model := cfg.Model
	if model == "" {
		model = c.model
	}

	api := openai.NewClient(c.opts...)
	resp, err := api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: msgs,
	})
	if err != nil {
		return agents.RunResult{}, fmt.Errorf("agents/openai: completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return agents.RunResult{Status: agents.RunFailed, Err: "empty choices in completion response"}, nil
	}

	reply := resp.Choices[0].Message.Content

	c.mu.Lock()
	c.threads[thread.ID] = append(c.threads[thread.ID], agents.Message{Role: "assistant", Text: reply})
	c.mu.Unlock()

	return agents.RunResult{Status: agents.RunCompleted}, nil
}

func (c *Client) ListMessages(_ context.Context, thread agents.ThreadHandle, order agents.SortOrder) ([]agents.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	history, ok := c.threads[thread.ID]
	if !ok {
		return nil, fmt.Errorf("%w: thread %s", ErrUnknownHandle, thread.ID)
	}

	out := append([]agents.Message(nil), history...)
	if order == agents.Descending {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (c *Client) DeleteAgent(_ context.Context, agent agents.AgentHandle) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.agents[agent.ID]; !ok {
		return fmt.Errorf("%w: agent %s", ErrUnknownHandle, agent.ID)
	}
	delete(c.agents, agent.ID)
	return nil
}

var _ agents.Client = (*Client)(nil)
