// Package agentstest provides a scripted in-memory implementation of
// [agents.Client] for tests: replies are keyed by agent name, and
// individual operations can be made to fail.
package agentstest

import (
	"context"
	"fmt"
	"sync"

	"github.com/leofalp/abstractreview/providers/agents"
)

// Fake is a scripted agents client. Configure the exported fields before
// use; the zero value (via [New]) completes every run with no output.
type Fake struct {
	// Replies maps an agent name to the assistant text appended to the
	// thread when that agent runs.
	Replies map[string]string

	// RunStatus overrides the run status per agent name. Agents without
	// an entry complete normally. A failed run still appends its scripted
	// reply, modelling partial output.
	RunStatus map[string]agents.RunStatus

	// CreateErr, when set, fails every CreateAgent call.
	CreateErr error

	// DeleteErr maps an agent name to the error returned when deleting it.
	DeleteErr map[string]error

	mu      sync.Mutex
	agents  map[string]agents.RoleConfig // handle ID -> config
	threads map[string][]agents.Message
	nextID  int

	// Deleted records the names of successfully deleted agents in call order.
	Deleted []string
}

func New() *Fake {
	return &Fake{
		Replies:   map[string]string{},
		RunStatus: map[string]agents.RunStatus{},
		DeleteErr: map[string]error{},
		agents:    map[string]agents.RoleConfig{},
		threads:   map[string][]agents.Message{},
	}
}

func (f *Fake) CreateAgent(_ context.Context, cfg agents.RoleConfig) (agents.AgentHandle, error) {
	if f.CreateErr != nil {
		return agents.AgentHandle{}, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	id := fmt.Sprintf("agent-%d", f.nextID)
	f.agents[id] = cfg
	return agents.AgentHandle{ID: id}, nil
}

func (f *Fake) CreateThread(_ context.Context) (agents.ThreadHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	id := fmt.Sprintf("thread-%d", f.nextID)
	f.threads[id] = nil
	return agents.ThreadHandle{ID: id}, nil
}

func (f *Fake) PostMessage(_ context.Context, thread agents.ThreadHandle, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.threads[thread.ID]; !ok {
		return fmt.Errorf("agentstest: unknown thread %s", thread.ID)
	}
	f.threads[thread.ID] = append(f.threads[thread.ID], agents.Message{Role: "user", Text: text})
	return nil
}

func (f *Fake) Run(_ context.Context, thread agents.ThreadHandle, agent agents.AgentHandle) (agents.RunResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cfg, ok := f.agents[agent.ID]
	if !ok {
		return agents.RunResult{}, fmt.Errorf("agentstest: unknown agent %s", agent.ID)
	}
	if _, ok := f.threads[thread.ID]; !ok {
		return agents.RunResult{}, fmt.Errorf("agentstest: unknown thread %s", thread.ID)
	}

	if reply, ok := f.Replies[cfg.Name]; ok {
		f.threads[thread.ID] = append(f.threads[thread.ID], agents.Message{Role: "assistant", Text: reply})
	}

	if status, ok := f.RunStatus[cfg.Name]; ok {
		result := agents.RunResult{Status: status}
		if status == agents.RunFailed {
			result.Err = "scripted failure"
		}
		return result, nil
	}
	return agents.RunResult{Status: agents.RunCompleted}, nil
}

func (f *Fake) ListMessages(_ context.Context, thread agents.ThreadHandle, order agents.SortOrder) ([]agents.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	history, ok := f.threads[thread.ID]
	if !ok {
		return nil, fmt.Errorf("agentstest: unknown thread %s", thread.ID)
	}
	out := append([]agents.Message(nil), history...)
	if order == agents.Descending {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (f *Fake) DeleteAgent(_ context.Context, agent agents.AgentHandle) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	cfg, ok := f.agents[agent.ID]
	if !ok {
		return fmt.Errorf("agentstest: unknown agent %s", agent.ID)
	}
	if err := f.DeleteErr[cfg.Name]; err != nil {
		return err
	}
	delete(f.agents, agent.ID)
	f.Deleted = append(f.Deleted, cfg.Name)
	return nil
}

var _ agents.Client = (*Fake)(nil)
