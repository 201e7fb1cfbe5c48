package agents

import "context"

// SortOrder controls the ordering of [Client.ListMessages].
type SortOrder int

const (
	// Ascending lists messages oldest first, the order they were added.
	Ascending SortOrder = iota
	// Descending lists messages newest first.
	Descending
)

// RunStatus is the terminal state of a run.
type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// RoleConfig describes one agent as a configuration record: a display
// name, the model deployment to run it on, and its prompt template.
type RoleConfig struct {
	Name         string
	Model        string
	Instructions string
}

// AgentHandle identifies a created agent. Treat it as opaque.
type AgentHandle struct {
	ID string
}

// ThreadHandle identifies a conversation thread. Treat it as opaque.
type ThreadHandle struct {
	ID string
}

// Message is one entry of a thread transcript.
type Message struct {
	Role string
	Text string
}

// RunResult reports how a run ended. A failed status carries the service
// error text in Err; partial output may still be present on the thread.
type RunResult struct {
	Status RunStatus
	Err    string
}

// Client is the agent invocation capability consumed by the review
// session. All methods honour context cancellation and may fail with a
// transport or service error.
type Client interface {
	// CreateAgent registers a role-configured agent and returns its handle.
	CreateAgent(ctx context.Context, cfg RoleConfig) (AgentHandle, error)

	// CreateThread opens a new, empty conversation thread.
	CreateThread(ctx context.Context) (ThreadHandle, error)

	// PostMessage appends a user message to the thread.
	PostMessage(ctx context.Context, thread ThreadHandle, text string) error

	// Run executes the agent over the thread's current messages and
	// appends any produced output to the thread. A service-side failure
	// is reported through [RunResult], not as an error.
	Run(ctx context.Context, thread ThreadHandle, agent AgentHandle) (RunResult, error)

	// ListMessages returns the thread transcript in the requested order.
	ListMessages(ctx context.Context, thread ThreadHandle, order SortOrder) ([]Message, error)

	// DeleteAgent removes a previously created agent. Deleting twice is
	// an error.
	DeleteAgent(ctx context.Context, agent AgentHandle) error
}
