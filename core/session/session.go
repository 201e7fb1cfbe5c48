package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leofalp/abstractreview/core/parse"
	"github.com/leofalp/abstractreview/core/review"
	"github.com/leofalp/abstractreview/internal/utils"
	"github.com/leofalp/abstractreview/providers/agents"
)

// Input collects everything the user supplied for one review.
type Input struct {
	// Abstract is the text under review. Required.
	Abstract string

	// CustomCommands carries extra review preferences; "none" or empty
	// means no preferences.
	CustomCommands string

	// ArticlePath is the path the user entered, kept for the record.
	// Empty when no article was supplied.
	ArticlePath string

	// ArticleContent is the decoded (and possibly truncated) article
	// text. Empty when no article was supplied or loading failed.
	ArticleContent string
}

// Session drives one review conversation against an [agents.Client].
type Session struct {
	client agents.Client
	model  string
	cfg    review.Config
	logger *slog.Logger
}

// Option customizes a [Session].
type Option func(*Session)

// WithLogger sets the logger used for progress and cleanup diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithConfig replaces the pipeline tuning used to normalize the result.
func WithConfig(cfg review.Config) Option {
	return func(s *Session) { s.cfg = cfg }
}

// New returns a session that runs every role on the given model
// deployment.
func New(client agents.Client, model string, opts ...Option) *Session {
	s := &Session{
		client: client,
		model:  model,
		cfg:    review.DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// createdAgent pairs a handle with its role name for cleanup logging.
type createdAgent struct {
	name   string
	handle agents.AgentHandle
}

// Run executes the full review flow: provision the five role agents,
// post the user's request, run the orchestrator, and normalize whatever
// text came back into a [review.Record]. Created agents are deleted
// before Run returns, whatever the outcome.
func (s *Session) Run(ctx context.Context, in Input) (review.Record, error) {
	id := uuid.NewString()
	logger := s.logger.With("session", id)
	start := time.Now()

	articleProvided := in.ArticleContent != ""
	roles := []agents.RoleConfig{
		inputRole(s.model),
		reviewerRole(s.model, in.ArticleContent),
		checklisterRole(s.model),
		writerRole(s.model),
		orchestratorRole(s.model, articleProvided),
	}

	// Cleanup must still reach the service when the request context died,
	// so it runs on a detached copy.
	var created []createdAgent
	defer func() { s.cleanup(context.WithoutCancel(ctx), logger, created) }()

	for _, role := range roles {
		handle, err := s.client.CreateAgent(ctx, role)
		if err != nil {
			return review.Record{}, fmt.Errorf("creating agent %s: %w", role.Name, err)
		}
		logger.Debug("agent created", "role", role.Name, "id", handle.ID)
		created = append(created, createdAgent{name: role.Name, handle: handle})
	}
	orchestrator := created[len(created)-1].handle

	thread, err := s.client.CreateThread(ctx)
	if err != nil {
		return review.Record{}, fmt.Errorf("creating thread: %w", err)
	}

	msg := composeUserMessage(in.Abstract, in.CustomCommands, articleProvided)
	if err := s.client.PostMessage(ctx, thread, msg); err != nil {
		return review.Record{}, fmt.Errorf("posting message: %w", err)
	}

	logger.Info("running orchestrator", "model", s.model, "article", articleProvided)
	result, err := s.client.Run(ctx, thread, orchestrator)
	if err != nil {
		return review.Record{}, fmt.Errorf("running orchestrator: %w", err)
	}
	if result.Status == agents.RunFailed {
		// Partial output may still be on the thread; keep going and let
		// the normalizer fall back where sections are missing.
		logger.Warn("orchestrator run failed", "error", result.Err)
	}

	messages, err := s.client.ListMessages(ctx, thread, agents.Ascending)
	if err != nil {
		return review.Record{}, fmt.Errorf("listing messages: %w", err)
	}

	raw := collectText(messages)
	sections := review.Segment(raw)
	parsed, warnings := review.Extract(raw, sections, s.cfg)
	for _, w := range warnings {
		logger.Warn("extraction issue", "detail", w)
	}

	if len(parsed.ChecklistScores) == 0 {
		parsed.ChecklistScores = s.recoverScores(ctx, logger, thread, created)
	}

	rec := review.Normalize(parsed, review.Context{
		OriginalAbstract: in.Abstract,
		CustomCommands:   in.CustomCommands,
		ArticlePath:      in.ArticlePath,
		ArticleProvided:  articleProvided,
	}, s.cfg)

	logger.Debug("canonical record", "record", utils.JSONToString(rec))
	logger.Info("review complete",
		"comments", len(rec.ReviewComments),
		"duration", time.Since(start).Round(time.Millisecond))
	return rec, nil
}

// recoverScores asks the checklister directly for its score object when
// the orchestrator's reply carried none. The direct reply goes through
// the lenient [parse.ScoreObject] ladder; a nil return leaves score
// synthesis to reconciliation.
func (s *Session) recoverScores(ctx context.Context, logger *slog.Logger, thread agents.ThreadHandle, created []createdAgent) map[string]float64 {
	var checklister agents.AgentHandle
	found := false
	for _, a := range created {
		if a.name == RoleChecklister {
			checklister, found = a.handle, true
			break
		}
	}
	if !found {
		return nil
	}

	logger.Info("no scores in orchestrator reply, querying checklister directly")
	result, err := s.client.Run(ctx, thread, checklister)
	if err != nil {
		logger.Warn("checklister run failed", "error", err)
		return nil
	}
	if result.Status == agents.RunFailed {
		logger.Warn("checklister run failed", "error", result.Err)
	}

	messages, err := s.client.ListMessages(ctx, thread, agents.Descending)
	if err != nil {
		logger.Warn("listing checklister reply failed", "error", err)
		return nil
	}
	for _, m := range messages {
		if m.Role != "assistant" || m.Text == "" {
			continue
		}
		scores, err := parse.ScoreObject(m.Text)
		if err != nil {
			logger.Warn("checklister reply unusable", "error", err)
			return nil
		}
		return scores
	}
	return nil
}

// collectText concatenates every text chunk across the thread transcript.
func collectText(messages []agents.Message) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		if m.Text != "" {
			parts = append(parts, m.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// cleanup deletes every created agent. Each failure is logged on its own
// and never stops the remaining deletions.
func (s *Session) cleanup(ctx context.Context, logger *slog.Logger, created []createdAgent) {
	for _, a := range created {
		if err := s.client.DeleteAgent(ctx, a.handle); err != nil {
			logger.Warn("could not delete agent", "role", a.name, "error", err)
			continue
		}
		logger.Debug("agent deleted", "role", a.name)
	}
}
