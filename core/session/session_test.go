package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/leofalp/abstractreview/core/review"
	"github.com/leofalp/abstractreview/providers/agents"
	"github.com/leofalp/abstractreview/providers/agents/agentstest"
)

const orchestratorReply = `Here is the final review.

REVIEW COMMENTS
- The background section is too brief to motivate the work.
- Quantitative results should be stated with their units.
- The conclusion overstates the generality of the findings.

CHECKLIST SCORES
{"length": 80, "keywords": 92, "gist": 88, "consistency": 95, "inclusion": 84, "checklist_completeness": 90, "conciseness": 86}

CORRECTED ABSTRACT
This study presents a systematic evaluation of the proposed method across three
benchmark datasets, establishing both the experimental protocol and the metrics
used throughout. The results demonstrate consistent improvements over prior
approaches while the discussion situates the contribution within the broader
literature and identifies concrete directions for future work.

IMPROVEMENT SUMMARY
- Expanded the background motivation.
- Added units to all reported figures.
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFakeWithReply() *agentstest.Fake {
	fake := agentstest.New()
	fake.Replies[RoleOrchestrator] = orchestratorReply
	return fake
}

func TestSession_Run(t *testing.T) {
	fake := newFakeWithReply()
	s := New(fake, "gpt-4o", WithLogger(quietLogger()))

	rec, err := s.Run(context.Background(), Input{
		Abstract:       "We study a new method for benchmark evaluation across datasets.",
		CustomCommands: "focus on clarity",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantComments := []string{
		"The background section is too brief to motivate the work.",
		"Quantitative results should be stated with their units.",
		"The conclusion overstates the generality of the findings.",
	}
	if !reflect.DeepEqual(rec.ReviewComments, wantComments) {
		t.Errorf("ReviewComments = %q, want %q", rec.ReviewComments, wantComments)
	}
	if got := rec.ChecklistScores[review.CategoryConsistency]; got != 95 {
		t.Errorf("consistency = %v, want 95", got)
	}
	if len(rec.ChecklistScores) != len(review.Categories) {
		t.Errorf("got %d score keys, want %d", len(rec.ChecklistScores), len(review.Categories))
	}
	if !strings.HasPrefix(rec.CorrectedAbstract, "This study presents") {
		t.Errorf("CorrectedAbstract = %q", rec.CorrectedAbstract)
	}
	if rec.CustomCommands != "focus on clarity" {
		t.Errorf("CustomCommands = %q", rec.CustomCommands)
	}
	if rec.ArticlePath != "" || rec.ArticleProvided != nil {
		t.Errorf("article fields should be unset, got path=%q provided=%v", rec.ArticlePath, rec.ArticleProvided)
	}
}

func TestSession_RunCleansUpAllAgents(t *testing.T) {
	fake := newFakeWithReply()
	s := New(fake, "gpt-4o", WithLogger(quietLogger()))

	if _, err := s.Run(context.Background(), Input{Abstract: "An abstract."}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{RoleInput, RoleReviewer, RoleChecklister, RoleWriter, RoleOrchestrator}
	if !reflect.DeepEqual(fake.Deleted, want) {
		t.Errorf("Deleted = %v, want %v", fake.Deleted, want)
	}
}

func TestSession_RunDeleteFailureDoesNotBlockOthers(t *testing.T) {
	fake := newFakeWithReply()
	fake.DeleteErr[RoleReviewer] = errors.New("service unavailable")
	s := New(fake, "gpt-4o", WithLogger(quietLogger()))

	if _, err := s.Run(context.Background(), Input{Abstract: "An abstract."}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{RoleInput, RoleChecklister, RoleWriter, RoleOrchestrator}
	if !reflect.DeepEqual(fake.Deleted, want) {
		t.Errorf("Deleted = %v, want %v", fake.Deleted, want)
	}
}

func TestSession_RunCreateAgentError(t *testing.T) {
	fake := agentstest.New()
	fake.CreateErr = errors.New("quota exceeded")
	s := New(fake, "gpt-4o", WithLogger(quietLogger()))

	_, err := s.Run(context.Background(), Input{Abstract: "An abstract."})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("err = %v, want wrapped quota error", err)
	}
}

func TestSession_RunFailedRunStillNormalizes(t *testing.T) {
	fake := agentstest.New()
	fake.RunStatus[RoleOrchestrator] = agents.RunFailed
	fake.Replies[RoleOrchestrator] = "REVIEW COMMENTS\n- Only one comment survived the outage.\n"
	s := New(fake, "gpt-4o", WithLogger(quietLogger()))

	abstract := "The original abstract text that the fallback must preserve verbatim."
	rec, err := s.Run(context.Background(), Input{Abstract: abstract})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	cfg := review.DefaultConfig()
	if !reflect.DeepEqual(rec.ReviewComments, cfg.FallbackComments) {
		t.Errorf("ReviewComments = %q, want fallback set", rec.ReviewComments)
	}
	if rec.CorrectedAbstract != abstract {
		t.Errorf("CorrectedAbstract = %q, want original", rec.CorrectedAbstract)
	}
	if got := rec.ChecklistScores[review.CategoryConsistency]; got != cfg.ConsistencyWithoutArticle {
		t.Errorf("consistency = %v, want %v", got, cfg.ConsistencyWithoutArticle)
	}
}

func TestSession_RunRecoversScoresFromChecklister(t *testing.T) {
	fake := agentstest.New()
	// Orchestrator reply lacks the scores section entirely; the direct
	// checklister answer is fenced and single-quoted, the shape only the
	// lenient ladder accepts.
	fake.Replies[RoleOrchestrator] = "REVIEW COMMENTS\n" +
		"- The methods section needs more detail on sample preparation.\n" +
		"- Key numerical results are missing from the text.\n"
	fake.Replies[RoleChecklister] = "Here are the scores:\n```json\n" +
		`{'length': 70, 'keywords': 72, 'gist': 74, 'consistency': 76, 'inclusion': 78, 'checklist_completeness': 80, 'conciseness': 82}` +
		"\n```"
	s := New(fake, "gpt-4o", WithLogger(quietLogger()))

	rec, err := s.Run(context.Background(), Input{Abstract: "An abstract."})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := map[string]float64{
		"length": 70, "keywords": 72, "gist": 74, "consistency": 76,
		"inclusion": 78, "checklist_completeness": 80, "conciseness": 82,
	}
	if !reflect.DeepEqual(rec.ChecklistScores, want) {
		t.Errorf("ChecklistScores = %v, want checklister values %v", rec.ChecklistScores, want)
	}
}

func TestSession_RunDoesNotQueryChecklisterWhenScoresPresent(t *testing.T) {
	fake := newFakeWithReply()
	fake.Replies[RoleChecklister] = `{"length": 1}`
	s := New(fake, "gpt-4o", WithLogger(quietLogger()))

	rec, err := s.Run(context.Background(), Input{Abstract: "An abstract."})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := rec.ChecklistScores[review.CategoryLength]; got != 80 {
		t.Errorf("length = %v, want the orchestrator-reported 80", got)
	}
}

// cancelRunClient cancels the request context during the orchestrator run
// and records the context state each DeleteAgent call observed.
type cancelRunClient struct {
	*agentstest.Fake
	cancel     context.CancelFunc
	deleteErrs []error
}

func (c *cancelRunClient) Run(ctx context.Context, thread agents.ThreadHandle, agent agents.AgentHandle) (agents.RunResult, error) {
	c.cancel()
	return agents.RunResult{}, ctx.Err()
}

func (c *cancelRunClient) DeleteAgent(ctx context.Context, agent agents.AgentHandle) error {
	c.deleteErrs = append(c.deleteErrs, ctx.Err())
	return c.Fake.DeleteAgent(ctx, agent)
}

func TestSession_CleanupSurvivesCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client := &cancelRunClient{Fake: agentstest.New(), cancel: cancel}
	s := New(client, "gpt-4o", WithLogger(quietLogger()))

	if _, err := s.Run(ctx, Input{Abstract: "An abstract."}); err == nil {
		t.Fatal("expected error from canceled run")
	}

	if len(client.Deleted) != 5 {
		t.Errorf("Deleted = %v, want all 5 agents", client.Deleted)
	}
	for i, err := range client.deleteErrs {
		if err != nil {
			t.Errorf("DeleteAgent %d saw dead context: %v", i, err)
		}
	}
}

func TestSession_RunLogsRecordJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fake := newFakeWithReply()
	s := New(fake, "gpt-4o", WithLogger(logger))

	if _, err := s.Run(context.Background(), Input{Abstract: "An abstract."}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(buf.String(), "original_abstract") {
		t.Error("debug output missing serialized record")
	}
}

func TestSession_RunWithArticleSetsRecordFields(t *testing.T) {
	fake := newFakeWithReply()
	s := New(fake, "gpt-4o", WithLogger(quietLogger()))

	rec, err := s.Run(context.Background(), Input{
		Abstract:       "An abstract about systematic benchmark evaluation.",
		ArticlePath:    "/papers/study.pdf.txt",
		ArticleContent: "Full article body used for the consistency check.",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rec.ArticlePath != "/papers/study.pdf.txt" {
		t.Errorf("ArticlePath = %q", rec.ArticlePath)
	}
	if rec.ArticleProvided == nil || !*rec.ArticleProvided {
		t.Errorf("ArticleProvided = %v, want true", rec.ArticleProvided)
	}
}

func TestComposeUserMessage(t *testing.T) {
	tests := []struct {
		name            string
		commands        string
		articleProvided bool
		want            []string
		notWant         []string
	}{
		{
			name:     "with commands and article",
			commands: "check grammar", articleProvided: true,
			want: []string{"Custom review commands: check grammar", "Full article content has been provided"},
		},
		{
			name:     "none commands omitted",
			commands: "none", articleProvided: false,
			want:    []string{"No full article was provided"},
			notWant: []string{"Custom review commands"},
		},
		{
			name:     "empty commands omitted",
			commands: "", articleProvided: false,
			notWant: []string{"Custom review commands"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := composeUserMessage("My text.", tt.commands, tt.articleProvided)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("message %q missing %q", got, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("message %q should not contain %q", got, nw)
				}
			}
		})
	}
}

func TestReviewerRole(t *testing.T) {
	t.Run("without article", func(t *testing.T) {
		cfg := reviewerRole("gpt-4o", "")
		if strings.Contains(cfg.Instructions, "ARTICLE CONTENT") {
			t.Error("no-article instructions should not embed article content")
		}
	})
	t.Run("with article embeds head", func(t *testing.T) {
		article := strings.Repeat("a", 2000)
		cfg := reviewerRole("gpt-4o", article)
		if !strings.Contains(cfg.Instructions, "ARTICLE CONTENT") {
			t.Error("instructions missing article section")
		}
		if strings.Contains(cfg.Instructions, strings.Repeat("a", 1500)) {
			t.Error("article content should be truncated")
		}
	})
}
