package review

import (
	"regexp"
	"strings"

	"github.com/leofalp/abstractreview/internal/utils"
)

// Context carries the per-session inputs the normalizer needs alongside
// the parsed agent output.
type Context struct {
	OriginalAbstract string
	CustomCommands   string
	ArticlePath      string
	ArticleProvided  bool
}

// Record is the canonical review result. Its invariants hold for every
// input: 2..CommentCap cleaned comments, exactly the canonical score
// keys, a corrected abstract no shorter than the configured floor, and
// non-empty summary and custom-commands strings.
type Record struct {
	OriginalAbstract   string             `json:"original_abstract"`
	CustomCommands     string             `json:"custom_commands"`
	ReviewComments     []string           `json:"review_comments"`
	ChecklistScores    map[string]float64 `json:"checklist_scores"`
	CorrectedAbstract  string             `json:"corrected_abstract"`
	ImprovementSummary string             `json:"improvement_summary"`

	// Set only when the user supplied an article path.
	ArticlePath     string `json:"article_path,omitempty"`
	ArticleProvided *bool  `json:"article_provided,omitempty"`
}

var (
	citationRe     = regexp.MustCompile(`【[^】]*】`)
	boldWrapRe     = regexp.MustCompile(`^\*\*(.+?)\*\*$`)
	italicWrapRe   = regexp.MustCompile(`^\*(.+?)\*$`)
	leadingDecorRe = regexp.MustCompile(`^[-•*+#\s]+`)
)

// Normalize applies the fallback policy to a parsed record and returns
// the canonical result. It is a single deterministic pass; every rule
// runs exactly once, in a fixed order, and later rules may depend on
// earlier ones (the off-topic veto runs after score reconciliation, the
// corrected-abstract floor after extraction).
func Normalize(parsed Parsed, sess Context, cfg Config) Record {
	out := Record{
		OriginalAbstract:   strings.TrimSpace(sess.OriginalAbstract),
		CustomCommands:     strings.TrimSpace(sess.CustomCommands),
		CorrectedAbstract:  strings.TrimSpace(parsed.CorrectedAbstract),
		ImprovementSummary: strings.TrimSpace(parsed.ImprovementSummary),
	}
	if out.CustomCommands == "" {
		out.CustomCommands = "none"
	}

	// Comment cleaning, then the all-or-nothing count policy: fewer than
	// two survivors replaces the whole list with the fallback set.
	var comments []string
	for _, raw := range parsed.ReviewComments {
		clean := utils.ClampWords(cleanComment(raw), cfg.CommentWordBudget)
		if clean != "" {
			comments = append(comments, clean)
		}
	}
	switch {
	case len(comments) < 2:
		comments = append([]string(nil), cfg.FallbackComments...)
	case len(comments) > cfg.CommentCap:
		comments = comments[:cfg.CommentCap]
	}
	out.ReviewComments = comments

	// Score shape guarantee: reconciliation yields exactly the canonical
	// keys whether the agent reported everything, something, or nothing.
	out.ChecklistScores = ReconcileScores(parsed.ChecklistScores, sess.ArticleProvided, cfg)

	// Off-topic veto: an authoritative override independent of the
	// agent's own self-reported consistency value.
	if offTopic(out.ReviewComments, cfg.OffTopicKeywords) {
		out.ChecklistScores[CategoryConsistency] = cfg.MinConsistencyScore
	}

	// Corrected-abstract sanity floor: a truncated or garbled extraction
	// never becomes the published corrected text.
	if utils.WordCount(out.CorrectedAbstract) < cfg.CorrectedFloorWords {
		out.CorrectedAbstract = out.OriginalAbstract
	}

	if out.ImprovementSummary == "" {
		out.ImprovementSummary = cfg.DefaultSummary
	}

	if sess.ArticlePath != "" {
		out.ArticlePath = sess.ArticlePath
		provided := sess.ArticleProvided
		out.ArticleProvided = &provided
	}

	return out
}

// cleanComment strips the markdown decoration agents habitually add to
// bullet lines: bracketed citation markers, wrapping bold or italic
// emphasis, and leading bullet or heading characters. Emphasis is
// unwrapped before the leading-character strip so the opening marker of a
// bold span is not consumed as a bullet.
func cleanComment(s string) string {
	s = strings.TrimSpace(s)
	s = citationRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = boldWrapRe.ReplaceAllString(s, "$1")
	s = italicWrapRe.ReplaceAllString(s, "$1")
	s = leadingDecorRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func offTopic(comments []string, keywords []string) bool {
	joined := strings.ToLower(strings.Join(comments, " "))
	for _, kw := range keywords {
		if kw != "" && strings.Contains(joined, kw) {
			return true
		}
	}
	return false
}
