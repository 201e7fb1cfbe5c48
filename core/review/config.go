package review

// The four section headers the orchestrator agent is instructed to emit.
// Matching is case-insensitive and order-independent; see [Segment].
const (
	HeaderReviewComments     = "REVIEW COMMENTS"
	HeaderChecklistScores    = "CHECKLIST SCORES"
	HeaderCorrectedAbstract  = "CORRECTED ABSTRACT"
	HeaderImprovementSummary = "IMPROVEMENT SUMMARY"
)

// Canonical checklist categories. The final record always contains exactly
// these keys, in this order, regardless of what the agent reported.
const (
	CategoryLength                = "length"
	CategoryKeywords              = "keywords"
	CategoryGist                  = "gist"
	CategoryConsistency           = "consistency"
	CategoryInclusion             = "inclusion"
	CategoryChecklistCompleteness = "checklist_completeness"
	CategoryConciseness           = "conciseness"
)

// Categories lists the canonical checklist keys in report order.
var Categories = []string{
	CategoryLength,
	CategoryKeywords,
	CategoryGist,
	CategoryConsistency,
	CategoryInclusion,
	CategoryChecklistCompleteness,
	CategoryConciseness,
}

// Config carries every tuning knob of the parsing and normalization
// pipeline. The zero value is not usable; start from [DefaultConfig] and
// override fields as needed. All slices and maps are treated as read-only
// by the pipeline, so a single Config can be shared across sessions.
type Config struct {
	// CommentCap is the maximum number of review comments kept in the
	// final record. The surplus tail is dropped, order preserved.
	CommentCap int `yaml:"comment_cap"`

	// CommentWordBudget is the per-comment word limit applied after
	// markdown cleaning.
	CommentWordBudget int `yaml:"comment_word_budget"`

	// MinCommentChars is the minimum post-strip length for a bullet line
	// to count as a real comment during extraction.
	MinCommentChars int `yaml:"min_comment_chars"`

	// CorrectedFloorWords is the minimum word count for an extracted
	// corrected abstract. Shorter candidates are discarded and the
	// original abstract is used verbatim.
	CorrectedFloorWords int `yaml:"corrected_floor_words"`

	// OffTopicKeywords trigger the consistency veto when any of them
	// appears in the joined, lower-cased review comments. The list is
	// sample-specific and therefore fully configurable.
	OffTopicKeywords []string `yaml:"off_topic_keywords"`

	// FallbackComments replace the entire comment list when fewer than
	// two cleaned comments survive extraction. All-or-nothing.
	FallbackComments []string `yaml:"fallback_comments"`

	// DefaultSummary fills an empty improvement summary.
	DefaultSummary string `yaml:"default_summary"`

	// DefaultScores maps a canonical category to the score synthesized
	// when neither the category nor any of its aliases was reported.
	// Consistency is intentionally absent here: its default depends on
	// whether an article was supplied.
	DefaultScores map[string]float64 `yaml:"default_scores"`

	// ConsistencyWithArticle and ConsistencyWithoutArticle are the
	// context-sensitive consistency defaults: confidence is higher when a
	// full article was available for cross-checking.
	ConsistencyWithArticle    float64 `yaml:"consistency_with_article"`
	ConsistencyWithoutArticle float64 `yaml:"consistency_without_article"`

	// FlatDefaultScore is the last-resort default for a category with no
	// entry in DefaultScores.
	FlatDefaultScore float64 `yaml:"flat_default_score"`

	// MinConsistencyScore is the value forced onto the consistency
	// category by the off-topic veto.
	MinConsistencyScore float64 `yaml:"min_consistency_score"`

	// Aliases maps each canonical category to the ordered list of key
	// names accepted from the agent, the canonical name first. Order is
	// significant: the first alias present in the agent mapping wins.
	Aliases map[string][]string `yaml:"aliases"`
}

// DefaultConfig returns the canonical pipeline configuration: comment cap
// 10, 50-word comment budget, 30-word corrected-abstract floor, and the
// stock alias table, defaults, and fallback comments.
func DefaultConfig() Config {
	return Config{
		CommentCap:          10,
		CommentWordBudget:   50,
		MinCommentChars:     10,
		CorrectedFloorWords: 30,
		OffTopicKeywords: []string{
			"off-topic", "different topic", "unrelated", "mismatch",
			"inconsistent", "photonics", "optics", "waveguide",
		},
		FallbackComments: []string{
			"Abstract provides a good overview but could be more concise.",
			"Consider adding more specific methodology details.",
			"Results section should highlight key findings more clearly.",
			"Conclusion could better articulate the study's contributions.",
		},
		DefaultSummary: "Abstract has been reviewed and improved for clarity, completeness, and academic standards.",
		DefaultScores: map[string]float64{
			CategoryLength:                85,
			CategoryKeywords:              90,
			CategoryGist:                  90,
			CategoryInclusion:             85,
			CategoryChecklistCompleteness: 85,
			CategoryConciseness:           90,
		},
		ConsistencyWithArticle:    98,
		ConsistencyWithoutArticle: 75,
		FlatDefaultScore:          70,
		MinConsistencyScore:       0,
		Aliases: map[string][]string{
			CategoryLength:                {"length", "word_count"},
			CategoryKeywords:              {"keywords", "relevance", "subject_relevance"},
			CategoryGist:                  {"gist", "essence", "technical_accuracy", "scientific_rigor"},
			CategoryConsistency:           {"consistency", "complicity", "consistency_with_article_content", "alignment"},
			CategoryInclusion:             {"inclusion", "completeness", "data_inclusion"},
			CategoryChecklistCompleteness: {"checklist_completeness", "completeness", "structure"},
			CategoryConciseness:           {"conciseness", "clarity", "brevity"},
		},
	}
}

// defaultScore synthesizes the score for a category that could not be
// satisfied from the agent mapping.
func (c Config) defaultScore(category string, articleProvided bool) float64 {
	if category == CategoryConsistency {
		if articleProvided {
			return c.ConsistencyWithArticle
		}
		return c.ConsistencyWithoutArticle
	}
	if v, ok := c.DefaultScores[category]; ok {
		return v
	}
	return c.FlatDefaultScore
}
