// Package config assembles the runtime configuration: service settings
// from the environment (endpoint, model deployment, credentials) and
// optional pipeline tuning from a YAML file layered over the built-in
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leofalp/abstractreview/core/review"
)

// Environment variable names. PROJECT_ENDPOINT is optional (the provider
// default endpoint is used when empty); the other two are required.
const (
	EnvEndpoint = "PROJECT_ENDPOINT"
	EnvModel    = "MODEL_DEPLOYMENT_NAME"
	EnvAPIKey   = "OPENAI_API_KEY"
)

// ErrMissingConfig marks a fatal configuration error: a required
// variable is absent. It is raised before any agent is created, so there
// is never partial state to clean up.
var ErrMissingConfig = errors.New("config: missing required configuration")

// Settings carries the service-side configuration of a session.
type Settings struct {
	Endpoint string
	Model    string
	APIKey   string
}

// FromEnv reads [Settings] from the environment. Callers are expected to
// have loaded a .env file first (the CLI does this via godotenv).
func FromEnv() (Settings, error) {
	s := Settings{
		Endpoint: os.Getenv(EnvEndpoint),
		Model:    os.Getenv(EnvModel),
		APIKey:   os.Getenv(EnvAPIKey),
	}

	var missing []string
	if s.Model == "" {
		missing = append(missing, EnvModel)
	}
	if s.APIKey == "" {
		missing = append(missing, EnvAPIKey)
	}
	if len(missing) > 0 {
		return Settings{}, fmt.Errorf("%w: set %s in the environment or your .env file",
			ErrMissingConfig, strings.Join(missing, ", "))
	}
	return s, nil
}

// fileTuning mirrors review.Config with optional fields so a tuning file
// only has to name the knobs it wants to change.
type fileTuning struct {
	CommentCap          *int     `yaml:"comment_cap"`
	CommentWordBudget   *int     `yaml:"comment_word_budget"`
	MinCommentChars     *int     `yaml:"min_comment_chars"`
	CorrectedFloorWords *int     `yaml:"corrected_floor_words"`
	OffTopicKeywords    []string `yaml:"off_topic_keywords"`
	FallbackComments    []string `yaml:"fallback_comments"`
	DefaultSummary      *string  `yaml:"default_summary"`

	DefaultScores             map[string]float64 `yaml:"default_scores"`
	ConsistencyWithArticle    *float64           `yaml:"consistency_with_article"`
	ConsistencyWithoutArticle *float64           `yaml:"consistency_without_article"`
	FlatDefaultScore          *float64           `yaml:"flat_default_score"`
	MinConsistencyScore       *float64           `yaml:"min_consistency_score"`

	Aliases map[string][]string `yaml:"aliases"`
}

// LoadTuning returns the pipeline configuration: the built-in defaults,
// overridden by any fields present in the YAML file at path. An empty
// path returns the defaults unchanged.
func LoadTuning(path string) (review.Config, error) {
	cfg := review.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return review.Config{}, fmt.Errorf("config: reading tuning file %s: %w", path, err)
	}

	var ft fileTuning
	if err := yaml.Unmarshal(data, &ft); err != nil {
		return review.Config{}, fmt.Errorf("config: parsing tuning file %s: %w", path, err)
	}

	if ft.CommentCap != nil {
		cfg.CommentCap = *ft.CommentCap
	}
	if ft.CommentWordBudget != nil {
		cfg.CommentWordBudget = *ft.CommentWordBudget
	}
	if ft.MinCommentChars != nil {
		cfg.MinCommentChars = *ft.MinCommentChars
	}
	if ft.CorrectedFloorWords != nil {
		cfg.CorrectedFloorWords = *ft.CorrectedFloorWords
	}
	if ft.OffTopicKeywords != nil {
		cfg.OffTopicKeywords = ft.OffTopicKeywords
	}
	if ft.FallbackComments != nil {
		cfg.FallbackComments = ft.FallbackComments
	}
	if ft.DefaultSummary != nil {
		cfg.DefaultSummary = *ft.DefaultSummary
	}
	if ft.DefaultScores != nil {
		cfg.DefaultScores = ft.DefaultScores
	}
	if ft.ConsistencyWithArticle != nil {
		cfg.ConsistencyWithArticle = *ft.ConsistencyWithArticle
	}
	if ft.ConsistencyWithoutArticle != nil {
		cfg.ConsistencyWithoutArticle = *ft.ConsistencyWithoutArticle
	}
	if ft.FlatDefaultScore != nil {
		cfg.FlatDefaultScore = *ft.FlatDefaultScore
	}
	if ft.MinConsistencyScore != nil {
		cfg.MinConsistencyScore = *ft.MinConsistencyScore
	}
	if ft.Aliases != nil {
		cfg.Aliases = ft.Aliases
	}

	return cfg, nil
}
