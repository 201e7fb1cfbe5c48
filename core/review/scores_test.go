package review

import (
	"reflect"
	"sort"
	"testing"
)

func canonicalKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedCategories() []string {
	cats := append([]string(nil), Categories...)
	sort.Strings(cats)
	return cats
}

func TestReconcileScores_PassThrough(t *testing.T) {
	agent := map[string]float64{
		"length": 10, "keywords": 20, "gist": 30, "consistency": 40,
		"inclusion": 50, "checklist_completeness": 60, "conciseness": 70,
	}

	got := ReconcileScores(agent, false, DefaultConfig())

	if !reflect.DeepEqual(got, agent) {
		t.Errorf("compliant agent scores should pass through unchanged:\ngot  %v\nwant %v", got, agent)
	}
}

func TestReconcileScores_ExtraKeysDropped(t *testing.T) {
	agent := map[string]float64{
		"length": 10, "keywords": 20, "gist": 30, "consistency": 40,
		"inclusion": 50, "checklist_completeness": 60, "conciseness": 70,
		"overall_vibe": 99,
	}

	got := ReconcileScores(agent, false, DefaultConfig())

	if _, ok := got["overall_vibe"]; ok {
		t.Error("invented agent keys must not survive reconciliation")
	}
	if !reflect.DeepEqual(canonicalKeys(got), sortedCategories()) {
		t.Errorf("keys = %v, want exactly the canonical set", canonicalKeys(got))
	}
}

func TestReconcileScores_AliasResolution(t *testing.T) {
	tests := []struct {
		name     string
		agent    map[string]float64
		category string
		want     float64
	}{
		{
			name:     "consistency via alignment",
			agent:    map[string]float64{"alignment": 66},
			category: CategoryConsistency,
			want:     66,
		},
		{
			name:     "consistency via complicity variant vocabulary",
			agent:    map[string]float64{"complicity": 44},
			category: CategoryConsistency,
			want:     44,
		},
		{
			name:     "gist via essence",
			agent:    map[string]float64{"essence": 81},
			category: CategoryGist,
			want:     81,
		},
		{
			name:     "length via word_count",
			agent:    map[string]float64{"word_count": 73},
			category: CategoryLength,
			want:     73,
		},
		{
			// Alias order is significant: canonical name beats later aliases
			// even when both are present.
			name:     "canonical key wins over alias",
			agent:    map[string]float64{"consistency": 91, "alignment": 12},
			category: CategoryConsistency,
			want:     91,
		},
		{
			name:     "earlier alias wins over later alias",
			agent:    map[string]float64{"essence": 55, "scientific_rigor": 11},
			category: CategoryGist,
			want:     55,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReconcileScores(tt.agent, false, DefaultConfig())
			if got[tt.category] != tt.want {
				t.Errorf("score[%s] = %v, want %v", tt.category, got[tt.category], tt.want)
			}
		})
	}
}

func TestReconcileScores_PartialCompliance(t *testing.T) {
	cfg := DefaultConfig()
	agent := map[string]float64{
		"length": 95, "keywords": 88, "gist": 77, "consistency": 66,
	}

	got := ReconcileScores(agent, false, cfg)

	if !reflect.DeepEqual(canonicalKeys(got), sortedCategories()) {
		t.Fatalf("keys = %v, want exactly the canonical set", canonicalKeys(got))
	}
	// Agent values kept where supplied.
	for _, cat := range []string{"length", "keywords", "gist", "consistency"} {
		if got[cat] != agent[cat] {
			t.Errorf("score[%s] = %v, want agent value %v", cat, got[cat], agent[cat])
		}
	}
	// Defaults synthesized for the rest.
	for _, cat := range []string{CategoryInclusion, CategoryChecklistCompleteness, CategoryConciseness} {
		if got[cat] != cfg.DefaultScores[cat] {
			t.Errorf("score[%s] = %v, want default %v", cat, got[cat], cfg.DefaultScores[cat])
		}
	}
}

func TestReconcileScores_ConsistencyDefaultIsContextSensitive(t *testing.T) {
	cfg := DefaultConfig()

	withArticle := ReconcileScores(nil, true, cfg)
	withoutArticle := ReconcileScores(nil, false, cfg)

	if withArticle[CategoryConsistency] != cfg.ConsistencyWithArticle {
		t.Errorf("consistency with article = %v, want %v", withArticle[CategoryConsistency], cfg.ConsistencyWithArticle)
	}
	if withoutArticle[CategoryConsistency] != cfg.ConsistencyWithoutArticle {
		t.Errorf("consistency without article = %v, want %v", withoutArticle[CategoryConsistency], cfg.ConsistencyWithoutArticle)
	}
}

func TestReconcileScores_EmptyAgentYieldsAllDefaults(t *testing.T) {
	cfg := DefaultConfig()

	got := ReconcileScores(map[string]float64{}, false, cfg)

	if !reflect.DeepEqual(canonicalKeys(got), sortedCategories()) {
		t.Fatalf("keys = %v, want exactly the canonical set", canonicalKeys(got))
	}
	for _, cat := range Categories {
		if got[cat] != cfg.defaultScore(cat, false) {
			t.Errorf("score[%s] = %v, want default %v", cat, got[cat], cfg.defaultScore(cat, false))
		}
	}
}

func TestConfig_DefaultScoreFlatFallback(t *testing.T) {
	cfg := DefaultConfig()
	delete(cfg.DefaultScores, CategoryLength)

	if got := cfg.defaultScore(CategoryLength, false); got != cfg.FlatDefaultScore {
		t.Errorf("defaultScore for unlisted category = %v, want flat fallback %v", got, cfg.FlatDefaultScore)
	}
}
