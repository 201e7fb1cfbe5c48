package review

// ReconcileScores maps an agent-reported score object onto the canonical
// category set. When the agent complied with the schema its values are
// accepted as-is; otherwise each canonical category is satisfied
// independently: first alias present in the agent mapping wins (alias
// order is significant), and a per-category default is synthesized when
// nothing matches. The consistency default is context-sensitive:
// confidence is higher when an article was supplied for cross-checking.
//
// The result always contains exactly the canonical keys. Extra keys the
// agent invented never survive, and partial compliance (say 4 of 7
// correct keys) yields a mix of agent-supplied and synthesized values.
func ReconcileScores(agent map[string]float64, articleProvided bool, cfg Config) map[string]float64 {
	out := make(map[string]float64, len(Categories))

	if containsAll(agent, Categories) {
		// Trust the agent when it complies; copy only canonical keys so
		// invented extras are still dropped.
		for _, cat := range Categories {
			out[cat] = agent[cat]
		}
		return out
	}

	for _, cat := range Categories {
		if v, ok := resolveAlias(agent, cfg.Aliases[cat]); ok {
			out[cat] = v
			continue
		}
		out[cat] = cfg.defaultScore(cat, articleProvided)
	}
	return out
}

func containsAll(m map[string]float64, keys []string) bool {
	if len(m) < len(keys) {
		return false
	}
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			return false
		}
	}
	return true
}

// resolveAlias returns the value of the first alias present in the agent
// mapping. First-match order follows the alias list, not the insertion
// order of the agent mapping.
func resolveAlias(agent map[string]float64, aliases []string) (float64, bool) {
	for _, alias := range aliases {
		if v, ok := agent[alias]; ok {
			return v, true
		}
	}
	return 0, false
}
