package parse

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ScoreObject attempts to parse content as a flat JSON object of numeric
// values, the shape a checklister agent is instructed to return.
//
// The recovery ladder is:
//  1. isolate the candidate object (strip code fences, take the text
//     between the first '{' and the last '}'),
//  2. strict json.Unmarshal,
//  3. jsonrepair the candidate and retry.
//
// An error is returned only when all three steps fail; callers are
// expected to fall back to their schema defaults in that case.
//
// Example inputs that all succeed:
//
//	{"length": 85, "keywords": 90}
//	Here are your scores: ```json\n{"length": 85}\n```
//	{'length': 85, 'keywords': 90,}
func ScoreObject(content string) (map[string]float64, error) {
	candidate := isolateObject(content)
	if candidate == "" {
		return nil, fmt.Errorf("no JSON object found in content %q", truncate(content))
	}

	var scores map[string]float64
	if err := json.Unmarshal([]byte(candidate), &scores); err == nil {
		return scores, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(candidate)
	if repairErr != nil {
		return nil, fmt.Errorf("content is not valid JSON and could not be repaired: %w", repairErr)
	}
	if err := json.Unmarshal([]byte(repaired), &scores); err != nil {
		return nil, fmt.Errorf("repaired JSON still does not decode as a score object: %w", err)
	}
	return scores, nil
}

// isolateObject strips markdown code fences and returns the substring
// between the first '{' and the last '}', or "" when no object-shaped
// region exists.
func isolateObject(content string) string {
	content = stripFences(content)

	first := strings.Index(content, "{")
	last := strings.LastIndex(content, "}")
	if first < 0 || last <= first {
		return ""
	}
	return content[first : last+1]
}

// stripFences removes ``` fence lines (with or without a language tag),
// keeping everything between them.
func stripFences(content string) string {
	if !strings.Contains(content, "```") {
		return content
	}
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func truncate(s string) string {
	const max = 120
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
