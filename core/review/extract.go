package review

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Parsed is the intermediate record produced by [Extract]. Every field is
// optional: an absent or malformed section simply leaves its field empty,
// to be back-filled by [Normalize].
type Parsed struct {
	ReviewComments     []string
	ChecklistScores    map[string]float64
	CorrectedAbstract  string
	ImprovementSummary string
}

var (
	bulletPrefixRe   = regexp.MustCompile(`^[-•*+\s]+`)
	numberedPrefixRe = regexp.MustCompile(`^\d+\.\s*`)
)

// Extract pulls the raw fields out of the located sections of text. It is
// a pure function: identical inputs yield identical results. The returned
// warnings describe recoverable problems (currently only a malformed
// score object); they never indicate failure, since every missing field
// has a downstream default.
func Extract(text string, secs Sections, cfg Config) (Parsed, []string) {
	var warnings []string

	parsed := Parsed{
		ReviewComments:     extractComments(secs.Review.Slice(text), cfg.MinCommentChars),
		CorrectedAbstract:  extractCorrected(secs.Corrected.Slice(text)),
		ImprovementSummary: extractSummary(secs.Summary.Slice(text)),
	}

	scores, warn := extractScores(secs.Scores.Slice(text))
	parsed.ChecklistScores = scores
	if warn != "" {
		warnings = append(warnings, warn)
	}

	return parsed, warnings
}

// extractComments keeps only lines that start with a bullet marker
// (-, •, *) or a numbered-list marker (N.), strips the marker, and
// discards anything at or under minChars characters afterwards. Order of
// appearance is preserved.
func extractComments(section string, minChars int) []string {
	var comments []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)

		var clean string
		switch {
		case strings.HasPrefix(line, "-"), strings.HasPrefix(line, "•"), strings.HasPrefix(line, "*"):
			clean = bulletPrefixRe.ReplaceAllString(line, "")
		case numberedPrefixRe.MatchString(line):
			clean = numberedPrefixRe.ReplaceAllString(line, "")
		default:
			continue
		}

		if len(clean) > minChars {
			comments = append(comments, clean)
		}
	}
	return comments
}

// extractScores parses the substring between the first '{' and the last
// '}' of the scores section as a JSON object of numeric values. On any
// parse failure the field is left nil and a warning is returned; no
// lenient repair is attempted on this path, so unbalanced or malformed
// objects always fall through to the schema defaults.
func extractScores(section string) (map[string]float64, string) {
	first := strings.Index(section, "{")
	last := strings.LastIndex(section, "}")
	if first < 0 || last <= first {
		return nil, ""
	}

	var scores map[string]float64
	if err := json.Unmarshal([]byte(section[first:last+1]), &scores); err != nil {
		return nil, "could not parse checklist scores JSON: " + err.Error()
	}
	return scores, ""
}

// extractCorrected drops the header line of the corrected-abstract
// section and joins the remaining non-blank lines with single spaces.
func extractCorrected(section string) string {
	return joinAfterHeader(section, HeaderCorrectedAbstract, false)
}

// extractSummary drops the header line of the improvement-summary section,
// strips bullet markers from the remaining lines, and joins them with
// single spaces.
func extractSummary(section string) string {
	return joinAfterHeader(section, HeaderImprovementSummary, true)
}

func joinAfterHeader(section, header string, stripBullets bool) string {
	var (
		parts        []string
		headerPassed bool
	)
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if !headerPassed {
			if strings.HasPrefix(asciiUpper(line), header) {
				headerPassed = true
			}
			continue
		}
		if line == "" {
			continue
		}
		if stripBullets {
			line = bulletPrefixRe.ReplaceAllString(line, "")
			if line == "" {
				continue
			}
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}
