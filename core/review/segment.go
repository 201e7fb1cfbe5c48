package review

import "strings"

// Span marks a half-open [Start, End) byte range inside the raw agent
// text. The zero Span is not meaningful; absent sections are represented
// by a Span whose Start is negative.
type Span struct {
	Start int
	End   int
}

// absentSpan marks a section whose header never occurred in the text.
var absentSpan = Span{Start: -1, End: -1}

// Located reports whether the section header was found in the text.
func (s Span) Located() bool {
	return s.Start >= 0
}

// Slice returns the substring of text covered by the span, or the empty
// string for an absent span.
func (s Span) Slice(text string) string {
	if !s.Located() {
		return ""
	}
	return text[s.Start:s.End]
}

// Sections holds the spans of the four expected report sections.
type Sections struct {
	Review    Span
	Scores    Span
	Corrected Span
	Summary   Span
}

// Segment locates the four canonical section headers inside text and
// returns their spans. Matching is case-insensitive and each header's
// first occurrence counts; later duplicates are swallowed into whatever
// section they fall inside. Headers may appear in any order or be absent:
// each located span ends at the nearest following header among the other
// three, or at end-of-text when none follows. A header that never occurs
// yields an absent span, and every field depending on it stays empty
// downstream.
func Segment(text string) Sections {
	upper := asciiUpper(text)

	starts := [4]int{
		strings.Index(upper, HeaderReviewComments),
		strings.Index(upper, HeaderChecklistScores),
		strings.Index(upper, HeaderCorrectedAbstract),
		strings.Index(upper, HeaderImprovementSummary),
	}

	spans := [4]Span{}
	for i, start := range starts {
		if start < 0 {
			spans[i] = absentSpan
			continue
		}
		// Nearest-following-match boundary, not a hardcoded sequence.
		end := len(text)
		for j, other := range starts {
			if j == i || other < 0 {
				continue
			}
			if other > start && other < end {
				end = other
			}
		}
		spans[i] = Span{Start: start, End: end}
	}

	return Sections{
		Review:    spans[0],
		Scores:    spans[1],
		Corrected: spans[2],
		Summary:   spans[3],
	}
}

// asciiUpper upper-cases only ASCII letters. Unlike strings.ToUpper it
// never changes the byte length of the string, so indexes found in the
// folded copy are valid offsets into the original text. The headers are
// pure ASCII, which makes this sufficient for case-insensitive matching.
func asciiUpper(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r - ('a' - 'A')
		}
		return r
	}, s)
}
