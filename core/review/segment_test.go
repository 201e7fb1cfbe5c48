package review

import "testing"

func TestSegment_AllSectionsInOrder(t *testing.T) {
	text := "preamble\n" +
		"REVIEW COMMENTS\n- first comment\n" +
		"CHECKLIST SCORES\n{\"length\": 80}\n" +
		"CORRECTED ABSTRACT\nBetter text.\n" +
		"IMPROVEMENT SUMMARY\n- tightened wording\n"

	secs := Segment(text)

	for name, span := range map[string]Span{
		"review":    secs.Review,
		"scores":    secs.Scores,
		"corrected": secs.Corrected,
		"summary":   secs.Summary,
	} {
		if !span.Located() {
			t.Errorf("section %s should be located", name)
		}
	}

	if secs.Review.End != secs.Scores.Start {
		t.Errorf("review span should end where scores begin: got end=%d, scores start=%d", secs.Review.End, secs.Scores.Start)
	}
	if secs.Summary.End != len(text) {
		t.Errorf("last section should extend to end of text: got %d, want %d", secs.Summary.End, len(text))
	}
}

// TestSegment_OutOfOrder verifies that span boundaries are derived by
// nearest-following-match, not by any assumed section sequence.
func TestSegment_OutOfOrder(t *testing.T) {
	text := "CORRECTED ABSTRACT\nNew abstract here.\n" +
		"REVIEW COMMENTS\n- a comment about things\n" +
		"IMPROVEMENT SUMMARY\nshorter now\n" +
		"CHECKLIST SCORES\n{}\n"

	secs := Segment(text)

	if secs.Corrected.End != secs.Review.Start {
		t.Errorf("corrected span should end at review start: got %d, want %d", secs.Corrected.End, secs.Review.Start)
	}
	if secs.Review.End != secs.Summary.Start {
		t.Errorf("review span should end at summary start: got %d, want %d", secs.Review.End, secs.Summary.Start)
	}
	if secs.Scores.End != len(text) {
		t.Errorf("scores is last here and should run to end of text: got %d", secs.Scores.End)
	}
}

func TestSegment_CaseInsensitive(t *testing.T) {
	text := "review comments\n- lower-cased header still counts\nChecklist Scores\n{}"

	secs := Segment(text)

	if !secs.Review.Located() {
		t.Error("lower-cased header should be located")
	}
	if !secs.Scores.Located() {
		t.Error("mixed-case header should be located")
	}
	if secs.Review.Start != 0 {
		t.Errorf("review should start at offset 0, got %d", secs.Review.Start)
	}
}

func TestSegment_MissingHeaders(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		located [4]bool // review, scores, corrected, summary
	}{
		{
			name:    "no headers at all",
			text:    "just some prose with no structure whatsoever",
			located: [4]bool{false, false, false, false},
		},
		{
			name:    "empty text",
			text:    "",
			located: [4]bool{false, false, false, false},
		},
		{
			name:    "only scores",
			text:    "CHECKLIST SCORES\n{\"length\": 50}",
			located: [4]bool{false, true, false, false},
		},
		{
			name:    "review and summary only",
			text:    "REVIEW COMMENTS\n- something\nIMPROVEMENT SUMMARY\ndone",
			located: [4]bool{true, false, false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secs := Segment(tt.text)
			got := [4]bool{
				secs.Review.Located(),
				secs.Scores.Located(),
				secs.Corrected.Located(),
				secs.Summary.Located(),
			}
			if got != tt.located {
				t.Errorf("Segment() located = %v, want %v", got, tt.located)
			}
		})
	}
}

// TestSegment_DuplicateHeaders verifies that only the first occurrence of
// a header counts; repeats are swallowed into the enclosing section.
func TestSegment_DuplicateHeaders(t *testing.T) {
	text := "REVIEW COMMENTS\n- one\nREVIEW COMMENTS\n- two\nCHECKLIST SCORES\n{}"

	secs := Segment(text)

	if secs.Review.Start != 0 {
		t.Errorf("first occurrence should win: got start %d, want 0", secs.Review.Start)
	}
	body := secs.Review.Slice(text)
	if want := "REVIEW COMMENTS\n- one\nREVIEW COMMENTS\n- two\n"; body != want {
		t.Errorf("duplicate header should stay inside the first span:\ngot  %q\nwant %q", body, want)
	}
}

// TestSegment_NonASCIIPreamble verifies that multi-byte characters before
// a header do not shift the reported offsets.
func TestSegment_NonASCIIPreamble(t *testing.T) {
	text := "résumé — naïve préamble ı\nREVIEW COMMENTS\n- the comment body here\n"

	secs := Segment(text)

	if !secs.Review.Located() {
		t.Fatal("review section should be located after non-ASCII preamble")
	}
	if got := text[secs.Review.Start : secs.Review.Start+len(HeaderReviewComments)]; got != HeaderReviewComments {
		t.Errorf("span start should point at the header, got %q", got)
	}
}
