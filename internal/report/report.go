// Package report persists and renders the canonical review record: a
// JSON artifact carrying the exact record schema, a human-readable
// markdown report, an HTML rendering of that report, and a styled
// console summary.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/leofalp/abstractreview/core/review"
)

// BasenamePrefix starts every artifact file name; the timestamp pattern
// follows.
const BasenamePrefix = "abstract_review_"

// Paths lists the artifacts written for one session.
type Paths struct {
	JSON     string
	Markdown string
	HTML     string
}

// WriteAll writes the three session artifacts into dir, creating it if
// needed. File names share a timestamped base derived from now, e.g.
// abstract_review_20240131-142502.json.
func WriteAll(dir string, rec review.Record, now time.Time) (Paths, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("report: creating output dir: %w", err)
	}

	base := BasenamePrefix + now.Format("20060102-150405")
	paths := Paths{
		JSON:     filepath.Join(dir, base+".json"),
		Markdown: filepath.Join(dir, base+".md"),
		HTML:     filepath.Join(dir, base+".html"),
	}

	if err := WriteJSON(paths.JSON, rec); err != nil {
		return Paths{}, err
	}

	md := RenderMarkdown(rec, now)
	if err := os.WriteFile(paths.Markdown, []byte(md), 0o644); err != nil {
		return Paths{}, fmt.Errorf("report: writing markdown: %w", err)
	}

	html, err := RenderHTML(md)
	if err != nil {
		return Paths{}, err
	}
	if err := os.WriteFile(paths.HTML, []byte(html), 0o644); err != nil {
		return Paths{}, fmt.Errorf("report: writing html: %w", err)
	}

	return paths, nil
}

// WriteJSON serializes the record, pretty-printed, to path.
func WriteJSON(path string, rec review.Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshaling record: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("report: writing json: %w", err)
	}
	return nil
}

// ReadJSON loads a record previously written by [WriteJSON].
func ReadJSON(path string) (review.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return review.Record{}, fmt.Errorf("report: reading json: %w", err)
	}
	var rec review.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return review.Record{}, fmt.Errorf("report: decoding json: %w", err)
	}
	return rec, nil
}

// RenderMarkdown builds the human-readable report with the fixed section
// headers mirroring the record.
func RenderMarkdown(rec review.Record, now time.Time) string {
	var b strings.Builder

	b.WriteString("# Abstract Review Report\n\n")
	fmt.Fprintf(&b, "**Date:** %s\n", now.Format("2006-01-02 15:04:05"))
	if rec.ArticleProvided != nil {
		fmt.Fprintf(&b, "**Article Provided:** %s\n", yesNo(*rec.ArticleProvided))
	} else {
		b.WriteString("**Article Provided:** No\n")
	}
	if rec.ArticlePath != "" {
		fmt.Fprintf(&b, "**Article Path:** %s\n", rec.ArticlePath)
	}
	b.WriteString("\n")

	b.WriteString("## Original Abstract\n")
	fmt.Fprintf(&b, "```\n%s\n```\n\n", rec.OriginalAbstract)

	b.WriteString("## Review Comments\n")
	for i, comment := range rec.ReviewComments {
		fmt.Fprintf(&b, "%d. %s\n", i+1, comment)
	}
	b.WriteString("\n")

	b.WriteString("## Checklist Scores\n")
	for _, cat := range review.Categories {
		fmt.Fprintf(&b, "- **%s:** %g/100\n", titleCase(cat), rec.ChecklistScores[cat])
	}
	b.WriteString("\n")

	b.WriteString("## Corrected Abstract\n")
	fmt.Fprintf(&b, "```\n%s\n```\n\n", rec.CorrectedAbstract)

	b.WriteString("## Improvement Summary\n")
	b.WriteString(rec.ImprovementSummary)
	b.WriteString("\n")

	return b.String()
}

// RenderHTML converts the markdown report to HTML.
func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("report: rendering html: %w", err)
	}
	return buf.String(), nil
}

// titleCase turns a canonical category key into its display form, e.g.
// "checklist_completeness" -> "Checklist Completeness".
func titleCase(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
