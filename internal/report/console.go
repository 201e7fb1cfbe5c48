package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/leofalp/abstractreview/core/review"
	"github.com/leofalp/abstractreview/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87D787"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
)

// RenderConsole builds the styled terminal summary of a record. The
// output mirrors the markdown report sections but is meant for direct
// display at the end of a session.
func RenderConsole(rec review.Record) string {
	var b strings.Builder

	divider := dimStyle.Render(strings.Repeat("-", 40))

	b.WriteString(titleStyle.Render("ABSTRACT REVIEW REPORT"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("=", 50)))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s\n%s\n%s\n\n",
		sectionStyle.Render(fmt.Sprintf("Original Abstract (%d words):", utils.WordCount(rec.OriginalAbstract))),
		divider,
		rec.OriginalAbstract)

	fmt.Fprintf(&b, "%s\n%s\n",
		sectionStyle.Render(fmt.Sprintf("Review Comments (%d):", len(rec.ReviewComments))),
		divider)
	for i, comment := range rec.ReviewComments {
		fmt.Fprintf(&b, "%d. %s\n", i+1, comment)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n%s\n", sectionStyle.Render("Checklist Scores:"), divider)
	for _, cat := range review.Categories {
		fmt.Fprintf(&b, "%s: %g/100\n", titleCase(cat), rec.ChecklistScores[cat])
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n%s\n%s\n\n",
		sectionStyle.Render(fmt.Sprintf("Corrected Abstract (%d words):", utils.WordCount(rec.CorrectedAbstract))),
		divider,
		rec.CorrectedAbstract)

	fmt.Fprintf(&b, "%s\n%s\n%s\n",
		sectionStyle.Render("Improvement Summary:"),
		divider,
		rec.ImprovementSummary)

	return b.String()
}
