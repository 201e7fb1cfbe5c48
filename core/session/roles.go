package session

import (
	"fmt"
	"strings"

	"github.com/leofalp/abstractreview/internal/utils"
	"github.com/leofalp/abstractreview/providers/agents"
)

// Agent role names as they appear in logs and cleanup diagnostics.
const (
	RoleInput        = "input_agent"
	RoleReviewer     = "reviewer_agent"
	RoleChecklister  = "checklister_agent"
	RoleWriter       = "writer_agent"
	RoleOrchestrator = "abstract_orchestrator"
)

// articleHeadChars limits how much article text is embedded in the
// reviewer's relevance check.
const articleHeadChars = 1000

func inputRole(model string) agents.RoleConfig {
	return agents.RoleConfig{
		Name:  RoleInput,
		Model: model,
		Instructions: "You are 'Input Agent'. First ask the user for their abstract, " +
			"then for any custom review commands or preferences, " +
			"and finally ask for the file path to the full article (if available).",
	}
}

// reviewerRole branches on article availability: with an article the
// reviewer first performs a relevance check against the abstract's topic
// and is told to flag a mismatch loudly; without one it reviews the
// abstract on its own merits.
func reviewerRole(model, articleContent string) agents.RoleConfig {
	if articleContent == "" {
		return agents.RoleConfig{
			Name:  RoleReviewer,
			Model: model,
			Instructions: "You are 'Reviewer Agent'. Review the abstract quality based on its own merits since no full article was provided. " +
				"Provide constructive feedback on:\n" +
				"1. Clarity and readability\n" +
				"2. Completeness (background, methods, results, conclusion)\n" +
				"3. Academic writing style\n" +
				"4. Overall impact and contribution\n" +
				"5. Logical flow and structure",
		}
	}

	return agents.RoleConfig{
		Name:  RoleReviewer,
		Model: model,
		Instructions: fmt.Sprintf(
			"CRITICAL: You are 'Reviewer Agent'. First, check if this article is relevant to the abstract's topic.\n\n"+
				"ARTICLE CONTENT (beginning):\n%s\n\n"+
				"DECISION TREE:\n"+
				"1. If the article is about a COMPLETELY DIFFERENT topic than the abstract, "+
				"then IMMEDIATELY state: 'CRITICAL WARNING: The uploaded article appears to be completely off-topic. "+
				"Briefly describe the article's actual topic. Review will proceed based on the abstract's internal consistency only.'\n\n"+
				"2. If the article IS relevant, then review normally.\n\n"+
				"3. For normal review, check:\n"+
				"   - Consistency between abstract and article\n"+
				"   - Clarity and structure\n"+
				"   - Completeness (background, methods, results, conclusion)\n"+
				"   - Academic standards\n"+
				"   - Overall impact\n\n"+
				"IMPORTANT: Be brutally honest about topic mismatch if it exists!",
			utils.TruncateString(articleContent, articleHeadChars)),
	}
}

func checklisterRole(model string) agents.RoleConfig {
	return agents.RoleConfig{
		Name:  RoleChecklister,
		Model: model,
		Instructions: "You MUST return EXACTLY 7 scores in this EXACT JSON format with these EXACT keys:\n\n" +
			`{"length": score, "keywords": score, "gist": score, "consistency": score, "inclusion": score, "checklist_completeness": score, "conciseness": score}` + "\n\n" +
			"Score each category 0-100%:\n" +
			"1. 'length': Is abstract 200-250 words? (200-250 words = 100/100; less than 50 or more than 500 = 0/100)\n" +
			"2. 'keywords': Relevance to paper subject\n" +
			"3. 'gist': Captures essence of article\n" +
			"4. 'consistency': Aligns with full article content (100/100 if perfect match; 0/100 if off-topic)\n" +
			"5. 'inclusion': Contains relevant data/evidence\n" +
			"6. 'checklist_completeness': Has background, objective, methods, results, conclusion\n" +
			"7. 'conciseness': Balance between comprehensive and concise\n\n" +
			"DO NOT use any other keys. DO NOT add explanations. Return ONLY the JSON.",
	}
}

func writerRole(model string) agents.RoleConfig {
	return agents.RoleConfig{
		Name:  RoleWriter,
		Model: model,
		Instructions: "You are 'Abstract Writing Agent'. Based on feedback from the reviewer " +
			"and checklister agent, write an improved version of the abstract. " +
			"Maintain the original meaning while addressing identified issues. " +
			"Ensure academic tone and proper structure.",
	}
}

func orchestratorRole(model string, articleProvided bool) agents.RoleConfig {
	var b strings.Builder
	b.WriteString("You are 'Abstract Orchestrator'. DO NOT ask for the abstract or article - they have already been provided.\n" +
		"Coordinate the review process by:\n" +
		"1. Using reviewer_agent to analyze the abstract (and article if provided)\n" +
		"2. Using checklister_agent to provide percentage scores (as JSON)\n" +
		"3. Using writer_agent to improve the abstract\n" +
		"4. Presenting the final review with these sections clearly labeled:\n" +
		"   - REVIEW COMMENTS (as bullet points)\n" +
		"   - CHECKLIST SCORES (as JSON object)\n" +
		"   - CORRECTED ABSTRACT\n" +
		"   - IMPROVEMENT SUMMARY (as bullet points)\n\n" +
		"IMPORTANT: Format each section with the exact header names above.\n")

	if articleProvided {
		b.WriteString("IMPORTANT: The full article has been provided. Ensure the review agent " +
			"checks for consistency between the abstract and the full article content.\n\n")
	} else {
		b.WriteString("NOTE: No full article was provided. Review will be based on abstract's internal consistency.\n\n")
	}

	return agents.RoleConfig{
		Name:         RoleOrchestrator,
		Model:        model,
		Instructions: b.String(),
	}
}

// composeUserMessage builds the single user message posted to the
// orchestrator's thread.
func composeUserMessage(abstract, commands string, articleProvided bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "My abstract: %s. ", abstract)
	if commands != "" && commands != "none" {
		fmt.Fprintf(&b, "Custom review commands: %s. ", commands)
	}
	if articleProvided {
		b.WriteString("Full article content has been provided to the reviewer agent. ")
	} else {
		b.WriteString("No full article was provided. ")
	}
	b.WriteString("Please review and correct my abstract.")
	return b.String()
}
