package scoring

import (
	"fmt"
	"strings"

	"github.com/uibench/uibench/internal/model"
	"github.com/uibench/uibench/internal/preset"
)

// buildScoringPrompt serializes the rubric and page context into the
// instruction block sent with the fold screenshot.
func buildScoringPrompt(p *preset.Preset, pageTitle, pageURL string) string {
	var b strings.Builder

	b.WriteString("You are a senior UI design reviewer. Evaluate the attached screenshot ")
	b.WriteString("of the page visible above the fold.\n\n")

	fmt.Fprintf(&b, "Page title: %s\n", pageTitle)
	fmt.Fprintf(&b, "Page URL: %s\n\n", pageURL)

	fmt.Fprintf(&b, "Score the page against the %q rubric. Dimensions:\n\n", p.Name)

	for _, d := range p.Dimensions {
		fmt.Fprintf(&b, "- id: %s\n  name: %s\n  weight: %.2f\n  description: %s\n",
			d.ID, d.Name, d.Weight, d.Description)
		if len(d.Criteria) > 0 {
			b.WriteString("  criteria:\n")
			for _, c := range d.Criteria {
				fmt.Fprintf(&b, "    - %s\n", c)
			}
		}
	}

	b.WriteString("\nRespond with a single JSON object and nothing else, using exactly this shape:\n")
	b.WriteString(`{
  "summary": "<two or three sentence overall assessment>",
  "overallScore": <integer 1-5>,
  "dimensions": {
    "<dimension id>": {
      "score": <integer 1-5>,
      "findings": "<what you observed for this dimension>",
      "highlights": ["<notable observation>", ...]
    }
  },
  "strengths": ["<strength>", ...],
  "weaknesses": ["<weakness>", ...],
  "uniquePatterns": ["<distinctive design pattern>", ...]
}`)
	b.WriteString("\n\nInclude every dimension id from the rubric in the dimensions map. ")
	b.WriteString("Scores are integers from 1 (poor) to 5 (excellent).")

	return b.String()
}

// buildComparisonPrompt serializes per-page digests into the instruction
// block for the cross-URL comparison pass. Only desktop analyses with a
// numeric score are digested; the full screenshots are not re-sent.
func buildComparisonPrompt(analyses []*model.Analysis) string {
	var b strings.Builder

	b.WriteString("You are a senior UI design reviewer. The following pages were scored ")
	b.WriteString("independently against the same rubric. Rank them against each other.\n\n")

	for i, a := range analyses {
		fmt.Fprintf(&b, "Page %d: %s\n", i+1, a.URL)
		fmt.Fprintf(&b, "  overall score: %d/5\n", a.OverallScore)
		if len(a.Strengths) > 0 {
			fmt.Fprintf(&b, "  strengths: %s\n", strings.Join(a.Strengths, "; "))
		}
		if len(a.Weaknesses) > 0 {
			fmt.Fprintf(&b, "  weaknesses: %s\n", strings.Join(a.Weaknesses, "; "))
		}
		b.WriteString("\n")
	}

	b.WriteString("Respond with a single JSON object and nothing else, using exactly this shape:\n")
	b.WriteString(`{
  "winner": "<URL of the best page>",
  "rankings": [
    {"url": "<URL>", "score": <integer 1-5>, "justification": "<why this rank>"}
  ],
  "keyDifferences": ["<difference>", ...],
  "recommendations": ["<recommendation>", ...]
}`)
	b.WriteString("\n\nOrder rankings from best to worst and include every page exactly once.")

	return b.String()
}
