package report

import (
	"encoding/base64"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/uibench/uibench/internal/model"
)

// RenderHTML renders the run as a single self-contained HTML document.
// foldImages maps a capture's fold screenshot path to its PNG bytes;
// captures whose path is missing from the map render without an image.
//
// Design decision: We build the document with direct string templating
// rather than html/template because:
//  1. The document is write-only; no user-supplied template is ever parsed
//  2. All page-derived text flows through the single escape helper below
//  3. Per-analysis conditionals read more clearly as Go than as pipelines
func RenderHTML(run *model.RunReport, foldImages map[string][]byte) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&b, "<title>UI Benchmark %s</title>\n", escape(run.RunID))
	b.WriteString("<style>\n" + documentStyle + "</style>\n</head>\n<body>\n")

	writeDocumentHeader(&b, run)

	// Comparison renders above the individual sections so the verdict is
	// the first thing a reader sees.
	if run.Comparison != nil {
		writeComparisonSection(&b, run.Comparison)
	}

	foldPaths := foldPathsByKey(run.CaptureResults)
	order := dimensionOrder(run)
	for _, analysis := range run.Analyses {
		writeAnalysisSection(&b, analysis, order, foldImages[foldPaths[resultKey(analysis.URL, analysis.Viewport)]])
	}

	writeFailedCaptures(&b, run.CaptureResults)

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// escape is the single escaping point for page-derived text. Titles and
// meta descriptions come from untrusted third-party pages; every
// interpolation of such text must pass through here.
func escape(s string) string {
	return html.EscapeString(s)
}

// resultKey pairs a URL with a viewport name for map lookups.
func resultKey(url, viewport string) string {
	return url + "\x00" + viewport
}

// foldPathsByKey maps (URL, viewport) to the fold screenshot path of each
// successful capture.
func foldPathsByKey(captures []*model.CaptureResult) map[string]string {
	paths := make(map[string]string, len(captures))
	for _, c := range captures {
		if c.Succeeded() {
			paths[resultKey(c.URL, c.Viewport)] = c.Artifacts.FoldPath
		}
	}
	return paths
}

// writeDocumentHeader writes the run banner.
func writeDocumentHeader(b *strings.Builder, run *model.RunReport) {
	b.WriteString("<header>\n")
	fmt.Fprintf(b, "<h1>UI Benchmark Report</h1>\n")
	fmt.Fprintf(b, "<p class=\"run-meta\">%s &middot; %s &middot; preset: %s</p>\n",
		escape(run.RunID),
		escape(run.StartedAt.Format("2006-01-02 15:04:05 MST")),
		escape(run.PresetName),
	)
	b.WriteString("</header>\n")
}

// writeComparisonSection renders the cross-URL ranking.
func writeComparisonSection(b *strings.Builder, cmp *model.ComparisonResult) {
	b.WriteString("<section class=\"comparison\">\n<h2>Comparison</h2>\n")
	fmt.Fprintf(b, "<p class=\"winner\">Winner: <strong>%s</strong></p>\n", escape(cmp.Winner))

	b.WriteString("<ol class=\"rankings\">\n")
	for _, r := range cmp.Rankings {
		fmt.Fprintf(b, "<li><span class=\"rank-url\">%s</span> <span class=\"rank-score\">%d/5</span><p>%s</p></li>\n",
			escape(r.URL), r.Score, escape(r.Justification))
	}
	b.WriteString("</ol>\n")

	writeTextList(b, "Key Differences", cmp.KeyDifferences)
	writeTextList(b, "Recommendations", cmp.Recommendations)
	b.WriteString("</section>\n")
}

// dimensionOrder returns the rubric's dimension ids in preset order, or
// nil when the run carries no resolved preset.
func dimensionOrder(run *model.RunReport) []string {
	if run.Preset == nil {
		return nil
	}
	ids := make([]string, 0, len(run.Preset.Dimensions))
	for _, d := range run.Preset.Dimensions {
		ids = append(ids, d.ID)
	}
	return ids
}

// writeAnalysisSection renders one analyzed page, scored or not.
func writeAnalysisSection(b *strings.Builder, a *model.Analysis, order []string, foldPNG []byte) {
	b.WriteString("<section class=\"analysis\">\n")

	title := a.Meta.Title
	if title == "" {
		title = a.URL
	}
	fmt.Fprintf(b, "<h2>%s</h2>\n", escape(title))
	fmt.Fprintf(b, "<p class=\"page-meta\"><a href=\"%s\">%s</a> <span class=\"badge\">%s</span></p>\n",
		escape(a.URL), escape(a.URL), escape(a.Viewport))

	if len(foldPNG) > 0 {
		fmt.Fprintf(b, "<img class=\"fold\" alt=\"%s at %s\" src=\"data:image/png;base64,%s\">\n",
			escape(a.URL), escape(a.Viewport), base64.StdEncoding.EncodeToString(foldPNG))
	}

	if !a.Scored() {
		b.WriteString("<p class=\"unavailable\">Analysis unavailable for this page.</p>\n")
		if a.Failure != nil && a.Failure.Message != "" {
			fmt.Fprintf(b, "<p class=\"failure-detail\">%s</p>\n", escape(a.Failure.Message))
		}
		b.WriteString("</section>\n")
		return
	}

	fmt.Fprintf(b, "<p class=\"overall\">Overall: <strong>%d/5</strong></p>\n", a.OverallScore)
	fmt.Fprintf(b, "<p class=\"summary\">%s</p>\n", escape(a.Summary))

	writeDimensionBars(b, a, order)
	writeTextList(b, "Strengths", a.Strengths)
	writeTextList(b, "Weaknesses", a.Weaknesses)
	writeTextList(b, "Unique Patterns", a.UniquePatterns)

	b.WriteString("</section>\n")
}

// writeDimensionBars renders one score bar per rubric dimension, in
// preset order first and alphabetically for any dimension the model
// scored outside the rubric.
func writeDimensionBars(b *strings.Builder, a *model.Analysis, order []string) {
	if len(a.DimensionScores) == 0 {
		return
	}

	seen := make(map[string]bool, len(order))
	ids := make([]string, 0, len(a.DimensionScores))
	for _, id := range order {
		if _, ok := a.DimensionScores[id]; ok {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	for _, id := range sortedDimensionIDs(a.DimensionScores) {
		if !seen[id] {
			ids = append(ids, id)
		}
	}

	b.WriteString("<dl class=\"dimensions\">\n")
	for _, id := range ids {
		ds := a.DimensionScores[id]
		width := ds.Score * 100 / model.MaxScore
		fmt.Fprintf(b, "<dt>%s <span class=\"dim-score\">%d/5</span></dt>\n", escape(id), ds.Score)
		fmt.Fprintf(b, "<dd><div class=\"bar\"><div class=\"bar-fill\" style=\"width:%d%%\"></div></div>", width)
		if ds.Findings != "" {
			fmt.Fprintf(b, "<p>%s</p>", escape(ds.Findings))
		}
		b.WriteString("</dd>\n")
	}
	b.WriteString("</dl>\n")
}

// sortedDimensionIDs returns dimension ids in stable alphabetical order
// so the rendered document is deterministic for a given run.
func sortedDimensionIDs(scores map[string]model.DimensionScore) []string {
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// writeTextList renders a titled bullet list, or nothing when empty.
func writeTextList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}

	fmt.Fprintf(b, "<h3>%s</h3>\n<ul>\n", escape(title))
	for _, item := range items {
		fmt.Fprintf(b, "<li>%s</li>\n", escape(item))
	}
	b.WriteString("</ul>\n")
}

// writeFailedCaptures lists the (URL, viewport) pairs that produced no
// screenshots, so a partial run is visible as partial.
func writeFailedCaptures(b *strings.Builder, captures []*model.CaptureResult) {
	var failed []*model.CaptureResult
	for _, c := range captures {
		if !c.Succeeded() {
			failed = append(failed, c)
		}
	}
	if len(failed) == 0 {
		return
	}

	b.WriteString("<section class=\"capture-failures\">\n<h2>Capture Failures</h2>\n<ul>\n")
	for _, c := range failed {
		msg := ""
		if c.Failure != nil {
			msg = c.Failure.Message
		}
		fmt.Fprintf(b, "<li>%s <span class=\"badge\">%s</span> %s</li>\n",
			escape(c.URL), escape(c.Viewport), escape(msg))
	}
	b.WriteString("</ul>\n</section>\n")
}

// documentStyle is the inline stylesheet. Kept deliberately small; the
// document must stay a single portable file.
const documentStyle = `
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 0 auto; max-width: 960px; padding: 2rem 1rem; color: #1a1a2e; }
header { border-bottom: 2px solid #1a1a2e; margin-bottom: 2rem; }
.run-meta, .page-meta { color: #555; font-size: 0.9rem; }
section { margin-bottom: 2.5rem; }
.comparison { background: #f4f6fb; border-radius: 8px; padding: 1rem 1.5rem; }
.badge { background: #1a1a2e; color: #fff; border-radius: 4px; padding: 0.1rem 0.5rem; font-size: 0.75rem; }
img.fold { max-width: 100%; border: 1px solid #ddd; border-radius: 4px; }
.overall strong { font-size: 1.4rem; }
.unavailable { color: #a33; font-style: italic; }
.failure-detail { color: #777; font-size: 0.85rem; }
.bar { background: #e3e6ee; border-radius: 3px; height: 8px; max-width: 320px; }
.bar-fill { background: #4059ad; border-radius: 3px; height: 8px; }
dl.dimensions dt { font-weight: 600; margin-top: 0.8rem; }
dl.dimensions dd { margin-left: 0; }
.capture-failures { border-top: 1px solid #ddd; padding-top: 1rem; }
`
