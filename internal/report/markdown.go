package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/uibench/uibench/internal/model"
)

// MarkdownWriter renders a terminal-friendly run summary in Markdown.
// This is what `analyze --summary` and `history show` print; the HTML
// document remains the full report.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write renders the run summary.
func (w *MarkdownWriter) Write(run *model.RunReport) error {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, run)
	w.writeCaptureSummary(md, run)
	w.writeScores(md, run)
	w.writeComparison(md, run)
	w.writeOutputs(md, run)

	return md.Build()
}

// WriteRecord renders a summary from a metadata record alone, for runs
// loaded from history where the full run state is gone.
func (w *MarkdownWriter) WriteRecord(record *model.MetadataRecord) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("Run " + record.RunID)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Date", record.Timestamp.Format("2006-01-02 15:04:05 MST")},
			{"Preset", record.Preset},
			{"URLs", strconv.Itoa(len(record.URLs))},
			{"Viewports", strconv.Itoa(len(record.Viewports))},
			{"Screenshots", strconv.Itoa(len(record.ScreenshotPaths))},
		},
	})
	md.PlainText("")

	if len(record.Scores) > 0 {
		rows := make([][]string, len(record.Scores))
		for i, s := range record.Scores {
			rows[i] = []string{s.URL, s.Viewport, scoreCell(s.Score)}
		}
		md.H2("Scores")
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"URL", "Viewport", "Score"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if record.ComparisonWinner != "" {
		md.Tipf("Comparison winner: %s", record.ComparisonWinner)
		md.PlainText("")
	}

	return md.Build()
}

// writeHeader writes the run banner.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *model.RunReport) {
	md.H1("UI Benchmark " + run.RunID)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Date", run.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Preset", run.PresetName},
			{"URLs", strconv.Itoa(len(run.URLs))},
			{"Viewports", strconv.Itoa(len(run.Viewports))},
		},
	})
	md.PlainText("")
}

// writeCaptureSummary writes the capture outcome with an alert when the
// run was partial.
func (w *MarkdownWriter) writeCaptureSummary(md *markdown.Markdown, run *model.RunReport) {
	total := len(run.CaptureResults)
	succeeded := len(run.SuccessfulCaptures())

	md.H2("Captures")
	md.PlainText("")
	md.PlainTextf("%d of %d captures succeeded.", succeeded, total)
	md.PlainText("")

	switch {
	case total == 0:
		md.Caution("No captures were attempted.")
	case succeeded == 0:
		md.Caution("Every capture failed. Nothing was scored.")
	case succeeded < total:
		md.Warningf("%d capture(s) failed and were skipped.", total-succeeded)
	default:
		md.Tip("All captures succeeded.")
	}
	md.PlainText("")
}

// writeScores writes the per-page score table and a score distribution chart.
func (w *MarkdownWriter) writeScores(md *markdown.Markdown, run *model.RunReport) {
	md.H2("Scores")
	md.PlainText("")

	if len(run.Analyses) == 0 {
		md.PlainText("No pages were scored.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(run.Analyses))
	for i, a := range run.Analyses {
		cell := "unavailable"
		if a.Scored() {
			cell = scoreCell(a.OverallScore)
		}
		rows[i] = []string{a.URL, a.Viewport, cell}
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Viewport", "Score"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeScoreChart(md, run.ScoredAnalyses())
}

// writeScoreChart writes a mermaid pie chart of the overall-score
// distribution when at least one page was scored.
func (w *MarkdownWriter) writeScoreChart(md *markdown.Markdown, scored []*model.Analysis) {
	if len(scored) == 0 {
		return
	}

	counts := make(map[int]int)
	for _, a := range scored {
		counts[a.OverallScore]++
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Overall Score Distribution"),
		piechart.WithShowData(true),
	)
	for score := model.MinScore; score <= model.MaxScore; score++ {
		if counts[score] > 0 {
			chart.LabelAndIntValue(strconv.Itoa(score)+"/5", uint64(counts[score]))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeComparison writes the cross-URL ranking section.
func (w *MarkdownWriter) writeComparison(md *markdown.Markdown, run *model.RunReport) {
	if run.Comparison == nil {
		return
	}

	md.H2("Comparison")
	md.PlainText("")
	md.Tipf("Winner: %s", run.Comparison.Winner)
	md.PlainText("")

	rows := make([][]string, len(run.Comparison.Rankings))
	for i, r := range run.Comparison.Rankings {
		rows[i] = []string{strconv.Itoa(i + 1), r.URL, scoreCell(r.Score), r.Justification}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Rank", "URL", "Score", "Justification"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(run.Comparison.KeyDifferences) > 0 {
		md.H3("Key Differences")
		md.BulletList(run.Comparison.KeyDifferences...)
		md.PlainText("")
	}
	if len(run.Comparison.Recommendations) > 0 {
		md.H3("Recommendations")
		md.BulletList(run.Comparison.Recommendations...)
		md.PlainText("")
	}
}

// writeOutputs writes where the run artifacts landed.
func (w *MarkdownWriter) writeOutputs(md *markdown.Markdown, run *model.RunReport) {
	if run.DocumentPath == "" && run.MetadataPath == "" {
		return
	}

	md.H2("Outputs")
	md.PlainText("")
	var items []string
	if run.DocumentPath != "" {
		items = append(items, "Report: "+run.DocumentPath)
	}
	if run.MetadataPath != "" {
		items = append(items, "Metadata: "+run.MetadataPath)
	}
	md.BulletList(items...)
	md.PlainText("")
}

// scoreCell formats a score for table display.
func scoreCell(score int) string {
	return strconv.Itoa(score) + "/5"
}
