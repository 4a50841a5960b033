package report

import (
	"strings"
	"testing"
	"time"

	"github.com/uibench/uibench/internal/model"
	"github.com/uibench/uibench/internal/preset"
)

func testRun(t *testing.T) *model.RunReport {
	t.Helper()

	run := model.NewRunReport(
		[]string{"https://a.example", "https://b.example"},
		[]string{"desktop"},
		"default",
		true,
	)
	run.Preset = &preset.Preset{
		ID: "default",
		Dimensions: []preset.Dimension{
			{ID: "typography", Name: "Typography", Weight: 0.5},
			{ID: "visual-hierarchy", Name: "Visual Hierarchy", Weight: 0.5},
		},
	}
	return run
}

func scoredTestAnalysis(url string) *model.Analysis {
	return &model.Analysis{
		URL:      url,
		Viewport: "desktop",
		Meta: model.PageMeta{
			Title:      "Example Site",
			CapturedAt: time.Now(),
		},
		Summary:      "A tidy page.",
		OverallScore: 4,
		DimensionScores: map[string]model.DimensionScore{
			"typography":       {DimensionID: "typography", Score: 4, Findings: "readable"},
			"visual-hierarchy": {DimensionID: "visual-hierarchy", Score: 3, Findings: "competing CTAs"},
		},
		Strengths:  []string{"clear hero"},
		Weaknesses: []string{"dense footer"},
	}
}

func TestRenderHTMLScoredPage(t *testing.T) {
	t.Parallel()

	run := testRun(t)
	foldPath := "/shots/a-desktop-fold.png"
	run.CaptureResults = []*model.CaptureResult{
		model.NewCaptureSuccess("https://a.example", "desktop", &model.CaptureArtifacts{
			FullPagePath: "/shots/a-desktop-full.png",
			FoldPath:     foldPath,
		}),
	}
	run.Analyses = []*model.Analysis{scoredTestAnalysis("https://a.example")}

	doc := RenderHTML(run, map[string][]byte{foldPath: []byte("png-bytes")})

	for _, want := range []string{
		run.RunID,
		"data:image/png;base64,",
		"Overall: <strong>4/5</strong>",
		"A tidy page.",
		"readable",
		"competing CTAs",
		"clear hero",
		"dense footer",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}

	// Dimension bars follow rubric order.
	typo := strings.Index(doc, "typography")
	hier := strings.Index(doc, "visual-hierarchy")
	if typo == -1 || hier == -1 || typo > hier {
		t.Error("dimensions not rendered in rubric order")
	}
}

func TestRenderHTMLFailedAnalysis(t *testing.T) {
	t.Parallel()

	run := testRun(t)
	run.Analyses = []*model.Analysis{{
		URL:      "https://a.example",
		Viewport: "desktop",
		Failure:  &model.ScoringFailure{Message: "no JSON in reply"},
	}}

	doc := RenderHTML(run, nil)

	if !strings.Contains(doc, "Analysis unavailable") {
		t.Error("failed analysis must render an explicit notice")
	}
	if !strings.Contains(doc, "no JSON in reply") {
		t.Error("failure message must be shown")
	}
	if strings.Contains(doc, "Overall:") {
		t.Error("failed analysis must not render a score")
	}
}

func TestRenderHTMLComparisonRendersFirst(t *testing.T) {
	t.Parallel()

	run := testRun(t)
	run.Comparison = &model.ComparisonResult{
		Winner: "https://a.example",
		Rankings: []model.RankedURL{
			{URL: "https://a.example", Score: 5, Justification: "stronger hierarchy"},
			{URL: "https://b.example", Score: 3, Justification: "cluttered"},
		},
		KeyDifferences:  []string{"density"},
		Recommendations: []string{"simplify b"},
	}
	run.Analyses = []*model.Analysis{scoredTestAnalysis("https://a.example")}

	doc := RenderHTML(run, nil)

	cmpIdx := strings.Index(doc, "class=\"comparison\"")
	analysisIdx := strings.Index(doc, "class=\"analysis\"")
	if cmpIdx == -1 {
		t.Fatal("comparison section missing")
	}
	if analysisIdx != -1 && cmpIdx > analysisIdx {
		t.Error("comparison must render above the per-page sections")
	}
	for _, want := range []string{"stronger hierarchy", "density", "simplify b"} {
		if !strings.Contains(doc, want) {
			t.Errorf("comparison content missing %q", want)
		}
	}
}

func TestRenderHTMLEscapesPageText(t *testing.T) {
	t.Parallel()

	run := testRun(t)
	a := scoredTestAnalysis("https://a.example")
	a.Meta.Title = `<script>alert("x")</script>`
	a.Summary = `summary with <img src=x onerror=alert(1)>`
	run.Analyses = []*model.Analysis{a}

	doc := RenderHTML(run, nil)

	if strings.Contains(doc, `<script>alert`) {
		t.Error("page title must be escaped")
	}
	if strings.Contains(doc, `<img src=x`) {
		t.Error("summary must be escaped")
	}
	if !strings.Contains(doc, "&lt;script&gt;") {
		t.Error("escaped title must still be visible as text")
	}
}

func TestRenderHTMLListsCaptureFailures(t *testing.T) {
	t.Parallel()

	run := testRun(t)
	run.CaptureResults = []*model.CaptureResult{
		model.NewCaptureFailure("https://down.example", "desktop", "navigation: timeout"),
	}

	doc := RenderHTML(run, nil)

	if !strings.Contains(doc, "Capture Failures") {
		t.Error("failed captures must be listed")
	}
	if !strings.Contains(doc, "navigation: timeout") {
		t.Error("capture failure message must be shown")
	}
}
