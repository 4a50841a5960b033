package scoring

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/uibench/uibench/internal/model"
	"github.com/uibench/uibench/internal/preset"
)

// fakeClient is a VisionClient test double.
type fakeClient struct {
	analyzeReply  string
	analyzeErr    error
	completeReply string
	completeErr   error
	analyzeCalls  int
	completeCalls int
}

func (f *fakeClient) AnalyzeImage(_ context.Context, _ string, _ []byte) (string, error) {
	f.analyzeCalls++
	return f.analyzeReply, f.analyzeErr
}

func (f *fakeClient) Complete(_ context.Context, _ string) (string, error) {
	f.completeCalls++
	return f.completeReply, f.completeErr
}

// testCapture creates a success-variant capture with a real fold file.
func testCapture(t *testing.T, url, viewport string) *model.CaptureResult {
	t.Helper()

	foldPath := filepath.Join(t.TempDir(), "fold.png")
	if err := os.WriteFile(foldPath, []byte("fake-png"), 0o600); err != nil {
		t.Fatal(err)
	}

	return model.NewCaptureSuccess(url, viewport, &model.CaptureArtifacts{
		FullPagePath: foldPath,
		FoldPath:     foldPath,
		Meta:         model.PageMeta{Title: "Example", CapturedAt: time.Now()},
	})
}

// testEngine creates an engine with no pacing delay and a silent logger.
func testEngine(client VisionClient) *Engine {
	return NewEngine(client,
		WithScoringDelay(0),
		WithEngineLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

const validReply = `{
	"summary": "Clean, confident landing page.",
	"overallScore": 4,
	"dimensions": {
		"typography": {"score": 4, "findings": "Readable scale", "highlights": ["generous line height"]},
		"visual-hierarchy": {"score": 5, "findings": "Clear focal point"}
	},
	"strengths": ["strong hero"],
	"weaknesses": ["dense footer"],
	"uniquePatterns": ["split navigation"]
}`

func TestScoreAllParsesValidReply(t *testing.T) {
	t.Parallel()

	client := &fakeClient{analyzeReply: validReply}
	engine := testEngine(client)

	captures := []*model.CaptureResult{testCapture(t, "https://example.com", "desktop")}

	analyses, err := engine.ScoreAll(context.Background(), captures, defaultTestPreset())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(analyses) != 1 {
		t.Fatalf("expected 1 analysis, got %d", len(analyses))
	}

	a := analyses[0]
	if !a.Scored() {
		t.Fatalf("expected scored analysis, got failure: %+v", a.Failure)
	}
	if a.OverallScore != 4 {
		t.Errorf("expected overall 4, got %d", a.OverallScore)
	}
	if len(a.DimensionScores) != 2 {
		t.Errorf("expected 2 dimension scores, got %d", len(a.DimensionScores))
	}
	if ds := a.DimensionScores["typography"]; ds.Findings != "Readable scale" {
		t.Errorf("unexpected findings: %q", ds.Findings)
	}
	if len(a.Strengths) != 1 || a.Strengths[0] != "strong hero" {
		t.Errorf("unexpected strengths: %v", a.Strengths)
	}
}

func TestScoreAllToleratesProseWrappedJSON(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		analyzeReply: "Happy to help! Here is the assessment:\n```json\n" + validReply + "\n```",
	}
	engine := testEngine(client)

	analyses, err := engine.ScoreAll(context.Background(),
		[]*model.CaptureResult{testCapture(t, "https://example.com", "desktop")},
		defaultTestPreset())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !analyses[0].Scored() {
		t.Errorf("prose-wrapped JSON must still parse: %+v", analyses[0].Failure)
	}
}

func TestScoreAllRecordsUnparseableReply(t *testing.T) {
	t.Parallel()

	raw := "I am sorry, I cannot rate this page."
	client := &fakeClient{analyzeReply: raw}
	engine := testEngine(client)

	analyses, err := engine.ScoreAll(context.Background(),
		[]*model.CaptureResult{testCapture(t, "https://example.com", "desktop")},
		defaultTestPreset())
	if err != nil {
		t.Fatalf("run must continue past one bad reply: %v", err)
	}

	a := analyses[0]
	if a.Scored() {
		t.Fatal("expected failure variant")
	}
	if a.Failure.RawResponse != raw {
		t.Errorf("raw reply must be preserved, got %q", a.Failure.RawResponse)
	}
}

func TestScoreAllRecordsCallError(t *testing.T) {
	t.Parallel()

	client := &fakeClient{analyzeErr: errors.New("connection refused")}
	engine := testEngine(client)

	analyses, err := engine.ScoreAll(context.Background(),
		[]*model.CaptureResult{
			testCapture(t, "https://a.example", "desktop"),
			testCapture(t, "https://b.example", "desktop"),
		},
		defaultTestPreset())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One failed call must not block the next item.
	if len(analyses) != 2 {
		t.Fatalf("expected 2 analyses, got %d", len(analyses))
	}
	if client.analyzeCalls != 2 {
		t.Errorf("expected 2 model calls (no retries, no early abort), got %d", client.analyzeCalls)
	}
	for _, a := range analyses {
		if a.Scored() {
			t.Errorf("expected failure variant for %s", a.URL)
		}
	}
}

func TestScoreAllSkipsFailedCaptures(t *testing.T) {
	t.Parallel()

	client := &fakeClient{analyzeReply: validReply}
	engine := testEngine(client)

	captures := []*model.CaptureResult{
		model.NewCaptureFailure("https://down.example", "desktop", "navigation: timeout"),
		testCapture(t, "https://up.example", "desktop"),
	}

	analyses, err := engine.ScoreAll(context.Background(), captures, defaultTestPreset())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(analyses) != 1 {
		t.Fatalf("expected 1 analysis for the surviving capture, got %d", len(analyses))
	}
	if analyses[0].URL != "https://up.example" {
		t.Errorf("unexpected analysis URL %q", analyses[0].URL)
	}
}

func TestScoreClamping(t *testing.T) {
	t.Parallel()

	client := &fakeClient{analyzeReply: `{
		"summary": "s", "overallScore": 9,
		"dimensions": {"typography": {"score": 0, "findings": "f"}},
		"strengths": [], "weaknesses": [], "uniquePatterns": []
	}`}
	engine := testEngine(client)

	analyses, err := engine.ScoreAll(context.Background(),
		[]*model.CaptureResult{testCapture(t, "https://example.com", "desktop")},
		defaultTestPreset())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := analyses[0]
	if a.OverallScore != model.MaxScore {
		t.Errorf("expected overall clamped to %d, got %d", model.MaxScore, a.OverallScore)
	}
	if ds := a.DimensionScores["typography"]; ds.Score != model.MinScore {
		t.Errorf("expected dimension clamped to %d, got %d", model.MinScore, ds.Score)
	}
}

const validComparisonReply = `{
	"winner": "https://a.example",
	"rankings": [
		{"url": "https://a.example", "score": 5, "justification": "clearest hierarchy"},
		{"url": "https://b.example", "score": 3, "justification": "cluttered fold"}
	],
	"keyDifferences": ["density"],
	"recommendations": ["simplify b's hero"]
}`

// scoredAnalysis builds a scored desktop-or-other analysis for comparison tests.
func scoredAnalysis(url, viewport string, score int) *model.Analysis {
	return &model.Analysis{
		URL:          url,
		Viewport:     viewport,
		Summary:      "s",
		OverallScore: score,
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	t.Run("two scored desktop analyses trigger comparison", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{completeReply: validComparisonReply}
		engine := testEngine(client)

		result := engine.Compare(context.Background(), []*model.Analysis{
			scoredAnalysis("https://a.example", "desktop", 5),
			scoredAnalysis("https://b.example", "desktop", 3),
		})

		if result == nil {
			t.Fatal("expected comparison result")
		}
		if result.Winner != "https://a.example" {
			t.Errorf("unexpected winner %q", result.Winner)
		}
		if len(result.Rankings) != 2 {
			t.Errorf("expected 2 rankings, got %d", len(result.Rankings))
		}
	})

	t.Run("mobile-only batch never compares", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{completeReply: validComparisonReply}
		engine := testEngine(client)

		result := engine.Compare(context.Background(), []*model.Analysis{
			scoredAnalysis("https://a.example", "mobile", 5),
			scoredAnalysis("https://b.example", "mobile", 3),
		})

		if result != nil {
			t.Error("mobile-only analyses must not trigger comparison")
		}
		if client.completeCalls != 0 {
			t.Errorf("expected no model call, got %d", client.completeCalls)
		}
	})

	t.Run("single desktop analysis never compares", func(t *testing.T) {
		t.Parallel()

		engine := testEngine(&fakeClient{completeReply: validComparisonReply})

		result := engine.Compare(context.Background(), []*model.Analysis{
			scoredAnalysis("https://a.example", "desktop", 5),
		})
		if result != nil {
			t.Error("one analysis must not trigger comparison")
		}
	})

	t.Run("failed analyses do not count toward eligibility", func(t *testing.T) {
		t.Parallel()

		engine := testEngine(&fakeClient{completeReply: validComparisonReply})

		failed := &model.Analysis{
			URL:      "https://b.example",
			Viewport: "desktop",
			Failure:  &model.ScoringFailure{Message: "no JSON"},
		}
		result := engine.Compare(context.Background(), []*model.Analysis{
			scoredAnalysis("https://a.example", "desktop", 5),
			failed,
		})
		if result != nil {
			t.Error("error-marked analyses must not count toward the two-analysis minimum")
		}
	})

	t.Run("comparison failure yields nil, not an error", func(t *testing.T) {
		t.Parallel()

		engine := testEngine(&fakeClient{completeErr: errors.New("rate limited")})

		result := engine.Compare(context.Background(), []*model.Analysis{
			scoredAnalysis("https://a.example", "desktop", 5),
			scoredAnalysis("https://b.example", "desktop", 3),
		})
		if result != nil {
			t.Error("failed comparison must yield nil")
		}
	})

	t.Run("malformed comparison reply yields nil", func(t *testing.T) {
		t.Parallel()

		engine := testEngine(&fakeClient{completeReply: "no json here"})

		result := engine.Compare(context.Background(), []*model.Analysis{
			scoredAnalysis("https://a.example", "desktop", 5),
			scoredAnalysis("https://b.example", "desktop", 3),
		})
		if result != nil {
			t.Error("malformed comparison reply must yield nil")
		}
	})
}

// defaultTestPreset returns a small two-dimension rubric for tests.
func defaultTestPreset() *preset.Preset {
	return &preset.Preset{
		ID:   "test",
		Name: "Test Rubric",
		Dimensions: []preset.Dimension{
			{ID: "visual-hierarchy", Name: "Visual Hierarchy", Weight: 0.5, Description: "d"},
			{ID: "typography", Name: "Typography", Weight: 0.5, Description: "d", Criteria: []string{"c1"}},
		},
	}
}
