package report

import (
	"path/filepath"
	"testing"

	"github.com/uibench/uibench/internal/model"
)

func TestBuildMetadataRecord(t *testing.T) {
	t.Parallel()

	outputDir := filepath.Join("/out")
	run := testRun(t)
	run.CaptureResults = []*model.CaptureResult{
		model.NewCaptureSuccess("https://a.example", "desktop", &model.CaptureArtifacts{
			FullPagePath: filepath.Join(outputDir, "screenshots", run.RunID, "a-desktop-full.png"),
			FoldPath:     filepath.Join(outputDir, "screenshots", run.RunID, "a-desktop-fold.png"),
		}),
		model.NewCaptureFailure("https://b.example", "desktop", "navigation: timeout"),
	}
	run.Analyses = []*model.Analysis{
		scoredTestAnalysis("https://a.example"),
		{
			URL:      "https://b.example",
			Viewport: "desktop",
			Failure:  &model.ScoringFailure{Message: "unreadable screenshot"},
		},
	}
	run.Comparison = &model.ComparisonResult{Winner: "https://a.example"}

	record := BuildMetadataRecord(run, outputDir)

	if record.RunID != run.RunID {
		t.Errorf("runId = %q", record.RunID)
	}
	if !record.Timestamp.Equal(run.StartedAt) {
		t.Error("timestamp must be the run start time")
	}
	if record.Preset != "default" {
		t.Errorf("preset = %q", record.Preset)
	}

	// Error-marked analyses are excluded from scores.
	if len(record.Scores) != 1 {
		t.Fatalf("expected 1 score entry, got %d", len(record.Scores))
	}
	if s := record.Scores[0]; s.URL != "https://a.example" || s.Score != 4 {
		t.Errorf("unexpected score entry %+v", s)
	}

	// Only the fold image of the successful capture is referenced, and
	// relative to the output directory.
	if len(record.ScreenshotPaths) != 1 {
		t.Fatalf("expected 1 screenshot ref, got %d", len(record.ScreenshotPaths))
	}
	wantPath := filepath.Join("screenshots", run.RunID, "a-desktop-fold.png")
	if got := record.ScreenshotPaths[0].Path; got != wantPath {
		t.Errorf("screenshot path = %q, want %q", got, wantPath)
	}

	if record.ComparisonWinner != "https://a.example" {
		t.Errorf("comparisonWinner = %q", record.ComparisonWinner)
	}
}

func TestBuildMetadataRecordEmptyRun(t *testing.T) {
	t.Parallel()

	run := testRun(t)
	run.CaptureResults = []*model.CaptureResult{
		model.NewCaptureFailure("https://a.example", "desktop", "timeout"),
	}

	record := BuildMetadataRecord(run, "/out")

	// Consumers expect empty slices, not nulls.
	if record.Scores == nil || len(record.Scores) != 0 {
		t.Errorf("scores must be an empty slice, got %v", record.Scores)
	}
	if record.ScreenshotPaths == nil || len(record.ScreenshotPaths) != 0 {
		t.Errorf("screenshotPaths must be an empty slice, got %v", record.ScreenshotPaths)
	}
	if record.ComparisonWinner != "" {
		t.Errorf("comparisonWinner must be absent, got %q", record.ComparisonWinner)
	}
}
