package report

import (
	"path/filepath"

	"github.com/uibench/uibench/internal/model"
)

// BuildMetadataRecord derives the durable run summary from the run state.
// Screenshot paths are stored relative to outputDir so the record stays
// valid when the output directory is moved; a path outside outputDir is
// kept as-is.
//
// Only analyses with a numeric overall score contribute to Scores, and
// only successful captures contribute to ScreenshotPaths. Error-marked
// items still appear in the rendered HTML document but never here.
func BuildMetadataRecord(run *model.RunReport, outputDir string) *model.MetadataRecord {
	record := &model.MetadataRecord{
		RunID:           run.RunID,
		Timestamp:       run.StartedAt,
		Preset:          run.PresetName,
		URLs:            run.URLs,
		Viewports:       run.Viewports,
		Scores:          make([]model.ScoreEntry, 0, len(run.Analyses)),
		ScreenshotPaths: make([]model.ScreenshotRef, 0, len(run.CaptureResults)),
	}

	for _, a := range run.ScoredAnalyses() {
		record.Scores = append(record.Scores, model.ScoreEntry{
			URL:      a.URL,
			Viewport: a.Viewport,
			Score:    a.OverallScore,
		})
	}

	if run.Comparison != nil {
		record.ComparisonWinner = run.Comparison.Winner
	}

	for _, c := range run.SuccessfulCaptures() {
		record.ScreenshotPaths = append(record.ScreenshotPaths, model.ScreenshotRef{
			URL:      c.URL,
			Viewport: c.Viewport,
			Path:     relativeTo(outputDir, c.Artifacts.FoldPath),
		})
	}

	return record
}

// relativeTo rewrites path relative to base when possible.
func relativeTo(base, path string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || filepath.IsAbs(rel) {
		return path
	}
	return rel
}
