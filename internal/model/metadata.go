package model

import "time"

// ScoreEntry is one scored (URL, viewport) pair in a MetadataRecord.
type ScoreEntry struct {
	// URL is the scored page URL.
	URL string `json:"url"`

	// Viewport is the named viewport of the scored capture.
	Viewport string `json:"viewport"`

	// Score is the overall score the vision model assigned.
	Score int `json:"score"`
}

// ScreenshotRef points a metadata consumer at one fold screenshot.
type ScreenshotRef struct {
	// URL is the captured page URL.
	URL string `json:"url"`

	// Viewport is the named viewport of the capture.
	Viewport string `json:"viewport"`

	// Path is the fold screenshot file path, relative to the output directory.
	Path string `json:"path"`
}

// MetadataRecord is the durable, schema-stable JSON summary of a run.
// It is the sole contract consumed by the dashboard and the reindex
// utility, so its shape must stay backward compatible.
//
// Design decision: JSON keys use camelCase rather than this package's usual
// snake_case because the record is consumed by a JavaScript dashboard; the
// key style follows the consumer, not the producer.
//
// Consumers must tolerate empty Scores and ScreenshotPaths and an absent
// ComparisonWinner: all three are legitimately missing for runs where every
// item failed or comparison mode was off.
type MetadataRecord struct {
	// RunID is the time-based run identifier.
	RunID string `json:"runId"`

	// Timestamp is when the run started.
	Timestamp time.Time `json:"timestamp"`

	// Preset is the name of the rubric preset used for scoring.
	Preset string `json:"preset"`

	// URLs lists every target URL of the run, in input order.
	URLs []string `json:"urls"`

	// Viewports lists every named viewport the run exercised.
	Viewports []string `json:"viewports"`

	// Scores lists one entry per analysis that produced a numeric score.
	// Error-marked analyses are excluded here even though they still
	// appear in the rendered document.
	Scores []ScoreEntry `json:"scores"`

	// ComparisonWinner is the winning URL in comparison mode, if any.
	ComparisonWinner string `json:"comparisonWinner,omitempty"`

	// ScreenshotPaths references the fold screenshot of every successful capture.
	ScreenshotPaths []ScreenshotRef `json:"screenshotPaths"`
}
