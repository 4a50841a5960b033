package model

import (
	"time"

	"github.com/uibench/uibench/internal/preset"
)

// runIDLayout formats a run start time into a filesystem-safe identifier.
// The identifier is embedded in the screenshot directory name and in both
// output filenames so a consumer can always pair them.
const runIDLayout = "20060102-150405"

// NewRunID computes a time-based run identifier from the given start time.
// The time is normalized to UTC so identifiers sort chronologically
// regardless of the machine's local zone.
func NewRunID(start time.Time) string {
	return "run-" + start.UTC().Format(runIDLayout)
}

// RunReport is the accumulated state of one pipeline run.
// Each pipeline step reads the fields produced upstream of it and appends
// its own output; nothing is mutated after the producing step completes.
type RunReport struct {
	// RunID is the time-based run identifier.
	RunID string `json:"run_id"`

	// StartedAt is when the run began, before any capture work.
	StartedAt time.Time `json:"started_at"`

	// URLs lists the normalized target URLs, in input order.
	URLs []string `json:"urls"`

	// Viewports lists the named viewports to exercise per URL.
	Viewports []string `json:"viewports"`

	// PresetName is the requested preset name (before fallback resolution).
	PresetName string `json:"preset_name"`

	// CompareMode indicates whether a cross-URL comparison was requested.
	CompareMode bool `json:"compare_mode"`

	// Preset is the fully resolved rubric, set by the resolve step.
	Preset *preset.Preset `json:"preset,omitempty"`

	// CaptureResults holds one entry per (URL, viewport) pair, in input order.
	CaptureResults []*CaptureResult `json:"capture_results,omitempty"`

	// Analyses holds one entry per successful capture, in capture order.
	Analyses []*Analysis `json:"analyses,omitempty"`

	// Comparison is the cross-URL ranking, or nil when comparison mode was
	// off, fewer than two desktop analyses scored, or the comparison call failed.
	Comparison *ComparisonResult `json:"comparison,omitempty"`

	// DocumentPath is the rendered HTML report path, set by the report step.
	DocumentPath string `json:"document_path,omitempty"`

	// MetadataPath is the metadata record path, set by the report step.
	MetadataPath string `json:"metadata_path,omitempty"`

	// Metadata is the derived metadata record, set by the report step.
	Metadata *MetadataRecord `json:"metadata,omitempty"`
}

// NewRunReport creates a RunReport for a batch, computing the run identifier
// from the start time.
func NewRunReport(urls, viewports []string, presetName string, compare bool) *RunReport {
	start := time.Now().UTC()
	return &RunReport{
		RunID:       NewRunID(start),
		StartedAt:   start,
		URLs:        urls,
		Viewports:   viewports,
		PresetName:  presetName,
		CompareMode: compare,
	}
}

// SuccessfulCaptures returns the capture results that produced artifacts,
// preserving input order.
func (r *RunReport) SuccessfulCaptures() []*CaptureResult {
	successes := make([]*CaptureResult, 0, len(r.CaptureResults))
	for _, c := range r.CaptureResults {
		if c.Succeeded() {
			successes = append(successes, c)
		}
	}
	return successes
}

// ScoredAnalyses returns the analyses that carry a numeric overall score.
func (r *RunReport) ScoredAnalyses() []*Analysis {
	scored := make([]*Analysis, 0, len(r.Analyses))
	for _, a := range r.Analyses {
		if a.Scored() {
			scored = append(scored, a)
		}
	}
	return scored
}
