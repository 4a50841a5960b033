package model

// Score bounds for dimension and overall scores.
// The vision model is instructed to score on a 1-5 scale; 0 is reserved
// for "no score" (scoring failed for this item).
const (
	// MinScore is the lowest valid score.
	MinScore = 1

	// MaxScore is the highest valid score.
	MaxScore = 5
)

// DimensionScore is the model's verdict for a single rubric dimension.
type DimensionScore struct {
	// DimensionID identifies the rubric dimension this score belongs to.
	DimensionID string `json:"dimension_id"`

	// Score is the integer score in [MinScore, MaxScore].
	Score int `json:"score"`

	// Findings is the model's free-text reasoning for this dimension.
	Findings string `json:"findings"`

	// Highlights lists notable observations, if the model provided any.
	Highlights []string `json:"highlights,omitempty"`
}

// ScoringFailure records why scoring failed for one captured page.
type ScoringFailure struct {
	// Message is the human-readable failure description.
	Message string `json:"message"`

	// RawResponse preserves the unparseable model output for debugging.
	// Empty when the call itself failed before any response arrived.
	RawResponse string `json:"raw_response,omitempty"`
}

// Analysis is the scoring outcome for one successfully captured page.
//
// Like CaptureResult, this is a tagged variant: when Failure is non-nil,
// all scoring fields (Summary, OverallScore, DimensionScores, the three
// lists) are zero and must not be interpreted.
type Analysis struct {
	// URL is the analyzed page URL.
	URL string `json:"url"`

	// Viewport is the named viewport the source capture used.
	Viewport string `json:"viewport"`

	// Meta is the page metadata carried over from the source capture.
	Meta PageMeta `json:"meta"`

	// Summary is the model's overall assessment of the page.
	Summary string `json:"summary,omitempty"`

	// OverallScore is the page's overall score in [MinScore, MaxScore],
	// or 0 when scoring failed.
	OverallScore int `json:"overall_score,omitempty"`

	// DimensionScores maps dimension id to the model's per-dimension verdict.
	DimensionScores map[string]DimensionScore `json:"dimension_scores,omitempty"`

	// Strengths lists what the page does well.
	Strengths []string `json:"strengths,omitempty"`

	// Weaknesses lists what the page does poorly.
	Weaknesses []string `json:"weaknesses,omitempty"`

	// UniquePatterns lists design patterns the model found distinctive.
	UniquePatterns []string `json:"unique_patterns,omitempty"`

	// Failure holds the error marker when scoring failed for this item.
	Failure *ScoringFailure `json:"failure,omitempty"`
}

// Scored reports whether this analysis carries a numeric overall score.
func (a *Analysis) Scored() bool {
	return a.Failure == nil && a.OverallScore >= MinScore
}

// NewFailedAnalysis creates a failure-variant Analysis for a captured page.
// The page metadata is kept so the report can still render the item.
func NewFailedAnalysis(capture *CaptureResult, message, rawResponse string) *Analysis {
	analysis := &Analysis{
		URL:      capture.URL,
		Viewport: capture.Viewport,
		Failure: &ScoringFailure{
			Message:     message,
			RawResponse: rawResponse,
		},
	}
	if capture.Artifacts != nil {
		analysis.Meta = capture.Artifacts.Meta
	}
	return analysis
}
