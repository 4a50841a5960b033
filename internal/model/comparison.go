package model

// RankedURL is one entry in a comparison ranking.
type RankedURL struct {
	// URL is the ranked page URL.
	URL string `json:"url"`

	// Score is the model's comparative score for this URL.
	Score int `json:"score"`

	// Justification explains why the URL landed at this rank.
	Justification string `json:"justification"`
}

// ComparisonResult is the cross-URL ranking produced in comparison mode.
// It is computed from desktop-viewport analyses only; a run without at
// least two scored desktop analyses never produces one.
type ComparisonResult struct {
	// Winner is the URL the model judged best overall.
	Winner string `json:"winner"`

	// Rankings lists all compared URLs from best to worst.
	Rankings []RankedURL `json:"rankings"`

	// KeyDifferences lists the most significant differences between the pages.
	KeyDifferences []string `json:"key_differences,omitempty"`

	// Recommendations lists actionable suggestions derived from the comparison.
	Recommendations []string `json:"recommendations,omitempty"`
}
