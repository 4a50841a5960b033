package model

import "time"

// PageMeta holds metadata extracted from a captured page.
// All fields are best-effort; an empty Description is normal for pages
// without a meta-description tag.
type PageMeta struct {
	// Title is the document title at capture time.
	Title string `json:"title"`

	// Description is the content of the meta-description tag, if present.
	Description string `json:"description,omitempty"`

	// CapturedAt is the timestamp when the screenshots were taken.
	CapturedAt time.Time `json:"captured_at"`

	// ViewportWidth is the emulated viewport width in pixels.
	ViewportWidth int `json:"viewport_width"`

	// ViewportHeight is the emulated viewport height in pixels.
	ViewportHeight int `json:"viewport_height"`
}

// CaptureArtifacts holds the screenshot pair for a successful capture.
// Both screenshots are required; a capture that produced only one of the
// two is recorded as a failure instead.
type CaptureArtifacts struct {
	// FullPagePath is the file path of the full scrollable-page screenshot.
	FullPagePath string `json:"full_page_path"`

	// FoldPath is the file path of the first-viewport ("fold") screenshot.
	// This image is the sole visual input for scoring.
	FoldPath string `json:"fold_path"`

	// Meta is the page metadata extracted during capture.
	Meta PageMeta `json:"meta"`
}

// CaptureFailure records why a (URL, viewport) capture failed.
type CaptureFailure struct {
	// Message is the human-readable failure description.
	Message string `json:"message"`

	// Timestamp is when the failure was recorded.
	Timestamp time.Time `json:"timestamp"`
}

// CaptureResult is the outcome of capturing one (URL, viewport) pair.
//
// Design decision: We model success and failure as a tagged variant rather
// than a bag of optional fields so that consumers are forced to handle both
// cases explicitly. Exactly one of Artifacts or Failure is non-nil.
type CaptureResult struct {
	// URL is the target page URL.
	URL string `json:"url"`

	// Viewport is the named viewport profile used for this capture.
	Viewport string `json:"viewport"`

	// Artifacts holds the screenshot pair and page metadata on success.
	Artifacts *CaptureArtifacts `json:"artifacts,omitempty"`

	// Failure holds the error marker when the capture failed.
	Failure *CaptureFailure `json:"failure,omitempty"`
}

// Succeeded reports whether this capture produced artifacts.
func (c *CaptureResult) Succeeded() bool {
	return c.Artifacts != nil
}

// NewCaptureSuccess creates a success-variant CaptureResult.
func NewCaptureSuccess(url, viewport string, artifacts *CaptureArtifacts) *CaptureResult {
	return &CaptureResult{
		URL:       url,
		Viewport:  viewport,
		Artifacts: artifacts,
	}
}

// NewCaptureFailure creates a failure-variant CaptureResult.
func NewCaptureFailure(url, viewport, message string) *CaptureResult {
	return &CaptureResult{
		URL:      url,
		Viewport: viewport,
		Failure: &CaptureFailure{
			Message:   message,
			Timestamp: time.Now().UTC(),
		},
	}
}
