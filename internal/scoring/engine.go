package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/uibench/uibench/internal/config"
	"github.com/uibench/uibench/internal/model"
	"github.com/uibench/uibench/internal/pacer"
	"github.com/uibench/uibench/internal/preset"
)

// Engine scores captured pages against a resolved preset.
type Engine struct {
	// client performs the model calls.
	client VisionClient

	// gate enforces the fixed delay between consecutive model calls.
	gate *pacer.Pacer

	// logger for structured logging.
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithScoringDelay sets the fixed delay between consecutive model calls.
func WithScoringDelay(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.gate = pacer.New(d)
	}
}

// WithEngineLogger sets a custom logger for the engine.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates a scoring engine backed by the given client.
func NewEngine(client VisionClient, opts ...EngineOption) *Engine {
	e := &Engine{
		client: client,
		gate:   pacer.New(config.DefaultScoringDelay),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// scoreResponse is the strict JSON shape requested from the model for one
// page analysis.
type scoreResponse struct {
	Summary        string                   `json:"summary"`
	OverallScore   int                      `json:"overallScore"`
	Dimensions     map[string]dimensionResp `json:"dimensions"`
	Strengths      []string                 `json:"strengths"`
	Weaknesses     []string                 `json:"weaknesses"`
	UniquePatterns []string                 `json:"uniquePatterns"`
}

// dimensionResp is one per-dimension verdict in a scoreResponse.
type dimensionResp struct {
	Score      int      `json:"score"`
	Findings   string   `json:"findings"`
	Highlights []string `json:"highlights"`
}

// comparisonResponse is the strict JSON shape requested for the comparison pass.
type comparisonResponse struct {
	Winner   string `json:"winner"`
	Rankings []struct {
		URL           string `json:"url"`
		Score         int    `json:"score"`
		Justification string `json:"justification"`
	} `json:"rankings"`
	KeyDifferences  []string `json:"keyDifferences"`
	Recommendations []string `json:"recommendations"`
}

// ScoreAll produces one Analysis per successful capture, in capture order.
// Failed captures are skipped (the report emitter renders them from the
// capture results directly). A failed model call or unparseable reply
// yields a failure-variant Analysis; the loop never aborts for one item.
func (e *Engine) ScoreAll(ctx context.Context, captures []*model.CaptureResult, p *preset.Preset) ([]*model.Analysis, error) {
	analyses := make([]*model.Analysis, 0, len(captures))

	for _, capture := range captures {
		if !capture.Succeeded() {
			continue
		}

		if err := e.gate.Wait(ctx); err != nil {
			return analyses, err
		}

		analysis := e.scoreOne(ctx, capture, p)
		analyses = append(analyses, analysis)

		if analysis.Scored() {
			e.logger.Info("scored",
				"url", capture.URL,
				"viewport", capture.Viewport,
				"overall", analysis.OverallScore,
			)
		} else {
			e.logger.Warn("scoring failed",
				"url", capture.URL,
				"viewport", capture.Viewport,
				"error", analysis.Failure.Message,
			)
		}
	}

	return analyses, nil
}

// scoreOne runs a single analysis: read the fold image, call the model once,
// parse the reply. Every error path collapses into a failure-variant
// Analysis; there are no retries.
func (e *Engine) scoreOne(ctx context.Context, capture *model.CaptureResult, p *preset.Preset) *model.Analysis {
	foldImage, err := os.ReadFile(capture.Artifacts.FoldPath)
	if err != nil {
		return model.NewFailedAnalysis(capture, fmt.Sprintf("reading fold screenshot: %v", err), "")
	}

	prompt := buildScoringPrompt(p, capture.Artifacts.Meta.Title, capture.URL)

	reply, err := e.client.AnalyzeImage(ctx, prompt, foldImage)
	if err != nil {
		return model.NewFailedAnalysis(capture, fmt.Sprintf("model call: %v", err), "")
	}

	extracted := ExtractJSON(reply)
	if extracted == "" {
		return model.NewFailedAnalysis(capture, "no JSON object found in model reply", reply)
	}

	var parsed scoreResponse
	if err := json.Unmarshal([]byte(extracted), &parsed); err != nil {
		return model.NewFailedAnalysis(capture, fmt.Sprintf("parsing model reply: %v", err), reply)
	}

	return &model.Analysis{
		URL:             capture.URL,
		Viewport:        capture.Viewport,
		Meta:            capture.Artifacts.Meta,
		Summary:         parsed.Summary,
		OverallScore:    clampScore(parsed.OverallScore),
		DimensionScores: buildDimensionScores(parsed.Dimensions),
		Strengths:       parsed.Strengths,
		Weaknesses:      parsed.Weaknesses,
		UniquePatterns:  parsed.UniquePatterns,
	}
}

// Compare runs the cross-URL comparison pass over desktop-viewport analyses.
//
// The pass only happens when at least two desktop analyses carry a numeric
// score; mobile-only batches never trigger it. Any failure (network error,
// malformed reply) returns nil: comparison is an enrichment, never a reason
// to fail the run.
func (e *Engine) Compare(ctx context.Context, analyses []*model.Analysis) *model.ComparisonResult {
	desktop := make([]*model.Analysis, 0, len(analyses))
	for _, a := range analyses {
		if a.Viewport == config.DefaultViewport && a.Scored() {
			desktop = append(desktop, a)
		}
	}

	if len(desktop) < 2 {
		e.logger.Debug("skipping comparison, fewer than two scored desktop analyses",
			"count", len(desktop),
		)
		return nil
	}

	if err := e.gate.Wait(ctx); err != nil {
		return nil
	}

	reply, err := e.client.Complete(ctx, buildComparisonPrompt(desktop))
	if err != nil {
		e.logger.Warn("comparison call failed", "error", err)
		return nil
	}

	extracted := ExtractJSON(reply)
	if extracted == "" {
		e.logger.Warn("no JSON object found in comparison reply")
		return nil
	}

	var parsed comparisonResponse
	if err := json.Unmarshal([]byte(extracted), &parsed); err != nil {
		e.logger.Warn("parsing comparison reply failed", "error", err)
		return nil
	}

	result := &model.ComparisonResult{
		Winner:          parsed.Winner,
		KeyDifferences:  parsed.KeyDifferences,
		Recommendations: parsed.Recommendations,
	}
	for _, r := range parsed.Rankings {
		result.Rankings = append(result.Rankings, model.RankedURL{
			URL:           r.URL,
			Score:         clampScore(r.Score),
			Justification: r.Justification,
		})
	}

	return result
}

// buildDimensionScores converts parsed dimension verdicts to model types.
func buildDimensionScores(dims map[string]dimensionResp) map[string]model.DimensionScore {
	scores := make(map[string]model.DimensionScore, len(dims))
	for id, d := range dims {
		scores[id] = model.DimensionScore{
			DimensionID: id,
			Score:       clampScore(d.Score),
			Findings:    d.Findings,
			Highlights:  d.Highlights,
		}
	}
	return scores
}

// clampScore forces a model-supplied score into the valid range.
// Models occasionally return 0 or 10-scale values despite instructions;
// clamping keeps the record well-formed without discarding the analysis.
func clampScore(s int) int {
	if s < model.MinScore {
		return model.MinScore
	}
	if s > model.MaxScore {
		return model.MaxScore
	}
	return s
}
