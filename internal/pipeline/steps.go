package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/uibench/uibench/internal/capture"
	"github.com/uibench/uibench/internal/database"
	"github.com/uibench/uibench/internal/model"
	"github.com/uibench/uibench/internal/preset"
	"github.com/uibench/uibench/internal/report"
	"github.com/uibench/uibench/internal/scoring"
)

// ErrAllCapturesFailed is returned by the capture step when not a single
// (URL, viewport) pair produced screenshots. It is the only fatal outcome
// past preset resolution.
var ErrAllCapturesFailed = errors.New("every capture in the batch failed")

// ResolvePresetStep resolves the requested rubric preset before any
// side-effecting work starts.
type ResolvePresetStep struct {
	resolver *preset.Resolver
}

// NewResolvePresetStep creates the preset resolution step.
func NewResolvePresetStep(resolver *preset.Resolver) *ResolvePresetStep {
	return &ResolvePresetStep{resolver: resolver}
}

// Name returns the step name.
func (s *ResolvePresetStep) Name() string {
	return "resolve_preset"
}

// Do resolves the preset named on the run. An unknown name falls back to
// the default inside the resolver; an error here means the default itself
// is unavailable, which is fatal.
func (s *ResolvePresetStep) Do(_ context.Context, run *model.RunReport) error {
	p, err := s.resolver.Resolve(run.PresetName)
	if err != nil {
		return fmt.Errorf("resolving preset %q: %w", run.PresetName, err)
	}

	run.Preset = p
	run.PresetName = p.Name
	return nil
}

// Capturer is the browser surface the capture step drives.
// *capture.Engine satisfies it; tests substitute a double.
type Capturer interface {
	Start(ctx context.Context) error
	Close()
	CaptureAll(ctx context.Context, urls, viewports []string) ([]*model.CaptureResult, error)
}

var _ Capturer = (*capture.Engine)(nil)

// CaptureStep drives the browser through every (URL, viewport) pair.
// It owns the browser lifecycle: one process for the whole batch.
type CaptureStep struct {
	engine Capturer
}

// NewCaptureStep creates the capture step around a configured engine.
func NewCaptureStep(engine Capturer) *CaptureStep {
	return &CaptureStep{engine: engine}
}

// Name returns the step name.
func (s *CaptureStep) Name() string {
	return "capture"
}

// Do captures the whole batch. Individual failures are recorded on the
// run; the step is fatal only when nothing at all was captured.
func (s *CaptureStep) Do(ctx context.Context, run *model.RunReport) error {
	if err := s.engine.Start(ctx); err != nil {
		return fmt.Errorf("starting browser: %w", err)
	}
	defer s.engine.Close()

	results, err := s.engine.CaptureAll(ctx, run.URLs, run.Viewports)
	if err != nil {
		return fmt.Errorf("capturing batch: %w", err)
	}
	run.CaptureResults = results

	if len(run.SuccessfulCaptures()) == 0 {
		return ErrAllCapturesFailed
	}
	return nil
}

// ScoreStep sends each successful capture to the vision model and, when
// comparison mode is on, runs the cross-URL comparison afterwards.
type ScoreStep struct {
	engine *scoring.Engine
}

// NewScoreStep creates the scoring step around a configured engine.
func NewScoreStep(engine *scoring.Engine) *ScoreStep {
	return &ScoreStep{engine: engine}
}

// Name returns the step name.
func (s *ScoreStep) Name() string {
	return "score"
}

// Do scores the batch. Per-item scoring failures become failure-variant
// analyses; a failed comparison leaves Comparison nil. Neither is fatal.
func (s *ScoreStep) Do(ctx context.Context, run *model.RunReport) error {
	analyses, err := s.engine.ScoreAll(ctx, run.CaptureResults, run.Preset)
	if err != nil {
		return fmt.Errorf("scoring batch: %w", err)
	}
	run.Analyses = analyses

	if run.CompareMode {
		run.Comparison = s.engine.Compare(ctx, run.Analyses)
	}
	return nil
}

// ReportStep renders and persists the HTML document and metadata record.
type ReportStep struct {
	writer *report.Writer
}

// NewReportStep creates the report emission step.
func NewReportStep(writer *report.Writer) *ReportStep {
	return &ReportStep{writer: writer}
}

// Name returns the step name.
func (s *ReportStep) Name() string {
	return "report"
}

// Do writes both run outputs and records their paths on the run.
func (s *ReportStep) Do(_ context.Context, run *model.RunReport) error {
	return s.writer.Write(run)
}

// IndexStep folds the run's metadata record into the rolling index and
// saves it to the run-history store.
type IndexStep struct {
	index   *report.Index
	history *database.RunDB
	logger  *slog.Logger
}

// IndexStepOption configures an IndexStep.
type IndexStepOption func(*IndexStep)

// WithHistory attaches the run-history store. Without it the step only
// maintains the rolling index.
func WithHistory(history *database.RunDB) IndexStepOption {
	return func(s *IndexStep) {
		s.history = history
	}
}

// WithIndexStepLogger sets a custom logger for the index step.
func WithIndexStepLogger(logger *slog.Logger) IndexStepOption {
	return func(s *IndexStep) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewIndexStep creates the indexing step.
func NewIndexStep(index *report.Index, opts ...IndexStepOption) *IndexStep {
	s := &IndexStep{
		index:  index,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *IndexStep) Name() string {
	return "index"
}

// Do appends the record to the rolling index, then saves it to history.
// A history store failure is logged and swallowed: the index and the
// written report files are the run's contract, the store is a convenience.
func (s *IndexStep) Do(ctx context.Context, run *model.RunReport) error {
	if run.Metadata == nil {
		return errors.New("index step ran before report step")
	}

	if err := s.index.Append(run.Metadata); err != nil {
		return fmt.Errorf("updating rolling index: %w", err)
	}

	if s.history != nil {
		if err := s.history.SaveRun(ctx, run.Metadata); err != nil {
			s.logger.Warn("failed to save run to history store", "run_id", run.RunID, "error", err)
		}
	}
	return nil
}
