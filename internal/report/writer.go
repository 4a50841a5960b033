package report

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/uibench/uibench/internal/model"
)

// Writer emits the HTML document and metadata record for a run.
type Writer struct {
	// outputDir is the directory the files are written into.
	outputDir string

	// logger records per-file write progress.
	logger *slog.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithWriterLogger sets the logger. The default discards everything.
func WithWriterLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWriter creates a Writer targeting the given output directory.
func NewWriter(outputDir string, opts ...WriterOption) *Writer {
	w := &Writer{
		outputDir: outputDir,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write renders and persists both run outputs, then records the produced
// paths and the derived metadata on the run itself.
//
// Fold screenshots that cannot be read are logged and rendered without an
// image rather than failing the whole report.
func (w *Writer) Write(run *model.RunReport) error {
	if err := os.MkdirAll(w.outputDir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	document := RenderHTML(run, w.loadFoldImages(run.SuccessfulCaptures()))
	documentPath := filepath.Join(w.outputDir, run.RunID+"-report.html")
	if err := os.WriteFile(documentPath, []byte(document), 0o640); err != nil {
		return fmt.Errorf("writing report document: %w", err)
	}
	w.logger.Info("wrote report document", "path", documentPath)

	record := BuildMetadataRecord(run, w.outputDir)
	metadataPath := filepath.Join(w.outputDir, run.RunID+"-metadata.json")
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metadata record: %w", err)
	}
	if err := os.WriteFile(metadataPath, append(data, '\n'), 0o640); err != nil {
		return fmt.Errorf("writing metadata record: %w", err)
	}
	w.logger.Info("wrote metadata record", "path", metadataPath)

	run.DocumentPath = documentPath
	run.MetadataPath = metadataPath
	run.Metadata = record

	return nil
}

// loadFoldImages reads the fold screenshot of each successful capture,
// keyed by file path.
func (w *Writer) loadFoldImages(captures []*model.CaptureResult) map[string][]byte {
	images := make(map[string][]byte, len(captures))
	for _, c := range captures {
		data, err := os.ReadFile(c.Artifacts.FoldPath)
		if err != nil {
			w.logger.Warn("fold screenshot unreadable, rendering without image",
				"path", c.Artifacts.FoldPath, "error", err)
			continue
		}
		images[c.Artifacts.FoldPath] = data
	}
	return images
}
