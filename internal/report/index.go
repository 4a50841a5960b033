package report

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/uibench/uibench/internal/config"
	"github.com/uibench/uibench/internal/model"
)

// Index maintains the rolling most-recent-first index of run metadata
// records. The dashboard reads this file; it must always contain valid
// JSON, so writes go through a temp file and rename.
type Index struct {
	// path is the index file location.
	path string

	// maxEntries caps the index length. Oldest entries fall off the end.
	maxEntries int

	// logger records index maintenance events.
	logger *slog.Logger
}

// IndexOption configures an Index.
type IndexOption func(*Index)

// WithMaxEntries overrides the entry cap.
func WithMaxEntries(n int) IndexOption {
	return func(idx *Index) {
		if n > 0 {
			idx.maxEntries = n
		}
	}
}

// WithIndexLogger sets the logger. The default discards everything.
func WithIndexLogger(logger *slog.Logger) IndexOption {
	return func(idx *Index) {
		if logger != nil {
			idx.logger = logger
		}
	}
}

// NewIndex creates an Index backed by the given file path.
func NewIndex(path string, opts ...IndexOption) *Index {
	idx := &Index{
		path:       path,
		maxEntries: config.DefaultIndexSize,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(idx)
	}

	return idx
}

// Append prepends the record to the index, truncates to the entry cap,
// and writes the result back.
//
// A missing or corrupt existing index is treated as empty: the index is a
// derived artifact, and losing stale entries is preferable to blocking a
// finished run. Corruption is logged so the operator can run reindex.
func (idx *Index) Append(record *model.MetadataRecord) error {
	records := idx.Read()

	merged := make([]*model.MetadataRecord, 0, len(records)+1)
	merged = append(merged, record)
	for _, existing := range records {
		// A rerun with the same identifier supersedes the old entry.
		if existing.RunID != record.RunID {
			merged = append(merged, existing)
		}
	}

	return idx.Write(merged)
}

// Read returns the current index entries, most recent first. A missing
// or unparseable file yields an empty slice.
func (idx *Index) Read() []*model.MetadataRecord {
	data, err := os.ReadFile(idx.path)
	if err != nil {
		if !os.IsNotExist(err) {
			idx.logger.Warn("index file unreadable, starting empty", "path", idx.path, "error", err)
		}
		return nil
	}

	var records []*model.MetadataRecord
	if err := json.Unmarshal(data, &records); err != nil {
		idx.logger.Warn("index file corrupt, starting empty", "path", idx.path, "error", err)
		return nil
	}

	return records
}

// Write replaces the index contents with the given records, truncated to
// the entry cap. The write is atomic with respect to concurrent readers.
func (idx *Index) Write(records []*model.MetadataRecord) error {
	if len(records) > idx.maxEntries {
		records = records[:idx.maxEntries]
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(idx.path), 0o750); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(idx.path), ".index-*.json")
	if err != nil {
		return fmt.Errorf("creating temp index: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp index: %w", err)
	}

	if err := os.Rename(tmpName, idx.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing index: %w", err)
	}

	idx.logger.Info("index updated", "path", idx.path, "entries", len(records))
	return nil
}
