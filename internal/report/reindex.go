package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/uibench/uibench/internal/model"
)

// metadataSuffix identifies metadata record files in the output directory.
const metadataSuffix = "-metadata.json"

// defaultScanConcurrency bounds parallel metadata reads during a rebuild.
const defaultScanConcurrency = 8

// Rebuild scans dir for metadata records and rewrites the index from
// scratch, newest first, truncated to the index cap. Unparseable record
// files are logged and skipped; only the final write can fail.
func (idx *Index) Rebuild(ctx context.Context, dir string) (int, error) {
	records, err := ScanMetadataFiles(ctx, dir, defaultScanConcurrency, idx.logger)
	if err != nil {
		return 0, err
	}

	if err := idx.Write(records); err != nil {
		return 0, err
	}
	if len(records) > idx.maxEntries {
		return idx.maxEntries, nil
	}
	return len(records), nil
}

// ScanMetadataFiles reads every metadata record under dir, in parallel up
// to the given concurrency, and returns them sorted newest first.
func ScanMetadataFiles(ctx context.Context, dir string, concurrency int, logger *slog.Logger) ([]*model.MetadataRecord, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if concurrency < 1 {
		concurrency = 1
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading output directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), metadataSuffix) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	var mu sync.Mutex
	records := make([]*model.MetadataRecord, 0, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			data, err := os.ReadFile(path)
			if err != nil {
				logger.Warn("skipping unreadable metadata file", "path", path, "error", err)
				return nil
			}

			var record model.MetadataRecord
			if err := json.Unmarshal(data, &record); err != nil {
				logger.Warn("skipping corrupt metadata file", "path", path, "error", err)
				return nil
			}
			if record.RunID == "" {
				logger.Warn("skipping metadata file without run id", "path", path)
				return nil
			}

			mu.Lock()
			records = append(records, &record)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})

	return records, nil
}
