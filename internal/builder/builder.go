// Package builder turns a raw feed into a published dataset file. The file
// is written under a temporary name next to the target and renamed into
// place only once it is complete, so readers never see a partial dataset.
package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"wayfinder.transit.dev/internal/feed"
	"wayfinder.transit.dev/internal/logging"
	"wayfinder.transit.dev/internal/patterns"
	"wayfinder.transit.dev/transitdb"
)

// Options configures a build.
type Options struct {
	FeedPath string // zip archive or extracted directory
	OutPath  string // dataset file to publish
	Policy   patterns.SelectionPolicy
	Strict   bool // parse with the full GTFS parser instead of the lenient reader
	Logger   *slog.Logger
}

// Result describes a published dataset.
type Result struct {
	Metadata transitdb.Metadata
	Stats    patterns.Stats
	Counts   map[string]int
	Warnings []string
	Duration time.Duration
}

// Build reads the feed, builds the pattern dataset and publishes it at
// opts.OutPath, replacing any previous file. On failure the previous file is
// left untouched.
func Build(ctx context.Context, opts Options) (result *Result, err error) {
	if opts.FeedPath == "" {
		return nil, errors.New("feed path is required")
	}
	if opts.OutPath == "" {
		return nil, errors.New("output path is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	policy := opts.Policy
	if policy == nil {
		policy = patterns.FirstEncountered
	}

	startTime := time.Now()

	f, err := readFeed(ctx, opts)
	if err != nil {
		return nil, err
	}
	for _, w := range f.Warnings {
		logger.Warn("feed warning", slog.String("warning", w))
	}

	ds, stats := patterns.Build(f, policy)

	checksum, err := feed.Checksum(opts.FeedPath)
	if err != nil {
		return nil, fmt.Errorf("checksum feed: %w", err)
	}

	buildID := uuid.New().String()
	meta := transitdb.Metadata{
		BuildID:          buildID,
		BuiltAt:          time.Now().UTC().Truncate(time.Second),
		FeedSource:       filepath.Base(opts.FeedPath),
		FeedSHA256:       checksum,
		Policy:           policy.Name(),
		RouteCount:       int64(len(ds.Routes)),
		StopCount:        int64(len(ds.Stops)),
		PatternCount:     int64(len(ds.Patterns)),
		PatternStopCount: int64(len(ds.PatternStops)),
		StopRouteCount:   int64(len(ds.StopRoutes)),
	}

	if err := os.MkdirAll(filepath.Dir(opts.OutPath), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	tmpPath := fmt.Sprintf("%s.building-%s", opts.OutPath, buildID)
	defer func() {
		if err != nil {
			removeArtifacts(tmpPath, logger)
		}
	}()

	counts, err := writeDataset(ctx, tmpPath, ds, meta, logger)
	if err != nil {
		return nil, err
	}

	if err := os.Rename(tmpPath, opts.OutPath); err != nil {
		return nil, fmt.Errorf("publish dataset: %w", err)
	}

	result = &Result{
		Metadata: meta,
		Stats:    stats,
		Counts:   counts,
		Warnings: f.Warnings,
		Duration: time.Since(startTime),
	}

	logging.LogOperation(logger, "dataset_built",
		slog.String("build_id", buildID),
		slog.String("path", opts.OutPath),
		slog.String("policy", policy.Name()),
		slog.Int("trips", stats.Trips),
		slog.Int("groups", stats.Groups),
		slog.Int("skipped_empty_groups", stats.SkippedEmpty),
		slog.Int("patterns", stats.Patterns),
		slog.Int("pattern_stops", stats.PatternStops),
		slog.Int("index_rows", stats.IndexRows),
		slog.Int("warnings", len(f.Warnings)),
		slog.Duration("duration", result.Duration))

	return result, nil
}

func readFeed(ctx context.Context, opts Options) (*feed.Feed, error) {
	if opts.Strict {
		f, err := feed.ParseStrict(opts.FeedPath)
		if err != nil {
			return nil, fmt.Errorf("strict parse: %w", err)
		}
		return f, nil
	}

	f, err := feed.ReadArchive(ctx, opts.FeedPath)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	return f, nil
}

func writeDataset(ctx context.Context, path string, ds transitdb.Dataset, meta transitdb.Metadata, logger *slog.Logger) (counts map[string]int, err error) {
	client, err := transitdb.Create(transitdb.NewConfig(path, false))
	if err != nil {
		return nil, fmt.Errorf("create dataset: %w", err)
	}
	defer logging.HandleDeferredError(&err, client.Close, logger, "close_dataset")

	if err := client.InsertDataset(ctx, ds, meta); err != nil {
		return nil, err
	}

	counts, err = client.TableCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count dataset rows: %w", err)
	}
	return counts, nil
}

func removeArtifacts(path string, logger *slog.Logger) {
	for _, p := range []string{path, path + "-journal", path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			logging.LogError(logger, "failed to remove partial dataset", err, slog.String("path", p))
		}
	}
}
