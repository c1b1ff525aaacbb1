package feed

import (
	"archive/zip"
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/sourcegraph/conc/pool"
)

// ReadArchive reads a feed from a zip archive or an extracted directory.
// Reading is lenient: a missing file yields no records for that entity and
// malformed numbers become zero. Both are reported in Feed.Warnings.
func ReadArchive(ctx context.Context, path string) (*Feed, error) {
	fsys, closeFn, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	return Read(ctx, fsys)
}

// Read decodes the feed files found at the root of fsys, one file per
// goroutine.
func Read(ctx context.Context, fsys fs.FS) (*Feed, error) {
	var (
		routes    []routeRecord
		stops     []stopRecord
		trips     []tripRecord
		stopTimes []stopTimeRecord

		mu       sync.Mutex
		warnings []string
	)
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		slog.Warn("feed warning", slog.String("warning", msg))
		mu.Lock()
		warnings = append(warnings, msg)
		mu.Unlock()
	}

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error { return decodeFile(ctx, fsys, "routes.txt", &routes, warn) })
	p.Go(func(ctx context.Context) error { return decodeFile(ctx, fsys, "stops.txt", &stops, warn) })
	p.Go(func(ctx context.Context) error { return decodeFile(ctx, fsys, "trips.txt", &trips, warn) })
	p.Go(func(ctx context.Context) error { return decodeFile(ctx, fsys, "stop_times.txt", &stopTimes, warn) })
	if err := p.Wait(); err != nil {
		return nil, err
	}

	f := &Feed{
		Routes:    make([]Route, 0, len(routes)),
		Stops:     make([]Stop, 0, len(stops)),
		Trips:     make([]Trip, 0, len(trips)),
		StopTimes: make([]StopTime, 0, len(stopTimes)),
	}

	var c coercer
	for _, r := range routes {
		f.Routes = append(f.Routes, r.toRoute(&c))
	}
	reportCoerced(&c, "routes.txt", warn)
	for _, r := range stops {
		f.Stops = append(f.Stops, r.toStop(&c))
	}
	reportCoerced(&c, "stops.txt", warn)
	for _, r := range trips {
		f.Trips = append(f.Trips, r.toTrip(&c))
	}
	reportCoerced(&c, "trips.txt", warn)
	for _, r := range stopTimes {
		f.StopTimes = append(f.StopTimes, r.toStopTime(&c))
	}
	reportCoerced(&c, "stop_times.txt", warn)

	f.Warnings = warnings
	return f, nil
}

func reportCoerced(c *coercer, file string, warn func(string, ...any)) {
	if c.coerced > 0 {
		warn("%s: %d malformed numeric values defaulted to 0", file, c.coerced)
	}
	c.coerced = 0
}

func decodeFile(ctx context.Context, fsys fs.FS, name string, out any, warn func(string, ...any)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		warn("%s: file missing, no records loaded", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close() // nolint:errcheck

	// Tolerate rows with missing or extra columns.
	r := csv.NewReader(skipBOM(f))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	err = gocsv.UnmarshalCSV(r, out)
	if errors.Is(err, gocsv.ErrEmptyCSVFile) {
		warn("%s: file empty, no records loaded", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = br.Discard(3)
	}
	return br
}

// openSource exposes a zip archive or a directory as an fs.FS. Archives
// that wrap every file in a single top-level folder are unwrapped.
func openSource(path string) (fs.FS, func(), error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("feed source: %w", err)
	}

	if info.IsDir() {
		return os.DirFS(path), func() {}, nil
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open feed archive %s: %w", path, err)
	}
	closeFn := func() { _ = zr.Close() }

	return unwrapSingleDir(zr), closeFn, nil
}

func unwrapSingleDir(fsys fs.FS) fs.FS {
	if _, err := fs.Stat(fsys, "stop_times.txt"); err == nil {
		return fsys
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil || len(entries) != 1 || !entries[0].IsDir() {
		return fsys
	}
	sub, err := fs.Sub(fsys, entries[0].Name())
	if err != nil {
		return fsys
	}
	return sub
}
