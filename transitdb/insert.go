package transitdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"wayfinder.transit.dev/internal/logging"
)

const (
	insertRoute       = `INSERT INTO routes (route_id, route_short_name, route_long_name, mode, route_color) VALUES (?, ?, ?, ?, ?)`
	insertStop        = `INSERT INTO stops (stop_id, stop_name, stop_lat, stop_lon, kind) VALUES (?, ?, ?, ?, ?)`
	insertPattern     = `INSERT INTO direction_patterns (pattern_id, route_id, direction, headsign, first_stop_id, last_stop_id, stop_count) VALUES (?, ?, ?, ?, ?, ?, ?)`
	insertPatternStop = `INSERT INTO pattern_stops (pattern_id, stop_id, sequence) VALUES (?, ?, ?)`
	insertStopRoute   = `INSERT OR IGNORE INTO stop_route_index (stop_id, route_id, direction) VALUES (?, ?, ?)`
)

// InsertDataset writes a complete dataset and its metadata in a single
// transaction. Either everything is written or nothing is.
func (c *Client) InsertDataset(ctx context.Context, ds Dataset, meta Metadata) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer logging.SafeRollbackWithLogging(tx, slog.Default(), "insert_dataset")

	err = bulkInsert(ctx, tx, insertRoute, ds.Routes, func(r Route) []any {
		return []any{r.ID, r.ShortName, r.LongName, r.Mode, toNullString(r.Color)}
	})
	if err != nil {
		return fmt.Errorf("unable to insert routes: %w", err)
	}

	err = bulkInsert(ctx, tx, insertStop, ds.Stops, func(s Stop) []any {
		return []any{s.ID, s.Name, s.Lat, s.Lon, s.Kind}
	})
	if err != nil {
		return fmt.Errorf("unable to insert stops: %w", err)
	}

	err = bulkInsert(ctx, tx, insertPattern, ds.Patterns, func(p DirectionPattern) []any {
		return []any{p.ID, p.RouteID, p.Direction, p.Headsign, p.FirstStopID, p.LastStopID, p.StopCount}
	})
	if err != nil {
		return fmt.Errorf("unable to insert direction patterns: %w", err)
	}

	err = bulkInsert(ctx, tx, insertPatternStop, ds.PatternStops, func(ps PatternStop) []any {
		return []any{ps.PatternID, ps.StopID, ps.Sequence}
	})
	if err != nil {
		return fmt.Errorf("unable to insert pattern stops: %w", err)
	}

	err = bulkInsert(ctx, tx, insertStopRoute, ds.StopRoutes, func(e StopRouteEntry) []any {
		return []any{e.StopID, e.RouteID, e.Direction}
	})
	if err != nil {
		return fmt.Errorf("unable to insert stop route index: %w", err)
	}

	if err := c.Queries.WithTx(tx).UpsertMetadata(ctx, meta); err != nil {
		return fmt.Errorf("unable to record dataset metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	if c.config.verbose {
		slog.Info("inserted dataset",
			slog.Int("routes", len(ds.Routes)),
			slog.Int("stops", len(ds.Stops)),
			slog.Int("patterns", len(ds.Patterns)),
			slog.Int("pattern_stops", len(ds.PatternStops)),
			slog.Int("stop_route_index", len(ds.StopRoutes)))
	}
	return nil
}

func bulkInsert[T any](ctx context.Context, tx *sql.Tx, query string, items []T, args func(T) []any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close() // nolint:errcheck

	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, args(item)...); err != nil {
			return err
		}
	}
	return nil
}
