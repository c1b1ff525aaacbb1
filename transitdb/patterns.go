package transitdb

import (
	"context"
	"database/sql"
)

const patternColumns = `pattern_id, route_id, direction, headsign, first_stop_id, last_stop_id, stop_count`

func scanPatterns(rows *sql.Rows) ([]DirectionPattern, error) {
	defer rows.Close() // nolint:errcheck
	var items []DirectionPattern
	for rows.Next() {
		var i DirectionPattern
		if err := rows.Scan(
			&i.ID,
			&i.RouteID,
			&i.Direction,
			&i.Headsign,
			&i.FirstStopID,
			&i.LastStopID,
			&i.StopCount,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listPatterns = `-- name: ListPatterns :many
SELECT ` + patternColumns + `
FROM direction_patterns
ORDER BY route_id, direction
`

func (q *Queries) ListPatterns(ctx context.Context) ([]DirectionPattern, error) {
	rows, err := q.db.QueryContext(ctx, listPatterns)
	if err != nil {
		return nil, err
	}
	return scanPatterns(rows)
}

const listPatternsForRoute = `-- name: ListPatternsForRoute :many
SELECT ` + patternColumns + `
FROM direction_patterns
WHERE route_id = ?
ORDER BY direction
`

func (q *Queries) ListPatternsForRoute(ctx context.Context, routeID string) ([]DirectionPattern, error) {
	rows, err := q.db.QueryContext(ctx, listPatternsForRoute, routeID)
	if err != nil {
		return nil, err
	}
	return scanPatterns(rows)
}

const listPatternStops = `-- name: ListPatternStops :many
SELECT
    ps.sequence,
    ps.stop_id,
    s.stop_name,
    s.stop_lat,
    s.stop_lon,
    s.kind
FROM pattern_stops ps
LEFT JOIN stops s ON s.stop_id = ps.stop_id
WHERE ps.pattern_id = ?
ORDER BY ps.sequence
`

// PatternStopRow is a pattern stop with the stop's own attributes. The stop
// columns are null when the pattern references a stop missing from stops.
type PatternStopRow struct {
	Sequence int64
	StopID   string
	Name     sql.NullString
	Lat      sql.NullFloat64
	Lon      sql.NullFloat64
	Kind     sql.NullString
}

func (q *Queries) ListPatternStops(ctx context.Context, patternID string) ([]PatternStopRow, error) {
	rows, err := q.db.QueryContext(ctx, listPatternStops, patternID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck
	var items []PatternStopRow
	for rows.Next() {
		var i PatternStopRow
		if err := rows.Scan(
			&i.Sequence,
			&i.StopID,
			&i.Name,
			&i.Lat,
			&i.Lon,
			&i.Kind,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listRoutesForStop = `-- name: ListRoutesForStop :many
SELECT
    sri.route_id,
    sri.direction,
    r.route_short_name,
    r.route_long_name,
    r.mode,
    r.route_color,
    dp.headsign
FROM stop_route_index sri
LEFT JOIN routes r ON r.route_id = sri.route_id
LEFT JOIN direction_patterns dp ON dp.route_id = sri.route_id AND dp.direction = sri.direction
WHERE sri.stop_id = ?
ORDER BY sri.route_id, sri.direction
`

type RouteForStopRow struct {
	RouteID   string
	Direction Direction
	ShortName sql.NullString
	LongName  sql.NullString
	Mode      sql.NullString
	Color     sql.NullString
	Headsign  sql.NullString
}

// ListRoutesForStop reads the stop to route index for one stop.
func (q *Queries) ListRoutesForStop(ctx context.Context, stopID string) ([]RouteForStopRow, error) {
	rows, err := q.db.QueryContext(ctx, listRoutesForStop, stopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck
	var items []RouteForStopRow
	for rows.Next() {
		var i RouteForStopRow
		if err := rows.Scan(
			&i.RouteID,
			&i.Direction,
			&i.ShortName,
			&i.LongName,
			&i.Mode,
			&i.Color,
			&i.Headsign,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listStopRouteIndex = `-- name: ListStopRouteIndex :many
SELECT stop_id, route_id, direction
FROM stop_route_index
ORDER BY stop_id, route_id, direction
`

func (q *Queries) ListStopRouteIndex(ctx context.Context) ([]StopRouteEntry, error) {
	rows, err := q.db.QueryContext(ctx, listStopRouteIndex)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck
	var items []StopRouteEntry
	for rows.Next() {
		var i StopRouteEntry
		if err := rows.Scan(&i.StopID, &i.RouteID, &i.Direction); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
