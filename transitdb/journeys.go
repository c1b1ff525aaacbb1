package transitdb

import (
	"context"
	"database/sql"
)

const findDirectCandidates = `-- name: FindDirectCandidates :many
SELECT
    dp.pattern_id,
    dp.route_id,
    dp.direction,
    dp.headsign,
    a.sequence AS from_sequence,
    b.sequence AS to_sequence,
    r.route_short_name,
    r.route_long_name,
    r.mode,
    r.route_color
FROM pattern_stops a
JOIN pattern_stops b ON b.pattern_id = a.pattern_id AND b.sequence > a.sequence
JOIN direction_patterns dp ON dp.pattern_id = a.pattern_id
LEFT JOIN routes r ON r.route_id = dp.route_id
WHERE a.stop_id = ? AND b.stop_id = ?
ORDER BY (b.sequence - a.sequence), dp.route_id, dp.direction, a.sequence
`

type FindDirectCandidatesRow struct {
	PatternID    string
	RouteID      string
	Direction    Direction
	Headsign     string
	FromSequence int64
	ToSequence   int64
	ShortName    sql.NullString
	LongName     sql.NullString
	Mode         sql.NullString
	Color        sql.NullString
}

// FindDirectCandidates lists every (pattern, from position, to position)
// where the from stop precedes the to stop on the same pattern, fewest
// intervening stops first. A pattern visiting a stop twice yields one row
// per ordered pair.
func (q *Queries) FindDirectCandidates(ctx context.Context, fromStopID, toStopID string) ([]FindDirectCandidatesRow, error) {
	rows, err := q.db.QueryContext(ctx, findDirectCandidates, fromStopID, toStopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck
	var items []FindDirectCandidatesRow
	for rows.Next() {
		var i FindDirectCandidatesRow
		if err := rows.Scan(
			&i.PatternID,
			&i.RouteID,
			&i.Direction,
			&i.Headsign,
			&i.FromSequence,
			&i.ToSequence,
			&i.ShortName,
			&i.LongName,
			&i.Mode,
			&i.Color,
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

// ReachRow is one stop reachable by riding a single pattern from (or to) an
// anchor stop, together with the route that makes the ride.
type ReachRow struct {
	PatternID      string
	RouteID        string
	Direction      Direction
	Headsign       string
	AnchorSequence int64
	StopID         string
	StopSequence   int64
	StopName       sql.NullString
	ShortName      sql.NullString
	LongName       sql.NullString
	Mode           sql.NullString
	Color          sql.NullString
}

const listStopsReachableFrom = `-- name: ListStopsReachableFrom :many
SELECT
    dp.pattern_id,
    dp.route_id,
    dp.direction,
    dp.headsign,
    a.sequence,
    b.stop_id,
    b.sequence,
    s.stop_name,
    r.route_short_name,
    r.route_long_name,
    r.mode,
    r.route_color
FROM pattern_stops a
JOIN pattern_stops b ON b.pattern_id = a.pattern_id AND b.sequence > a.sequence
JOIN direction_patterns dp ON dp.pattern_id = a.pattern_id
LEFT JOIN routes r ON r.route_id = dp.route_id
LEFT JOIN stops s ON s.stop_id = b.stop_id
WHERE a.stop_id = ?
ORDER BY dp.route_id, dp.direction, a.sequence, b.sequence
`

// ListStopsReachableFrom returns every stop after stopID on every pattern
// serving it, in route, direction and ride order.
func (q *Queries) ListStopsReachableFrom(ctx context.Context, stopID string) ([]ReachRow, error) {
	return q.listReach(ctx, listStopsReachableFrom, stopID)
}

const listStopsReaching = `-- name: ListStopsReaching :many
SELECT
    dp.pattern_id,
    dp.route_id,
    dp.direction,
    dp.headsign,
    a.sequence,
    b.stop_id,
    b.sequence,
    s.stop_name,
    r.route_short_name,
    r.route_long_name,
    r.mode,
    r.route_color
FROM pattern_stops a
JOIN pattern_stops b ON b.pattern_id = a.pattern_id AND b.sequence < a.sequence
JOIN direction_patterns dp ON dp.pattern_id = a.pattern_id
LEFT JOIN routes r ON r.route_id = dp.route_id
LEFT JOIN stops s ON s.stop_id = b.stop_id
WHERE a.stop_id = ?
ORDER BY dp.route_id, dp.direction, a.sequence, b.sequence
`

// ListStopsReaching returns every stop before stopID on every pattern
// serving it, in route, direction and ride order.
func (q *Queries) ListStopsReaching(ctx context.Context, stopID string) ([]ReachRow, error) {
	return q.listReach(ctx, listStopsReaching, stopID)
}

func (q *Queries) listReach(ctx context.Context, query, stopID string) ([]ReachRow, error) {
	rows, err := q.db.QueryContext(ctx, query, stopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck
	var items []ReachRow
	for rows.Next() {
		var i ReachRow
		if err := rows.Scan(
			&i.PatternID,
			&i.RouteID,
			&i.Direction,
			&i.Headsign,
			&i.AnchorSequence,
			&i.StopID,
			&i.StopSequence,
			&i.StopName,
			&i.ShortName,
			&i.LongName,
			&i.Mode,
			&i.Color,
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
