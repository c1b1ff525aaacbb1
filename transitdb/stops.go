package transitdb

import (
	"context"
	"database/sql"
	"strings"
)

const stopColumns = `stop_id, stop_name, stop_lat, stop_lon, kind`

func scanStops(rows *sql.Rows) ([]Stop, error) {
	defer rows.Close() // nolint:errcheck
	var items []Stop
	for rows.Next() {
		var i Stop
		if err := rows.Scan(&i.ID, &i.Name, &i.Lat, &i.Lon, &i.Kind); err != nil {
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

const getStop = `-- name: GetStop :one
SELECT ` + stopColumns + `
FROM stops
WHERE stop_id = ?
`

func (q *Queries) GetStop(ctx context.Context, id string) (Stop, error) {
	row := q.db.QueryRowContext(ctx, getStop, id)
	var i Stop
	err := row.Scan(&i.ID, &i.Name, &i.Lat, &i.Lon, &i.Kind)
	return i, err
}

type SearchStopsParams struct {
	Tokens []string // ASCII-folded; every token must occur in the name
	Phrase string   // ASCII-folded full query, used for ranking only
	Limit  int64
}

// SearchStops matches stop names containing every token, in any order.
// Names starting with the first token rank first, then names containing the
// whole phrase, then the rest. Within a tier shorter names come first.
func (q *Queries) SearchStops(ctx context.Context, arg SearchStopsParams) ([]Stop, error) {
	if len(arg.Tokens) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	args := make([]interface{}, 0, len(arg.Tokens)+3)

	sb.WriteString("SELECT " + stopColumns + "\nFROM stops\nWHERE ")
	for i, tok := range arg.Tokens {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(`lower(stop_name) LIKE ? ESCAPE '\'`)
		args = append(args, containsPattern(tok))
	}
	sb.WriteString(`
ORDER BY
  CASE
    WHEN lower(stop_name) LIKE ? ESCAPE '\' THEN 0
    WHEN lower(stop_name) LIKE ? ESCAPE '\' THEN 1
    ELSE 2
  END,
  length(stop_name),
  stop_name,
  stop_id
LIMIT ?`)
	args = append(args, prefixPattern(arg.Tokens[0]), containsPattern(arg.Phrase), arg.Limit)

	rows, err := q.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	return scanStops(rows)
}

const listStopsInBounds = `-- name: ListStopsInBounds :many
SELECT ` + stopColumns + `
FROM stops
WHERE stop_lat BETWEEN ? AND ?
  AND stop_lon BETWEEN ? AND ?
ORDER BY
  ((stop_lat - ?) * (stop_lat - ?)) + ((stop_lon - ?) * ? * (stop_lon - ?) * ?),
  stop_id
LIMIT ?
`

type ListStopsInBoundsParams struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
	// Ordering centre and the longitude scale (cos of the centre latitude)
	// that makes degree differences comparable on both axes.
	Lat      float64
	Lon      float64
	LonScale float64
	Limit    int64
}

func (q *Queries) ListStopsInBounds(ctx context.Context, arg ListStopsInBoundsParams) ([]Stop, error) {
	rows, err := q.db.QueryContext(ctx, listStopsInBounds,
		arg.MinLat, arg.MaxLat,
		arg.MinLon, arg.MaxLon,
		arg.Lat, arg.Lat,
		arg.Lon, arg.LonScale, arg.Lon, arg.LonScale,
		arg.Limit,
	)
	if err != nil {
		return nil, err
	}
	return scanStops(rows)
}
