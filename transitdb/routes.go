package transitdb

import (
	"context"
	"database/sql"
)

const routeColumns = `route_id, route_short_name, route_long_name, mode, route_color`

func scanRoute(scanner interface{ Scan(...any) error }) (Route, error) {
	var i Route
	var color sql.NullString
	err := scanner.Scan(
		&i.ID,
		&i.ShortName,
		&i.LongName,
		&i.Mode,
		&color,
	)
	i.Color = color.String
	return i, err
}

func scanRoutes(rows *sql.Rows) ([]Route, error) {
	defer rows.Close() // nolint:errcheck
	var items []Route
	for rows.Next() {
		i, err := scanRoute(rows)
		if err != nil {
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

const getRoute = `-- name: GetRoute :one
SELECT ` + routeColumns + `
FROM routes
WHERE route_id = ?
`

func (q *Queries) GetRoute(ctx context.Context, id string) (Route, error) {
	row := q.db.QueryRowContext(ctx, getRoute, id)
	return scanRoute(row)
}

const getRoutesByShortName = `-- name: GetRoutesByShortName :many
SELECT ` + routeColumns + `
FROM routes
WHERE route_short_name = ?
ORDER BY route_id
`

func (q *Queries) GetRoutesByShortName(ctx context.Context, shortName string) ([]Route, error) {
	rows, err := q.db.QueryContext(ctx, getRoutesByShortName, shortName)
	if err != nil {
		return nil, err
	}
	return scanRoutes(rows)
}

const listRoutes = `-- name: ListRoutes :many
SELECT ` + routeColumns + `
FROM routes
WHERE (? = '' OR mode = ?)
ORDER BY length(route_short_name), route_short_name, route_id
LIMIT ?
`

type ListRoutesParams struct {
	Mode  Mode // blank for every mode
	Limit int64
}

func (q *Queries) ListRoutes(ctx context.Context, arg ListRoutesParams) ([]Route, error) {
	rows, err := q.db.QueryContext(ctx, listRoutes, arg.Mode, arg.Mode, arg.Limit)
	if err != nil {
		return nil, err
	}
	return scanRoutes(rows)
}

const searchRoutes = `-- name: SearchRoutes :many
SELECT ` + routeColumns + `
FROM routes
WHERE (? = '' OR mode = ?)
  AND (lower(route_short_name) LIKE ? ESCAPE '\' OR lower(route_long_name) LIKE ? ESCAPE '\')
ORDER BY
  CASE
    WHEN lower(route_short_name) = ? THEN 0
    WHEN lower(route_short_name) LIKE ? ESCAPE '\' THEN 1
    ELSE 2
  END,
  length(route_short_name),
  route_id
LIMIT ?
`

type SearchRoutesParams struct {
	Mode  Mode   // blank for every mode
	Text  string // matched case-insensitively against short and long names
	Limit int64
}

// SearchRoutes returns routes whose short or long name contains Text. Exact
// short-name matches rank first, then short-name prefixes, then shorter names.
func (q *Queries) SearchRoutes(ctx context.Context, arg SearchRoutesParams) ([]Route, error) {
	text := FoldASCII(arg.Text)
	contains := containsPattern(text)
	rows, err := q.db.QueryContext(ctx, searchRoutes,
		arg.Mode, arg.Mode,
		contains, contains,
		text, prefixPattern(text),
		arg.Limit,
	)
	if err != nil {
		return nil, err
	}
	return scanRoutes(rows)
}
