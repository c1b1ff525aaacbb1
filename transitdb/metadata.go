package transitdb

import (
	"context"
	"time"
)

const upsertMetadata = `-- name: UpsertMetadata :exec
INSERT OR REPLACE INTO dataset_metadata (
    id, build_id, built_at, feed_source, feed_sha256, policy,
    route_count, stop_count, pattern_count, pattern_stop_count, stop_route_count
) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) UpsertMetadata(ctx context.Context, arg Metadata) error {
	_, err := q.db.ExecContext(ctx, upsertMetadata,
		arg.BuildID,
		arg.BuiltAt.UTC().Format(time.RFC3339),
		arg.FeedSource,
		arg.FeedSHA256,
		arg.Policy,
		arg.RouteCount,
		arg.StopCount,
		arg.PatternCount,
		arg.PatternStopCount,
		arg.StopRouteCount,
	)
	return err
}

const getMetadata = `-- name: GetMetadata :one
SELECT
    build_id, built_at, feed_source, feed_sha256, policy,
    route_count, stop_count, pattern_count, pattern_stop_count, stop_route_count
FROM dataset_metadata
WHERE id = 1
`

func (q *Queries) GetMetadata(ctx context.Context) (Metadata, error) {
	row := q.db.QueryRowContext(ctx, getMetadata)
	var i Metadata
	var builtAt string
	err := row.Scan(
		&i.BuildID,
		&builtAt,
		&i.FeedSource,
		&i.FeedSHA256,
		&i.Policy,
		&i.RouteCount,
		&i.StopCount,
		&i.PatternCount,
		&i.PatternStopCount,
		&i.StopRouteCount,
	)
	if err != nil {
		return i, err
	}
	i.BuiltAt, err = time.Parse(time.RFC3339, builtAt)
	return i, err
}
