// Package lookup resolves rider-facing route and stop strings to dataset
// rows and answers the text and location searches built on them.
package lookup

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"wayfinder.transit.dev/transitdb"
)

const (
	// MinQueryLength is the shortest stop search accepted, in characters.
	MinQueryLength = 2

	MaxStopResults  = 20
	MaxRouteResults = 100

	// DefaultRadiusMeters applies when a location search gives no radius.
	DefaultRadiusMeters = 1000.0
)

// Service answers lookups against one read-only dataset. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	queries *transitdb.Queries
}

func New(queries *transitdb.Queries) *Service {
	return &Service{queries: queries}
}

// GetStop resolves a stop id.
func (s *Service) GetStop(ctx context.Context, id string) (transitdb.Stop, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return transitdb.Stop{}, Invalid("id", "stop id is required")
	}

	stop, err := s.queries.GetStop(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return transitdb.Stop{}, notFound("stop", id)
	}
	if err != nil {
		return transitdb.Stop{}, err
	}
	return stop, nil
}
