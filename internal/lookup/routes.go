package lookup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/twpayne/go-polyline"
	"wayfinder.transit.dev/internal/utils"
	"wayfinder.transit.dev/transitdb"
)

// FindRoute resolves token by exact route id, then exact short name, then
// a substring of the short or long name. A non-blank mode restricts every
// step. Substring ties prefer an exact short name, then a short-name prefix,
// then the shortest short name, then the lowest route id.
func (s *Service) FindRoute(ctx context.Context, token string, mode transitdb.Mode) (transitdb.Route, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return transitdb.Route{}, Invalid("id", "route id or name is required")
	}

	route, err := s.queries.GetRoute(ctx, token)
	switch {
	case err == nil:
		if mode == "" || route.Mode == mode {
			return route, nil
		}
	case !errors.Is(err, sql.ErrNoRows):
		return transitdb.Route{}, fmt.Errorf("get route: %w", err)
	}

	byShortName, err := s.queries.GetRoutesByShortName(ctx, token)
	if err != nil {
		return transitdb.Route{}, fmt.Errorf("get routes by short name: %w", err)
	}
	for _, r := range byShortName {
		if mode == "" || r.Mode == mode {
			return r, nil
		}
	}

	matches, err := s.queries.SearchRoutes(ctx, transitdb.SearchRoutesParams{
		Mode:  mode,
		Text:  token,
		Limit: 1,
	})
	if err != nil {
		return transitdb.Route{}, fmt.Errorf("search routes: %w", err)
	}
	if len(matches) == 0 {
		return transitdb.Route{}, notFound("route", token)
	}
	return matches[0], nil
}

// SearchRoutes lists routes of the given mode (blank for all) whose names
// contain text (blank for all).
func (s *Service) SearchRoutes(ctx context.Context, mode transitdb.Mode, text string) ([]transitdb.Route, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.queries.ListRoutes(ctx, transitdb.ListRoutesParams{Mode: mode, Limit: MaxRouteResults})
	}
	return s.queries.SearchRoutes(ctx, transitdb.SearchRoutesParams{
		Mode:  mode,
		Text:  text,
		Limit: MaxRouteResults,
	})
}

// PatternStopView is one stop of a pattern. Missing is set when the pattern
// references a stop absent from the stop table; its other fields are blank.
type PatternStopView struct {
	Sequence int64
	StopID   string
	Name     string
	Lat      float64
	Lon      float64
	Kind     transitdb.StopKind
	Missing  bool
}

type PatternView struct {
	transitdb.DirectionPattern
	DirectionLabel string
	// Compass heading from the first to the last located stop.
	Compass  string
	Polyline string
	// Loop marks a circular pattern. Its direction label is still derived
	// from the feed direction and says nothing about travel sense.
	Loop  bool
	Stops []PatternStopView
}

type RouteDetail struct {
	Route    transitdb.Route
	Patterns []PatternView
}

// RouteDetail resolves token like FindRoute and returns the route with its
// patterns and their ordered stops.
func (s *Service) RouteDetail(ctx context.Context, token string, mode transitdb.Mode) (RouteDetail, error) {
	route, err := s.FindRoute(ctx, token, mode)
	if err != nil {
		return RouteDetail{}, err
	}

	patterns, err := s.queries.ListPatternsForRoute(ctx, route.ID)
	if err != nil {
		return RouteDetail{}, fmt.Errorf("list patterns for route %s: %w", route.ID, err)
	}

	detail := RouteDetail{Route: route, Patterns: make([]PatternView, 0, len(patterns))}
	for _, p := range patterns {
		rows, err := s.queries.ListPatternStops(ctx, p.ID)
		if err != nil {
			return RouteDetail{}, fmt.Errorf("list stops for pattern %s: %w", p.ID, err)
		}
		detail.Patterns = append(detail.Patterns, buildPatternView(p, rows))
	}
	return detail, nil
}

func buildPatternView(p transitdb.DirectionPattern, rows []transitdb.PatternStopRow) PatternView {
	view := PatternView{
		DirectionPattern: p,
		DirectionLabel:   p.Direction.Label(),
		Loop:             p.StopCount > 1 && p.FirstStopID == p.LastStopID,
		Stops:            make([]PatternStopView, 0, len(rows)),
	}

	var coords [][]float64
	for _, row := range rows {
		stop := PatternStopView{
			Sequence: row.Sequence,
			StopID:   row.StopID,
			Missing:  !row.Name.Valid,
		}
		if !stop.Missing {
			stop.Name = row.Name.String
			stop.Lat = row.Lat.Float64
			stop.Lon = row.Lon.Float64
			stop.Kind = transitdb.StopKind(row.Kind.String)
			coords = append(coords, []float64{stop.Lat, stop.Lon})
		}
		view.Stops = append(view.Stops, stop)
	}

	if len(coords) > 0 {
		view.Polyline = string(polyline.EncodeCoords(coords))
		first, last := coords[0], coords[len(coords)-1]
		view.Compass = utils.CompassDirection(first[0], first[1], last[0], last[1])
	}
	return view
}
