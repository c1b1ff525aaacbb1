package lookup

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"wayfinder.transit.dev/internal/utils"
	"wayfinder.transit.dev/transitdb"
)

// SearchStops finds stops whose names contain every whitespace-separated
// word of query, in any order. Case is ignored for ASCII letters only. When nothing matches
// a multi-word query the first word is searched alone.
func (s *Service) SearchStops(ctx context.Context, query string) ([]transitdb.Stop, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, Invalid("q", "query must be at least %d characters", MinQueryLength)
	}

	phrase := transitdb.FoldASCII(query)
	tokens := strings.Fields(phrase)

	stops, err := s.queries.SearchStops(ctx, transitdb.SearchStopsParams{
		Tokens: tokens,
		Phrase: phrase,
		Limit:  MaxStopResults,
	})
	if err != nil {
		return nil, fmt.Errorf("search stops: %w", err)
	}
	if len(stops) > 0 || len(tokens) < 2 {
		return stops, nil
	}

	stops, err = s.queries.SearchStops(ctx, transitdb.SearchStopsParams{
		Tokens: tokens[:1],
		Phrase: phrase,
		Limit:  MaxStopResults,
	})
	if err != nil {
		return nil, fmt.Errorf("search stops by first word: %w", err)
	}
	return stops, nil
}

type StopDistance struct {
	transitdb.Stop
	DistanceMeters float64
}

// NearbyStops returns stops within radius meters of lat/lon, nearest first.
// A zero radius means DefaultRadiusMeters. Distances are planar
// approximations suited to city-scale radii.
func (s *Service) NearbyStops(ctx context.Context, lat, lon, radius float64) ([]StopDistance, error) {
	if radius == 0 {
		radius = DefaultRadiusMeters
	}
	if fieldErrors := utils.ValidateLocationParams(lat, lon, radius); len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	box := utils.BoundingBox(lat, lon, radius)
	candidates, err := s.queries.ListStopsInBounds(ctx, transitdb.ListStopsInBoundsParams{
		MinLat:   box.MinLat,
		MaxLat:   box.MaxLat,
		MinLon:   box.MinLon,
		MaxLon:   box.MaxLon,
		Lat:      lat,
		Lon:      lon,
		LonScale: math.Cos(lat * math.Pi / 180),
		Limit:    MaxStopResults,
	})
	if err != nil {
		return nil, fmt.Errorf("list stops in bounds: %w", err)
	}

	results := make([]StopDistance, 0, len(candidates))
	for _, stop := range candidates {
		results = append(results, StopDistance{
			Stop:           stop,
			DistanceMeters: utils.PlanarDistance(lat, lon, stop.Lat, stop.Lon),
		})
	}
	return results, nil
}

// ServingRoute is one (route, direction) calling at a stop. Route fields
// are blank when the index names a route missing from the route table.
type ServingRoute struct {
	RouteID        string
	ShortName      string
	LongName       string
	Mode           transitdb.Mode
	Color          string
	Direction      transitdb.Direction
	DirectionLabel string
	Headsign       string
}

type StopDetail struct {
	Stop   transitdb.Stop
	Routes []ServingRoute
}

// StopDetail returns a stop and every route and direction serving it.
func (s *Service) StopDetail(ctx context.Context, stopID string) (StopDetail, error) {
	stop, err := s.GetStop(ctx, stopID)
	if err != nil {
		return StopDetail{}, err
	}

	rows, err := s.queries.ListRoutesForStop(ctx, stop.ID)
	if err != nil {
		return StopDetail{}, fmt.Errorf("list routes for stop %s: %w", stop.ID, err)
	}

	detail := StopDetail{Stop: stop, Routes: make([]ServingRoute, 0, len(rows))}
	for _, row := range rows {
		detail.Routes = append(detail.Routes, ServingRoute{
			RouteID:        row.RouteID,
			ShortName:      row.ShortName.String,
			LongName:       row.LongName.String,
			Mode:           transitdb.Mode(row.Mode.String),
			Color:          row.Color.String,
			Direction:      row.Direction,
			DirectionLabel: row.Direction.Label(),
			Headsign:       row.Headsign.String,
		})
	}
	return detail, nil
}
