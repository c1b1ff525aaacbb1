package feed

import (
	"strconv"
	"strings"
)

// The CSV records keep numeric columns as text so that one malformed value
// coerces to zero instead of rejecting the whole file.

type routeRecord struct {
	ID        string `csv:"route_id"`
	ShortName string `csv:"route_short_name"`
	LongName  string `csv:"route_long_name"`
	Type      string `csv:"route_type"`
	Color     string `csv:"route_color"`
}

type stopRecord struct {
	ID           string `csv:"stop_id"`
	Name         string `csv:"stop_name"`
	Lat          string `csv:"stop_lat"`
	Lon          string `csv:"stop_lon"`
	LocationType string `csv:"location_type"`
}

type tripRecord struct {
	RouteID     string `csv:"route_id"`
	ID          string `csv:"trip_id"`
	Headsign    string `csv:"trip_headsign"`
	DirectionID string `csv:"direction_id"`
}

type stopTimeRecord struct {
	TripID       string `csv:"trip_id"`
	StopID       string `csv:"stop_id"`
	StopSequence string `csv:"stop_sequence"`
}

// coercer turns text into numbers, counting values it had to default.
type coercer struct {
	coerced int
}

func (c *coercer) int(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		c.coerced++
		return 0
	}
	return n
}

func (c *coercer) float(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		c.coerced++
		return 0
	}
	return f
}

func (r routeRecord) toRoute(c *coercer) Route {
	return Route{
		ID:        strings.TrimSpace(r.ID),
		ShortName: strings.TrimSpace(r.ShortName),
		LongName:  strings.TrimSpace(r.LongName),
		Type:      c.int(r.Type),
		Color:     strings.TrimSpace(r.Color),
	}
}

func (r stopRecord) toStop(c *coercer) Stop {
	return Stop{
		ID:           strings.TrimSpace(r.ID),
		Name:         strings.TrimSpace(r.Name),
		Lat:          c.float(r.Lat),
		Lon:          c.float(r.Lon),
		LocationType: c.int(r.LocationType),
	}
}

func (r tripRecord) toTrip(c *coercer) Trip {
	return Trip{
		ID:          strings.TrimSpace(r.ID),
		RouteID:     strings.TrimSpace(r.RouteID),
		DirectionID: c.int(r.DirectionID),
		Headsign:    strings.TrimSpace(r.Headsign),
	}
}

func (r stopTimeRecord) toStopTime(c *coercer) StopTime {
	return StopTime{
		TripID:   strings.TrimSpace(r.TripID),
		StopID:   strings.TrimSpace(r.StopID),
		Sequence: c.int(r.StopSequence),
	}
}
