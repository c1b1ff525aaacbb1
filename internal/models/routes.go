package models

import (
	"wayfinder.transit.dev/internal/lookup"
	"wayfinder.transit.dev/transitdb"
)

type Route struct {
	ID        string `json:"id"`
	ShortName string `json:"shortName"`
	LongName  string `json:"longName"`
	Mode      string `json:"mode"`
	Color     string `json:"color"`
}

func NewRoute(r transitdb.Route) Route {
	return Route{
		ID:        r.ID,
		ShortName: r.ShortName,
		LongName:  r.LongName,
		Mode:      string(r.Mode),
		Color:     r.Color,
	}
}

func NewRoutes(routes []transitdb.Route) []Route {
	out := make([]Route, 0, len(routes))
	for _, r := range routes {
		out = append(out, NewRoute(r))
	}
	return out
}

type PatternStop struct {
	Sequence int64   `json:"sequence"`
	StopID   string  `json:"stopId"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Kind     string  `json:"kind"`
	Missing  bool    `json:"missing,omitempty"`
}

type Pattern struct {
	ID             string        `json:"id"`
	Direction      int64         `json:"direction"`
	DirectionLabel string        `json:"directionLabel"`
	Headsign       string        `json:"headsign"`
	Compass        string        `json:"compass"`
	FirstStopID    string        `json:"firstStopId"`
	LastStopID     string        `json:"lastStopId"`
	StopCount      int64         `json:"stopCount"`
	Polyline       string        `json:"polyline"`
	Loop           bool          `json:"loop,omitempty"`
	Stops          []PatternStop `json:"stops"`
}

type RouteDetail struct {
	Route
	Patterns []Pattern `json:"patterns"`
}

func NewRouteDetail(d lookup.RouteDetail) RouteDetail {
	detail := RouteDetail{
		Route:    NewRoute(d.Route),
		Patterns: make([]Pattern, 0, len(d.Patterns)),
	}
	for _, p := range d.Patterns {
		pattern := Pattern{
			ID:             p.ID,
			Direction:      int64(p.Direction),
			DirectionLabel: p.DirectionLabel,
			Headsign:       p.Headsign,
			Compass:        p.Compass,
			FirstStopID:    p.FirstStopID,
			LastStopID:     p.LastStopID,
			StopCount:      p.StopCount,
			Polyline:       p.Polyline,
			Loop:           p.Loop,
			Stops:          make([]PatternStop, 0, len(p.Stops)),
		}
		for _, s := range p.Stops {
			pattern.Stops = append(pattern.Stops, PatternStop{
				Sequence: s.Sequence,
				StopID:   s.StopID,
				Name:     s.Name,
				Lat:      s.Lat,
				Lon:      s.Lon,
				Kind:     string(s.Kind),
				Missing:  s.Missing,
			})
		}
		detail.Patterns = append(detail.Patterns, pattern)
	}
	return detail
}
