package models

import (
	"math"

	"wayfinder.transit.dev/internal/lookup"
	"wayfinder.transit.dev/transitdb"
)

type Stop struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Kind string  `json:"kind"`
	// Meters from the search point; location searches only.
	Distance *float64 `json:"distance,omitempty"`
}

func NewStop(s transitdb.Stop) Stop {
	return Stop{
		ID:   s.ID,
		Name: s.Name,
		Lat:  s.Lat,
		Lon:  s.Lon,
		Kind: string(s.Kind),
	}
}

func NewStops(stops []transitdb.Stop) []Stop {
	out := make([]Stop, 0, len(stops))
	for _, s := range stops {
		out = append(out, NewStop(s))
	}
	return out
}

// NewStopsWithDistance rounds distances to whole meters.
func NewStopsWithDistance(stops []lookup.StopDistance) []Stop {
	out := make([]Stop, 0, len(stops))
	for _, s := range stops {
		stop := NewStop(s.Stop)
		d := math.Round(s.DistanceMeters)
		stop.Distance = &d
		out = append(out, stop)
	}
	return out
}

type ServingRoute struct {
	RouteID        string `json:"routeId"`
	ShortName      string `json:"shortName"`
	LongName       string `json:"longName"`
	Mode           string `json:"mode"`
	Color          string `json:"color"`
	Direction      int64  `json:"direction"`
	DirectionLabel string `json:"directionLabel"`
	Headsign       string `json:"headsign"`
}

type StopDetail struct {
	Stop
	Routes []ServingRoute `json:"routes"`
}

func NewStopDetail(d lookup.StopDetail) StopDetail {
	detail := StopDetail{
		Stop:   NewStop(d.Stop),
		Routes: make([]ServingRoute, 0, len(d.Routes)),
	}
	for _, r := range d.Routes {
		detail.Routes = append(detail.Routes, ServingRoute{
			RouteID:        r.RouteID,
			ShortName:      r.ShortName,
			LongName:       r.LongName,
			Mode:           string(r.Mode),
			Color:          r.Color,
			Direction:      int64(r.Direction),
			DirectionLabel: r.DirectionLabel,
			Headsign:       r.Headsign,
		})
	}
	return detail
}
