package transitdb

import (
	"strings"
	"time"
)

// Mode is the transport category of a route.
type Mode string

const (
	ModeBus   Mode = "Bus"
	ModeMetro Mode = "Metro"
	ModeTram  Mode = "Tram"
	ModeRail  Mode = "Rail"
	ModeFerry Mode = "Ferry"
)

var allModes = []Mode{ModeBus, ModeMetro, ModeTram, ModeRail, ModeFerry}

// ParseMode matches s case-insensitively against the known modes.
func ParseMode(s string) (Mode, bool) {
	for _, m := range allModes {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, true
		}
	}
	return "", false
}

// StopKind distinguishes a kerbside stop from a station.
type StopKind string

const (
	StopKindStop    StopKind = "Stop"
	StopKindStation StopKind = "Station"
)

// Direction is the binary travel direction of a pattern.
type Direction int64

const (
	DirectionOutbound Direction = 0
	DirectionInbound  Direction = 1
)

// Label returns the rider-facing name of the direction.
func (d Direction) Label() string {
	if d == DirectionInbound {
		return "Downward"
	}
	return "Upward"
}

func (d Direction) Valid() bool {
	return d == DirectionOutbound || d == DirectionInbound
}

type Route struct {
	ID        string
	ShortName string
	LongName  string
	Mode      Mode
	Color     string // blank when the feed has no colour
}

type Stop struct {
	ID   string
	Name string
	Lat  float64
	Lon  float64
	Kind StopKind
}

type DirectionPattern struct {
	ID          string
	RouteID     string
	Direction   Direction
	Headsign    string
	FirstStopID string
	LastStopID  string
	StopCount   int64
}

type PatternStop struct {
	PatternID string
	StopID    string
	Sequence  int64
}

// StopRouteEntry is one row of the denormalized stop to route index.
type StopRouteEntry struct {
	StopID    string
	RouteID   string
	Direction Direction
}

// Dataset is the complete content of a built dataset file.
type Dataset struct {
	Routes       []Route
	Stops        []Stop
	Patterns     []DirectionPattern
	PatternStops []PatternStop
	StopRoutes   []StopRouteEntry
}

// Metadata describes how and when a dataset file was built.
type Metadata struct {
	BuildID          string
	BuiltAt          time.Time
	FeedSource       string
	FeedSHA256       string
	Policy           string
	RouteCount       int64
	StopCount        int64
	PatternCount     int64
	PatternStopCount int64
	StopRouteCount   int64
}
