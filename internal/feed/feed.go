// Package feed reads a raw transit feed into the record streams the pattern
// builder consumes.
package feed

// Route is a line as described by the feed.
type Route struct {
	ID        string
	ShortName string
	LongName  string
	Type      int // GTFS route_type
	Color     string
}

// Stop is a boarding point as described by the feed.
type Stop struct {
	ID           string
	Name         string
	Lat          float64
	Lon          float64
	LocationType int
}

type Trip struct {
	ID          string
	RouteID     string
	DirectionID int
	Headsign    string
}

type StopTime struct {
	TripID   string
	StopID   string
	Sequence int
}

// Feed holds the record streams of one feed in file order.
type Feed struct {
	Routes    []Route
	Stops     []Stop
	Trips     []Trip
	StopTimes []StopTime

	// Warnings collects non-fatal problems found while reading, such as
	// missing files or coerced numeric fields.
	Warnings []string
}
