// Package patterns collapses the trips of a feed into at most one canonical
// stop sequence per route and direction, and derives the stop to route index
// from those sequences.
package patterns

import (
	"fmt"
	"sort"

	"wayfinder.transit.dev/internal/feed"
	"wayfinder.transit.dev/transitdb"
)

// Stats reports what a build saw and produced.
type Stats struct {
	Trips         int // trips read from the feed
	SkippedTrips  int // trips without a route id
	Groups        int // distinct (route, direction) groups
	SkippedEmpty  int // groups whose representative trip has no stop times
	Patterns      int
	PatternStops  int
	IndexRows     int
	DuplicateRows int // stop times sharing a sequence with an earlier row of the same trip
}

type groupKey struct {
	routeID   string
	direction transitdb.Direction
}

// PatternID is the deterministic key of the pattern for a route and direction.
func PatternID(routeID string, direction transitdb.Direction) string {
	return fmt.Sprintf("%s:%d", routeID, direction)
}

// Build turns a feed into a dataset using policy to choose each group's
// representative trip. A nil policy means FirstEncountered.
func Build(f *feed.Feed, policy SelectionPolicy) (transitdb.Dataset, Stats) {
	if policy == nil {
		policy = FirstEncountered
	}

	var ds transitdb.Dataset
	var stats Stats

	ds.Routes = buildRoutes(f.Routes)
	ds.Stops = buildStops(f.Stops)

	stopNames := make(map[string]string, len(ds.Stops))
	for _, s := range ds.Stops {
		stopNames[s.ID] = s.Name
	}

	stopTimes := make(map[string][]feed.StopTime)
	for _, st := range f.StopTimes {
		if st.TripID == "" || st.StopID == "" {
			continue
		}
		stopTimes[st.TripID] = append(stopTimes[st.TripID], st)
	}
	for tripID, sts := range stopTimes {
		sorted, dupes := sortBySequence(sts)
		stopTimes[tripID] = sorted
		stats.DuplicateRows += dupes
	}

	var order []groupKey
	groups := make(map[groupKey][]feed.Trip)
	for _, trip := range f.Trips {
		stats.Trips++
		if trip.RouteID == "" {
			stats.SkippedTrips++
			continue
		}
		key := groupKey{routeID: trip.RouteID, direction: directionOf(trip.DirectionID)}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], trip)
	}
	stats.Groups = len(order)

	indexed := make(map[transitdb.StopRouteEntry]struct{})
	for _, key := range order {
		rep := policy.Select(groups[key], stopTimes)
		sts := stopTimes[rep.ID]
		if len(sts) == 0 {
			stats.SkippedEmpty++
			continue
		}

		first, last := sts[0], sts[len(sts)-1]
		pattern := transitdb.DirectionPattern{
			ID:          PatternID(key.routeID, key.direction),
			RouteID:     key.routeID,
			Direction:   key.direction,
			Headsign:    headsignFor(rep, stopNames[last.StopID]),
			FirstStopID: first.StopID,
			LastStopID:  last.StopID,
			StopCount:   int64(len(sts)),
		}
		ds.Patterns = append(ds.Patterns, pattern)

		for _, st := range sts {
			ds.PatternStops = append(ds.PatternStops, transitdb.PatternStop{
				PatternID: pattern.ID,
				StopID:    st.StopID,
				Sequence:  int64(st.Sequence),
			})

			entry := transitdb.StopRouteEntry{StopID: st.StopID, RouteID: key.routeID, Direction: key.direction}
			if _, ok := indexed[entry]; ok {
				continue
			}
			indexed[entry] = struct{}{}
			ds.StopRoutes = append(ds.StopRoutes, entry)
		}
	}

	stats.Patterns = len(ds.Patterns)
	stats.PatternStops = len(ds.PatternStops)
	stats.IndexRows = len(ds.StopRoutes)

	return ds, stats
}

func buildRoutes(in []feed.Route) []transitdb.Route {
	seen := make(map[string]struct{}, len(in))
	out := make([]transitdb.Route, 0, len(in))
	for _, r := range in {
		if r.ID == "" {
			continue
		}
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, transitdb.Route{
			ID:        r.ID,
			ShortName: r.ShortName,
			LongName:  r.LongName,
			Mode:      ModeForRouteType(r.Type),
			Color:     r.Color,
		})
	}
	return out
}

func buildStops(in []feed.Stop) []transitdb.Stop {
	seen := make(map[string]struct{}, len(in))
	out := make([]transitdb.Stop, 0, len(in))
	for _, s := range in {
		if s.ID == "" {
			continue
		}
		if _, ok := seen[s.ID]; ok {
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, transitdb.Stop{
			ID:   s.ID,
			Name: s.Name,
			Lat:  s.Lat,
			Lon:  s.Lon,
			Kind: KindForLocationType(s.LocationType),
		})
	}
	return out
}

// sortBySequence orders stop times by sequence, keeping the first row in
// feed order when several share a sequence. It returns the number of rows
// dropped.
func sortBySequence(sts []feed.StopTime) ([]feed.StopTime, int) {
	sorted := make([]feed.StopTime, len(sts))
	copy(sorted, sts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Sequence < sorted[j].Sequence
	})

	out := make([]feed.StopTime, 0, len(sorted))
	for _, st := range sorted {
		if len(out) > 0 && st.Sequence == out[len(out)-1].Sequence {
			continue
		}
		out = append(out, st)
	}
	return out, len(sorted) - len(out)
}

// directionOf folds anything other than 1 into the outbound direction.
func directionOf(directionID int) transitdb.Direction {
	if directionID == 1 {
		return transitdb.DirectionInbound
	}
	return transitdb.DirectionOutbound
}

func headsignFor(trip feed.Trip, lastStopName string) string {
	if trip.Headsign != "" {
		return trip.Headsign
	}
	if lastStopName == "" {
		return ""
	}
	return "To " + lastStopName
}
