package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wayfinder.transit.dev/internal/feed"
	"wayfinder.transit.dev/transitdb"
)

func stopTimes(tripID string, stopIDs ...string) []feed.StopTime {
	out := make([]feed.StopTime, len(stopIDs))
	for i, id := range stopIDs {
		out[i] = feed.StopTime{TripID: tripID, StopID: id, Sequence: i + 1}
	}
	return out
}

func redLineFeed() *feed.Feed {
	f := &feed.Feed{
		Routes: []feed.Route{{ID: "MRed", ShortName: "MRed", LongName: "Red Line", Type: 1}},
		Stops: []feed.Stop{
			{ID: "M_UAE", Name: "UAE Exchange", LocationType: 1},
			{ID: "M_IBN", Name: "Ibn Battuta", LocationType: 1},
			{ID: "M_BUR", Name: "Burjuman", LocationType: 1},
		},
		Trips: []feed.Trip{
			{ID: "T0", RouteID: "MRed", DirectionID: 0, Headsign: "Burjuman"},
			{ID: "T1", RouteID: "MRed", DirectionID: 1},
		},
	}
	f.StopTimes = append(f.StopTimes, stopTimes("T0", "M_UAE", "M_IBN", "M_BUR")...)
	f.StopTimes = append(f.StopTimes, stopTimes("T1", "M_BUR", "M_IBN", "M_UAE")...)
	return f
}

func TestBuildTwoDirections(t *testing.T) {
	ds, stats := Build(redLineFeed(), FirstEncountered)

	require.Len(t, ds.Patterns, 2)
	for _, p := range ds.Patterns {
		assert.EqualValues(t, 3, p.StopCount)
	}
	assert.Equal(t, "MRed:0", ds.Patterns[0].ID)
	assert.Equal(t, "M_UAE", ds.Patterns[0].FirstStopID)
	assert.Equal(t, "M_BUR", ds.Patterns[0].LastStopID)
	assert.Equal(t, "Burjuman", ds.Patterns[0].Headsign)
	assert.Equal(t, "MRed:1", ds.Patterns[1].ID)
	assert.Equal(t, "To UAE Exchange", ds.Patterns[1].Headsign, "blank headsign falls back to the last stop")

	assert.Len(t, ds.PatternStops, 6)
	assert.Len(t, ds.StopRoutes, 6)
	assert.Equal(t, Stats{Trips: 2, Groups: 2, Patterns: 2, PatternStops: 6, IndexRows: 6}, stats)

	assert.Equal(t, transitdb.ModeMetro, ds.Routes[0].Mode)
	assert.Equal(t, transitdb.StopKindStation, ds.Stops[0].Kind)
}

func TestBuildSortsAndKeepsSequencesVerbatim(t *testing.T) {
	f := &feed.Feed{
		Trips: []feed.Trip{{ID: "T", RouteID: "R"}},
		StopTimes: []feed.StopTime{
			{TripID: "T", StopID: "C", Sequence: 30},
			{TripID: "T", StopID: "A", Sequence: 5},
			{TripID: "T", StopID: "B", Sequence: 10},
			{TripID: "T", StopID: "X", Sequence: 10},
		},
	}

	ds, stats := Build(f, FirstEncountered)

	require.Len(t, ds.Patterns, 1)
	assert.Equal(t, "A", ds.Patterns[0].FirstStopID)
	assert.Equal(t, "C", ds.Patterns[0].LastStopID)
	assert.Equal(t, "", ds.Patterns[0].Headsign, "no headsign and last stop unknown")
	assert.Equal(t, []transitdb.PatternStop{
		{PatternID: "R:0", StopID: "A", Sequence: 5},
		{PatternID: "R:0", StopID: "B", Sequence: 10},
		{PatternID: "R:0", StopID: "C", Sequence: 30},
	}, ds.PatternStops)
	assert.Equal(t, 1, stats.DuplicateRows)
}

func TestBuildSkipsEmptyRepresentative(t *testing.T) {
	f := &feed.Feed{
		Trips: []feed.Trip{
			{ID: "empty", RouteID: "R"},
			{ID: "full", RouteID: "R"},
			{ID: "orphan", RouteID: ""},
		},
		StopTimes: stopTimes("full", "A", "B"),
	}

	ds, stats := Build(f, FirstEncountered)
	assert.Empty(t, ds.Patterns)
	assert.Empty(t, ds.PatternStops)
	assert.Empty(t, ds.StopRoutes)
	assert.Equal(t, 1, stats.SkippedEmpty)
	assert.Equal(t, 1, stats.SkippedTrips)
	assert.Equal(t, 3, stats.Trips)

	ds, stats = Build(f, MostCommonSequence)
	require.Len(t, ds.Patterns, 1)
	assert.EqualValues(t, 2, ds.Patterns[0].StopCount)
	assert.Zero(t, stats.SkippedEmpty)
}

func TestMostCommonSequence(t *testing.T) {
	f := &feed.Feed{
		Trips: []feed.Trip{
			{ID: "short", RouteID: "R", Headsign: "Short working"},
			{ID: "full1", RouteID: "R", Headsign: "Full"},
			{ID: "full2", RouteID: "R", Headsign: "Full"},
		},
	}
	f.StopTimes = append(f.StopTimes, stopTimes("short", "A", "B")...)
	f.StopTimes = append(f.StopTimes, stopTimes("full1", "A", "B", "C")...)
	f.StopTimes = append(f.StopTimes, stopTimes("full2", "A", "B", "C")...)

	ds, _ := Build(f, FirstEncountered)
	require.Len(t, ds.Patterns, 1)
	assert.EqualValues(t, 2, ds.Patterns[0].StopCount)

	ds, _ = Build(f, MostCommonSequence)
	require.Len(t, ds.Patterns, 1)
	assert.EqualValues(t, 3, ds.Patterns[0].StopCount)
	assert.Equal(t, "Full", ds.Patterns[0].Headsign)
}

func TestMostCommonSequenceTieGoesToFirst(t *testing.T) {
	trips := []feed.Trip{{ID: "a"}, {ID: "b"}}
	sts := map[string][]feed.StopTime{
		"a": stopTimes("a", "X", "Y"),
		"b": stopTimes("b", "Y", "X"),
	}
	assert.Equal(t, "a", MostCommonSequence.Select(trips, sts).ID)
}

func TestIndexCollapsesRepeatedStops(t *testing.T) {
	f := &feed.Feed{
		Trips:     []feed.Trip{{ID: "loop", RouteID: "L", DirectionID: 2}},
		StopTimes: stopTimes("loop", "A", "B", "C", "A"),
	}

	ds, stats := Build(f, nil)

	require.Len(t, ds.Patterns, 1)
	assert.Equal(t, transitdb.DirectionOutbound, ds.Patterns[0].Direction, "unknown direction folds to outbound")
	assert.EqualValues(t, 4, ds.Patterns[0].StopCount)
	assert.Len(t, ds.PatternStops, 4)
	assert.Len(t, ds.StopRoutes, 3)
	assert.Equal(t, 3, stats.IndexRows)
}

func TestPatternInvariants(t *testing.T) {
	f := redLineFeed()
	f.Trips = append(f.Trips,
		feed.Trip{ID: "T2", RouteID: "MRed", DirectionID: 0},
		feed.Trip{ID: "B0", RouteID: "Bus", DirectionID: 0},
	)
	f.StopTimes = append(f.StopTimes, stopTimes("T2", "M_UAE", "M_BUR")...)
	f.StopTimes = append(f.StopTimes, feed.StopTime{TripID: "B0", StopID: "M_BUR", Sequence: 9}, feed.StopTime{TripID: "B0", StopID: "M_IBN", Sequence: 2})

	ds, _ := Build(f, FirstEncountered)

	perRoute := map[string]map[transitdb.Direction]bool{}
	for _, p := range ds.Patterns {
		if perRoute[p.RouteID] == nil {
			perRoute[p.RouteID] = map[transitdb.Direction]bool{}
		}
		assert.False(t, perRoute[p.RouteID][p.Direction], "one pattern per route and direction")
		perRoute[p.RouteID][p.Direction] = true
		assert.LessOrEqual(t, len(perRoute[p.RouteID]), 2)

		var seqs []int64
		for _, ps := range ds.PatternStops {
			if ps.PatternID == p.ID {
				seqs = append(seqs, ps.Sequence)
			}
		}
		assert.Len(t, seqs, int(p.StopCount))
		for i := 1; i < len(seqs); i++ {
			assert.Less(t, seqs[i-1], seqs[i])
		}
	}
}

func TestModeForRouteType(t *testing.T) {
	tests := []struct {
		routeType int
		want      transitdb.Mode
	}{
		{0, transitdb.ModeTram},
		{1, transitdb.ModeMetro},
		{2, transitdb.ModeRail},
		{3, transitdb.ModeBus},
		{4, transitdb.ModeFerry},
		{7, transitdb.ModeBus},
		{109, transitdb.ModeRail},
		{401, transitdb.ModeMetro},
		{700, transitdb.ModeBus},
		{900, transitdb.ModeTram},
		{1000, transitdb.ModeFerry},
		{1200, transitdb.ModeFerry},
		{1700, transitdb.ModeBus},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ModeForRouteType(tt.routeType), "route_type %d", tt.routeType)
	}
}

func TestPolicyByName(t *testing.T) {
	for name, want := range map[string]SelectionPolicy{
		"":                     FirstEncountered,
		"first":                FirstEncountered,
		"first-encountered":    FirstEncountered,
		"most-common":          MostCommonSequence,
		"most-common-sequence": MostCommonSequence,
	} {
		got, err := PolicyByName(name)
		require.NoError(t, err)
		assert.Equal(t, want.Name(), got.Name())
	}

	_, err := PolicyByName("random")
	assert.Error(t, err)
}
