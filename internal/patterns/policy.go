package patterns

import (
	"fmt"
	"strings"

	"wayfinder.transit.dev/internal/feed"
)

// SelectionPolicy picks the trip whose stop sequence stands for a whole
// (route, direction) group. trips is never empty and is in feed order;
// stopTimes maps trip id to that trip's stop times sorted by sequence.
type SelectionPolicy interface {
	Name() string
	Select(trips []feed.Trip, stopTimes map[string][]feed.StopTime) feed.Trip
}

var (
	// FirstEncountered takes the first trip of the group in feed order,
	// whatever its stop sequence. Real-world variants are collapsed.
	FirstEncountered SelectionPolicy = firstEncountered{}

	// MostCommonSequence takes the first trip whose stop sequence is shared
	// by the most trips of the group. Trips without stop times are only
	// chosen when no trip in the group has any.
	MostCommonSequence SelectionPolicy = mostCommonSequence{}
)

// PolicyByName resolves a policy from its Name or a short alias.
func PolicyByName(name string) (SelectionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "first", FirstEncountered.Name():
		return FirstEncountered, nil
	case "most-common", MostCommonSequence.Name():
		return MostCommonSequence, nil
	}
	return nil, fmt.Errorf("unknown selection policy %q", name)
}

type firstEncountered struct{}

func (firstEncountered) Name() string { return "first-encountered" }

func (firstEncountered) Select(trips []feed.Trip, _ map[string][]feed.StopTime) feed.Trip {
	return trips[0]
}

type mostCommonSequence struct{}

func (mostCommonSequence) Name() string { return "most-common-sequence" }

func (mostCommonSequence) Select(trips []feed.Trip, stopTimes map[string][]feed.StopTime) feed.Trip {
	counts := make(map[string]int, len(trips))
	keys := make([]string, len(trips))
	for i, trip := range trips {
		sts := stopTimes[trip.ID]
		if len(sts) == 0 {
			continue
		}
		ids := make([]string, len(sts))
		for j, st := range sts {
			ids[j] = st.StopID
		}
		keys[i] = strings.Join(ids, "\x00")
		counts[keys[i]]++
	}

	best, bestCount := 0, 0
	for i, key := range keys {
		if key == "" {
			continue
		}
		if counts[key] > bestCount {
			best, bestCount = i, counts[key]
		}
	}
	return trips[best]
}
