package feed

import (
	"fmt"
	"os"

	"github.com/jamespfennell/gtfs"
)

// ParseStrict reads a zipped feed with the full GTFS static parser. Rows the
// parser rejects are dropped and surface as warnings.
func ParseStrict(path string) (*Feed, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feed archive: %w", err)
	}

	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("parse feed archive: %w", err)
	}

	return fromStatic(staticData), nil
}

func fromStatic(staticData *gtfs.Static) *Feed {
	f := &Feed{}

	for _, r := range staticData.Routes {
		f.Routes = append(f.Routes, Route{
			ID:        r.Id,
			ShortName: r.ShortName,
			LongName:  r.LongName,
			Type:      int(r.Type),
			Color:     r.Color,
		})
	}

	for _, s := range staticData.Stops {
		stop := Stop{
			ID:           s.Id,
			Name:         s.Name,
			LocationType: int(s.Type),
		}
		if s.Latitude != nil {
			stop.Lat = *s.Latitude
		}
		if s.Longitude != nil {
			stop.Lon = *s.Longitude
		}
		f.Stops = append(f.Stops, stop)
	}

	for _, t := range staticData.Trips {
		trip := Trip{
			ID:       t.ID,
			Headsign: t.Headsign,
		}
		if t.Route != nil {
			trip.RouteID = t.Route.Id
		}
		// The parser encodes direction_id=1 as DirectionID_True (1) and
		// direction_id=0 as DirectionID_False.
		if int64(t.DirectionId) == 1 {
			trip.DirectionID = 1
		}
		f.Trips = append(f.Trips, trip)

		for _, st := range t.StopTimes {
			if st.Stop == nil {
				continue
			}
			f.StopTimes = append(f.StopTimes, StopTime{
				TripID:   t.ID,
				StopID:   st.Stop.Id,
				Sequence: st.StopSequence,
			})
		}
	}

	for _, w := range staticData.Warnings {
		f.Warnings = append(f.Warnings, fmt.Sprint(w))
	}

	return f
}
