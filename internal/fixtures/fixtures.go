// Package fixtures provides a small Dubai-style sample feed and helpers that
// write it to disk or build it into a dataset for tests.
package fixtures

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"wayfinder.transit.dev/internal/builder"
	"wayfinder.transit.dev/internal/patterns"
)

const agencyTxt = `agency_id,agency_name,agency_url,agency_timezone
RTA,Roads and Transport Authority,https://www.rta.ae,Asia/Dubai
`

const calendarTxt = `service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date
WK,1,1,1,1,1,1,1,20250101,20251231
`

const routesTxt = `route_id,agency_id,route_short_name,route_long_name,route_type,route_color
MRed,RTA,MRed,Red Line,1,E21836
X28,RTA,X28,Gold Souq - Burj Khalifa Express,3,
E100,RTA,E100,Al Ghubaiba - Ibn Battuta,3,
E101,RTA,E101,Ibn Battuta - Abu Dhabi,3,
C28,RTA,C28,Feeder to X28 Express,3,
F11,RTA,F11,UAE Exchange - Burjuman Shuttle,3,
NS1,RTA,NS1,Night Service,3,
`

const stopsTxt = `stop_id,stop_name,stop_lat,stop_lon,location_type
M_UAE,UAE Exchange,24.9767,55.0914,1
M_IBN,Ibn Battuta,25.0447,55.1178,1
M_BUR,Burjuman,25.2549,55.3043,1
M_GLD,Gold Souq,25.2710,55.2990,1
M_BKM,Burj Khalifa/Dubai Mall,25.2011,55.2694,1
B_GSOUQ,Gold Souq Bus Station,25.2717,55.2975,0
B_GHU,Al Ghubaiba Bus Station,25.2649,55.2890,0
B_ABU,Abu Dhabi Central Bus Station,24.4650,54.3690,0
B_SOUQ,Souq Naif,25.2703,55.3030,0
B_GOLDC,Gold Crest Views,25.0700,55.1440,0
`

const tripsTxt = `route_id,service_id,trip_id,trip_headsign,direction_id
MRed,WK,MRed_0,Burjuman,0
MRed,WK,MRed_1,UAE Exchange,1
X28,WK,X28_0,Burj Khalifa/Dubai Mall,0
X28,WK,X28_1,,1
E100,WK,E100_0,Ibn Battuta,0
E101,WK,E101_0,Abu Dhabi,0
C28,WK,C28_0,Gold Crest Views,0
F11,WK,F11_0,,0
NS1,WK,NS1_0,Nowhere,0
`

const stopTimesTxt = `trip_id,arrival_time,departure_time,stop_id,stop_sequence
MRed_0,06:00:00,06:00:00,M_UAE,1
MRed_0,06:10:00,06:10:00,M_IBN,2
MRed_0,06:40:00,06:40:00,M_BUR,3
MRed_1,07:00:00,07:00:00,M_BUR,1
MRed_1,07:30:00,07:30:00,M_IBN,2
MRed_1,07:40:00,07:40:00,M_UAE,3
X28_0,08:15:00,08:15:00,M_BKM,3
X28_0,08:00:00,08:00:00,B_GSOUQ,1
X28_0,08:05:00,08:05:00,M_GLD,2
X28_1,09:00:00,09:00:00,M_BKM,1
X28_1,09:10:00,09:10:00,M_GLD,2
X28_1,09:15:00,09:15:00,B_GSOUQ,3
E100_0,10:00:00,10:00:00,B_GHU,1
E100_0,10:30:00,10:30:00,M_IBN,2
E101_0,11:00:00,11:00:00,M_IBN,1
E101_0,12:00:00,12:00:00,B_ABU,2
C28_0,13:00:00,13:00:00,B_SOUQ,1
C28_0,13:30:00,13:30:00,B_GOLDC,2
F11_0,14:00:00,14:00:00,M_UAE,5
F11_0,14:20:00,14:20:00,M_BUR,6
F11_0,14:30:00,14:30:00,B_GHOST,7
`

// Files returns the sample feed as file name to content.
func Files() map[string]string {
	return map[string]string{
		"agency.txt":     agencyTxt,
		"calendar.txt":   calendarTxt,
		"routes.txt":     routesTxt,
		"stops.txt":      stopsTxt,
		"trips.txt":      tripsTxt,
		"stop_times.txt": stopTimesTxt,
	}
}

// WriteDir writes the sample feed as an extracted directory.
func WriteDir(t testing.TB) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "feed")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range Files() {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// WriteZip writes the files as a zip archive and returns its path.
func WriteZip(t testing.TB, files map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "feed.zip")
	f, err := os.Create(path)
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	zw := zip.NewWriter(f)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

// BuildDataset builds the sample feed into a dataset file and returns its path.
func BuildDataset(t testing.TB) string {
	t.Helper()
	return build(t, WriteDir(t))
}

// BuildDatasetFrom builds a dataset from the given feed files, usually a
// modified copy of Files().
func BuildDatasetFrom(t testing.TB, files map[string]string) string {
	t.Helper()
	return build(t, WriteZip(t, files))
}

func build(t testing.TB, feedPath string) string {
	t.Helper()

	out := filepath.Join(t.TempDir(), "wayfinder.db")
	_, err := builder.Build(context.Background(), builder.Options{
		FeedPath: feedPath,
		OutPath:  out,
		Policy:   patterns.FirstEncountered,
	})
	require.NoError(t, err)
	return out
}
