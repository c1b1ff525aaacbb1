package utils

import "math"

// MetersPerDegreeLat is the equirectangular length of one degree of latitude.
const MetersPerDegreeLat = 111000.0

// MetersPerDegreeLon returns the length of one degree of longitude at lat.
func MetersPerDegreeLon(lat float64) float64 {
	return MetersPerDegreeLat * math.Cos(lat*math.Pi/180)
}

// Bounds is a latitude/longitude box.
type Bounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// BoundingBox approximates the box enclosing a circle of radius meters
// around lat/lon. Valid at city scale only.
func BoundingBox(lat, lon, radius float64) Bounds {
	latRadiusDegrees := radius / MetersPerDegreeLat
	lonRadiusDegrees := radius / MetersPerDegreeLon(lat)

	return Bounds{
		MinLat: lat - latRadiusDegrees,
		MaxLat: lat + latRadiusDegrees,
		MinLon: lon - lonRadiusDegrees,
		MaxLon: lon + lonRadiusDegrees,
	}
}

// PlanarDistance is the equirectangular distance in meters between two
// points, scaling longitude by the cosine of the first point's latitude.
func PlanarDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dy := (lat2 - lat1) * MetersPerDegreeLat
	dx := (lon2 - lon1) * MetersPerDegreeLon(lat1)
	return math.Sqrt(dx*dx + dy*dy)
}
