package geo

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/roadrouter/pkg"
)

func toS2LatLng(c Coordinate) s2.LatLng {
	return s2.LatLngFromDegrees(c.Lat, c.Lon)
}

// AngularDistance. central angle between a and b computed by s2.
func AngularDistance(a, b Coordinate) s1.Angle {
	return toS2LatLng(a).Distance(toS2LatLng(b))
}

// S2Distance. great-circle distance in meters, computed by s2 on the same earth radius as
// CalculateHaversineDistance.
func S2Distance(a, b Coordinate) float64 {
	return AngularDistance(a, b).Radians() * pkg.EARTH_RADIUS_METERS
}

// PathLength. sum of great-circle lengths of consecutive points, in meters.
func PathLength(coords []Coordinate) float64 {
	if len(coords) < 2 {
		return 0
	}
	points := make([]s2.Point, len(coords))
	for i, c := range coords {
		points[i] = s2.PointFromLatLng(toS2LatLng(c))
	}
	polyline := s2.Polyline(points)
	return polyline.Length().Radians() * pkg.EARTH_RADIUS_METERS
}
