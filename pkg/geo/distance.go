package geo

import (
	"math"

	"github.com/lintang-b-s/roadrouter/pkg"
	"github.com/lintang-b-s/roadrouter/pkg/util"
)

type Coordinate struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

// IsValid. finite and inside the wgs84 lat/lon ranges.
func (c Coordinate) IsValid() bool {
	return util.IsFinite(c.Lat) && util.IsFinite(c.Lon) &&
		c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// havFunction. hav(x) = (1 - cos x)/2, written as sin^2(x/2) to stay accurate for short segments.
func havFunction(angleRad float64) float64 {
	s := math.Sin(angleRad / 2.0)
	return s * s
}

// CalculateHaversineDistance. great-circle distance between a and b in meters, on a sphere of radius
// pkg.EARTH_RADIUS_METERS. it is a lower bound of any road distance between the two points, not a
// geodetic measurement.
func CalculateHaversineDistance(a, b Coordinate) float64 {
	latOne := util.DegreeToRadians(a.Lat)
	longOne := util.DegreeToRadians(a.Lon)
	latTwo := util.DegreeToRadians(b.Lat)
	longTwo := util.DegreeToRadians(b.Lon)

	h := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	// rounding can push h slightly above 1 for antipodal points
	h = math.Min(1, math.Max(0, h))
	c := 2.0 * math.Asin(math.Sqrt(h))
	return pkg.EARTH_RADIUS_METERS * c
}

// Estimator is the great-circle heuristic used by the A* search.
type Estimator struct{}

func NewEstimator() Estimator {
	return Estimator{}
}

// Distance in meters, 0 for identical points.
func (Estimator) Distance(a, b Coordinate) float64 {
	return CalculateHaversineDistance(a, b)
}

// GetDestinationPoint returns the destination point given the starting point, bearing (degree) and
// distance (meter)
func GetDestinationPoint(lat1, lon1 float64, bearing float64, dist float64) (float64, float64) {

	dr := dist / pkg.EARTH_RADIUS_METERS

	bearing = util.DegreeToRadians(bearing)

	lat1 = util.DegreeToRadians(lat1)
	lon1 = util.DegreeToRadians(lon1)

	lat2Part1 := math.Sin(lat1) * math.Cos(dr)
	lat2Part2 := math.Cos(lat1) * math.Sin(dr) * math.Cos(bearing)

	lat2 := math.Asin(lat2Part1 + lat2Part2)

	lon2Part1 := math.Sin(bearing) * math.Sin(dr) * math.Cos(lat1)
	lon2Part2 := math.Cos(dr) - (math.Sin(lat1) * math.Sin(lat2))

	lon2 := lon1 + math.Atan2(lon2Part1, lon2Part2)

	return util.RadiansToDegree(lat2), normalizeLongitude(util.RadiansToDegree(lon2))
}

// normalizeLongitude. long in degree
func normalizeLongitude(long float64) float64 {
	return math.Mod((long+540), 360) - 180.0
}
