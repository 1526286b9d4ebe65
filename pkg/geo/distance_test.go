package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	polyline "github.com/twpayne/go-polyline"
)

func TestCalculateHaversineDistance(t *testing.T) {
	testCases := []struct {
		name string
		a, b Coordinate
		want float64
	}{
		{
			name: "identical points",
			a:    NewCoordinate(37.3891, -5.9845),
			b:    NewCoordinate(37.3891, -5.9845),
			want: 0,
		},
		{
			name: "one degree of latitude",
			a:    NewCoordinate(0, 0),
			b:    NewCoordinate(1, 0),
			want: math.Pi / 180 * 6_371_000,
		},
		{
			name: "one degree of longitude on the equator",
			a:    NewCoordinate(0, 10),
			b:    NewCoordinate(0, 11),
			want: math.Pi / 180 * 6_371_000,
		},
		{
			name: "antipodal points",
			a:    NewCoordinate(0, 0),
			b:    NewCoordinate(0, 180),
			want: math.Pi * 6_371_000,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateHaversineDistance(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 1e-6)
			assert.InDelta(t, got, CalculateHaversineDistance(tt.b, tt.a), 1e-9, "distance must be symmetric")
		})
	}
}

func TestHaversineAgreesWithS2(t *testing.T) {
	pairs := [][2]Coordinate{
		{NewCoordinate(37.3891, -5.9845), NewCoordinate(37.3772, -5.9869)},
		{NewCoordinate(-7.7956, 110.3695), NewCoordinate(-7.5666, 110.8167)},
		{NewCoordinate(51.5007, -0.1246), NewCoordinate(40.6892, -74.0445)},
	}
	for _, p := range pairs {
		hav := CalculateHaversineDistance(p[0], p[1])
		s2d := S2Distance(p[0], p[1])
		assert.InEpsilon(t, s2d, hav, 1e-9)
	}
}

func TestEstimatorNeverNegative(t *testing.T) {
	est := NewEstimator()
	a := NewCoordinate(37.39, -5.99)
	for _, b := range []Coordinate{a, NewCoordinate(37.40, -5.98), NewCoordinate(-37.39, 174.01)} {
		assert.GreaterOrEqual(t, est.Distance(a, b), 0.0)
	}
	assert.Equal(t, 0.0, est.Distance(a, a))
}

func TestGetDestinationPoint(t *testing.T) {
	start := NewCoordinate(37.3891, -5.9845)
	for _, bearing := range []float64{0, 45, 90, 225, 300} {
		lat, lon := GetDestinationPoint(start.Lat, start.Lon, bearing, 500)
		got := CalculateHaversineDistance(start, NewCoordinate(lat, lon))
		assert.InDelta(t, 500, got, 1e-6, "bearing %v", bearing)
	}
}

func TestPathLength(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(37.3891, -5.9845),
		NewCoordinate(37.3895, -5.9830),
		NewCoordinate(37.3900, -5.9822),
	}
	want := CalculateHaversineDistance(coords[0], coords[1]) + CalculateHaversineDistance(coords[1], coords[2])
	assert.InDelta(t, want, PathLength(coords), 1e-6)
	assert.Equal(t, 0.0, PathLength(coords[:1]))
}

func TestPolylineFromCoords(t *testing.T) {
	// reference value from the google polyline algorithm documentation
	coords := []Coordinate{
		NewCoordinate(38.5, -120.2),
		NewCoordinate(40.7, -120.95),
		NewCoordinate(43.252, -126.453),
	}
	encoded := PolylineFromCoords(coords)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", encoded)

	decoded, rest, err := polyline.DecodeCoords([]byte(encoded))
	require.NoError(t, err)
	assert.Empty(t, rest)
	require.Len(t, decoded, len(coords))
	for i := range coords {
		assert.InDelta(t, coords[i].Lat, decoded[i][0], 1e-5)
		assert.InDelta(t, coords[i].Lon, decoded[i][1], 1e-5)
	}
}

func TestCoordinateIsValid(t *testing.T) {
	assert.True(t, NewCoordinate(90, 180).IsValid())
	assert.False(t, NewCoordinate(91, 0).IsValid())
	assert.False(t, NewCoordinate(0, -181).IsValid())
	assert.False(t, NewCoordinate(math.NaN(), 0).IsValid())
	assert.False(t, NewCoordinate(0, math.Inf(1)).IsValid())
}
