package geo

import (
	polyline "github.com/twpayne/go-polyline"
)

// PolylineFromCoords encodes the coordinates with the google encoded polyline algorithm (precision 5).
func PolylineFromCoords(coords []Coordinate) string {
	flat := make([][]float64, 0, len(coords))
	for _, c := range coords {
		flat = append(flat, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(flat))
}
