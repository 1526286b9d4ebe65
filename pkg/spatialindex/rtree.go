package spatialindex

import (
	"errors"
	"math"

	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/util"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

var ErrNoNodeNearby = errors.New("no node within radius")

// the bounding box of a search circle is taken slightly larger than the circle, candidates are then
// filtered by their exact great-circle distance.
const boxMargin = 1.01

type Rtree struct {
	tr    *rtree.RTreeG[datastructure.Index]
	graph *datastructure.Graph
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.Index]
	return &Rtree{
		tr: &tr,
	}
}

// Build. insert every positioned vertex of graph as a point. vertices without a position can never be
// snapped to.
func (rt *Rtree) Build(graph *datastructure.Graph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	rt.graph = graph

	n := graph.NumberOfVertices()
	step := n / 10
	inserted := 0
	graph.ForEachVertex(func(u datastructure.Index, v *datastructure.Vertex) {
		if step > 0 && int(u)%step == 0 {
			log.Info("Building R-tree spatial index...", zap.Float64("progress", 100*float64(u)/float64(n)))
		}
		if !v.HasPosition() {
			return
		}
		c := v.GetCoordinate()
		point := [2]float64{c.GetLon(), c.GetLat()}
		rt.tr.Insert(point, point, u)
		inserted++
	})

	log.Info("R-tree spatial index built.", zap.Int("points", inserted))
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius returns the vertices within radius (in meters) of q, in no particular order.
func (rt *Rtree) SearchWithinRadius(q geo.Coordinate, radius float64) []datastructure.Index {
	r := radius * boxMargin
	north, _ := geo.GetDestinationPoint(q.Lat, q.Lon, 0, r)
	south, _ := geo.GetDestinationPoint(q.Lat, q.Lon, 180, r)
	_, east := geo.GetDestinationPoint(q.Lat, q.Lon, 90, r)
	_, west := geo.GetDestinationPoint(q.Lat, q.Lon, 270, r)

	results := make([]datastructure.Index, 0, 10)
	collect := func(min, max [2]float64, u datastructure.Index) bool {
		pos, _ := rt.graph.Position(u)
		if geo.S2Distance(q, pos) <= radius {
			results = append(results, u)
		}
		return true
	}

	if west <= east {
		rt.tr.Search([2]float64{west, south}, [2]float64{east, north}, collect)
	} else {
		// the box crosses the antimeridian
		rt.tr.Search([2]float64{west, south}, [2]float64{180, north}, collect)
		rt.tr.Search([2]float64{-180, south}, [2]float64{east, north}, collect)
	}
	return results
}

// Nearest returns the id of the closest positioned node within radius (in meters) of q and its distance.
// ties go to the node that was materialized first.
func (rt *Rtree) Nearest(q geo.Coordinate, radius float64) (datastructure.NodeID, float64, error) {
	if !q.IsValid() {
		return 0, 0, util.WrapErrorf(nil, util.ErrBadParamInput, "invalid coordinate (%v, %v)", q.Lat, q.Lon)
	}

	best := datastructure.INVALID_VERTEX_ID
	bestDist := math.Inf(1)
	for _, u := range rt.SearchWithinRadius(q, radius) {
		pos, _ := rt.graph.Position(u)
		d := geo.S2Distance(q, pos)
		if d < bestDist || (d == bestDist && u < best) {
			best, bestDist = u, d
		}
	}

	if best == datastructure.INVALID_VERTEX_ID {
		return 0, 0, util.WrapErrorf(ErrNoNodeNearby, util.ErrNotFound, "no node within %.0f m of (%v, %v)",
			radius, q.Lat, q.Lon)
	}
	return rt.graph.NodeIDOf(best), bestDist, nil
}
