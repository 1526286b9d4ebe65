package routing

import (
	da "github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
)

// Estimator gives a lower bound, in meters, on the road distance between two positions.
type Estimator interface {
	Distance(a, b geo.Coordinate) float64
}

// Router is a point-to-point shortest path search. *Dijkstra and *AStar implement it.
type Router interface {
	ShortestPath(s, t da.NodeID, opts ...QueryOption) (Result, error)
}

var (
	_ Router    = (*Dijkstra)(nil)
	_ Router    = (*AStar)(nil)
	_ Estimator = geo.Estimator{}
)
