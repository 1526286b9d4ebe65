package osmparser

import "github.com/lintang-b-s/roadrouter/pkg/geo"

type NodeType uint8

const (
	END_NODE NodeType = iota
	BETWEEN_NODE
	JUNCTION_NODE
)

type Format uint8

const (
	PBF Format = iota
	XML
)

type node struct {
	id    int64
	coord geo.Coordinate
}

// osmWay is a drivable way kept between the node and the way pass.
type osmWay struct {
	id      int64
	nodes   []int64
	name    string
	oneWay  bool
	forward bool
}

var (
	//https://wiki.openstreetmap.org/wiki/Key:barrier
	// a barrier node with access=no splits a way into two disconnected parts.
	acceptedBarrierType = map[string]struct{}{
		"bollard":        {},
		"swing_gate":     {},
		"jersey_barrier": {},
		"lift_gate":      {},
		"block":          {},
		"gate":           {},
	}
)
