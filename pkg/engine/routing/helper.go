package routing

import (
	da "github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/util"
)

func resolveEndpoints(graph *da.Graph, s, t da.NodeID) (da.Index, da.Index, error) {
	sIdx, ok := graph.IndexOf(s)
	if !ok {
		return 0, 0, util.WrapErrorf(ErrUnknownNode, util.ErrNotFound, "source node %d", s)
	}
	tIdx, ok := graph.IndexOf(t)
	if !ok {
		return 0, 0, util.WrapErrorf(ErrUnknownNode, util.ErrNotFound, "target node %d", t)
	}
	return sIdx, tIdx, nil
}

// RouteCoordinates returns the positions along a found route. nodes without a position are skipped.
func RouteCoordinates(graph *da.Graph, res Result) []geo.Coordinate {
	coords := make([]geo.Coordinate, 0, len(res.Path))
	for _, id := range res.Path {
		u, ok := graph.IndexOf(id)
		if !ok {
			continue
		}
		if pos, ok := graph.Position(u); ok {
			coords = append(coords, pos)
		}
	}
	return coords
}

// RouteStreetNames lists the street names along a found route, consecutive duplicates and unnamed
// segments removed.
func RouteStreetNames(graph *da.Graph, res Result) []string {
	names := make([]string, 0)
	for _, id := range res.Edges {
		name := graph.GetStreetName(graph.EdgeByID(id))
		if name == "" || (len(names) > 0 && names[len(names)-1] == name) {
			continue
		}
		names = append(names, name)
	}
	return names
}
