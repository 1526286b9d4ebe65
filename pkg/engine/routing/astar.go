package routing

import (
	da "github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/util"
)

// AStar is goal-directed search with a great-circle lower bound on the remaining road distance. the
// lower bound is consistent as long as every edge is at least as long as the great-circle distance
// between its endpoints, which holds for lengths measured along the road geometry.
//
// a settled node is never reopened, so the returned cost equals Dijkstra's only on graphs where that
// edge-length condition holds. an edge shorter than the straight line between its ends can make
// AStar return a longer path, even when the bound stays below the true remaining distance.
// like Dijkstra, an AStar value must not be shared between goroutines.
type AStar struct {
	graph     *da.Graph
	estimator Estimator
	state     searchState

	target geo.Coordinate
}

func NewAStar(graph *da.Graph, estimator Estimator) *AStar {
	return &AStar{
		graph:     graph,
		estimator: estimator,
		state:     newSearchState(),
	}
}

// ShortestPath computes a minimum-length path from s to t. s, t and every node reached by the search need
// a position, otherwise ErrMissingPosition is returned.
func (as *AStar) ShortestPath(s, t da.NodeID, opts ...QueryOption) (Result, error) {
	sIdx, tIdx, err := resolveEndpoints(as.graph, s, t)
	if err != nil {
		return Result{}, err
	}
	if err := as.checkPosition(sIdx); err != nil {
		return Result{}, err
	}
	if err := as.checkPosition(tIdx); err != nil {
		return Result{}, err
	}
	if s == t {
		return newTrivialResult(s), nil
	}
	o := newQueryOptions(opts)

	as.target, _ = as.graph.Position(tIdx)
	as.state.preallocate(as.graph.NumberOfVertices())
	as.state.info[sIdx].dist = 0
	as.state.pq.Insert(as.heuristic(sIdx), sIdx)

	for !as.state.pq.IsEmpty() {
		if err := o.checkAbort(as.state.numSettledNodes); err != nil {
			return Result{}, err
		}

		uNode, _ := as.state.pq.ExtractMin()
		u := uNode.GetItem()
		if !as.state.settle(u) {
			continue
		}

		if u == tIdx {
			return buildResult(as.graph, &as.state, sIdx, tIdx)
		}

		if err := as.graphSearchUni(u); err != nil {
			return Result{}, err
		}
	}

	return newNoPathResult(as.state.numSettledNodes), nil
}

func (as *AStar) graphSearchUni(u da.Index) error {
	uDist := as.state.info[u].GetDist()
	for _, e := range as.graph.OutEdges(u) {
		v := e.GetHead()
		if v == u || as.state.info[v].IsSettled() {
			continue
		}

		newDist := uDist + e.GetLength()
		if newDist >= as.state.info[v].GetDist() {
			continue
		}
		if err := as.checkPosition(v); err != nil {
			return err
		}
		as.state.info[v].update(newDist, newVertexEdgePair(u, e.GetEdgeId()))
		as.state.pq.Insert(newDist+as.heuristic(v), v)
	}
	return nil
}

// heuristic. memoised great-circle distance from u to the target, u must have a position.
func (as *AStar) heuristic(u da.Index) float64 {
	vi := &as.state.info[u]
	if !vi.hasHeuristic {
		pos, _ := as.graph.Position(u)
		vi.heuristic = as.estimator.Distance(pos, as.target)
		vi.hasHeuristic = true
	}
	return vi.heuristic
}

func (as *AStar) checkPosition(u da.Index) error {
	if _, ok := as.graph.Position(u); !ok {
		return util.WrapErrorf(ErrMissingPosition, util.ErrBadParamInput,
			"heuristic search needs the position of node %d", as.graph.NodeIDOf(u))
	}
	return nil
}
