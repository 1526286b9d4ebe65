package routing

import (
	da "github.com/lintang-b-s/roadrouter/pkg/datastructure"
)

// Dijkstra is uniform-cost search over a Graph. a Dijkstra value keeps its search state between queries
// to reuse allocations, so it must not be used by more than one goroutine at a time.
type Dijkstra struct {
	graph *da.Graph
	state searchState
}

func NewDijkstra(graph *da.Graph) *Dijkstra {
	return &Dijkstra{
		graph: graph,
		state: newSearchState(),
	}
}

// ShortestPath computes a minimum-length path from s to t. an unreachable t is not an error: the result
// has cost +Inf and an empty path.
func (us *Dijkstra) ShortestPath(s, t da.NodeID, opts ...QueryOption) (Result, error) {
	sIdx, tIdx, err := resolveEndpoints(us.graph, s, t)
	if err != nil {
		return Result{}, err
	}
	if s == t {
		return newTrivialResult(s), nil
	}
	o := newQueryOptions(opts)

	us.state.preallocate(us.graph.NumberOfVertices())
	us.state.info[sIdx].dist = 0
	us.state.pq.Insert(0, sIdx)

	for !us.state.pq.IsEmpty() {
		if err := o.checkAbort(us.state.numSettledNodes); err != nil {
			return Result{}, err
		}

		uNode, _ := us.state.pq.ExtractMin()
		u := uNode.GetItem()
		if !us.state.settle(u) {
			// stale entry, u already has its final cost
			continue
		}

		if u == tIdx {
			return buildResult(us.graph, &us.state, sIdx, tIdx)
		}

		us.graphSearchUni(u)
	}

	return newNoPathResult(us.state.numSettledNodes), nil
}

// graphSearchUni relaxes the out edges of the settled vertex u.
func (us *Dijkstra) graphSearchUni(u da.Index) {
	uDist := us.state.info[u].GetDist()
	for _, e := range us.graph.OutEdges(u) {
		v := e.GetHead()
		if v == u || us.state.info[v].IsSettled() {
			continue
		}

		newDist := uDist + e.GetLength()
		if newDist < us.state.info[v].GetDist() {
			us.state.info[v].update(newDist, newVertexEdgePair(u, e.GetEdgeId()))
			us.state.pq.Insert(newDist, v)
		}
	}
}
