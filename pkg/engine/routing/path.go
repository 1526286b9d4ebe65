package routing

import (
	"math"

	da "github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/util"
)

// Result of a point-to-point query. Cost is +Inf and Path empty when t is unreachable from s.
type Result struct {
	Cost float64
	// Path holds the node ids from s to t inclusive.
	Path []da.NodeID
	// Edges holds the input edge ids along Path, len(Edges) == len(Path)-1 for a found path.
	Edges []da.Index
	// Settled is the number of nodes the search finalized.
	Settled int
}

func (r Result) Found() bool {
	return !math.IsInf(r.Cost, 1)
}

func newNoPathResult(settled int) Result {
	return Result{
		Cost:    math.Inf(1),
		Path:    []da.NodeID{},
		Edges:   []da.Index{},
		Settled: settled,
	}
}

func newTrivialResult(s da.NodeID) Result {
	return Result{
		Cost:  0,
		Path:  []da.NodeID{s},
		Edges: []da.Index{},
	}
}

// reconstructPath walks the predecessor links from t back to s. the walk must end at s within |V| steps,
// otherwise the search that filled info is broken.
func reconstructPath(graph *da.Graph, info []VertexInfo, s, t da.Index) ([]da.NodeID, []da.Index, error) {
	vertices := make([]da.Index, 0, 16)
	edges := make([]da.Index, 0, 16)

	cur := t
	for steps := 0; cur != s; steps++ {
		if steps >= len(info) {
			return nil, nil, util.WrapErrorf(ErrBrokenPredecessorChain, util.ErrInternalServerError,
				"predecessor chain from %d does not reach %d within %d steps", graph.NodeIDOf(t),
				graph.NodeIDOf(s), len(info))
		}
		parent := info[cur].GetParent()
		if !parent.isValid() {
			return nil, nil, util.WrapErrorf(ErrBrokenPredecessorChain, util.ErrInternalServerError,
				"predecessor chain from %d ends at %d instead of %d", graph.NodeIDOf(t),
				graph.NodeIDOf(cur), graph.NodeIDOf(s))
		}
		vertices = append(vertices, cur)
		edges = append(edges, parent.getEdge())
		cur = parent.getVertex()
	}
	vertices = append(vertices, s)

	path := make([]da.NodeID, len(vertices))
	for i, u := range util.ReverseG(vertices) {
		path[i] = graph.NodeIDOf(u)
	}
	return path, util.ReverseG(edges), nil
}

// buildResult. result for a search that settled t.
func buildResult(graph *da.Graph, st *searchState, s, t da.Index) (Result, error) {
	path, edges, err := reconstructPath(graph, st.info, s, t)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Cost:    st.info[t].GetDist(),
		Path:    path,
		Edges:   edges,
		Settled: st.numSettledNodes,
	}, nil
}
