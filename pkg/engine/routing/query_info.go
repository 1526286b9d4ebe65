package routing

import (
	"math"

	"github.com/lintang-b-s/roadrouter/pkg"
	da "github.com/lintang-b-s/roadrouter/pkg/datastructure"
)

// vertexEdgePair is the predecessor link of a vertex: the vertex it was reached from and the edge used.
type vertexEdgePair struct {
	vertex da.Index
	edge   da.Index
}

func (ve vertexEdgePair) getEdge() da.Index {
	return ve.edge
}

func (ve vertexEdgePair) getVertex() da.Index {
	return ve.vertex
}

func (ve vertexEdgePair) isValid() bool {
	return ve.vertex != da.INVALID_VERTEX_ID
}

func newVertexEdgePair(vertex, edge da.Index) vertexEdgePair {
	return vertexEdgePair{
		vertex: vertex,
		edge:   edge,
	}
}

type VertexInfo struct {
	dist   float64 // best known cost from s
	parent vertexEdgePair
	// settled: dist is the shortest path cost from s and never changes again
	settled bool

	heuristic    float64
	hasHeuristic bool
}

func (vi *VertexInfo) GetDist() float64 {
	return vi.dist
}

func (vi *VertexInfo) GetParent() vertexEdgePair {
	return vi.parent
}

func (vi *VertexInfo) IsSettled() bool {
	return vi.settled
}

func (vi *VertexInfo) update(dist float64, parent vertexEdgePair) {
	vi.dist = dist
	vi.parent = parent
}

// searchState is the per-query state of a label-setting search. it is never shared between queries.
type searchState struct {
	info            []VertexInfo
	pq              *da.MinHeap[da.Index]
	numSettledNodes int
}

func newSearchState() searchState {
	return searchState{
		info: make([]VertexInfo, 0),
		pq:   da.NewdAryHeap[da.Index](pkg.DEFAULT_HEAP_ARITY),
	}
}

// preallocate resets the state for a graph with n vertices.
func (st *searchState) preallocate(n int) {
	if cap(st.info) >= n {
		st.info = st.info[:n]
		st.pq.Clear()
	} else {
		st.info = make([]VertexInfo, n)
		st.pq.Preallocate(n)
	}
	for i := range st.info {
		st.info[i] = VertexInfo{
			dist:   math.Inf(1),
			parent: newVertexEdgePair(da.INVALID_VERTEX_ID, da.INVALID_EDGE_ID),
		}
	}
	st.numSettledNodes = 0
}

// settle marks u as finalized. returns false if u was already settled, i.e. the popped entry is stale.
func (st *searchState) settle(u da.Index) bool {
	if st.info[u].settled {
		return false
	}
	st.info[u].settled = true
	st.numSettledNodes++
	return true
}
