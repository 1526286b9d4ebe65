package datastructure

import (
	"errors"
	"math"
	"testing"

	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sevilleNodes() []NodeRecord {
	return []NodeRecord{
		NewNodeRecord(1716, 37.3891, -5.9845),
		NewNodeRecord(5260, 37.3895, -5.9830),
		NewNodeRecord(2227, 37.3900, -5.9822),
		NewNodeRecord(9149, 37.3910, -5.9810), // isolated
	}
}

func TestMaterialize(t *testing.T) {
	nodes := sevilleNodes()
	edges := []EdgeRecord{
		NewEdgeRecord(1716, 5260, 140, "Avenida de la Reina Mercedes"),
		NewEdgeRecord(5260, 2227, 95, "Calle Bami"),
		NewEdgeRecord(1716, 2227, 300, ""),
		NewEdgeRecord(1716, 5260, 150, "Avenida de la Reina Mercedes"),
	}

	g, err := Materialize(nodes, edges)
	require.NoError(t, err)

	assert.Equal(t, 4, g.NumberOfVertices())
	assert.Equal(t, 4, g.NumberOfEdges())

	for _, n := range nodes {
		u, ok := g.IndexOf(n.ID)
		require.True(t, ok, "node %d must be indexed", n.ID)
		assert.Equal(t, n.ID, g.NodeIDOf(u))
		pos, ok := g.Position(u)
		assert.True(t, ok)
		assert.Equal(t, *n.Position, pos)
	}

	isolated, _ := g.IndexOf(9149)
	assert.Equal(t, 0, g.OutDegree(isolated))
	assert.Empty(t, g.OutEdges(isolated))

	src, _ := g.IndexOf(1716)
	require.Equal(t, 3, g.OutDegree(src))
	lengths := []float64{}
	for _, e := range g.OutEdges(src) {
		lengths = append(lengths, e.GetLength())
	}
	// parallel edges are kept and keep their input order
	assert.Equal(t, []float64{140, 300, 150}, lengths)

	first := g.OutEdges(src)[0]
	assert.Equal(t, "Avenida de la Reina Mercedes", g.GetStreetName(&first))
	assert.ElementsMatch(t, []string{"Avenida de la Reina Mercedes", "Calle Bami"}, g.StreetNames())

	_, ok := g.IndexOf(42)
	assert.False(t, ok)
}

func TestMaterializeDoesNotMutateInput(t *testing.T) {
	nodes := sevilleNodes()
	edges := []EdgeRecord{NewEdgeRecord(1716, 5260, 140, "a")}
	nodesCopy := append([]NodeRecord(nil), nodes...)
	edgesCopy := append([]EdgeRecord(nil), edges...)

	_, err := Materialize(nodes, edges)
	require.NoError(t, err)
	assert.Equal(t, nodesCopy, nodes)
	assert.Equal(t, edgesCopy, edges)
}

func TestMaterializeMalformed(t *testing.T) {
	badPos := geo.NewCoordinate(95, 0)

	testCases := []struct {
		name  string
		nodes []NodeRecord
		edges []EdgeRecord
	}{
		{
			name:  "edge references unknown target",
			nodes: sevilleNodes(),
			edges: []EdgeRecord{NewEdgeRecord(1716, 1, 10, "")},
		},
		{
			name:  "edge references unknown source",
			nodes: sevilleNodes(),
			edges: []EdgeRecord{NewEdgeRecord(1, 1716, 10, "")},
		},
		{
			name:  "negative length",
			nodes: sevilleNodes(),
			edges: []EdgeRecord{NewEdgeRecord(1716, 5260, -1, "")},
		},
		{
			name:  "NaN length",
			nodes: sevilleNodes(),
			edges: []EdgeRecord{NewEdgeRecord(1716, 5260, math.NaN(), "")},
		},
		{
			name:  "infinite length",
			nodes: sevilleNodes(),
			edges: []EdgeRecord{NewEdgeRecord(1716, 5260, math.Inf(1), "")},
		},
		{
			name:  "duplicate node id",
			nodes: append(sevilleNodes(), NewNodeRecord(1716, 0, 0)),
		},
		{
			name:  "invalid position",
			nodes: []NodeRecord{{ID: 1, Position: &badPos}},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Materialize(tt.nodes, tt.edges)
			assert.Nil(t, g)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedGraph))
			assert.True(t, errors.Is(err, util.ErrBadParamInput))
		})
	}
}

func TestMaterializeZeroLengthAndSelfLoop(t *testing.T) {
	g, err := Materialize(sevilleNodes(), []EdgeRecord{
		NewEdgeRecord(1716, 1716, 0, ""),
		NewEdgeRecord(1716, 5260, 0, ""),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumberOfEdges())
}

func TestMaterializeWithoutPosition(t *testing.T) {
	g, err := Materialize([]NodeRecord{NodeRecordWithoutPosition(7), NewNodeRecord(8, 1, 1)},
		[]EdgeRecord{NewEdgeRecord(7, 8, 3, "")})
	require.NoError(t, err)

	u, _ := g.IndexOf(7)
	_, ok := g.Position(u)
	assert.False(t, ok)
}

func TestRecords(t *testing.T) {
	nodes := append(sevilleNodes(), NodeRecordWithoutPosition(77))
	edges := []EdgeRecord{
		NewEdgeRecord(2227, 1716, 12.5, "Calle Bami"),
		NewEdgeRecord(1716, 5260, 140, ""),
		NewEdgeRecord(2227, 77, 1, "Calle Bami"),
	}
	g, err := Materialize(nodes, edges)
	require.NoError(t, err)

	gotNodes, gotEdges := g.Records()
	assert.Equal(t, nodes, gotNodes)
	assert.Equal(t, edges, gotEdges)
}

func TestEmptyGraph(t *testing.T) {
	g, err := Materialize(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.NumberOfVertices())
	assert.Equal(t, 0, g.NumberOfEdges())
	assert.Equal(t, "graph{vertices: 0, edges: 0}", g.String())
}
