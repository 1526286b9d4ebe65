package main

import (
	"bytes"
	"math"
	"testing"

	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/engine/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPrintRoute(t *testing.T) {
	nodes := []datastructure.NodeRecord{
		datastructure.NewNodeRecord(1, 38.5, -120.2),
		datastructure.NewNodeRecord(2, 40.7, -120.95),
		datastructure.NewNodeRecord(3, 43.252, -126.453),
	}
	edges := []datastructure.EdgeRecord{
		datastructure.NewEdgeRecord(1, 2, 260_000, "Highway 1"),
		datastructure.NewEdgeRecord(2, 3, 620_000, "Highway 2"),
	}
	g, err := datastructure.Materialize(nodes, edges)
	require.NoError(t, err)
	re := routing.NewRoutingEngine(g, zap.NewNop())

	res, err := re.ShortestPathHeuristic(1, 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printRoute(&buf, g, res))
	out := buf.String()
	assert.Contains(t, out, "cost: 880000.000 m")
	assert.Contains(t, out, "path: 1 -> 2 -> 3")
	assert.Contains(t, out, "streets: Highway 1, Highway 2")
	assert.Contains(t, out, "polyline: _p~iF~ps|U_ulLnnqC_mqNvxq`@")

	buf.Reset()
	require.NoError(t, printRoute(&buf, g, routing.Result{Cost: math.Inf(1), Path: []datastructure.NodeID{}, Settled: 4}))
	assert.Equal(t, "no path (settled 4 nodes)\n", buf.String())
}
