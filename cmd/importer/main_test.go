package main

import (
	"testing"

	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountDeadEnds(t *testing.T) {
	nodes := []datastructure.NodeRecord{
		datastructure.NewNodeRecord(1, 37.38, -5.99),
		datastructure.NewNodeRecord(2, 37.39, -5.99),
		datastructure.NewNodeRecord(3, 37.39, -5.98),
		datastructure.NewNodeRecord(4, 37.40, -5.98),
	}
	edges := []datastructure.EdgeRecord{
		datastructure.NewEdgeRecord(1, 2, 1200, "Calle Feria"),
		datastructure.NewEdgeRecord(2, 1, 1200, "Calle Feria"),
		datastructure.NewEdgeRecord(2, 3, 900, "Alameda de Hercules"),
	}
	graph, err := datastructure.Materialize(nodes, edges)
	require.NoError(t, err)

	// 3 is the end of a oneway, 4 is isolated
	assert.Equal(t, 2, countDeadEnds(graph))
}
