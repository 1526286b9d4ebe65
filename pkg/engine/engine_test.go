package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewEngine(t *testing.T) {
	nodes := []datastructure.NodeRecord{
		datastructure.NewNodeRecord(1, 37.3891, -5.9845),
		datastructure.NewNodeRecord(2, 37.3895, -5.9830),
		datastructure.NewNodeRecord(3, 37.3900, -5.9822),
	}
	edges := []datastructure.EdgeRecord{
		datastructure.NewEdgeRecord(1, 2, 150, "Avenida de la Reina Mercedes"),
		datastructure.NewEdgeRecord(2, 3, 100, "Calle Bami"),
	}
	filename := filepath.Join(t.TempDir(), "seville.graph")
	require.NoError(t, datastructure.WriteRecords(filename, nodes, edges))

	e, err := NewEngine(filename, zap.NewNop())
	require.NoError(t, err)

	re := e.GetRoutingEngine()
	assert.Equal(t, 3, re.GetGraph().NumberOfVertices())

	ucs, err := re.ShortestPathUniformCost(1, 3)
	require.NoError(t, err)
	astar, err := re.ShortestPathHeuristic(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 250.0, ucs.Cost)
	assert.Equal(t, ucs.Path, astar.Path)
}

func TestNewEngineMissingSnapshot(t *testing.T) {
	_, err := NewEngine(filepath.Join(t.TempDir(), "missing.graph"), zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
