package streetindex

import (
	"testing"

	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func buildIndex(t *testing.T) *StreetIndex {
	nodes := []datastructure.NodeRecord{
		datastructure.NewNodeRecord(30, 37.3891, -5.9845),
		datastructure.NewNodeRecord(10, 37.3895, -5.9830),
		datastructure.NewNodeRecord(20, 37.3900, -5.9822),
		datastructure.NodeRecordWithoutPosition(40),
	}
	edges := []datastructure.EdgeRecord{
		datastructure.NewEdgeRecord(30, 10, 140, "Calle Sierpes"),
		datastructure.NewEdgeRecord(10, 30, 140, "Calle Sierpes"),
		datastructure.NewEdgeRecord(30, 20, 150, "Calle Sierpes"),
		datastructure.NewEdgeRecord(40, 20, 80, "calle San Fernando"),
		datastructure.NewEdgeRecord(20, 10, 95, "Avenida de la Constitucion"),
		datastructure.NewEdgeRecord(10, 20, 95, ""),
		datastructure.NewEdgeRecord(20, 30, 90, "Calle Betis"),
	}
	g, err := datastructure.Materialize(nodes, edges)
	require.NoError(t, err)

	si := NewStreetIndex()
	si.Build(g, zap.NewNop())
	return si
}

func TestFindStreetNodes(t *testing.T) {
	si := buildIndex(t)
	assert.Equal(t, 4, si.Len())

	nodes := si.FindStreetNodes("Calle Sierpes")
	require.Len(t, nodes, 2)
	assert.Equal(t, datastructure.NodeID(10), nodes[0].ID)
	assert.Equal(t, datastructure.NodeID(30), nodes[1].ID)
	require.NotNil(t, nodes[1].Position)
	assert.Equal(t, 37.3891, nodes[1].Position.Lat)

	nodes = si.FindStreetNodes("calle San Fernando")
	require.Len(t, nodes, 1)
	assert.Equal(t, datastructure.NodeID(40), nodes[0].ID)
	assert.Nil(t, nodes[0].Position)

	assert.Empty(t, si.FindStreetNodes("calle sierpes"))
	assert.Empty(t, si.FindStreetNodes(""))
}

func TestSuggestStreets(t *testing.T) {
	si := buildIndex(t)

	assert.Equal(t, []string{"Calle Betis", "calle San Fernando", "Calle Sierpes"}, si.SuggestStreets("CALLE", 0))
	assert.Equal(t, []string{"calle San Fernando", "Calle Sierpes"}, si.SuggestStreets("calle s", 10))
	assert.Equal(t, []string{"Calle Betis"}, si.SuggestStreets("calle", 1))
	assert.Equal(t, []string{"Avenida de la Constitucion"}, si.SuggestStreets("av", 10))
	assert.Empty(t, si.SuggestStreets("plaza", 10))
}
