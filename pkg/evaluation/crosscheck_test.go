package evaluation

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/engine/routing"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func gridEngine(t *testing.T) *routing.RoutingEngine {
	const side = 12
	rng := rand.New(rand.NewSource(3))
	nodes := make([]datastructure.NodeRecord, 0, side*side)
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			nodes = append(nodes, datastructure.NewNodeRecord(datastructure.NodeID(1000+i*side+j),
				37.38+float64(i)*0.001, -5.99+float64(j)*0.001))
		}
	}

	edges := make([]datastructure.EdgeRecord, 0)
	connect := func(a, b int) {
		straight := geo.CalculateHaversineDistance(*nodes[a].Position, *nodes[b].Position)
		edges = append(edges, datastructure.NewEdgeRecord(nodes[a].ID, nodes[b].ID, straight*(1+rng.Float64()), ""))
	}
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			u := i*side + j
			if j+1 < side {
				connect(u, u+1)
				if rng.Intn(4) != 0 {
					connect(u+1, u)
				}
			}
			if i+1 < side {
				connect(u, u+side)
				if rng.Intn(4) != 0 {
					connect(u+side, u)
				}
			}
		}
	}

	g, err := datastructure.Materialize(nodes, edges)
	require.NoError(t, err)
	return routing.NewRoutingEngine(g, zap.NewNop())
}

func TestRun(t *testing.T) {
	re := gridEngine(t)
	cfg := Config{Queries: 300, Workers: 4, Seed: 42}

	report, err := Run(context.Background(), re, cfg, zap.NewNop())
	require.NoError(t, err)

	assert.True(t, report.OK(), "mismatches: %v", report.Mismatches)
	assert.Equal(t, 300, report.Queries)
	assert.Equal(t, 300, report.Agreements)
	assert.LessOrEqual(t, report.HeuristicSettled, report.UniformCostSettled)
	assert.Positive(t, report.UniformCostSettled)

	again, err := Run(context.Background(), re, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, report.Unreachable, again.Unreachable)
	assert.Equal(t, report.UniformCostSettled, again.UniformCostSettled)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, gridEngine(t), Config{Queries: 50, Workers: 2, Seed: 1}, zap.NewNop())
	assert.Error(t, err)
}

func TestRunInvalidConfig(t *testing.T) {
	_, err := Run(context.Background(), gridEngine(t), Config{Queries: 0, Workers: 2}, zap.NewNop())
	assert.ErrorIs(t, err, util.ErrBadParamInput)
}

func TestReportCountsMismatch(t *testing.T) {
	re := gridEngine(t)
	r := Report{}
	components := re.GetGraph().RunKosaraju()
	r.add(re, components, outcome{
		q:       query{s: 1000, t: 1001, via: 1000},
		ucs:     routing.Result{Cost: 100, Path: []datastructure.NodeID{1000, 1001}},
		astar:   routing.Result{Cost: 120, Path: []datastructure.NodeID{1000, 1001}},
		viaCost: 100,
	}, 1e-6)

	assert.Equal(t, 1, r.Queries)
	assert.Zero(t, r.Agreements)
	require.Len(t, r.Mismatches, 1)
	assert.Equal(t, 120.0, r.Mismatches[0].Heuristic)
	// straight line 1000 -> 1001 is about 88 m
	assert.Zero(t, r.AdmissibilityViolations)
	assert.False(t, r.OK())

	// a node shares a component with itself, so "no path" is a defect here
	r = Report{}
	r.add(re, components, outcome{
		q:       query{s: 1000, t: 1000, via: 1000},
		ucs:     routing.Result{Cost: math.Inf(1), Path: []datastructure.NodeID{}},
		astar:   routing.Result{Cost: math.Inf(1), Path: []datastructure.NodeID{}},
		viaCost: math.Inf(1),
	}, 1e-6)
	assert.Equal(t, 1, r.Unreachable)
	assert.Equal(t, 1, r.ReachabilityViolations)
	assert.Equal(t, 1, r.Agreements)
	assert.False(t, r.OK())
}
