package routing

import (
	"sync"

	da "github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"go.uber.org/zap"
)

// RoutingEngine answers shortest path queries against one read-only graph. every query borrows its own
// searcher from a pool, so an engine can be queried from several goroutines.
type RoutingEngine struct {
	graph     *da.Graph
	logger    *zap.Logger
	estimator Estimator

	dijkstraPool sync.Pool
	astarPool    sync.Pool
}

func NewRoutingEngine(graph *da.Graph, logger *zap.Logger) *RoutingEngine {
	e := &RoutingEngine{
		graph:     graph,
		logger:    logger,
		estimator: geo.NewEstimator(),
	}
	e.BuildSearcherPool()
	return e
}

func (re *RoutingEngine) GetGraph() *da.Graph {
	return re.graph
}

func (re *RoutingEngine) BuildSearcherPool() {
	re.dijkstraPool = sync.Pool{
		New: func() any {
			return NewDijkstra(re.graph)
		},
	}
	re.astarPool = sync.Pool{
		New: func() any {
			return NewAStar(re.graph, re.estimator)
		},
	}
}

func (re *RoutingEngine) ShortestPathUniformCost(s, t da.NodeID, opts ...QueryOption) (Result, error) {
	us := re.dijkstraPool.Get().(*Dijkstra)
	defer re.dijkstraPool.Put(us)

	res, err := us.ShortestPath(s, t, opts...)
	re.logQuery(UNIFORM_COST, s, t, res, err)
	return res, err
}

func (re *RoutingEngine) ShortestPathHeuristic(s, t da.NodeID, opts ...QueryOption) (Result, error) {
	as := re.astarPool.Get().(*AStar)
	defer re.astarPool.Put(as)

	res, err := as.ShortestPath(s, t, opts...)
	re.logQuery(HEURISTIC, s, t, res, err)
	return res, err
}

func (re *RoutingEngine) ShortestPath(alg Algorithm, s, t da.NodeID, opts ...QueryOption) (Result, error) {
	if alg == HEURISTIC {
		return re.ShortestPathHeuristic(s, t, opts...)
	}
	return re.ShortestPathUniformCost(s, t, opts...)
}

// LowerBound. estimated remaining distance between two positioned nodes, ok is false if either has no
// position or is unknown.
func (re *RoutingEngine) LowerBound(s, t da.NodeID) (float64, bool) {
	sIdx, tIdx, err := resolveEndpoints(re.graph, s, t)
	if err != nil {
		return 0, false
	}
	sPos, sOk := re.graph.Position(sIdx)
	tPos, tOk := re.graph.Position(tIdx)
	if !sOk || !tOk {
		return 0, false
	}
	return re.estimator.Distance(sPos, tPos), true
}

func (re *RoutingEngine) logQuery(alg Algorithm, s, t da.NodeID, res Result, err error) {
	if err != nil {
		re.logger.Debug("shortest path query failed", zap.Stringer("algorithm", alg),
			zap.Int64("source", int64(s)), zap.Int64("target", int64(t)), zap.Error(err))
		return
	}
	re.logger.Debug("shortest path query", zap.Stringer("algorithm", alg),
		zap.Int64("source", int64(s)), zap.Int64("target", int64(t)),
		zap.Float64("cost", res.Cost), zap.Int("settled", res.Settled), zap.Int("path_len", len(res.Path)))
}
