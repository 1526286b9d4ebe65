package engine

import (
	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/engine/routing"
	"go.uber.org/zap"
)

type Engine struct {
	routingEngine *routing.RoutingEngine
}

func (e *Engine) GetRoutingEngine() *routing.RoutingEngine {
	return e.routingEngine
}

// NewEngine reads a graph snapshot written by the importer and builds a routing engine on top of it.
func NewEngine(graphFilePath string, logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting shortest path query engine...")

	logger.Info("Reading graph from ", zap.String("graphFilePath", graphFilePath))
	graph, err := datastructure.ReadGraph(graphFilePath)
	if err != nil {
		return nil, err
	}
	logger.Info("Graph loaded", zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()), zap.Int("street_names", len(graph.StreetNames())))

	return NewEngineFromGraph(graph, logger), nil
}

func NewEngineFromGraph(graph *datastructure.Graph, logger *zap.Logger) *Engine {
	return &Engine{
		routingEngine: routing.NewRoutingEngine(graph, logger),
	}
}
