package main

import (
	"flag"

	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/logger"
	"github.com/lintang-b-s/roadrouter/pkg/osmparser"
	"github.com/lintang-b-s/roadrouter/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	input  = flag.String("input", "./data/map.osm.pbf", "openstreetmap extract, .osm.pbf or .osm")
	output = flag.String("output", "", "graph snapshot to write (default GRAPH_PATH)")
)

// countDeadEnds counts the vertices without an outgoing edge, e.g. the far end of a oneway stub.
func countDeadEnds(graph *datastructure.Graph) int {
	deadEnds := 0
	for u := 0; u < graph.NumberOfVertices(); u++ {
		if graph.OutDegree(datastructure.Index(u)) == 0 {
			deadEnds++
		}
	}
	return deadEnds
}

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if *output == "" {
		*output = viper.GetString("GRAPH_PATH")
	}

	osmParser := osmparser.NewOSMParser()
	nodes, edges, err := osmParser.ParseFile(*input, logger)
	if err != nil {
		logger.Fatal("failed to parse openstreetmap extract", zap.String("input", *input), zap.Error(err))
	}

	// materialize once so that a broken extract never reaches the snapshot
	graph, err := datastructure.Materialize(nodes, edges)
	if err != nil {
		logger.Fatal("extract does not form a valid graph", zap.Error(err))
	}

	components := graph.RunKosaraju()
	_, largest := components.Largest()
	logger.Info("connectivity", zap.Int("strongly_connected_components", components.Count()),
		zap.Int("largest_component", largest), zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("dead_ends", countDeadEnds(graph)))

	if err := graph.WriteGraph(*output); err != nil {
		logger.Fatal("failed to write graph", zap.String("output", *output), zap.Error(err))
	}
	logger.Sugar().Infof("graph %v written to %s", graph, *output)
}
