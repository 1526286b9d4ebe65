package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/engine"
	"github.com/lintang-b-s/roadrouter/pkg/engine/routing"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/logger"
	"github.com/lintang-b-s/roadrouter/pkg/spatialindex"
	"github.com/lintang-b-s/roadrouter/pkg/streetindex"
	"github.com/lintang-b-s/roadrouter/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	graphPath  = flag.String("graph", "", "graph snapshot written by the importer (default GRAPH_PATH)")
	algorithm  = flag.String("algorithm", "astar", "dijkstra or astar")
	fromID     = flag.Int64("from", 0, "source node id")
	toID       = flag.Int64("to", 0, "target node id")
	fromLat    = flag.Float64("from_lat", 0, "source latitude, snapped to the nearest node")
	fromLon    = flag.Float64("from_lon", 0, "source longitude, snapped to the nearest node")
	toLat      = flag.Float64("to_lat", 0, "target latitude, snapped to the nearest node")
	toLon      = flag.Float64("to_lon", 0, "target longitude, snapped to the nearest node")
	radius     = flag.Float64("radius", 0, "snapping radius in meters (default SNAP_RADIUS_METERS)")
	maxSettled = flag.Int("max_settled", -1, "abort after settling this many nodes, 0 = no cap (default MAX_SETTLED_NODES)")
	timeout    = flag.Duration("timeout", 0, "abort the search after this long, 0 = no timeout")
	street     = flag.String("street", "", "list the nodes of the street with this exact name")
	suggest    = flag.String("suggest", "", "list street names starting with this prefix")
	limit      = flag.Int("limit", 0, "maximum number of suggestions (default SUGGESTION_LIMIT)")
)

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

	if *graphPath == "" {
		*graphPath = viper.GetString("GRAPH_PATH")
	}
	routingEngine, err := engine.NewEngine(*graphPath, logger)
	if err != nil {
		logger.Fatal("failed to load graph", zap.Error(err))
	}
	re := routingEngine.GetRoutingEngine()

	if *street != "" || *suggest != "" {
		if err := lookupStreets(re.GetGraph(), logger); err != nil {
			logger.Error("street lookup failed", zap.Error(err))
			os.Exit(exitCode(err))
		}
		return
	}

	if err := route(re, logger); err != nil {
		logger.Error("route failed", zap.Error(err))
		os.Exit(exitCode(err))
	}
}

// exitCode: 2 for invalid input, 3 for unknown nodes or nothing to snap to, 1 otherwise.
func exitCode(err error) int {
	var uerr *util.Error
	if !errors.As(err, &uerr) {
		return 1
	}
	switch uerr.Code() {
	case util.ErrBadParamInput:
		return 2
	case util.ErrNotFound:
		return 3
	default:
		return 1
	}
}

func newRouteRequest() routeRequest {
	request := routeRequest{
		Algorithm:  strings.ToLower(*algorithm),
		Radius:     *radius,
		MaxSettled: *maxSettled,
	}
	if request.Radius == 0 {
		request.Radius = viper.GetFloat64("SNAP_RADIUS_METERS")
	}
	if request.MaxSettled < 0 {
		request.MaxSettled = viper.GetInt("MAX_SETTLED_NODES")
	}

	// only flags given on the command line take part in the request
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "from":
			request.FromID = fromID
		case "to":
			request.ToID = toID
		case "from_lat":
			request.FromLat = fromLat
		case "from_lon":
			request.FromLon = fromLon
		case "to_lat":
			request.ToLat = toLat
		case "to_lon":
			request.ToLon = toLon
		}
	})
	return request
}

func route(re *routing.RoutingEngine, log *zap.Logger) error {
	request := newRouteRequest()
	if err := validateRequest(request); err != nil {
		return err
	}
	alg, err := routing.ParseAlgorithm(request.Algorithm)
	if err != nil {
		return err
	}

	var rt *spatialindex.Rtree
	if request.FromID == nil || request.ToID == nil {
		rt = spatialindex.NewRtree()
		rt.Build(re.GetGraph(), log)
	}
	s, err := resolveEndpoint(rt, request.FromID, request.FromLat, request.FromLon, request.Radius, log)
	if err != nil {
		return err
	}
	t, err := resolveEndpoint(rt, request.ToID, request.ToLat, request.ToLon, request.Radius, log)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := re.ShortestPath(alg, s, t, routing.WithContext(ctx), routing.WithMaxSettledNodes(request.MaxSettled))
	if err != nil {
		return err
	}
	log.Info("query done", zap.Stringer("algorithm", alg), zap.Duration("elapsed", time.Since(start)),
		zap.Int("settled", res.Settled))

	return printRoute(os.Stdout, re.GetGraph(), res)
}

func resolveEndpoint(rt *spatialindex.Rtree, id *int64, lat, lon *float64, radius float64,
	log *zap.Logger) (datastructure.NodeID, error) {
	if id != nil {
		return datastructure.NodeID(*id), nil
	}
	q := geo.NewCoordinate(*lat, *lon)
	nodeID, dist, err := rt.Nearest(q, radius)
	if err != nil {
		return 0, err
	}
	log.Info("snapped coordinate to node", zap.Float64("lat", q.Lat), zap.Float64("lon", q.Lon),
		zap.Int64("node", int64(nodeID)), zap.Float64("distance", dist))
	return nodeID, nil
}

func lookupStreets(graph *datastructure.Graph, log *zap.Logger) error {
	request := lookupRequest{Street: *street, Suggest: *suggest, Limit: *limit}
	if err := validateRequest(request); err != nil {
		return err
	}
	if request.Limit == 0 {
		request.Limit = viper.GetInt("SUGGESTION_LIMIT")
	}

	si := streetindex.NewStreetIndex()
	si.Build(graph, log)

	if request.Suggest != "" {
		for _, name := range si.SuggestStreets(request.Suggest, request.Limit) {
			fmt.Println(name)
		}
		return nil
	}

	fmt.Printf("Nodes connected to '%s':\n", request.Street)
	for _, n := range si.FindStreetNodes(request.Street) {
		if n.Position == nil {
			fmt.Printf("%d: -\n", n.ID)
			continue
		}
		fmt.Printf("%d: %v, %v\n", n.ID, n.Position.Lat, n.Position.Lon)
	}
	return nil
}
