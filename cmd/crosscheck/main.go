package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/lintang-b-s/roadrouter/pkg/engine"
	"github.com/lintang-b-s/roadrouter/pkg/evaluation"
	"github.com/lintang-b-s/roadrouter/pkg/logger"
	"github.com/lintang-b-s/roadrouter/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	graphPath = flag.String("graph", "", "graph snapshot (default GRAPH_PATH)")
	queries   = flag.Int("queries", 0, "number of random queries (default CROSSCHECK_QUERIES)")
	workers   = flag.Int("workers", 0, "number of workers (default CROSSCHECK_WORKERS)")
	seed      = flag.Uint64("seed", 0, "random seed (default CROSSCHECK_SEED)")
	tolerance = flag.Float64("tolerance", 1e-6, "largest cost difference in meters still counted as agreement")
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

	cfg := evaluation.Config{
		Queries:   *queries,
		Workers:   *workers,
		Seed:      *seed,
		Tolerance: *tolerance,
	}
	if cfg.Queries == 0 {
		cfg.Queries = viper.GetInt("CROSSCHECK_QUERIES")
	}
	if cfg.Workers == 0 {
		cfg.Workers = viper.GetInt("CROSSCHECK_WORKERS")
	}
	if cfg.Seed == 0 {
		cfg.Seed = viper.GetUint64("CROSSCHECK_SEED")
	}
	if *graphPath == "" {
		*graphPath = viper.GetString("GRAPH_PATH")
	}

	routingEngine, err := engine.NewEngine(*graphPath, logger)
	if err != nil {
		logger.Fatal("failed to load graph", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := evaluation.Run(ctx, routingEngine.GetRoutingEngine(), cfg, logger)
	if err != nil {
		logger.Fatal("cross-check failed", zap.Error(err))
	}

	for _, m := range report.Mismatches {
		fmt.Printf("mismatch %d -> %d: dijkstra %.6f, astar %.6f\n", m.Source, m.Target, m.UniformCost, m.Heuristic)
	}
	fmt.Printf("queries: %d, agreements: %d, unreachable: %d, mismatches: %d\n", report.Queries,
		report.Agreements, report.Unreachable, len(report.Mismatches))
	fmt.Printf("admissibility violations: %d, triangle violations: %d, reachability violations: %d\n",
		report.AdmissibilityViolations, report.TriangleViolations, report.ReachabilityViolations)
	if report.Queries > 0 {
		fmt.Printf("avg settled: dijkstra %.1f, astar %.1f\n",
			float64(report.UniformCostSettled)/float64(report.Queries),
			float64(report.HeuristicSettled)/float64(report.Queries))
	}
	if !report.OK() {
		os.Exit(1)
	}
}
