package evaluation

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/lintang-b-s/roadrouter/pkg"
	"github.com/lintang-b-s/roadrouter/pkg/concurrent"
	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/engine/routing"
	"github.com/lintang-b-s/roadrouter/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Queries int
	Workers int
	Seed    uint64
	// Tolerance is the largest cost difference, in meters, still counted as agreement.
	Tolerance float64
}

type Mismatch struct {
	Source, Target datastructure.NodeID
	UniformCost    float64
	Heuristic      float64
}

type Report struct {
	Queries     int
	Agreements  int
	Unreachable int
	Mismatches  []Mismatch
	// a positioned source whose great-circle distance to the target exceeds the road distance.
	AdmissibilityViolations int
	// cost(s, t) > cost(s, m) + cost(m, t) for the random via node m of a query.
	TriangleViolations int
	// s and t are strongly connected but the search found no path.
	ReachabilityViolations int
	UniformCostSettled int64
	HeuristicSettled   int64
	Elapsed            time.Duration
}

func (r Report) OK() bool {
	return len(r.Mismatches) == 0 && r.AdmissibilityViolations == 0 && r.TriangleViolations == 0 &&
		r.ReachabilityViolations == 0
}

type query struct {
	s, t, via datastructure.NodeID
}

type outcome struct {
	q          query
	ucs, astar routing.Result
	viaCost    float64
	// the heuristic search was skipped because a node it reached has no position
	noPosition bool
	err        error
}

// Run answers cfg.Queries random queries with both searches on a worker pool and compares them.
func Run(ctx context.Context, re *routing.RoutingEngine, cfg Config, log *zap.Logger) (Report, error) {
	graph := re.GetGraph()
	n := graph.NumberOfVertices()
	if n == 0 || cfg.Queries <= 0 {
		return Report{}, util.WrapErrorf(nil, util.ErrBadParamInput, "nothing to check: %d nodes, %d queries",
			n, cfg.Queries)
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = pkg.COST_EPSILON
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	queries := make([]query, cfg.Queries)
	for i := range queries {
		queries[i] = query{
			s:   graph.NodeIDOf(datastructure.Index(rng.Intn(n))),
			t:   graph.NodeIDOf(datastructure.Index(rng.Intn(n))),
			via: graph.NodeIDOf(datastructure.Index(rng.Intn(n))),
		}
	}

	start := time.Now()
	components := graph.RunKosaraju()
	_, largest := components.Largest()
	log.Info("Strongly connected components computed", zap.Int("components", components.Count()),
		zap.Int("largest", largest))

	log.Info("Starting cross-check...", zap.Int("queries", cfg.Queries), zap.Int("workers", cfg.Workers),
		zap.Uint64("seed", cfg.Seed))

	g, gctx := errgroup.WithContext(ctx)
	workers := concurrent.NewWorkerPool[query, outcome](cfg.Workers, len(queries))

	g.Go(func() error {
		defer workers.Close()
		for _, q := range queries {
			if err := workers.Submit(gctx, q); err != nil {
				return err
			}
		}
		return nil
	})

	workers.Start(gctx, func(ctx context.Context, q query) outcome {
		return runQuery(ctx, re, q)
	})
	g.Go(func() error {
		workers.Wait()
		return nil
	})

	report := Report{Mismatches: make([]Mismatch, 0)}
	g.Go(func() error {
		for o := range workers.CollectResults() {
			if o.err != nil {
				return o.err
			}
			report.add(re, components, o, cfg.Tolerance)
			if report.Queries%1000 == 0 {
				log.Info("cross-check progress", zap.Int("done", report.Queries))
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	if report.Queries != len(queries) {
		return Report{}, util.WrapErrorf(ctx.Err(), util.ErrInternalServerError,
			"cross-check stopped after %d of %d queries", report.Queries, len(queries))
	}

	report.Elapsed = time.Since(start)
	log.Info("Cross-check done.", zap.Int("agreements", report.Agreements),
		zap.Int("unreachable", report.Unreachable), zap.Int("mismatches", len(report.Mismatches)),
		zap.Int("admissibility_violations", report.AdmissibilityViolations),
		zap.Int("triangle_violations", report.TriangleViolations),
		zap.Int("reachability_violations", report.ReachabilityViolations), zap.Duration("elapsed", report.Elapsed))
	return report, nil
}

func runQuery(ctx context.Context, re *routing.RoutingEngine, q query) outcome {
	o := outcome{q: q}
	opt := routing.WithContext(ctx)

	o.ucs, o.err = re.ShortestPathUniformCost(q.s, q.t, opt)
	if o.err != nil {
		return o
	}

	o.astar, o.err = re.ShortestPathHeuristic(q.s, q.t, opt)
	if errors.Is(o.err, routing.ErrMissingPosition) {
		o.noPosition, o.err = true, nil
	}
	if o.err != nil {
		return o
	}

	sm, err := re.ShortestPathUniformCost(q.s, q.via, opt)
	if err != nil {
		o.err = err
		return o
	}
	mt, err := re.ShortestPathUniformCost(q.via, q.t, opt)
	if err != nil {
		o.err = err
		return o
	}
	o.viaCost = sm.Cost + mt.Cost
	return o
}

func (r *Report) add(re *routing.RoutingEngine, components *datastructure.Components, o outcome,
	tolerance float64) {
	r.Queries++
	r.UniformCostSettled += int64(o.ucs.Settled)
	r.HeuristicSettled += int64(o.astar.Settled)

	if !math.IsInf(o.viaCost, 1) && o.ucs.Cost > o.viaCost+tolerance {
		r.TriangleViolations++
	}

	if !o.ucs.Found() {
		r.Unreachable++
		sIdx, _ := re.GetGraph().IndexOf(o.q.s)
		tIdx, _ := re.GetGraph().IndexOf(o.q.t)
		if components.SameComponent(sIdx, tIdx) {
			r.ReachabilityViolations++
		}
	} else if h, ok := re.LowerBound(o.q.s, o.q.t); ok && h > o.ucs.Cost+tolerance {
		r.AdmissibilityViolations++
	}

	if o.noPosition {
		return
	}
	if o.ucs.Found() == o.astar.Found() && (!o.ucs.Found() || math.Abs(o.ucs.Cost-o.astar.Cost) <= tolerance) {
		r.Agreements++
		return
	}
	r.Mismatches = append(r.Mismatches, Mismatch{
		Source:      o.q.s,
		Target:      o.q.t,
		UniformCost: o.ucs.Cost,
		Heuristic:   o.astar.Cost,
	})
}
