package experiment

import (
	"context"
	"maps"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/bounceball/internal/dynamo"
)

// Ensemble plays independent episodes with consecutive seeds. Every episode
// gets its own env, policy and metrics, so nothing is shared across goroutines.
type Ensemble struct {
	base      Config
	registry  *Registry
	numRuns   int
	seedStart int64
	workers   int
}

func NewEnsemble(base Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{
		base:      base,
		registry:  NewRegistry(),
		numRuns:   numRuns,
		seedStart: seedStart,
		workers:   runtime.GOMAXPROCS(0),
	}
}

func (e *Ensemble) SetWorkers(n int) {
	if n > 0 {
		e.workers = n
	}
}

func (e *Ensemble) Run(ctx context.Context) ([]*dynamo.Result, error) {
	results := make([]*dynamo.Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			cfg := e.base
			cfg.Seed = e.seedStart + int64(idx)
			cfg.Params = maps.Clone(e.base.Params)
			if cfg.Params == nil {
				cfg.Params = make(map[string]float64)
			}
			// offset so the policy stream never mirrors the env stream
			cfg.Params["seed"] = e.base.Params["seed"] + float64(cfg.Seed) + 1

			ctrl, err := e.registry.GetPolicy(cfg.Policy, cfg.Params)
			if err != nil {
				return err
			}

			exp := New(cfg)
			if err := exp.Setup(ctrl, e.registry.DefaultMetrics(cfg.Gravity)); err != nil {
				return err
			}

			res, err := exp.Run(ctx)
			if err != nil {
				return err
			}
			results[idx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
