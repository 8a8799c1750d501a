package optim

import (
	"context"
	"fmt"
	"maps"
	"math"

	"github.com/san-kum/bounceball/internal/analysis"
	"github.com/san-kum/bounceball/internal/experiment"
)

// Objective scores one parameter assignment; higher is better.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search evaluates every point of the grid on top of base and returns the
// best assignment and its score. The first error aborts the search.
func (g *GridSearch) Search(ctx context.Context, base map[string]float64, objective Objective) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("optim: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(-1)
	var bestParams map[string]float64
	current := maps.Clone(base)
	if current == nil {
		current = make(map[string]float64)
	}

	err := g.searchRecursive(ctx, 0, current, objective, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if depth == len(g.paramNames) {
		if err := ctx.Err(); err != nil {
			return err
		}
		val, err := objective(ctx, current)
		if err != nil {
			return err
		}
		if val > *best {
			*best = val
			*bestParams = maps.Clone(current)
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := maps.Clone(current)
		next[paramName] = val
		if err := g.searchRecursive(ctx, depth+1, next, objective, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}

// MeanReturn scores params by the mean return of an ensemble of episodes.
// Every evaluation uses the same seeds so candidates face the same balls.
func MeanReturn(base experiment.Config, episodes int, seedStart int64) Objective {
	return func(ctx context.Context, params map[string]float64) (float64, error) {
		cfg := base
		cfg.Params = params
		results, err := experiment.NewEnsemble(cfg, episodes, seedStart).Run(ctx)
		if err != nil {
			return 0, err
		}
		return analysis.Summarize(results).MeanReturn, nil
	}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}
