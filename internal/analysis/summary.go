package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/bounceball/internal/dynamo"
)

// Summary aggregates the outcomes of many episodes.
type Summary struct {
	Episodes        int
	MeanSteps       float64
	StdSteps        float64
	MedianSteps     float64
	MeanReturn      float64
	StdReturn       float64
	MedianReturn    float64
	MeanBounces     float64
	TerminationRate float64
	TruncationRate  float64
}

func Summarize(results []*dynamo.Result) Summary {
	var s Summary
	steps := make([]float64, 0, len(results))
	returns := make([]float64, 0, len(results))
	bounces := make([]float64, 0, len(results))
	terminated, truncated := 0, 0

	for _, r := range results {
		if r == nil {
			continue
		}
		steps = append(steps, float64(r.StepsTaken))
		returns = append(returns, r.Return)
		bounces = append(bounces, float64(r.Bounces))
		if r.Terminated {
			terminated++
		}
		if r.Truncated {
			truncated++
		}
	}

	s.Episodes = len(steps)
	if s.Episodes == 0 {
		return s
	}

	s.MeanSteps, s.StdSteps = meanStd(steps)
	s.MeanReturn, s.StdReturn = meanStd(returns)
	s.MeanBounces = stat.Mean(bounces, nil)
	s.MedianSteps = median(steps)
	s.MedianReturn = median(returns)
	s.TerminationRate = float64(terminated) / float64(s.Episodes)
	s.TruncationRate = float64(truncated) / float64(s.Episodes)
	return s
}

// meanStd returns the mean and sample standard deviation, with std 0 for a
// single value.
func meanStd(x []float64) (float64, float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}

func median(x []float64) float64 {
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
