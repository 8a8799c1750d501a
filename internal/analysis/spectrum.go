package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/bounceball/internal/env"
)

// Spectrum returns the amplitude spectrum of the height signal, mean
// removed, for frequencies k/(n*dt) with k in [1, n/2].
func Spectrum(samples []env.Sample, dt float64) (freqs, amps []float64) {
	n := len(samples)
	if n < 4 || dt <= 0 {
		return nil, nil
	}

	mean := 0.0
	for _, s := range samples {
		mean += s.Position
	}
	mean /= float64(n)

	x := make([]float64, n)
	for i, s := range samples {
		x[i] = s.Position - mean
	}

	coeffs := fft.FFTReal(x)
	half := n / 2
	freqs = make([]float64, half)
	amps = make([]float64, half)
	for k := 1; k <= half; k++ {
		freqs[k-1] = float64(k) / (float64(n) * dt)
		amps[k-1] = cmplx.Abs(coeffs[k]) / float64(n)
	}
	return freqs, amps
}

// DominantPeriod is the period of the strongest spectral line, i.e. the
// typical time between bounces. It is 0 when the episode is too short.
func DominantPeriod(samples []env.Sample, dt float64) float64 {
	freqs, amps := Spectrum(samples, dt)
	best, bestAmp := -1, math.Inf(-1)
	for i, a := range amps {
		if a > bestAmp {
			best, bestAmp = i, a
		}
	}
	if best < 0 || bestAmp == 0 {
		return 0
	}
	return 1 / freqs[best]
}
