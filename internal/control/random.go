package control

import (
	"math/rand"

	"github.com/san-kum/bounceball/internal/dynamo"
)

// Random hits with probability P, drawing from its own stream so the
// environment's stream stays reproducible.
type Random struct {
	P   float64
	rng *rand.Rand
}

func NewRandom(p float64, seed int64) *Random {
	return &Random{P: p, rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Compute(x dynamo.State, t float64) dynamo.Action {
	if r.rng.Float64() < r.P {
		return dynamo.ActionHit
	}
	return dynamo.ActionNone
}
