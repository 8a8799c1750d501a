package metrics

import (
	"math"

	"github.com/san-kum/bounceball/internal/dynamo"
)

type MaxHeight struct {
	name    string
	max     float64
	samples int
}

func NewMaxHeight() *MaxHeight {
	return &MaxHeight{
		name: "max_height",
	}
}

func (m *MaxHeight) Name() string { return m.name }

func (m *MaxHeight) Observe(x dynamo.State, a dynamo.Action, t float64) {
	if len(x) == 0 {
		return
	}
	if m.samples == 0 {
		m.max = x[0]
	}
	m.max = math.Max(m.max, x[0])
	m.samples++
}

func (m *MaxHeight) Value() float64 { return m.max }

func (m *MaxHeight) Reset() {
	m.max = 0
	m.samples = 0
}

// Grounded is the fraction of samples that ended a step below the ground,
// which happens when a weak rebound runs out of step before it lands again.
type Grounded struct {
	name       string
	violations int
	samples    int
}

func NewGrounded() *Grounded {
	return &Grounded{
		name: "grounded",
	}
}

func (g *Grounded) Name() string {
	return g.name
}

func (g *Grounded) Observe(x dynamo.State, a dynamo.Action, t float64) {
	if len(x) == 0 {
		return
	}
	g.samples++
	if x[0] < 0 {
		g.violations++
	}
}

func (g *Grounded) Value() float64 {
	if g.samples == 0 {
		return 0
	}
	return float64(g.violations) / float64(g.samples)
}

func (g *Grounded) Reset() {
	g.violations = 0
	g.samples = 0
}
