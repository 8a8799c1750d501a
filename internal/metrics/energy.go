package metrics

import (
	"math"

	"github.com/san-kum/bounceball/internal/dynamo"
)

func specificEnergy(x dynamo.State, gravity float64) float64 {
	p, v := x[0], x[1]
	return 0.5*v*v - gravity*p
}

// Energy averages the specific mechanical energy 0.5*v² - g*p.
type Energy struct {
	name        string
	gravity     float64
	samples     int
	totalEnergy float64
}

func NewEnergy(gravity float64) *Energy {
	return &Energy{
		name:    "energy",
		gravity: gravity,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State, a dynamo.Action, t float64) {
	if len(x) < 2 {
		return
	}
	e.totalEnergy += specificEnergy(x, e.gravity)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrop tracks the largest energy lost between consecutive samples.
// Without hits every loss comes from a bounce.
type EnergyDrop struct {
	name     string
	gravity  float64
	previous float64
	maxDrop  float64
	samples  int
}

func NewEnergyDrop(gravity float64) *EnergyDrop {
	return &EnergyDrop{
		name:    "energy_drop",
		gravity: gravity,
	}
}

func (e *EnergyDrop) Name() string { return e.name }

func (e *EnergyDrop) Observe(x dynamo.State, a dynamo.Action, t float64) {
	if len(x) < 2 {
		return
	}

	energy := specificEnergy(x, e.gravity)
	if e.samples > 0 {
		e.maxDrop = math.Max(e.maxDrop, e.previous-energy)
	}
	e.previous = energy
	e.samples++
}

func (e *EnergyDrop) Value() float64 {
	return e.maxDrop
}

func (e *EnergyDrop) Reset() {
	e.previous = 0
	e.maxDrop = 0
	e.samples = 0
}
