package control

import (
	"fmt"

	"github.com/san-kum/bounceball/internal/dynamo"
)

// Energy keeps the ball's mechanical energy near Target. The PD output is
// thresholded: a positive correction asks for a hit, but only once the ball is
// high enough for the paddle to reach it.
type Energy struct {
	Kp        float64
	Kd        float64
	Target    float64
	Gravity   float64
	HitHeight float64
	prevErr   float64
	prevT     float64
	first     bool
}

func NewEnergy(kp, kd, target, gravity float64) *Energy {
	return &Energy{
		Kp:        kp,
		Kd:        kd,
		Target:    target,
		Gravity:   gravity,
		HitHeight: 4.0,
		first:     true,
	}
}

func (e *Energy) Compute(x dynamo.State, t float64) dynamo.Action {
	if len(x) < 2 {
		return dynamo.ActionNone
	}

	p, v := x[0], x[1]
	err := e.Target - (0.5*v*v - e.Gravity*p)

	u := e.Kp * err
	if !e.first {
		if dt := t - e.prevT; dt > 0 {
			u += e.Kd * (err - e.prevErr) / dt
		}
	}
	e.prevErr = err
	e.prevT = t
	e.first = false

	if u > 0 && p >= e.HitHeight {
		return dynamo.ActionHit
	}
	return dynamo.ActionNone
}

// Reset clears derivative state
func (e *Energy) Reset() {
	e.prevErr = 0
	e.prevT = 0
	e.first = true
}

func (e *Energy) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":        e.Kp,
		"Kd":        e.Kd,
		"Target":    e.Target,
		"HitHeight": e.HitHeight,
	}
}

func (e *Energy) SetParam(name string, value float64) error {
	switch name {
	case "Kp":
		e.Kp = value
	case "Kd":
		e.Kd = value
	case "Target":
		e.Target = value
	case "HitHeight":
		e.HitHeight = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
