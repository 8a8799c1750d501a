package control

import "github.com/san-kum/bounceball/internal/dynamo"

type Periodic struct {
	Every int
	calls int
}

func NewPeriodic(every int) *Periodic {
	if every < 1 {
		every = 1
	}
	return &Periodic{Every: every}
}

func (p *Periodic) Compute(x dynamo.State, t float64) dynamo.Action {
	p.calls++
	if p.calls%p.Every == 0 {
		return dynamo.ActionHit
	}
	return dynamo.ActionNone
}

func (p *Periodic) Reset() { p.calls = 0 }
