package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/bounceball/internal/dynamo"
	"github.com/san-kum/bounceball/internal/env"
	"github.com/san-kum/bounceball/internal/physics"
)

// ContactAudit reports where contact times fell relative to the step [0, dt].
// Early counts retroactive contacts (t < 0), Late counts t > dt.
type ContactAudit struct {
	TimeStep float64
	Samples  int
	Skipped  int
	Early    int
	Late     int
	Min      float64
	Max      float64
}

func newContactAudit(dt float64) ContactAudit {
	return ContactAudit{TimeStep: dt, Min: math.Inf(1), Max: math.Inf(-1)}
}

func (a *ContactAudit) add(t float64) {
	a.Samples++
	a.Min = math.Min(a.Min, t)
	a.Max = math.Max(a.Max, t)
	switch {
	case t < 0:
		a.Early++
	case t > a.TimeStep:
		a.Late++
	}
}

func (a ContactAudit) String() string {
	if a.Samples == 0 {
		return fmt.Sprintf("no contacts (skipped %d)", a.Skipped)
	}
	return fmt.Sprintf("contacts=%d skipped=%d t∈[%.4f, %.4f] dt=%.3f early=%d late=%d",
		a.Samples, a.Skipped, a.Min, a.Max, a.TimeStep, a.Early, a.Late)
}

// AuditContactTimes sweeps a grid of falling states with position in
// [-4, 50] and velocity in [-25, 0) and records the contact time of every
// state that bounces within dt. States with negative specific energy cannot
// be reached from a reset and are skipped.
func AuditContactTimes(b *physics.Ball, dt float64, grid int) ContactAudit {
	audit := newContactAudit(dt)
	if grid < 2 {
		grid = 2
	}

	const (
		minP, maxP = -4.0, 50.0
		minV, maxV = -25.0, 0.0
	)
	for i := 0; i < grid; i++ {
		p := minP + (maxP-minP)*float64(i)/float64(grid-1)
		for j := 0; j < grid; j++ {
			v := minV + (maxV-minV)*float64(j)/float64(grid)
			s := physics.BallState{Position: p, Velocity: v}
			if b.Energy(s) < 0 {
				audit.Skipped++
				continue
			}
			if b.Integrate(s, dt).Position > 0 {
				continue
			}
			audit.add(b.ContactTime(s))
		}
	}
	return audit
}

// AuditEpisodes plays seeded episodes under ctrl and records every contact
// the env resolves.
func AuditEpisodes(cfg dynamo.Config, ctrl dynamo.Controller, episodes int) (ContactAudit, error) {
	audit := newContactAudit(cfg.TimeStep)

	e, err := env.New(cfg)
	if err != nil {
		return audit, err
	}
	for ep := 0; ep < episodes; ep++ {
		seed := cfg.Seed + int64(ep)
		e.Reset(&seed)
		for !e.Done() {
			a := ctrl.Compute(e.State().Vector(), e.Time())
			tr, err := e.Step(a)
			if err != nil {
				return audit, fmt.Errorf("episode %d: %w", ep, err)
			}
			if tr.Result.Bounced {
				audit.add(tr.Result.Contact.Time)
			}
		}
	}
	return audit, nil
}
