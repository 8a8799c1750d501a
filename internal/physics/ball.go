package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/bounceball/internal/dynamo"
)

// BallState is the vertical position and velocity of the ball.
// Positive velocity points up.
type BallState struct {
	Position float64
	Velocity float64
}

func (s BallState) Vector() dynamo.State {
	return dynamo.State{s.Position, s.Velocity}
}

func FromVector(x dynamo.State) BallState {
	if len(x) < 2 {
		return BallState{}
	}
	return BallState{Position: x[0], Velocity: x[1]}
}

// HitKind tags which branch of the paddle stage ran.
type HitKind int

const (
	HitNone        HitKind = iota // no action requested
	HitTooLow                     // action requested below the hit height
	HitStrong                     // ball rising or at apex: flipped and kicked down
	HitClamp                      // ball falling slowly: pushed to the minimum downward speed
	HitIneffective                // ball already falling faster than the kick
)

func (k HitKind) String() string {
	switch k {
	case HitNone:
		return "none"
	case HitTooLow:
		return "too_low"
	case HitStrong:
		return "strong"
	case HitClamp:
		return "clamp"
	case HitIneffective:
		return "ineffective"
	default:
		return fmt.Sprintf("hit(%d)", int(k))
	}
}

// Contact describes a ground contact resolved inside a step.
type Contact struct {
	Time        float64 // offset from the start of the step
	Velocity    float64 // velocity at contact, before restitution
	Restitution float64
	Rebound     float64 // velocity right after the bounce
}

type StepResult struct {
	State      BallState
	Terminated bool
	Hit        HitKind
	Flip       float64
	Bounced    bool
	Contact    Contact
}

type Ball struct {
	Gravity           float64
	HitHeight         float64
	HitKick           float64
	FlipMin           float64
	FlipSpread        float64
	RestitutionMin    float64
	RestitutionSpread float64
	RestThreshold     float64
	StartHeight       float64
	StartSpread       float64
}

func NewBall() *Ball {
	return &Ball{
		Gravity:           dynamo.DefaultGravity,
		HitHeight:         4.0,
		HitKick:           4.0,
		FlipMin:           0.9,
		FlipSpread:        0.1,
		RestitutionMin:    0.85,
		RestitutionSpread: 0.12,
		RestThreshold:     1.0,
		StartHeight:       7.0,
		StartSpread:       3.0,
	}
}

// Reset draws a resting ball somewhere in [StartHeight, StartHeight+StartSpread).
// It consumes exactly one value from src.
func (b *Ball) Reset(src dynamo.Source) BallState {
	return BallState{
		Position: b.StartHeight + dynamo.Uniform(src, 0, b.StartSpread),
		Velocity: 0,
	}
}

// Advance runs the hit, integrate and bounce stages over one step of length dt.
func (b *Ball) Advance(s BallState, a dynamo.Action, dt float64, src dynamo.Source) (StepResult, error) {
	if !a.Valid() {
		return StepResult{State: s}, fmt.Errorf("%w: %d", dynamo.ErrInvalidAction, int(a))
	}
	if !(dt > 0) {
		return StepResult{State: s}, fmt.Errorf("%w: dt must be positive, got %v", dynamo.ErrInvalidConfig, dt)
	}

	hit, kind, flip := b.Hit(s, a, src)
	free := b.Integrate(hit, dt)
	next, contact, bounced := b.Bounce(hit, free, dt, src)

	res := StepResult{
		State:   next,
		Hit:     kind,
		Flip:    flip,
		Bounced: bounced,
		Contact: contact,
	}
	if bounced {
		res.Terminated = contact.Rebound <= b.RestThreshold
	}
	return res, nil
}

// Hit applies the paddle to the ball. flip is only set for HitStrong, the
// only branch that consumes a draw.
func (b *Ball) Hit(s BallState, a dynamo.Action, src dynamo.Source) (BallState, HitKind, float64) {
	if a != dynamo.ActionHit {
		return s, HitNone, 0
	}
	if s.Position < b.HitHeight {
		return s, HitTooLow, 0
	}

	switch {
	case s.Velocity >= 0:
		flip := -(b.FlipMin + dynamo.Uniform(src, 0, b.FlipSpread))
		s.Velocity = flip*s.Velocity - b.HitKick
		return s, HitStrong, flip
	case s.Velocity >= -b.HitKick:
		s.Velocity = -b.HitKick
		return s, HitClamp, 0
	}
	return s, HitIneffective, 0
}

// Integrate advances s by dt under constant gravity, ignoring the ground.
func (b *Ball) Integrate(s BallState, dt float64) BallState {
	return BallState{
		Position: s.Position + s.Velocity*dt + 0.5*(b.Gravity*dt*dt),
		Velocity: s.Velocity + dt*b.Gravity,
	}
}

// Bounce resolves a ground contact between pre (start of step, after the hit)
// and post (unconstrained end of step). It returns post untouched when the
// ball did not move down into the ground.
func (b *Ball) Bounce(pre, post BallState, dt float64, src dynamo.Source) (BallState, Contact, bool) {
	if !(post.Position <= 0 && pre.Velocity < 0) {
		return post, Contact{}, false
	}

	t := b.ContactTime(pre)
	vc := pre.Velocity + t*b.Gravity
	r := b.RestitutionMin + dynamo.Uniform(src, 0, b.RestitutionSpread)
	vb := vc * -r

	rem := dt - t
	next := BallState{
		Position: vb*rem + 0.5*(b.Gravity*rem*rem),
		Velocity: vb + rem*b.Gravity,
	}
	return next, Contact{Time: t, Velocity: vc, Restitution: r, Rebound: vb}, true
}

// ContactTime returns the later root of p + v*t + g*t²/2 = 0.
//
// For p >= 0 the root lies in [0, dt]. After a rebound that ended the step
// below ground the root is negative: the contact the previous step skipped.
// The discriminant equals twice the specific energy, which never goes
// negative for reachable states; a negative value panics.
func (b *Ball) ContactTime(s BallState) float64 {
	disc := s.Velocity*s.Velocity - 2*b.Gravity*s.Position
	if disc < 0 || math.IsNaN(disc) {
		panic(&dynamo.SimulationError{
			State:   s.Vector(),
			Wrapped: fmt.Errorf("%w: negative discriminant %g at p=%g v=%g", dynamo.ErrContractViolation, disc, s.Position, s.Velocity),
		})
	}
	d := math.Sqrt(disc)
	return math.Max((-s.Velocity+d)/b.Gravity, (-s.Velocity-d)/b.Gravity)
}

// Energy is the specific mechanical energy relative to the ground.
func (b *Ball) Energy(s BallState) float64 {
	return 0.5*s.Velocity*s.Velocity - b.Gravity*s.Position
}

func (b *Ball) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity":        b.Gravity,
		"hit_height":     b.HitHeight,
		"hit_kick":       b.HitKick,
		"rest_threshold": b.RestThreshold,
	}
}

func (b *Ball) SetParam(name string, value float64) error {
	switch name {
	case "gravity":
		if !(value < 0) {
			return fmt.Errorf("%w: gravity must be negative, got %v", dynamo.ErrInvalidConfig, value)
		}
		b.Gravity = value
	case "hit_height":
		b.HitHeight = value
	case "hit_kick":
		b.HitKick = value
	case "rest_threshold":
		b.RestThreshold = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
