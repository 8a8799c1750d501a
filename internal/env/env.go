// Package env drives bouncing ball episodes behind a reset/step contract.
//
// An [Env] owns one ball, one random stream and the episode bookkeeping:
// elapsed time, step count, truncation and reward. It records every committed
// step so renderers and stores can consume the trajectory afterwards.
package env

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/san-kum/bounceball/internal/dynamo"
	"github.com/san-kum/bounceball/internal/physics"
)

const (
	ActionPenalty      = 1.0
	TerminationPenalty = 1000.0
)

// Observation is {position, velocity}.
type Observation [2]float32

type Info struct {
	Time float64 `json:"time"`
}

// Box is a declared observation range. Env never clips to it.
type Box struct {
	Low  [2]float32
	High [2]float32
}

func (b Box) Contains(o Observation) bool {
	for i := range o {
		if o[i] < b.Low[i] || o[i] > b.High[i] {
			return false
		}
	}
	return true
}

type Discrete struct {
	N int
}

func (d Discrete) Contains(a dynamo.Action) bool {
	return int(a) >= 0 && int(a) < d.N
}

type Transition struct {
	Observation Observation
	Reward      float64
	Terminated  bool
	Truncated   bool
	Info        Info
	Result      physics.StepResult
}

func (tr Transition) Done() bool {
	return tr.Terminated || tr.Truncated
}

// Sample is one recorded step: the state after the step and the action that led to it.
type Sample struct {
	Step     int           `json:"step"`
	Time     float64       `json:"time"`
	Position float64       `json:"position"`
	Velocity float64       `json:"velocity"`
	Action   dynamo.Action `json:"action"`
	Reward   float64       `json:"reward"`
}

type Option func(*Env)

func WithLogger(l *log.Logger) Option {
	return func(e *Env) { e.logger = l }
}

func WithObserver(o dynamo.Observer) Option {
	return func(e *Env) { e.observers = append(e.observers, o) }
}

func WithBall(b *physics.Ball) Option {
	return func(e *Env) { e.ball = b }
}

type Env struct {
	cfg       dynamo.Config
	ball      *physics.Ball
	rng       *rand.Rand
	logger    *log.Logger
	observers []dynamo.Observer

	state      physics.BallState
	time       float64
	steps      int
	done       bool
	started    bool
	trajectory []Sample
}

func New(cfg dynamo.Config, opts ...Option) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Env{
		cfg:    cfg,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.ball == nil {
		e.ball = physics.NewBall()
	}
	e.ball.Gravity = cfg.Gravity
	e.rng = rand.New(rand.NewSource(cfg.Seed))
	return e, nil
}

func (e *Env) ObservationSpace() Box {
	return Box{Low: [2]float32{0, -25}, High: [2]float32{50, 25}}
}

func (e *Env) ActionSpace() Discrete {
	return Discrete{N: 2}
}

func (e *Env) Config() dynamo.Config { return e.cfg }

// Reset starts a new episode. A non-nil seed restarts the random stream;
// nil continues it.
func (e *Env) Reset(seed *int64) (Observation, Info) {
	if seed != nil {
		e.rng.Seed(*seed)
	}

	e.time = 0
	e.steps = 0
	e.done = false
	e.started = true
	e.trajectory = e.trajectory[:0]
	e.state = e.ball.Reset(e.rng)

	e.logger.Debug("episode reset", "position", e.state.Position)
	return e.observation(), e.info()
}

func (e *Env) Step(a dynamo.Action) (Transition, error) {
	if !e.ActionSpace().Contains(a) {
		return Transition{}, fmt.Errorf("step %d: %w: %d", e.steps, dynamo.ErrInvalidAction, int(a))
	}
	if !e.started {
		e.Reset(nil)
	}
	if e.done {
		return Transition{}, dynamo.ErrEpisodeDone
	}

	res, err := e.ball.Advance(e.state, a, e.cfg.TimeStep, e.rng)
	if err != nil {
		return Transition{}, fmt.Errorf("step %d: %w", e.steps, err)
	}

	if e.cfg.ValidateState && !res.State.Vector().IsValid() {
		return Transition{}, &dynamo.SimulationError{
			Step:    e.steps,
			Time:    e.time,
			State:   res.State.Vector(),
			Wrapped: dynamo.ErrInvalidState,
		}
	}

	e.steps++
	e.time += e.cfg.TimeStep
	e.state = res.State

	tr := Transition{
		Observation: e.observation(),
		Reward:      Reward(a, res.Terminated),
		Terminated:  res.Terminated,
		Truncated:   e.steps >= e.cfg.MaxSteps,
		Info:        e.info(),
		Result:      res,
	}
	e.done = tr.Done()

	e.trajectory = append(e.trajectory, Sample{
		Step:     e.steps,
		Time:     e.time,
		Position: e.state.Position,
		Velocity: e.state.Velocity,
		Action:   a,
		Reward:   tr.Reward,
	})
	x := e.state.Vector()
	for _, o := range e.observers {
		o.OnStep(x, a, e.time)
	}

	if res.Bounced {
		e.logger.Debug("bounce", "step", e.steps, "contact", res.Contact.Time, "rebound", res.Contact.Rebound)
	}
	if e.done {
		e.logger.Debug("episode finished", "steps", e.steps, "terminated", tr.Terminated, "truncated", tr.Truncated)
	}
	return tr, nil
}

// Reward charges one unit per hit and a large penalty when the ball dies.
func Reward(a dynamo.Action, terminated bool) float64 {
	r := -ActionPenalty * float64(a)
	if terminated {
		r -= TerminationPenalty
	}
	return r
}

func (e *Env) State() physics.BallState { return e.state }

// SetState places the ball, e.g. to replay a recorded situation.
func (e *Env) SetState(s physics.BallState) {
	e.state = s
	e.started = true
	e.done = false
}

func (e *Env) Ball() *physics.Ball { return e.ball }
func (e *Env) Steps() int          { return e.steps }
func (e *Env) Time() float64       { return e.time }
func (e *Env) Done() bool          { return e.done }

// Trajectory returns a copy of the samples recorded since the last reset.
func (e *Env) Trajectory() []Sample {
	out := make([]Sample, len(e.trajectory))
	copy(out, e.trajectory)
	return out
}

func (e *Env) observation() Observation {
	return Observation{float32(e.state.Position), float32(e.state.Velocity)}
}

func (e *Env) info() Info {
	return Info{Time: e.time}
}
