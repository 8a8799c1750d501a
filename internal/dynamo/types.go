package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Action is the binary paddle command applied at the start of a step.
type Action int

const (
	ActionNone Action = 0
	ActionHit  Action = 1
)

func (a Action) Valid() bool {
	return a == ActionNone || a == ActionHit
}

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionHit:
		return "hit"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Source is the random stream consumed by resets and bounces.
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Uniform draws from [lo, hi) using a single Float64 from src.
func Uniform(src Source, lo, hi float64) float64 {
	return lo + (hi-lo)*src.Float64()
}

type Controller interface {
	Compute(x State, t float64) Action
}

type Metric interface {
	Name() string
	Observe(x State, a Action, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, a Action, t float64)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

const (
	DefaultTimeStep = 0.3
	DefaultMaxSteps = 400
	DefaultGravity  = -9.81
)

type Config struct {
	TimeStep      float64
	MaxSteps      int
	Gravity       float64
	Seed          int64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		TimeStep:      DefaultTimeStep,
		MaxSteps:      DefaultMaxSteps,
		Gravity:       DefaultGravity,
		ValidateState: true,
	}
}

// Validate rejects configurations the step contract cannot run with.
func (c Config) Validate() error {
	if !(c.TimeStep > 0) || math.IsInf(c.TimeStep, 0) {
		return fmt.Errorf("%w: time step must be positive, got %v", ErrInvalidConfig, c.TimeStep)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("%w: max steps must be positive, got %d", ErrInvalidConfig, c.MaxSteps)
	}
	if !(c.Gravity < 0) || math.IsInf(c.Gravity, 0) {
		return fmt.Errorf("%w: gravity must be negative and finite, got %v", ErrInvalidConfig, c.Gravity)
	}
	return nil
}

type Result struct {
	States     []State
	Actions    []Action
	Rewards    []float64
	Times      []float64
	Metrics    map[string]float64
	Seed       int64
	StepsTaken int
	Return     float64
	Bounces    int
	Terminated bool
	Truncated  bool
}
