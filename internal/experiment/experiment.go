package experiment

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/san-kum/bounceball/internal/dynamo"
	"github.com/san-kum/bounceball/internal/env"
)

type Config struct {
	Policy   string
	TimeStep float64
	MaxSteps int
	Gravity  float64
	Seed     int64
	Params   map[string]float64
}

func (c Config) Dynamo() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.TimeStep = c.TimeStep
	cfg.MaxSteps = c.MaxSteps
	cfg.Gravity = c.Gravity
	cfg.Seed = c.Seed
	return cfg
}

type Experiment struct {
	cfg        Config
	env        *env.Env
	controller dynamo.Controller
	metrics    []dynamo.Metric
	logger     *log.Logger
	trajectory []env.Sample
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:    cfg,
		logger: log.New(io.Discard),
	}
}

func (e *Experiment) SetLogger(l *log.Logger) { e.logger = l }

// Setup builds the env. Observers see every step after the metrics do.
func (e *Experiment) Setup(controller dynamo.Controller, metrics []dynamo.Metric, observers ...dynamo.Observer) error {
	if controller == nil {
		return fmt.Errorf("experiment: nil controller")
	}

	opts := []env.Option{env.WithLogger(e.logger)}
	for _, m := range metrics {
		opts = append(opts, env.WithObserver(metricObserver{m}))
	}
	for _, o := range observers {
		opts = append(opts, env.WithObserver(o))
	}

	ev, err := env.New(e.cfg.Dynamo(), opts...)
	if err != nil {
		return fmt.Errorf("experiment: %w", err)
	}

	e.env = ev
	e.controller = controller
	e.metrics = metrics
	return nil
}

// Run plays one episode from a seeded reset until the ball comes to rest or
// the step limit is reached.
func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.env == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	seed := e.cfg.Seed
	e.env.Reset(&seed)

	result := &dynamo.Result{
		States:  []dynamo.State{e.env.State().Vector()},
		Times:   []float64{0},
		Metrics: make(map[string]float64),
		Seed:    seed,
	}

	for !e.env.Done() {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		x := e.env.State().Vector()
		a := e.controller.Compute(x, e.env.Time())

		tr, err := e.env.Step(a)
		if err != nil {
			return result, err
		}

		result.States = append(result.States, e.env.State().Vector())
		result.Actions = append(result.Actions, a)
		result.Rewards = append(result.Rewards, tr.Reward)
		result.Times = append(result.Times, tr.Info.Time)
		result.Return += tr.Reward
		result.StepsTaken++
		if tr.Result.Bounced {
			result.Bounces++
		}
		result.Terminated = tr.Terminated
		result.Truncated = tr.Truncated
	}

	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	e.trajectory = e.env.Trajectory()

	e.logger.Info("episode complete",
		"policy", e.cfg.Policy,
		"seed", seed,
		"steps", result.StepsTaken,
		"return", result.Return,
		"terminated", result.Terminated,
	)
	return result, nil
}

// Trajectory returns the samples recorded by the last Run.
func (e *Experiment) Trajectory() []env.Sample {
	return e.trajectory
}

// Env returns the underlying environment for adding observers
func (e *Experiment) Env() *env.Env {
	return e.env
}

type metricObserver struct {
	m dynamo.Metric
}

func (o metricObserver) OnStep(x dynamo.State, a dynamo.Action, t float64) {
	o.m.Observe(x, a, t)
}
