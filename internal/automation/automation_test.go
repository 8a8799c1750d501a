package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/bounceball/internal/dynamo"
	"github.com/san-kum/bounceball/internal/experiment"
)

const scenarioYAML = `name: passive
description: balls left alone
steps:
  - name: rest
    policy: none
    episodes: 4
  - preset: moon
    policy: none
    episodes: 2
    max_steps: 5
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "passive" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}

	reports, err := RunScenario(context.Background(), sc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports", len(reports))
	}

	rest := reports[0]
	if rest.Name != "rest" || rest.Summary.Episodes != 4 {
		t.Errorf("first report = %+v", rest)
	}
	if rest.Summary.TerminationRate != 1 || rest.Summary.MeanReturn != -1000 {
		t.Errorf("passive balls should all come to rest: %+v", rest.Summary)
	}

	moon := reports[1]
	if moon.Name != "step-2" || moon.Summary.MeanSteps > 5 {
		t.Errorf("second report = %+v", moon)
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
	if _, err := LoadScenario(writeScenario(t, "steps: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestResolve(t *testing.T) {
	if _, err := (ScenarioStep{Preset: "jupiter"}).Resolve(); err == nil {
		t.Error("expected unknown preset error")
	}

	_, err := (ScenarioStep{Gravity: 3}).Resolve()
	if !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("positive gravity: err = %v", err)
	}

	cfg, err := (ScenarioStep{Preset: "fine", Policy: "random", Seed: 9}).Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TimeStep != 0.05 || cfg.Policy != "random" || cfg.Seed != 9 {
		t.Errorf("resolved %+v", cfg)
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Base: experiment.Config{
			Policy:   "none",
			TimeStep: dynamo.DefaultTimeStep,
			MaxSteps: 50,
			Gravity:  dynamo.DefaultGravity,
		},
		Param:    "gravity",
		Min:      -12,
		Max:      -6,
		NumSteps: 3,
		Episodes: 2,
	}

	results, err := RunSweep(context.Background(), sweep, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{-12, -9, -6}
	if len(results) != len(want) {
		t.Fatalf("got %d points", len(results))
	}
	for i, r := range results {
		if r.Value != want[i] || r.Summary.Episodes != 2 {
			t.Errorf("point %d = %+v", i, r)
		}
	}

	sweep.Min, sweep.Max = -1, 1
	if _, err := RunSweep(context.Background(), sweep, nil); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("sweep through zero gravity: err = %v", err)
	}
}
