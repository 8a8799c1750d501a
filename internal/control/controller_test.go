package control

import (
	"testing"

	"github.com/san-kum/bounceball/internal/dynamo"
)

func TestNone(t *testing.T) {
	ctrl := NewNone()
	for _, x := range []dynamo.State{{8, 0}, {5, 3}, {0.1, -10}} {
		if a := ctrl.Compute(x, 0); a != dynamo.ActionNone {
			t.Errorf("Compute(%v) = %v, want none", x, a)
		}
	}
}

func TestRandom(t *testing.T) {
	never := NewRandom(0, 1)
	always := NewRandom(1, 1)
	for i := 0; i < 100; i++ {
		if never.Compute(dynamo.State{5, 0}, 0) != dynamo.ActionNone {
			t.Fatal("p=0 policy hit")
		}
		if always.Compute(dynamo.State{5, 0}, 0) != dynamo.ActionHit {
			t.Fatal("p=1 policy did not hit")
		}
	}

	a, b := NewRandom(0.5, 42), NewRandom(0.5, 42)
	hits := 0
	for i := 0; i < 1000; i++ {
		x, y := a.Compute(nil, 0), b.Compute(nil, 0)
		if x != y {
			t.Fatalf("same seed diverged at call %d", i)
		}
		if x == dynamo.ActionHit {
			hits++
		}
	}
	if hits < 400 || hits > 600 {
		t.Errorf("p=0.5 gave %d hits in 1000 calls", hits)
	}
}

func TestPeriodic(t *testing.T) {
	ctrl := NewPeriodic(3)
	want := []dynamo.Action{0, 0, 1, 0, 0, 1}
	for i, w := range want {
		if got := ctrl.Compute(nil, 0); got != w {
			t.Errorf("call %d = %v, want %v", i+1, got, w)
		}
	}

	ctrl.Reset()
	if ctrl.Compute(nil, 0) != dynamo.ActionNone {
		t.Error("reset did not restart the period")
	}

	if NewPeriodic(0).Every != 1 {
		t.Error("non-positive period should clamp to 1")
	}
}

func TestEnergy(t *testing.T) {
	ctrl := NewEnergy(1.0, 0.0, 80, -9.81)

	// Energy 9.81*5 = 49 is below target and the ball is reachable.
	if a := ctrl.Compute(dynamo.State{5, 0}, 0); a != dynamo.ActionHit {
		t.Errorf("low energy, reachable: got %v, want hit", a)
	}
	// Same deficit but below the paddle.
	if a := ctrl.Compute(dynamo.State{3, 4}, 0.3); a != dynamo.ActionNone {
		t.Errorf("low energy, too low: got %v, want none", a)
	}
	// Energy 9.81*9 = 88 is above target.
	if a := ctrl.Compute(dynamo.State{9, 0}, 0.6); a != dynamo.ActionNone {
		t.Errorf("high energy: got %v, want none", a)
	}
	if ctrl.Compute(nil, 0.9) != dynamo.ActionNone {
		t.Error("empty state should not hit")
	}
}

func TestEnergyParams(t *testing.T) {
	ctrl := NewEnergy(1.0, 0.1, 80, -9.81)
	if err := ctrl.SetParam("Target", 40); err != nil {
		t.Fatal(err)
	}
	if ctrl.GetParams()["Target"] != 40 {
		t.Error("target not updated")
	}
	if err := ctrl.SetParam("Ki", 1); err == nil {
		t.Error("expected error for unknown param")
	}

	ctrl.Compute(dynamo.State{5, 0}, 0)
	ctrl.Reset()
	if !ctrl.first {
		t.Error("reset did not clear derivative state")
	}
}

func TestManual(t *testing.T) {
	ctrl := NewManual()
	if ctrl.Compute(nil, 0) != dynamo.ActionNone {
		t.Error("manual without input should not hit")
	}

	ctrl.SetAction(dynamo.ActionHit)
	if ctrl.Compute(nil, 0) != dynamo.ActionHit {
		t.Error("queued hit not returned")
	}
	if ctrl.Compute(nil, 0) != dynamo.ActionNone {
		t.Error("queued hit returned twice")
	}

	ctrl.SetAction(dynamo.Action(5))
	if ctrl.Compute(nil, 0) != dynamo.ActionNone {
		t.Error("invalid action should be ignored")
	}
}
