package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/bounceball/internal/control"
	"github.com/san-kum/bounceball/internal/dynamo"
	"github.com/san-kum/bounceball/internal/env"
	"github.com/san-kum/bounceball/internal/physics"
)

func TestSummarize(t *testing.T) {
	results := []*dynamo.Result{
		{StepsTaken: 10, Return: -1000, Bounces: 2, Terminated: true},
		{StepsTaken: 30, Return: -5, Bounces: 6, Truncated: true},
		{StepsTaken: 20, Return: -1000, Bounces: 4, Terminated: true},
		nil,
	}

	s := Summarize(results)
	if s.Episodes != 3 {
		t.Fatalf("episodes = %d, want 3", s.Episodes)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"mean steps", s.MeanSteps, 20},
		{"std steps", s.StdSteps, 10},
		{"median steps", s.MedianSteps, 20},
		{"median return", s.MedianReturn, -1000},
		{"mean return", s.MeanReturn, -2005.0 / 3},
		{"mean bounces", s.MeanBounces, 4},
		{"termination rate", s.TerminationRate, 2.0 / 3},
		{"truncation rate", s.TruncationRate, 1.0 / 3},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestSummarizeEdgeCases(t *testing.T) {
	if s := Summarize(nil); s.Episodes != 0 || s.MeanSteps != 0 {
		t.Errorf("empty summary = %+v", s)
	}

	s := Summarize([]*dynamo.Result{{StepsTaken: 7, Return: -3}})
	if s.StdSteps != 0 || s.MedianSteps != 7 || s.MeanReturn != -3 {
		t.Errorf("single summary = %+v", s)
	}
}

func TestAuditContactTimes(t *testing.T) {
	const dt = 0.3
	audit := AuditContactTimes(physics.NewBall(), dt, 120)

	if audit.Samples == 0 {
		t.Fatal("no contacts audited")
	}
	if audit.Late != 0 {
		t.Errorf("%d contacts after the step ended (max %v)", audit.Late, audit.Max)
	}
	if audit.Max > dt+1e-12 {
		t.Errorf("max contact time %v exceeds dt", audit.Max)
	}
	// falling states already below ground resolve a contact in the past
	if audit.Early == 0 || audit.Min >= 0 {
		t.Errorf("expected retroactive contacts, got %s", audit)
	}
	if audit.Min < -25/9.81-1e-9 {
		t.Errorf("min contact time %v below -|v|/|g|", audit.Min)
	}
	if audit.Skipped == 0 {
		t.Error("expected negative-energy states to be skipped")
	}
}

func TestAuditContactTimesAboveGround(t *testing.T) {
	b := physics.NewBall()
	for _, dt := range []float64{0.05, 0.3, 1} {
		for p := 0.0; p <= 50; p += 0.5 {
			for v := -25.0; v < 0; v += 0.5 {
				s := physics.BallState{Position: p, Velocity: v}
				if b.Integrate(s, dt).Position > 0 {
					continue
				}
				if ct := b.ContactTime(s); ct < -1e-12 || ct > dt+1e-12 {
					t.Fatalf("dt=%v state %+v: contact time %v outside step", dt, s, ct)
				}
			}
		}
	}
}

func TestAuditEpisodes(t *testing.T) {
	cfg := dynamo.DefaultConfig()
	audit, err := AuditEpisodes(cfg, control.NewNone(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if audit.Samples < 10 {
		t.Errorf("expected a bounce per episode at least, got %d", audit.Samples)
	}
	if audit.Late != 0 {
		t.Errorf("late contacts in real episodes: %s", audit)
	}
	if !strings.Contains(audit.String(), "contacts=") {
		t.Errorf("unexpected report %q", audit.String())
	}
}

func TestPhasePortraitToASCII(t *testing.T) {
	samples := []env.Sample{
		{Position: 8, Velocity: -3},
		{Position: 5, Velocity: -8, Action: dynamo.ActionHit},
		{Position: 0.5, Velocity: 9},
		{Position: -0.2, Velocity: 1},
	}

	portrait := PhasePortrait(samples)
	if len(portrait.Points) != 4 || !portrait.Points[1].Hit {
		t.Fatalf("unexpected portrait %+v", portrait.Points)
	}

	out := PhasePortraitToASCII(portrait, 40, 12)
	for _, want := range []string{"x", "•", "│", "─"} {
		if !strings.Contains(out, want) {
			t.Errorf("plot missing %q:\n%s", want, out)
		}
	}

	if PhasePortraitToASCII(PhasePortrait(nil), 40, 12) != "" {
		t.Error("expected empty plot for no samples")
	}
}

func TestDominantPeriod(t *testing.T) {
	const (
		dt     = 0.3
		period = 3.0
	)
	samples := make([]env.Sample, 100)
	for i := range samples {
		tm := float64(i) * dt
		samples[i] = env.Sample{Time: tm, Position: 5 + 4*math.Sin(2*math.Pi*tm/period)}
	}

	if got := DominantPeriod(samples, dt); math.Abs(got-period) > 1e-9 {
		t.Errorf("period = %v, want %v", got, period)
	}

	freqs, amps := Spectrum(samples, dt)
	if len(freqs) != 50 || len(amps) != 50 {
		t.Fatalf("got %d bins", len(freqs))
	}
	// a pure sine of amplitude 4 puts 2 in its positive-frequency bin
	if math.Abs(amps[9]-2) > 1e-9 {
		t.Errorf("peak amplitude = %v, want 2", amps[9])
	}

	if DominantPeriod(samples[:3], dt) != 0 {
		t.Error("short episode should have no period")
	}
}
