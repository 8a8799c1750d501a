package viz

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/bounceball/internal/control"
	"github.com/san-kum/bounceball/internal/dynamo"
	"github.com/san-kum/bounceball/internal/env"
)

func newEnv(t *testing.T) *env.Env {
	t.Helper()
	e, err := env.New(dynamo.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if c.Grid[0][0] != 0x2801 {
		t.Errorf("cell 0 = %U, want U+2801", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("cell 1 = %U, want U+2880", c.Grid[0][1])
	}

	c.Clear()
	if c.String() != "\u2800\u2800\n" {
		t.Errorf("clear left %q", c.String())
	}
}

func TestHeightsRow(t *testing.T) {
	h := Heights{Lo: 0, Hi: 10, Rows: 11}
	tests := []struct {
		y    float64
		want int
	}{
		{0, 10},
		{10, 0},
		{5, 5},
	}
	for _, tt := range tests {
		if got := h.Row(tt.y); got != tt.want {
			t.Errorf("Row(%v) = %d, want %d", tt.y, got, tt.want)
		}
	}
}

func TestPlotTrajectory(t *testing.T) {
	samples := []env.Sample{
		{Step: 1, Position: 8, Velocity: -3},
		{Step: 2, Position: 5, Velocity: -8, Action: dynamo.ActionHit},
		{Step: 3, Position: 1, Velocity: -12},
		{Step: 4, Position: 0.4, Velocity: 9},
	}

	out := PlotTrajectory(samples, 20, 6)
	for _, want := range []string{"position", "velocity", "hits", "▲"} {
		if !strings.Contains(out, want) {
			t.Errorf("plot missing %q:\n%s", want, out)
		}
	}

	if got := PlotTrajectory(nil, 20, 6); got != "no samples\n" {
		t.Errorf("empty plot = %q", got)
	}
}

func TestActionStrip(t *testing.T) {
	samples := make([]env.Sample, 10)
	samples[0].Action = dynamo.ActionHit
	samples[9].Action = dynamo.ActionHit

	strip := []rune(ActionStrip(samples, 5))
	if len(strip) != 5 {
		t.Fatalf("strip width %d, want 5", len(strip))
	}
	if strip[0] != '▲' || strip[4] != '▲' || strip[2] != '·' {
		t.Errorf("strip = %q", string(strip))
	}
}

func TestLiveRendererFrames(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 0)
	r.Start()
	r.OnStep(dynamo.State{6, -2}, dynamo.ActionHit, 0.3)
	r.OnStep(dynamo.State{30, 10}, dynamo.ActionNone, 0.6)
	r.Stop()

	out := buf.String()
	if strings.Count(out, clearScreen) != 2 {
		t.Errorf("expected 2 frames")
	}
	if !strings.Contains(out, "hits=1") || !strings.Contains(out, "p=30.00") {
		t.Errorf("frame text missing:\n%s", out)
	}
	if r.scale.Hi < 30 {
		t.Errorf("scale did not grow: %v", r.scale.Hi)
	}
}

func TestPlayModelManualHit(t *testing.T) {
	m := NewPlayModel(newEnv(t), nil, 3)
	if m.Init() == nil {
		t.Fatal("expected tick command")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(PlayModel)
	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(PlayModel)
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	traj := m.env.Trajectory()
	if len(traj) != 1 || traj[0].Action != dynamo.ActionHit {
		t.Fatalf("trajectory = %+v, want one hit", traj)
	}
	if m.hits != 1 || m.ret != -1 {
		t.Errorf("hits=%d return=%v", m.hits, m.ret)
	}

	// the queued hit is consumed
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(PlayModel)
	if traj := m.env.Trajectory(); traj[1].Action != dynamo.ActionNone {
		t.Error("hit repeated without a key press")
	}
}

func TestPlayModelEpisodeEnds(t *testing.T) {
	m := NewPlayModel(newEnv(t), control.NewNone(), 0)
	for i := 0; i < 500 && m.running; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(PlayModel)
	}
	if m.running || !m.env.Done() {
		t.Fatal("episode did not finish")
	}
	if !strings.Contains(m.View(), "TERMINATED") {
		t.Errorf("view missing outcome:\n%s", m.View())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(PlayModel)
	if !m.running || m.env.Steps() != 0 || m.episode != 1 {
		t.Errorf("restart failed: running=%v steps=%d", m.running, m.env.Steps())
	}
}

func TestPlayModelKeys(t *testing.T) {
	m := NewPlayModel(newEnv(t), nil, 0)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = next.(PlayModel)
	if m.running {
		t.Error("p should pause")
	}
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(PlayModel)
	if m.env.Steps() != 0 {
		t.Error("paused model stepped")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m = next.(PlayModel)
	if m.speed != 2 {
		t.Errorf("speed = %v, want 2", m.speed)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	m = next.(PlayModel)
	if m.theme.Name != "retro" {
		t.Errorf("theme = %s, want retro", m.theme.Name)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not produce QuitMsg")
	}
}

func TestPlayModelPolicyIgnoresHitKey(t *testing.T) {
	m := NewPlayModel(newEnv(t), control.NewNone(), 0)
	if strings.Contains(m.View(), "space") {
		t.Error("help should not offer the hit key while a policy plays")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(PlayModel)
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(PlayModel)
	if traj := m.env.Trajectory(); len(traj) != 1 || traj[0].Action != dynamo.ActionNone {
		t.Errorf("trajectory = %+v, want one passive step", traj)
	}

	if !strings.Contains(NewPlayModel(newEnv(t), nil, 0).View(), "space") {
		t.Error("manual play should list the hit key")
	}
}
