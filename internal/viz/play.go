package viz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/bounceball/internal/control"
	"github.com/san-kum/bounceball/internal/dynamo"
	"github.com/san-kum/bounceball/internal/env"
)

const (
	playWidth  = 48
	playHeight = 14
	maxSpeed   = 8.0
	minSpeed   = 0.25
)

type TickMsg time.Time

// PlayModel steps an Env on a timer. With no policy the space bar swings the
// paddle on the next step; otherwise the policy plays and space is ignored.
type PlayModel struct {
	env     *env.Env
	policy  dynamo.Controller
	manual  *control.Manual
	seed    int64
	episode int

	running bool
	speed   float64
	last    env.Transition
	ret     float64
	hits    int
	heights []float64
	canvas  *Canvas
	scale   Heights
	theme   Theme
	styles  Styles
	keys    PlayKeyMap
	help    help.Model
	err     error
}

func NewPlayModel(e *env.Env, policy dynamo.Controller, seed int64) PlayModel {
	m := PlayModel{
		env:     e,
		policy:  policy,
		seed:    seed,
		speed:   1,
		canvas:  NewCanvas(playWidth, playHeight),
		scale:   Heights{Lo: -2, Hi: 14, Rows: playHeight * 4},
		theme:   ThemeCyberpunk,
		styles:  NewStyles(ThemeCyberpunk),
		heights: make([]float64, 0, trailCap),
		keys:    DefaultPlayKeyMap(policy == nil),
		help:    help.New(),
	}
	if policy == nil {
		m.manual = control.NewManual()
		m.policy = m.manual
	}
	m.reset()
	return m
}

func (m PlayModel) Init() tea.Cmd {
	return m.tick()
}

func (m PlayModel) tick() tea.Cmd {
	d := time.Duration(float64(time.Second) * m.env.Config().TimeStep / m.speed)
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Hit):
			if m.running {
				m.manual.SetAction(dynamo.ActionHit)
			}
		case key.Matches(msg, m.keys.Pause):
			if !m.env.Done() {
				m.running = !m.running
			}
		case key.Matches(msg, m.keys.Next):
			m.episode++
			m.reset()
		case key.Matches(msg, m.keys.Faster):
			m.speed = min(m.speed*2, maxSpeed)
		case key.Matches(msg, m.keys.Slower):
			m.speed = max(m.speed/2, minSpeed)
		case key.Matches(msg, m.keys.Theme):
			m.theme = NextTheme(m.theme)
			m.styles = NewStyles(m.theme)
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *PlayModel) reset() {
	seed := m.seed + int64(m.episode)
	m.env.Reset(&seed)
	m.running = true
	m.last = env.Transition{}
	m.ret = 0
	m.hits = 0
	m.err = nil
	m.heights = append(m.heights[:0], m.env.State().Position)
}

func (m *PlayModel) step() {
	a := m.policy.Compute(m.env.State().Vector(), m.env.Time())
	tr, err := m.env.Step(a)
	if err != nil {
		if !errors.Is(err, dynamo.ErrEpisodeDone) {
			m.err = err
		}
		m.running = false
		return
	}

	m.last = tr
	m.ret += tr.Reward
	if a == dynamo.ActionHit {
		m.hits++
	}
	m.heights = append(m.heights, m.env.State().Position)
	if len(m.heights) > trailCap {
		m.heights = m.heights[1:]
	}
	if p := m.env.State().Position; p > m.scale.Hi {
		m.scale.Hi = p * 1.2
	}
	if tr.Done() {
		m.running = false
	}
}

func (m PlayModel) status() string {
	switch {
	case m.err != nil:
		return m.styles.Dead.Render("ERROR " + m.err.Error())
	case m.last.Terminated:
		return m.styles.Dead.Render("TERMINATED") + " ball came to rest"
	case m.last.Truncated:
		return m.styles.Running.Render("TRUNCATED") + " survived the whole episode"
	case !m.running:
		return m.styles.Paused.Render("PAUSED")
	}
	return m.styles.Running.Render("RUNNING")
}

func (m PlayModel) View() string {
	m.canvas.DrawBall(m.heights, m.scale)
	st := m.styles
	s := m.env.State()

	var stats strings.Builder
	row := func(label, value string) {
		stats.WriteString(st.Label.Render(label) + st.Value.Render(value) + "\n")
	}
	row("Episode", fmt.Sprintf("%d (seed %d)", m.episode+1, m.seed+int64(m.episode)))
	row("Step", fmt.Sprintf("%d/%d", m.env.Steps(), m.env.Config().MaxSteps))
	row("Time", fmt.Sprintf("%.2fs", m.env.Time()))
	row("Position", fmt.Sprintf("%.2f", s.Position))
	row("Velocity", fmt.Sprintf("%.2f", s.Velocity))
	row("Reward", fmt.Sprintf("%.0f", m.last.Reward))
	row("Return", fmt.Sprintf("%.0f", m.ret))
	row("Hits", fmt.Sprintf("%d", m.hits))
	row("Last hit", m.last.Result.Hit.String())
	row("Speed", fmt.Sprintf("%.2gx", m.speed))
	stats.WriteString("\n" + st.Sparkline(m.heights, 24) + "\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		st.Panel.Render(m.canvas.String()),
		st.Panel.Render(stats.String()),
	)
	return st.Header.Render("BOUNCEBALL") + "\n" +
		m.status() + "\n\n" +
		body + "\n" +
		st.KeyHint.Render(m.help.View(m.keys)) + "\n"
}

// Run starts the interactive program on the terminal.
func Run(m PlayModel) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
