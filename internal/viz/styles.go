package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the set of lipgloss styles derived from a Theme.
type Styles struct {
	Header    lipgloss.Style
	Panel     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Running   lipgloss.Style
	Paused    lipgloss.Style
	Dead      lipgloss.Style
	KeyHint   lipgloss.Style
	SparkHigh lipgloss.Style
	SparkMid  lipgloss.Style
	SparkLow  lipgloss.Style
}

func NewStyles(th Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(th.Muted),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Muted).
			Padding(0, 1),
		Label:     lipgloss.NewStyle().Foreground(th.Muted).Width(10),
		Value:     lipgloss.NewStyle().Foreground(th.Text).Bold(true),
		Running:   lipgloss.NewStyle().Bold(true).Foreground(th.Success),
		Paused:    lipgloss.NewStyle().Bold(true).Foreground(th.Warning),
		Dead:      lipgloss.NewStyle().Bold(true).Foreground(th.Error),
		KeyHint:   lipgloss.NewStyle().Foreground(th.Muted).Italic(true),
		SparkHigh: lipgloss.NewStyle().Foreground(th.Success),
		SparkMid:  lipgloss.NewStyle().Foreground(th.Warning),
		SparkLow:  lipgloss.NewStyle().Foreground(th.Error),
	}
}

// Sparkline renders the last width values as block characters scaled to
// their own min/max.
func (st Styles) Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var sb strings.Builder
	for _, v := range values {
		norm := (v - lo) / span
		c := string(chars[int(norm*float64(len(chars)-1))])
		switch {
		case norm > 0.7:
			sb.WriteString(st.SparkHigh.Render(c))
		case norm > 0.3:
			sb.WriteString(st.SparkMid.Render(c))
		default:
			sb.WriteString(st.SparkLow.Render(c))
		}
	}
	return sb.String()
}
