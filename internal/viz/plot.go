package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/bounceball/internal/dynamo"
	"github.com/san-kum/bounceball/internal/env"
)

// PlotTrajectory renders position and velocity charts for a recorded episode
// followed by a strip marking the steps where the paddle swung.
func PlotTrajectory(samples []env.Sample, width, height int) string {
	if len(samples) == 0 {
		return "no samples\n"
	}

	pos := make([]float64, len(samples))
	vel := make([]float64, len(samples))
	for i, s := range samples {
		pos[i] = s.Position
		vel[i] = s.Velocity
	}

	var sb strings.Builder
	sb.WriteString(asciigraph.Plot(pos, asciigraph.Height(height), asciigraph.Width(width),
		asciigraph.Caption("position")))
	sb.WriteString("\n\n")
	sb.WriteString(asciigraph.Plot(vel, asciigraph.Height(height/2), asciigraph.Width(width),
		asciigraph.Caption("velocity")))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "hits %s\n", ActionStrip(samples, width))
	return sb.String()
}

// ActionStrip resamples the episode to width columns and marks a column
// with '▲' when any step it covers was a hit.
func ActionStrip(samples []env.Sample, width int) string {
	if width <= 0 || len(samples) == 0 {
		return ""
	}

	strip := []rune(strings.Repeat("·", width))
	for i, s := range samples {
		if s.Action != dynamo.ActionHit {
			continue
		}
		col := i * width / len(samples)
		strip[col] = '▲'
	}
	return string(strip)
}
