package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/bounceball/internal/dynamo"
	"github.com/san-kum/bounceball/internal/env"
)

type PhasePoint struct {
	Position float64
	Velocity float64
	Hit      bool
}

// PhasePortrait2D holds a position/velocity trace of one episode.
type PhasePortrait2D struct {
	Points []PhasePoint
}

func PhasePortrait(samples []env.Sample) *PhasePortrait2D {
	portrait := &PhasePortrait2D{
		Points: make([]PhasePoint, 0, len(samples)),
	}
	for _, s := range samples {
		portrait.Points = append(portrait.Points, PhasePoint{
			Position: s.Position,
			Velocity: s.Velocity,
			Hit:      s.Action == dynamo.ActionHit,
		})
	}
	return portrait
}

// bounds returns the padded data ranges; zero-width ranges are widened to 1.
func (p *PhasePortrait2D) bounds() (minX, maxX, minY, maxY float64) {
	minX, maxX = p.Points[0].Position, p.Points[0].Position
	minY, maxY = p.Points[0].Velocity, p.Points[0].Velocity
	for _, pt := range p.Points {
		minX = min(minX, pt.Position)
		maxX = max(maxX, pt.Position)
		minY = min(minY, pt.Velocity)
		maxY = max(maxY, pt.Velocity)
	}

	padX := max(maxX-minX, 1) * 0.1
	padY := max(maxY-minY, 1) * 0.1
	return minX - padX, maxX + padX, minY - padY, maxY + padY
}

// PhasePortraitToASCII draws position on X and velocity on Y. Hit steps are
// drawn as 'x', the ground (position 0) as a vertical rule and v=0 as a
// horizontal one.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX, minY, maxY := portrait.bounds()
	col := func(x float64) int { return int((x - minX) / (maxX - minX) * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-minY)/(maxY-minY)*float64(height-1)) }

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	if minX <= 0 && maxX >= 0 {
		c := col(0)
		for r := range canvas {
			canvas[r][c] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		r := row(0)
		for c := range canvas[r] {
			if canvas[r][c] == '│' {
				canvas[r][c] = '┼'
			} else {
				canvas[r][c] = '─'
			}
		}
	}

	for _, pt := range portrait.Points {
		r, c := row(pt.Velocity), col(pt.Position)
		if r < 0 || r >= height || c < 0 || c >= width {
			continue
		}
		if pt.Hit {
			canvas[r][c] = 'x'
		} else if canvas[r][c] != 'x' {
			canvas[r][c] = '•'
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "v ∈ [%.1f, %.1f]\n", minY, maxY)
	for _, line := range canvas {
		sb.WriteString(string(line))
		sb.WriteRune('\n')
	}
	fmt.Fprintf(&sb, "p ∈ [%.1f, %.1f]\n", minX, maxX)
	return sb.String()
}
