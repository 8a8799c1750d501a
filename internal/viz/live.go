package viz

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/bounceball/internal/dynamo"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"

	liveWidth  = 60
	liveHeight = 16
	trailCap   = 240
)

// LiveRenderer is an observer that redraws the ball on every step it sees,
// at most frameRate times per second. A frame rate of 0 draws every step.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	lastFrame time.Time
	canvas    *Canvas
	scale     Heights
	trail     []float64
	hits      int
}

func NewLiveRenderer(out io.Writer, frameRate int) *LiveRenderer {
	return &LiveRenderer{
		out:       out,
		frameRate: frameRate,
		canvas:    NewCanvas(liveWidth, liveHeight),
		scale:     Heights{Lo: -2, Hi: 14, Rows: liveHeight * 4},
		trail:     make([]float64, 0, trailCap),
	}
}

func (r *LiveRenderer) OnStep(x dynamo.State, a dynamo.Action, t float64) {
	r.trail = append(r.trail, x[0])
	if len(r.trail) > trailCap {
		r.trail = r.trail[1:]
	}
	if a == dynamo.ActionHit {
		r.hits++
	}
	// grow the view when the ball climbs out of it
	if x[0] > r.scale.Hi {
		r.scale.Hi = x[0] * 1.2
	}

	if r.frameRate > 0 {
		if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
		r.lastFrame = time.Now()
	}

	r.canvas.DrawBall(r.trail, r.scale)
	r.render(x, a, t)
}

func (r *LiveRenderer) render(x dynamo.State, a dynamo.Action, t float64) {
	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "  bounceball  t=%.2fs  hits=%d\n", t, r.hits)
	b.WriteString("  " + strings.Repeat("-", liveWidth) + "\n")
	for _, row := range r.canvas.Grid {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	b.WriteString("  " + strings.Repeat("-", liveWidth) + "\n")
	fmt.Fprintf(&b, "  p=%.2f v=%.2f a=%s\n", x[0], x[1], a)
	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
