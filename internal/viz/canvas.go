package viz

import (
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a Braille pixel grid of (Width*2) x (Height*4) sub-pixels with
// y growing downwards.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) PixelWidth() int  { return c.Width * 2 }
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

// Set lights the sub-pixel (x, y). Out of range pixels are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawDisc fills a disc of radius r sub-pixels around (cx, cy).
func (c *Canvas) DrawDisc(cx, cy, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

// Heights maps world heights in [lo, hi] to canvas rows, bottom row at lo.
type Heights struct {
	Lo, Hi float64
	Rows   int
}

func (h Heights) Row(y float64) int {
	span := h.Hi - h.Lo
	if span <= 0 {
		span = 1
	}
	return h.Rows - 1 - int((y-h.Lo)/span*float64(h.Rows-1))
}

// DrawBall renders the ground, a trail of past heights scrolling in from the
// left and the ball itself at the right edge of the trail.
func (c *Canvas) DrawBall(trail []float64, scale Heights) {
	c.Clear()
	w := c.PixelWidth()
	ground := scale.Row(0)
	c.DrawLine(0, ground, w-1, ground)
	if len(trail) == 0 {
		return
	}

	start := max(0, len(trail)-(w-4))
	prevY := 0
	for i, y := range trail[start:] {
		row := scale.Row(y)
		if i == 0 {
			c.Set(i, row)
		} else {
			c.DrawLine(i-1, prevY, i, row)
		}
		prevY = row
	}

	last := len(trail[start:]) - 1
	c.DrawDisc(last, scale.Row(trail[len(trail)-1]), 2)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
