package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/bounceball/internal/dynamo"
	"github.com/san-kum/bounceball/internal/env"
)

const (
	background  = "#0a0a0a"
	pathColor   = "#00ffff"
	groundColor = "#666688"
	hitColor    = "#ff4444"
)

// TrajectoryToSVG plots ball height against time. The ground is drawn as a
// horizontal rule and every hit step as a red marker on the path.
func TrajectoryToSVG(samples []env.Sample, width, height int) string {
	if len(samples) < 2 {
		return ""
	}

	minT, maxT := samples[0].Time, samples[len(samples)-1].Time
	minY, maxY := 0.0, 0.0
	for _, s := range samples {
		minY = min(minY, s.Position)
		maxY = max(maxY, s.Position)
	}

	rangeT := max(maxT-minT, 1e-9)
	rangeY := max(maxY-minY, 1)
	minY -= rangeY * 0.05
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	px := func(t float64) float64 { return (t - minT) / rangeT * float64(width) }
	py := func(y float64) float64 { return float64(height) - (y-minY)/rangeY*float64(height) }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="%s" stroke-dasharray="4 4"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background,
		py(0), width, py(0), groundColor, pathColor)

	for i, s := range samples {
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", px(s.Time), py(s.Position))
	}
	sb.WriteString("\"/>\n")

	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", hitColor)
	for _, s := range samples {
		if s.Action == dynamo.ActionHit {
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"3\"/>\n", px(s.Time), py(s.Position))
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func WriteSVG(w io.Writer, samples []env.Sample, width, height int) error {
	svg := TrajectoryToSVG(samples, width, height)
	if svg == "" {
		return fmt.Errorf("export: need at least 2 samples, got %d", len(samples))
	}
	_, err := io.WriteString(w, svg)
	return err
}
