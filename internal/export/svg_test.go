package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/bounceball/internal/dynamo"
	"github.com/san-kum/bounceball/internal/env"
)

func TestTrajectoryToSVG(t *testing.T) {
	samples := []env.Sample{
		{Time: 0.3, Position: 8},
		{Time: 0.6, Position: 6, Action: dynamo.ActionHit},
		{Time: 0.9, Position: 1},
		{Time: 1.2, Position: -0.3, Action: dynamo.ActionHit},
	}

	svg := TrajectoryToSVG(samples, 200, 100)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an svg document:\n%s", svg)
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("got %d hit markers, want 2", n)
	}
	if n := strings.Count(svg, " L"); n != 3 {
		t.Errorf("got %d path segments, want 3", n)
	}
	// first point sits on the left edge
	if !strings.Contains(svg, `d="M0.0,`) {
		t.Errorf("path does not start at x=0:\n%s", svg)
	}
}

func TestWriteSVGTooShort(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, []env.Sample{{Time: 0.3}}, 100, 100); err == nil {
		t.Error("expected error for a single sample")
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written on error")
	}
}
