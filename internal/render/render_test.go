package render

import (
	"math"
	"testing"

	"github.com/mfriis/ghostlap/internal/geom"
	"github.com/mfriis/ghostlap/internal/ghost"
	"github.com/mfriis/ghostlap/internal/track"
)

// recordingCanvas captures drawing commands for assertions.
type recordingCanvas struct {
	ops     []string
	points  []geom.Point
	color   string
	opacity float64
}

func (c *recordingCanvas) Clear()     { c.ops = append(c.ops, "clear") }
func (c *recordingCanvas) BeginPath() { c.ops = append(c.ops, "begin") }
func (c *recordingCanvas) MoveTo(x, y float64) {
	c.ops = append(c.ops, "move")
	c.points = append(c.points, geom.Point{X: x, Y: y})
}
func (c *recordingCanvas) LineTo(x, y float64) {
	c.ops = append(c.ops, "line")
	c.points = append(c.points, geom.Point{X: x, Y: y})
}
func (c *recordingCanvas) ClosePath() { c.ops = append(c.ops, "close") }
func (c *recordingCanvas) Fill(color string, opacity float64) {
	c.ops = append(c.ops, "fill")
	c.color = color
	c.opacity = opacity
}

var triangle = []geom.Point{{X: 0, Y: -10}, {X: 6, Y: 8}, {X: -6, Y: 8}}

func activePlayback(color string) *ghost.Playback {
	frames := ghost.EncodeFrames([]ghost.Sample{
		{X: 100, Y: 50, Heading: 0, Speed: 0.5},
		{X: 110, Y: 50, Heading: 0, Speed: 0.5},
	})
	p := ghost.NewPlayback(frames, color, 0.1)
	p.Update(0.01)
	return p
}

func TestGhost_PaintsTranslatedPolygon(t *testing.T) {
	c := &recordingCanvas{}
	p := activePlayback("#4dd2ff")

	Ghost(c, p, triangle)

	wantOps := []string{"begin", "move", "line", "line", "close", "fill"}
	if len(c.ops) != len(wantOps) {
		t.Fatalf("ops = %v, want %v", c.ops, wantOps)
	}
	for i := range wantOps {
		if c.ops[i] != wantOps[i] {
			t.Fatalf("ops = %v, want %v", c.ops, wantOps)
		}
	}

	// Heading 0: pure translation by the playback position.
	for i, pt := range triangle {
		want := geom.Point{X: p.X + pt.X, Y: p.Y + pt.Y}
		got := c.points[i]
		if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
			t.Errorf("point %d = %+v, want %+v", i, got, want)
		}
	}

	if c.color != "#4dd2ff" {
		t.Errorf("fill color = %q, want %q", c.color, "#4dd2ff")
	}
	if c.opacity != p.Opacity {
		t.Errorf("fill opacity = %v, want %v", c.opacity, p.Opacity)
	}
}

func TestGhost_RotatesHull(t *testing.T) {
	c := &recordingCanvas{}
	frames := ghost.EncodeFrames([]ghost.Sample{
		{X: 0, Y: 0, Heading: math.Pi / 2, Speed: 0},
		{X: 0, Y: 0, Heading: math.Pi / 2, Speed: 0},
	})
	p := ghost.NewPlayback(frames, "#fff", 0.1)
	p.Update(0.01)

	Ghost(c, p, []geom.Point{{X: 1, Y: 0}})

	// (1, 0) rotated 90° becomes (0, 1).
	got := c.points[0]
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-1) > 1e-9 {
		t.Errorf("rotated point = %+v, want (0, 1)", got)
	}
}

func TestGhost_PaintsShipHull(t *testing.T) {
	c := &recordingCanvas{}
	p := activePlayback("#ff4d88")
	hull := track.ShipHull()

	Ghost(c, p, hull)

	if got, want := len(c.points), len(hull); got != want {
		t.Fatalf("forwarded %d hull points, want %d", got, want)
	}
	if c.ops[len(c.ops)-2] != "close" {
		t.Errorf("ops = %v, want a closed path before fill", c.ops)
	}
}

func TestGhost_NoOpCases(t *testing.T) {
	finished := ghost.NewPlayback(nil, "#fff", 0.1) // empty record, finished at rest

	cases := []struct {
		name string
		p    *ghost.Playback
		hull []geom.Point
	}{
		{"nil playback", nil, triangle},
		{"finished playback", finished, triangle},
		{"empty hull", activePlayback("#fff"), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &recordingCanvas{}
			Ghost(c, tc.p, tc.hull)
			if len(c.ops) != 0 {
				t.Errorf("ops = %v, want none", c.ops)
			}
		})
	}
}
