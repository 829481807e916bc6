// Package render turns playback state into drawing commands. It owns no
// surface: the host injects anything that can trace and fill a path, and the
// ghost painter stays a pure function from state to commands.
package render

import (
	"math"

	"github.com/mfriis/ghostlap/internal/geom"
	"github.com/mfriis/ghostlap/internal/ghost"
)

// Canvas is the drawing surface capability set the ghost painter needs. The
// browser host backs it with a 2D canvas context; tests use a command
// recorder.
type Canvas interface {
	Clear()
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Fill(color string, opacity float64)
}

// Ghost paints the ghost silhouette: hull is the entity polygon in local
// space, which is rotated to the playback heading, translated to its
// position, and filled with the playback color at its current opacity. No
// outline, no effects. A nil, finished, or fully transparent playback paints
// nothing.
func Ghost(c Canvas, p *ghost.Playback, hull []geom.Point) {
	if p == nil || p.Finished() || p.Opacity <= 0 || len(hull) == 0 {
		return
	}

	sin, cos := math.Sincos(p.Rotation)

	c.BeginPath()
	for i, pt := range hull {
		x := p.X + pt.X*cos - pt.Y*sin
		y := p.Y + pt.X*sin + pt.Y*cos
		if i == 0 {
			c.MoveTo(x, y)
		} else {
			c.LineTo(x, y)
		}
	}
	c.ClosePath()
	c.Fill(p.Color, p.Opacity)
}
