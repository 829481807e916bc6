package ghost

import (
	"math"

	"github.com/mfriis/ghostlap/internal/geom"
)

// Opacity pulse parameters. The pulse is purely cosmetic and never affects
// position.
const (
	baseOpacity = 0.40
	pulseAmp    = 0.10
	pulseRate   = 6.0 // rad/s
)

// Playback replays a recorded frame sequence as a ghost. It is driven by the
// host loop with the same dt ticks as everything else and produces a smoothly
// interpolated pose regardless of frame rate.
//
// A playback is ACTIVE until its timeline is exhausted, then FINISHED for
// good; Reset rewinds it to the freshly constructed state. Like the recorder
// it has a single owner and is not synchronized.
type Playback struct {
	samples  []Sample
	interval float64

	// Current interpolated pose.
	X        float64
	Y        float64
	Rotation float64
	Speed    float64

	// Elapsed is the playback time in seconds.
	Elapsed float64

	// Opacity is the current cosmetic alpha, 0 once finished.
	Opacity float64

	// Color is the fill color slot assigned by the host.
	Color string

	finished bool
}

// NewPlayback wraps a flat frame sequence recorded at the given interval
// (≤ 0 means DefaultInterval). An empty sequence, or one whose length is not
// a multiple of five, yields a playback that is already finished at the rest
// pose; bad stored data degrades to an invisible ghost instead of an error.
func NewPlayback(frames []float64, color string, interval float64) *Playback {
	if interval <= 0 {
		interval = DefaultInterval
	}
	p := &Playback{
		interval: interval,
		Color:    color,
	}
	samples, err := DecodeFrames(frames)
	if err == nil {
		p.samples = samples
	}
	p.rewind()
	return p
}

// rewind restores the freshly constructed state.
func (p *Playback) rewind() {
	p.Elapsed = 0
	if len(p.samples) == 0 {
		p.X, p.Y, p.Rotation, p.Speed = 0, 0, 0, 0
		p.Opacity = 0
		p.finished = true
		return
	}
	first := p.samples[0]
	p.X, p.Y = first.X, first.Y
	p.Rotation = first.Heading
	p.Speed = first.Speed
	p.Opacity = baseOpacity
	p.finished = false
}

// Reset rewinds the playback to the exact state of a fresh construction,
// for replaying a lap or retrying without reallocating.
func (p *Playback) Reset() {
	p.rewind()
}

// Finished reports whether the timeline has been exhausted.
func (p *Playback) Finished() bool {
	return p.finished
}

// Interval returns the sampling period the playback assumes.
func (p *Playback) Interval() float64 {
	return p.interval
}

// Update advances playback time by dt seconds and recomputes the pose. Once
// the last stored sample is reached the pose snaps to it exactly, opacity
// drops to 0, and further calls are no-ops.
func (p *Playback) Update(dt float64) {
	if p.finished {
		return
	}

	p.Elapsed += dt
	fi := p.Elapsed / p.interval
	i := int(fi)

	// No sample i+1 to interpolate toward: the run is over. A single-sample
	// recording lands here on the very first call.
	if i >= len(p.samples)-1 {
		last := p.samples[len(p.samples)-1]
		p.X, p.Y = last.X, last.Y
		p.Rotation = last.Heading
		p.Speed = last.Speed
		p.Opacity = 0
		p.finished = true
		return
	}

	t := fi - float64(i)
	a, b := p.samples[i], p.samples[i+1]
	p.X = geom.Lerp(a.X, b.X, t)
	p.Y = geom.Lerp(a.Y, b.Y, t)
	p.Speed = geom.Lerp(a.Speed, b.Speed, t)
	// Headings interpolate along the shorter arc so a ghost crossing the ±π
	// seam does not spin the long way around.
	p.Rotation = geom.LerpAngle(a.Heading, b.Heading, t)

	p.Opacity = baseOpacity + pulseAmp*math.Sin(pulseRate*p.Elapsed)
}
