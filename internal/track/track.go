// Package track supplies a seeded procedural centerline and a ship
// silhouette for the simulate command and the replay viewers. In the game
// itself track generation belongs to the host; this package only has to be
// deterministic per seed so a simulated run and its replay agree on
// geometry.
package track

import (
	"math"
	"math/rand"

	"github.com/mfriis/ghostlap/internal/geom"
)

const (
	// LapLength is the arc distance of one lap in world units.
	LapLength = 1000.0

	baseAmplitude = 120.0
	baseScale     = 2 * math.Pi / LapLength
)

// Track is a seed-derived course. The centerline is a stack of sine waves
// whose phases and weights come from the seed, so the same seed always
// produces the same course.
type Track struct {
	seed   int64
	phases [3]float64
	weight [3]float64
}

// New derives a track from a seed.
func New(seed int64) *Track {
	rng := rand.New(rand.NewSource(seed))
	t := &Track{seed: seed}
	for i := range t.phases {
		t.phases[i] = rng.Float64() * 2 * math.Pi
		t.weight[i] = 0.4 + rng.Float64()*0.6
	}
	return t
}

// Seed returns the seed the track was derived from.
func (t *Track) Seed() int64 {
	return t.seed
}

// CenterX returns the lateral centerline offset at arc distance s. Harmonics
// at 1x, 2x and 3x the lap frequency keep the course lap-periodic.
func (t *Track) CenterX(s float64) float64 {
	x := 0.0
	for i := range t.phases {
		freq := baseScale * float64(i+1)
		x += t.weight[i] * baseAmplitude / float64(i+1) * math.Sin(s*freq+t.phases[i])
	}
	return x
}

// Heading returns the course direction at arc distance s, as the angle of
// the centerline tangent. Zero heading points along +Y (down the course).
func (t *Track) Heading(s float64) float64 {
	const h = 0.5
	dx := t.CenterX(s+h) - t.CenterX(s-h)
	return math.Atan2(dx, 2*h)
}

// Pose returns the centerline position and heading at arc distance s.
func (t *Track) Pose(s float64) (x, y, heading float64) {
	return t.CenterX(s), s, t.Heading(s)
}

// ShipHull is the ship silhouette in local space, nose toward -Y. The
// in-game polygon comes from the host; this one is for the bundled tools.
func ShipHull() []geom.Point {
	return []geom.Point{
		{X: 0, Y: -14},
		{X: 9, Y: 10},
		{X: 0, Y: 5},
		{X: -9, Y: 10},
	}
}
