// Package geom holds the small pieces of plane geometry the ghost system
// needs: linear interpolation, shortest-arc angle interpolation, and a 2D
// point for silhouette polygons. Angles are radians throughout.
package geom

import "math"

// Point is a position in the plane. Silhouette polygons are ordered Point
// slices in entity-local space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Lerp linearly interpolates from a to b by factor t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpAngle interpolates from angle a toward angle b along the shorter arc.
// The traversed arc is never longer than π, so interpolating across the ±π
// seam does not swing the long way around. LerpAngle(a, b, 0) == a and
// LerpAngle(a, b, 1) == b modulo 2π.
func LerpAngle(a, b, t float64) float64 {
	diff := math.Mod(b-a, 2*math.Pi)
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff < -math.Pi {
		diff += 2 * math.Pi
	}
	return a + diff*t
}

// NormalizeAngle wraps an angle into (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
