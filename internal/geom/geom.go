// Package geom provides the 2-D geometric primitives used by swing analysis.
// All angle math works in the image plane (x, y); depth is deliberately
// excluded except where a caller opts into the horizontal-rotation helpers,
// because upstream depth estimates are unreliable.
package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// AngleAt returns the interior angle at vertex b formed by the segments b-a
// and b-c, in degrees [0, 180]. Degenerate input (a zero-length segment)
// returns 0; callers must treat 0 as "no signal", not as a measured angle.
func AngleAt(b, a, c r2.Point) float64 {
	v1 := a.Sub(b)
	v2 := c.Sub(b)

	n1 := v1.Norm()
	n2 := v2.Norm()
	if n1 < 1e-10 || n2 < 1e-10 {
		return 0
	}

	cos := v1.Dot(v2) / (n1 * n2)
	cos = Clamp(cos, -1, 1)
	return math.Acos(cos) * 180 / math.Pi
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

// LineAngle returns the angle of the segment a→b relative to the positive
// x axis, in degrees (-180, 180]. Zero-length input returns 0.
func LineAngle(a, b r2.Point) float64 {
	d := b.Sub(a)
	if d.Norm() < 1e-10 {
		return 0
	}
	return math.Atan2(d.Y, d.X) * 180 / math.Pi
}

// VerticalTilt returns the unsigned angle between the segment a→b and the
// vertical axis, in degrees [0, 90]. Used for spine tilt, where a is the
// lower point (hip center) and b the upper (shoulder center).
func VerticalTilt(a, b r2.Point) float64 {
	d := b.Sub(a)
	n := d.Norm()
	if n < 1e-10 {
		return 0
	}
	cos := math.Abs(d.Y) / n
	return math.Acos(Clamp(cos, -1, 1)) * 180 / math.Pi
}

// NormalizeAngle wraps an angle in degrees into (-180, 180] along the
// shortest arc.
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
