package geom

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Rotate turns every vertex around origin by angle degrees in the plane
// perpendicular to axis and returns the result as a new slice.
//
// The plane is taken as (z,y) for X, (x,z) for Y and (y,x) for Z and is
// turned by the negated angle. Together that is a right-handed rotation
// by +angle, matching the block model renderer. Keep the float32 steps as
// they are: fixtures compare the results numerically.
func Rotate(verts []mgl32.Vec3, origin mgl32.Vec3, axis Axis, angle float32) []mgl32.Vec3 {
	de := (2 * math32.Pi) / 360
	theta := -angle * de
	// sin and cos are rounded from float64 so quarter turns land on
	// exact grid values.
	s64, c64 := math.Sincos(float64(theta))
	sin, cos := float32(s64), float32(c64)

	out := make([]mgl32.Vec3, len(verts))
	for i, v := range verts {
		v = v.Sub(origin)

		var a, b float32
		switch axis {
		case X:
			a, b = v[2], v[1]
		case Y:
			a, b = v[0], v[2]
		case Z:
			a, b = v[1], v[0]
		}

		// Explicit conversions keep the compiler from fusing into FMA.
		a, b = float32(a*cos)-float32(b*sin), float32(b*cos)+float32(a*sin)

		switch axis {
		case X:
			v = mgl32.Vec3{v[0], b, a}
		case Y:
			v = mgl32.Vec3{a, v[1], b}
		case Z:
			v = mgl32.Vec3{b, a, v[2]}
		}
		out[i] = v.Add(origin)
	}
	return out
}
