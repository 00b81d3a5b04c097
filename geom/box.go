package geom

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Corners returns the eight corners spanned by from and to: the four at
// from.Z first, then the four at to.Z, each face walked in the same order.
// from and to are used as given, so the order is stable even when from
// is not the minimum corner.
func Corners(from, to mgl32.Vec3) [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{from[0], from[1], from[2]},
		{to[0], from[1], from[2]},
		{to[0], to[1], from[2]},
		{from[0], to[1], from[2]},

		{from[0], from[1], to[2]},
		{to[0], from[1], to[2]},
		{to[0], to[1], to[2]},
		{from[0], to[1], to[2]},
	}
}

// Verts returns the corners of b in Corners order.
func Verts(b cube.BBox) [8]mgl32.Vec3 {
	return Corners(b.Min(), b.Max())
}

// Bounds returns the tightest box containing every vertex. It panics on an
// empty set: callers always pass the eight corners of an element.
func Bounds(verts []mgl32.Vec3) cube.BBox {
	if len(verts) == 0 {
		panic("geom: bounds of an empty vertex set")
	}
	lo, hi := verts[0], verts[0]
	for _, v := range verts[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = math32.Min(lo[i], v[i])
			hi[i] = math32.Max(hi[i], v[i])
		}
	}
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}
