package geom

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// ElementRotation is the local rotation an element may declare.
type ElementRotation struct {
	Origin mgl32.Vec3
	Axis   Axis
	Angle  float32
}

// Element is one cuboid of a block model in 0..16 model units.
type Element struct {
	From, To mgl32.Vec3
	Rotation *ElementRotation
}

// ModelRotation is the whole-model rotation of a blockstate variant, in
// degrees. The zero value means no rotation.
type ModelRotation struct {
	X, Y, Z float32
}

// IsZero reports whether r rotates nothing.
func (r ModelRotation) IsZero() bool {
	return r.X == 0 && r.Y == 0 && r.Z == 0
}

// Approximate returns the axis aligned box enclosing el after its own
// rotation and the model rotation rot have been applied.
//
// The element rotation is applied with its declared angle, the model
// rotation components with their negated value, x then y then z. A zero
// component is skipped rather than rotated by 0 degrees so unrotated
// axes stay exact.
func Approximate(el Element, rot ModelRotation) cube.BBox {
	corners := Corners(el.From, el.To)
	verts := corners[:]

	if r := el.Rotation; r != nil {
		verts = Rotate(verts, r.Origin, r.Axis, r.Angle)
	}

	if rot.X != 0 {
		verts = Rotate(verts, pivot, X, -rot.X)
	}
	if rot.Y != 0 {
		verts = Rotate(verts, pivot, Y, -rot.Y)
	}
	if rot.Z != 0 {
		verts = Rotate(verts, pivot, Z, -rot.Z)
	}
	return Bounds(verts)
}

// Convert approximates every element under rot and merges the results.
func Convert(elements []Element, rot ModelRotation) []cube.BBox {
	boxes := make([]cube.BBox, 0, len(elements))
	for _, el := range elements {
		boxes = append(boxes, Approximate(el, rot))
	}
	return MergeTouching(boxes)
}
