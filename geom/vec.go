package geom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// pivot is the centre of the 16 unit model cell. Whole-model rotations
// from blockstate variants turn around it.
var pivot = mgl32.Vec3{8, 8, 8}

// Vec converts a decoded JSON vector into a Vec3. The slice must hold
// exactly three values.
func Vec(s []float32) (mgl32.Vec3, error) {
	if len(s) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("%w: got %d components", ErrMalformedVector, len(s))
	}
	return mgl32.Vec3{s[0], s[1], s[2]}, nil
}
