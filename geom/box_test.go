package geom

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

var unitCorners = [8]mgl32.Vec3{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

func TestCornersOrder(t *testing.T) {
	assert.Equal(t, unitCorners, Corners(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}))
}

func TestCornersKeepFromAndTo(t *testing.T) {
	got := Corners(mgl32.Vec3{16, 16, 16}, mgl32.Vec3{0, 0, 0})
	assert.Equal(t, mgl32.Vec3{16, 16, 16}, got[0])
	assert.Equal(t, mgl32.Vec3{0, 16, 16}, got[1])
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, got[6])
}

func TestVertsOrder(t *testing.T) {
	assert.Equal(t, unitCorners, Verts(cube.Box(0, 0, 0, 1, 1, 1)))

	// Verts walks the normalized box.
	assert.Equal(t, unitCorners, Verts(cube.Box(1, 1, 1, 0, 0, 0)))
}

func TestBoundsOfVerts(t *testing.T) {
	b := cube.Box(2, 0, 6, 14, 8, 10)
	v := Verts(b)
	got := Bounds(v[:])
	assert.Equal(t, b.Min(), got.Min())
	assert.Equal(t, b.Max(), got.Max())
}
