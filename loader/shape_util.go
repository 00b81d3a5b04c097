package loader

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// IsPassable reports whether the blockstate should be considered passable
// for entity movement. This is based purely on collision, not outline.
func (info ShapeInfo) IsPassable() bool {
	if info.Air {
		return true
	}
	if !info.BlocksMovement {
		return true
	}
	return false
}

// IsStandingSurface returns the maximum Y of the collision shape in
// block-local coordinates [0,1]. Returns 0 if there is no collision.
func (info ShapeInfo) IsStandingSurface() float64 {
	top := 0.0
	for _, b := range info.Collision {
		if b.Max[1] > top {
			top = b.Max[1]
		}
	}
	return top
}

// CanSeeThrough reports whether this blockstate should be considered
// transparent for line-of-sight / vision purposes.
func (info ShapeInfo) CanSeeThrough() bool {
	if info.Air {
		return true
	}
	return !info.Opaque
}

// WorldCollisionBoxesAt returns the collision boxes for this ShapeInfo
// translated into world coordinates at the given block position.
func (info ShapeInfo) WorldCollisionBoxesAt(blockX, blockY, blockZ int) []cube.BBox {
	if len(info.Collision) == 0 {
		return nil
	}

	offset := mgl32.Vec3{float32(blockX), float32(blockY), float32(blockZ)}
	out := make([]cube.BBox, len(info.Collision))
	for i, b := range info.Collision {
		out[i] = b.BBox().Translate(offset)
	}
	return out
}
