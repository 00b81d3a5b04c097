package geom

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
)

// MergeTouching repeatedly replaces the first touching pair of boxes with
// their union until no two boxes touch. Pairs are searched in ascending
// (i, j) order and the search restarts after every merge. boxes is not
// modified.
func MergeTouching(boxes []cube.BBox) []cube.BBox {
	work := append([]cube.BBox(nil), boxes...)

	for {
		i, j, ok := firstTouching(work)
		if !ok {
			return work
		}
		a, b := work[i], work[j]
		hi, lo := max(i, j), min(i, j)
		work = append(work[:hi], work[hi+1:]...)
		work = append(work[:lo], work[lo+1:]...)
		work = append(work, Union(a, b))
	}
}

func firstTouching(boxes []cube.BBox) (int, int, bool) {
	for i := range boxes {
		for j := range boxes {
			if i == j {
				continue
			}
			if Touching(boxes[i], boxes[j]) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// Touching reports whether a and b overlap or share a boundary on all
// three axes.
func Touching(a, b cube.BBox) bool {
	amin, amax := a.Min(), a.Max()
	bmin, bmax := b.Min(), b.Max()
	for k := 0; k < 3; k++ {
		if !axisOverlap(amin[k], amax[k], bmin[k], bmax[k]) {
			return false
		}
	}
	return true
}

func axisOverlap(a0, a1, b0, b1 float32) bool {
	return b0 >= a0 && b0 <= a1 ||
		b1 >= a0 && b1 <= a1 ||
		a0 >= b0 && a0 <= b1 ||
		a1 >= b0 && a1 <= b1
}

// Union returns the smallest box containing both a and b. Any gap between
// them becomes part of the result.
func Union(a, b cube.BBox) cube.BBox {
	amin, amax := a.Min(), a.Max()
	bmin, bmax := b.Min(), b.Max()
	return cube.Box(
		math32.Min(amin[0], bmin[0]), math32.Min(amin[1], bmin[1]), math32.Min(amin[2], bmin[2]),
		math32.Max(amax[0], bmax[0]), math32.Max(amax[1], bmax[1]), math32.Max(amax[2], bmax[2]),
	)
}
