package geom

import (
	"fmt"
	"sort"
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boxKeys renders boxes as sortable strings so results can be compared as
// sets regardless of order.
func boxKeys(boxes []cube.BBox) []string {
	keys := make([]string, len(boxes))
	for i, b := range boxes {
		keys[i] = fmt.Sprintf("%v-%v", b.Min(), b.Max())
	}
	sort.Strings(keys)
	return keys
}

// unionVolume computes the exact volume covered by boxes through
// coordinate compression.
func unionVolume(boxes []cube.BBox) float64 {
	var xs, ys, zs []float64
	for _, b := range boxes {
		xs = append(xs, float64(b.Min()[0]), float64(b.Max()[0]))
		ys = append(ys, float64(b.Min()[1]), float64(b.Max()[1]))
		zs = append(zs, float64(b.Min()[2]), float64(b.Max()[2]))
	}
	sort.Float64s(xs)
	sort.Float64s(ys)
	sort.Float64s(zs)

	inside := func(x, y, z float64) bool {
		for _, b := range boxes {
			if x > float64(b.Min()[0]) && x < float64(b.Max()[0]) &&
				y > float64(b.Min()[1]) && y < float64(b.Max()[1]) &&
				z > float64(b.Min()[2]) && z < float64(b.Max()[2]) {
				return true
			}
		}
		return false
	}

	vol := 0.0
	for i := 0; i+1 < len(xs); i++ {
		for j := 0; j+1 < len(ys); j++ {
			for k := 0; k+1 < len(zs); k++ {
				dx, dy, dz := xs[i+1]-xs[i], ys[j+1]-ys[j], zs[k+1]-zs[k]
				if dx == 0 || dy == 0 || dz == 0 {
					continue
				}
				if inside(xs[i]+dx/2, ys[j]+dy/2, zs[k]+dz/2) {
					vol += dx * dy * dz
				}
			}
		}
	}
	return vol
}

var mergeFixtures = map[string][]cube.BBox{
	"face sharing halves": {
		cube.Box(0, 0, 0, 8, 16, 16),
		cube.Box(8, 0, 0, 16, 16, 16),
	},
	"disjoint": {
		cube.Box(0, 0, 0, 4, 4, 4),
		cube.Box(10, 10, 10, 14, 14, 14),
	},
	"chain": {
		cube.Box(0, 0, 0, 2, 2, 2),
		cube.Box(2, 0, 0, 4, 2, 2),
		cube.Box(4, 0, 0, 6, 2, 2),
	},
	"cascade through union": {
		cube.Box(0, 0, 0, 2, 2, 2),
		cube.Box(2, 2, 2, 4, 4, 4),
		cube.Box(3, 0, 3, 5, 1, 5),
	},
	"table": {
		cube.Box(0, 14, 0, 16, 16, 16),
		cube.Box(1, 0, 1, 3, 14, 3),
		cube.Box(13, 0, 1, 15, 14, 3),
		cube.Box(1, 0, 13, 3, 14, 15),
		cube.Box(13, 0, 13, 15, 14, 15),
	},
	"two islands": {
		cube.Box(0, 0, 0, 1, 1, 1),
		cube.Box(1, 1, 1, 2, 2, 2),
		cube.Box(8, 8, 8, 9, 9, 9),
		cube.Box(9, 8, 8, 10, 9, 9),
	},
}

func TestMergeTouching(t *testing.T) {
	tests := []struct {
		name string
		want []cube.BBox
	}{
		{name: "face sharing halves", want: []cube.BBox{cube.Box(0, 0, 0, 16, 16, 16)}},
		{name: "disjoint", want: mergeFixtures["disjoint"]},
		{name: "chain", want: []cube.BBox{cube.Box(0, 0, 0, 6, 2, 2)}},
		{name: "cascade through union", want: []cube.BBox{cube.Box(0, 0, 0, 5, 4, 5)}},
		{name: "table", want: []cube.BBox{cube.Box(0, 0, 0, 16, 16, 16)}},
		{name: "two islands", want: []cube.BBox{cube.Box(0, 0, 0, 2, 2, 2), cube.Box(8, 8, 8, 10, 9, 9)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeTouching(mergeFixtures[tt.name])
			assert.Equal(t, boxKeys(tt.want), boxKeys(got))
		})
	}
}

func TestMergeTouchingFillsNotches(t *testing.T) {
	stairs := []cube.BBox{
		cube.Box(0, 0, 0, 16, 8, 16),
		cube.Box(0, 8, 8, 16, 16, 16),
	}
	got := MergeTouching(stairs)
	require.Len(t, got, 1)
	assert.Equal(t, 16.0*16*16, unionVolume(got))
	assert.Equal(t, 16.0*16*12, unionVolume(stairs))
}

func TestMergeTouchingEmpty(t *testing.T) {
	assert.Empty(t, MergeTouching(nil))
}

func TestMergeTouchingDoesNotModifyInput(t *testing.T) {
	in := append([]cube.BBox(nil), mergeFixtures["chain"]...)
	_ = MergeTouching(in)
	assert.Equal(t, boxKeys(mergeFixtures["chain"]), boxKeys(in))
	assert.Equal(t, mergeFixtures["chain"][0], in[0])
}

func TestMergeTouchingIdempotent(t *testing.T) {
	for name, boxes := range mergeFixtures {
		t.Run(name, func(t *testing.T) {
			once := MergeTouching(boxes)
			assert.Equal(t, boxKeys(once), boxKeys(MergeTouching(once)))
		})
	}
}

func TestMergeTouchingVolumeMonotonic(t *testing.T) {
	for name, boxes := range mergeFixtures {
		t.Run(name, func(t *testing.T) {
			assert.GreaterOrEqual(t, unionVolume(MergeTouching(boxes)), unionVolume(boxes))
		})
	}
	disjoint := mergeFixtures["disjoint"]
	assert.Equal(t, unionVolume(disjoint), unionVolume(MergeTouching(disjoint)))
}

func TestMergeTouchingPermutationInvariant(t *testing.T) {
	for name, boxes := range mergeFixtures {
		t.Run(name, func(t *testing.T) {
			want := boxKeys(MergeTouching(boxes))
			permute(boxes, func(p []cube.BBox) {
				assert.Equal(t, want, boxKeys(MergeTouching(p)))
			})
		})
	}
}

func TestMergedBoxesDoNotTouch(t *testing.T) {
	for name, boxes := range mergeFixtures {
		got := MergeTouching(boxes)
		for i := range got {
			for j := range got {
				if i != j {
					assert.False(t, Touching(got[i], got[j]), "%s: %d and %d touch", name, i, j)
				}
			}
		}
	}
}

func TestTouching(t *testing.T) {
	tests := []struct {
		name string
		a, b cube.BBox
		want bool
	}{
		{name: "shared face", a: cube.Box(0, 0, 0, 1, 1, 1), b: cube.Box(1, 0, 0, 2, 1, 1), want: true},
		{name: "shared edge", a: cube.Box(0, 0, 0, 1, 1, 1), b: cube.Box(1, 1, 0, 2, 2, 1), want: true},
		{name: "shared corner", a: cube.Box(0, 0, 0, 1, 1, 1), b: cube.Box(1, 1, 1, 2, 2, 2), want: true},
		{name: "contained", a: cube.Box(0, 0, 0, 4, 4, 4), b: cube.Box(1, 1, 1, 2, 2, 2), want: true},
		{name: "gap on one axis", a: cube.Box(0, 0, 0, 1, 1, 1), b: cube.Box(0, 0, 1.5, 1, 1, 2), want: false},
		{name: "flat boxes in one plane", a: cube.Box(0, 4, 0, 2, 4, 2), b: cube.Box(2, 4, 0, 3, 4, 1), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Touching(tt.a, tt.b))
			assert.Equal(t, tt.want, Touching(tt.b, tt.a))
		})
	}
}

func permute(boxes []cube.BBox, f func([]cube.BBox)) {
	p := append([]cube.BBox(nil), boxes...)
	var rec func(k int)
	rec = func(k int) {
		if k == len(p) {
			f(append([]cube.BBox(nil), p...))
			return
		}
		for i := k; i < len(p); i++ {
			p[k], p[i] = p[i], p[k]
			rec(k + 1)
			p[k], p[i] = p[i], p[k]
		}
	}
	rec(0)
}
