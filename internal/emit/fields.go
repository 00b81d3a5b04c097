package emit

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/ethaniccc/float32-cube/cube"

	"github.com/reallyoldfogie/mc-voxelshape/loader"
)

// Field is one generated VoxelShape constant.
type Field struct {
	Name     string
	Boxes    []cube.BBox
	Variants []string // variant keys sharing this shape
}

// Fields collects the constants of one generated class. Names are unique
// within a Fields value only; every class gets its own.
type Fields struct {
	m *orderedmap.OrderedMap[string, *Field]
}

func NewFields() *Fields {
	return &Fields{m: orderedmap.NewOrderedMap[string, *Field]()}
}

// Add registers boxes under name and returns the name actually used. A
// name already holding the same boxes is shared; a name holding
// different boxes gets a numeric suffix.
func (f *Fields) Add(name, variant string, boxes []cube.BBox) string {
	candidate := name
	for n := 2; ; n++ {
		existing, ok := f.m.Get(candidate)
		if !ok {
			f.m.Set(candidate, &Field{Name: candidate, Boxes: boxes, Variants: []string{variant}})
			return candidate
		}
		if sameBoxes(existing.Boxes, boxes) {
			existing.Variants = append(existing.Variants, variant)
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", name, n)
	}
}

func (f *Fields) Len() int {
	return f.m.Len()
}

// All returns the fields in the order they were first added.
func (f *Fields) All() []*Field {
	out := make([]*Field, 0, f.m.Len())
	for el := f.m.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

func sameBoxes(a, b []cube.BBox) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Min() != b[i].Min() || a[i].Max() != b[i].Max() {
			return false
		}
	}
	return true
}

// FieldName names the constant of a variant: BB followed by _X, _Y and _Z
// with the truncated angle for every rotation the variant declares, even
// a zero one. Negative angles are written with an N (BB_YN90). A non-empty
// prefix is joined with an underscore.
func FieldName(prefix string, v loader.Variant) string {
	var sb strings.Builder
	if prefix != "" {
		sb.WriteString(prefix)
		sb.WriteByte('_')
	}
	sb.WriteString("BB")
	for _, c := range []struct {
		axis  string
		angle *float32
	}{{"X", v.X}, {"Y", v.Y}, {"Z", v.Z}} {
		if c.angle == nil {
			continue
		}
		deg := truncAngle(*c.angle)
		sb.WriteString("_" + c.axis)
		if deg < 0 {
			sb.WriteByte('N')
			deg = -deg
		}
		fmt.Fprintf(&sb, "%d", deg)
	}
	return sb.String()
}

// truncAngle truncates a towards zero, clamped to the int32 range. NaN
// becomes 0.
func truncAngle(a float32) int64 {
	switch {
	case math.IsNaN(float64(a)):
		return 0
	case a >= math.MaxInt32:
		return math.MaxInt32
	case a <= math.MinInt32:
		return math.MinInt32
	}
	return int64(a)
}

// ConstantPrefix turns a block ID such as "examplemod:oak_table" into
// OAK_TABLE.
func ConstantPrefix(blockID string) string {
	if _, name, ok := strings.Cut(blockID, ":"); ok {
		blockID = name
	}
	s := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return '_'
		}
		return unicode.ToUpper(r)
	}, blockID)
	if s != "" && unicode.IsDigit(rune(s[0])) {
		s = "_" + s
	}
	return s
}
