package emit

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/ethaniccc/float32-cube/cube"
)

// GeneratedHeader marks files this tool owns and may overwrite.
const GeneratedHeader = "// File generated by mc-voxelshape"

// Class describes one generated Java class holding VoxelShape constants.
type Class struct {
	Package string // omitted from the output when empty
	Name    string
	Dialect Dialect
	Style   Style
	Fields  *Fields
}

// Render returns the Java source of c.
func Render(c Class) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders c into w.
func Write(w io.Writer, c Class) error {
	bw := bufio.NewWriter(w)
	outer := c.Style.indent(c.Style.StartIndentLevel)
	inner := c.Style.indent(c.Style.StartIndentLevel + 1)

	if c.Package != "" {
		bw.WriteString("package " + c.Package + ";\n\n")
	}
	bw.WriteString(GeneratedHeader + "\n\n")
	for _, imp := range c.Dialect.Imports {
		bw.WriteString("import " + imp + ";\n")
	}
	bw.WriteString("\npublic class " + c.Name + " {\n")

	for i, f := range c.Fields.All() {
		if i > 0 {
			bw.WriteString("\n")
		}
		bw.WriteString(outer + "// " + strings.Join(f.Variants, ", ") + "\n")
		bw.WriteString(outer + "protected static final VoxelShape " + f.Name + " = " + c.Dialect.SupplierOf + "(() -> ")
		writeShape(bw, c.Dialect, f.Boxes, inner)
		bw.WriteString(");\n")
	}

	bw.WriteString("}\n")
	return bw.Flush()
}

func writeShape(w *bufio.Writer, d Dialect, boxes []cube.BBox, indent string) {
	switch len(boxes) {
	case 0:
		w.WriteString(d.Empty)
	case 1:
		w.WriteString(CuboidExpr(d, boxes[0]))
	default:
		w.WriteString(d.Union + "(\n")
		for i, b := range boxes {
			w.WriteString(indent + CuboidExpr(d, b))
			if i < len(boxes)-1 {
				w.WriteString(",\n")
			}
		}
		w.WriteString(")")
	}
}

// CuboidExpr renders the factory call for one box in 0..16 units.
func CuboidExpr(d Dialect, b cube.BBox) string {
	lo, hi := b.Min(), b.Max()
	args := []string{
		formatFloat(lo[0]), formatFloat(lo[1]), formatFloat(lo[2]),
		formatFloat(hi[0]), formatFloat(hi[1]), formatFloat(hi[2]),
	}
	return d.Cuboid + "(" + strings.Join(args, ", ") + ")"
}

// formatFloat prints the shortest decimal that reads back as f.
func formatFloat(f float32) string {
	if f == 0 {
		f = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}
