package loader

import (
	"fmt"
	"os"

	"github.com/reallyoldfogie/mc-voxelshape/geom"
)

// Model is a block model file.
type Model struct {
	Parent           string               `json:"parent,omitempty"`
	AmbientOcclusion *bool                `json:"ambientocclusion,omitempty"`
	Textures         map[string]string    `json:"textures,omitempty"`
	Elements         []Element            `json:"elements,omitempty"`
	Display          map[string]Transform `json:"display,omitempty"`
}

// Element is one cuboid of a model as written in JSON.
type Element struct {
	From     []float32       `json:"from"`
	To       []float32       `json:"to"`
	Rotation *Rotation       `json:"rotation,omitempty"`
	Shade    *bool           `json:"shade,omitempty"`
	Faces    map[string]Face `json:"faces,omitempty"`
}

// Rotation is the local rotation of an element.
type Rotation struct {
	Origin  []float32 `json:"origin"`
	Axis    string    `json:"axis"`
	Angle   float32   `json:"angle"`
	Rescale bool      `json:"rescale,omitempty"`
}

// Face is a textured element face. Faces have no influence on shapes.
type Face struct {
	UV        []float32 `json:"uv,omitempty"`
	Texture   string    `json:"texture"`
	CullFace  string    `json:"cullface,omitempty"`
	Rotation  int       `json:"rotation,omitempty"`
	TintIndex *int      `json:"tintindex,omitempty"`
}

// Transform is a display transform (gui, ground, ...).
type Transform struct {
	Rotation    []float32 `json:"rotation,omitempty"`
	Translation []float32 `json:"translation,omitempty"`
	Scale       []float32 `json:"scale,omitempty"`
}

// HasElements reports whether the model declares its own element list,
// even an empty one.
func (m *Model) HasElements() bool {
	return m.Elements != nil
}

// Geom validates e and converts it for the geometry engine.
func (e Element) Geom() (geom.Element, error) {
	from, err := geom.Vec(e.From)
	if err != nil {
		return geom.Element{}, fmt.Errorf("from: %w", err)
	}
	to, err := geom.Vec(e.To)
	if err != nil {
		return geom.Element{}, fmt.Errorf("to: %w", err)
	}
	el := geom.Element{From: from, To: to}
	if e.Rotation == nil {
		return el, nil
	}

	origin, err := geom.Vec(e.Rotation.Origin)
	if err != nil {
		return geom.Element{}, fmt.Errorf("rotation origin: %w", err)
	}
	axis, err := geom.ParseAxis(e.Rotation.Axis)
	if err != nil {
		return geom.Element{}, fmt.Errorf("rotation: %w", err)
	}
	el.Rotation = &geom.ElementRotation{Origin: origin, Axis: axis, Angle: e.Rotation.Angle}
	return el, nil
}

// GeomElements converts every element of m. The first malformed element
// fails the whole model.
func (m *Model) GeomElements() ([]geom.Element, error) {
	out := make([]geom.Element, 0, len(m.Elements))
	for i, e := range m.Elements {
		el, err := e.Geom()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, el)
	}
	return out, nil
}

// DecodeModel validates and decodes a model file.
func DecodeModel(data []byte) (*Model, error) {
	var m Model
	if err := decodeValidated(modelSchema, data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadModel reads and decodes the model file at path.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	m, err := DecodeModel(data)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return m, nil
}
