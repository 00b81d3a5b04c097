package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/reallyoldfogie/mc-voxelshape/geom"
)

// ErrUnsupportedMultipart is returned for blockstates built from multipart
// cases instead of variants.
var ErrUnsupportedMultipart = errors.New("multipart blockstates are not supported")

// Blockstate is a blockstate file.
type Blockstate struct {
	Variants  map[string]VariantList `json:"variants,omitempty"`
	Multipart json.RawMessage        `json:"multipart,omitempty"`
}

// Variant pairs a model with an optional whole-model rotation.
type Variant struct {
	Model  string   `json:"model"`
	UVLock *bool    `json:"uvlock,omitempty"`
	X      *float32 `json:"x,omitempty"`
	Y      *float32 `json:"y,omitempty"`
	Z      *float32 `json:"z,omitempty"`
	Weight *int     `json:"weight,omitempty"`
}

// Rotation returns the variant's model rotation; absent components are 0.
func (v Variant) Rotation() geom.ModelRotation {
	var r geom.ModelRotation
	if v.X != nil {
		r.X = *v.X
	}
	if v.Y != nil {
		r.Y = *v.Y
	}
	if v.Z != nil {
		r.Z = *v.Z
	}
	return r
}

// VariantList holds the models of one variant key. In JSON it is either
// a single object or an array of weighted alternatives.
type VariantList []Variant

func (l *VariantList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var vs []Variant
		if err := json.Unmarshal(data, &vs); err != nil {
			return err
		}
		*l = vs
		return nil
	}
	var v Variant
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = VariantList{v}
	return nil
}

// Primary returns the variant whose model defines the shape: the first
// of the weighted alternatives.
func (l VariantList) Primary() (Variant, bool) {
	if len(l) == 0 {
		return Variant{}, false
	}
	return l[0], true
}

// VariantKeys returns the variant keys in sorted order.
func (b *Blockstate) VariantKeys() []string {
	keys := make([]string, 0, len(b.Variants))
	for k := range b.Variants {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DecodeBlockstate validates and decodes a blockstate file.
func DecodeBlockstate(data []byte) (*Blockstate, error) {
	var b Blockstate
	if err := decodeValidated(blockstateSchema, data, &b); err != nil {
		return nil, err
	}
	if len(b.Variants) == 0 && len(b.Multipart) > 0 {
		return nil, ErrUnsupportedMultipart
	}
	return &b, nil
}

// LoadBlockstate reads and decodes the blockstate file at path.
func LoadBlockstate(path string) (*Blockstate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	b, err := DecodeBlockstate(data)
	if err != nil {
		return nil, fmt.Errorf("blockstate %s: %w", path, err)
	}
	return b, nil
}
