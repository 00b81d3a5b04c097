package loader

import (
	"sort"
	"strings"

	"github.com/ethaniccc/float32-cube/cube"
)

// Box represents a single AABB in block-local coordinates (0..1).
type Box struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// BoxFromBBox converts a box in 0..16 model units to block-local units.
func BoxFromBBox(b cube.BBox) Box {
	lo, hi := b.Min(), b.Max()
	return Box{
		Min: [3]float64{float64(lo[0]) / 16, float64(lo[1]) / 16, float64(lo[2]) / 16},
		Max: [3]float64{float64(hi[0]) / 16, float64(hi[1]) / 16, float64(hi[2]) / 16},
	}
}

// BBox returns b as a float32 bounding box, still in block-local units.
func (b Box) BBox() cube.BBox {
	return cube.Box(
		float32(b.Min[0]), float32(b.Min[1]), float32(b.Min[2]),
		float32(b.Max[0]), float32(b.Max[1]), float32(b.Max[2]),
	)
}

// BlockStatesFile is the per-block file format.
type BlockStatesFile struct {
	BlockID string                 `json:"block_id"`
	States  []BlockStateRecordSlim `json:"states"`
}

// BlockStateRecord is one converted blockstate variant. Records of every
// block are also streamed into the shape archive in this form.
type BlockStateRecord struct {
	BlockID        string            `json:"block_id"`
	Properties     map[string]string `json:"properties"`
	Model          string            `json:"model,omitempty"`
	CollisionBoxes []Box             `json:"collision_boxes"`
	OutlineBoxes   []Box             `json:"outline_boxes"`
	Air            bool              `json:"air"`
	Opaque         bool              `json:"opaque"`
	SolidBlock     bool              `json:"solid_block"`
	Replaceable    bool              `json:"replaceable"`
	BlocksMovement bool              `json:"blocks_movement"`
}

// Slim drops the block ID for storage in a per-block file.
func (r BlockStateRecord) Slim() BlockStateRecordSlim {
	return BlockStateRecordSlim{
		Properties:     r.Properties,
		CollisionBoxes: r.CollisionBoxes,
		OutlineBoxes:   r.OutlineBoxes,
		Air:            r.Air,
		Opaque:         r.Opaque,
		SolidBlock:     r.SolidBlock,
		Replaceable:    r.Replaceable,
		BlocksMovement: r.BlocksMovement,
	}
}

// BlockStateRecordSlim is used in per-block files (no BlockID).
type BlockStateRecordSlim struct {
	Properties     map[string]string `json:"properties"`
	CollisionBoxes []Box             `json:"collision_boxes"`
	OutlineBoxes   []Box             `json:"outline_boxes"`
	Air            bool              `json:"air"`
	Opaque         bool              `json:"opaque"`
	SolidBlock     bool              `json:"solid_block"`
	Replaceable    bool              `json:"replaceable"`
	BlocksMovement bool              `json:"blocks_movement"`
}

// NewBlockStateRecord describes a variant from its merged boxes (0..16 units).
// A single full cube counts as an opaque solid block.
func NewBlockStateRecord(blockID, variantKey, model string, boxes []cube.BBox) BlockStateRecord {
	out := make([]Box, len(boxes))
	for i, b := range boxes {
		out[i] = BoxFromBBox(b)
	}
	full := len(boxes) == 1 && out[0] == Box{Max: [3]float64{1, 1, 1}}
	return BlockStateRecord{
		BlockID:        blockID,
		Properties:     ParseVariantKey(variantKey),
		Model:          model,
		CollisionBoxes: out,
		OutlineBoxes:   out,
		Opaque:         full,
		SolidBlock:     full,
		BlocksMovement: len(out) > 0,
	}
}

// StateKey uniquely identifies a blockstate: block ID + normalized properties.
type StateKey struct {
	BlockID  string
	PropsKey string
}

// ShapeInfo is the runtime view of one converted blockstate.
type ShapeInfo struct {
	Collision      []Box
	Outline        []Box
	Air            bool
	Opaque         bool
	SolidBlock     bool
	Replaceable    bool
	BlocksMovement bool
}

// MakePropsKey deterministically encodes properties as "k1=v1,k2=v2".
func MakePropsKey(props map[string]string) string {
	if len(props) == 0 {
		return ""
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+props[k])
	}
	return strings.Join(parts, ",")
}

// ParseVariantKey decodes a blockstate variant key such as
// "facing=north,half=top". The empty key and "normal" have no properties.
func ParseVariantKey(key string) map[string]string {
	props := make(map[string]string)
	if key == "" || key == "normal" {
		return props
	}
	for _, part := range strings.Split(key, ",") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		props[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return props
}
