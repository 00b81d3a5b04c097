package loader

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/reallyoldfogie/mc-voxelshape/geom"
)

var (
	ErrModelNotFound = errors.New("model not found")
	ErrNoElements    = errors.New("model declares no elements")
	ErrModelCycle    = errors.New("model parent cycle")
)

// maxParentDepth bounds parent chains that never repeat but never end.
const maxParentDepth = 32

var fullCube = []geom.Element{{From: mgl32.Vec3{0, 0, 0}, To: mgl32.Vec3{16, 16, 16}}}

// Vanilla parents that are plain full cubes. Models inheriting from them
// resolve even though the vanilla files are not part of the project.
var builtinElements = map[string][]geom.Element{
	"minecraft:block/cube":                   fullCube,
	"minecraft:block/cube_all":               fullCube,
	"minecraft:block/cube_column":            fullCube,
	"minecraft:block/cube_column_horizontal": fullCube,
	"minecraft:block/cube_bottom_top":        fullCube,
	"minecraft:block/cube_top":               fullCube,
	"minecraft:block/orientable":             fullCube,
	"minecraft:block/orientable_vertical":    fullCube,
	"minecraft:block/orientable_with_bottom": fullCube,
	"minecraft:block/leaves":                 fullCube,
}

// Resolved is the element list a model reference ends up with.
type Resolved struct {
	Ref      ModelRef
	Source   ModelRef   // model in the parent chain that declared the elements
	Chain    []ModelRef // every model visited, Ref first
	Elements []geom.Element
}

// ModelSet indexes the model files of a project and loads them on demand.
// It is safe for concurrent use.
type ModelSet struct {
	DefaultNamespace string

	mu     sync.Mutex
	paths  map[ModelRef]string
	models map[ModelRef]*Model
}

func NewModelSet(defaultNamespace string) *ModelSet {
	return &ModelSet{
		DefaultNamespace: defaultNamespace,
		paths:            make(map[ModelRef]string),
		models:           make(map[ModelRef]*Model),
	}
}

// Add registers the model file at path. It reports false if the path is
// not laid out as <ns>/models/<path>.json.
func (s *ModelSet) Add(path string) bool {
	ref, ok := ModelRefFromPath(path)
	if !ok {
		return false
	}
	s.mu.Lock()
	s.paths[ref] = path
	s.mu.Unlock()
	return true
}

func (s *ModelSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths)
}

// Path returns the file registered for ref.
func (s *ModelSet) Path(ref ModelRef) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.paths[ref]
	return p, ok
}

// Model returns the decoded model for ref, reading it on first use.
func (s *ModelSet) Model(ref ModelRef) (*Model, error) {
	s.mu.Lock()
	m, ok := s.models[ref]
	path, known := s.paths[ref]
	s.mu.Unlock()
	if ok {
		return m, nil
	}
	if !known {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, ref)
	}

	m, err := LoadModel(path)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.models[ref] = m
	s.mu.Unlock()
	return m, nil
}

// Resolve follows the parent chain of ref up to the first model that
// declares elements and converts them.
func (s *ModelSet) Resolve(ref string) (Resolved, error) {
	start := ParseModelRef(ref, s.DefaultNamespace)
	seen := make(map[ModelRef]bool)
	var chain []ModelRef

	for cur := start; ; {
		if seen[cur] {
			return Resolved{}, fmt.Errorf("%w: %s", ErrModelCycle, cur)
		}
		seen[cur] = true
		chain = append(chain, cur)
		if len(chain) > maxParentDepth {
			return Resolved{}, fmt.Errorf("%w: %s has more than %d parents", ErrModelCycle, start, maxParentDepth)
		}

		m, err := s.Model(cur)
		if errors.Is(err, ErrModelNotFound) {
			if els, ok := builtinElements[cur.String()]; ok {
				return Resolved{Ref: start, Source: cur, Chain: chain, Elements: els}, nil
			}
			if cur == start {
				return Resolved{}, err
			}
			return Resolved{}, fmt.Errorf("%w: parent %s of %s is outside the project", ErrNoElements, cur, start)
		}
		if err != nil {
			return Resolved{}, err
		}

		if m.HasElements() {
			els, err := m.GeomElements()
			if err != nil {
				return Resolved{}, fmt.Errorf("model %s: %w", cur, err)
			}
			return Resolved{Ref: start, Source: cur, Chain: chain, Elements: els}, nil
		}
		if m.Parent == "" {
			return Resolved{}, fmt.Errorf("%w: %s", ErrNoElements, cur)
		}
		cur = ParseModelRef(m.Parent, s.DefaultNamespace)
	}
}
