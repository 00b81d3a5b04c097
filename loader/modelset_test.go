package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reallyoldfogie/mc-voxelshape/geom"
)

func testModelSet(t *testing.T) *ModelSet {
	t.Helper()
	s := NewModelSet("minecraft")
	root := filepath.Join("testdata", "assets")
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		s.Add(path)
		return nil
	})
	require.NoError(t, err)
	return s
}

func TestModelSetAddIgnoresNonModels(t *testing.T) {
	s := testModelSet(t)
	assert.Equal(t, 7, s.Len())
	_, ok := s.Path(ModelRef{Namespace: "examplemod", Path: "block/post"})
	assert.True(t, ok)
}

func TestModelSetResolve(t *testing.T) {
	s := testModelSet(t)

	tests := []struct {
		name       string
		ref        string
		wantSource string
		wantCount  int
	}{
		{name: "own elements", ref: "examplemod:block/post", wantSource: "examplemod:block/post", wantCount: 2},
		{name: "inherited elements", ref: "examplemod:block/tall_post", wantSource: "examplemod:block/post", wantCount: 2},
		{name: "vanilla cube parent", ref: "examplemod:block/crate", wantSource: "minecraft:block/cube_all", wantCount: 1},
		{name: "legacy reference", ref: "examplemod:post", wantSource: "examplemod:block/post", wantCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Resolve(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, res.Source.String())
			assert.Len(t, res.Elements, tt.wantCount)
		})
	}
}

func TestModelSetResolveCrateIsFullCube(t *testing.T) {
	res, err := testModelSet(t).Resolve("examplemod:block/crate")
	require.NoError(t, err)
	assert.Equal(t, []geom.Element{{From: mgl32.Vec3{0, 0, 0}, To: mgl32.Vec3{16, 16, 16}}}, res.Elements)
}

func TestModelSetResolveErrors(t *testing.T) {
	s := testModelSet(t)

	tests := []struct {
		name string
		ref  string
		want error
	}{
		{name: "missing", ref: "examplemod:block/nothing", want: ErrModelNotFound},
		{name: "cycle", ref: "examplemod:block/loop_a", want: ErrModelCycle},
		{name: "parent outside project", ref: "examplemod:block/sprite", want: ErrNoElements},
		{name: "malformed element", ref: "examplemod:block/bent", want: geom.ErrMalformedVector},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Resolve(tt.ref)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Resolve(%q) error = %v, want %v", tt.ref, err, tt.want)
			}
		})
	}
}

func TestModelRefs(t *testing.T) {
	assert.Equal(t, ModelRef{Namespace: "minecraft", Path: "block/stone"}, ParseModelRef("block/stone", "minecraft"))
	assert.Equal(t, ModelRef{Namespace: "examplemod", Path: "block/post"}, ParseModelRef("examplemod:post", "minecraft"))

	ref, ok := ModelRefFromPath(filepath.Join("src", "main", "resources", "assets", "examplemod", "models", "block", "post.json"))
	require.True(t, ok)
	assert.Equal(t, "examplemod:block/post", ref.String())

	_, ok = ModelRefFromPath(filepath.Join("assets", "examplemod", "textures", "post.png"))
	assert.False(t, ok)

	id, ok := BlockIDFromPath(filepath.Join("assets", "examplemod", "blockstates", "post.json"))
	require.True(t, ok)
	assert.Equal(t, "examplemod:post", id)
}

func TestModelSetResolveRecordsChain(t *testing.T) {
	res, err := testModelSet(t).Resolve("examplemod:block/tall_post")
	require.NoError(t, err)
	require.Len(t, res.Chain, 2)
	assert.Equal(t, "examplemod:block/tall_post", res.Chain[0].String())
	assert.Equal(t, "examplemod:block/post", res.Chain[1].String())
}

func TestModelSetResolveDepthLimit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deep", "models", "block")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	s := NewModelSet("deep")
	for i := 0; i <= maxParentDepth+1; i++ {
		path := filepath.Join(dir, fmt.Sprintf("m%d.json", i))
		body := fmt.Sprintf(`{"parent": "deep:block/m%d"}`, i+1)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		require.True(t, s.Add(path))
	}

	_, err := s.Resolve("deep:block/m0")
	assert.ErrorIs(t, err, ErrModelCycle)
}
