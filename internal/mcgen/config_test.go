package mcgen

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reallyoldfogie/mc-voxelshape/internal/emit"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mc-voxelshape.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "project_dir: ./mod\n"))
	require.NoError(t, err)

	assert.Equal(t, "./mod", cfg.ProjectDir)
	assert.Equal(t, "minecraft", cfg.DefaultNamespace)
	assert.Equal(t, "auto", cfg.Mappings)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 500*time.Millisecond, cfg.WatchDebounce)
	assert.Equal(t, emit.DefaultStyle, cfg.Style)
	assert.Zero(t, cfg.Workers)
	assert.False(t, cfg.KeepGoing)
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
project_dir: /src/mod
default_namespace: examplemod
minecraft_version: 1.20.1
mappings: yarn
prefer_blockshape_package: true
workers: 3
keep_going: true
style:
  start_indent_level: 0
  expand_tab: false
json_output_dir: out/shapes
archive_path: out/shapes.jsonl.zst
index_path: out/index.db
log_level: debug
watch_debounce: 2s
`))
	require.NoError(t, err)

	assert.Equal(t, "examplemod", cfg.DefaultNamespace)
	assert.Equal(t, "1.20.1", cfg.MinecraftVersion)
	assert.Equal(t, "yarn", cfg.Mappings)
	assert.True(t, cfg.PreferBlockshapePackage)
	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.KeepGoing)
	assert.Equal(t, emit.Style{StartIndentLevel: 0, TabWidth: 4, ExpandTab: false}, cfg.Style)
	assert.Equal(t, "out/shapes", cfg.JSONOutputDir)
	assert.Equal(t, "out/shapes.jsonl.zst", cfg.ArchivePath)
	assert.Equal(t, "out/index.db", cfg.IndexPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.WatchDebounce)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing project", body: "mappings: mcp\n"},
		{name: "bad yaml", body: "project_dir: [\n"},
		{name: "unknown mappings", body: "project_dir: .\nmappings: srg\n"},
		{name: "negative workers", body: "project_dir: .\nworkers: -1\n"},
		{name: "negative tab width", body: "project_dir: .\nstyle:\n  tab_width: -2\n  expand_tab: true\n"},
		{name: "negative tab width with tabs", body: "project_dir: .\nstyle:\n  tab_width: -1\n  expand_tab: false\n"},
		{name: "bad log level", body: "project_dir: .\nlog_level: loud\n"},
		{name: "bad version", body: "project_dir: .\nminecraft_version: latest\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateZeroTabWidth(t *testing.T) {
	cfg := DefaultConfig(".")
	cfg.Style = emit.Style{StartIndentLevel: 1, TabWidth: 0, ExpandTab: true}
	assert.Error(t, cfg.Validate())

	cfg.Style.ExpandTab = false
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("mod")
	assert.Equal(t, "mod", cfg.ProjectDir)
	assert.Equal(t, "auto", cfg.Mappings)
	assert.NoError(t, cfg.Validate())
}
