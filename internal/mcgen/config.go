package mcgen

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/reallyoldfogie/mc-voxelshape/internal/emit"
)

type Config struct {
	ProjectDir              string        `yaml:"project_dir"`
	DefaultNamespace        string        `yaml:"default_namespace"`
	MinecraftVersion        string        `yaml:"minecraft_version"`
	Mappings                string        `yaml:"mappings"`
	PreferBlockshapePackage bool          `yaml:"prefer_blockshape_package"`
	Workers                 int           `yaml:"workers"`
	KeepGoing               bool          `yaml:"keep_going"`
	DryRun                  bool          `yaml:"dry_run"`
	Style                   emit.Style    `yaml:"style"`
	JSONOutputDir           string        `yaml:"json_output_dir"`
	ArchivePath             string        `yaml:"archive_path"`
	IndexPath               string        `yaml:"index_path"`
	LogLevel                string        `yaml:"log_level"`
	WatchDebounce           time.Duration `yaml:"watch_debounce"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig(projectDir string) *Config {
	cfg := &Config{ProjectDir: projectDir, Style: emit.DefaultStyle}
	cfg.applyDefaults()
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Config{Style: emit.DefaultStyle}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	if cfg.ProjectDir == "" {
		return nil, fmt.Errorf("project_dir is required")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.DefaultNamespace == "" {
		cfg.DefaultNamespace = "minecraft"
	}
	if cfg.Mappings == "" {
		cfg.Mappings = "auto"
	}
	if cfg.Style.TabWidth == 0 {
		cfg.Style.TabWidth = emit.DefaultStyle.TabWidth
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.WatchDebounce == 0 {
		cfg.WatchDebounce = 500 * time.Millisecond
	}
}

// Validate checks values that have no usable default.
func (cfg *Config) Validate() error {
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if cfg.Style.StartIndentLevel < 0 {
		return fmt.Errorf("style.start_indent_level must not be negative")
	}
	if cfg.Style.TabWidth < 0 {
		return fmt.Errorf("style.tab_width must not be negative")
	}
	if cfg.Style.ExpandTab && cfg.Style.TabWidth == 0 {
		return fmt.Errorf("style.tab_width must be positive when expand_tab is set")
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if _, err := ResolveDialect(cfg.Mappings, cfg.MinecraftVersion); err != nil {
		return fmt.Errorf("mappings: %w", err)
	}
	return nil
}
