package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/reallyoldfogie/mc-voxelshape/internal/emit"
	"github.com/reallyoldfogie/mc-voxelshape/internal/mcgen"
)

func main() {
	configPath := flag.String("config", "mc-voxelshape.yaml", "path to config file (YAML)")
	projectDir := flag.String("project", "", "mod project directory (overrides project_dir)")
	mappings := flag.String("mappings", "", "auto, mcp, yarn or mojang (overrides mappings)")
	blockstatePath := flag.String("blockstate", "", "convert a single blockstate file")
	modelPath := flag.String("model", "", "model used by every variant of -blockstate")
	outPath := flag.String("out", "", "output file for -blockstate (default stdout)")
	pkg := flag.String("package", "", "package of the class written by -blockstate")
	className := flag.String("class", "GeneratedBB", "name of the class written by -blockstate")
	watch := flag.Bool("watch", false, "re-run whenever models, blockstates or block classes change")
	dryRun := flag.Bool("dry-run", false, "convert without writing any file")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	lg := logrus.New()
	lg.Formatter = &logrus.TextFormatter{FullTimestamp: true}

	cfg, err := loadConfig(*configPath, *projectDir)
	if err != nil {
		lg.Fatalf("load config: %v", err)
	}
	if *mappings != "" {
		cfg.Mappings = *mappings
	}
	if *dryRun {
		cfg.DryRun = true
	}
	if err := cfg.Validate(); err != nil {
		lg.Fatalf("config: %v", err)
	}

	level, _ := logrus.ParseLevel(cfg.LogLevel)
	lg.Level = level
	if *verbose {
		lg.Level = logrus.DebugLevel
	}

	if *blockstatePath != "" {
		if *modelPath == "" {
			lg.Fatal("-blockstate needs -model")
		}
		d, err := mcgen.ResolveDialect(cfg.Mappings, cfg.MinecraftVersion)
		if err != nil {
			lg.Fatalf("resolve mappings: %v", err)
		}
		src, err := mcgen.ConvertFiles(*blockstatePath, *modelPath, emit.Class{
			Package: *pkg,
			Name:    *className,
			Dialect: d,
			Style:   cfg.Style,
		})
		if err != nil {
			lg.Fatalf("convert: %v", err)
		}
		if *outPath == "" || cfg.DryRun {
			os.Stdout.Write(src)
			return
		}
		if err := os.WriteFile(*outPath, src, 0o644); err != nil {
			lg.Fatalf("write %s: %v", *outPath, err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, err := mcgen.NewRunner(cfg, lg)
	if err != nil {
		lg.Fatalf("init: %v", err)
	}
	defer runner.Close()

	lg.WithFields(logrus.Fields{
		"project":  cfg.ProjectDir,
		"mappings": runner.Dialect.Name,
	}).Info("starting")

	if *watch {
		err := mcgen.Watch(ctx, cfg.ProjectDir, cfg.WatchDebounce, lg, func(ctx context.Context) error {
			_, err := runner.Run(ctx)
			return err
		})
		if err != nil {
			lg.Errorf("watch: %v", err)
			runner.Close()
			os.Exit(1)
		}
		return
	}

	if _, err := runner.Run(ctx); err != nil {
		lg.Errorf("run: %v", err)
		runner.Close()
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults for
// project when the file does not exist.
func loadConfig(path, project string) (*mcgen.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if project == "" {
			project = "."
		}
		return mcgen.DefaultConfig(project), nil
	}
	cfg, err := mcgen.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if project != "" {
		cfg.ProjectDir = project
	}
	return cfg, nil
}
