package mcgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/reallyoldfogie/mc-voxelshape/geom"
	"github.com/reallyoldfogie/mc-voxelshape/internal/emit"
	"github.com/reallyoldfogie/mc-voxelshape/loader"
)

var (
	ErrBlockstateNotFound  = errors.New("blockstate not found")
	ErrAmbiguousBlockstate = errors.New("blockstate name is ambiguous")
	ErrNoVariantModel      = errors.New("variant has no model")
)

// Runner converts the block classes of one project.
type Runner struct {
	Config  *Config
	Log     *logrus.Logger
	Dialect emit.Dialect
	Index   *Index // nil disables incremental skipping
}

// Summary reports what a run did.
type Summary struct {
	Classes   int
	Written   int
	Unchanged int
	Failed    int
	Records   []loader.BlockStateRecord
}

// NewRunner resolves the dialect and opens the index configured in cfg.
func NewRunner(cfg *Config, log *logrus.Logger) (*Runner, error) {
	d, err := ResolveDialect(cfg.Mappings, cfg.MinecraftVersion)
	if err != nil {
		return nil, fmt.Errorf("resolve mappings: %w", err)
	}
	r := &Runner{Config: cfg, Log: log, Dialect: d}
	if cfg.IndexPath != "" {
		ix, err := OpenIndex(cfg.IndexPath)
		if err != nil {
			return nil, err
		}
		r.Index = ix
	}
	return r, nil
}

func (r *Runner) Close() error {
	if r.Index != nil {
		return r.Index.Close()
	}
	return nil
}

// project is the scanned input of a run.
type project struct {
	models      *loader.ModelSet
	blockstates map[string]string // "ns:name" -> file
	classes     []*BlockInfo
}

func (r *Runner) scan() (*project, error) {
	files, err := DiscoverFiles(r.Config.ProjectDir)
	if err != nil {
		return nil, err
	}

	p := &project{
		models:      loader.NewModelSet(r.Config.DefaultNamespace),
		blockstates: make(map[string]string),
	}
	for _, path := range files {
		switch {
		case IsBlockModel(path) && strings.HasSuffix(path, ".json"):
			p.models.Add(path)
		case IsBlockstate(path) && strings.HasSuffix(path, ".json"):
			if id, ok := loader.BlockIDFromPath(path); ok {
				p.blockstates[id] = path
			}
		case strings.HasSuffix(path, ".java"):
			info, err := ProcessJavaFile(path, r.Config.PreferBlockshapePackage)
			if err != nil {
				return nil, err
			}
			if len(info.IDs) > 0 {
				p.classes = append(p.classes, info)
			}
		}
	}

	r.Log.WithFields(logrus.Fields{
		"files":       len(files),
		"models":      p.models.Len(),
		"blockstates": len(p.blockstates),
		"classes":     len(p.classes),
	}).Info("scanned project")
	return p, nil
}

// blockstate finds the blockstate file for a block id. Ids without a
// namespace match any namespace, preferring defaultNS when several do.
func (p *project) blockstate(id, defaultNS string) (string, string, error) {
	if strings.Contains(id, ":") {
		path, ok := p.blockstates[id]
		if !ok {
			return "", "", fmt.Errorf("%w: %s", ErrBlockstateNotFound, id)
		}
		return id, path, nil
	}

	var matches []string
	for qualified := range p.blockstates {
		if _, name, _ := strings.Cut(qualified, ":"); name == id {
			matches = append(matches, qualified)
		}
	}
	sort.Strings(matches)
	switch len(matches) {
	case 0:
		return "", "", fmt.Errorf("%w: %s", ErrBlockstateNotFound, id)
	case 1:
		return matches[0], p.blockstates[matches[0]], nil
	}
	if path, ok := p.blockstates[defaultNS+":"+id]; ok {
		return defaultNS + ":" + id, path, nil
	}
	return "", "", fmt.Errorf("%w: %s matches %s", ErrAmbiguousBlockstate, id, strings.Join(matches, ", "))
}

// Run converts every block class of the project. Without keep_going the
// first failing class cancels the others.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	p, err := r.scan()
	if err != nil {
		return nil, err
	}

	workers := r.Config.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	sum := &Summary{Classes: len(p.classes)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, info := range p.classes {
		info := info
		g.Go(func() error {
			res, err := r.convertClass(gctx, p, info)
			if err != nil {
				err = fmt.Errorf("%s: %w", info.Path, err)
				if r.Config.KeepGoing && gctx.Err() == nil {
					r.Log.WithError(err).Error("class failed")
					mu.Lock()
					sum.Failed++
					mu.Unlock()
					return nil
				}
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			sum.Records = append(sum.Records, res.records...)
			switch {
			case res.unchanged:
				sum.Unchanged++
			case res.written:
				sum.Written++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, err
	}

	sortRecords(sum.Records)
	if !r.Config.DryRun {
		if r.Config.JSONOutputDir != "" {
			if err := shardRecords(sum.Records, r.Config.JSONOutputDir); err != nil {
				return sum, fmt.Errorf("export json: %w", err)
			}
		}
		if r.Config.ArchivePath != "" {
			if err := writeArchive(sum.Records, r.Config.ArchivePath); err != nil {
				return sum, fmt.Errorf("write archive: %w", err)
			}
		}
	}

	r.Log.WithFields(logrus.Fields{
		"classes":   sum.Classes,
		"written":   sum.Written,
		"unchanged": sum.Unchanged,
		"failed":    sum.Failed,
		"states":    len(sum.Records),
	}).Info("run finished")

	if sum.Failed > 0 {
		return sum, fmt.Errorf("%d of %d classes failed", sum.Failed, sum.Classes)
	}
	return sum, nil
}

type classResult struct {
	records   []loader.BlockStateRecord
	written   bool
	unchanged bool
}

// convertClass builds the shape class for one BlockInfo. Nothing is
// written unless every variant of every id converts.
func (r *Runner) convertClass(ctx context.Context, p *project, info *BlockInfo) (*classResult, error) {
	log := r.Log.WithFields(logrus.Fields{"class": info.ClassName, "target": info.Target})

	fields := emit.NewFields()
	ih := newInputHash()
	ih.add(r.Dialect.Name, fmt.Sprint(r.Config.Style), info.Package, info.ClassName)
	hashed := make(map[loader.ModelRef]bool)

	res := &classResult{}
	boxCount := 0
	for _, rawID := range info.IDs {
		id, path, err := p.blockstate(rawID, r.Config.DefaultNamespace)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", rawID, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("block %s: read blockstate: %w", id, err)
		}
		bs, err := loader.DecodeBlockstate(data)
		if err != nil {
			return nil, fmt.Errorf("block %s: %s: %w", id, path, err)
		}
		ih.add(id)
		ih.addBytes(data)

		prefix := ""
		if len(info.IDs) > 1 {
			prefix = emit.ConstantPrefix(id)
		}

		for _, key := range bs.VariantKeys() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			v, ok := bs.Variants[key].Primary()
			if !ok || v.Model == "" {
				return nil, fmt.Errorf("block %s: variant %q: %w", id, key, ErrNoVariantModel)
			}
			resolved, err := p.models.Resolve(v.Model)
			if err != nil {
				return nil, fmt.Errorf("block %s: variant %q: model %s: %w", id, key, v.Model, err)
			}
			if err := hashChain(ih, p.models, resolved.Chain, hashed); err != nil {
				return nil, fmt.Errorf("block %s: variant %q: %w", id, key, err)
			}

			boxes := geom.Convert(resolved.Elements, v.Rotation())
			boxCount += len(boxes)
			fields.Add(emit.FieldName(prefix, v), variantLabel(id, key, prefix != ""), boxes)
			res.records = append(res.records, loader.NewBlockStateRecord(id, key, resolved.Ref.String(), boxes))

			log.WithFields(logrus.Fields{
				"block":   id,
				"variant": key,
				"model":   resolved.Ref.String(),
				"boxes":   len(boxes),
			}).Debug("converted variant")
		}
	}

	hash := ih.Sum64()
	if r.Index != nil {
		unchanged, err := r.Index.Unchanged(ctx, info.Target, hash)
		if err != nil {
			return nil, err
		}
		if unchanged {
			log.Debug("inputs unchanged")
			res.unchanged = true
			return res, nil
		}
	}

	src, err := emit.Render(emit.Class{
		Package: info.Package,
		Name:    info.ClassName,
		Dialect: r.Dialect,
		Style:   r.Config.Style,
		Fields:  fields,
	})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", info.ClassName, err)
	}

	if r.Config.DryRun {
		log.WithField("fields", fields.Len()).Info("would write class")
		return res, nil
	}
	if err := r.writeTarget(info, src); err != nil {
		return nil, err
	}
	res.written = true
	log.WithField("fields", fields.Len()).Info("wrote class")

	if r.Index != nil {
		err := r.Index.Put(ctx, IndexEntry{
			Target:   info.Target,
			BlockIDs: info.IDs,
			Hash:     hash,
			Fields:   fields.Len(),
			Boxes:    boxCount,
		})
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// hashChain adds the files of every model in chain not hashed yet.
// Built-in parents have no file and contribute their name only.
func hashChain(ih inputHash, models *loader.ModelSet, chain []loader.ModelRef, hashed map[loader.ModelRef]bool) error {
	for _, ref := range chain {
		if hashed[ref] {
			continue
		}
		hashed[ref] = true
		ih.add(ref.String())
		path, ok := models.Path(ref)
		if !ok {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read model %s: %w", ref, err)
		}
		ih.addBytes(data)
	}
	return nil
}

func variantLabel(id, key string, qualified bool) string {
	if key == "" {
		key = "normal"
	}
	if qualified {
		return id + "[" + key + "]"
	}
	return key
}

// writeTarget replaces the shape class. A file at the target that was
// not generated by this tool is kept as <target>.bak first.
func (r *Runner) writeTarget(info *BlockInfo, src []byte) error {
	if !info.TargetNew {
		old, err := os.ReadFile(info.Target)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("read %s: %w", info.Target, err)
		}
		if err == nil && !bytes.Contains(old, []byte(emit.GeneratedHeader)) {
			backup := info.Target + ".bak"
			if err := copyFile(info.Target, backup); err != nil {
				return fmt.Errorf("backup %s: %w", info.Target, err)
			}
			r.Log.WithField("backup", backup).Warn("target was not generated, kept a backup")
		}
	}
	if err := writeFileAtomic(info.Target, src); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(info.Target), err)
	}
	return nil
}

// ConvertFiles converts a single blockstate whose variants all use the
// model at modelPath. cls supplies everything but the fields.
func ConvertFiles(blockstatePath, modelPath string, cls emit.Class) ([]byte, error) {
	bs, err := loader.LoadBlockstate(blockstatePath)
	if err != nil {
		return nil, err
	}
	m, err := loader.LoadModel(modelPath)
	if err != nil {
		return nil, err
	}
	if !m.HasElements() {
		return nil, fmt.Errorf("%s: %w", modelPath, loader.ErrNoElements)
	}
	elements, err := m.GeomElements()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", modelPath, err)
	}

	cls.Fields = emit.NewFields()
	for _, key := range bs.VariantKeys() {
		v, _ := bs.Variants[key].Primary()
		boxes := geom.Convert(elements, v.Rotation())
		cls.Fields.Add(emit.FieldName("", v), variantLabel("", key, false), boxes)
	}
	return emit.Render(cls)
}
