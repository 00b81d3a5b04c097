package mcgen

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// BlockInfo describes a block class in the project and where its shape
// class goes.
type BlockInfo struct {
	Path      string
	Package   string // package of the generated class
	ClassName string // name of the generated class
	IDs       []string

	Target       string
	TargetNew    bool // Target does not exist yet
	TargetNextTo bool // Target sits next to Path
}

func (b BlockInfo) String() string {
	return fmt.Sprintf("%s.%s %v -> %s", b.Package, b.ClassName, b.IDs, b.Target)
}

var (
	packageRe = regexp.MustCompile(`^\s*package\s+([\w.]+)\s*;`)
	classRe   = regexp.MustCompile(`\bclass\s+([A-Za-z_$][\w$]*)`)
	quotedRe  = regexp.MustCompile(`"([^"]+)"`)
)

// IsBlockModel reports whether path is a block model (models/block/*).
func IsBlockModel(path string) bool {
	dir := filepath.Dir(path)
	return filepath.Base(dir) == "block" && filepath.Base(filepath.Dir(dir)) == "models"
}

// IsBlockstate reports whether path is a blockstate definition.
func IsBlockstate(path string) bool {
	return filepath.Base(filepath.Dir(path)) == "blockstates"
}

// ProcessJavaFile reads the block ids a Java source declares. A file
// without ids yields a BlockInfo with no IDs and no error.
//
// Recognised declarations:
//
//	static final String[] VSC_BLOCK_IDS = {"chair", "stool"};
//	static final String VSC_BLOCK_ID = "chair";
//	// VSC! BLOCK_ID "chair"
func ProcessJavaFile(path string, preferBlockshape bool) (*BlockInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info := &BlockInfo{Path: path}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if info.Package == "" {
			if m := packageRe.FindStringSubmatch(line); m != nil {
				info.Package = m[1]
			}
		}
		if info.ClassName == "" && !isComment(line) {
			if m := classRe.FindStringSubmatch(line); m != nil {
				info.ClassName = m[1]
			}
		}
		info.IDs = append(info.IDs, lineIDs(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(info.IDs) == 0 {
		return info, nil
	}

	if info.Package == "" {
		return nil, fmt.Errorf("%s: no package declaration", path)
	}
	if info.ClassName == "" {
		return nil, fmt.Errorf("%s: no class declaration", path)
	}

	info.ClassName += "BB"
	info.Target, info.TargetNextTo = findTarget(path, info.ClassName, preferBlockshape)
	if !info.TargetNextTo {
		info.Package = blockshapePackage(info.Package)
	}
	if _, err := os.Stat(info.Target); os.IsNotExist(err) {
		info.TargetNew = true
	}
	return info, nil
}

func isComment(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "//") || strings.HasPrefix(t, "*") || strings.HasPrefix(t, "/*")
}

func lineIDs(line string) []string {
	switch {
	case strings.Contains(line, "VSC_BLOCK_IDS"):
		open := strings.Index(line, "{")
		end := strings.LastIndex(line, "}")
		if open < 0 || end < open {
			return nil
		}
		return quoted(line[open:end])
	case strings.Contains(line, "VSC_BLOCK_ID"):
		eq := strings.Index(line, "=")
		if eq < 0 {
			return nil
		}
		return quoted(line[eq:])
	case strings.Contains(line, "VSC! BLOCK_ID"):
		return quoted(line[strings.Index(line, "VSC! BLOCK_ID"):])
	}
	return nil
}

func quoted(s string) []string {
	var ids []string
	for _, m := range quotedRe.FindAllStringSubmatch(s, -1) {
		ids = append(ids, m[1])
	}
	return ids
}

// findTarget places the shape class next to the block class, or in a
// sibling blockshape package when that is preferred and present.
func findTarget(path, className string, preferBlockshape bool) (string, bool) {
	dir := filepath.Dir(path)
	nextTo := filepath.Join(dir, className+".java")
	if !preferBlockshape {
		return nextTo, true
	}
	if _, err := os.Stat(nextTo); err == nil {
		return nextTo, true
	}
	shapes := filepath.Join(filepath.Dir(dir), "blockshape")
	if fi, err := os.Stat(shapes); err != nil || !fi.IsDir() {
		return nextTo, true
	}
	return filepath.Join(shapes, className+".java"), false
}

// blockshapePackage swaps the last package segment for blockshape, the
// package of the sibling directory.
func blockshapePackage(pkg string) string {
	if i := strings.LastIndex(pkg, "."); i >= 0 {
		return pkg[:i] + ".blockshape"
	}
	return "blockshape"
}
