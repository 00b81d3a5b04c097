package loader

import (
	"path/filepath"
	"strings"
)

// ModelRef names a model: namespace plus path below models/, without the
// .json extension.
type ModelRef struct {
	Namespace string
	Path      string
}

// ParseModelRef parses "ns:block/name" or "block/name". A reference with
// no directory ("ns:name", the pre-flattening form) points into block/.
func ParseModelRef(ref, defaultNamespace string) ModelRef {
	ns, path, ok := strings.Cut(ref, ":")
	if !ok {
		ns, path = defaultNamespace, ref
	}
	if !strings.Contains(path, "/") {
		path = "block/" + path
	}
	return ModelRef{Namespace: ns, Path: path}
}

func (r ModelRef) String() string {
	return r.Namespace + ":" + r.Path
}

// ModelRefFromPath derives the reference of a model file laid out as
// .../<ns>/models/<path>.json.
func ModelRefFromPath(path string) (ModelRef, bool) {
	ns, rest, ok := splitAssetPath(path, "models")
	if !ok {
		return ModelRef{}, false
	}
	return ModelRef{Namespace: ns, Path: rest}, true
}

// BlockIDFromPath derives the block ID of a blockstate file laid out as
// .../<ns>/blockstates/<name>.json.
func BlockIDFromPath(path string) (string, bool) {
	ns, rest, ok := splitAssetPath(path, "blockstates")
	if !ok {
		return "", false
	}
	return ns + ":" + rest, true
}

func splitAssetPath(path, kind string) (ns, rest string, ok bool) {
	if !strings.HasSuffix(path, ".json") {
		return "", "", false
	}
	parts := strings.Split(filepath.ToSlash(strings.TrimSuffix(path, ".json")), "/")
	for i := len(parts) - 2; i >= 1; i-- {
		if parts[i] == kind {
			return parts[i-1], strings.Join(parts[i+1:], "/"), true
		}
	}
	return "", "", false
}
