package resolve

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Loader provides module sources.
type Loader interface {
	ReadFile(path string) ([]byte, error)
	Exists(path string) bool
}

// OSLoader reads modules from the file system.
type OSLoader struct{}

func (OSLoader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OSLoader) Exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// MemoryLoader serves modules from memory, keys are cleaned paths.
type MemoryLoader map[string]string

func (m MemoryLoader) ReadFile(path string) ([]byte, error) {
	src, ok := m[filepath.Clean(path)]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return []byte(src), nil
}

func (m MemoryLoader) Exists(path string) bool {
	_, ok := m[filepath.Clean(path)]
	return ok
}

// ImportPath resolves relative import specifier against importing module.
// Bare package specifiers are not resolved. Specifiers without known
// extension are tried with each of exts, then as directory index.
func ImportPath(from, spec string, exts []string, exists func(string) bool) (string, bool) {
	if !strings.HasPrefix(spec, "./") && !strings.HasPrefix(spec, "../") && !filepath.IsAbs(spec) {
		return "", false
	}
	base := spec
	if !filepath.IsAbs(spec) {
		base = filepath.Join(filepath.Dir(from), filepath.FromSlash(spec))
	}
	base = filepath.Clean(base)

	candidates := []string{}
	if ext := filepath.Ext(base); ext != "" && slices.Contains(exts, ext) {
		candidates = append(candidates, base)
	}
	for _, ext := range exts {
		candidates = append(candidates, base+ext)
	}
	for _, ext := range exts {
		candidates = append(candidates, filepath.Join(base, "index"+ext))
	}
	for _, c := range candidates {
		if exists(c) {
			return c, true
		}
	}
	return "", false
}
