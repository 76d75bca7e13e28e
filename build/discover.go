package build

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"
)

// skipDirs are never searched for modules.
var skipDirs = []string{"node_modules", "dist", "build"}

// typeScript sources can not be parsed, they have to be transpiled first.
var typeScript = []string{".ts", ".tsx", ".mts", ".cts"}

// isModule reports whether path looks like host module source. Type
// declaration files carry no code.
func isModule(path string, exts []string) bool {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".d.ts") || strings.HasSuffix(base, ".d.mts") {
		return false
	}
	return slices.Contains(exts, filepath.Ext(base))
}

// discover walks directory tree finding modules, exclude directory (build
// destination) is not entered. Result is ordered naturally by path relative to
// dir so builds are reproducible.
func discover(ctx context.Context, dir, exclude string, exts []string, log *zap.Logger) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (path == exclude || strings.HasPrefix(name, ".") || slices.Contains(skipDirs, name)) {
				log.Debug("Skipping directory", zap.String("dir", path))
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !isModule(path, exts) {
			if isModule(path, typeScript) {
				log.Debug("Skipping TypeScript module, transpile it first", zap.String("file", path))
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Sort(natural.StringSlice(files))
	for i, f := range files {
		files[i] = filepath.Join(dir, filepath.FromSlash(f))
	}
	return files, nil
}
