package build

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"vindur/compiler"
	"vindur/config"
	"vindur/css"
)

// Values is a struct that holds variables we make available for stylesheet
// name template expansion
type Values struct {
	Dir  string
	Base string
	Ext  string
	Hash string
}

func newValues(root, rel string) Values {
	rel = filepath.ToSlash(rel)
	ext := path.Ext(rel)
	return Values{
		Dir:  path.Dir(rel),
		Base: strings.TrimSuffix(path.Base(rel), ext),
		Ext:  ext,
		Hash: compiler.FileHash(root, filepath.Join(root, filepath.FromSlash(rel))),
	}
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// stylesheetPath returns destination of module stylesheet. Expanded name is
// split into segments, each is cleaned (and transliterated if requested), it
// may not leave destination directory.
func stylesheetPath(out *config.OutputConfig, dst string, values Values) (string, error) {
	expanded, err := expandTemplate(config.CSSNameTemplateFieldName, out.CSSNameTemplate, values)
	if err != nil {
		return "", err
	}
	var segments []string
	for _, s := range strings.Split(path.Clean(filepath.ToSlash(expanded)), "/") {
		switch s {
		case "", ".":
			continue
		case "..":
			return "", fmt.Errorf("stylesheet name %q leaves destination directory", expanded)
		}
		segments = append(segments, s)
	}
	if len(segments) == 0 {
		return "", fmt.Errorf("stylesheet name template expanded to empty name for %s%s", values.Base, values.Ext)
	}
	for i, s := range segments {
		if out.SlugNames {
			ext := path.Ext(s)
			s = slug.Make(strings.TrimSuffix(s, ext)) + ext
		}
		segments[i] = config.CleanFileName(s)
	}
	return filepath.Join(append([]string{dst}, segments...)...), nil
}

// importSpec returns relative import specifier of target for module at from.
func importSpec(from, target string) (string, error) {
	rel, err := filepath.Rel(filepath.Dir(from), target)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rel, nil
}

// ownRules drops rules which come from modules compiled by the same build,
// they end up in stylesheets of those modules.
func ownRules(res *compiler.Result, built map[string]bool) []css.Rule {
	out := make([]css.Rule, 0, len(res.Rules))
	for _, r := range res.Rules {
		if r.Source.File != res.Path && built[r.Source.File] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// writeFile creates file with its directories, existing files are replaced
// only when overwrite is requested.
func writeFile(name string, data []byte, overwrite bool, log *zap.Logger) error {
	if _, err := os.Stat(name); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Debug("Overwriting existing file", zap.String("file", name))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return os.WriteFile(name, data, 0644)
}
