// Package build compiles a tree of host modules: rewritten modules and
// generated stylesheets are written to destination directory.
package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vindur/compiler"
	"vindur/config"
	"vindur/css"
	"vindur/quasi"
	"vindur/resolve"
	"vindur/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("build")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if cmd.IsSet("css-mode") {
		mode, err := config.ParseCSSMode(cmd.String("css-mode"))
		if err != nil {
			log.Warn("Unknown stylesheet mode requested, using configured one", zap.Error(err))
		} else {
			env.Cfg.Output.CSSMode = mode
		}
	}
	if cmd.Bool("dev") {
		env.Cfg.Compiler.DevMode = true
	}
	env.Overwrite = cmd.Bool("overwrite")

	log.Info("Processing starting",
		zap.String("source", src),
		zap.String("destination", dst),
		zap.Stringer("css", env.Cfg.Output.CSSMode),
		zap.Bool("dev", env.Cfg.Compiler.DevMode))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, env, log)
}

// module is a unit of build output.
type module struct {
	path string
	rel  string
	// res is nil for modules passed through unchanged
	res *compiler.Result
	src []byte
	err error
}

// process builds single module or directory tree independently of CLI
// framework.
func process(ctx context.Context, src, dst string, env *state.LocalEnv, log *zap.Logger) error {
	root, files, err := inputs(ctx, src, dst, env.Cfg.Compiler.Extensions, log)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Warn("Nothing to process", zap.String("source", src))
		return nil
	}

	c, err := env.NewCompiler(root)
	if err != nil {
		return err
	}
	modules := compileAll(ctx, c, root, files, env, log)
	if err := ctx.Err(); err != nil {
		return err
	}

	failed, errs := failures(modules)
	if err := write(ctx, root, dst, modules, env, log); err != nil {
		errs = multierr.Append(errs, err)
	}
	if failed > 0 {
		return fmt.Errorf("unable to compile %d of %d modules: %w", failed, len(modules), errs)
	}
	return errs
}

func failures(modules []*module) (failed int, errs error) {
	for _, m := range modules {
		if m.err != nil {
			failed++
			errs = multierr.Append(errs, m.err)
		}
	}
	return failed, errs
}

// inputs returns root directory and modules to compile for source path, which
// is either a directory or a single module. Destination directory (if any) is
// never searched.
func inputs(ctx context.Context, src, dst string, exts []string, log *zap.Logger) (string, []string, error) {
	fi, err := os.Stat(src)
	if err != nil {
		return "", nil, fmt.Errorf("input source was not found (%s): %w", src, err)
	}
	switch {
	case fi.Mode().IsDir():
		if src == dst {
			return "", nil, errors.New("destination directory must differ from source directory")
		}
		files, err := discover(ctx, src, dst, exts, log)
		if err != nil {
			return "", nil, fmt.Errorf("unable to process directory: %w", err)
		}
		return src, files, nil
	case fi.Mode().IsRegular():
		if !isModule(src, exts) {
			return "", nil, fmt.Errorf("input was not recognized as module source (%s)", src)
		}
		root := filepath.Dir(src)
		if root == dst {
			return "", nil, errors.New("destination directory must differ from source directory")
		}
		return root, []string{src}, nil
	default:
		return "", nil, fmt.Errorf("unexpected path mode for (%s)", src)
	}
}

// compileAll compiles modules concurrently. Failures are logged and kept with
// the module, they do not stop the build.
func compileAll(ctx context.Context, c *compiler.Compiler, root string, files []string, env *state.LocalEnv, log *zap.Logger) []*module {
	modules := make([]*module, len(files))

	var g errgroup.Group
	g.SetLimit(env.Workers())
	for i, path := range files {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		m := &module{path: path, rel: rel}
		modules[i] = m
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			m.err = compileModule(ctx, c, m, env, log)
			if m.err != nil {
				log.Error("Unable to compile module", zap.String("file", m.rel), zap.Error(m.err))
				// source may change before report is looked at
				if err := env.Rpt.StoreCopy("failed/"+filepath.ToSlash(m.rel), m.path); err != nil {
					log.Warn("Unable to save module to report", zap.String("file", m.rel), zap.Error(err))
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	return modules
}

func compileModule(ctx context.Context, c *compiler.Compiler, m *module, env *state.LocalEnv, log *zap.Logger) (rerr error) {
	defer func(start time.Time) {
		// a broken module should not take the whole build down
		if r := recover(); r != nil {
			log.Error("Compilation ended with panic",
				zap.Any("panic", r), zap.String("file", m.rel), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("compilation panic: %v", r)
		}
	}(time.Now())

	data, err := os.ReadFile(m.path)
	if err != nil {
		return err
	}
	m.src = data

	// modules which never mention runtime module cannot contain constructs
	if !bytes.Contains(data, []byte(env.Cfg.Compiler.RuntimeModule)) {
		log.Debug("No style constructs, passing through", zap.String("file", m.rel))
		return nil
	}

	start := time.Now()
	res, err := c.Compile(ctx, m.path, data)
	if err != nil {
		return err
	}
	m.res = res
	log.Info("Module compiled",
		zap.String("file", m.rel),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("rules", len(res.Rules)),
		zap.Int("warnings", len(res.Warnings)))

	if env.Rpt != nil {
		name := slug.Make(m.rel)
		for _, fn := range slices.Sorted(maps.Keys(res.Functions)) {
			env.Rpt.StoreText(fmt.Sprintf("functions/%s/%s.txt", name, fn), quasi.Dump(res.Functions[fn]))
		}
		for _, dep := range res.Dependencies {
			if rec, err := c.Record(ctx, dep); err == nil {
				env.Rpt.StoreText(fmt.Sprintf("records/%s/%s.txt", name, slug.Make(filepath.Base(dep))), resolve.Dump(rec))
			}
		}
	}
	return nil
}

// write outputs modules in discovery order. Failed modules are skipped.
func write(ctx context.Context, root, dst string, modules []*module, env *state.LocalEnv, log *zap.Logger) error {
	out := &env.Cfg.Output

	built := make(map[string]bool, len(modules))
	for _, m := range modules {
		if m.res != nil {
			built[m.path] = true
		}
	}

	var bundle *css.Stylesheet
	if out.CSSMode.Single() {
		bundle = css.NewStylesheet(log)
		bundle.SourceComments = out.SourceComments
	}

	var errs error
	for _, m := range modules {
		if err := ctx.Err(); err != nil {
			return err
		}
		if m.err != nil {
			continue
		}
		target := filepath.Join(dst, m.rel)
		if m.res == nil {
			if err := writeFile(target, m.src, env.Overwrite, log); err != nil {
				errs = multierr.Append(errs, err)
			}
			continue
		}

		code := m.res.Code
		switch {
		case bundle != nil:
			bundle.Add(m.res.Rules...)
		default:
			sheet := css.NewStylesheet(log)
			sheet.SourceComments = out.SourceComments
			sheet.Add(ownRules(m.res, built)...)
			if sheet.Len() == 0 {
				break
			}
			name, err := stylesheetPath(out, dst, newValues(root, m.rel))
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", m.rel, err))
				continue
			}
			spec, err := importSpec(target, name)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			if err := writeFile(name, []byte(sheet.String()), env.Overwrite, log); err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			env.Rpt.Store("css/"+filepath.ToSlash(strings.TrimPrefix(name, dst+string(filepath.Separator))), name)
			code = fmt.Sprintf("import %q;\n%s", spec, code)
		}
		if err := writeFile(target, []byte(code), env.Overwrite, log); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if bundle != nil && bundle.Len() > 0 {
		name := filepath.Join(dst, config.CleanFileName(out.BundleName))
		if err := writeFile(name, []byte(bundle.String()), env.Overwrite, log); err != nil {
			return multierr.Append(errs, err)
		}
		env.Rpt.Store("css/"+filepath.Base(name), name)
		log.Info("Stylesheet written", zap.String("file", name), zap.Int("rules", bundle.Len()), zap.Strings("layers", bundle.Layers()))
	}
	return errs
}
