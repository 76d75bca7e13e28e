package build

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"vindur/compiler"
	"vindur/state"
)

// Summary describes outcome of compiling a set of modules without writing
// anything.
type Summary struct {
	Modules    int
	Compiled   int
	Failed     int
	Rules      int
	Warnings   int
	Constructs map[compiler.Construct]int
}

// Check compiles modules and reports problems, nothing is written. Style
// warnings are always collected.
func Check(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("check")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	env.Cfg.Compiler.DevMode = true

	defer func(start time.Time) {
		log.Info("Check completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	sum, err := check(ctx, src, env, log)
	if sum != nil {
		fields := []zap.Field{
			zap.Int("modules", sum.Modules),
			zap.Int("compiled", sum.Compiled),
			zap.Int("failed", sum.Failed),
			zap.Int("rules", sum.Rules),
			zap.Int("warnings", sum.Warnings),
		}
		for _, k := range compiler.ConstructValues() {
			if n := sum.Constructs[k]; n > 0 {
				fields = append(fields, zap.Int(k.String(), n))
			}
		}
		log.Info("Check summary", fields...)
	}
	return err
}

func check(ctx context.Context, src string, env *state.LocalEnv, log *zap.Logger) (*Summary, error) {
	root, files, err := inputs(ctx, src, "", env.Cfg.Compiler.Extensions, log)
	if err != nil {
		return nil, err
	}
	c, err := env.NewCompiler(root)
	if err != nil {
		return nil, err
	}
	modules := compileAll(ctx, c, root, files, env, log)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sum := &Summary{Modules: len(modules), Constructs: make(map[compiler.Construct]int)}
	for _, m := range modules {
		if m.res == nil {
			continue
		}
		sum.Compiled++
		sum.Rules += len(m.res.Rules)
		sum.Warnings += len(m.res.Warnings)
		for k, n := range m.res.Constructs {
			sum.Constructs[k] += n
		}
	}
	failed, errs := failures(modules)
	sum.Failed = failed
	if failed > 0 {
		return sum, fmt.Errorf("%d of %d modules have errors: %w", failed, len(modules), errs)
	}
	return sum, nil
}
