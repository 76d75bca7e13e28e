package compiler

import (
	"fmt"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2/js"

	"vindur/color"
	"vindur/diag"
	"vindur/source"
)

// maxColorDepth limits property chains after the color itself.
const maxColorDepth = 2

// colorRef is a color of static theme or a dynamic color.
type colorRef struct {
	// name and value of static theme color
	name  string
	value color.Color
	// id of dynamic color, empty for theme colors
	id string
}

// colorHandle resolves member chain root to a color. Chain props following
// the color are returned.
func (u *unit) colorHandle(root *js.Var, props []string) (colorRef, []string, bool, error) {
	name := string(root.Name())
	var (
		pal  *color.Palette
		id   string
		rest = props
	)
	if p, ok := u.themes[name]; ok {
		pal = p
	} else if d, ok := u.dynColors[name]; ok {
		id = d
	} else if b, ok := u.imported(name); ok {
		exp := b.imported
		if exp == "*" {
			if len(rest) == 0 {
				return colorRef{}, nil, false, nil
			}
			exp, rest = rest[0], rest[1:]
		}
		rec, err := u.load(b, root)
		if err != nil {
			return colorRef{}, nil, false, err
		}
		if p, ok := rec.Themes[exp]; ok {
			pal = p
		} else if d, ok := rec.DynamicColors[exp]; ok {
			id = d
		} else {
			return colorRef{}, nil, false, nil
		}
	} else {
		return colorRef{}, nil, false, nil
	}

	if pal == nil {
		return colorRef{id: id}, rest, true, nil
	}
	if len(rest) == 0 {
		return colorRef{}, nil, false, u.fail(diag.KindStructural, root, "theme colors %q must be accessed through a color name", name)
	}
	c, ok := pal.Get(rest[0])
	if !ok {
		return colorRef{}, nil, false, u.fail(diag.KindUnresolved, root, "theme colors %q have no color %q", name, rest[0])
	}
	return colorRef{name: rest[0], value: c}, rest[1:], true, nil
}

func (u *unit) colorProperty(at js.INode, c colorRef, path []string) (resolution, error) {
	if len(path) > maxColorDepth {
		return nil, u.fail(diag.KindStructural, at, "color property chain %q is too deep", strings.Join(path, "."))
	}
	key := strings.Join(path, ".")
	if c.id != "" {
		if sel, ok := dynamicSelectors[key]; ok {
			return symbol(fmt.Sprintf(sel, c.id)), nil
		}
		switch key {
		case "", "var":
			return symbol("var(--" + c.id + ")"), nil
		case "contrast", "contrast.var":
			return symbol("var(--" + c.id + "-c)"), nil
		}
		return nil, u.fail(diag.KindUnresolved, at, "unknown dynamic color property %q", key)
	}
	switch key {
	case "", "var":
		return symbol(fmt.Sprintf("var(--stc-%s-var, %s)", c.name, c.value.Hex())), nil
	case "defaultHex":
		return literal(c.value.Hex()), nil
	case "contrast", "contrast.var":
		return symbol(fmt.Sprintf("var(--stc-%s-contrast-var, %s)", c.name, c.value.Contrast().Hex())), nil
	case "contrast.defaultHex":
		return literal(c.value.Contrast().Hex()), nil
	}
	return nil, u.fail(diag.KindUnresolved, at, "unknown theme color property %q", key)
}

// dynamicSelectors are selectors matching state of dynamic color set on the
// element itself or on its container.
var dynamicSelectors = map[string]string{
	"self.isDark":            "&.%s-s-dark",
	"self.isLight":           "&.%s-s-light",
	"self.isDefined":         "&.%s-s-def",
	"self.isNotDefined":      "&:not(.%s-s-def)",
	"container.isDark":       ".%s-c-dark &",
	"container.isLight":      ".%s-c-light &",
	"container.isDefined":    ".%s-c-def &",
	"container.isNotDefined": ":not(.%s-c-def) &",
}

func (u *unit) colorCall(n *js.CallExpr, c colorRef, path []string) (resolution, error) {
	if len(path) == 0 || len(path) > maxColorDepth {
		return nil, u.fail(diag.KindStructural, n, "color method %q is not supported", strings.Join(path, "."))
	}
	method := strings.Join(path, ".")
	if c.id != "" {
		return u.dynamicColorCall(n, c.id, method)
	}

	var (
		res color.Color
		err error
	)
	switch method {
	case "alpha", "darker", "lighter", "contrast.alpha":
		var x float64
		if x, err = u.number(n, method); err != nil {
			return nil, err
		}
		switch method {
		case "alpha":
			res, err = c.value.Alpha(x)
		case "darker":
			res, err = c.value.Darker(x)
		case "lighter":
			res, err = c.value.Lighter(x)
		default:
			res, err = c.value.Contrast().Alpha(x)
		}
	case "contrast.optimal":
		var opts color.OptimalOptions
		if opts, err = u.optimalOptions(n); err != nil {
			return nil, err
		}
		res, err = c.value.Optimal(opts)
	default:
		return nil, u.fail(diag.KindUnresolved, n, "unknown color method %q", method)
	}
	if err != nil {
		return nil, diag.At(err, u.Locate(n))
	}
	return literal(res.Hex()), nil
}

func (u *unit) dynamicColorCall(n *js.CallExpr, id, method string) (resolution, error) {
	switch method {
	case "alpha", "darker", "lighter", "contrast.alpha":
		x, err := u.number(n, method)
		if err != nil {
			return nil, err
		}
		if err := color.CheckFraction(method, x); err != nil {
			return nil, diag.At(err, u.Locate(n))
		}
		switch method {
		case "alpha":
			return symbol(fmt.Sprintf("color-mix(in srgb, var(--%s) %s, transparent)", id, percent(x))), nil
		case "darker":
			return symbol(fmt.Sprintf("color-mix(in srgb, var(--%s), black %s)", id, percent(x))), nil
		case "lighter":
			return symbol(fmt.Sprintf("color-mix(in srgb, var(--%s), white %s)", id, percent(x))), nil
		}
		return symbol(fmt.Sprintf("color-mix(in srgb, var(--%s-c) %s, transparent)", id, percent(x))), nil
	case "contrast.optimal":
		opts, err := u.optimalOptions(n)
		if err != nil {
			return nil, err
		}
		if opts.HasSaturation {
			return nil, u.fail(diag.KindArgument, n, "saturation is not supported by dynamic colors")
		}
		if opts.HasAlpha {
			if err := color.CheckFraction("alpha", opts.Alpha); err != nil {
				return nil, diag.At(err, u.Locate(n))
			}
			return symbol(fmt.Sprintf("color-mix(in srgb, var(--%s-c) %s, transparent)", id, percent(opts.Alpha))), nil
		}
		return symbol("var(--" + id + "-c)"), nil
	}
	return nil, u.fail(diag.KindUnresolved, n, "unknown dynamic color method %q", method)
}

func percent(x float64) string {
	return source.FormatNumber(math.Round(x*10000)/100) + "%"
}

// number returns single numeric argument of color method.
func (u *unit) number(n *js.CallExpr, method string) (float64, error) {
	if len(n.Args.List) != 1 {
		return 0, u.fail(diag.KindArgument, n, "%s expects a single numeric argument, got %d", method, len(n.Args.List))
	}
	v, err := u.static(n.Args.List[0].Value)
	if err != nil {
		return 0, err
	}
	x, ok := v.(float64)
	if !ok {
		return 0, u.fail(diag.KindArgument, n, "%s expects a numeric argument", method)
	}
	return x, nil
}

func (u *unit) optimalOptions(n *js.CallExpr) (color.OptimalOptions, error) {
	var opts color.OptimalOptions
	switch len(n.Args.List) {
	case 0:
		return opts, nil
	case 1:
	default:
		return opts, u.fail(diag.KindArgument, n, "optimal expects at most one options argument")
	}
	v, err := u.static(n.Args.List[0].Value)
	if err != nil {
		return opts, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return opts, u.fail(diag.KindArgument, n, "optimal options must be an object")
	}
	for key, val := range obj {
		x, ok := val.(float64)
		if !ok {
			return opts, u.fail(diag.KindArgument, n, "optimal option %q must be a number", key)
		}
		switch key {
		case "alpha":
			opts.Alpha, opts.HasAlpha = x, true
		case "saturation":
			opts.Saturation, opts.HasSaturation = x, true
		default:
			return opts, u.fail(diag.KindArgument, n, "unknown optimal option %q", key)
		}
	}
	return opts, nil
}
