package quasi

import (
	"vindur/diag"
)

// Bind builds argument binding for call with given argument values.
// Destructured functions take a single object argument (map[string]any).
// Parameters which are not supplied take their default values, or stay
// unbound.
func (f *Function) Bind(args []any) (map[string]any, error) {
	binding := make(map[string]any, len(f.Params))
	switch f.Signature {
	case SignatureDestructured:
		if len(args) > 1 {
			return nil, diag.Errorf(diag.KindArgument, "style function %q expects a single object argument, got %d arguments", f.Name, len(args))
		}
		var obj map[string]any
		if len(args) == 1 {
			var ok bool
			if obj, ok = args[0].(map[string]any); !ok {
				return nil, diag.Errorf(diag.KindArgument, "style function %q expects an object argument", f.Name)
			}
		}
		for key := range obj {
			if _, ok := f.param(key); !ok {
				return nil, diag.Errorf(diag.KindArgument, "style function %q has no parameter %q", f.Name, key)
			}
		}
		for _, p := range f.Params {
			if v, ok := obj[p.Name]; ok && v != nil {
				binding[p.Name] = v
			} else if p.HasDefault {
				binding[p.Name] = p.Default
			}
		}
	default:
		if len(args) > len(f.Params) {
			return nil, diag.Errorf(diag.KindArgument, "style function %q expects at most %d arguments, got %d", f.Name, len(f.Params), len(args))
		}
		for i, p := range f.Params {
			if i < len(args) && args[i] != nil {
				binding[p.Name] = args[i]
			} else if p.HasDefault {
				binding[p.Name] = p.Default
			}
		}
	}
	return binding, nil
}

// Call binds arguments and evaluates function output.
func (f *Function) Call(args ...any) (string, error) {
	binding, err := f.Bind(args)
	if err != nil {
		return "", err
	}
	return Evaluate(f.Output, binding)
}
