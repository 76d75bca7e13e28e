package config

// CSSMode selects how emitted CSS is laid out on disk.
// ENUM(module, bundle)
type CSSMode int

// Single reports whether all rules go to one stylesheet.
func (m CSSMode) Single() bool {
	return m == CSSModeBundle
}
