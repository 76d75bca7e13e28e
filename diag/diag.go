// Package diag defines diagnostics produced while compiling style modules.
package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Position points into a source file. Line and Column are 1-based, zero
// means unknown.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	var b strings.Builder
	b.WriteString(p.File)
	if p.Line > 0 {
		fmt.Fprintf(&b, ":%d", p.Line)
		if p.Column > 0 {
			fmt.Fprintf(&b, ":%d", p.Column)
		}
	}
	return b.String()
}

// Error is a fatal diagnostic, it aborts compilation of the current module.
type Error struct {
	Kind    Kind
	Message string
	Position

	// Cause is optional sentinel classifying the failure further.
	Cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	if pos := e.Position.String(); pos != "" {
		b.WriteString(pos)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	b.WriteString(" error: ")
	b.WriteString(e.Message)
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Errorf creates error of the requested kind without position, see At.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At returns error with position filled in unless error already carries one.
// Errors of other types are wrapped as unresolved references.
func At(err error, pos Position) error {
	if err == nil {
		return nil
	}
	var de *Error
	if !errors.As(err, &de) {
		return &Error{Kind: KindUnresolved, Message: err.Error(), Position: pos}
	}
	if de.Line > 0 || de.File != "" {
		return err
	}
	cp := *de
	cp.Position = pos
	return &cp
}

// IsKind reports whether err is a diagnostic of the given kind.
func IsKind(err error, kind Kind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

// Warning is a non fatal diagnostic, it never alters compiled output.
type Warning struct {
	Message string
	Position
}

func (w Warning) String() string {
	if pos := w.Position.String(); pos != "" {
		return pos + ": " + w.Message
	}
	return w.Message
}

// WarningHandler receives warnings as they are produced.
type WarningHandler func(Warning)
