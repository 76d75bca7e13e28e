package resolve

import (
	"errors"
	"strings"

	"vindur/diag"
)

// ErrCycle classifies circular cross module references.
var ErrCycle = errors.New("circular module reference")

// Chain is an immutable list of modules being resolved, outermost first.
// Nil chain is empty.
type Chain struct {
	path   string
	parent *Chain
}

// Push returns chain extended with path, receiver is not modified.
func (c *Chain) Push(path string) *Chain {
	return &Chain{path: path, parent: c}
}

func (c *Chain) Contains(path string) bool {
	for n := c; n != nil; n = n.parent {
		if n.path == path {
			return true
		}
	}
	return false
}

// Paths returns chain content, outermost module first.
func (c *Chain) Paths() []string {
	var out []string
	for n := c; n != nil; n = n.parent {
		out = append(out, n.path)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (c *Chain) String() string {
	return strings.Join(c.Paths(), " -> ")
}

func cycleError(chain *Chain, path string) error {
	return &diag.Error{
		Kind:     diag.KindStructural,
		Message:  "circular style reference " + chain.Push(path).String(),
		Position: diag.Position{File: path},
		Cause:    ErrCycle,
	}
}
