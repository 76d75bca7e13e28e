package compiler

import (
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

const hashLength = 7

// FileHash returns class name prefix for module. It depends only on module
// path relative to the project root so names survive content changes.
func FileHash(root, path string) string {
	rel := path
	if root != "" {
		if r, err := filepath.Rel(root, path); err == nil {
			rel = r
		}
	}
	h := strconv.FormatUint(xxhash.Sum64String(filepath.ToSlash(rel)), 36)
	if len(h) > hashLength {
		h = h[:hashLength]
	}
	return "v" + h
}

// Sequence hands out names to style bearing constructs of a single module in
// source order.
type Sequence struct {
	hash string
	dev  bool
	n    int
}

// NewSequence starts naming for module with hash prefix.
func NewSequence(hash string, dev bool) *Sequence {
	return &Sequence{hash: hash, dev: dev}
}

// Next returns name for the next construct. Readable suffix is added in
// development mode only.
func (s *Sequence) Next(name string) string {
	s.n++
	id := s.hash + "-" + strconv.Itoa(s.n)
	if s.dev && name != "" {
		id += "-" + name
	}
	return id
}

// Count returns number of names handed out.
func (s *Sequence) Count() int {
	return s.n
}

// Hash returns module prefix of generated names.
func (s *Sequence) Hash() string {
	return s.hash
}
