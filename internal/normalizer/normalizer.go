// Package normalizer prepares JSON documents for comparison: it strips
// excluded paths and, when ordering should not count, canonicalizes key and
// element order.
package normalizer

import (
	"strings"

	"github.com/aleister1102/respdiff/internal/jsonvalue"
)

// Options selects the normalization steps.
type Options struct {
	ExclusionPaths []string
	IgnoreOrder    bool
}

// Normalizer applies a fixed set of options to any number of documents. It
// holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	paths       [][]Segment
	ignoreOrder bool
}

// New compiles opts into a Normalizer. Blank paths are skipped.
func New(opts Options) *Normalizer {
	n := &Normalizer{ignoreOrder: opts.IgnoreOrder}
	for _, p := range opts.ExclusionPaths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		n.paths = append(n.paths, ParsePath(p))
	}
	return n
}

// Normalize redacts v and then canonicalizes it if ordering is ignored.
func (n *Normalizer) Normalize(v jsonvalue.Value) jsonvalue.Value {
	out := RedactCompiled(v, n.paths)
	if n.ignoreOrder {
		out = Canonicalize(out)
	}
	return out
}

// PathCount returns the number of compiled exclusion paths.
func (n *Normalizer) PathCount() int {
	return len(n.paths)
}
