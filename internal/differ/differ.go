// Package differ compares JSON documents line by line. Both documents are
// normalized, pretty-printed with two-space indentation and diffed; deleted
// and inserted lines with the same content are reported as moves.
package differ

import (
	"github.com/aleister1102/respdiff/internal/jsonvalue"
	"github.com/aleister1102/respdiff/internal/models"
	"github.com/aleister1102/respdiff/internal/normalizer"
)

// Options controls a single comparison.
type Options struct {
	ExclusionPaths []string
	IgnoreOrder    bool
}

// Assembler runs the full comparison pipeline. It holds no per-call state
// and is safe for concurrent use.
type Assembler struct {
	processor *DiffProcessor
	detector  *MoveDetector
	stats     *DiffStatsCalculator
}

// NewAssembler creates an assembler using the given line differ settings.
func NewAssembler(opts LineOptions) *Assembler {
	return &Assembler{
		processor: NewDiffProcessor(opts),
		detector:  NewMoveDetector(),
		stats:     NewDiffStatsCalculator(),
	}
}

var defaultAssembler = NewAssembler(LineOptions{})

// ComputeDiff compares left and right after removing opts.ExclusionPaths
// from both and, if opts.IgnoreOrder is set, canonicalizing them. The inputs
// are not modified. It never fails.
func ComputeDiff(left, right jsonvalue.Value, opts Options) models.DiffResult {
	return defaultAssembler.Assemble(left, right, opts)
}

// RedactValue returns v without the values at paths.
func RedactValue(v jsonvalue.Value, paths []string) jsonvalue.Value {
	return normalizer.Redact(v, paths)
}

// CanonicalizeValue returns v with object keys and array elements sorted.
func CanonicalizeValue(v jsonvalue.Value) jsonvalue.Value {
	return normalizer.Canonicalize(v)
}

// Assemble compares left and right.
func (a *Assembler) Assemble(left, right jsonvalue.Value, opts Options) models.DiffResult {
	oldText, newText := a.Texts(left, right, opts)
	return a.AssembleTexts(oldText, newText)
}

// Texts returns the normalized, pretty-printed documents that Assemble
// compares.
func (a *Assembler) Texts(left, right jsonvalue.Value, opts Options) (string, string) {
	n := normalizer.New(normalizer.Options{
		ExclusionPaths: opts.ExclusionPaths,
		IgnoreOrder:    opts.IgnoreOrder,
	})
	return jsonvalue.Pretty(n.Normalize(left)), jsonvalue.Pretty(n.Normalize(right))
}

// AssembleTexts diffs two already rendered texts.
func (a *Assembler) AssembleTexts(oldText, newText string) models.DiffResult {
	lines := a.detector.Detect(a.processor.DiffLines(oldText, newText))
	stats := a.stats.CalculateStats(lines)
	return models.DiffResult{
		Lines:        lines,
		AddedCount:   stats.LinesAdded + stats.LinesMovedTo,
		RemovedCount: stats.LinesRemoved + stats.LinesMovedFrom,
	}
}
