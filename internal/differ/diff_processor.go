package differ

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LinePart is one run of a line-level edit script. Value holds whole lines,
// each terminated by a newline except possibly the last line of the text.
type LinePart struct {
	Value   string
	Added   bool
	Removed bool
}

// DiffProcessor computes line-level edit scripts. It is safe for concurrent
// use.
type DiffProcessor struct {
	dmp  *diffmatchpatch.DiffMatchPatch
	opts LineOptions
}

// NewDiffProcessor creates a new diff processor
func NewDiffProcessor(opts LineOptions) *DiffProcessor {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = opts.Timeout
	return &DiffProcessor{dmp: dmp, opts: opts}
}

// DiffLines returns the edit script turning oldText into newText. Dropping
// the Added parts reproduces oldText; dropping the Removed parts reproduces
// newText. Within a change, removed parts come before added ones.
func (dp *DiffProcessor) DiffLines(oldText, newText string) []LinePart {
	runes1, runes2, lineArray := dp.dmp.DiffLinesToRunes(oldText, newText)
	diffs := dp.dmp.DiffMainRunes(runes1, runes2, false)

	if dp.opts.SemanticCleanup {
		diffs = dp.dmp.DiffCleanupSemantic(diffs)
	}

	diffs = dp.dmp.DiffCharsToLines(diffs, lineArray)

	parts := make([]LinePart, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		parts = append(parts, LinePart{
			Value:   d.Text,
			Added:   d.Type == diffmatchpatch.DiffInsert,
			Removed: d.Type == diffmatchpatch.DiffDelete,
		})
	}
	return parts
}

// OldText reassembles the old side of an edit script.
func OldText(parts []LinePart) string {
	var b strings.Builder
	for _, p := range parts {
		if !p.Added {
			b.WriteString(p.Value)
		}
	}
	return b.String()
}

// NewText reassembles the new side of an edit script.
func NewText(parts []LinePart) string {
	var b strings.Builder
	for _, p := range parts {
		if !p.Removed {
			b.WriteString(p.Value)
		}
	}
	return b.String()
}
