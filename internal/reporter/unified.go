package reporter

import (
	"fmt"
	"io"

	"github.com/aleister1102/respdiff/internal/models"
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedRenderer prints a classic unified patch of the two normalized
// documents. Moves show up as a removal and an addition, as in any patch.
type UnifiedRenderer struct {
	opts Options
}

// NewUnifiedRenderer creates a unified patch renderer
func NewUnifiedRenderer(opts Options) *UnifiedRenderer {
	return &UnifiedRenderer{opts: opts.withDefaults()}
}

// Render writes nothing for identical documents.
func (r *UnifiedRenderer) Render(w io.Writer, cmp *models.JSONComparison) error {
	if cmp.TooLarge {
		_, err := fmt.Fprintln(w, cmp.ErrorMessage)
		return err
	}
	if cmp.OldText == cmp.NewText {
		return nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(cmp.OldText),
		B:        difflib.SplitLines(cmp.NewText),
		FromFile: r.opts.LeftLabel,
		ToFile:   r.opts.RightLabel,
		Context:  r.opts.ContextLines,
	}
	return difflib.WriteUnifiedDiff(w, diff)
}
