package reporter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aleister1102/respdiff/internal/models"
)

// InlineRenderer prints one row per line with old and new line number
// gutters and a change marker.
type InlineRenderer struct {
	opts    Options
	palette palette
}

// NewInlineRenderer creates an inline renderer
func NewInlineRenderer(opts Options) *InlineRenderer {
	opts = opts.withDefaults()
	return &InlineRenderer{opts: opts, palette: newPalette(opts.NoColor)}
}

// Render writes the summary line followed by the visible lines.
func (r *InlineRenderer) Render(w io.Writer, cmp *models.JSONComparison) error {
	bw := bufio.NewWriter(w)

	if cmp.TooLarge {
		fmt.Fprintln(bw, r.palette.header.Sprint(cmp.ErrorMessage))
		return bw.Flush()
	}

	result := cmp.Result
	fmt.Fprintln(bw, r.palette.header.Sprintf("--- %s", r.opts.LeftLabel))
	fmt.Fprintln(bw, r.palette.header.Sprintf("+++ %s", r.opts.RightLabel))
	fmt.Fprintln(bw, CreateDiffSummary(result))

	numW := numberWidth(result.Lines)
	for i, s := range visibleSpans(result.Lines, r.opts.OnlyChanges, r.opts.ContextLines) {
		if r.opts.OnlyChanges && (i > 0 || s.start > 0) {
			fmt.Fprintln(bw, r.palette.faint.Sprint(gapMarker))
		}
		for _, l := range result.Lines[s.start:s.end] {
			r.writeLine(bw, l, numW)
		}
	}

	return bw.Flush()
}

func (r *InlineRenderer) writeLine(w io.Writer, l models.DiffLine, numW int) {
	gutter := fmt.Sprintf("%*s %*s", numW, lineNumber(l.OldLineNumber), numW, lineNumber(l.NewLineNumber))

	var b strings.Builder
	b.WriteString(r.palette.faint.Sprint(gutter))
	b.WriteString(" ")
	b.WriteString(r.palette.paint(l.Kind, marker(l.Kind)+" "+l.Content))
	if label := moveLabel(l); label != "" {
		b.WriteString(" ")
		b.WriteString(r.palette.faint.Sprint(label))
	}
	fmt.Fprintln(w, b.String())
}
