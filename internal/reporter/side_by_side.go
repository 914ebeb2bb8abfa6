package reporter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aleister1102/respdiff/internal/models"
)

// SideBySideRenderer prints the old document on the left and the new one
// on the right. Within a block of changes, old-side and new-side lines are
// paired row by row.
type SideBySideRenderer struct {
	opts    Options
	palette palette
}

// NewSideBySideRenderer creates a side-by-side renderer
func NewSideBySideRenderer(opts Options) *SideBySideRenderer {
	opts = opts.withDefaults()
	return &SideBySideRenderer{opts: opts, palette: newPalette(opts.NoColor)}
}

// cell is one half of a side-by-side row; a nil line is an empty cell
type cell struct {
	line   *models.DiffLine
	number int
}

type sideRow struct {
	left, right cell
}

// Render writes the header and the aligned rows.
func (r *SideBySideRenderer) Render(w io.Writer, cmp *models.JSONComparison) error {
	bw := bufio.NewWriter(w)

	if cmp.TooLarge {
		fmt.Fprintln(bw, r.palette.header.Sprint(cmp.ErrorMessage))
		return bw.Flush()
	}

	lines := cmp.Result.Lines
	numW := numberWidth(lines)
	colW := (r.opts.Width - 3) / 2

	fmt.Fprintln(bw, CreateDiffSummary(cmp.Result))
	header := fitCell(r.opts.LeftLabel, colW) + " | " + r.opts.RightLabel
	fmt.Fprintln(bw, r.palette.header.Sprint(strings.TrimRight(header, " ")))

	for i, s := range visibleSpans(lines, r.opts.OnlyChanges, r.opts.ContextLines) {
		if r.opts.OnlyChanges && (i > 0 || s.start > 0) {
			fmt.Fprintln(bw, r.palette.faint.Sprint(gapMarker))
		}
		for _, row := range pairRows(lines[s.start:s.end]) {
			left := r.formatCell(row.left, numW, colW)
			right := r.formatCell(row.right, numW, colW)
			fmt.Fprintln(bw, strings.TrimRight(left+" | "+right, " "))
		}
	}

	return bw.Flush()
}

// pairRows aligns lines into rows. Unchanged lines fill both halves; a run
// of changed lines puts old-side lines on the left and new-side lines on
// the right in their original order.
func pairRows(lines []models.DiffLine) []sideRow {
	var rows []sideRow
	var olds, news []cell

	flush := func() {
		for i := 0; i < max(len(olds), len(news)); i++ {
			var row sideRow
			if i < len(olds) {
				row.left = olds[i]
			}
			if i < len(news) {
				row.right = news[i]
			}
			rows = append(rows, row)
		}
		olds, news = olds[:0], news[:0]
	}

	for i := range lines {
		l := &lines[i]
		switch {
		case l.Kind.IsOldSide():
			olds = append(olds, cell{line: l, number: l.OldLineNumber})
		case l.Kind.IsNewSide():
			news = append(news, cell{line: l, number: l.NewLineNumber})
		default:
			flush()
			rows = append(rows, sideRow{
				left:  cell{line: l, number: l.OldLineNumber},
				right: cell{line: l, number: l.NewLineNumber},
			})
		}
	}
	flush()
	return rows
}

func (r *SideBySideRenderer) formatCell(c cell, numW, colW int) string {
	if c.line == nil {
		return strings.Repeat(" ", colW)
	}
	text := fmt.Sprintf("%*s %s %s", numW, lineNumber(c.number), marker(c.line.Kind), c.line.Content)
	return r.palette.paint(c.line.Kind, fitCell(text, colW))
}

// fitCell pads or truncates s to exactly width runes. Truncated text ends
// with "~".
func fitCell(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "~"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
