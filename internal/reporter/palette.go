package reporter

import (
	"github.com/aleister1102/respdiff/internal/models"
	"github.com/fatih/color"
)

// palette colors line content by kind
type palette struct {
	added     *color.Color
	removed   *color.Color
	movedFrom *color.Color
	movedTo   *color.Color
	faint     *color.Color
	header    *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		added:     color.New(color.FgGreen),
		removed:   color.New(color.FgRed),
		movedFrom: color.New(color.FgMagenta),
		movedTo:   color.New(color.FgCyan),
		faint:     color.New(color.Faint),
		header:    color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.added, p.removed, p.movedFrom, p.movedTo, p.faint, p.header} {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return p
}

// paint colors s for kind; unchanged lines stay plain
func (p palette) paint(kind models.LineKind, s string) string {
	switch kind {
	case models.LineAdded:
		return p.added.Sprint(s)
	case models.LineRemoved:
		return p.removed.Sprint(s)
	case models.LineMovedFrom:
		return p.movedFrom.Sprint(s)
	case models.LineMovedTo:
		return p.movedTo.Sprint(s)
	default:
		return s
	}
}
