// Package reporter renders comparison results for terminals, patches,
// machines and browsers.
package reporter

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/aleister1102/respdiff/internal/common"
	"github.com/aleister1102/respdiff/internal/config"
	"github.com/aleister1102/respdiff/internal/models"
)

// Renderer writes a comparison to w.
type Renderer interface {
	Render(w io.Writer, cmp *models.JSONComparison) error
}

// Options controls what renderers show.
type Options struct {
	NoColor      bool
	OnlyChanges  bool
	ContextLines int
	Width        int
	LeftLabel    string
	RightLabel   string
}

// OptionsFromConfig maps the reporter section of the application config.
func OptionsFromConfig(cfg config.ReportConfig) Options {
	return Options{
		NoColor:      cfg.NoColor,
		OnlyChanges:  cfg.OnlyChanges,
		ContextLines: cfg.ContextLines,
		Width:        cfg.Width,
	}
}

func (o Options) withDefaults() Options {
	if o.ContextLines < 0 {
		o.ContextLines = 0
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	} else if o.Width < MinWidth {
		o.Width = MinWidth
	}
	if o.LeftLabel == "" {
		o.LeftLabel = DefaultLeftLabel
	}
	if o.RightLabel == "" {
		o.RightLabel = DefaultRightLabel
	}
	return o
}

// Formats lists the names NewRenderer accepts.
func Formats() []string {
	return []string{FormatInline, FormatSideBySide, FormatUnified, FormatJSON, FormatHTML}
}

// NewRenderer returns the renderer for format. Format names are case
// insensitive; an empty name selects inline.
func NewRenderer(format string, opts Options) (Renderer, error) {
	opts = opts.withDefaults()

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatInline:
		return NewInlineRenderer(opts), nil
	case FormatSideBySide:
		return NewSideBySideRenderer(opts), nil
	case FormatUnified:
		return NewUnifiedRenderer(opts), nil
	case FormatJSON:
		return NewJSONRenderer(), nil
	case FormatHTML:
		return NewHTMLRenderer(opts)
	default:
		return nil, common.NewValidationError("format", format,
			fmt.Sprintf("unsupported output format; expected one of %s", strings.Join(Formats(), ", ")))
	}
}

// IsSupportedFormat reports whether NewRenderer accepts format.
func IsSupportedFormat(format string) bool {
	f := strings.ToLower(strings.TrimSpace(format))
	return f == "" || slices.Contains(Formats(), f)
}

func marker(kind models.LineKind) string {
	switch kind {
	case models.LineAdded:
		return markerAdded
	case models.LineRemoved:
		return markerRemoved
	case models.LineMovedFrom:
		return markerMovedFrom
	case models.LineMovedTo:
		return markerMovedTo
	default:
		return markerUnchanged
	}
}
