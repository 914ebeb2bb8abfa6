package reporter

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/aleister1102/respdiff/internal/models"
)

//go:embed templates/*
var templateFS embed.FS

// HTMLRenderer writes a self-contained HTML page for a comparison.
type HTMLRenderer struct {
	opts     Options
	template *template.Template
}

// htmlPageData is the template input
type htmlPageData struct {
	Title          string
	GeneratedAt    time.Time
	LeftLabel      string
	RightLabel     string
	Summary        string
	ExclusionPaths []string
	IgnoreOrder    bool
	TooLarge       bool
	ErrorMessage   string
	Segments       [][]models.DiffLine
	Gap            bool
}

// NewHTMLRenderer parses the embedded template
func NewHTMLRenderer(opts Options) (*HTMLRenderer, error) {
	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templateFS, "templates/diff_report.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML diff template: %w", err)
	}
	return &HTMLRenderer{opts: opts.withDefaults(), template: tmpl}, nil
}

// Render executes the template for cmp.
func (r *HTMLRenderer) Render(w io.Writer, cmp *models.JSONComparison) error {
	data := htmlPageData{
		Title:          DefaultReportTitle,
		GeneratedAt:    time.UnixMilli(cmp.Timestamp),
		LeftLabel:      r.opts.LeftLabel,
		RightLabel:     r.opts.RightLabel,
		Summary:        CreateDiffSummary(cmp.Result),
		ExclusionPaths: cmp.ExclusionPaths,
		IgnoreOrder:    cmp.IgnoreOrder,
		TooLarge:       cmp.TooLarge,
		ErrorMessage:   cmp.ErrorMessage,
		Gap:            r.opts.OnlyChanges,
	}
	for _, s := range visibleSpans(cmp.Result.Lines, r.opts.OnlyChanges, r.opts.ContextLines) {
		data.Segments = append(data.Segments, cmp.Result.Lines[s.start:s.end])
	}

	if err := r.template.ExecuteTemplate(w, "diff_report.html.tmpl", data); err != nil {
		return fmt.Errorf("failed to execute HTML diff template: %w", err)
	}
	return nil
}
