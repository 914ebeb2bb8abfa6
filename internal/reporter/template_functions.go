package reporter

import (
	"html/template"
	"strings"
	"time"

	"github.com/aleister1102/respdiff/internal/models"
)

const reportTimeLayout = "2006-01-02 15:04:05 MST"

// templateFuncs are the helpers diff_report.html.tmpl relies on.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"lineNumber": lineNumber,
		"marker":     marker,
		"moveLabel":  moveLabel,
		"kindClass":  func(k models.LineKind) string { return "line-" + k.String() },
		"join":       strings.Join,
		"timestamp": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format(reportTimeLayout)
		},
	}
}
