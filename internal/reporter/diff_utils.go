package reporter

import (
	"fmt"
	"strconv"

	"github.com/aleister1102/respdiff/internal/models"
)

// CreateDiffSummary creates a one line summary of a result
func CreateDiffSummary(result models.DiffResult) string {
	if !result.HasChanges() {
		return "No differences."
	}
	summary := fmt.Sprintf("%d added (+), %d removed (-)", result.AddedCount, result.RemovedCount)
	if moved := result.CountKind(models.LineMovedTo); moved > 0 {
		summary += fmt.Sprintf(", %d moved", moved)
	}
	return summary + "."
}

// span is a half-open range of line indices
type span struct {
	start, end int
}

// visibleSpans returns the ranges of lines to print. Without onlyChanges
// that is every line; otherwise each changed line plus context unchanged
// lines around it, with overlapping ranges merged.
func visibleSpans(lines []models.DiffLine, onlyChanges bool, context int) []span {
	if len(lines) == 0 {
		return nil
	}
	if !onlyChanges {
		return []span{{0, len(lines)}}
	}

	var spans []span
	for i, l := range lines {
		if l.Kind == models.LineUnchanged {
			continue
		}
		start := max(0, i-context)
		end := min(len(lines), i+context+1)
		if n := len(spans); n > 0 && start <= spans[n-1].end {
			spans[n-1].end = max(spans[n-1].end, end)
			continue
		}
		spans = append(spans, span{start, end})
	}
	return spans
}

// lineNumber formats n, leaving absent line numbers blank
func lineNumber(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// numberWidth returns the digits needed for the largest line number
func numberWidth(lines []models.DiffLine) int {
	maxN := 0
	for _, l := range lines {
		maxN = max(maxN, l.OldLineNumber, l.NewLineNumber)
	}
	return len(strconv.Itoa(maxN))
}

// moveLabel names a move group for display; groups count from 1 on screen
func moveLabel(l models.DiffLine) string {
	g, ok := l.Group()
	if !ok {
		return ""
	}
	return fmt.Sprintf("#%d", g+1)
}
