package differ

import "github.com/aleister1102/respdiff/internal/models"

// DiffStatistics holds per-kind line counts of a comparison
type DiffStatistics struct {
	LinesUnchanged int
	LinesAdded     int
	LinesRemoved   int
	LinesMovedFrom int
	LinesMovedTo   int
	MoveGroups     int
	IsIdentical    bool
}

// DiffStatsCalculator calculates statistics from annotated lines
type DiffStatsCalculator struct{}

// NewDiffStatsCalculator creates a new diff stats calculator
func NewDiffStatsCalculator() *DiffStatsCalculator {
	return &DiffStatsCalculator{}
}

// CalculateStats tallies lines by kind.
func (dsc *DiffStatsCalculator) CalculateStats(lines []models.DiffLine) DiffStatistics {
	stats := DiffStatistics{}
	groups := make(map[int]struct{})

	for _, l := range lines {
		switch l.Kind {
		case models.LineUnchanged:
			stats.LinesUnchanged++
		case models.LineAdded:
			stats.LinesAdded++
		case models.LineRemoved:
			stats.LinesRemoved++
		case models.LineMovedFrom:
			stats.LinesMovedFrom++
		case models.LineMovedTo:
			stats.LinesMovedTo++
		}
		if g, ok := l.Group(); ok {
			groups[g] = struct{}{}
		}
	}

	stats.MoveGroups = len(groups)
	stats.IsIdentical = stats.LinesUnchanged == len(lines)
	return stats
}
