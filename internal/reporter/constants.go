package reporter

const (
	// Output formats accepted by NewRenderer
	FormatInline     = "inline"
	FormatSideBySide = "side-by-side"
	FormatUnified    = "unified"
	FormatJSON       = "json"
	FormatHTML       = "html"

	// DefaultWidth is the side-by-side width when none is configured
	DefaultWidth = 120
	// MinWidth is the narrowest side-by-side layout that still shows content
	MinWidth = 40

	// Labels used when the caller does not name the documents
	DefaultLeftLabel  = "left"
	DefaultRightLabel = "right"

	DefaultReportTitle = "JSON Diff Report"

	// gapMarker separates hunks when unchanged lines are hidden
	gapMarker = "..."
)

// Line markers, one per models.LineKind
const (
	markerUnchanged = " "
	markerAdded     = "+"
	markerRemoved   = "-"
	markerMovedFrom = "<"
	markerMovedTo   = ">"
)
