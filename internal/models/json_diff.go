package models

import (
	"fmt"
)

// LineKind classifies one line of a JSON comparison.
type LineKind int

const (
	// LineUnchanged is present in both documents at matching positions.
	LineUnchanged LineKind = iota
	// LineAdded only exists in the new document.
	LineAdded
	// LineRemoved only exists in the old document.
	LineRemoved
	// LineMovedFrom is an old line whose content reappears elsewhere in the new document.
	LineMovedFrom
	// LineMovedTo is the new position of relocated content.
	LineMovedTo
)

var lineKindNames = map[LineKind]string{
	LineUnchanged: "unchanged",
	LineAdded:     "added",
	LineRemoved:   "removed",
	LineMovedFrom: "moved-from",
	LineMovedTo:   "moved-to",
}

// String returns the wire name of the kind.
func (k LineKind) String() string {
	if name, ok := lineKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("LineKind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k LineKind) MarshalText() ([]byte, error) {
	name, ok := lineKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown line kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a kind from its name.
func (k *LineKind) UnmarshalText(text []byte) error {
	for kind, name := range lineKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown line kind %q", string(text))
}

// IsOldSide reports whether lines of this kind come from the old document only.
func (k LineKind) IsOldSide() bool {
	return k == LineRemoved || k == LineMovedFrom
}

// IsNewSide reports whether lines of this kind come from the new document only.
func (k LineKind) IsNewSide() bool {
	return k == LineAdded || k == LineMovedTo
}

// DiffLine is one rendered row of a comparison. Line numbers are 1-based and
// zero when the line does not exist on that side. An unchanged line whose two
// sides differ only by a trailing comma carries the new document's text, so
// its Content may not match the old document at OldLineNumber.
type DiffLine struct {
	Content       string   `json:"content"`
	Kind          LineKind `json:"kind"`
	OldLineNumber int      `json:"old_line_number,omitempty"`
	NewLineNumber int      `json:"new_line_number,omitempty"`
	MoveGroup     *int     `json:"move_group,omitempty"`
}

// Group returns the move group linking a moved-from line to its moved-to
// counterpart.
func (l DiffLine) Group() (int, bool) {
	if l.MoveGroup == nil {
		return 0, false
	}
	return *l.MoveGroup, true
}

// DiffResult is the ordered line sequence of a comparison plus its totals.
type DiffResult struct {
	Lines        []DiffLine `json:"lines"`
	AddedCount   int        `json:"added_count"`
	RemovedCount int        `json:"removed_count"`
}

// HasChanges reports whether any line was added, removed or moved.
func (r DiffResult) HasChanges() bool {
	return r.AddedCount > 0 || r.RemovedCount > 0
}

// CountKind returns how many lines have kind k.
func (r DiffResult) CountKind(k LineKind) int {
	n := 0
	for _, l := range r.Lines {
		if l.Kind == k {
			n++
		}
	}
	return n
}

// JSONComparison holds a DiffResult together with the texts it was computed
// from and bookkeeping about the run.
type JSONComparison struct {
	Timestamp        int64      `json:"timestamp"`
	Result           DiffResult `json:"result"`
	OldText          string     `json:"-"`
	NewText          string     `json:"-"`
	ExclusionPaths   []string   `json:"exclusion_paths,omitempty"`
	IgnoreOrder      bool       `json:"ignore_order"`
	IsIdentical      bool       `json:"is_identical"`
	TooLarge         bool       `json:"too_large,omitempty"`
	ErrorMessage     string     `json:"error_message,omitempty"`
	ProcessingTimeMs int64      `json:"processing_time_ms"`
}
