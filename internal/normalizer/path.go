package normalizer

import (
	"math"
	"strconv"
	"strings"
)

// SubscriptKind tells how a path segment addresses array elements.
type SubscriptKind int

const (
	// SubscriptNone is a plain object key such as "id".
	SubscriptNone SubscriptKind = iota
	// SubscriptIndex addresses one element, as in "items[3]".
	SubscriptIndex
	// SubscriptWildcard addresses every element, as in "items[*]".
	SubscriptWildcard
)

// Segment is one dot-separated part of an exclusion path.
type Segment struct {
	Name      string
	Subscript SubscriptKind
	Index     int
}

// String renders the segment back to its path syntax.
func (s Segment) String() string {
	switch s.Subscript {
	case SubscriptIndex:
		return s.Name + "[" + strconv.Itoa(s.Index) + "]"
	case SubscriptWildcard:
		return s.Name + "[*]"
	default:
		return s.Name
	}
}

// ParseSegment splits a segment into its key name and optional subscript.
// Anything that is not a well formed "[N]" or "[*]" suffix is part of the
// key name, so "a[x]" is the literal key "a[x]". When a segment carries more
// than one subscript only the last one counts: "grid[1][2]" is element 2 of
// the key "grid[1]".
func ParseSegment(raw string) Segment {
	if !strings.HasSuffix(raw, "]") {
		return Segment{Name: raw}
	}
	open := strings.LastIndexByte(raw, '[')
	if open < 0 {
		return Segment{Name: raw}
	}

	name, inner := raw[:open], raw[open+1:len(raw)-1]
	if inner == "*" {
		return Segment{Name: name, Subscript: SubscriptWildcard}
	}
	if inner == "" || strings.Trim(inner, "0123456789") != "" {
		return Segment{Name: raw}
	}

	idx, err := strconv.Atoi(inner)
	if err != nil {
		// Too large to address any real element.
		idx = math.MaxInt
	}
	return Segment{Name: name, Subscript: SubscriptIndex, Index: idx}
}

// ParsePath splits an exclusion path such as "items[*].meta.id" into
// segments.
func ParsePath(path string) []Segment {
	parts := strings.Split(path, ".")
	segments := make([]Segment, len(parts))
	for i, p := range parts {
		segments[i] = ParseSegment(p)
	}
	return segments
}

// FormatPath joins segments back into path syntax.
func FormatPath(segments []Segment) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}
