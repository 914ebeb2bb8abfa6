package differ

import (
	"strings"

	"github.com/aleister1102/respdiff/internal/models"
)

type lineOp int

const (
	opEqual lineOp = iota
	opDelete
	opInsert
)

type rawLine struct {
	text string
	op   lineOp
}

// MoveDetector turns a line edit script into annotated DiffLines, reporting
// deleted/inserted pairs with the same content as moves. It holds no state
// and is safe for concurrent use.
type MoveDetector struct{}

// NewMoveDetector creates a new move detector
func NewMoveDetector() *MoveDetector {
	return &MoveDetector{}
}

// Detect annotates parts. Lines are emitted in document order: a moved-from
// line stays where the old content was and a moved-to line where the new
// content is.
func (md *MoveDetector) Detect(parts []LinePart) []models.DiffLine {
	lines := reconcileHunks(flattenParts(parts))
	kinds, groups := pairMoves(lines)
	return emitLines(lines, kinds, groups)
}

// flattenParts splits every part into single lines. The empty fragment after
// a part's final newline is not a line.
func flattenParts(parts []LinePart) []rawLine {
	var lines []rawLine
	for _, p := range parts {
		op := opEqual
		switch {
		case p.Removed:
			op = opDelete
		case p.Added:
			op = opInsert
		}

		texts := strings.Split(p.Value, "\n")
		if texts[len(texts)-1] == "" {
			texts = texts[:len(texts)-1]
		}
		for _, t := range texts {
			lines = append(lines, rawLine{text: t, op: op})
		}
	}
	return lines
}

// reconcileHunks collapses delete/insert pairs at the edges of each change
// hunk that differ only by a trailing comma. Appending a member to an object
// adds a comma to the line before it; that line did not change.
func reconcileHunks(lines []rawLine) []rawLine {
	out := make([]rawLine, 0, len(lines))
	for i := 0; i < len(lines); {
		if lines[i].op == opEqual {
			out = append(out, lines[i])
			i++
			continue
		}

		end := i
		for end < len(lines) && lines[end].op != opEqual {
			end++
		}
		out = append(out, reconcileHunk(lines[i:end])...)
		i = end
	}
	return out
}

func reconcileHunk(hunk []rawLine) []rawLine {
	var removed, added []int
	for i, l := range hunk {
		if l.op == opDelete {
			removed = append(removed, i)
		} else {
			added = append(added, i)
		}
	}

	prefix := 0
	for prefix < len(removed) && prefix < len(added) &&
		sameIgnoringSeparator(hunk[removed[prefix]].text, hunk[added[prefix]].text) {
		prefix++
	}

	suffix := 0
	for suffix < len(removed)-prefix && suffix < len(added)-prefix &&
		sameIgnoringSeparator(hunk[removed[len(removed)-1-suffix]].text, hunk[added[len(added)-1-suffix]].text) {
		suffix++
	}

	if prefix == 0 && suffix == 0 {
		return hunk
	}

	consumed := make(map[int]bool, 2*(prefix+suffix))
	out := make([]rawLine, 0, len(hunk)-prefix-suffix)
	for k := 0; k < prefix; k++ {
		consumed[removed[k]], consumed[added[k]] = true, true
		out = append(out, rawLine{text: hunk[added[k]].text, op: opEqual})
	}

	var tail []rawLine
	for k := suffix - 1; k >= 0; k-- {
		r, a := removed[len(removed)-1-k], added[len(added)-1-k]
		consumed[r], consumed[a] = true, true
		tail = append(tail, rawLine{text: hunk[a].text, op: opEqual})
	}

	for i, l := range hunk {
		if !consumed[i] {
			out = append(out, l)
		}
	}
	return append(out, tail...)
}

// sameIgnoringSeparator compares two lines with one trailing comma dropped.
// Indentation is significant.
func sameIgnoringSeparator(a, b string) bool {
	return dropSeparator(strings.TrimRight(a, " \t\r")) == dropSeparator(strings.TrimRight(b, " \t\r"))
}

func dropSeparator(s string) string {
	return strings.TrimSuffix(s, ",")
}

// moveKey is the content two lines must share to pair as a move. An empty
// key never pairs.
func moveKey(line string) string {
	return dropSeparator(strings.TrimSpace(line))
}

// pairMoves greedily pairs each deleted line, in order, with the first
// unpaired inserted line that has the same move key. Pairs sharing a key
// share the move group allocated when that key first paired.
func pairMoves(lines []rawLine) ([]models.LineKind, []int) {
	kinds := make([]models.LineKind, len(lines))
	groups := make([]int, len(lines))

	pending := make(map[string][]int)
	for i, l := range lines {
		switch l.op {
		case opEqual:
			kinds[i] = models.LineUnchanged
		case opDelete:
			kinds[i] = models.LineRemoved
		case opInsert:
			kinds[i] = models.LineAdded
			if key := moveKey(l.text); key != "" {
				pending[key] = append(pending[key], i)
			}
		}
		groups[i] = -1
	}

	groupByKey := make(map[string]int)
	for i, l := range lines {
		if l.op != opDelete {
			continue
		}
		key := moveKey(l.text)
		candidates := pending[key]
		if key == "" || len(candidates) == 0 {
			continue
		}
		target := candidates[0]
		pending[key] = candidates[1:]

		group, ok := groupByKey[key]
		if !ok {
			group = len(groupByKey)
			groupByKey[key] = group
		}

		kinds[i], kinds[target] = models.LineMovedFrom, models.LineMovedTo
		groups[i], groups[target] = group, group
	}

	return kinds, groups
}

func emitLines(lines []rawLine, kinds []models.LineKind, groups []int) []models.DiffLine {
	out := make([]models.DiffLine, len(lines))
	oldLine, newLine := 0, 0
	for i, l := range lines {
		dl := models.DiffLine{Content: l.text, Kind: kinds[i]}
		switch kinds[i] {
		case models.LineUnchanged:
			oldLine++
			newLine++
			dl.OldLineNumber, dl.NewLineNumber = oldLine, newLine
		case models.LineRemoved, models.LineMovedFrom:
			oldLine++
			dl.OldLineNumber = oldLine
		case models.LineAdded, models.LineMovedTo:
			newLine++
			dl.NewLineNumber = newLine
		}
		if groups[i] >= 0 {
			group := groups[i]
			dl.MoveGroup = &group
		}
		out[i] = dl
	}
	return out
}
