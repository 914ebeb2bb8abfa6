package normalizer

import (
	"github.com/aleister1102/respdiff/internal/jsonvalue"
)

// Redact returns v with every location named by paths removed. Paths are
// applied one after another to the same working value. Paths that do not
// resolve leave the value unchanged and blank paths are skipped; redaction
// never fails.
//
// v itself is never modified: updates copy the containers along the
// redacted path and share every untouched subtree.
func Redact(v jsonvalue.Value, paths []string) jsonvalue.Value {
	return New(Options{ExclusionPaths: paths}).Normalize(v)
}

// RedactCompiled is Redact for paths already split by ParsePath.
func RedactCompiled(v jsonvalue.Value, paths [][]Segment) jsonvalue.Value {
	out := v
	for _, segs := range paths {
		out = redactSegments(out, segs)
	}
	return out
}

func redactSegments(node jsonvalue.Value, segs []Segment) jsonvalue.Value {
	if len(segs) == 0 {
		return node
	}
	seg, rest := segs[0], segs[1:]

	// "[*].id" or "[0]" address the current node when it is an array.
	if seg.Name == "" && seg.Subscript != SubscriptNone {
		arr, ok := node.(jsonvalue.Array)
		if !ok {
			return node
		}
		return redactElements(arr, seg, rest)
	}

	obj, ok := node.(jsonvalue.Object)
	if !ok {
		return node
	}
	child, ok := obj.Get(seg.Name)
	if !ok {
		return node
	}

	if seg.Subscript != SubscriptNone {
		arr, ok := child.(jsonvalue.Array)
		if !ok {
			return node
		}
		return obj.Set(seg.Name, redactElements(arr, seg, rest))
	}

	if len(rest) == 0 {
		return obj.Delete(seg.Name)
	}
	// A plain key holding an array applies the rest of the path to every
	// element, so "items.id" behaves like "items[*].id".
	if arr, ok := child.(jsonvalue.Array); ok {
		return obj.Set(seg.Name, arr.Map(func(e jsonvalue.Value) jsonvalue.Value {
			return redactSegments(e, rest)
		}))
	}
	return obj.Set(seg.Name, redactSegments(child, rest))
}

func redactElements(arr jsonvalue.Array, seg Segment, rest []Segment) jsonvalue.Array {
	switch seg.Subscript {
	case SubscriptWildcard:
		// A terminal wildcard deletes nothing.
		if len(rest) == 0 {
			return arr
		}
		return arr.Map(func(e jsonvalue.Value) jsonvalue.Value {
			return redactSegments(e, rest)
		})
	case SubscriptIndex:
		if seg.Index < 0 || seg.Index >= arr.Len() {
			return arr
		}
		if len(rest) == 0 {
			return arr.Remove(seg.Index)
		}
		return arr.Set(seg.Index, redactSegments(arr.At(seg.Index), rest))
	default:
		return arr
	}
}
