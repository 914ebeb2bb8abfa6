package source

import (
	"path/filepath"
	"slices"
	"strings"
)

// RefKind says where a document reference points.
type RefKind int

const (
	RefFile RefKind = iota
	RefStdin
	RefURL
	RefSnapshot
)

// StdinRef is the reference that reads standard input.
const StdinRef = "-"

// SnapshotPrefix introduces a reference to the latest snapshot of a name,
// e.g. "snapshot:users".
const SnapshotPrefix = "snapshot:"

// String returns the kind name used in logs.
func (k RefKind) String() string {
	switch k {
	case RefStdin:
		return "stdin"
	case RefURL:
		return "url"
	case RefSnapshot:
		return "snapshot"
	default:
		return "file"
	}
}

// KindOf classifies ref.
func KindOf(ref string) RefKind {
	switch {
	case ref == StdinRef:
		return RefStdin
	case hasPrefixFold(ref, "http://"), hasPrefixFold(ref, "https://"):
		return RefURL
	case strings.HasPrefix(ref, SnapshotPrefix):
		return RefSnapshot
	default:
		return RefFile
	}
}

// SnapshotName returns the name in a "snapshot:<name>" reference.
func SnapshotName(ref string) string {
	return strings.TrimPrefix(ref, SnapshotPrefix)
}

// LocalPaths returns the file references among refs, in order and without
// duplicates.
func LocalPaths(refs ...string) []string {
	var out []string
	for _, ref := range refs {
		if KindOf(ref) != RefFile || strings.TrimSpace(ref) == "" || slices.Contains(out, ref) {
			continue
		}
		out = append(out, ref)
	}
	return out
}

// isYAMLPath reports whether a path or URL path names a YAML file.
func isYAMLPath(p string) bool {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func isYAMLContentType(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "yaml")
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
