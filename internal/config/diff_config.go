package config

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// DiffConfig defines configuration for JSON comparison
type DiffConfig struct {
	// ExclusionPaths are removed from both documents before comparing,
	// e.g. "meta.requestId" or "items[*].updatedAt".
	ExclusionPaths        []string `json:"exclusion_paths,omitempty" yaml:"exclusion_paths,omitempty" validate:"dive,exclusionpath"`
	IgnoreOrder           bool     `json:"ignore_order" yaml:"ignore_order"`
	MaxDocumentSizeMB     int      `json:"max_document_size_mb,omitempty" yaml:"max_document_size_mb,omitempty" validate:"min=0"`
	EnableSemanticCleanup bool     `json:"enable_semantic_cleanup" yaml:"enable_semantic_cleanup"`
	TimeoutSeconds        int      `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"min=0"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		ExclusionPaths:    []string{},
		MaxDocumentSizeMB: DefaultDiffMaxDocumentSizeMB,
		TimeoutSeconds:    DefaultDiffTimeoutSeconds,
	}
}

// WithExtraExclusionPaths returns a copy of c whose exclusion paths are the
// configured ones followed by extra, de-duplicated.
func (c DiffConfig) WithExtraExclusionPaths(extra ...string) DiffConfig {
	merged := make([]string, 0, len(c.ExclusionPaths)+len(extra))
	merged = append(merged, c.ExclusionPaths...)
	merged = append(merged, extra...)
	c.ExclusionPaths = NormalizeExclusionPaths(merged)
	return c
}

// NormalizeExclusionPaths trims paths, drops blank ones and removes
// duplicates, keeping the first occurrence of each.
func NormalizeExclusionPaths(paths []string) []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" || !seen.Add(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}
