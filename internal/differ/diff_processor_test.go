package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffProcessor_DiffLinesReproducesBothSides(t *testing.T) {
	tests := []struct {
		name string
		old  string
		new  string
	}{
		{name: "identical", old: "a\nb\nc", new: "a\nb\nc"},
		{name: "insert middle", old: "a\nc", new: "a\nb\nc"},
		{name: "delete end", old: "a\nb\nc", new: "a\nb"},
		{name: "replace all", old: "x\ny", new: "p\nq\nr"},
		{name: "trailing newline", old: "a\nb\n", new: "a\nb"},
		{name: "old empty", old: "", new: "a\nb"},
		{name: "new empty", old: "a\nb", new: ""},
		{name: "repeated lines", old: "x\nx\ny\nx", new: "y\nx\nx\nx\ny"},
	}

	for _, cfg := range []LineOptions{{}, {SemanticCleanup: true}} {
		dp := NewDiffProcessor(cfg)
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				parts := dp.DiffLines(tt.old, tt.new)
				assert.Equal(t, tt.old, OldText(parts))
				assert.Equal(t, tt.new, NewText(parts))
				for _, p := range parts {
					assert.NotEmpty(t, p.Value)
					assert.False(t, p.Added && p.Removed)
				}
			})
		}
	}
}

func TestDiffProcessor_EmptyInputs(t *testing.T) {
	dp := NewDiffProcessor(LineOptions{})
	assert.Empty(t, dp.DiffLines("", ""))
}

func TestDiffProcessor_WholeLines(t *testing.T) {
	dp := NewDiffProcessor(LineOptions{})

	parts := dp.DiffLines("{\n  \"a\": 1\n}", "{\n  \"a\": 2\n}")
	require.Equal(t, []LinePart{
		{Value: "{\n"},
		{Value: "  \"a\": 1\n", Removed: true},
		{Value: "  \"a\": 2\n", Added: true},
		{Value: "}"},
	}, parts)
}
