package normalizer

import (
	"testing"

	"github.com/aleister1102/respdiff/internal/jsonvalue"
	"github.com/stretchr/testify/assert"
)

func redactJSON(t *testing.T, input string, paths ...string) string {
	t.Helper()
	return jsonvalue.Compact(Redact(jsonvalue.MustParse(input), paths))
}

func TestRedact_RemovesTargetKeepsSiblings(t *testing.T) {
	assert.Equal(t, `{"a":1,"b":{}}`, redactJSON(t, `{"a": 1, "b": {"c": 2}}`, "b.c"))
}

func TestRedact_WildcardAcrossArray(t *testing.T) {
	input := `{"items":[{"id":1,"x":1},{"id":2,"x":2}]}`
	want := `{"items":[{"x":1},{"x":2}]}`

	assert.Equal(t, want, redactJSON(t, input, "items[*].id"))
	assert.Equal(t, want, redactJSON(t, input, "items.id"), "plain key holding an array descends into every element")
}

func TestRedact_AbsentPathIsNoOp(t *testing.T) {
	assert.Equal(t, `{"a":1}`, redactJSON(t, `{"a":1}`, "x.y.z"))
}

func TestRedact_Cases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		paths []string
		want  string
	}{
		{
			name:  "top level key",
			input: `{"a":1,"b":2}`,
			paths: []string{"a"},
			want:  `{"b":2}`,
		},
		{
			name:  "index removes element",
			input: `{"items":[10,20,30]}`,
			paths: []string{"items[1]"},
			want:  `{"items":[10,30]}`,
		},
		{
			name:  "index out of range",
			input: `{"items":[10]}`,
			paths: []string{"items[5]", "items[5].id"},
			want:  `{"items":[10]}`,
		},
		{
			name:  "index then key",
			input: `{"items":[{"id":1,"x":1},{"id":2,"x":2}]}`,
			paths: []string{"items[1].id"},
			want:  `{"items":[{"id":1,"x":1},{"x":2}]}`,
		},
		{
			name:  "terminal wildcard deletes nothing",
			input: `{"items":[1,2]}`,
			paths: []string{"items[*]"},
			want:  `{"items":[1,2]}`,
		},
		{
			name:  "subscript on non array",
			input: `{"items":{"id":1}}`,
			paths: []string{"items[*].id", "items[0]"},
			want:  `{"items":{"id":1}}`,
		},
		{
			name:  "scalar in the middle of the path",
			input: `{"a":5}`,
			paths: []string{"a.b.c"},
			want:  `{"a":5}`,
		},
		{
			name:  "nested wildcards",
			input: `{"groups":[{"users":[{"id":1,"n":"a"}]},{"users":[{"id":2,"n":"b"}]}]}`,
			paths: []string{"groups[*].users[*].id"},
			want:  `{"groups":[{"users":[{"n":"a"}]},{"users":[{"n":"b"}]}]}`,
		},
		{
			name:  "paths apply sequentially",
			input: `{"items":[1,2,3]}`,
			paths: []string{"items[0]", "items[0]"},
			want:  `{"items":[3]}`,
		},
		{
			name:  "root array wildcard",
			input: `[{"id":1,"v":true},{"id":2,"v":false}]`,
			paths: []string{"[*].id"},
			want:  `[{"v":true},{"v":false}]`,
		},
		{
			name:  "root array index",
			input: `["a","b"]`,
			paths: []string{"[0]"},
			want:  `["b"]`,
		},
		{
			name:  "blank paths are skipped",
			input: `{"":1,"a":2}`,
			paths: []string{"", "  "},
			want:  `{"":1,"a":2}`,
		},
		{
			name:  "key order is kept",
			input: `{"z":1,"y":{"drop":true,"keep":1},"x":3}`,
			paths: []string{"y.drop"},
			want:  `{"z":1,"y":{"keep":1},"x":3}`,
		},
		{
			name:  "array elements that are not objects are skipped",
			input: `{"items":[1,{"id":2},"s",null]}`,
			paths: []string{"items.id"},
			want:  `{"items":[1,{},"s",null]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, redactJSON(t, tt.input, tt.paths...))
		})
	}
}

func TestRedact_DoesNotMutateInput(t *testing.T) {
	input := jsonvalue.MustParse(`{"a":{"b":1,"c":2},"items":[{"id":1},{"id":2}]}`)
	before := jsonvalue.Compact(input)

	_ = Redact(input, []string{"a.b", "items[*].id", "items[0]"})

	assert.Equal(t, before, jsonvalue.Compact(input))
}

func TestRedact_ScalarRoot(t *testing.T) {
	for _, in := range []string{`null`, `1`, `"s"`, `true`} {
		assert.Equal(t, in, redactJSON(t, in, "a", "[0]", "a[*].b"))
	}
}
