package normalizer

import (
	"testing"

	"github.com/aleister1102/respdiff/internal/jsonvalue"
	"github.com/stretchr/testify/assert"
)

func canonical(s string) string {
	return jsonvalue.Compact(Canonicalize(jsonvalue.MustParse(s)))
}

func TestCanonicalize_SortsKeys(t *testing.T) {
	assert.Equal(t, canonical(`{"a":1,"b":2}`), canonical(`{"b":2,"a":1}`))
	assert.Equal(t, `{"a":1,"b":2}`, canonical(`{"b":2,"a":1}`))
	assert.Equal(t, `{"A":0,"a":{"x":1,"y":2},"é":3}`, canonical(`{"é":3,"a":{"y":2,"x":1},"A":0}`))
}

func TestCanonicalize_SortsArrays(t *testing.T) {
	assert.Equal(t, canonical(`[1,2,3]`), canonical(`[3,1,2]`))
	assert.Equal(t, `[1,2,3]`, canonical(`[3,1,2]`))
	// Sort keys are encodings compared as strings, so 10 sorts before 9.
	assert.Equal(t, `[10,9]`, canonical(`[9,10]`))
	assert.Equal(t, `[{"id":1,"n":"a"},{"id":2,"n":"b"}]`, canonical(`[{"n":"b","id":2},{"id":1,"n":"a"}]`))
	assert.Equal(t, `["a",1,[],null,{}]`, canonical(`[{},null,[],1,"a"]`))
}

func TestCanonicalize_ScalarsUnchanged(t *testing.T) {
	for _, s := range []string{`null`, `true`, `1.5`, `"x"`, `[]`, `{}`} {
		assert.Equal(t, s, canonical(s))
	}
}

func TestCanonicalize_EquivalentNumbersSortTogether(t *testing.T) {
	assert.Equal(t, `[0.9,1,1]`, canonical(`[1.0,1,0.9]`))
	assert.Equal(t, `[{"v":1.5},{"v":1.5}]`, canonical(`[{"v":1.50},{"v":15e-1}]`))
}

func TestCanonicalize_Idempotent(t *testing.T) {
	docs := []string{
		`{"b":[3,{"z":1,"a":[2,1]},"x"],"a":{"d":null,"c":[{"k":2},{"k":1}]}}`,
		`[[3,2],[1],{"b":1,"a":2},"s",false,null,0.5]`,
		`{"":{"":[]}}`,
		`"plain"`,
	}
	for _, d := range docs {
		once := Canonicalize(jsonvalue.MustParse(d))
		twice := Canonicalize(once)
		assert.True(t, jsonvalue.Equal(once, twice), d)
	}
}

func TestCanonicalize_DoesNotMutateInput(t *testing.T) {
	input := jsonvalue.MustParse(`{"b":[2,1],"a":1}`)
	_ = Canonicalize(input)
	assert.Equal(t, `{"b":[2,1],"a":1}`, jsonvalue.Compact(input))
}
