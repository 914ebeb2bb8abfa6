package jsonvalue

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpValues = cmp.AllowUnexported(Array{}, Object{})

func TestParse_PreservesMemberOrder(t *testing.T) {
	v, err := Parse([]byte(`{"b": 1, "a": {"z": true, "y": null}, "c": [3, "x"]}`))
	require.NoError(t, err)

	obj, ok := v.(Object)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a", "c"}, obj.Keys())

	inner, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, []string{"z", "y"}, inner.(Object).Keys())

	arr, _ := obj.Get("c")
	assert.Equal(t, 2, arr.(Array).Len())
	assert.Equal(t, Number("3"), arr.(Array).At(0))
	assert.Equal(t, String("x"), arr.(Array).At(1))
}

func TestParse_NormalizesNumbers(t *testing.T) {
	v, err := Parse([]byte(`[1.0, 1e3, -0, 12345678901234567890]`))
	require.NoError(t, err)

	want := NewArray(Number("1"), Number("1000"), Number("0"), Number("12345678901234567890"))
	if diff := cmp.Diff(want, v, cmpValues); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DuplicateKeysKeepFirstPositionLastValue(t *testing.T) {
	v, err := Parse([]byte(`{"a": 1, "b": 2, "a": 3}`))
	require.NoError(t, err)

	obj := v.(Object)
	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	got, _ := obj.Get("a")
	assert.Equal(t, Number("3"), got)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		empty bool
	}{
		{name: "empty", input: "", empty: true},
		{name: "whitespace only", input: "  \n\t", empty: true},
		{name: "truncated object", input: `{"a": 1`},
		{name: "trailing data", input: `{"a": 1} {"b": 2}`},
		{name: "bare word", input: `hello`},
		{name: "trailing comma", input: `[1, 2,]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			if tt.empty {
				assert.ErrorIs(t, err, ErrEmptyDocument)
			} else {
				assert.NotErrorIs(t, err, ErrEmptyDocument)
			}
		})
	}
}

func TestParse_Scalars(t *testing.T) {
	tests := map[string]Value{
		`null`:    Null{},
		`true`:    Bool(true),
		`false`:   Bool(false),
		`"hi"`:    String("hi"),
		`-12.5e2`: Number("-1250"),
	}
	for input, want := range tests {
		got, err := Parse([]byte(input))
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestClone_IsDeepAndEqual(t *testing.T) {
	v := MustParse(`{"a": [1, {"b": "c"}], "d": null}`)
	c := Clone(v)

	assert.True(t, Equal(v, c))
	if diff := cmp.Diff(v, c, cmpValues); diff != "" {
		t.Errorf("Clone() mismatch (-want +got):\n%s", diff)
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(MustParse(`{"a":1,"b":[true]}`), MustParse(`{"a":1,"b":[true]}`)))
	assert.False(t, Equal(MustParse(`{"a":1,"b":2}`), MustParse(`{"b":2,"a":1}`)), "key order matters")
	assert.True(t, Equal(MustParse(`[1]`), MustParse(`[1.0]`)), "numbers compare by value")
	assert.False(t, Equal(MustParse(`[1]`), MustParse(`[1.000001]`)))
	assert.False(t, Equal(MustParse(`"1"`), MustParse(`1`)))
	assert.False(t, Equal(MustParse(`[1,2]`), MustParse(`[1]`)))
}

func TestNewObject_NilBecomesNull(t *testing.T) {
	obj := NewObject(Member{Key: "a"})
	v, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, Null{}, v)
}

func TestArray_ElementsReturnsCopy(t *testing.T) {
	arr := NewArray(Number("1"), Number("2"))
	elems := arr.Elements()
	elems[0] = String("changed")
	assert.Equal(t, Number("1"), arr.At(0))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "array", NewArray().Kind().String())
	assert.Equal(t, "null", Null{}.Kind().String())
}

func TestObject_SetAndDeleteDoNotMutate(t *testing.T) {
	orig := MustParse(`{"a":1,"b":2,"c":3}`).(Object)

	replaced := orig.Set("b", String("x"))
	assert.Equal(t, `{"a":1,"b":"x","c":3}`, Compact(replaced))

	appended := orig.Set("d", Bool(false))
	assert.Equal(t, `{"a":1,"b":2,"c":3,"d":false}`, Compact(appended))

	deleted := orig.Delete("a")
	assert.Equal(t, `{"b":2,"c":3}`, Compact(deleted))
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, Compact(orig.Delete("missing")))

	assert.Equal(t, `{"a":1,"b":2,"c":3}`, Compact(orig))
}

func TestArray_SetRemoveMapDoNotMutate(t *testing.T) {
	orig := MustParse(`[1,2,3]`).(Array)

	assert.Equal(t, `[1,"two",3]`, Compact(orig.Set(1, String("two"))))
	assert.Equal(t, `[1,3]`, Compact(orig.Remove(1)))
	assert.Equal(t, `[null,null,null]`, Compact(orig.Map(func(Value) Value { return Null{} })))

	assert.Equal(t, `[1,2,3]`, Compact(orig))
}
