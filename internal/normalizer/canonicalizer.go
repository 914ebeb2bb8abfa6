package normalizer

import (
	"sort"

	"github.com/aleister1102/respdiff/internal/jsonvalue"
)

// Canonicalize returns a copy of v in which every object has its keys in
// ascending code point order and every array has its elements sorted by
// their own compact canonical encoding. Two documents that differ only in
// key or element order canonicalize to the same value.
//
// Sorting arrays also discards positions that may carry meaning; callers
// opt into that when they ask to ignore ordering.
func Canonicalize(v jsonvalue.Value) jsonvalue.Value {
	switch t := v.(type) {
	case jsonvalue.Object:
		members := t.Members()
		for i := range members {
			members[i].Value = Canonicalize(members[i].Value)
		}
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].Key < members[j].Key
		})
		return jsonvalue.NewObject(members...)
	case jsonvalue.Array:
		type keyed struct {
			key   string
			value jsonvalue.Value
		}
		elems := make([]keyed, t.Len())
		for i := range elems {
			c := Canonicalize(t.At(i))
			elems[i] = keyed{key: jsonvalue.Compact(c), value: c}
		}
		sort.SliceStable(elems, func(i, j int) bool {
			return elems[i].key < elems[j].key
		})
		values := make([]jsonvalue.Value, len(elems))
		for i, e := range elems {
			values[i] = e.value
		}
		return jsonvalue.NewArray(values...)
	case nil:
		return jsonvalue.Null{}
	default:
		return v
	}
}
