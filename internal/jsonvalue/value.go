// Package jsonvalue models parsed JSON documents as a closed set of
// immutable value types. Objects keep their members in insertion order so a
// document can be re-serialized exactly as it was received.
package jsonvalue

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is one of Null, Bool, Number, String, Array or Object.
// The set is closed: no other package can implement it.
type Value interface {
	Kind() Kind
	isValue()
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number kept as its literal text, so no precision is lost
// and no coercion happens between, for example, 1 and 1.0.
type Number string

// String is a JSON string.
type String string

// Array is an ordered sequence of values. The zero value is an empty array.
type Array struct {
	elems []Value
}

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a mapping from string keys to values that remembers insertion
// order. The zero value is an empty object.
type Object struct {
	members []Member
	index   map[string]int
}

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }
func (Object) Kind() Kind { return KindObject }

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (String) isValue() {}
func (Array) isValue()  {}
func (Object) isValue() {}

// NewArray builds an array holding a copy of elems. Nil elements become Null.
func NewArray(elems ...Value) Array {
	out := make([]Value, len(elems))
	for i, e := range elems {
		if e == nil {
			e = Null{}
		}
		out[i] = e
	}
	return Array{elems: out}
}

// Len returns the number of elements.
func (a Array) Len() int { return len(a.elems) }

// At returns the element at index i. It panics if i is out of range, like a
// slice index would.
func (a Array) At(i int) Value { return a.elems[i] }

// Elements returns a copy of the elements.
func (a Array) Elements() []Value {
	out := make([]Value, len(a.elems))
	copy(out, a.elems)
	return out
}

// NewObject builds an object from members. A repeated key keeps the
// position of its first occurrence and the value of its last one, which is
// how JSON.parse treats duplicate keys.
func NewObject(members ...Member) Object {
	var o Object
	for _, m := range members {
		o = o.appendMember(m.Key, m.Value)
	}
	return o
}

func (o Object) appendMember(key string, v Value) Object {
	if v == nil {
		v = Null{}
	}
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return o
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
	return o
}

// Len returns the number of members.
func (o Object) Len() int { return len(o.members) }

// Get returns the value stored under key.
func (o Object) Get(key string) (Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Keys returns the keys in insertion order.
func (o Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns a copy of the members in insertion order.
func (o Object) Members() []Member {
	out := make([]Member, len(o.members))
	copy(out, o.members)
	return out
}

// Clone returns a deep copy of v. Values are never mutated by this module,
// but callers that hand documents across goroutines can use Clone to make
// ownership explicit.
func Clone(v Value) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Array:
		elems := make([]Value, len(t.elems))
		for i, e := range t.elems {
			elems[i] = Clone(e)
		}
		return Array{elems: elems}
	case Object:
		members := make([]Member, len(t.members))
		for i, m := range t.members {
			members[i] = Member{Key: m.Key, Value: Clone(m.Value)}
		}
		return NewObject(members...)
	default:
		return v
	}
}

// Equal reports whether a and b are the same value, including object key
// order.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch at := a.(type) {
	case Array:
		bt := b.(Array)
		if len(at.elems) != len(bt.elems) {
			return false
		}
		for i := range at.elems {
			if !Equal(at.elems[i], bt.elems[i]) {
				return false
			}
		}
		return true
	case Object:
		bt := b.(Object)
		if len(at.members) != len(bt.members) {
			return false
		}
		for i := range at.members {
			if at.members[i].Key != bt.members[i].Key || !Equal(at.members[i].Value, bt.members[i].Value) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// Set returns a copy of o with key bound to v. An existing key keeps its
// position; a new key is appended.
func (o Object) Set(key string, v Value) Object {
	members := make([]Member, len(o.members), len(o.members)+1)
	copy(members, o.members)
	if i, ok := o.index[key]; ok {
		if v == nil {
			v = Null{}
		}
		members[i] = Member{Key: key, Value: v}
		return Object{members: members, index: o.index}
	}
	return NewObject(append(members, Member{Key: key, Value: v})...)
}

// Delete returns a copy of o without key. Deleting a missing key returns o.
func (o Object) Delete(key string) Object {
	i, ok := o.index[key]
	if !ok {
		return o
	}
	members := make([]Member, 0, len(o.members)-1)
	members = append(members, o.members[:i]...)
	members = append(members, o.members[i+1:]...)
	return NewObject(members...)
}

// Set returns a copy of a with the element at i replaced. It panics if i is
// out of range.
func (a Array) Set(i int, v Value) Array {
	elems := a.Elements()
	if v == nil {
		v = Null{}
	}
	elems[i] = v
	return Array{elems: elems}
}

// Remove returns a copy of a without the element at i. It panics if i is
// out of range.
func (a Array) Remove(i int) Array {
	elems := make([]Value, 0, len(a.elems)-1)
	elems = append(elems, a.elems[:i]...)
	elems = append(elems, a.elems[i+1:]...)
	return Array{elems: elems}
}

// Map returns a new array holding f applied to every element.
func (a Array) Map(f func(Value) Value) Array {
	elems := make([]Value, len(a.elems))
	for i, e := range a.elems {
		elems[i] = f(e)
	}
	return Array{elems: elems}
}
