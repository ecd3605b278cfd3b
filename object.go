package tinyjson

import "sort"

// Object maps unique string keys to Values.  Keys are kept in bytewise
// lexicographic order, which is also the iteration and serialization order;
// insertion order is not remembered.
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Set stores v under key, replacing any existing value.
func (o *Object) Set(key string, v Value) {
	if o.vals == nil {
		o.vals = make(map[string]Value)
	}
	if _, ok := o.vals[key]; !ok {
		if n := len(o.keys); n == 0 || o.keys[n-1] < key {
			o.keys = append(o.keys, key)
			o.vals[key] = v
			return
		}
		i := sort.SearchStrings(o.keys, key)
		o.keys = append(o.keys, "")
		copy(o.keys[i+1:], o.keys[i:])
		o.keys[i] = key
	}
	o.vals[key] = v
}

// setUnsorted stores v under key without keeping keys ordered.  The object
// must not be read until sortKeys is called.
func (o *Object) setUnsorted(key string, v Value) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

func (o *Object) sortKeys() {
	if !sort.StringsAreSorted(o.keys) {
		sort.Strings(o.keys)
	}
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.vals[key]
	return v, ok
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns a sorted copy of the keys.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Range calls f for each entry in key order until f returns false.
func (o *Object) Range(f func(key string, v Value) bool) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		if !f(k, o.vals[k]) {
			return
		}
	}
}

// Value wraps o in a Value.  A nil Object becomes an empty one.
func (o *Object) Value() Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, o: o}
}

func (o *Object) equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	if o.Len() == 0 {
		return true
	}
	for i, k := range o.keys {
		if other.keys[i] != k || !Equal(o.vals[k], other.vals[k]) {
			return false
		}
	}
	return true
}
