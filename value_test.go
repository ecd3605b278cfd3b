package tinyjson

import (
	"errors"
	"reflect"
	"testing"
)

func TestAccessors(t *testing.T) {
	t.Parallel()

	values := []Value{
		Null(),
		Bool(true),
		Int(-7),
		Float(2.5),
		String("s"),
		Array(Int(1)),
		NewObject().Value(),
	}

	for _, v := range values {
		if _, err := v.AsBool(); (err == nil) != v.IsBool() {
			t.Errorf("AsBool on %s: %v", v.Kind(), err)
		}
		if _, err := v.AsInt(); (err == nil) != v.IsInt() {
			t.Errorf("AsInt on %s: %v", v.Kind(), err)
		}
		if _, err := v.AsFloat(); (err == nil) != v.IsFloat() {
			t.Errorf("AsFloat on %s: %v", v.Kind(), err)
		}
		if _, err := v.AsString(); (err == nil) != v.IsString() {
			t.Errorf("AsString on %s: %v", v.Kind(), err)
		}
		if _, err := v.AsArray(); (err == nil) != v.IsArray() {
			t.Errorf("AsArray on %s: %v", v.Kind(), err)
		}
		if _, err := v.AsObject(); (err == nil) != v.IsObject() {
			t.Errorf("AsObject on %s: %v", v.Kind(), err)
		}
	}

	var zero Value
	if !zero.IsNull() {
		t.Error("zero Value isn't null")
	}

	n, err := Int(-7).AsInt()
	if err != nil || n != -7 {
		t.Errorf("AsInt: got %d, %v", n, err)
	}
	if _, err := Int(1).AsFloat(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("int converted to float: %v", err)
	}
	s, err := String("s").AsString()
	if err != nil || s != "s" {
		t.Errorf("AsString: got %q, %v", s, err)
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	want := []string{"null", "bool", "int", "float", "string", "array", "object"}
	for i, w := range want {
		if got := Kind(i).String(); got != w {
			t.Errorf("Kind(%d): got %s, want %s", i, got, w)
		}
	}
	if got := Kind(99).String(); got != "unknown" {
		t.Errorf("unknown kind: got %s", got)
	}
}

func TestObjectOrdering(t *testing.T) {
	t.Parallel()

	obj := NewObject()
	for _, k := range []string{"b", "c", "a", "B", "", "b"} {
		obj.Set(k, String(k))
	}
	obj.Set("c", Int(3))

	wantKeys := []string{"", "B", "a", "b", "c"}
	if got := obj.Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Fatalf("got keys %q, want %q", got, wantKeys)
	}
	if obj.Len() != len(wantKeys) {
		t.Errorf("got length %d, want %d", obj.Len(), len(wantKeys))
	}
	if v, ok := obj.Get("c"); !ok || !Equal(v, Int(3)) {
		t.Errorf("overwrite lost: %s, %v", v, ok)
	}
	if _, ok := obj.Get("missing"); ok {
		t.Error("found missing key")
	}

	var seen []string
	obj.Range(func(k string, _ Value) bool {
		seen = append(seen, k)
		return k != "a"
	})
	if !reflect.DeepEqual(seen, []string{"", "B", "a"}) {
		t.Errorf("Range didn't stop: %q", seen)
	}

	keys := obj.Keys()
	keys[0] = "mutated"
	if obj.Keys()[0] != "" {
		t.Error("Keys didn't return a copy")
	}

	if got, want := obj.Value().String(), `{"":"","B":"B","a":"a","b":"b","c":3}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestObjectSetInOrder(t *testing.T) {
	t.Parallel()

	obj := NewObject()
	for _, k := range []string{"a", "b", "d", "c", "b", "e"} {
		obj.Set(k, String(k))
	}
	want := []string{"a", "b", "c", "d", "e"}
	if got := obj.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got keys %q, want %q", got, want)
	}
}

func TestNilObject(t *testing.T) {
	t.Parallel()

	var obj *Object
	if obj.Len() != 0 || obj.Keys() != nil {
		t.Error("nil Object isn't empty")
	}
	if _, ok := obj.Get("a"); ok {
		t.Error("nil Object found key")
	}
	if got := obj.Value().String(); got != "{}" {
		t.Errorf("got %s, want {}", got)
	}
	var zero Object
	zero.Set("a", Null())
	if zero.Len() != 1 {
		t.Error("zero Object didn't accept Set")
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b  string
		equal bool
	}{
		{a: `{"a":1,"b":[1,2]}`, b: `{"b":[1,2],"a":1}`, equal: true},
		{a: `{}`, b: `{}`, equal: true},
		{a: `[]`, b: `[ ]`, equal: true},
		{a: `1`, b: `1.0`, equal: false},
		{a: `[1,2]`, b: `[2,1]`, equal: false},
		{a: `[1]`, b: `[1,1]`, equal: false},
		{a: `{"a":1}`, b: `{"b":1}`, equal: false},
		{a: `{"a":1}`, b: `{"a":1,"b":1}`, equal: false},
		{a: `null`, b: `false`, equal: false},
		{a: `"x"`, b: `"x"`, equal: true},
		{a: `true`, b: `false`, equal: false},
	}

	for _, c := range cases {
		a := mustParse(t, c.a)
		b := mustParse(t, c.b)
		if got := Equal(a, b); got != c.equal {
			t.Errorf("Equal(%s, %s): got %v, want %v", c.a, c.b, got, c.equal)
		}
	}

	if !Equal(NewObject().Value(), (*Object)(nil).Value()) {
		t.Error("empty objects aren't equal")
	}
	if !Equal(Array(), Array([]Value{}...)) {
		t.Error("empty arrays aren't equal")
	}
}
