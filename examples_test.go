package tinyjson_test

import (
	"fmt"
	"log"
	"strings"

	"github.com/xdg-go/tinyjson"
)

func ExampleParseString() {
	v, err := tinyjson.ParseString(`{"b": [1, 2.5], "a": "foo"}`)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(v)
	// Output: {"a":"foo","b":[1,2.5]}
}

func ExampleDecoder_Decode() {
	src := tinyjson.NewReaderSource(strings.NewReader(`[1, 2 /* comment */, 3]`))
	dec := tinyjson.NewDecoder(src)
	dec.MaxDepth(10)

	v, err := dec.Decode()
	if err != nil {
		log.Fatal(err)
	}
	elems, _ := v.AsArray()
	fmt.Println(len(elems), v)
	// Output: 3 [1,2,3]
}

func ExampleParseError() {
	_, err := tinyjson.ParseString(`{"a":`)
	fmt.Println(err)
	// Output: parse error at position 5: unexpected end of JSON input
}
