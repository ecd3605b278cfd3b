package tinyjson

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

type parseTestCase struct {
	label  string
	input  string
	output string
	kind   error
	errStr string
}

// testWithParse runs each case through both the buffer and the reader
// sources.  A case with a kind or errStr must fail with that error; otherwise
// the parsed value must serialize to output.
func testWithParse(t *testing.T, cases []parseTestCase) {
	t.Helper()

	for _, c := range cases {
		c := c
		t.Run(c.label, func(t *testing.T) {
			t.Parallel()

			fromBuf, bufErr := ParseString(c.input)
			fromReader, readerErr := Parse(strings.NewReader(c.input))

			if c.kind != nil || c.errStr != "" {
				for _, err := range []error{bufErr, readerErr} {
					checkError(t, err, c.kind, c.errStr)
				}
				if bufErr != nil && readerErr != nil && bufErr.Error() != readerErr.Error() {
					t.Errorf("sources disagree:\nbuffer: %v\nreader: %v", bufErr, readerErr)
				}
				return
			}

			if bufErr != nil {
				t.Fatalf("unexpected error: %v", bufErr)
			}
			if readerErr != nil {
				t.Fatalf("unexpected error from reader: %v", readerErr)
			}
			if got := fromBuf.String(); got != c.output {
				t.Errorf("serialization doesn't match expected:\nGot:    %s\nExpect: %s", got, c.output)
			}
			if !Equal(fromBuf, fromReader) {
				t.Errorf("sources disagree:\nbuffer: %s\nreader: %s", fromBuf, fromReader)
			}
		})
	}
}

func checkError(t *testing.T, err error, kind error, errStr string) {
	t.Helper()
	if err == nil {
		t.Errorf("expected error but got nil")
		return
	}
	if kind != nil && !errors.Is(err, kind) {
		t.Errorf("expected error kind '%v', but got %v", kind, err)
	}
	if !strings.Contains(err.Error(), errStr) {
		t.Errorf("expected error with '%s', but got %v", errStr, err)
	}
}

func mustParse(t *testing.T, s string) Value {
	t.Helper()
	v, err := ParseString(s)
	if err != nil {
		t.Fatalf("error parsing %q: %v", s, err)
	}
	return v
}

func convertWithGoDriver(input []byte) ([]byte, error) {
	var got bson.Raw
	err := bson.UnmarshalExtJSON(input, false, &got)
	return got, err
}

// errReader returns its data and then a non-EOF error.
type errReader struct {
	data *bytes.Reader
	err  error
}

func (r *errReader) Read(p []byte) (int, error) {
	if r.data.Len() == 0 {
		return 0, r.err
	}
	return r.data.Read(p)
}
