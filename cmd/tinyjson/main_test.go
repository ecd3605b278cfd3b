package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(&out)
	_, err := app.Parse(args)
	return out.String(), err
}

func TestFormat(t *testing.T) {
	path := writeTemp(t, "doc.json", "{\"b\": 1, /* c */ \"a\": [2.50, -0]}\n")

	out, err := runApp(t, "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":[2.5,0],\"b\":1}\n", out)
}

func TestFormatInvalid(t *testing.T) {
	path := writeTemp(t, "doc.json", `{"a":01}`)

	_, err := runApp(t, "fmt", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leading zero")
}

func TestCheck(t *testing.T) {
	color.NoColor = true
	good := writeTemp(t, "good.json", `[1, 2]`)
	bad := writeTemp(t, "bad.json", `[1, 2`)

	out, err := runApp(t, "check", good)
	require.NoError(t, err)
	assert.Equal(t, "OK   "+good+"\n", out)

	out, err = runApp(t, "check", good, bad)
	require.Error(t, err)
	assert.Equal(t, "1 of 2 files failed to parse", err.Error())
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "OK   "+good, lines[0])
	assert.Equal(t, "FAIL "+bad+": parse error at position 5: unexpected end of JSON input", lines[1])
}

func TestBSON(t *testing.T) {
	path := writeTemp(t, "doc.json", `{"a": 1}`)

	out, err := runApp(t, "bson", path)
	require.NoError(t, err)
	assert.Equal(t, "0c0000001061000100000000\n", out)

	path = writeTemp(t, "array.json", `[1]`)
	_, err = runApp(t, "bson", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type mismatch")
}

func TestBench(t *testing.T) {
	path := writeTemp(t, "doc.json", `{"a": [1, 2.5, "three", {"four": null}]}`)

	out, err := runApp(t, "bench", "--runs=2", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.True(t, strings.HasSuffix(line, "MB/s"), line)
	}
	assert.Contains(t, lines[0], "tinyjson")
}

func TestNewLogger(t *testing.T) {
	for lvl := 0; lvl <= 4; lvl++ {
		logger, err := newLogger(lvl)
		require.NoError(t, err)
		require.NotNil(t, logger)
	}
	_, err := newLogger(5)
	require.Error(t, err)
}
