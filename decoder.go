// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package tinyjson

import (
	"io"
)

// DefaultMaxDepth is the nesting limit used unless Decoder.MaxDepth is called.
const DefaultMaxDepth = 200

// Decoder parses a single JSON value from a Source.
type Decoder struct {
	src                 Source
	curDepth            int
	maxDepth            int
	replaceBadSurrogate bool
}

// NewDecoder returns a new decoder reading from src.
func NewDecoder(src Source) *Decoder {
	return &Decoder{
		src:      src,
		maxDepth: DefaultMaxDepth,
	}
}

// MaxDepth sets the maximum allowed nesting of arrays and objects.  The
// default is 200.
func (d *Decoder) MaxDepth(n int) {
	d.maxDepth = n
}

// ReplaceInvalidSurrogates toggles how unpaired UTF-16 surrogates decoded from
// `\u` escapes are stored.  By default they are encoded from their raw value,
// which yields bytes that are not valid UTF-8.  When enabled, they are
// replaced by U+FFFD.
func (d *Decoder) ReplaceInvalidSurrogates(b bool) {
	d.replaceBadSurrogate = b
}

// Decode parses one JSON value.  Leading and trailing white space and comments
// are skipped; any other input after the value is an error.  A leading UTF-8
// byte-order-mark is stripped.
func (d *Decoder) Decode() (Value, error) {
	err := d.handleBOM()
	if err != nil {
		return Value{}, err
	}

	v, err := d.parseValue()
	if err != nil {
		return Value{}, d.withReadError(err)
	}

	skipSpaces(d.src)
	if !d.src.EOF() {
		return Value{}, newParseError(ErrTrailingInput, d.src.Pos(), "unexpected char after JSON input")
	}
	if readErr := d.src.Err(); readErr != nil {
		return Value{}, d.withReadError(readErr)
	}

	return v, nil
}

// Parse parses a single JSON value read from r.
func Parse(r io.Reader) (Value, error) {
	return NewDecoder(NewReaderSource(r)).Decode()
}

// ParseBytes parses a single JSON value held in buf.
func ParseBytes(buf []byte) (Value, error) {
	return NewDecoder(NewBufferSource(buf)).Decode()
}

// ParseString parses a single JSON value held in str.
func ParseString(str string) (Value, error) {
	return NewDecoder(NewStringSource(str)).Decode()
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseBytes(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (d *Decoder) parseValue() (Value, error) {
	if !skipSpaces(d.src) {
		return Value{}, d.eofError()
	}

	ch := d.src.Peek()
	switch {
	case ch == '[':
		return d.parseArray()
	case ch == '{':
		return d.parseObject()
	case ch == '"':
		s, err := d.parseString()
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case ch == '-' || isDigit(ch):
		return d.parseNumber()
	default:
		return d.parseLiteral()
	}
}

var literals = [...]struct {
	text  string
	value Value
}{
	{"true", Bool(true)},
	{"false", Bool(false)},
	{"null", Null()},
}

// parseLiteral matches the input one byte at a time against true, false and
// null, failing as soon as the prefix read so far matches none of them.
func (d *Decoder) parseLiteral() (Value, error) {
	start := d.src.Pos()
	var buf [5]byte
	n := 0
	for n < len(buf) {
		ch := d.src.Next()
		if ch == endOfInput {
			return Value{}, d.eofError()
		}
		buf[n] = byte(ch)
		n++

		prefix := false
		for _, lit := range literals {
			if len(lit.text) < n || lit.text[:n] != string(buf[:n]) {
				continue
			}
			if len(lit.text) == n {
				return lit.value, nil
			}
			prefix = true
		}
		if !prefix {
			break
		}
	}
	return Value{}, newParseError(ErrUnexpectedToken, start, "unexpected token in JSON")
}

func (d *Decoder) enter() error {
	d.curDepth++
	if d.curDepth > d.maxDepth {
		return newParseError(ErrDepthExceeded, d.src.Pos(), "maximum depth exceeded")
	}
	return nil
}

func (d *Decoder) leave() { d.curDepth-- }

func (d *Decoder) eofError() error {
	return newParseError(ErrUnexpectedEOF, d.src.Pos(), "unexpected end of JSON input")
}

// withReadError replaces err with an ErrRead error if the source failed to
// read, since any end of input reported afterwards is not real.
func (d *Decoder) withReadError(err error) error {
	readErr := d.src.Err()
	if readErr == nil {
		return err
	}
	return &ParseError{Kind: ErrRead, Offset: d.src.Pos(), Msg: "error reading JSON", Err: readErr}
}

// handleBOM strips a UTF-8 byte-order-mark.  Because only UTF-8 is supported,
// other BOMs are errors.
func (d *Decoder) handleBOM() error {
	if d.src.Pos() != 0 {
		return nil
	}
	switch d.src.Peek() {
	case 0xEF:
		d.src.Skip()
		if d.src.Next() != 0xBB || d.src.Next() != 0xBF {
			return newParseError(ErrUnexpectedToken, 0, "invalid UTF-8 byte-order-mark")
		}
	case 0xFE, 0xFF:
		return newParseError(ErrUnexpectedToken, 0, "detected unsupported UTF-16 or UTF-32 byte-order-mark")
	}
	return nil
}
