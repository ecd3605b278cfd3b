// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package tinyjson

import (
	"bytes"
	"io"
	"math"
	"strconv"
)

const hexDigits = "0123456789abcdef"

// AppendTo appends the canonical serialization of v to dst and returns the
// extended buffer, just like with `append`.  The output has no insignificant
// white space and object members are ordered by key.
func (v Value) AppendTo(dst []byte) []byte {
	switch v.kind {
	case KindBool:
		if v.b {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case KindInt:
		return strconv.AppendInt(dst, v.i, 10)
	case KindFloat:
		return appendFloat(dst, v.f)
	case KindString:
		return appendQuoted(dst, v.s)
	case KindArray:
		dst = append(dst, '[')
		for i, elem := range v.a {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = elem.AppendTo(dst)
		}
		return append(dst, ']')
	case KindObject:
		dst = append(dst, '{')
		first := true
		v.o.Range(func(key string, elem Value) bool {
			if !first {
				dst = append(dst, ',')
			}
			first = false
			dst = appendQuoted(dst, key)
			dst = append(dst, ':')
			dst = elem.AppendTo(dst)
			return true
		})
		return append(dst, '}')
	default:
		return append(dst, "null"...)
	}
}

// String returns the canonical serialization of v.
func (v Value) String() string {
	return string(v.AppendTo(nil))
}

// WriteTo writes the canonical serialization of v to w.
func (v Value) WriteTo(w io.Writer) (int64, error) {
	buf := v.AppendTo(nil)
	n, err := w.Write(buf)
	if err == nil && n < len(buf) {
		err = io.ErrShortWrite
	}
	return int64(n), err
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.AppendTo(nil), nil
}

// appendFloat writes the shortest text that parses back to f.  A ".0" is added
// when needed so the text is read back as a float, not an integer.  NaN and
// infinities have no JSON form and are written as null.
func appendFloat(dst []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(dst, "null"...)
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, 'g', -1, 64)
	if bytes.IndexAny(dst[start:], ".e") < 0 {
		dst = append(dst, ".0"...)
	}
	return dst
}

// appendQuoted writes s as a JSON string.  Besides the escapes JSON requires,
// U+2028 and U+2029 are escaped so the output can be embedded in JavaScript.
// Other bytes, including invalid UTF-8, are copied unchanged.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case 0xE2:
			if i+2 < len(s) && s[i+1] == 0x80 && (s[i+2] == 0xA8 || s[i+2] == 0xA9) {
				dst = append(dst, `\u202`...)
				dst = append(dst, hexDigits[s[i+2]&0x0F])
				i += 2
				continue
			}
			dst = append(dst, ch)
		default:
			if ch < 0x20 {
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[ch>>4], hexDigits[ch&0x0F])
				continue
			}
			dst = append(dst, ch)
		}
	}
	return append(dst, '"')
}
