// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package tinyjson

import (
	"errors"
	"fmt"
)

// Parse error kinds.  Every error returned from a parse is a *ParseError whose
// kind can be tested with errors.Is.
var (
	ErrUnexpectedEOF           = errors.New("unexpected end of JSON input")
	ErrUnexpectedToken         = errors.New("unexpected token in JSON")
	ErrMalformedNumber         = errors.New("malformed JSON number")
	ErrUnterminatedString      = errors.New("unterminated JSON string")
	ErrIllegalControlCharacter = errors.New("unescaped control character in JSON string")
	ErrInvalidUnicodeEscape    = errors.New("invalid unicode escape in JSON string")
	ErrExpectedDelimiter       = errors.New("expected delimiter")
	ErrTrailingInput           = errors.New("unexpected char after JSON input")
	ErrDepthExceeded           = errors.New("maximum depth exceeded")
	ErrRead                    = errors.New("error reading JSON")
)

// ErrTypeMismatch is matched by every *TypeError.
var ErrTypeMismatch = errors.New("type mismatch")

// ParseError records a JSON parsing error and the byte offset where it was
// detected.  Kind is one of the Err* sentinels above.
type ParseError struct {
	Kind   error
	Offset int
	Msg    string
	Err    error
}

func (pe *ParseError) Error() string {
	if pe.Err != nil {
		return fmt.Sprintf("parse error at position %d: %s: %v", pe.Offset, pe.Msg, pe.Err)
	}
	return fmt.Sprintf("parse error at position %d: %s", pe.Offset, pe.Msg)
}

// Is reports whether target is the kind of this error.
func (pe *ParseError) Is(target error) bool { return target == pe.Kind }

// Unwrap returns the underlying read error, if any.
func (pe *ParseError) Unwrap() error { return pe.Err }

// TypeError is returned by the As* accessors when a Value holds a different
// kind than the one requested.
type TypeError struct {
	Want Kind
	Got  Kind
}

func (te *TypeError) Error() string {
	return fmt.Sprintf("type mismatch: value is %s, not %s", te.Got, te.Want)
}

func (te *TypeError) Is(target error) bool { return target == ErrTypeMismatch }

func newParseError(kind error, offset int, msg string) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Msg: msg}
}
