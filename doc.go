// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package tinyjson is a small JSON document model with a recursive-descent
// parser and a canonical serializer.  It parses from an io.Reader or an
// in-memory buffer into a Value tree and renders a Value back to compact JSON
// text.
//
// Grammar
//
// Parsing follows RFC 8259 with a few deliberate extensions:
//
//   - `//` line comments and `/* */` block comments are allowed wherever white
//     space is.
//   - Unknown escapes in strings, such as `\x`, yield the escaped character.
//   - Unpaired UTF-16 surrogates in `\u` escapes are accepted and encoded from
//     their raw value.  Use Decoder.ReplaceInvalidSurrogates to substitute
//     U+FFFD instead.
//   - A leading UTF-8 byte-order-mark is ignored.
//
// Numbers without a fraction or exponent are parsed as int64, falling back to
// float64 if they overflow.  Other numbers are float64.  Nesting is limited to
// 200 levels by default; see Decoder.MaxDepth.
//
// Key ordering
//
// Objects keep their members sorted by key, bytewise.  Serialization therefore
// always emits keys in lexicographic order regardless of input order, and a
// repeated key keeps only its last value.  This matches the output of the
// tool this package was written for byte-for-byte.
//
// Errors
//
// Parse failures are returned as *ParseError values carrying the byte offset
// where the problem was found.  Test the kind with errors.Is, for example
// errors.Is(err, tinyjson.ErrMalformedNumber).  Typed accessors such as
// Value.AsInt return a *TypeError instead of panicking when the Value holds a
// different kind.
package tinyjson
