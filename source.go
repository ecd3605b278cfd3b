// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package tinyjson

import (
	"bufio"
	"io"
)

// endOfInput is returned by Peek and Next when a Source is exhausted.
const endOfInput = -1

// Source is a position-tracked read cursor over JSON text.  Peek and Next
// return the next byte as an int, or -1 at end of input.  Unget steps back one
// byte and is only valid directly after Next (intervening Peeks are allowed).
// Pos is the number of bytes consumed from the start of the input.
//
// A Source borrows its input; it never closes or otherwise takes ownership of
// the underlying reader or buffer.
type Source interface {
	EOF() bool
	Peek() int
	Next() int
	Unget()
	Skip()
	Pos() int
	Err() error
}

// readerSource counts consumed bytes itself, so positions are available for
// any io.Reader without seeking.  bufio.Reader.UnreadByte is not used because
// it is invalidated by Peek; a one byte pushback is kept here instead.
type readerSource struct {
	r      *bufio.Reader
	pos    int
	last   int
	unread bool
	err    error
}

// NewReaderSource returns a Source reading from r.  If r is not a
// *bufio.Reader of at least 8192 bytes, it will be rebuffered.
func NewReaderSource(r io.Reader) Source {
	br, ok := r.(*bufio.Reader)
	if !ok || br.Size() < 8192 {
		br = bufio.NewReaderSize(r, 8192)
	}
	return &readerSource{r: br, last: endOfInput}
}

func (s *readerSource) EOF() bool { return s.Peek() == endOfInput }

func (s *readerSource) Peek() int {
	if s.unread {
		return s.last
	}
	buf, err := s.r.Peek(1)
	if err != nil {
		s.setErr(err)
		return endOfInput
	}
	return int(buf[0])
}

func (s *readerSource) Next() int {
	if s.unread {
		s.unread = false
		s.pos++
		return s.last
	}
	ch, err := s.r.ReadByte()
	if err != nil {
		s.setErr(err)
		s.last = endOfInput
		return endOfInput
	}
	s.pos++
	s.last = int(ch)
	return s.last
}

func (s *readerSource) Unget() {
	if s.unread || s.last == endOfInput {
		return
	}
	s.unread = true
	s.pos--
}

func (s *readerSource) Skip() { s.Next() }

func (s *readerSource) Pos() int { return s.pos }

func (s *readerSource) Err() error { return s.err }

func (s *readerSource) setErr(err error) {
	if err != io.EOF && s.err == nil {
		s.err = err
	}
}

// bufferSource indexes a borrowed, contiguous input.
type bufferSource[T ~string | ~[]byte] struct {
	data     T
	idx      int
	advanced bool
}

// NewBufferSource returns a Source over buf.  The buffer must not be modified
// while a parse is in progress.
func NewBufferSource(buf []byte) Source {
	return &bufferSource[[]byte]{data: buf}
}

// NewStringSource returns a Source over str.
func NewStringSource(str string) Source {
	return &bufferSource[string]{data: str}
}

func (s *bufferSource[T]) EOF() bool { return s.idx >= len(s.data) }

func (s *bufferSource[T]) Peek() int {
	if s.EOF() {
		return endOfInput
	}
	return int(s.data[s.idx])
}

func (s *bufferSource[T]) Next() int {
	if s.EOF() {
		s.advanced = false
		return endOfInput
	}
	ch := s.data[s.idx]
	s.idx++
	s.advanced = true
	return int(ch)
}

// Unget only steps back over a byte the last Next returned.
func (s *bufferSource[T]) Unget() {
	if s.advanced {
		s.idx--
		s.advanced = false
	}
}

func (s *bufferSource[T]) Skip() { s.Next() }

func (s *bufferSource[T]) Pos() int { return s.idx }

func (s *bufferSource[T]) Err() error { return nil }
