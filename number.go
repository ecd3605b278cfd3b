package tinyjson

import (
	"strconv"
)

// parseNumber reads `-? int frac? exp?`.  Tokens without a fraction or exponent
// are integers; integers that overflow int64 fall back to float64.  Errors are
// reported at the offset where the number started.
func (d *Decoder) parseNumber() (Value, error) {
	start := d.src.Pos()
	var scratch [32]byte
	buf := scratch[:0]
	isFloat := false

	if d.src.Peek() == '-' {
		buf = append(buf, byte(d.src.Next()))
	}

	// leading int
	intStart := len(buf)
	buf = d.readDigits(buf)
	switch n := len(buf) - intStart; {
	case n == 0:
		return Value{}, newParseError(ErrMalformedNumber, start, "error in JSON number: expecting digit")
	case n > 1 && buf[intStart] == '0':
		return Value{}, newParseError(ErrMalformedNumber, start, "error in JSON number: leading zero")
	}

	// decimal
	if d.src.Peek() == '.' {
		isFloat = true
		buf = append(buf, byte(d.src.Next()))
		n := len(buf)
		buf = d.readDigits(buf)
		if len(buf) == n {
			return Value{}, newParseError(ErrMalformedNumber, start, "error in JSON number: expecting digit after '.'")
		}
	}

	// exponent
	if ch := d.src.Peek(); ch == 'e' || ch == 'E' {
		isFloat = true
		buf = append(buf, byte(d.src.Next()))
		if ch := d.src.Peek(); ch == '+' || ch == '-' {
			buf = append(buf, byte(d.src.Next()))
		}
		n := len(buf)
		buf = d.readDigits(buf)
		if len(buf) == n {
			return Value{}, newParseError(ErrMalformedNumber, start, "error in JSON number: expecting digit in exponent")
		}
	}

	text := string(buf)
	if !isFloat {
		n, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return Int(n), nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, newParseError(ErrMalformedNumber, start, "error in JSON number: value out of range")
	}
	return Float(f), nil
}

func (d *Decoder) readDigits(buf []byte) []byte {
	for isDigit(d.src.Peek()) {
		buf = append(buf, byte(d.src.Next()))
	}
	return buf
}
