package tinyjson

import (
	"unicode/utf8"
)

const noCodepoint rune = -1

func isHighSurrogate(r rune) bool { return r >= 0xD800 && r <= 0xDBFF }
func isLowSurrogate(r rune) bool  { return r >= 0xDC00 && r <= 0xDFFF }

// parseString reads a quoted string.  Escapes other than the ones JSON
// defines a translation for (and `\u`) yield the escaped byte itself.
func (d *Decoder) parseString() (string, error) {
	if d.src.Next() != '"' {
		return "", newParseError(ErrUnexpectedToken, d.src.Pos()-1, `expecting '"' for JSON string`)
	}

	// pending holds a high surrogate until we know whether a low surrogate
	// follows it.
	pending := noCodepoint
	var out []byte
	for {
		ch := d.src.Next()
		switch {
		case ch == endOfInput:
			return "", newParseError(ErrUnterminatedString, d.src.Pos(), "unterminated JSON string")
		case ch == '"':
			out = d.flush(out, &pending)
			return string(out), nil
		case ch < 0x20:
			return "", newParseError(ErrIllegalControlCharacter, d.src.Pos()-1, "unescaped control character in JSON string")
		case ch != '\\':
			out = d.flush(out, &pending)
			out = append(out, byte(ch))
			continue
		}

		// escaped char
		escPos := d.src.Pos() - 1
		ch = d.src.Next()
		switch ch {
		case endOfInput:
			return "", newParseError(ErrUnterminatedString, d.src.Pos(), "unterminated JSON string")
		case 'u':
			r, err := d.readHex4(escPos)
			if err != nil {
				return "", err
			}
			if isHighSurrogate(pending) && isLowSurrogate(r) {
				// Reassemble the pair into one astral-plane character, per the
				// UTF-16 algorithm.
				out = utf8.AppendRune(out, ((pending-0xD800)<<10|(r-0xDC00))+0x10000)
				pending = noCodepoint
				continue
			}
			out = d.flush(out, &pending)
			if isHighSurrogate(r) {
				pending = r
			} else {
				out = d.appendCodepoint(out, r)
			}
			continue
		}

		out = d.flush(out, &pending)
		switch ch {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		default:
			out = append(out, byte(ch))
		}
	}
}

// readHex4 reads the four hex digits of a `\u` escape starting at escPos.
func (d *Decoder) readHex4(escPos int) (rune, error) {
	var r rune
	for i := 0; i < 4; i++ {
		ch := d.src.Next()
		var nibble int
		switch {
		case ch == endOfInput:
			return 0, newParseError(ErrUnterminatedString, d.src.Pos(), "unterminated JSON string")
		case ch >= '0' && ch <= '9':
			nibble = ch - '0'
		case ch >= 'a' && ch <= 'f':
			nibble = ch - 'a' + 10
		case ch >= 'A' && ch <= 'F':
			nibble = ch - 'A' + 10
		default:
			return 0, newParseError(ErrInvalidUnicodeEscape, escPos, "invalid unicode escape in JSON string")
		}
		r = r<<4 | rune(nibble)
	}
	return r, nil
}

// flush writes out a held high surrogate that turned out to be unpaired.
func (d *Decoder) flush(out []byte, pending *rune) []byte {
	if *pending == noCodepoint {
		return out
	}
	out = d.appendCodepoint(out, *pending)
	*pending = noCodepoint
	return out
}

// appendCodepoint encodes r as UTF-8.  Lone surrogates are either replaced by
// U+FFFD or encoded from their raw value, depending on the decoder setting.
func (d *Decoder) appendCodepoint(out []byte, r rune) []byte {
	if !isHighSurrogate(r) && !isLowSurrogate(r) {
		return utf8.AppendRune(out, r)
	}
	if d.replaceBadSurrogate {
		return utf8.AppendRune(out, utf8.RuneError)
	}
	return append(out, byte(0xE0|r>>12), byte(0x80|(r>>6)&0x3F), byte(0x80|r&0x3F))
}
