package tinyjson

// skipSpaces consumes white space, `//` line comments and `/* */` block
// comments.  It returns false if the input ends while skipping.
func skipSpaces(src Source) bool {
	for !src.EOF() {
		switch src.Peek() {
		case ' ', '\t', '\n', '\r':
			src.Skip()
		case '/':
			src.Skip()
			switch src.Peek() {
			case '/':
				for ch := src.Next(); ch != endOfInput && ch != '\n'; ch = src.Next() {
				}
			case '*':
				src.Skip()
				skipBlockComment(src)
			default:
				// Not a comment; leave the '/' for the caller to reject.
				src.Unget()
				return true
			}
		default:
			return true
		}
	}
	return false
}

// skipBlockComment consumes up to and including the first "*/".  Comments do
// not nest.
func skipBlockComment(src Source) {
	for {
		ch := src.Next()
		if ch == endOfInput {
			return
		}
		if ch == '*' && src.Peek() == '/' {
			src.Skip()
			return
		}
	}
}

// expectAndConsume skips spaces and, if the next byte is expected, consumes
// it along with any spaces after it.  Nothing is consumed on a mismatch.
func expectAndConsume(src Source, expected byte) bool {
	if !skipSpaces(src) || src.Peek() != int(expected) {
		return false
	}
	src.Skip()
	skipSpaces(src)
	return true
}

func isDigit(ch int) bool { return ch >= '0' && ch <= '9' }
