package tinyjson

import "fmt"

func (d *Decoder) parseArray() (Value, error) {
	err := d.enter()
	if err != nil {
		return Value{}, err
	}
	defer d.leave()

	// Consume '['
	d.src.Skip()

	elems := []Value{}
	if !skipSpaces(d.src) {
		return Value{}, d.eofError()
	}
	if d.src.Peek() == ']' {
		d.src.Skip()
		return Array(elems...), nil
	}

	for {
		v, err := d.parseValue()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)

		if expectAndConsume(d.src, ',') {
			continue
		}
		if err := d.expectTerminator(']'); err != nil {
			return Value{}, err
		}
		return Array(elems...), nil
	}
}

func (d *Decoder) parseObject() (Value, error) {
	err := d.enter()
	if err != nil {
		return Value{}, err
	}
	defer d.leave()

	// Consume '{'
	d.src.Skip()

	obj := NewObject()
	if !skipSpaces(d.src) {
		return Value{}, d.eofError()
	}
	if d.src.Peek() == '}' {
		d.src.Skip()
		return obj.Value(), nil
	}

	for {
		if !skipSpaces(d.src) {
			return Value{}, d.eofError()
		}
		if d.src.Peek() != '"' {
			return Value{}, newParseError(ErrUnexpectedToken, d.src.Pos(), "expecting string key in JSON object")
		}
		key, err := d.parseString()
		if err != nil {
			return Value{}, err
		}

		if !expectAndConsume(d.src, ':') {
			return Value{}, d.delimiterError(":")
		}

		v, err := d.parseValue()
		if err != nil {
			return Value{}, err
		}
		// A repeated key replaces the earlier value.
		obj.setUnsorted(key, v)

		if expectAndConsume(d.src, ',') {
			continue
		}
		if err := d.expectTerminator('}'); err != nil {
			return Value{}, err
		}
		obj.sortKeys()
		return obj.Value(), nil
	}
}

// expectTerminator consumes the closing bracket of a container, which is the
// only valid alternative once a value-separator was not found.
func (d *Decoder) expectTerminator(term byte) error {
	if !skipSpaces(d.src) {
		return d.eofError()
	}
	if d.src.Peek() != int(term) {
		return d.delimiterError(",' or '" + string(term))
	}
	d.src.Skip()
	return nil
}

func (d *Decoder) delimiterError(expected string) error {
	if d.src.EOF() {
		return d.eofError()
	}
	return newParseError(ErrExpectedDelimiter, d.src.Pos(), fmt.Sprintf("expecting '%s' here", expected))
}
