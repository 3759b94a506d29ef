package protocol

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// Decode parses one complete wire message into its ordered fields. The
// buffer must hold exactly the bytes the header declares; trailing or
// missing bytes are errors.
func Decode(buf []byte) ([]Field, error) {
	if len(buf) < HeaderSize {
		return nil, fmt.Errorf("%w: short header: %d bytes", ErrMalformed, len(buf))
	}
	if buf[0] != Version {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnsupportedVersion, buf[0])
	}
	count := int(buf[1])
	total := int(binary.BigEndian.Uint16(buf[2:4]))
	if len(buf) != total {
		return nil, fmt.Errorf("%w: header declares %d bytes, buffer has %d",
			ErrLengthMismatch, total, len(buf))
	}

	d := &decoder{buf: buf, off: HeaderSize}
	fields := make([]Field, 0, count)
	for i := 0; i < count; i++ {
		f, err := d.readField(rootPath, 0)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	if d.off != total {
		return nil, fmt.Errorf("%w: consumed %d bytes, header declares %d",
			ErrLengthMismatch, d.off, total)
	}
	return fields, nil
}

// decoder is a forward-only cursor over one message buffer.
type decoder struct {
	buf []byte
	off int
}

func (d *decoder) remaining() int { return len(d.buf) - d.off }

func (d *decoder) take(n int, what, path string) ([]byte, error) {
	if d.remaining() < n {
		return nil, fmt.Errorf("%w: expected %s (%d bytes) at %s, %d left",
			ErrMalformed, what, n, path, d.remaining())
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *decoder) readByte(what, path string) (byte, error) {
	b, err := d.take(1, what, path)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *decoder) readUint16(what, path string) (int, error) {
	b, err := d.take(2, what, path)
	if err != nil {
		return 0, err
	}
	return int(binary.BigEndian.Uint16(b)), nil
}

func (d *decoder) readField(parent string, depth int) (Field, error) {
	nameLen, err := d.readByte("name length", parent)
	if err != nil {
		return Field{}, err
	}
	if nameLen == 0 {
		return Field{}, fmt.Errorf("%w: empty field name at %s", ErrMalformed, parent)
	}
	nameBytes, err := d.take(int(nameLen), "field name", parent)
	if err != nil {
		return Field{}, err
	}
	if !utf8.Valid(nameBytes) {
		return Field{}, fmt.Errorf("%w: field name is not valid UTF-8 at %s", ErrMalformed, parent)
	}
	name := string(nameBytes)
	value, err := d.readValue(childPath(parent, name), depth)
	if err != nil {
		return Field{}, err
	}
	return Field{Name: name, Value: value}, nil
}

func (d *decoder) readValue(path string, depth int) (Value, error) {
	tag, err := d.readByte("type tag", path)
	if err != nil {
		return Value{}, err
	}
	switch Tag(tag) {
	case TagInteger:
		return d.readInteger(path)
	case TagString:
		return d.readString(path)
	case TagList:
		return d.readList(path, depth+1)
	case TagObject:
		return d.readObject(path, depth+1)
	default:
		return Value{}, fmt.Errorf("%w: unknown type tag 0x%02x at %s", ErrTypeMismatch, tag, path)
	}
}

func (d *decoder) readInteger(path string) (Value, error) {
	b, err := d.take(8, "integer value", path)
	if err != nil {
		return Value{}, err
	}
	return NewInt(int64(binary.BigEndian.Uint64(b))), nil
}

func (d *decoder) readString(path string) (Value, error) {
	n, err := d.readUint16("string length", path)
	if err != nil {
		return Value{}, err
	}
	b, err := d.take(n, "string value", path)
	if err != nil {
		return Value{}, err
	}
	if !utf8.Valid(b) {
		return Value{}, fmt.Errorf("%w: string is not valid UTF-8 at %s", ErrMalformed, path)
	}
	return NewString(string(b)), nil
}

func (d *decoder) readList(path string, depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, LimitError{Path: path, Bound: "maxDepth", Limit: maxDepth, Actual: depth}
	}
	elemTag, err := d.readByte("element tag", path)
	if err != nil {
		return Value{}, err
	}
	elem := Tag(elemTag)
	switch elem {
	case TagInteger, TagString, TagObject:
	default:
		return Value{}, fmt.Errorf("%w: invalid list element tag 0x%02x at %s",
			ErrTypeMismatch, elemTag, path)
	}
	count, err := d.readUint16("element count", path)
	if err != nil {
		return Value{}, err
	}
	// Every element occupies at least one byte, so a count beyond the
	// remaining buffer cannot be satisfied.
	if count > d.remaining() {
		return Value{}, fmt.Errorf("%w: element count %d exceeds %d remaining bytes at %s",
			ErrMalformed, count, d.remaining(), path)
	}

	v := Value{Tag: TagList, Elem: elem}
	if count > 0 {
		v.List = make([]Value, 0, count)
	}
	for i := 0; i < count; i++ {
		elPath := fmt.Sprintf("%s[%d]", path, i)
		var el Value
		switch elem {
		case TagInteger:
			el, err = d.readInteger(elPath)
		case TagString:
			el, err = d.readString(elPath)
		case TagObject:
			el, err = d.readObject(elPath, depth+1)
		}
		if err != nil {
			return Value{}, err
		}
		v.List = append(v.List, el)
	}
	return v, nil
}

func (d *decoder) readObject(path string, depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, LimitError{Path: path, Bound: "maxDepth", Limit: maxDepth, Actual: depth}
	}
	count, err := d.readByte("field count", path)
	if err != nil {
		return Value{}, err
	}
	fields := make([]Field, 0, count)
	for i := 0; i < int(count); i++ {
		f, err := d.readField(path, depth)
		if err != nil {
			return Value{}, err
		}
		fields = append(fields, f)
	}
	return Value{Tag: TagObject, Object: fields}, nil
}
