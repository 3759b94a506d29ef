package protocol

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

const rootPath = "message"

// Encode serializes ordered fields into one complete wire message. It is a
// pure function of its input; on error no partial output is returned.
func Encode(fields []Field) ([]byte, error) {
	if len(fields) > MaxFields {
		return nil, LimitError{Path: rootPath, Bound: "maxFields", Limit: MaxFields, Actual: len(fields)}
	}
	if err := checkDuplicateNames(fields, rootPath); err != nil {
		return nil, err
	}

	body := make([]byte, 0, 256)
	var err error
	for _, f := range fields {
		body, err = appendField(body, f, rootPath, 0)
		if err != nil {
			return nil, err
		}
	}

	total := HeaderSize + len(body)
	if total > MaxMessageBytes {
		return nil, LimitError{Path: rootPath, Bound: "maxMessageBytes", Limit: MaxMessageBytes, Actual: total}
	}

	out := make([]byte, 0, total)
	out = append(out, Version, byte(len(fields)))
	out = binary.BigEndian.AppendUint16(out, uint16(total))
	out = append(out, body...)
	return out, nil
}

func appendField(buf []byte, f Field, parent string, depth int) ([]byte, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("%w: empty field name at %s", ErrInvalidValue, parent)
	}
	path := childPath(parent, f.Name)
	if len(f.Name) > MaxNameBytes {
		return nil, LimitError{Path: path, Bound: "maxNameBytes", Limit: MaxNameBytes, Actual: len(f.Name)}
	}
	if !utf8.ValidString(f.Name) {
		return nil, fmt.Errorf("%w: field name is not valid UTF-8 at %s", ErrInvalidValue, path)
	}
	buf = append(buf, byte(len(f.Name)))
	buf = append(buf, f.Name...)
	return appendValue(buf, f.Value, path, depth)
}

func appendValue(buf []byte, v Value, path string, depth int) ([]byte, error) {
	switch v.Tag {
	case TagInteger:
		buf = append(buf, byte(TagInteger))
		return binary.BigEndian.AppendUint64(buf, uint64(v.Int)), nil
	case TagString:
		buf = append(buf, byte(TagString))
		return appendString(buf, v.Str, path)
	case TagList:
		buf = append(buf, byte(TagList))
		return appendList(buf, v, path, depth+1)
	case TagObject:
		buf = append(buf, byte(TagObject))
		return appendObject(buf, v.Object, path, depth+1)
	default:
		return nil, fmt.Errorf("%w: unknown tag 0x%02x at %s", ErrInvalidValue, uint8(v.Tag), path)
	}
}

func appendString(buf []byte, s string, path string) ([]byte, error) {
	if len(s) > MaxStringBytes {
		return nil, LimitError{Path: path, Bound: "maxStringBytes", Limit: MaxStringBytes, Actual: len(s)}
	}
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: string is not valid UTF-8 at %s", ErrInvalidValue, path)
	}
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(s)))
	return append(buf, s...), nil
}

func appendList(buf []byte, v Value, path string, depth int) ([]byte, error) {
	if depth > maxDepth {
		return nil, LimitError{Path: path, Bound: "maxDepth", Limit: maxDepth, Actual: depth}
	}
	elem := v.Elem
	if len(v.List) > 0 {
		elem = v.List[0].Tag
	}
	switch elem {
	case TagInteger, TagString, TagObject:
	case 0:
		return nil, fmt.Errorf("%w: empty list without element tag at %s", ErrInvalidValue, path)
	default:
		return nil, fmt.Errorf("%w: list element tag %s at %s", ErrInvalidValue, elem, path)
	}
	if len(v.List) > MaxListElements {
		return nil, LimitError{Path: path, Bound: "maxListElements", Limit: MaxListElements, Actual: len(v.List)}
	}

	buf = append(buf, byte(elem))
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(v.List)))
	for i, el := range v.List {
		elPath := fmt.Sprintf("%s[%d]", path, i)
		if el.Tag != elem {
			return nil, fmt.Errorf("%w: list element is %s, want %s at %s",
				ErrTypeMismatch, el.Tag, elem, elPath)
		}
		var err error
		switch elem {
		case TagInteger:
			buf = binary.BigEndian.AppendUint64(buf, uint64(el.Int))
		case TagString:
			buf, err = appendString(buf, el.Str, elPath)
		case TagObject:
			buf, err = appendObject(buf, el.Object, elPath, depth+1)
		}
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func appendObject(buf []byte, fields []Field, path string, depth int) ([]byte, error) {
	if depth > maxDepth {
		return nil, LimitError{Path: path, Bound: "maxDepth", Limit: maxDepth, Actual: depth}
	}
	if len(fields) > MaxFields {
		return nil, LimitError{Path: path, Bound: "maxFields", Limit: MaxFields, Actual: len(fields)}
	}
	if err := checkDuplicateNames(fields, path); err != nil {
		return nil, err
	}
	buf = append(buf, byte(len(fields)))
	for _, f := range fields {
		var err error
		buf, err = appendField(buf, f, path, depth)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func checkDuplicateNames(fields []Field, path string) error {
	if len(fields) < 2 {
		return nil
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: duplicate field name %q at %s", ErrInvalidValue, f.Name, path)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

func childPath(parent, name string) string {
	if parent == rootPath {
		return name
	}
	return parent + "." + name
}
