package protocol

import "fmt"

// Tag identifies a value variant on the wire.
type Tag uint8

const (
	TagInteger Tag = 0x01
	TagString  Tag = 0x02
	TagList    Tag = 0x03
	TagObject  Tag = 0x04
)

func (t Tag) String() string {
	switch t {
	case TagInteger:
		return "integer"
	case TagString:
		return "string"
	case TagList:
		return "list"
	case TagObject:
		return "object"
	}
	return fmt.Sprintf("tag(0x%02x)", uint8(t))
}

// Value is one protocol value. Tag selects which payload slot is meaningful.
// Elem records a list's element tag; it is what lets an empty list state its
// element type, since the slot is otherwise derived from the first element.
type Value struct {
	Tag    Tag
	Int    int64
	Str    string
	Elem   Tag
	List   []Value
	Object []Field
}

// Field is a named value within a message or nested object.
type Field struct {
	Name  string
	Value Value
}

// NewInt creates an integer value.
func NewInt(v int64) Value {
	return Value{Tag: TagInteger, Int: v}
}

// NewString creates a string value.
func NewString(s string) Value {
	return Value{Tag: TagString, Str: s}
}

// NewList creates a list value. The element tag is taken from the first
// element; use NewEmptyList for a list with no elements.
func NewList(elements ...Value) Value {
	v := Value{Tag: TagList, List: elements}
	if len(elements) > 0 {
		v.Elem = elements[0].Tag
	}
	return v
}

// NewEmptyList creates a list with no elements and an explicit element tag.
func NewEmptyList(elem Tag) Value {
	return Value{Tag: TagList, Elem: elem}
}

// NewObject creates an object value from ordered fields.
func NewObject(fields ...Field) Value {
	return Value{Tag: TagObject, Object: fields}
}

// NewField creates a named field.
func NewField(name string, value Value) Field {
	return Field{Name: name, Value: value}
}

// GetField returns the first field with the given name.
func GetField(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Equal reports variant-wise recursive equality. Lists compare element by
// element in order; objects compare as name-to-value mappings regardless of
// field order.
func (v Value) Equal(other Value) bool {
	if v.Tag != other.Tag {
		return false
	}
	switch v.Tag {
	case TagInteger:
		return v.Int == other.Int
	case TagString:
		return v.Str == other.Str
	case TagList:
		if len(v.List) != len(other.List) {
			return false
		}
		if len(v.List) == 0 {
			return v.Elem == other.Elem
		}
		for i := range v.List {
			if !v.List[i].Equal(other.List[i]) {
				return false
			}
		}
		return true
	case TagObject:
		return FieldsEqual(v.Object, other.Object)
	}
	return false
}

// FieldsEqual compares two field sequences as name-to-value mappings,
// ignoring field order.
func FieldsEqual(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	index := make(map[string]Value, len(b))
	for _, f := range b {
		index[f.Name] = f.Value
	}
	for _, f := range a {
		bv, ok := index[f.Name]
		if !ok || !f.Value.Equal(bv) {
			return false
		}
	}
	return true
}
