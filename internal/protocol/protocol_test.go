package protocol

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestRoundTripEncodeDecode(t *testing.T) {
	fields := []Field{
		NewField("user_id", NewInt(1001)),
		NewField("name", NewString("Alice")),
		NewField("scores", NewList(NewInt(100), NewInt(200), NewInt(300))),
		NewField("meta", NewObject(
			NewField("region", NewString("outer-rim")),
			NewField("tags", NewList(NewString("vip"), NewString("beta"))),
		)),
	}

	buf, err := Encode(fields)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != len(fields) {
		t.Fatalf("expected %d fields, got %d", len(fields), len(decoded))
	}
	for i := range fields {
		if decoded[i].Name != fields[i].Name {
			t.Fatalf("field %d: name %q, want %q", i, decoded[i].Name, fields[i].Name)
		}
		if !decoded[i].Value.Equal(fields[i].Value) {
			t.Fatalf("field %q: value mismatch: %+v", fields[i].Name, decoded[i].Value)
		}
	}

	buf2, err := Encode(decoded)
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if !bytes.Equal(buf, buf2) {
		t.Fatalf("round-trip bytes mismatch")
	}
}

func TestEncodeSimpleMessageLayout(t *testing.T) {
	fields := []Field{
		NewField("user_id", NewInt(1001)),
		NewField("name", NewString("Alice")),
		NewField("scores", NewList(NewInt(100), NewInt(200), NewInt(300))),
	}
	buf, err := Encode(fields)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(buf, simpleMessage()) {
		t.Fatalf("layout mismatch:\n got %x\nwant %x", buf, simpleMessage())
	}
}

func TestDecodeSimpleMessageLayout(t *testing.T) {
	fields, err := Decode(simpleMessage())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []Field{
		NewField("user_id", NewInt(1001)),
		NewField("name", NewString("Alice")),
		NewField("scores", NewList(NewInt(100), NewInt(200), NewInt(300))),
	}
	if !FieldsEqual(fields, want) {
		t.Fatalf("decoded fields mismatch: %+v", fields)
	}
}

func TestEncodeListOfObjectsLayout(t *testing.T) {
	fields := []Field{
		NewField("timestamp", NewInt(1698765432)),
		NewField("trades", NewList(
			NewObject(
				NewField("id", NewInt(1)),
				NewField("price", NewInt(100)),
			),
			NewObject(
				NewField("id", NewInt(2)),
				NewField("price", NewInt(200)),
			),
		)),
	}
	buf, err := Encode(fields)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(buf, tradesMessage()) {
		t.Fatalf("layout mismatch:\n got %x\nwant %x", buf, tradesMessage())
	}
}

func TestHeaderLengthMatchesOutput(t *testing.T) {
	fields := []Field{
		NewField("symbol", NewString("GX-CR")),
		NewField("bid", NewInt(4120)),
	}
	buf, err := Encode(fields)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	declared := int(binary.BigEndian.Uint16(buf[2:4]))
	if declared != len(buf) {
		t.Fatalf("header declares %d bytes, output is %d", declared, len(buf))
	}
}

func TestNestedObjectRoundTrip(t *testing.T) {
	fields := []Field{
		NewField("account", NewObject(
			NewField("profile", NewObject(
				NewField("aliases", NewList(NewString("nova"), NewString("drift"))),
			)),
		)),
	}
	buf, err := Encode(fields)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !FieldsEqual(decoded, fields) {
		t.Fatalf("nested structure mismatch: %+v", decoded)
	}
}

// simpleMessage is the 69-byte reference encoding of
// user_id=1001, name="Alice", scores=[100, 200, 300].
func simpleMessage() []byte {
	return []byte{
		// Header: version, 3 fields, total length 69.
		0x01, 0x03, 0x00, 0x45,
		// user_id (integer 1001).
		0x07, 0x75, 0x73, 0x65, 0x72, 0x5F, 0x69, 0x64,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, 0xE9,
		// name (string "Alice").
		0x04, 0x6E, 0x61, 0x6D, 0x65,
		0x02, 0x00, 0x05, 0x41, 0x6C, 0x69, 0x63, 0x65,
		// scores (list of 3 integers).
		0x06, 0x73, 0x63, 0x6F, 0x72, 0x65, 0x73,
		0x03, 0x01, 0x00, 0x03,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x64,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xC8,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x2C,
	}
}

// tradesMessage is the 90-byte reference encoding of
// timestamp=1698765432, trades=[{id:1, price:100}, {id:2, price:200}].
func tradesMessage() []byte {
	return []byte{
		// Header: version, 2 fields, total length 90.
		0x01, 0x02, 0x00, 0x5A,
		// timestamp (integer 1698765432).
		0x09, 0x74, 0x69, 0x6D, 0x65, 0x73, 0x74, 0x61, 0x6D, 0x70,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x65, 0x41, 0x1A, 0x78,
		// trades (list of 2 objects).
		0x06, 0x74, 0x72, 0x61, 0x64, 0x65, 0x73,
		0x03, 0x04, 0x00, 0x02,
		// Object 1: id=1, price=100.
		0x02,
		0x02, 0x69, 0x64,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
		0x05, 0x70, 0x72, 0x69, 0x63, 0x65,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x64,
		// Object 2: id=2, price=200.
		0x02,
		0x02, 0x69, 0x64,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02,
		0x05, 0x70, 0x72, 0x69, 0x63, 0x65,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xC8,
	}
}
