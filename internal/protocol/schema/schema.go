// Package schema validates decoded messages against per-kind field
// requirements. The codec itself is schema-free; this layer is what the
// transport uses to accept or reject a decoded message.
package schema

import (
	"fmt"

	"github.com/galacticex/exchange/internal/protocol"
)

// Message kinds carried over the exchange transport.
const (
	KindOrderSubmit   = "order.submit"
	KindOrderAck      = "order.ack"
	KindQuoteRequest  = "quote.request"
	KindQuoteResponse = "quote.response"
)

type Requirement struct {
	Name string
	Tag  protocol.Tag
}

type ValidationError struct {
	Kind   string
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema: kind=%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("schema: kind=%s field=%s: %s", e.Kind, e.Field, e.Reason)
}

var requirements = map[string][]Requirement{
	KindOrderSubmit: {
		{"user_id", protocol.TagInteger},
		{"symbol", protocol.TagString},
		{"side", protocol.TagString},
		{"quantity", protocol.TagInteger},
		{"price", protocol.TagInteger},
	},
	KindOrderAck: {
		{"order_id", protocol.TagInteger},
		{"status", protocol.TagString},
		{"timestamp", protocol.TagInteger},
	},
	KindQuoteRequest: {
		{"symbol", protocol.TagString},
	},
	KindQuoteResponse: {
		{"symbol", protocol.TagString},
		{"bid", protocol.TagInteger},
		{"ask", protocol.TagInteger},
		{"timestamp", protocol.TagInteger},
	},
}

// Validate enforces required fields and required field tags for a message
// kind. Unknown extra fields are ignored.
func Validate(kind string, fields []protocol.Field) error {
	reqs, ok := requirements[kind]
	if !ok {
		return ValidationError{Kind: kind, Reason: "unknown message kind"}
	}
	for _, req := range reqs {
		f, found := protocol.GetField(fields, req.Name)
		if !found {
			return ValidationError{Kind: kind, Field: req.Name, Reason: "missing required field"}
		}
		if f.Value.Tag != req.Tag {
			return ValidationError{
				Kind:   kind,
				Field:  req.Name,
				Reason: fmt.Sprintf("tag mismatch: got %s want %s", f.Value.Tag, req.Tag),
			}
		}
	}
	return nil
}
