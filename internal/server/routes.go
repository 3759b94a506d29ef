package server

import (
	"errors"
	"hash/fnv"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/galacticex/exchange/internal/observability"
	"github.com/galacticex/exchange/internal/protocol"
	"github.com/galacticex/exchange/internal/protocol/schema"
)

const wireContentType = "application/octet-stream"

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"uptime":    time.Since(s.started).String(),
			"component": "exchange-api",
			"version":   serviceVersion,
		})
	})

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":     true,
			"uptime":    time.Since(s.started).String(),
			"component": "exchange-api",
			"version":   serviceVersion,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/v1")
	v1.POST("/echo", s.handleEcho)
	v1.POST("/inspect", s.handleInspect)
	v1.POST("/orders", s.handleOrder)
	v1.POST("/quotes", s.handleQuote)
}

func (s *Server) handleEcho(c *gin.Context) {
	fields, ok := s.readMessage(c)
	if !ok {
		return
	}
	out, err := protocol.Encode(fields)
	observability.RecordCodecOp("encode", err)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, wireContentType, out)
}

func (s *Server) handleInspect(c *gin.Context) {
	fields, ok := s.readMessage(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"field_count": len(fields),
		"fields":      renderFields(fields),
	})
}

func (s *Server) handleOrder(c *gin.Context) {
	fields, ok := s.readMessage(c)
	if !ok {
		return
	}
	if err := schema.Validate(schema.KindOrderSubmit, fields); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ack := []protocol.Field{
		protocol.NewField("order_id", protocol.NewInt(s.orderSeq.Add(1))),
		protocol.NewField("status", protocol.NewString("accepted")),
		protocol.NewField("timestamp", protocol.NewInt(time.Now().UnixMilli())),
	}
	out, err := protocol.Encode(ack)
	observability.RecordCodecOp("encode", err)
	if err != nil {
		s.logger.Error().Err(err).Msg("order_ack_encode_failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode ack"})
		return
	}
	c.Data(http.StatusOK, wireContentType, out)
}

func (s *Server) handleQuote(c *gin.Context) {
	fields, ok := s.readMessage(c)
	if !ok {
		return
	}
	if err := schema.Validate(schema.KindQuoteRequest, fields); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	symbol, _ := protocol.GetField(fields, "symbol")
	bid, ask := quoteFor(symbol.Value.Str)
	quote := []protocol.Field{
		protocol.NewField("symbol", protocol.NewString(symbol.Value.Str)),
		protocol.NewField("bid", protocol.NewInt(bid)),
		protocol.NewField("ask", protocol.NewInt(ask)),
		protocol.NewField("timestamp", protocol.NewInt(time.Now().UnixMilli())),
	}
	out, err := protocol.Encode(quote)
	observability.RecordCodecOp("encode", err)
	if err != nil {
		s.logger.Error().Err(err).Msg("quote_encode_failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode quote"})
		return
	}
	c.Data(http.StatusOK, wireContentType, out)
}

// quoteFor derives a stable indicative price per symbol until a real
// matching engine backs this route.
func quoteFor(symbol string) (bid, ask int64) {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	mid := int64(h.Sum32()%9000) + 1000
	return mid - 5, mid + 5
}

// readMessage reads a bounded request body and decodes it into fields,
// writing the error response itself when anything fails.
func (s *Server) readMessage(c *gin.Context) ([]protocol.Field, bool) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, s.maxBody+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return nil, false
	}
	if int64(len(body)) > s.maxBody {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body exceeds limit"})
		return nil, false
	}

	fields, err := protocol.Decode(body)
	observability.RecordCodecOp("decode", err)
	if err != nil {
		c.JSON(statusForDecodeError(err), gin.H{"error": err.Error()})
		return nil, false
	}
	return fields, true
}

// statusForDecodeError separates well-formed messages that break a bound
// from messages that are not parseable at all.
func statusForDecodeError(err error) int {
	if errors.Is(err, protocol.ErrLimitExceeded) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

// renderFields keeps field order, which a plain JSON object would lose.
func renderFields(fields []protocol.Field) []gin.H {
	out := make([]gin.H, 0, len(fields))
	for _, f := range fields {
		out = append(out, gin.H{
			"name":  f.Name,
			"type":  f.Value.Tag.String(),
			"value": renderValue(f.Value),
		})
	}
	return out
}

func renderValue(v protocol.Value) any {
	switch v.Tag {
	case protocol.TagInteger:
		return v.Int
	case protocol.TagString:
		return v.Str
	case protocol.TagList:
		items := make([]any, 0, len(v.List))
		for _, el := range v.List {
			items = append(items, renderValue(el))
		}
		return items
	case protocol.TagObject:
		return renderFields(v.Object)
	}
	return nil
}
