// SPDX-License-Identifier: MIT

package emit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys set on every span.
const (
	AttrRunID     = "polyopt.run_id"
	AttrStep      = "polyopt.step"
	AttrAlgorithm = "polyopt.algorithm"
	attrPrefix    = "polyopt."
)

// OTelEmitter turns every event into one short span named after Event.Msg.
// Meta entries become "polyopt.<key>" attributes; an "error" entry marks the
// span as failed.
type OTelEmitter struct {
	tracer trace.Tracer
}

// NewOTelEmitter creates an emitter backed by tracer.
func NewOTelEmitter(tracer trace.Tracer) *OTelEmitter {
	return &OTelEmitter{tracer: tracer}
}

// Emit records event as a span.
func (o *OTelEmitter) Emit(event Event) {
	_, span := o.tracer.Start(context.Background(), event.Msg)
	defer span.End()

	span.SetAttributes(
		attribute.String(AttrRunID, event.RunID),
		attribute.Int(AttrStep, event.Step),
		attribute.String(AttrAlgorithm, event.Algorithm),
	)
	for _, key := range sortedKeys(event.Meta) {
		span.SetAttributes(toAttribute(attrPrefix+key, event.Meta[key]))
	}

	if msg, ok := event.Meta["error"].(string); ok {
		span.SetStatus(codes.Error, msg)
		span.RecordError(errors.New(msg))
	}
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []float64:
		return attribute.Float64Slice(key, v)
	case time.Duration:
		return attribute.Int64(key, int64(v/time.Millisecond))
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
