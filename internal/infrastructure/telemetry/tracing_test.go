package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func TestStartServiceSpan(t *testing.T) {
	recorder := installRecorder(t)
	orderID := uuid.New()

	ctx, span := StartServiceSpan(context.Background(), "order", "place",
		SpanAttrOrderID, orderID, SpanAttrItemsCount, 3)
	assert.NotEmpty(t, GetTraceID(ctx))
	SetAttributes(span, SpanAttrStatus, "Pending", "ignored")
	AddEvent(span, "stock_taken", SpanAttrQuantity, 2)
	RecordError(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	got := spans[0]
	assert.Equal(t, "order.place", got.Name())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Contains(t, got.Attributes(), attribute.String(SpanAttrOrderID, orderID.String()))
	assert.Contains(t, got.Attributes(), attribute.Int(SpanAttrItemsCount, 3))
	assert.Contains(t, got.Attributes(), attribute.String(SpanAttrStatus, "Pending"))
	require.Len(t, got.Events(), 2)
	assert.Equal(t, "stock_taken", got.Events()[0].Name)
}

func TestHelpers_NilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		SetAttributes(nil, "a", 1)
		AddEvent(nil, "e")
		RecordError(nil, errors.New("x"))
	})
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestToAttribute(t *testing.T) {
	assert.Equal(t, attribute.Bool("b", true), toAttribute("b", true))
	assert.Equal(t, attribute.Float64("f", 1.5), toAttribute("f", 1.5))
	assert.Equal(t, attribute.Int64("i", 7), toAttribute("i", int64(7)))
	assert.Equal(t, attribute.StringSlice("s", []string{"a"}), toAttribute("s", []string{"a"}))
	assert.Equal(t, attribute.String("x", "{1}"), toAttribute("x", struct{ A int }{1}))
}
