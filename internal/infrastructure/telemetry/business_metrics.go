package telemetry

import (
	"context"

	"github.com/freshmart/backend/internal/domain/finance"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/domain/trade"
)

// BusinessMetricsHandler turns domain events into business counters.
type BusinessMetricsHandler struct {
	metrics *Metrics
}

// NewBusinessMetricsHandler creates a handler that feeds m.
func NewBusinessMetricsHandler(m *Metrics) *BusinessMetricsHandler {
	return &BusinessMetricsHandler{metrics: m}
}

// EventTypes implements shared.EventHandler.
func (h *BusinessMetricsHandler) EventTypes() []string {
	return []string{
		trade.EventTypeOrderPlaced,
		trade.EventTypeOrderStatusChanged,
		trade.EventTypeSaleRecorded,
		finance.EventTypePaymentCompleted,
	}
}

// Handle implements shared.EventHandler.
func (h *BusinessMetricsHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	m := h.metrics
	switch e := event.(type) {
	case *trade.OrderPlacedEvent:
		m.ordersPlaced.Inc()
		units := 0
		for _, item := range e.Items {
			units += item.Quantity
		}
		m.stockUnitsTaken.WithLabelValues("order").Add(float64(units))
	case *trade.OrderStatusChangedEvent:
		m.orderStatusChanges.WithLabelValues(string(e.ToStatus)).Inc()
	case *trade.SaleRecordedEvent:
		m.salesRecorded.Inc()
		m.stockUnitsTaken.WithLabelValues("sale").Add(float64(e.Quantity))
		m.salesRevenue.Add(e.TotalAmount.InexactFloat64())
	case *finance.PaymentCompletedEvent:
		m.paymentsCompleted.WithLabelValues(string(e.Method)).Inc()
	}
	return nil
}

var _ shared.EventHandler = (*BusinessMetricsHandler)(nil)
