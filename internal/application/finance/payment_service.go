package finance

import (
	"context"
	"errors"

	"github.com/freshmart/backend/internal/domain/finance"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/domain/trade"
	"github.com/freshmart/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService records payments and settles the orders they pay for
type PaymentService struct {
	paymentRepo    finance.PaymentRepository
	orderRepo      trade.OrderRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo finance.PaymentRepository,
	orderRepo trade.OrderRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		txScope:     txScope,
		logger:      logger,
	}
}

// SetEventPublisher sets the publisher used after payments are committed
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// AddPayment records a payment. A completed payment marks its order as paid
// in the same transaction.
func (s *PaymentService) AddPayment(ctx context.Context, req AddPaymentRequest) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "add",
		telemetry.SpanAttrOrderID, req.Order.String(),
		telemetry.SpanAttrAmount, req.Amount.String())
	defer span.End()

	var (
		payment *finance.Payment
		order   *trade.Order
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, req.Order)
		if err != nil {
			return err
		}
		payment, err = finance.NewPayment(order.ID, req.Amount,
			finance.PaymentMethod(req.PaymentMethod), finance.PaymentStatus(req.Status), req.TransactionID)
		if err != nil {
			return err
		}
		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return err
		}
		if payment.IsCompleted() {
			order.MarkPaid()
			return repos.OrderRepo().Save(ctx, order)
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("order_id", order.ID.String()),
		zap.String("amount", payment.Amount.String()),
		zap.String("method", string(payment.Method)),
		zap.String("status", string(payment.Status)))

	if s.eventPublisher != nil {
		for _, event := range payment.GetDomainEvents() {
			if err := s.eventPublisher.Publish(ctx, event); err != nil {
				s.logger.Warn("Failed to publish domain event",
					zap.String("event_type", event.EventType()),
					zap.Error(err))
			}
		}
	}
	payment.ClearDomainEvents()

	resp := ToPaymentResponse(payment, order)
	return &resp, nil
}

// List returns all payments with their order summary
func (s *PaymentService) List(ctx context.Context) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	orders := make(map[uuid.UUID]*trade.Order)
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		orderID := payments[i].OrderID
		order, seen := orders[orderID]
		if !seen {
			order, err = s.findOrder(ctx, orderID)
			if err != nil {
				return nil, err
			}
			orders[orderID] = order
		}
		responses[i] = ToPaymentResponse(&payments[i], order)
	}
	return responses, nil
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	order, err := s.findOrder(ctx, payment.OrderID)
	if err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(payment, order)
	return &resp, nil
}

// findOrder returns nil without error when the order has been deleted
func (s *PaymentService) findOrder(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return order, nil
}
