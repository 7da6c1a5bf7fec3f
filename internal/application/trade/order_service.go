package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/partner"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/domain/trade"
	"github.com/freshmart/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order placement and order administration
type OrderService struct {
	orderRepo      trade.OrderRepository
	productRepo    catalog.ProductRepository
	customerRepo   partner.CustomerRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo trade.OrderRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// SetEventPublisher sets the publisher used after orders are committed
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// PlaceOrder verifies and takes stock for every line and persists the order,
// all inside one transaction. Any failing line rolls back the stock already
// taken for earlier lines.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "place",
		telemetry.SpanAttrUserID, userID.String(),
		telemetry.SpanAttrItemsCount, len(req.OrderItems))
	defer span.End()

	if len(req.OrderItems) == 0 {
		return nil, trade.ErrNoOrderItems
	}

	lines := make([]trade.ItemRequest, len(req.OrderItems))
	for i, item := range req.OrderItems {
		lines[i] = trade.ItemRequest{ProductID: item.Product, Quantity: item.Quantity}
	}
	lines = trade.MergeItemQuantities(lines)

	var customer *partner.Customer
	if req.Customer != nil {
		c, err := s.customerRepo.FindByID(ctx, *req.Customer)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		customer = c
	}

	address := trade.ShippingAddress{
		Address:    req.ShippingAddress.Address,
		City:       req.ShippingAddress.City,
		PostalCode: req.ShippingAddress.PostalCode,
		Country:    req.ShippingAddress.Country,
	}

	var order *trade.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		products := repos.ProductRepo()
		items := make([]trade.OrderItem, 0, len(lines))
		for _, line := range lines {
			item, err := takeStock(ctx, products, line)
			if err != nil {
				return err
			}
			items = append(items, item)
		}

		var err error
		order, err = trade.NewOrder(userID, req.Customer, items, address)
		if err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Info("Order rejected",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderID, order.ID.String(),
		telemetry.SpanAttrAmount, order.TotalPrice.String())
	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("total_price", order.TotalPrice.String()),
		zap.Int("items", len(order.Items)))

	publishEvents(ctx, s.eventPublisher, s.logger, order)

	var customers map[uuid.UUID]partner.Customer
	if customer != nil {
		customers = map[uuid.UUID]partner.Customer{customer.ID: *customer}
	}
	resp := ToOrderResponse(order, customers, nil)
	return &resp, nil
}

// takeStock loads the product, checks it can be ordered and decrements its
// stock. The decrement itself is conditional, so a concurrent order that got
// there first still surfaces as insufficient stock.
func takeStock(ctx context.Context, products catalog.ProductRepository, line trade.ItemRequest) (trade.OrderItem, error) {
	product, err := products.FindByID(ctx, line.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return trade.OrderItem{}, shared.NewDomainError(shared.CodeNotFound,
				fmt.Sprintf("Product not found: %s", line.ProductID))
		}
		return trade.OrderItem{}, err
	}
	if err := product.CheckOrderable(line.Quantity); err != nil {
		return trade.OrderItem{}, err
	}
	if err := products.DecrementStock(ctx, product.ID, line.Quantity); err != nil {
		return trade.OrderItem{}, err
	}
	return trade.OrderItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    line.Quantity,
		Price:       product.Price,
	}, nil
}

// List returns every order with customer and product names populated
func (s *OrderService) List(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, orders)
}

// ListByUser returns the orders placed by a user
func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, orders)
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	responses, err := s.toResponses(ctx, []trade.Order{*order})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// UpdateStatus applies status and payment status changes. Cancelling returns
// the order's items to stock in the same transaction; since a cancelled
// order cannot change status again, stock is restored at most once.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update_status",
		telemetry.SpanAttrOrderID, id.String(),
		telemetry.SpanAttrStatus, req.Status)
	defer span.End()

	var status *trade.OrderStatus
	if req.Status != "" {
		v := trade.OrderStatus(req.Status)
		status = &v
	}
	var paymentStatus *trade.PaymentStatus
	if req.PaymentStatus != "" {
		v := trade.PaymentStatus(req.PaymentStatus)
		paymentStatus = &v
	}

	var order *trade.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		cancelled, err := order.UpdateStatus(status, paymentStatus)
		if err != nil {
			return err
		}
		if cancelled {
			for _, item := range order.Items {
				if err := repos.ProductRepo().IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
			telemetry.AddEvent(span, "stock_restored", telemetry.SpanAttrItemsCount, len(order.Items))
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", id.String()),
		zap.String("status", string(order.Status)),
		zap.String("payment_status", string(order.PaymentStatus)))

	publishEvents(ctx, s.eventPublisher, s.logger, order)

	responses, err := s.toResponses(ctx, []trade.Order{*order})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// Delete removes an order and its lines
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Order deleted", zap.String("order_id", id.String()))
	return nil
}

func (s *OrderService) toResponses(ctx context.Context, orders []trade.Order) ([]OrderResponse, error) {
	var customerIDs, productIDs []uuid.UUID
	for _, o := range orders {
		if o.CustomerID != nil {
			customerIDs = append(customerIDs, *o.CustomerID)
		}
		for _, item := range o.Items {
			productIDs = append(productIDs, item.ProductID)
		}
	}
	customers, err := loadCustomers(ctx, s.customerRepo, customerIDs)
	if err != nil {
		return nil, err
	}
	products, err := loadProducts(ctx, s.productRepo, productIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i], customers, products)
	}
	return responses, nil
}
