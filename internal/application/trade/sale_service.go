package trade

import (
	"context"

	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/partner"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/domain/trade"
	"github.com/freshmart/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleService records direct sales and reports on them
type SaleService struct {
	saleRepo       trade.SaleRepository
	productRepo    catalog.ProductRepository
	customerRepo   partner.CustomerRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(
	saleRepo trade.SaleRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// SetEventPublisher sets the publisher used after sales are committed
func (s *SaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// AddSale records a sale and takes its quantity from stock in one transaction
func (s *SaleService) AddSale(ctx context.Context, req AddSaleRequest) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "add",
		telemetry.SpanAttrProductID, req.Product.String(),
		telemetry.SpanAttrQuantity, req.Quantity)
	defer span.End()

	var customer *partner.Customer
	if req.Customer != nil {
		c, err := s.customerRepo.FindByID(ctx, *req.Customer)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		customer = c
	}

	var (
		sale    *trade.Sale
		product *catalog.Product
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		product, err = repos.ProductRepo().FindByID(ctx, req.Product)
		if err != nil {
			return err
		}
		if err := repos.ProductRepo().DecrementStock(ctx, product.ID, req.Quantity); err != nil {
			return err
		}

		total := product.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))
		if req.TotalAmount != nil {
			total = *req.TotalAmount
		}
		sale, err = trade.NewSale(product.ID, req.Quantity, total, req.Customer)
		if err != nil {
			return err
		}
		return repos.SaleRepo().Save(ctx, sale)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	sale.ProductName = product.Name
	telemetry.SetAttributes(span, telemetry.SpanAttrAmount, sale.TotalAmount.String())
	s.logger.Info("Sale recorded",
		zap.String("sale_id", sale.ID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Int("quantity", sale.Quantity),
		zap.String("total_amount", sale.TotalAmount.String()))

	publishEvents(ctx, s.eventPublisher, s.logger, sale)

	var customers map[uuid.UUID]partner.Customer
	if customer != nil {
		customers = map[uuid.UUID]partner.Customer{customer.ID: *customer}
	}
	resp := ToSaleResponse(sale, customers, map[uuid.UUID]catalog.Product{product.ID: *product})
	return &resp, nil
}

// List returns all sales, newest first, with product and customer populated
func (s *SaleService) List(ctx context.Context) ([]SaleResponse, error) {
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var customerIDs, productIDs []uuid.UUID
	for _, sale := range sales {
		productIDs = append(productIDs, sale.ProductID)
		if sale.CustomerID != nil {
			customerIDs = append(customerIDs, *sale.CustomerID)
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

	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i], customers, products)
	}
	return responses, nil
}

// Summary returns total revenue and number of sales; zero when there are none
func (s *SaleService) Summary(ctx context.Context) (*SalesSummaryResponse, error) {
	summary, err := s.saleRepo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return &SalesSummaryResponse{TotalRevenue: summary.TotalRevenue, Count: summary.Count}, nil
}
