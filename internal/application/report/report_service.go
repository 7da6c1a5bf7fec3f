package report

import (
	"context"
	"time"

	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/partner"
	"github.com/freshmart/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ReportService provides dashboard statistics and farmer sales reports
type ReportService struct {
	productRepo  catalog.ProductRepository
	customerRepo partner.CustomerRepository
	orderRepo    trade.OrderRepository
	saleRepo     trade.SaleRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	orderRepo trade.OrderRepository,
	saleRepo trade.SaleRepository,
) *ReportService {
	return &ReportService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		saleRepo:     saleRepo,
	}
}

// ===================== Dashboard =====================

// SalesStats is the sales part of the dashboard
type SalesStats struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	Count        int64           `json:"count"`
}

// DashboardStatsResponse represents the back-office dashboard counters
type DashboardStatsResponse struct {
	Products  int64      `json:"products"`
	Customers int64      `json:"customers"`
	Orders    int64      `json:"orders"`
	Sales     SalesStats `json:"sales"`
}

// DashboardStats collects the dashboard counters concurrently
func (s *ReportService) DashboardStats(ctx context.Context) (*DashboardStatsResponse, error) {
	var stats DashboardStatsResponse
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.productRepo.Count(ctx)
		stats.Products = n
		return err
	})
	g.Go(func() error {
		n, err := s.customerRepo.Count(ctx)
		stats.Customers = n
		return err
	})
	g.Go(func() error {
		n, err := s.orderRepo.Count(ctx)
		stats.Orders = n
		return err
	})
	g.Go(func() error {
		summary, err := s.saleRepo.Summary(ctx)
		stats.Sales = SalesStats{TotalRevenue: summary.TotalRevenue, Count: summary.Count}
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ===================== Farmer sales =====================

// FarmerSaleCustomer is the buyer shown on a farmer sale
type FarmerSaleCustomer struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// FarmerSaleItem is one of the farmer's lines in an order
type FarmerSaleItem struct {
	Product  uuid.UUID       `json:"product"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// FarmerSaleResponse is an order reduced to the farmer's own lines
type FarmerSaleResponse struct {
	ID         uuid.UUID           `json:"id"`
	Customer   *FarmerSaleCustomer `json:"customer,omitempty"`
	Items      []FarmerSaleItem    `json:"items"`
	TotalPrice decimal.Decimal     `json:"totalPrice"`
	Status     string              `json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// FarmerSales returns the orders that contain the farmer's products, keeping
// only the farmer's lines. TotalPrice covers the kept lines only.
func (s *ReportService) FarmerSales(ctx context.Context, farmerID uuid.UUID) ([]FarmerSaleResponse, error) {
	productIDs, err := s.productRepo.FindIDsByFarmer(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	if len(productIDs) == 0 {
		return []FarmerSaleResponse{}, nil
	}

	orders, err := s.orderRepo.FindContainingProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	owned := make(map[uuid.UUID]struct{}, len(productIDs))
	for _, id := range productIDs {
		owned[id] = struct{}{}
	}

	customers, err := s.customersFor(ctx, orders)
	if err != nil {
		return nil, err
	}

	sales := make([]FarmerSaleResponse, 0, len(orders))
	for i := range orders {
		order := &orders[i]
		kept := order.ItemsForProducts(owned)
		if len(kept) == 0 {
			continue
		}

		sale := FarmerSaleResponse{
			ID:         order.ID,
			Items:      make([]FarmerSaleItem, len(kept)),
			TotalPrice: decimal.Zero,
			Status:     string(order.Status),
			CreatedAt:  order.CreatedAt,
		}
		for j, item := range kept {
			sale.Items[j] = FarmerSaleItem{
				Product:  item.ProductID,
				Name:     item.ProductName,
				Quantity: item.Quantity,
				Price:    item.Price,
			}
			sale.TotalPrice = sale.TotalPrice.Add(item.Subtotal())
		}
		if order.CustomerID != nil {
			if c, ok := customers[*order.CustomerID]; ok {
				sale.Customer = &FarmerSaleCustomer{Name: c.Name, Email: c.Email, PhoneNumber: c.PhoneNumber}
			}
		}
		sales = append(sales, sale)
	}
	return sales, nil
}

func (s *ReportService) customersFor(ctx context.Context, orders []trade.Order) (map[uuid.UUID]partner.Customer, error) {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, o := range orders {
		if o.CustomerID == nil {
			continue
		}
		if _, ok := seen[*o.CustomerID]; ok {
			continue
		}
		seen[*o.CustomerID] = struct{}{}
		ids = append(ids, *o.CustomerID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	customers, err := s.customerRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]partner.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}
	return byID, nil
}
