package partner

import (
	"context"
	"strings"

	"github.com/freshmart/backend/internal/domain/partner"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var errCustomerExists = shared.NewDomainError(shared.CodeAlreadyExists, "Customer already exists")

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// List returns all customers
func (s *CustomerService) List(ctx context.Context) ([]CustomerResponse, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Create creates a customer with a unique email
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Email, req.PhoneNumber, req.Address, req.City)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, customer.Email, nil); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Update applies a partial update
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" && email != customer.Email {
		if err := s.ensureEmailFree(ctx, email, &customer.ID); err != nil {
			return nil, err
		}
	}
	if err := customer.Update(partner.CustomerUpdate{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		City:        req.City,
	}); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Delete removes a customer
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}

func (s *CustomerService) ensureEmailFree(ctx context.Context, email string, excludeID *uuid.UUID) error {
	exists, err := s.customerRepo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return errCustomerExists
	}
	return nil
}
