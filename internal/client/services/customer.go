package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/client"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
)

// CustomerService is the customer use-case surface of the console.
// Create and Update validate their input first; a *models.ValidationError
// means nothing was sent.
type CustomerService interface {
	List(ctx context.Context, filter models.CustomerFilter) (models.CustomerPage, error)
	Search(ctx context.Context, query string) ([]models.Customer, error)
	Get(ctx context.Context, id string) (*models.Customer, error)
	Create(ctx context.Context, in models.CustomerInput) (*models.Customer, error)
	Update(ctx context.Context, id string, in models.CustomerInput) (*models.Customer, error)
	Delete(ctx context.Context, id string) error
}

type customerService struct {
	client client.Client
	now    func() time.Time
}

func NewCustomerService(c client.Client) CustomerService {
	return &customerService{client: c, now: time.Now}
}

// ValidateID checks that id is a record UUID.
func ValidateID(id string) error {
	if err := uuid.Validate(strings.TrimSpace(id)); err != nil {
		return &models.ValidationError{Fields: map[string]string{"id": "must be a valid UUID"}}
	}
	return nil
}

func (s *customerService) List(ctx context.Context, filter models.CustomerFilter) (models.CustomerPage, error) {
	return s.client.ListCustomers(ctx, filter)
}

func (s *customerService) Search(ctx context.Context, query string) ([]models.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &models.ValidationError{Fields: map[string]string{"q": "search text is required"}}
	}
	return s.client.SearchCustomers(ctx, query)
}

func (s *customerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	return s.client.GetCustomer(ctx, strings.TrimSpace(id))
}

func (s *customerService) Create(ctx context.Context, in models.CustomerInput) (*models.Customer, error) {
	if err := models.ValidateCustomer(in, false, s.now()); err != nil {
		return nil, err
	}
	return s.client.CreateCustomer(ctx, in)
}

func (s *customerService) Update(ctx context.Context, id string, in models.CustomerInput) (*models.Customer, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	if err := models.ValidateCustomer(in, true, s.now()); err != nil {
		return nil, err
	}
	return s.client.UpdateCustomer(ctx, strings.TrimSpace(id), in)
}

func (s *customerService) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	return s.client.DeleteCustomer(ctx, strings.TrimSpace(id))
}
