// Package partner provides the typed client for the backend's customer
// endpoints.
package partner

import (
	"context"
	"fmt"

	"github.com/softpan/console/internal/application/query"
	"github.com/softpan/console/internal/infrastructure/api"
	"github.com/softpan/console/internal/infrastructure/validation"
)

const keyCustomers = "clientes"

// CustomerService handles customer management operations
type CustomerService struct {
	gateway *api.Client
	queries *query.Client
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(gateway *api.Client, queries *query.Client) *CustomerService {
	return &CustomerService{
		gateway: gateway,
		queries: queries,
	}
}

// List returns every customer, cached
func (s *CustomerService) List(ctx context.Context) ([]Customer, error) {
	return query.Fetch(ctx, s.queries, query.Key(keyCustomers), func(ctx context.Context) ([]Customer, error) {
		var customers []Customer
		if err := s.gateway.Get(ctx, "/clientes", &customers); err != nil {
			return nil, err
		}
		return customers, nil
	})
}

// Get returns a single customer by ID, cached
func (s *CustomerService) Get(ctx context.Context, id int64) (*Customer, error) {
	return query.Fetch(ctx, s.queries, query.Key(keyCustomers, fmt.Sprint(id)), func(ctx context.Context) (*Customer, error) {
		var customer Customer
		if err := s.gateway.Get(ctx, fmt.Sprintf("/clientes/%d", id), &customer); err != nil {
			return nil, err
		}
		return &customer, nil
	})
}

// Create registers a customer and invalidates cached customer queries
func (s *CustomerService) Create(ctx context.Context, form CustomerForm) (*Customer, error) {
	if err := validation.Struct(form); err != nil {
		return nil, err
	}
	return query.Mutate(ctx, s.queries, func(ctx context.Context) (*Customer, error) {
		var created Customer
		if err := s.gateway.Post(ctx, "/clientes", form, &created); err != nil {
			return nil, err
		}
		return &created, nil
	}, keyCustomers)
}

// Update updates a customer and invalidates cached customer queries
func (s *CustomerService) Update(ctx context.Context, id int64, form CustomerForm) (*Customer, error) {
	if err := validation.Struct(form); err != nil {
		return nil, err
	}
	body := struct {
		ID int64 `json:"id"`
		CustomerForm
	}{ID: id, CustomerForm: form}

	return query.Mutate(ctx, s.queries, func(ctx context.Context) (*Customer, error) {
		var updated Customer
		if err := s.gateway.Put(ctx, fmt.Sprintf("/clientes/%d", id), body, &updated); err != nil {
			return nil, err
		}
		return &updated, nil
	}, keyCustomers)
}

// Deactivate marks a customer inactive and invalidates cached customer queries
func (s *CustomerService) Deactivate(ctx context.Context, id int64) error {
	_, err := query.Mutate(ctx, s.queries, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.gateway.Delete(ctx, fmt.Sprintf("/clientes/%d", id))
	}, keyCustomers)
	return err
}
