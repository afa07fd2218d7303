// Package catalog provides the typed client for the backend's product
// endpoints.
package catalog

import (
	"context"
	"fmt"

	"github.com/softpan/console/internal/application/query"
	"github.com/softpan/console/internal/domain/shared"
	"github.com/softpan/console/internal/infrastructure/api"
	"github.com/softpan/console/internal/infrastructure/validation"
)

const keyProducts = "productos"

// ProductService handles product catalog operations
type ProductService struct {
	gateway *api.Client
	queries *query.Client
}

// NewProductService creates a new ProductService
func NewProductService(gateway *api.Client, queries *query.Client) *ProductService {
	return &ProductService{
		gateway: gateway,
		queries: queries,
	}
}

// List returns every product, cached
func (s *ProductService) List(ctx context.Context) ([]Product, error) {
	return query.Fetch(ctx, s.queries, query.Key(keyProducts), func(ctx context.Context) ([]Product, error) {
		var products []Product
		if err := s.gateway.Get(ctx, "/productos", &products); err != nil {
			return nil, err
		}
		return products, nil
	})
}

// ListActive returns products available for sale, cached
func (s *ProductService) ListActive(ctx context.Context) ([]Product, error) {
	return query.Fetch(ctx, s.queries, query.Key(keyProducts, "activos"), func(ctx context.Context) ([]Product, error) {
		var products []Product
		if err := s.gateway.Get(ctx, "/productos/activos", &products); err != nil {
			return nil, err
		}
		return products, nil
	})
}

// Get returns a single product by ID, cached
func (s *ProductService) Get(ctx context.Context, id int64) (*Product, error) {
	return query.Fetch(ctx, s.queries, query.Key(keyProducts, fmt.Sprint(id)), func(ctx context.Context) (*Product, error) {
		var product Product
		if err := s.gateway.Get(ctx, fmt.Sprintf("/productos/%d", id), &product); err != nil {
			return nil, err
		}
		return &product, nil
	})
}

// Create creates a product and invalidates cached product queries
func (s *ProductService) Create(ctx context.Context, form ProductForm) (*Product, error) {
	if err := s.validateForm(form); err != nil {
		return nil, err
	}
	return query.Mutate(ctx, s.queries, func(ctx context.Context) (*Product, error) {
		var created Product
		if err := s.gateway.Post(ctx, "/productos", form, &created); err != nil {
			return nil, err
		}
		return &created, nil
	}, keyProducts)
}

// Update updates a product and invalidates cached product queries
func (s *ProductService) Update(ctx context.Context, id int64, form ProductForm) (*Product, error) {
	if err := s.validateForm(form); err != nil {
		return nil, err
	}
	body := struct {
		ID int64 `json:"id"`
		ProductForm
	}{ID: id, ProductForm: form}

	return query.Mutate(ctx, s.queries, func(ctx context.Context) (*Product, error) {
		var updated Product
		if err := s.gateway.Put(ctx, fmt.Sprintf("/productos/%d", id), body, &updated); err != nil {
			return nil, err
		}
		return &updated, nil
	}, keyProducts)
}

// Deactivate removes a product from sale and invalidates cached product queries
func (s *ProductService) Deactivate(ctx context.Context, id int64) error {
	_, err := query.Mutate(ctx, s.queries, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.gateway.Delete(ctx, fmt.Sprintf("/productos/%d", id))
	}, keyProducts)
	return err
}

func (s *ProductService) validateForm(form ProductForm) error {
	if err := validation.Struct(form); err != nil {
		return err
	}
	if !form.UnitPrice.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Unit price must be greater than zero")
	}
	return nil
}
