// Package trade provides the typed client for the backend's sale endpoints.
// Sales carry server-computed balances, so the client maps wire records onto
// the sale domain model and never recalculates what it receives.
package trade

import (
	"context"
	"fmt"

	"github.com/softpan/console/internal/application/query"
	"github.com/softpan/console/internal/domain/payment"
	"github.com/softpan/console/internal/domain/sale"
	"github.com/softpan/console/internal/infrastructure/api"
	"github.com/softpan/console/internal/infrastructure/validation"
)

const keySales = "ventas"

// SaleService handles sale operations
type SaleService struct {
	gateway *api.Client
	queries *query.Client
}

// NewSaleService creates a new SaleService
func NewSaleService(gateway *api.Client, queries *query.Client) *SaleService {
	return &SaleService{
		gateway: gateway,
		queries: queries,
	}
}

// List returns every sale, cached
func (s *SaleService) List(ctx context.Context) ([]sale.Sale, error) {
	return query.Fetch(ctx, s.queries, query.Key(keySales), func(ctx context.Context) ([]sale.Sale, error) {
		var wires []saleWire
		if err := s.gateway.Get(ctx, "/ventas", &wires); err != nil {
			return nil, err
		}
		return salesToDomain(wires), nil
	})
}

// Get returns a single sale by ID, cached
func (s *SaleService) Get(ctx context.Context, id int64) (*sale.Sale, error) {
	return query.Fetch(ctx, s.queries, query.Key(keySales, fmt.Sprint(id)), func(ctx context.Context) (*sale.Sale, error) {
		var wire saleWire
		if err := s.gateway.Get(ctx, fmt.Sprintf("/ventas/%d", id), &wire); err != nil {
			return nil, err
		}
		domain := wire.toDomain()
		return &domain, nil
	})
}

// Pending returns sales with an outstanding balance, in backend order, cached
func (s *SaleService) Pending(ctx context.Context) ([]sale.Sale, error) {
	return query.Fetch(ctx, s.queries, query.Key(keySales, "pendientes"), func(ctx context.Context) ([]sale.Sale, error) {
		var wires []saleWire
		if err := s.gateway.Get(ctx, "/ventas/pendientes", &wires); err != nil {
			return nil, err
		}
		return salesToDomain(wires), nil
	})
}

// PendingForCustomer returns one customer's outstanding sales as payment
// candidates, preserving backend order. That order is what the distribution
// strategy walks, so it must not be rearranged here.
func (s *SaleService) PendingForCustomer(ctx context.Context, customerID int64) ([]payment.CandidateSale, error) {
	pending, err := s.Pending(ctx)
	if err != nil {
		return nil, err
	}
	own := make([]sale.Sale, 0, len(pending))
	for _, p := range pending {
		if p.CustomerID == customerID {
			own = append(own, p)
		}
	}
	return Candidates(own), nil
}

// Create records a sale and invalidates cached sale queries
func (s *SaleService) Create(ctx context.Context, form SaleForm) (*sale.Sale, error) {
	if err := validation.Struct(form); err != nil {
		return nil, err
	}
	return query.Mutate(ctx, s.queries, func(ctx context.Context) (*sale.Sale, error) {
		var wire saleWire
		if err := s.gateway.Post(ctx, "/ventas", form, &wire); err != nil {
			return nil, err
		}
		domain := wire.toDomain()
		return &domain, nil
	}, keySales)
}

// Delete removes a sale and invalidates cached sale queries
func (s *SaleService) Delete(ctx context.Context, id int64) error {
	_, err := query.Mutate(ctx, s.queries, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.gateway.Delete(ctx, fmt.Sprintf("/ventas/%d", id))
	}, keySales)
	return err
}
