// Package finance provides the typed client for the backend's payment
// endpoints. Payments arrive here already validated by the allocation
// workflow; this layer only carries them over the wire and keeps the cached
// sale and payment queries honest afterwards.
package finance

import (
	"context"
	"fmt"

	"github.com/softpan/console/internal/application/query"
	"github.com/softpan/console/internal/domain/payment"
	"github.com/softpan/console/internal/infrastructure/api"
)

const (
	keyPayments = "pagos"
	keySales    = "ventas"
)

// PaymentService handles payment recording and history
type PaymentService struct {
	gateway *api.Client
	queries *query.Client
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(gateway *api.Client, queries *query.Client) *PaymentService {
	return &PaymentService{
		gateway: gateway,
		queries: queries,
	}
}

// Create submits a payment with its allocations in a single call. The backend
// applies everything transactionally and returns the recorded payment. On
// success both the payment and sale caches are invalidated, since the
// backend updates sale balances as part of the same transaction.
func (s *PaymentService) Create(ctx context.Context, req payment.CreatePaymentRequest) (*payment.Payment, error) {
	return query.Mutate(ctx, s.queries, func(ctx context.Context) (*payment.Payment, error) {
		var wire paymentWire
		if err := s.gateway.Post(ctx, "/pagos", createWireFrom(req), &wire); err != nil {
			return nil, err
		}
		domain := wire.toDomain()
		return &domain, nil
	}, keyPayments, keySales)
}

// ByCustomer returns a customer's payment history, cached
func (s *PaymentService) ByCustomer(ctx context.Context, customerID int64) ([]payment.Payment, error) {
	return query.Fetch(ctx, s.queries, query.Key(keyPayments, "cliente", fmt.Sprint(customerID)), func(ctx context.Context) ([]payment.Payment, error) {
		var wires []paymentWire
		if err := s.gateway.Get(ctx, fmt.Sprintf("/pagos/cliente/%d", customerID), &wires); err != nil {
			return nil, err
		}
		payments := make([]payment.Payment, 0, len(wires))
		for _, w := range wires {
			payments = append(payments, w.toDomain())
		}
		return payments, nil
	})
}

// ByID returns a single payment, cached
func (s *PaymentService) ByID(ctx context.Context, id int64) (*payment.Payment, error) {
	return query.Fetch(ctx, s.queries, query.Key(keyPayments, fmt.Sprint(id)), func(ctx context.Context) (*payment.Payment, error) {
		var wire paymentWire
		if err := s.gateway.Get(ctx, fmt.Sprintf("/pagos/%d", id), &wire); err != nil {
			return nil, err
		}
		domain := wire.toDomain()
		return &domain, nil
	})
}
