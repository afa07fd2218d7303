package finance

import (
	"time"

	"github.com/softpan/console/internal/domain/payment"
	"github.com/softpan/console/internal/domain/shared/valueobject"
)

// paymentWire is a recorded payment as the backend serializes it
type paymentWire struct {
	ID           int64             `json:"id"`
	CustomerID   int64             `json:"clienteId"`
	CustomerName string            `json:"clienteNombre"`
	Amount       valueobject.Money `json:"monto"`
	Method       int               `json:"tipoPago"`
	MethodName   string            `json:"tipoPagoNombre"`
	PaidAt       time.Time         `json:"fechaPago"`
	Note         string            `json:"observaciones"`
	Applied      []appliedWire     `json:"pagosAplicados"`
}

type appliedWire struct {
	ID     int64             `json:"id"`
	SaleID int64             `json:"ventaId"`
	Amount valueobject.Money `json:"montoAplicado"`
}

func (w paymentWire) toDomain() payment.Payment {
	applied := make([]payment.Applied, 0, len(w.Applied))
	for _, a := range w.Applied {
		applied = append(applied, payment.Applied{
			ID:     a.ID,
			SaleID: a.SaleID,
			Amount: a.Amount,
		})
	}
	return payment.Payment{
		ID:           w.ID,
		CustomerID:   w.CustomerID,
		CustomerName: w.CustomerName,
		Amount:       w.Amount,
		Method:       payment.Method(w.Method),
		MethodName:   w.MethodName,
		Note:         w.Note,
		PaidAt:       w.PaidAt,
		Applied:      applied,
	}
}

// createWire is the payment creation payload the backend expects. The payment
// and its applications are submitted together and applied transactionally.
type createWire struct {
	CustomerID  int64             `json:"clienteId"`
	Amount      valueobject.Money `json:"monto"`
	Method      int               `json:"tipoPago"`
	Note        string            `json:"observaciones"`
	Allocations []allocationWire  `json:"ventasAAplicar"`
}

type allocationWire struct {
	SaleID int64             `json:"ventaId"`
	Amount valueobject.Money `json:"montoAplicado"`
}

func createWireFrom(req payment.CreatePaymentRequest) createWire {
	allocations := make([]allocationWire, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		allocations = append(allocations, allocationWire{
			SaleID: a.SaleID,
			Amount: a.Amount,
		})
	}
	return createWire{
		CustomerID:  req.CustomerID,
		Amount:      req.Amount,
		Method:      req.Method.Wire(),
		Note:        req.Note,
		Allocations: allocations,
	}
}
