package trade

import (
	"time"

	"github.com/softpan/console/internal/domain/payment"
	"github.com/softpan/console/internal/domain/sale"
	"github.com/softpan/console/internal/domain/shared/valueobject"
)

// saleWire is a sale as the backend serializes it
type saleWire struct {
	ID           int64             `json:"id"`
	CustomerID   int64             `json:"clienteId"`
	CustomerName string            `json:"clienteNombre"`
	CreatedAt    time.Time         `json:"fechaCreacion"`
	ModifiedAt   *time.Time        `json:"fechaModificacion"`
	Total        valueobject.Money `json:"montoTotal"`
	Paid         valueobject.Money `json:"montoPagado"`
	Outstanding  valueobject.Money `json:"saldoPendiente"`
	Status       int               `json:"estado"`
	StatusName   string            `json:"estadoNombre"`
	Lines        []lineWire        `json:"detalles"`
}

type lineWire struct {
	ID          int64             `json:"id"`
	ProductID   int64             `json:"productoId"`
	ProductName string            `json:"productoNombre"`
	Quantity    int               `json:"cantidad"`
	UnitPrice   valueobject.Money `json:"precioUnitario"`
	Subtotal    valueobject.Money `json:"subtotal"`
}

func (w saleWire) toDomain() sale.Sale {
	lines := make([]sale.Line, 0, len(w.Lines))
	for _, l := range w.Lines {
		lines = append(lines, sale.Line{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	return sale.Sale{
		ID:           w.ID,
		CustomerID:   w.CustomerID,
		CustomerName: w.CustomerName,
		CreatedAt:    w.CreatedAt,
		ModifiedAt:   w.ModifiedAt,
		Total:        w.Total,
		Paid:         w.Paid,
		Outstanding:  w.Outstanding,
		Status:       sale.StatusFromWire(w.Status),
		Lines:        lines,
	}
}

func salesToDomain(wires []saleWire) []sale.Sale {
	sales := make([]sale.Sale, 0, len(wires))
	for _, w := range wires {
		sales = append(sales, w.toDomain())
	}
	return sales
}

// SaleForm is the payload for recording a new sale
type SaleForm struct {
	CustomerID int64      `json:"clienteId" validate:"required,gt=0"`
	Lines      []LineForm `json:"detalles" validate:"required,min=1,dive"`
}

// LineForm is one requested line item of a new sale
type LineForm struct {
	ProductID int64             `json:"productoId" validate:"required,gt=0"`
	Quantity  int               `json:"cantidad" validate:"required,gt=0"`
	UnitPrice valueobject.Money `json:"precioUnitario"`
}

// Candidates converts outstanding sales into payment candidates, keeping the
// order the backend returned them in.
func Candidates(sales []sale.Sale) []payment.CandidateSale {
	candidates := make([]payment.CandidateSale, 0, len(sales))
	for _, s := range sales {
		candidates = append(candidates, payment.CandidateSale{
			ID:          s.ID,
			Total:       s.Total,
			Outstanding: s.Outstanding,
			CreatedAt:   s.CreatedAt,
		})
	}
	return candidates
}
