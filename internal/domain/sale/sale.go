// Package sale models sales as the backend reports them. Totals, the paid
// amount and the outstanding balance are authoritative server-side data;
// the client reads them and never recomputes or persists balance updates.
package sale

import (
	"time"

	"github.com/softpan/console/internal/domain/shared/valueobject"
)

// Status is the derived payment status of a sale
type Status int

const (
	StatusUnpaid        Status = 0
	StatusPartiallyPaid Status = 1
	StatusPaid          Status = 2
)

// StatusFromWire converts the backend's numeric status
func StatusFromWire(v int) Status {
	switch v {
	case 1:
		return StatusPartiallyPaid
	case 2:
		return StatusPaid
	default:
		return StatusUnpaid
	}
}

// String returns a display name for the status
func (s Status) String() string {
	switch s {
	case StatusPartiallyPaid:
		return "partially paid"
	case StatusPaid:
		return "paid"
	default:
		return "unpaid"
	}
}

// Line is a single line item of a sale
type Line struct {
	ID          int64
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   valueobject.Money
	Subtotal    valueobject.Money
}

// Sale is a customer transaction with a total and a remaining balance
type Sale struct {
	ID           int64
	CustomerID   int64
	CustomerName string
	CreatedAt    time.Time
	ModifiedAt   *time.Time
	Total        valueobject.Money
	Paid         valueobject.Money
	Outstanding  valueobject.Money
	Status       Status
	Lines        []Line
}

// IsOutstanding reports whether the sale still has a positive remaining balance
func (s *Sale) IsOutstanding() bool {
	return s.Outstanding.IsPositive()
}
