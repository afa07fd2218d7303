// Package payment implements the client-side payment allocation model:
// distributing a payment amount across a customer's outstanding sales,
// validating the result and producing the creation request sent to the
// backend. Balances are read-only inputs; the backend applies the payment
// and updates them transactionally.
package payment

import (
	"fmt"
	"time"

	"github.com/softpan/console/internal/domain/shared/valueobject"
)

// Method is the enumerated payment method
type Method int

const (
	MethodCash     Method = 1
	MethodTransfer Method = 2
)

// IsValid checks if the method is one of the enumerated values
func (m Method) IsValid() bool {
	return m == MethodCash || m == MethodTransfer
}

// Wire returns the backend's numeric encoding
func (m Method) Wire() int {
	return int(m)
}

// String returns a display name for the method
func (m Method) String() string {
	switch m {
	case MethodCash:
		return "cash"
	case MethodTransfer:
		return "transfer"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseMethod converts an operator-supplied name to a Method
func ParseMethod(s string) (Method, error) {
	switch s {
	case "cash", "efectivo":
		return MethodCash, nil
	case "transfer", "transferencia":
		return MethodTransfer, nil
	default:
		return 0, fmt.Errorf("unknown payment method %q (expected cash or transfer)", s)
	}
}

// CandidateSale is an outstanding sale eligible to receive part of a payment.
// Candidates keep the order the backend returned them in; that order drives
// automatic distribution.
type CandidateSale struct {
	ID          int64
	Total       valueobject.Money
	Outstanding valueobject.Money
	CreatedAt   time.Time
}

// Allocation is the portion of a payment applied to a specific sale
type Allocation struct {
	SaleID int64
	Amount valueobject.Money
}

// CreatePaymentRequest is the validated submission produced by the workflow.
// It is created transactionally with its allocations in a single backend call.
type CreatePaymentRequest struct {
	CustomerID  int64
	Amount      valueobject.Money
	Method      Method
	Note        string
	Allocations []Allocation
}

// Applied is an allocation as reported back by the backend
type Applied struct {
	ID     int64
	SaleID int64
	Amount valueobject.Money
}

// Payment is a recorded payment as reported by the backend
type Payment struct {
	ID           int64
	CustomerID   int64
	CustomerName string
	Amount       valueobject.Money
	Method       Method
	MethodName   string
	Note         string
	PaidAt       time.Time
	Applied      []Applied
}
