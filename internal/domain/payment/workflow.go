package payment

import (
	"github.com/softpan/console/internal/domain/shared"
	"github.com/softpan/console/internal/domain/shared/valueobject"
)

// Workflow holds the ephemeral state of recording one payment: the selected
// customer, the amount, and a draft mapping sale IDs to proposed applied
// amounts. Nothing here is persisted; a backend rejection leaves the state
// untouched so the operator can correct and resubmit.
type Workflow struct {
	customerID      int64
	amount          valueobject.Money
	method          Method
	note            string
	candidates      []CandidateSale
	draft           map[int64]valueobject.Money
	excessConfirmed bool
	strategy        DistributionStrategy
}

// WorkflowOption is a functional option for configuring the workflow
type WorkflowOption func(*Workflow)

// WithStrategy overrides the automatic distribution strategy
func WithStrategy(s DistributionStrategy) WorkflowOption {
	return func(w *Workflow) {
		w.strategy = s
	}
}

// NewWorkflow creates an empty payment workflow
func NewWorkflow(opts ...WorkflowOption) *Workflow {
	w := &Workflow{
		method:   MethodCash,
		draft:    make(map[int64]valueobject.Money),
		strategy: NewSequentialStrategy(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// SelectCustomer switches the workflow to a customer and their outstanding
// sales. Switching always resets the allocation draft: prior allocations
// referenced the previous customer's sales and are no longer meaningful.
func (w *Workflow) SelectCustomer(customerID int64, candidates []CandidateSale) {
	w.customerID = customerID
	w.candidates = candidates
	w.draft = make(map[int64]valueobject.Money)
	w.excessConfirmed = false
}

// CustomerID returns the selected customer, zero when none
func (w *Workflow) CustomerID() int64 {
	return w.customerID
}

// Candidates returns the customer's outstanding sales in backend order
func (w *Workflow) Candidates() []CandidateSale {
	return w.candidates
}

// SetAmount sets the payment amount. Changing the amount revokes a previous
// excess confirmation since it referred to the old amount.
func (w *Workflow) SetAmount(amount valueobject.Money) {
	w.amount = amount
	w.excessConfirmed = false
}

// Amount returns the payment amount
func (w *Workflow) Amount() valueobject.Money {
	return w.amount
}

// SetMethod sets the payment method
func (w *Workflow) SetMethod(m Method) {
	w.method = m
}

// SetNote sets the optional free-text note
func (w *Workflow) SetNote(note string) {
	w.note = note
}

// Allocate proposes applying amount to the given sale. The input is accepted
// only when 0 <= amount <= that sale's outstanding balance; anything outside
// that range is silently ignored and the prior value is kept. The return
// value reports whether the draft changed.
func (w *Workflow) Allocate(saleID int64, amount valueobject.Money) bool {
	if amount.IsNegative() {
		return false
	}
	candidate, ok := w.candidate(saleID)
	if !ok {
		return false
	}
	if amount.GreaterThan(candidate.Outstanding) {
		return false
	}
	w.draft[saleID] = amount
	return true
}

// candidate looks up a candidate sale by ID
func (w *Workflow) candidate(saleID int64) (CandidateSale, bool) {
	for _, c := range w.candidates {
		if c.ID == saleID {
			return c, true
		}
	}
	return CandidateSale{}, false
}

// Allocated returns the drafted amount for a sale (zero when untouched)
func (w *Workflow) Allocated(saleID int64) valueobject.Money {
	if amount, ok := w.draft[saleID]; ok {
		return amount
	}
	return valueobject.Zero()
}

// AutoDistribute replaces the entire draft with a greedy distribution of the
// payment amount across the candidates, in backend order. Prior manual edits
// are discarded, not merged.
func (w *Workflow) AutoDistribute() error {
	result, err := w.strategy.Distribute(w.amount, w.candidates)
	if err != nil {
		return err
	}
	draft := make(map[int64]valueobject.Money, len(result.Allocations))
	for _, alloc := range result.Allocations {
		draft[alloc.SaleID] = alloc.Amount
	}
	w.draft = draft
	return nil
}

// TotalOutstanding is the customer's total debt across candidate sales
func (w *Workflow) TotalOutstanding() valueobject.Money {
	total := valueobject.Zero()
	for _, c := range w.candidates {
		total = total.Add(c.Outstanding)
	}
	return total
}

// TotalAllocated is the sum of all drafted amounts
func (w *Workflow) TotalAllocated() valueobject.Money {
	total := valueobject.Zero()
	for _, amount := range w.draft {
		total = total.Add(amount)
	}
	return total
}

// Remainder is the part of the payment amount not yet allocated
func (w *Workflow) Remainder() valueobject.Money {
	return w.amount.Subtract(w.TotalAllocated())
}

// ExceedsDebt reports whether the payment amount is larger than the
// customer's total outstanding debt.
func (w *Workflow) ExceedsDebt() bool {
	return w.amount.GreaterThan(w.TotalOutstanding())
}

// ConfirmExcess acknowledges that the amount exceeds the total debt.
// The acknowledgment is revoked when the amount changes.
func (w *Workflow) ConfirmExcess() {
	w.excessConfirmed = true
}

// Validate runs the submission checks in order and fails fast on the first
// violated rule. The excess-over-debt condition is a soft gate: it blocks
// only until ConfirmExcess is called.
func (w *Workflow) Validate() error {
	if w.customerID == 0 {
		return shared.ErrNoCustomer
	}
	if !w.amount.IsPositive() {
		return shared.ErrInvalidAmount
	}
	if w.ExceedsDebt() && !w.excessConfirmed {
		return shared.ErrConfirmationNeeded
	}
	totalAllocated := w.TotalAllocated()
	if !totalAllocated.IsPositive() {
		return shared.ErrNothingAllocated
	}
	if totalAllocated.GreaterThan(w.amount) {
		return shared.ErrOverAllocated
	}
	return nil
}

// BuildRequest validates the workflow and emits the payment-creation
// request. Zero-valued draft entries are filtered out; allocations are
// emitted in candidate (backend) order so the request is deterministic.
func (w *Workflow) BuildRequest() (*CreatePaymentRequest, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	allocations := make([]Allocation, 0, len(w.draft))
	for _, candidate := range w.candidates {
		amount, ok := w.draft[candidate.ID]
		if !ok || !amount.IsPositive() {
			continue
		}
		allocations = append(allocations, Allocation{
			SaleID: candidate.ID,
			Amount: amount,
		})
	}

	return &CreatePaymentRequest{
		CustomerID:  w.customerID,
		Amount:      w.amount,
		Method:      w.method,
		Note:        w.note,
		Allocations: allocations,
	}, nil
}
