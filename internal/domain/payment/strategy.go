package payment

import (
	"github.com/softpan/console/internal/domain/shared"
	"github.com/softpan/console/internal/domain/shared/valueobject"
)

// DistributionResult is the outcome of distributing a payment amount across
// candidate sales.
type DistributionResult struct {
	Allocations      []Allocation      // proposed allocations, in candidate order
	TotalAllocated   valueobject.Money // sum of the allocations
	Remainder        valueobject.Money // amount left unallocated
	FullyCovered     []int64           // sales whose balance would be settled
	PartiallyCovered []int64           // sales receiving a partial amount
}

// FullyDistributed reports whether the whole amount was allocated
func (r *DistributionResult) FullyDistributed() bool {
	return r.Remainder.IsZero()
}

// DistributionStrategy calculates how to spread an amount across candidates
type DistributionStrategy interface {
	// Distribute allocates the amount across the candidate sales
	Distribute(amount valueobject.Money, candidates []CandidateSale) (*DistributionResult, error)
}

// SequentialStrategy allocates greedily in the order the candidates were
// given. The backend returns pending sales in its own (chronological) order
// and that order is authoritative: no re-sort, first sale wins ties.
type SequentialStrategy struct{}

// NewSequentialStrategy creates the default distribution strategy
func NewSequentialStrategy() *SequentialStrategy {
	return &SequentialStrategy{}
}

// Distribute assigns min(remaining, outstanding) to each candidate in turn
// until the amount is exhausted or every sale is covered.
func (s *SequentialStrategy) Distribute(amount valueobject.Money, candidates []CandidateSale) (*DistributionResult, error) {
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}

	result := &DistributionResult{
		Allocations:      make([]Allocation, 0, len(candidates)),
		TotalAllocated:   valueobject.Zero(),
		Remainder:        amount,
		FullyCovered:     make([]int64, 0),
		PartiallyCovered: make([]int64, 0),
	}

	for _, candidate := range candidates {
		if result.Remainder.IsZero() {
			break
		}
		if !candidate.Outstanding.IsPositive() {
			continue
		}

		applied := result.Remainder.Min(candidate.Outstanding)
		result.Allocations = append(result.Allocations, Allocation{
			SaleID: candidate.ID,
			Amount: applied,
		})
		result.TotalAllocated = result.TotalAllocated.Add(applied)
		result.Remainder = result.Remainder.Subtract(applied)

		if applied.Equals(candidate.Outstanding) {
			result.FullyCovered = append(result.FullyCovered, candidate.ID)
		} else {
			result.PartiallyCovered = append(result.PartiallyCovered, candidate.ID)
		}
	}

	return result, nil
}
