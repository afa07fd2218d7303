package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softpan/console/internal/domain/shared"
)

func newWorkflowWithCustomer(balances ...int64) *Workflow {
	w := NewWorkflow()
	w.SelectCustomer(7, candidates(balances...))
	return w
}

func TestWorkflowManualAllocation(t *testing.T) {
	t.Run("accepts amounts within the outstanding balance", func(t *testing.T) {
		w := newWorkflowWithCustomer(50)
		assert.True(t, w.Allocate(1, money(30)))
		assert.True(t, w.Allocated(1).Equals(money(30)))
	})

	t.Run("accepts zero and the full balance", func(t *testing.T) {
		w := newWorkflowWithCustomer(50)
		assert.True(t, w.Allocate(1, money(0)))
		assert.True(t, w.Allocate(1, money(50)))
		assert.True(t, w.Allocated(1).Equals(money(50)))
	})

	t.Run("over-balance input is a silent no-op", func(t *testing.T) {
		w := newWorkflowWithCustomer(50)
		require.True(t, w.Allocate(1, money(20)))

		assert.False(t, w.Allocate(1, money(75)))
		assert.True(t, w.Allocated(1).Equals(money(20)), "prior value must be kept")
	})

	t.Run("negative input is a silent no-op", func(t *testing.T) {
		w := newWorkflowWithCustomer(50)
		assert.False(t, w.Allocate(1, money(-5)))
		assert.True(t, w.Allocated(1).IsZero())
	})

	t.Run("unknown sale is rejected", func(t *testing.T) {
		w := newWorkflowWithCustomer(50)
		assert.False(t, w.Allocate(99, money(10)))
	})

	t.Run("untouched sale reads as zero", func(t *testing.T) {
		w := newWorkflowWithCustomer(50, 40)
		assert.True(t, w.Allocated(2).IsZero())
	})
}

func TestWorkflowCustomerSwitch(t *testing.T) {
	t.Run("switching customers clears the draft from any state", func(t *testing.T) {
		w := newWorkflowWithCustomer(50, 40)
		w.SetAmount(money(60))
		require.True(t, w.Allocate(1, money(50)))
		require.True(t, w.Allocate(2, money(10)))
		require.True(t, w.TotalAllocated().Equals(money(60)))

		w.SelectCustomer(8, candidates(100))
		assert.True(t, w.TotalAllocated().IsZero())
		assert.True(t, w.Allocated(1).IsZero())
		assert.Equal(t, int64(8), w.CustomerID())
	})

	t.Run("switching revokes a prior excess confirmation", func(t *testing.T) {
		w := newWorkflowWithCustomer(50)
		w.SetAmount(money(80))
		w.ConfirmExcess()

		w.SelectCustomer(8, candidates(10))
		require.True(t, w.Allocate(1, money(10)))
		assert.ErrorIs(t, w.Validate(), shared.ErrConfirmationNeeded)
	})
}

func TestWorkflowAutoDistribute(t *testing.T) {
	t.Run("overwrites prior manual edits", func(t *testing.T) {
		w := newWorkflowWithCustomer(50, 40, 60)
		require.True(t, w.Allocate(3, money(60)))

		w.SetAmount(money(120))
		require.NoError(t, w.AutoDistribute())

		assert.True(t, w.Allocated(1).Equals(money(50)))
		assert.True(t, w.Allocated(2).Equals(money(40)))
		assert.True(t, w.Allocated(3).Equals(money(30)), "manual 60 must be replaced, not merged")
		assert.True(t, w.TotalAllocated().Equals(money(120)))
		assert.True(t, w.Remainder().IsZero())
	})

	t.Run("fails without a positive amount", func(t *testing.T) {
		w := newWorkflowWithCustomer(50)
		assert.Error(t, w.AutoDistribute())
	})

	t.Run("excess amount covers all sales and leaves a remainder", func(t *testing.T) {
		w := newWorkflowWithCustomer(50, 40)
		w.SetAmount(money(200))
		require.NoError(t, w.AutoDistribute())

		assert.True(t, w.TotalAllocated().Equals(money(90)))
		assert.True(t, w.Remainder().Equals(money(110)))
	})
}

func TestWorkflowValidate(t *testing.T) {
	t.Run("requires a selected customer first", func(t *testing.T) {
		w := NewWorkflow()
		w.SetAmount(money(100))
		assert.ErrorIs(t, w.Validate(), shared.ErrNoCustomer)
	})

	t.Run("requires a positive amount", func(t *testing.T) {
		w := newWorkflowWithCustomer(50)
		assert.ErrorIs(t, w.Validate(), shared.ErrInvalidAmount)

		w.SetAmount(money(-3))
		assert.ErrorIs(t, w.Validate(), shared.ErrInvalidAmount)
	})

	t.Run("amount above total debt needs explicit confirmation", func(t *testing.T) {
		w := newWorkflowWithCustomer(50)
		w.SetAmount(money(80))
		require.True(t, w.Allocate(1, money(50)))

		assert.ErrorIs(t, w.Validate(), shared.ErrConfirmationNeeded)

		w.ConfirmExcess()
		assert.NoError(t, w.Validate())
	})

	t.Run("changing the amount revokes the confirmation", func(t *testing.T) {
		w := newWorkflowWithCustomer(50)
		w.SetAmount(money(80))
		w.ConfirmExcess()

		w.SetAmount(money(90))
		require.True(t, w.Allocate(1, money(50)))
		assert.ErrorIs(t, w.Validate(), shared.ErrConfirmationNeeded)
	})

	t.Run("requires at least one allocation", func(t *testing.T) {
		w := newWorkflowWithCustomer(50)
		w.SetAmount(money(30))
		assert.ErrorIs(t, w.Validate(), shared.ErrNothingAllocated)
	})

	t.Run("rejects allocating more than the payment amount", func(t *testing.T) {
		w := newWorkflowWithCustomer(50, 40)
		w.SetAmount(money(30))
		require.True(t, w.Allocate(1, money(30)))
		require.True(t, w.Allocate(2, money(20)))

		assert.ErrorIs(t, w.Validate(), shared.ErrOverAllocated)
	})

	t.Run("passes with a consistent draft", func(t *testing.T) {
		w := newWorkflowWithCustomer(50, 40)
		w.SetAmount(money(60))
		require.True(t, w.Allocate(1, money(50)))
		require.True(t, w.Allocate(2, money(10)))

		assert.NoError(t, w.Validate())
	})
}

func TestWorkflowBuildRequest(t *testing.T) {
	t.Run("blocked validation produces no request", func(t *testing.T) {
		w := NewWorkflow()
		req, err := w.BuildRequest()
		assert.Nil(t, req)
		assert.ErrorIs(t, err, shared.ErrNoCustomer)
	})

	t.Run("filters zero-valued entries and keeps backend order", func(t *testing.T) {
		w := newWorkflowWithCustomer(50, 40, 60)
		w.SetAmount(money(70))
		w.SetMethod(MethodTransfer)
		w.SetNote("weekly settlement")
		require.True(t, w.Allocate(2, money(0)))
		require.True(t, w.Allocate(3, money(20)))
		require.True(t, w.Allocate(1, money(50)))

		req, err := w.BuildRequest()
		require.NoError(t, err)

		assert.Equal(t, int64(7), req.CustomerID)
		assert.True(t, req.Amount.Equals(money(70)))
		assert.Equal(t, MethodTransfer, req.Method)
		assert.Equal(t, "weekly settlement", req.Note)

		require.Len(t, req.Allocations, 2, "zero-valued entry for sale 2 must be dropped")
		assert.Equal(t, int64(1), req.Allocations[0].SaleID)
		assert.Equal(t, int64(3), req.Allocations[1].SaleID)
	})

	t.Run("allocation sum never exceeds the payment amount", func(t *testing.T) {
		w := newWorkflowWithCustomer(50, 40, 60)
		w.SetAmount(money(120))
		require.NoError(t, w.AutoDistribute())

		req, err := w.BuildRequest()
		require.NoError(t, err)

		total := money(0)
		for _, alloc := range req.Allocations {
			total = total.Add(alloc.Amount)
		}
		assert.True(t, total.LessThanOrEqual(req.Amount))
	})

	t.Run("each allocation stays within its sale's balance", func(t *testing.T) {
		sales := candidates(50, 40, 60)
		w := NewWorkflow()
		w.SelectCustomer(7, sales)
		w.SetAmount(money(120))
		require.NoError(t, w.AutoDistribute())

		req, err := w.BuildRequest()
		require.NoError(t, err)

		byID := make(map[int64]CandidateSale)
		for _, s := range sales {
			byID[s.ID] = s
		}
		for _, alloc := range req.Allocations {
			assert.True(t, alloc.Amount.LessThanOrEqual(byID[alloc.SaleID].Outstanding))
		}
	})

	t.Run("state survives a failed submission attempt", func(t *testing.T) {
		w := newWorkflowWithCustomer(50)
		w.SetAmount(money(30))
		require.True(t, w.Allocate(1, money(30)))

		// The backend rejecting the request is outside the workflow; the
		// draft must still produce the same request on retry.
		first, err := w.BuildRequest()
		require.NoError(t, err)
		second, err := w.BuildRequest()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
