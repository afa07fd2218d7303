package sale

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/softpan/console/internal/domain/shared/valueobject"
)

func TestStatusFromWire(t *testing.T) {
	assert.Equal(t, StatusUnpaid, StatusFromWire(0))
	assert.Equal(t, StatusPartiallyPaid, StatusFromWire(1))
	assert.Equal(t, StatusPaid, StatusFromWire(2))
	assert.Equal(t, StatusUnpaid, StatusFromWire(99))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "unpaid", StatusUnpaid.String())
	assert.Equal(t, "partially paid", StatusPartiallyPaid.String())
	assert.Equal(t, "paid", StatusPaid.String())
}

func TestIsOutstanding(t *testing.T) {
	t.Run("positive balance is outstanding", func(t *testing.T) {
		s := Sale{Outstanding: valueobject.NewMoneyFromInt(50)}
		assert.True(t, s.IsOutstanding())
	})

	t.Run("zero balance is settled", func(t *testing.T) {
		s := Sale{Outstanding: valueobject.Zero()}
		assert.False(t, s.IsOutstanding())
	})
}
