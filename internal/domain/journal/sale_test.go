package journal

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleTotal(t *testing.T) {
	tests := []struct {
		name      string
		quantity  string
		unitPrice string
		discount  string
		expected  string
	}{
		{"no discount", "2", "150", "0", "300"},
		{"ten percent", "2", "150", "10", "270"},
		{"fractional quantity", "0.5", "99.99", "0", "50"},
		{"rounding to two decimals", "3", "33.333", "0", "100"},
		{"full discount", "4", "25", "100", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := SaleTotal(
				decimal.RequireFromString(tt.quantity),
				decimal.RequireFromString(tt.unitPrice),
				decimal.RequireFromString(tt.discount),
			)
			assert.True(t, total.Equal(decimal.RequireFromString(tt.expected)),
				"got %s, want %s", total, tt.expected)
		})
	}
}

func TestNewSale(t *testing.T) {
	productID := uuid.New()
	actor := uuid.New()

	t.Run("creates sale with computed total", func(t *testing.T) {
		sale, err := NewSale(time.Now(), "Walk-in", productID, nil,
			decimal.NewFromInt(2), decimal.NewFromInt(150), decimal.NewFromInt(10), actor)
		require.NoError(t, err)

		assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(270)))
		assert.Nil(t, sale.ColorID)
		assert.Equal(t, actor, sale.CreatedBy)
	})

	t.Run("accepts half-unit quantity", func(t *testing.T) {
		_, err := NewSale(time.Now(), "", productID, nil,
			decimal.NewFromFloat(0.5), decimal.NewFromInt(100), decimal.Zero, actor)
		assert.NoError(t, err)
	})

	t.Run("rejects quantity below half unit", func(t *testing.T) {
		_, err := NewSale(time.Now(), "", productID, nil,
			decimal.NewFromFloat(0.25), decimal.NewFromInt(100), decimal.Zero, actor)
		assert.Error(t, err)
	})

	t.Run("rejects discount above 100", func(t *testing.T) {
		_, err := NewSale(time.Now(), "", productID, nil,
			decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.NewFromInt(101), actor)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive unit price", func(t *testing.T) {
		_, err := NewSale(time.Now(), "", productID, nil,
			decimal.NewFromInt(1), decimal.Zero, decimal.Zero, actor)
		assert.Error(t, err)
	})

	t.Run("defaults zero date to now", func(t *testing.T) {
		sale, err := NewSale(time.Time{}, "", productID, nil,
			decimal.NewFromInt(1), decimal.NewFromInt(10), decimal.Zero, actor)
		require.NoError(t, err)
		assert.False(t, sale.Date.IsZero())
	})
}
