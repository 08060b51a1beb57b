package order

import (
	"testing"

	"github.com/corray333/ecommerce-api/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, s)

	_, err = ParseStatus("shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOrder_TotalPrice(t *testing.T) {
	o := Order{
		OrderItems: []orderitem.OrderItem{
			{Quantity: 2, PriceAtOrder: decimal.RequireFromString("49.90")},
			{Quantity: 1, PriceAtOrder: decimal.RequireFromString("19.90")},
		},
	}

	assert.Equal(t, "119.70", o.TotalPrice().StringFixed(2))
}

func TestOrder_TotalPriceEmpty(t *testing.T) {
	o := Order{}

	assert.True(t, o.TotalPrice().IsZero())
}

func TestSummaryFromOrder(t *testing.T) {
	o := Order{
		ID:     3,
		UserID: 7,
		Status: StatusCompleted,
		OrderItems: []orderitem.OrderItem{
			{ProductName: "Keyboard", Quantity: 2, PriceAtOrder: decimal.RequireFromString("49.90")},
		},
	}

	s := SummaryFromOrder(o)

	assert.Equal(t, int64(3), s.OrderID)
	assert.Equal(t, StatusCompleted, s.Status)
	assert.Equal(t, "99.80", s.TotalPrice.StringFixed(2))
	require.Len(t, s.Items, 1)
	assert.Equal(t, "Keyboard", s.Items[0].ProductName)
	assert.Equal(t, "99.80", s.Items[0].TotalPrice.StringFixed(2))
}
