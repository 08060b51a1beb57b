package orderitem

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem represents an item within an order. PriceAtOrder is a
// historical snapshot taken at purchase time; it never changes when the
// product price does.
type OrderItem struct {
	ID           int64           `json:"id"`
	OrderID      int64           `json:"orderId"`
	ProductID    int64           `json:"productId"`
	ProductName  string          `json:"productName"`
	Quantity     int             `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"priceAtOrder"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// TotalPrice is the line total: snapshot price times quantity.
func (i *OrderItem) TotalPrice() decimal.Decimal {
	return i.PriceAtOrder.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
