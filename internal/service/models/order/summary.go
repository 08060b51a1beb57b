package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is one order item projected for read queries.
type Line struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// Summary is the read projection of an order: identity, status,
// timestamps and the total derived from price snapshots.
type Summary struct {
	OrderID    int64           `json:"order_id"`
	Status     Status          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Items      []Line          `json:"items"`
}

// SummaryFromOrder builds the read projection of an order.
func SummaryFromOrder(o Order) Summary {
	items := make([]Line, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		items = append(items, Line{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			TotalPrice:  item.TotalPrice(),
		})
	}

	return Summary{
		OrderID:    o.ID,
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
		TotalPrice: o.TotalPrice(),
		Items:      items,
	}
}
