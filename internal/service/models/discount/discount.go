package discount

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discount is a percentage off a product price for a bounded period.
type Discount struct {
	ID                 int64           `json:"id"`
	ProductID          int64           `json:"productId"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	StartDate          time.Time       `json:"startDate"`
	EndDate            time.Time       `json:"endDate"`
}

// IsActive reports whether the discount applies at the given moment.
func (d *Discount) IsActive(now time.Time) bool {
	return !now.Before(d.StartDate) && !now.After(d.EndDate)
}

// Apply returns the price reduced by the discount percentage, rounded
// to two decimal places.
func (d *Discount) Apply(price decimal.Decimal) decimal.Decimal {
	amount := price.Mul(d.DiscountPercentage).Div(decimal.NewFromInt(100))

	return price.Sub(amount).Round(2)
}
