package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable catalog item. StockQuantity is the
// count of units currently available; it is mutated only inside the
// order placement transaction.
type Product struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	CategoryID    int64            `json:"categoryId"`
	CategoryName  string           `json:"categoryName,omitempty"`
	StockQuantity int              `json:"stockQuantity"`
	ImageURL      string           `json:"imageUrl"`
	CreatedBy     int64            `json:"createdBy"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
	// DiscountedPrice is set by the catalog service when an active
	// discount exists; nil means the regular price applies.
	DiscountedPrice *decimal.Decimal `json:"discountedPrice,omitempty"`
}
