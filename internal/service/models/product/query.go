package product

import "github.com/shopspring/decimal"

// Allowed ordering columns for product listings.
const (
	OrderByPrice = "price"
	OrderByName  = "name"
	OrderByStock = "stock_quantity"
)

// QueryProductsModel represents filter parameters for querying products.
type QueryProductsModel struct {
	Ids      []int64          `json:"ids,omitempty"`
	PriceMin *decimal.Decimal `json:"priceMin,omitempty"`
	PriceMax *decimal.Decimal `json:"priceMax,omitempty"`
	StockMin *int             `json:"stockMin,omitempty"`
	StockMax *int             `json:"stockMax,omitempty"`
	Category string           `json:"category,omitempty"`
	Search   string           `json:"search,omitempty"`
	OrderBy  string           `json:"orderBy,omitempty"`
	Limit    int              `json:"limit,omitempty"`
	Offset   int              `json:"offset,omitempty"`
}
