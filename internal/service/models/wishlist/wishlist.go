package wishlist

import "github.com/corray333/ecommerce-api/internal/service/models/product"

// Wishlist is the per-user set of saved products.
type Wishlist struct {
	ID       int64             `json:"id"`
	UserID   int64             `json:"userId"`
	Products []product.Product `json:"products"`
}
