package iwishlistrepo

import (
	"context"
	"errors"

	"github.com/corray333/ecommerce-api/internal/service/models/product"
)

var ErrProductNotInWishlist = errors.New("product not in wishlist")

// IWishlistRepository is an interface for the wishlist postgres repository.
type IWishlistRepository interface {
	// GetOrCreate returns the id of the user's wishlist, creating an
	// empty one if the user has none yet.
	GetOrCreate(ctx context.Context, userID int64) (int64, error)
	Products(ctx context.Context, wishlistID int64) ([]product.Product, error)
	Has(ctx context.Context, wishlistID, productID int64) (bool, error)
	AddProduct(ctx context.Context, wishlistID, productID int64) error
	RemoveProduct(ctx context.Context, wishlistID, productID int64) error
}
