package idiscountrepo

import (
	"context"
	"errors"
	"time"

	"github.com/corray333/ecommerce-api/internal/service/models/discount"
)

var ErrNotFound = errors.New("discount not found")

// IDiscountRepository is an interface for the discount postgres repository.
type IDiscountRepository interface {
	Insert(ctx context.Context, d discount.Discount) (discount.Discount, error)
	List(ctx context.Context) ([]discount.Discount, error)
	Update(ctx context.Context, d discount.Discount) (discount.Discount, error)
	Delete(ctx context.Context, id int64) error
	// ActiveForProducts returns the active discount per product id at
	// the given moment, for products that have one.
	ActiveForProducts(ctx context.Context, productIDs []int64, now time.Time) (map[int64]discount.Discount, error)
}
