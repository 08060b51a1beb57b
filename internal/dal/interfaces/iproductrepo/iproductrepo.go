package iproductrepo

import (
	"context"
	"errors"

	"github.com/corray333/ecommerce-api/internal/service/models/product"
)

var (
	// ErrNotFound is returned when no product matches the lookup.
	ErrNotFound = errors.New("product not found")
	// ErrNameTaken is returned on a unique violation of the name column.
	ErrNameTaken = errors.New("product name already taken")
	// ErrReferenced is returned when deletion is blocked by order items.
	ErrReferenced = errors.New("product is referenced by order items")
	// ErrInsufficientStock is returned when a decrement would drive the
	// stock quantity negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// IProductRepository is an interface for the product postgres repository.
type IProductRepository interface {
	Insert(ctx context.Context, p product.Product) (product.Product, error)
	GetByID(ctx context.Context, id int64) (*product.Product, error)
	// GetForUpdate locks the product row for the rest of the transaction.
	// Only meaningful on a transaction-bound repository.
	GetForUpdate(ctx context.Context, id int64) (*product.Product, error)
	Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)
	Update(ctx context.Context, p product.Product) (product.Product, error)
	Delete(ctx context.Context, id int64) error
	// DecrementStock subtracts quantity from the product's stock,
	// guarded so the stored value can never go negative.
	DecrementStock(ctx context.Context, id int64, quantity int) error
}
