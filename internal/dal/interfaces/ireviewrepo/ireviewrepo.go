package ireviewrepo

import (
	"context"
	"errors"

	"github.com/corray333/ecommerce-api/internal/service/models/review"
)

var (
	ErrNotFound  = errors.New("review not found")
	ErrDuplicate = errors.New("review already exists for this user and product")
)

// IReviewRepository is an interface for the review postgres repository.
type IReviewRepository interface {
	Insert(ctx context.Context, r review.Review) (review.Review, error)
	ListByProduct(ctx context.Context, productID int64) ([]review.Review, error)
	// GetOwned looks a review up by id scoped to its author and product.
	GetOwned(ctx context.Context, id, userID, productID int64) (*review.Review, error)
	Update(ctx context.Context, r review.Review) (review.Review, error)
	Delete(ctx context.Context, id int64) error
}
