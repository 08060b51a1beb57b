package reviewsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/ireviewrepo"
	"github.com/corray333/ecommerce-api/internal/service/models/review"
)

var (
	// ErrProductNotFound is returned when the reviewed product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrReviewNotFound is returned when the review does not exist or
	// belongs to another user.
	ErrReviewNotFound = errors.New("review not found")
	// ErrDuplicateReview is returned when the user already reviewed the product.
	ErrDuplicateReview = errors.New("user already reviewed this product")
	// ErrInvalidRating is returned when the rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// ReviewService manages product reviews.
type ReviewService struct {
	log         *slog.Logger
	reviewRepo  ireviewrepo.IReviewRepository
	productRepo iproductrepo.IProductRepository
}

// option is a function that configures the ReviewService.
type option func(*ReviewService)

// MustNewReviewService creates a new ReviewService.
func MustNewReviewService(opts ...option) *ReviewService {
	s := &ReviewService{
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.reviewRepo == nil || s.productRepo == nil {
		panic("reviewsvc: review and product repositories are required")
	}

	return s
}

// WithLogger sets the logger for the ReviewService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithLogger(log *slog.Logger) option {
	return func(s *ReviewService) {
		s.log = log
	}
}

// WithReviewRepository sets the review repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithReviewRepository(repo ireviewrepo.IReviewRepository) option {
	return func(s *ReviewService) {
		s.reviewRepo = repo
	}
}

// WithProductRepository sets the product repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo iproductrepo.IProductRepository) option {
	return func(s *ReviewService) {
		s.productRepo = repo
	}
}

// CreateReview adds a review. A user may review a product once.
func (s *ReviewService) CreateReview(ctx context.Context, rv review.Review) (review.Review, error) {
	if rv.Rating < 1 || rv.Rating > 5 {
		return review.Review{}, ErrInvalidRating
	}

	if _, err := s.productRepo.GetByID(ctx, rv.ProductID); err != nil {
		if errors.Is(err, iproductrepo.ErrNotFound) {
			return review.Review{}, ErrProductNotFound
		}

		return review.Review{}, fmt.Errorf("failed to get product: %w", err)
	}

	rv.CreatedAt = time.Now()

	created, err := s.reviewRepo.Insert(ctx, rv)
	if err != nil {
		if errors.Is(err, ireviewrepo.ErrDuplicate) {
			return review.Review{}, ErrDuplicateReview
		}

		return review.Review{}, fmt.Errorf("failed to insert review: %w", err)
	}

	return created, nil
}

// ListReviews retrieves all reviews of a product.
func (s *ReviewService) ListReviews(ctx context.Context, productID int64) ([]review.Review, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, iproductrepo.ErrNotFound) {
			return nil, ErrProductNotFound
		}

		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

// UpdateReview changes the rating and comment of the user's own review.
func (s *ReviewService) UpdateReview(
	ctx context.Context,
	userID, productID, reviewID int64,
	rating int,
	comment string,
) (review.Review, error) {
	if rating < 1 || rating > 5 {
		return review.Review{}, ErrInvalidRating
	}

	rv, err := s.reviewRepo.GetOwned(ctx, reviewID, userID, productID)
	if err != nil {
		if errors.Is(err, ireviewrepo.ErrNotFound) {
			return review.Review{}, ErrReviewNotFound
		}

		return review.Review{}, fmt.Errorf("failed to get review: %w", err)
	}

	rv.Rating = rating
	rv.Comment = comment

	updated, err := s.reviewRepo.Update(ctx, *rv)
	if err != nil {
		if errors.Is(err, ireviewrepo.ErrNotFound) {
			return review.Review{}, ErrReviewNotFound
		}

		return review.Review{}, fmt.Errorf("failed to update review: %w", err)
	}

	return updated, nil
}

// DeleteReview removes the user's own review.
func (s *ReviewService) DeleteReview(ctx context.Context, userID, productID, reviewID int64) error {
	rv, err := s.reviewRepo.GetOwned(ctx, reviewID, userID, productID)
	if err != nil {
		if errors.Is(err, ireviewrepo.ErrNotFound) {
			return ErrReviewNotFound
		}

		return fmt.Errorf("failed to get review: %w", err)
	}

	if err := s.reviewRepo.Delete(ctx, rv.ID); err != nil {
		if errors.Is(err, ireviewrepo.ErrNotFound) {
			return ErrReviewNotFound
		}

		return fmt.Errorf("failed to delete review: %w", err)
	}

	return nil
}
