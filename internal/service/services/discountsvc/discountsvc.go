package discountsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/corray333/ecommerce-api/internal/dal/interfaces/idiscountrepo"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/ecommerce-api/internal/service/models/discount"
	"github.com/shopspring/decimal"
)

var (
	// ErrProductNotFound is returned when the discounted product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrDiscountNotFound is returned when the discount does not exist.
	ErrDiscountNotFound = errors.New("discount not found")
	// ErrInvalidPercentage is returned when the percentage is outside (0, 100].
	ErrInvalidPercentage = errors.New("discount percentage must be between 0 and 100")
	// ErrInvalidPeriod is returned when the start date is not before the end date.
	ErrInvalidPeriod = errors.New("discount start date must be before end date")
)

// DiscountService manages product discounts.
type DiscountService struct {
	log          *slog.Logger
	discountRepo idiscountrepo.IDiscountRepository
	productRepo  iproductrepo.IProductRepository
}

// option is a function that configures the DiscountService.
type option func(*DiscountService)

// MustNewDiscountService creates a new DiscountService.
func MustNewDiscountService(opts ...option) *DiscountService {
	s := &DiscountService{
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.discountRepo == nil || s.productRepo == nil {
		panic("discountsvc: discount and product repositories are required")
	}

	return s
}

// WithLogger sets the logger for the DiscountService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithLogger(log *slog.Logger) option {
	return func(s *DiscountService) {
		s.log = log
	}
}

// WithDiscountRepository sets the discount repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithDiscountRepository(repo idiscountrepo.IDiscountRepository) option {
	return func(s *DiscountService) {
		s.discountRepo = repo
	}
}

// WithProductRepository sets the product repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo iproductrepo.IProductRepository) option {
	return func(s *DiscountService) {
		s.productRepo = repo
	}
}

func (s *DiscountService) validate(ctx context.Context, d discount.Discount) error {
	if !d.DiscountPercentage.IsPositive() ||
		d.DiscountPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidPercentage
	}

	if !d.StartDate.Before(d.EndDate) {
		return ErrInvalidPeriod
	}

	if _, err := s.productRepo.GetByID(ctx, d.ProductID); err != nil {
		if errors.Is(err, iproductrepo.ErrNotFound) {
			return ErrProductNotFound
		}

		return fmt.Errorf("failed to get product: %w", err)
	}

	return nil
}

// CreateDiscount creates a discount for a product.
func (s *DiscountService) CreateDiscount(ctx context.Context, d discount.Discount) (discount.Discount, error) {
	if err := s.validate(ctx, d); err != nil {
		return discount.Discount{}, err
	}

	created, err := s.discountRepo.Insert(ctx, d)
	if err != nil {
		return discount.Discount{}, fmt.Errorf("failed to insert discount: %w", err)
	}

	return created, nil
}

// ListDiscounts retrieves all discounts.
func (s *DiscountService) ListDiscounts(ctx context.Context) ([]discount.Discount, error) {
	discounts, err := s.discountRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}

	return discounts, nil
}

// UpdateDiscount overwrites a discount.
func (s *DiscountService) UpdateDiscount(ctx context.Context, d discount.Discount) (discount.Discount, error) {
	if err := s.validate(ctx, d); err != nil {
		return discount.Discount{}, err
	}

	updated, err := s.discountRepo.Update(ctx, d)
	if err != nil {
		if errors.Is(err, idiscountrepo.ErrNotFound) {
			return discount.Discount{}, ErrDiscountNotFound
		}

		return discount.Discount{}, fmt.Errorf("failed to update discount: %w", err)
	}

	return updated, nil
}

// DeleteDiscount removes a discount.
func (s *DiscountService) DeleteDiscount(ctx context.Context, id int64) error {
	if err := s.discountRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, idiscountrepo.ErrNotFound) {
			return ErrDiscountNotFound
		}

		return fmt.Errorf("failed to delete discount: %w", err)
	}

	return nil
}
