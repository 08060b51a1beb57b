package catalogsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/ecommerce-api/internal/dal/interfaces/icategoryrepo"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/idiscountrepo"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/ecommerce-api/internal/service/models/category"
	"github.com/corray333/ecommerce-api/internal/service/models/product"
)

var (
	// ErrProductNotFound is returned when the product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound is returned when the category does not exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrNameTaken is returned on a duplicate product or category name.
	ErrNameTaken = errors.New("name already taken")
	// ErrProductReferenced is returned when a product cannot be deleted
	// because existing orders reference it.
	ErrProductReferenced = errors.New("product is referenced by orders")
)

// CatalogService manages products and categories.
type CatalogService struct {
	log          *slog.Logger
	productRepo  iproductrepo.IProductRepository
	categoryRepo icategoryrepo.ICategoryRepository
	discountRepo idiscountrepo.IDiscountRepository
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.productRepo == nil || s.categoryRepo == nil || s.discountRepo == nil {
		panic("catalogsvc: product, category and discount repositories are required")
	}

	return s
}

// WithLogger sets the logger for the CatalogService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithLogger(log *slog.Logger) option {
	return func(s *CatalogService) {
		s.log = log
	}
}

// WithProductRepository sets the product repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo iproductrepo.IProductRepository) option {
	return func(s *CatalogService) {
		s.productRepo = repo
	}
}

// WithCategoryRepository sets the category repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCategoryRepository(repo icategoryrepo.ICategoryRepository) option {
	return func(s *CatalogService) {
		s.categoryRepo = repo
	}
}

// WithDiscountRepository sets the discount repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithDiscountRepository(repo idiscountrepo.IDiscountRepository) option {
	return func(s *CatalogService) {
		s.discountRepo = repo
	}
}

// CreateProduct creates a product after checking its category exists.
func (s *CatalogService) CreateProduct(ctx context.Context, p product.Product) (product.Product, error) {
	if _, err := s.categoryRepo.GetByID(ctx, p.CategoryID); err != nil {
		if errors.Is(err, icategoryrepo.ErrNotFound) {
			return product.Product{}, ErrCategoryNotFound
		}

		return product.Product{}, fmt.Errorf("failed to get category: %w", err)
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := s.productRepo.Insert(ctx, p)
	if err != nil {
		if errors.Is(err, iproductrepo.ErrNameTaken) {
			return product.Product{}, ErrNameTaken
		}

		return product.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	return created, nil
}

// GetProduct retrieves one product with its discounted price applied.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*product.Product, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, iproductrepo.ErrNotFound) {
			return nil, ErrProductNotFound
		}

		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	products := []product.Product{*p}
	if err := s.applyDiscounts(ctx, products); err != nil {
		return nil, err
	}

	return &products[0], nil
}

// QueryProducts retrieves products matching the filter, with discounted
// prices applied.
func (s *CatalogService) QueryProducts(
	ctx context.Context,
	filter *product.QueryProductsModel,
) ([]product.Product, error) {
	products, err := s.productRepo.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	if err := s.applyDiscounts(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

// UpdateProduct overwrites a product after checking its category exists.
func (s *CatalogService) UpdateProduct(ctx context.Context, p product.Product) (product.Product, error) {
	if _, err := s.categoryRepo.GetByID(ctx, p.CategoryID); err != nil {
		if errors.Is(err, icategoryrepo.ErrNotFound) {
			return product.Product{}, ErrCategoryNotFound
		}

		return product.Product{}, fmt.Errorf("failed to get category: %w", err)
	}

	p.UpdatedAt = time.Now()

	updated, err := s.productRepo.Update(ctx, p)
	if err != nil {
		switch {
		case errors.Is(err, iproductrepo.ErrNotFound):
			return product.Product{}, ErrProductNotFound
		case errors.Is(err, iproductrepo.ErrNameTaken):
			return product.Product{}, ErrNameTaken
		}

		return product.Product{}, fmt.Errorf("failed to update product: %w", err)
	}

	return updated, nil
}

// DeleteProduct removes a product. Products referenced by order items
// cannot be deleted, so order history keeps its integrity.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, iproductrepo.ErrNotFound):
			return ErrProductNotFound
		case errors.Is(err, iproductrepo.ErrReferenced):
			return ErrProductReferenced
		}

		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// CreateCategory creates a category.
func (s *CatalogService) CreateCategory(ctx context.Context, c category.Category) (category.Category, error) {
	created, err := s.categoryRepo.Insert(ctx, c)
	if err != nil {
		if errors.Is(err, icategoryrepo.ErrNameTaken) {
			return category.Category{}, ErrNameTaken
		}

		return category.Category{}, fmt.Errorf("failed to insert category: %w", err)
	}

	return created, nil
}

// GetCategory retrieves one category.
func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*category.Category, error) {
	c, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, icategoryrepo.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}

		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return c, nil
}

// ListCategories retrieves all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]category.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

// UpdateCategory overwrites a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, c category.Category) (category.Category, error) {
	updated, err := s.categoryRepo.Update(ctx, c)
	if err != nil {
		switch {
		case errors.Is(err, icategoryrepo.ErrNotFound):
			return category.Category{}, ErrCategoryNotFound
		case errors.Is(err, icategoryrepo.ErrNameTaken):
			return category.Category{}, ErrNameTaken
		}

		return category.Category{}, fmt.Errorf("failed to update category: %w", err)
	}

	return updated, nil
}

// DeleteCategory removes a category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, icategoryrepo.ErrNotFound) {
			return ErrCategoryNotFound
		}

		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}

func (s *CatalogService) applyDiscounts(ctx context.Context, products []product.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	active, err := s.discountRepo.ActiveForProducts(ctx, ids, time.Now())
	if err != nil {
		return fmt.Errorf("failed to get active discounts: %w", err)
	}

	for i := range products {
		if d, ok := active[products[i].ID]; ok {
			discounted := d.Apply(products[i].Price)
			products[i].DiscountedPrice = &discounted
		}
	}

	return nil
}
