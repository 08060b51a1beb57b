package wishlistsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iwishlistrepo"
	"github.com/corray333/ecommerce-api/internal/service/models/product"
	"github.com/corray333/ecommerce-api/internal/service/models/wishlist"
)

var (
	// ErrProductNotFound is returned when the product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrAlreadyInWishlist is returned when the product was added before.
	ErrAlreadyInWishlist = errors.New("product already in wishlist")
	// ErrNotInWishlist is returned when the product is not in the wishlist.
	ErrNotInWishlist = errors.New("product not in wishlist")
)

// WishlistService manages per-user wishlists.
type WishlistService struct {
	log          *slog.Logger
	wishlistRepo iwishlistrepo.IWishlistRepository
	productRepo  iproductrepo.IProductRepository
}

// option is a function that configures the WishlistService.
type option func(*WishlistService)

// MustNewWishlistService creates a new WishlistService.
func MustNewWishlistService(opts ...option) *WishlistService {
	s := &WishlistService{
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.wishlistRepo == nil || s.productRepo == nil {
		panic("wishlistsvc: wishlist and product repositories are required")
	}

	return s
}

// WithLogger sets the logger for the WishlistService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithLogger(log *slog.Logger) option {
	return func(s *WishlistService) {
		s.log = log
	}
}

// WithWishlistRepository sets the wishlist repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithWishlistRepository(repo iwishlistrepo.IWishlistRepository) option {
	return func(s *WishlistService) {
		s.wishlistRepo = repo
	}
}

// WithProductRepository sets the product repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo iproductrepo.IProductRepository) option {
	return func(s *WishlistService) {
		s.productRepo = repo
	}
}

// GetWishlist returns the user's wishlist with its products.
func (s *WishlistService) GetWishlist(ctx context.Context, userID int64) (wishlist.Wishlist, error) {
	id, err := s.wishlistRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return wishlist.Wishlist{}, fmt.Errorf("failed to get wishlist: %w", err)
	}

	products, err := s.wishlistRepo.Products(ctx, id)
	if err != nil {
		return wishlist.Wishlist{}, fmt.Errorf("failed to get wishlist products: %w", err)
	}

	if products == nil {
		products = []product.Product{}
	}

	return wishlist.Wishlist{ID: id, UserID: userID, Products: products}, nil
}

// AddProduct puts a product into the user's wishlist.
func (s *WishlistService) AddProduct(ctx context.Context, userID, productID int64) error {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, iproductrepo.ErrNotFound) {
			return ErrProductNotFound
		}

		return fmt.Errorf("failed to get product: %w", err)
	}

	id, err := s.wishlistRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get wishlist: %w", err)
	}

	has, err := s.wishlistRepo.Has(ctx, id, productID)
	if err != nil {
		return fmt.Errorf("failed to check wishlist: %w", err)
	}
	if has {
		return ErrAlreadyInWishlist
	}

	if err := s.wishlistRepo.AddProduct(ctx, id, productID); err != nil {
		return fmt.Errorf("failed to add product to wishlist: %w", err)
	}

	return nil
}

// RemoveProduct drops a product from the user's wishlist.
func (s *WishlistService) RemoveProduct(ctx context.Context, userID, productID int64) error {
	id, err := s.wishlistRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get wishlist: %w", err)
	}

	if err := s.wishlistRepo.RemoveProduct(ctx, id, productID); err != nil {
		if errors.Is(err, iwishlistrepo.ErrProductNotInWishlist) {
			return ErrNotInWishlist
		}

		return fmt.Errorf("failed to remove product from wishlist: %w", err)
	}

	return nil
}
