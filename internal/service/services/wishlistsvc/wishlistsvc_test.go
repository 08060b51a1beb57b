package wishlistsvc

import (
	"context"
	"testing"

	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iwishlistrepo"
	"github.com/corray333/ecommerce-api/internal/service/models/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWishlistRepo implements iwishlistrepo.IWishlistRepository for testing.
type mockWishlistRepo struct {
	wishlists map[int64]int64           // user id -> wishlist id
	contents  map[int64]map[int64]bool  // wishlist id -> product ids
	products  map[int64]product.Product // catalog shared with mockProductRepo
	nextID    int64
}

func (m *mockWishlistRepo) GetOrCreate(_ context.Context, userID int64) (int64, error) {
	if id, ok := m.wishlists[userID]; ok {
		return id, nil
	}
	m.nextID++
	m.wishlists[userID] = m.nextID
	m.contents[m.nextID] = map[int64]bool{}

	return m.nextID, nil
}

func (m *mockWishlistRepo) Products(_ context.Context, wishlistID int64) ([]product.Product, error) {
	var result []product.Product
	for id := range m.contents[wishlistID] {
		result = append(result, m.products[id])
	}

	return result, nil
}

func (m *mockWishlistRepo) Has(_ context.Context, wishlistID, productID int64) (bool, error) {
	return m.contents[wishlistID][productID], nil
}

func (m *mockWishlistRepo) AddProduct(_ context.Context, wishlistID, productID int64) error {
	m.contents[wishlistID][productID] = true

	return nil
}

func (m *mockWishlistRepo) RemoveProduct(_ context.Context, wishlistID, productID int64) error {
	if !m.contents[wishlistID][productID] {
		return iwishlistrepo.ErrProductNotInWishlist
	}
	delete(m.contents[wishlistID], productID)

	return nil
}

// mockProductRepo implements iproductrepo.IProductRepository for testing.
type mockProductRepo struct {
	products map[int64]product.Product
}

func (m *mockProductRepo) Insert(_ context.Context, p product.Product) (product.Product, error) {
	return p, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id int64) (*product.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, iproductrepo.ErrNotFound
	}

	return &p, nil
}

func (m *mockProductRepo) GetForUpdate(ctx context.Context, id int64) (*product.Product, error) {
	return m.GetByID(ctx, id)
}

func (m *mockProductRepo) Query(_ context.Context, _ *product.QueryProductsModel) ([]product.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) Update(_ context.Context, p product.Product) (product.Product, error) {
	return p, nil
}

func (m *mockProductRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

func (m *mockProductRepo) DecrementStock(_ context.Context, _ int64, _ int) error {
	return nil
}

func newTestService() *WishlistService {
	catalog := map[int64]product.Product{
		1: {ID: 1, Name: "Keyboard"},
		2: {ID: 2, Name: "Mouse"},
	}
	wishlistRepo := &mockWishlistRepo{
		wishlists: map[int64]int64{},
		contents:  map[int64]map[int64]bool{},
		products:  catalog,
	}
	productRepo := &mockProductRepo{products: catalog}

	return MustNewWishlistService(
		WithWishlistRepository(wishlistRepo),
		WithProductRepository(productRepo),
	)
}

func TestWishlist_AddAndGet(t *testing.T) {
	svc := newTestService()

	require.NoError(t, svc.AddProduct(context.Background(), 7, 1))

	wl, err := svc.GetWishlist(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, wl.Products, 1)
	assert.Equal(t, "Keyboard", wl.Products[0].Name)
}

func TestWishlist_AddTwice(t *testing.T) {
	svc := newTestService()

	require.NoError(t, svc.AddProduct(context.Background(), 7, 1))
	err := svc.AddProduct(context.Background(), 7, 1)

	assert.ErrorIs(t, err, ErrAlreadyInWishlist)
}

func TestWishlist_AddUnknownProduct(t *testing.T) {
	svc := newTestService()

	err := svc.AddProduct(context.Background(), 7, 42)

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestWishlist_Remove(t *testing.T) {
	svc := newTestService()

	require.NoError(t, svc.AddProduct(context.Background(), 7, 1))
	require.NoError(t, svc.RemoveProduct(context.Background(), 7, 1))

	wl, err := svc.GetWishlist(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, wl.Products)
}

func TestWishlist_RemoveMissing(t *testing.T) {
	svc := newTestService()

	err := svc.RemoveProduct(context.Background(), 7, 1)

	assert.ErrorIs(t, err, ErrNotInWishlist)
}

func TestWishlist_EmptyByDefault(t *testing.T) {
	svc := newTestService()

	wl, err := svc.GetWishlist(context.Background(), 7)

	require.NoError(t, err)
	assert.NotNil(t, wl.Products)
	assert.Empty(t, wl.Products)
}
