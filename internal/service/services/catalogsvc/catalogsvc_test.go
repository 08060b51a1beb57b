package catalogsvc

import (
	"context"
	"testing"
	"time"

	"github.com/corray333/ecommerce-api/internal/dal/interfaces/icategoryrepo"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/ecommerce-api/internal/service/models/category"
	"github.com/corray333/ecommerce-api/internal/service/models/discount"
	"github.com/corray333/ecommerce-api/internal/service/models/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductRepo implements iproductrepo.IProductRepository for testing.
type mockProductRepo struct {
	products   map[int64]*product.Product
	nextID     int64
	lastFilter *product.QueryProductsModel
	deleteErr  error
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: map[int64]*product.Product{}}
}

func (m *mockProductRepo) Insert(_ context.Context, p product.Product) (product.Product, error) {
	m.nextID++
	p.ID = m.nextID
	m.products[p.ID] = &p

	return p, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id int64) (*product.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, iproductrepo.ErrNotFound
	}
	cp := *p

	return &cp, nil
}

func (m *mockProductRepo) GetForUpdate(ctx context.Context, id int64) (*product.Product, error) {
	return m.GetByID(ctx, id)
}

func (m *mockProductRepo) Query(_ context.Context, filter *product.QueryProductsModel) ([]product.Product, error) {
	m.lastFilter = filter

	var result []product.Product
	for _, p := range m.products {
		result = append(result, *p)
	}

	return result, nil
}

func (m *mockProductRepo) Update(_ context.Context, p product.Product) (product.Product, error) {
	if _, ok := m.products[p.ID]; !ok {
		return product.Product{}, iproductrepo.ErrNotFound
	}
	m.products[p.ID] = &p

	return p, nil
}

func (m *mockProductRepo) Delete(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.products[id]; !ok {
		return iproductrepo.ErrNotFound
	}
	delete(m.products, id)

	return nil
}

func (m *mockProductRepo) DecrementStock(_ context.Context, _ int64, _ int) error {
	return nil
}

// mockCategoryRepo implements icategoryrepo.ICategoryRepository for testing.
type mockCategoryRepo struct {
	categories map[int64]*category.Category
}

func (m *mockCategoryRepo) Insert(_ context.Context, c category.Category) (category.Category, error) {
	c.ID = int64(len(m.categories) + 1)
	m.categories[c.ID] = &c

	return c, nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id int64) (*category.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, icategoryrepo.ErrNotFound
	}

	return c, nil
}

func (m *mockCategoryRepo) List(_ context.Context) ([]category.Category, error) {
	var result []category.Category
	for _, c := range m.categories {
		result = append(result, *c)
	}

	return result, nil
}

func (m *mockCategoryRepo) Update(_ context.Context, c category.Category) (category.Category, error) {
	return c, nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

// mockDiscountRepo implements idiscountrepo.IDiscountRepository for testing.
type mockDiscountRepo struct {
	active map[int64]discount.Discount
}

func (m *mockDiscountRepo) Insert(_ context.Context, d discount.Discount) (discount.Discount, error) {
	return d, nil
}

func (m *mockDiscountRepo) List(_ context.Context) ([]discount.Discount, error) {
	return nil, nil
}

func (m *mockDiscountRepo) Update(_ context.Context, d discount.Discount) (discount.Discount, error) {
	return d, nil
}

func (m *mockDiscountRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

func (m *mockDiscountRepo) ActiveForProducts(
	_ context.Context,
	_ []int64,
	_ time.Time,
) (map[int64]discount.Discount, error) {
	return m.active, nil
}

func newTestService() (*CatalogService, *mockProductRepo, *mockCategoryRepo, *mockDiscountRepo) {
	productRepo := newMockProductRepo()
	categoryRepo := &mockCategoryRepo{categories: map[int64]*category.Category{}}
	discountRepo := &mockDiscountRepo{active: map[int64]discount.Discount{}}
	svc := MustNewCatalogService(
		WithProductRepository(productRepo),
		WithCategoryRepository(categoryRepo),
		WithDiscountRepository(discountRepo),
	)

	return svc, productRepo, categoryRepo, discountRepo
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CreateProduct(context.Background(), product.Product{
		Name:       "Keyboard",
		Price:      decimal.RequireFromString("49.90"),
		CategoryID: 42,
	})

	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestGetProduct_AppliesActiveDiscount(t *testing.T) {
	svc, _, categoryRepo, discountRepo := newTestService()

	c, err := categoryRepo.Insert(context.Background(), category.Category{Name: "Peripherals"})
	require.NoError(t, err)

	p, err := svc.CreateProduct(context.Background(), product.Product{
		Name:       "Keyboard",
		Price:      decimal.RequireFromString("100.00"),
		CategoryID: c.ID,
	})
	require.NoError(t, err)

	discountRepo.active[p.ID] = discount.Discount{
		ProductID:          p.ID,
		DiscountPercentage: decimal.RequireFromString("25"),
	}

	got, err := svc.GetProduct(context.Background(), p.ID)

	require.NoError(t, err)
	require.NotNil(t, got.DiscountedPrice)
	assert.Equal(t, "75", got.DiscountedPrice.String())
	assert.Equal(t, "100", got.Price.String())

	// Products without an active discount carry no discounted price.
	delete(discountRepo.active, p.ID)
	got, err = svc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DiscountedPrice)
}

func TestQueryProducts_PassesFilterThrough(t *testing.T) {
	svc, productRepo, _, _ := newTestService()

	min := decimal.RequireFromString("10")
	filter := &product.QueryProductsModel{
		PriceMin: &min,
		Category: "Peripherals",
		Search:   "key",
		OrderBy:  product.OrderByPrice,
	}

	_, err := svc.QueryProducts(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, filter, productRepo.lastFilter)
}

func TestDeleteProduct_BlockedWhileReferenced(t *testing.T) {
	svc, productRepo, _, _ := newTestService()
	productRepo.deleteErr = iproductrepo.ErrReferenced

	err := svc.DeleteProduct(context.Background(), 1)

	assert.ErrorIs(t, err, ErrProductReferenced)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	err := svc.DeleteProduct(context.Background(), 99)

	assert.ErrorIs(t, err, ErrProductNotFound)
}
