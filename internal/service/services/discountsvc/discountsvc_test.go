package discountsvc

import (
	"context"
	"testing"
	"time"

	"github.com/corray333/ecommerce-api/internal/dal/interfaces/idiscountrepo"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/ecommerce-api/internal/service/models/discount"
	"github.com/corray333/ecommerce-api/internal/service/models/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDiscountRepo implements idiscountrepo.IDiscountRepository for testing.
type mockDiscountRepo struct {
	discounts map[int64]*discount.Discount
	nextID    int64
}

func newMockDiscountRepo() *mockDiscountRepo {
	return &mockDiscountRepo{discounts: map[int64]*discount.Discount{}}
}

func (m *mockDiscountRepo) Insert(_ context.Context, d discount.Discount) (discount.Discount, error) {
	m.nextID++
	d.ID = m.nextID
	m.discounts[d.ID] = &d

	return d, nil
}

func (m *mockDiscountRepo) List(_ context.Context) ([]discount.Discount, error) {
	var result []discount.Discount
	for _, d := range m.discounts {
		result = append(result, *d)
	}

	return result, nil
}

func (m *mockDiscountRepo) Update(_ context.Context, d discount.Discount) (discount.Discount, error) {
	if _, ok := m.discounts[d.ID]; !ok {
		return discount.Discount{}, idiscountrepo.ErrNotFound
	}
	m.discounts[d.ID] = &d

	return d, nil
}

func (m *mockDiscountRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.discounts[id]; !ok {
		return idiscountrepo.ErrNotFound
	}
	delete(m.discounts, id)

	return nil
}

func (m *mockDiscountRepo) ActiveForProducts(
	_ context.Context,
	_ []int64,
	_ time.Time,
) (map[int64]discount.Discount, error) {
	return nil, nil
}

// mockProductRepo implements iproductrepo.IProductRepository for testing.
type mockProductRepo struct {
	products map[int64]*product.Product
}

func (m *mockProductRepo) Insert(_ context.Context, p product.Product) (product.Product, error) {
	return p, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id int64) (*product.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, iproductrepo.ErrNotFound
	}

	return p, nil
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

func newTestService() (*DiscountService, *mockDiscountRepo) {
	discountRepo := newMockDiscountRepo()
	productRepo := &mockProductRepo{products: map[int64]*product.Product{
		1: {ID: 1, Name: "Keyboard"},
	}}
	svc := MustNewDiscountService(
		WithDiscountRepository(discountRepo),
		WithProductRepository(productRepo),
	)

	return svc, discountRepo
}

func validDiscount() discount.Discount {
	return discount.Discount{
		ProductID:          1,
		DiscountPercentage: decimal.RequireFromString("25"),
		StartDate:          time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateDiscount_Success(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.CreateDiscount(context.Background(), validDiscount())

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestCreateDiscount_InvalidPercentage(t *testing.T) {
	svc, _ := newTestService()

	for _, raw := range []string{"0", "-10", "100.01"} {
		d := validDiscount()
		d.DiscountPercentage = decimal.RequireFromString(raw)

		_, err := svc.CreateDiscount(context.Background(), d)

		assert.ErrorIs(t, err, ErrInvalidPercentage, "percentage %s", raw)
	}
}

func TestCreateDiscount_FullPercentageAllowed(t *testing.T) {
	svc, _ := newTestService()

	d := validDiscount()
	d.DiscountPercentage = decimal.NewFromInt(100)

	_, err := svc.CreateDiscount(context.Background(), d)

	require.NoError(t, err)
}

func TestCreateDiscount_InvalidPeriod(t *testing.T) {
	svc, _ := newTestService()

	d := validDiscount()
	d.StartDate, d.EndDate = d.EndDate, d.StartDate

	_, err := svc.CreateDiscount(context.Background(), d)

	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestCreateDiscount_UnknownProduct(t *testing.T) {
	svc, _ := newTestService()

	d := validDiscount()
	d.ProductID = 42

	_, err := svc.CreateDiscount(context.Background(), d)

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateDiscount_NotFound(t *testing.T) {
	svc, _ := newTestService()

	d := validDiscount()
	d.ID = 99

	_, err := svc.UpdateDiscount(context.Background(), d)

	assert.ErrorIs(t, err, ErrDiscountNotFound)
}

func TestDeleteDiscount(t *testing.T) {
	svc, discountRepo := newTestService()

	created, err := svc.CreateDiscount(context.Background(), validDiscount())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDiscount(context.Background(), created.ID))
	assert.Empty(t, discountRepo.discounts)

	err = svc.DeleteDiscount(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrDiscountNotFound)
}
