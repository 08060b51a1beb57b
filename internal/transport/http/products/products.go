package products

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corray333/ecommerce-api/internal/service/models/product"
	"github.com/corray333/ecommerce-api/internal/service/services/catalogsvc"
	"github.com/corray333/ecommerce-api/internal/transport/http/respond"
	"github.com/corray333/ecommerce-api/pkg/http/middleware/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/shopspring/decimal"
)

// service is an interface for the service layer.
type service interface {
	CreateProduct(ctx context.Context, p product.Product) (product.Product, error)
	GetProduct(ctx context.Context, id int64) (*product.Product, error)
	QueryProducts(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)
	UpdateProduct(ctx context.Context, p product.Product) (product.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// productRequest represents a create or update product request.
type productRequest struct {
	Name          string          `json:"name"           validate:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    int64           `json:"category_id"    validate:"gt=0"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	ImageURL      string          `json:"image_url"`
}

// Validate validates the product request.
func (r *productRequest) Validate() error {
	if r.Price.LessThan(decimal.NewFromFloat(0.01)) {
		return errors.New("price must be at least 0.01")
	}

	return validator.New().Struct(r)
}

func (r *productRequest) toModel() product.Product {
	return product.Product{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		CategoryID:    r.CategoryID,
		StockQuantity: r.StockQuantity,
		ImageURL:      r.ImageURL,
	}
}

// queryProductsRequest represents the list products query string.
type queryProductsRequest struct {
	PriceMin *float64 `schema:"price_min,omitempty"`
	PriceMax *float64 `schema:"price_max,omitempty"`
	StockMin *int     `schema:"stock_min,omitempty"`
	StockMax *int     `schema:"stock_max,omitempty"`
	Category string   `schema:"category,omitempty"`
	Search   string   `schema:"search,omitempty"`
	Ordering string   `schema:"ordering,omitempty"`
	Limit    int      `schema:"limit,omitempty"`
	Offset   int      `schema:"offset,omitempty"`
}

func (q *queryProductsRequest) toModel() *product.QueryProductsModel {
	model := &product.QueryProductsModel{
		Category: q.Category,
		Search:   q.Search,
		OrderBy:  q.Ordering,
		Limit:    q.Limit,
		Offset:   q.Offset,
		StockMin: q.StockMin,
		StockMax: q.StockMax,
	}
	if q.PriceMin != nil {
		min := decimal.NewFromFloat(*q.PriceMin)
		model.PriceMin = &min
	}
	if q.PriceMax != nil {
		max := decimal.NewFromFloat(*q.PriceMax)
		model.PriceMax = &max
	}

	return model
}

// CreateProduct handles the create product request.
func CreateProduct(w http.ResponseWriter, r *http.Request, service service) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")

		return
	}

	req := productRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	p := req.toModel()
	p.CreatedBy = userID

	created, err := service.CreateProduct(r.Context(), p)
	if err != nil {
		writeCatalogError(w, err, "failed to create product")

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

// ListProducts handles the list products request.
func ListProducts(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	query := &queryProductsRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid query parameters")

		return
	}

	products, err := service.QueryProducts(r.Context(), query.toModel())
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to list products")
		slog.Error("failed to list products", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, products)
}

// GetProduct handles the get product request.
func GetProduct(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid product id")

		return
	}

	p, err := service.GetProduct(r.Context(), id)
	if err != nil {
		writeCatalogError(w, err, "failed to get product")

		return
	}

	respond.JSON(w, http.StatusOK, p)
}

// UpdateProduct handles the update product request.
func UpdateProduct(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid product id")

		return
	}

	req := productRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	p := req.toModel()
	p.ID = id

	updated, err := service.UpdateProduct(r.Context(), p)
	if err != nil {
		writeCatalogError(w, err, "failed to update product")

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}

// DeleteProduct handles the delete product request.
func DeleteProduct(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid product id")

		return
	}

	if err := service.DeleteProduct(r.Context(), id); err != nil {
		writeCatalogError(w, err, "failed to delete product")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeCatalogError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, catalogsvc.ErrProductNotFound):
		respond.Error(w, http.StatusNotFound, "product not found")
	case errors.Is(err, catalogsvc.ErrCategoryNotFound):
		respond.Error(w, http.StatusBadRequest, "category not found")
	case errors.Is(err, catalogsvc.ErrNameTaken):
		respond.Error(w, http.StatusBadRequest, "name already taken")
	case errors.Is(err, catalogsvc.ErrProductReferenced):
		respond.Error(w, http.StatusConflict, "product is referenced by orders")
	default:
		respond.Error(w, http.StatusInternalServerError, fallback)
		slog.Error(fallback, "error", err)
	}
}
