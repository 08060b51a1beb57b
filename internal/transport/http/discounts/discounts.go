package discounts

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/corray333/ecommerce-api/internal/service/models/discount"
	"github.com/corray333/ecommerce-api/internal/service/services/discountsvc"
	"github.com/corray333/ecommerce-api/internal/transport/http/respond"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// service is an interface for the service layer.
type service interface {
	CreateDiscount(ctx context.Context, d discount.Discount) (discount.Discount, error)
	ListDiscounts(ctx context.Context) ([]discount.Discount, error)
	UpdateDiscount(ctx context.Context, d discount.Discount) (discount.Discount, error)
	DeleteDiscount(ctx context.Context, id int64) error
}

// discountRequest represents a create or update discount request.
type discountRequest struct {
	ProductID          int64           `json:"product_id"          validate:"gt=0"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	StartDate          time.Time       `json:"start_date"          validate:"required"`
	EndDate            time.Time       `json:"end_date"            validate:"required"`
}

// Validate validates the discount request.
func (r *discountRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *discountRequest) toModel() discount.Discount {
	return discount.Discount{
		ProductID:          r.ProductID,
		DiscountPercentage: r.DiscountPercentage,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
	}
}

// CreateDiscount handles the create discount request.
func CreateDiscount(w http.ResponseWriter, r *http.Request, service service) {
	req := discountRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	created, err := service.CreateDiscount(r.Context(), req.toModel())
	if err != nil {
		writeDiscountError(w, err, "failed to create discount")

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

// ListDiscounts handles the list discounts request.
func ListDiscounts(w http.ResponseWriter, r *http.Request, service service) {
	discounts, err := service.ListDiscounts(r.Context())
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to list discounts")
		slog.Error("failed to list discounts", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, discounts)
}

// UpdateDiscount handles the update discount request.
func UpdateDiscount(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid discount id")

		return
	}

	req := discountRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	d := req.toModel()
	d.ID = id

	updated, err := service.UpdateDiscount(r.Context(), d)
	if err != nil {
		writeDiscountError(w, err, "failed to update discount")

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}

// DeleteDiscount handles the delete discount request.
func DeleteDiscount(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid discount id")

		return
	}

	if err := service.DeleteDiscount(r.Context(), id); err != nil {
		writeDiscountError(w, err, "failed to delete discount")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeDiscountError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, discountsvc.ErrProductNotFound):
		respond.Error(w, http.StatusNotFound, "product not found")
	case errors.Is(err, discountsvc.ErrDiscountNotFound):
		respond.Error(w, http.StatusNotFound, "discount not found")
	case errors.Is(err, discountsvc.ErrInvalidPercentage), errors.Is(err, discountsvc.ErrInvalidPeriod):
		respond.Error(w, http.StatusBadRequest, err.Error())
	default:
		respond.Error(w, http.StatusInternalServerError, fallback)
		slog.Error(fallback, "error", err)
	}
}
