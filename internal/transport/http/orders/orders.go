package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corray333/ecommerce-api/internal/service/models/order"
	"github.com/corray333/ecommerce-api/internal/service/models/orderitem"
	"github.com/corray333/ecommerce-api/internal/service/services/ordersvc"
	"github.com/corray333/ecommerce-api/internal/transport/http/respond"
	"github.com/corray333/ecommerce-api/pkg/http/middleware/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, userID int64, items []orderitem.OrderItem) (int64, error)
	ListOrders(ctx context.Context, userID int64) ([]order.Summary, error)
	GetOrder(ctx context.Context, userID, orderID int64) (order.Summary, error)
}

// itemInPlaceOrderRequest represents an item in a place order request.
type itemInPlaceOrderRequest struct {
	ProductID int64 `json:"product_id" validate:"gt=0"`
	Quantity  int   `json:"quantity"   validate:"gt=0"`
}

// placeOrderRequest represents a place order request.
type placeOrderRequest struct {
	Items []itemInPlaceOrderRequest `json:"items" validate:"required,min=1,dive"`
}

// Validate validates the place order request.
func (r *placeOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *placeOrderRequest) toModel() []orderitem.OrderItem {
	items := make([]orderitem.OrderItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = orderitem.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	return items
}

// PlaceOrder handles the place order request.
func PlaceOrder(w http.ResponseWriter, r *http.Request, service service) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")

		return
	}

	req := placeOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		slog.Error("failed to decode place order request", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	orderID, err := service.PlaceOrder(r.Context(), userID, req.toModel())
	if err != nil {
		writePlaceOrderError(w, err)

		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"message":  "Order placed successfully",
		"order_id": orderID,
	})
}

func writePlaceOrderError(w http.ResponseWriter, err error) {
	var notFound *ordersvc.ProductNotFoundError
	var noStock *ordersvc.InsufficientStockError

	switch {
	case errors.Is(err, ordersvc.ErrEmptyOrder), errors.Is(err, ordersvc.ErrInvalidItem):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFound):
		respond.JSON(w, http.StatusNotFound, map[string]any{
			"error":      notFound.Error(),
			"product_id": notFound.ProductID,
		})
	case errors.As(err, &noStock):
		respond.JSON(w, http.StatusBadRequest, map[string]any{
			"error":      noStock.Error(),
			"product_id": noStock.ProductID,
			"available":  noStock.Available,
			"requested":  noStock.Requested,
		})
	default:
		respond.Error(w, http.StatusInternalServerError, "failed to place order")
		slog.Error("failed to place order", "error", err)
	}
}

// ListOrders handles the list orders request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")

		return
	}

	summaries, err := service.ListOrders(r.Context(), userID)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to list orders")
		slog.Error("failed to list orders", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, summaries)
}

// GetOrder handles the get order request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")

		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "order_id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid order id")

		return
	}

	summary, err := service.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, ordersvc.ErrOrderNotFound) {
			respond.Error(w, http.StatusNotFound, "order not found")

			return
		}

		respond.Error(w, http.StatusInternalServerError, "failed to get order")
		slog.Error("failed to get order", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, summary)
}
