package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/ecommerce-api/internal/service/models/wishlist"
	"github.com/corray333/ecommerce-api/internal/service/services/wishlistsvc"
	"github.com/corray333/ecommerce-api/internal/transport/http/respond"
	"github.com/corray333/ecommerce-api/pkg/http/middleware/auth"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	GetWishlist(ctx context.Context, userID int64) (wishlist.Wishlist, error)
	AddProduct(ctx context.Context, userID, productID int64) error
	RemoveProduct(ctx context.Context, userID, productID int64) error
}

// addProductRequest represents an add to wishlist request.
type addProductRequest struct {
	ProductID int64 `json:"product_id" validate:"gt=0"`
}

// updateWishlistRequest represents an update wishlist request.
type updateWishlistRequest struct {
	ProductID int64  `json:"product_id" validate:"gt=0"`
	Action    string `json:"action"     validate:"required,oneof=add remove"`
}

// GetWishlist handles the get wishlist request.
func GetWishlist(w http.ResponseWriter, r *http.Request, service service) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")

		return
	}

	wl, err := service.GetWishlist(r.Context(), userID)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to get wishlist")
		slog.Error("failed to get wishlist", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, wl)
}

// AddProduct handles the add to wishlist request.
func AddProduct(w http.ResponseWriter, r *http.Request, service service) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")

		return
	}

	req := addProductRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	if err := service.AddProduct(r.Context(), userID, req.ProductID); err != nil {
		writeWishlistError(w, err, "failed to add product to wishlist")

		return
	}

	respond.JSON(w, http.StatusCreated, map[string]string{"message": "Product added to wishlist"})
}

// UpdateWishlist handles the update wishlist request, adding or removing
// a product depending on the requested action.
func UpdateWishlist(w http.ResponseWriter, r *http.Request, service service) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")

		return
	}

	req := updateWishlistRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	var err error
	switch req.Action {
	case "add":
		err = service.AddProduct(r.Context(), userID, req.ProductID)
	case "remove":
		err = service.RemoveProduct(r.Context(), userID, req.ProductID)
	}
	if err != nil {
		writeWishlistError(w, err, "failed to update wishlist")

		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "Wishlist updated"})
}

func writeWishlistError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, wishlistsvc.ErrProductNotFound):
		respond.Error(w, http.StatusNotFound, "product not found")
	case errors.Is(err, wishlistsvc.ErrAlreadyInWishlist), errors.Is(err, wishlistsvc.ErrNotInWishlist):
		respond.Error(w, http.StatusBadRequest, err.Error())
	default:
		respond.Error(w, http.StatusInternalServerError, fallback)
		slog.Error(fallback, "error", err)
	}
}
