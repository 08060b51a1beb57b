package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corray333/ecommerce-api/internal/service/models/review"
	"github.com/corray333/ecommerce-api/internal/service/services/reviewsvc"
	"github.com/corray333/ecommerce-api/internal/transport/http/respond"
	"github.com/corray333/ecommerce-api/pkg/http/middleware/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	CreateReview(ctx context.Context, rv review.Review) (review.Review, error)
	ListReviews(ctx context.Context, productID int64) ([]review.Review, error)
	UpdateReview(
		ctx context.Context,
		userID, productID, reviewID int64,
		rating int,
		comment string,
	) (review.Review, error)
	DeleteReview(ctx context.Context, userID, productID, reviewID int64) error
}

// reviewRequest represents a create or update review request.
type reviewRequest struct {
	Rating  int    `json:"rating"  validate:"gte=1,lte=5"`
	Comment string `json:"comment"`
}

// Validate validates the review request.
func (r *reviewRequest) Validate() error {
	return validator.New().Struct(r)
}

// CreateReview handles the create review request.
func CreateReview(w http.ResponseWriter, r *http.Request, service service) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")

		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid product id")

		return
	}

	req := reviewRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	created, err := service.CreateReview(r.Context(), review.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		writeReviewError(w, err, "failed to create review")

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

// ListReviews handles the list reviews request.
func ListReviews(w http.ResponseWriter, r *http.Request, service service) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid product id")

		return
	}

	reviews, err := service.ListReviews(r.Context(), productID)
	if err != nil {
		writeReviewError(w, err, "failed to list reviews")

		return
	}

	respond.JSON(w, http.StatusOK, reviews)
}

// UpdateReview handles the update review request.
func UpdateReview(w http.ResponseWriter, r *http.Request, service service) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")

		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid product id")

		return
	}

	reviewID, err := strconv.ParseInt(chi.URLParam(r, "review_id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid review id")

		return
	}

	req := reviewRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	updated, err := service.UpdateReview(r.Context(), userID, productID, reviewID, req.Rating, req.Comment)
	if err != nil {
		writeReviewError(w, err, "failed to update review")

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}

// DeleteReview handles the delete review request.
func DeleteReview(w http.ResponseWriter, r *http.Request, service service) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")

		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid product id")

		return
	}

	reviewID, err := strconv.ParseInt(chi.URLParam(r, "review_id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid review id")

		return
	}

	if err := service.DeleteReview(r.Context(), userID, productID, reviewID); err != nil {
		writeReviewError(w, err, "failed to delete review")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeReviewError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, reviewsvc.ErrProductNotFound):
		respond.Error(w, http.StatusNotFound, "product not found")
	case errors.Is(err, reviewsvc.ErrReviewNotFound):
		respond.Error(w, http.StatusNotFound, "review not found")
	case errors.Is(err, reviewsvc.ErrDuplicateReview), errors.Is(err, reviewsvc.ErrInvalidRating):
		respond.Error(w, http.StatusBadRequest, err.Error())
	default:
		respond.Error(w, http.StatusInternalServerError, fallback)
		slog.Error(fallback, "error", err)
	}
}
