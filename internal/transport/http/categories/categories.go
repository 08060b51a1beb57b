package categories

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corray333/ecommerce-api/internal/service/models/category"
	"github.com/corray333/ecommerce-api/internal/service/services/catalogsvc"
	"github.com/corray333/ecommerce-api/internal/transport/http/respond"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	CreateCategory(ctx context.Context, c category.Category) (category.Category, error)
	GetCategory(ctx context.Context, id int64) (*category.Category, error)
	ListCategories(ctx context.Context) ([]category.Category, error)
	UpdateCategory(ctx context.Context, c category.Category) (category.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// categoryRequest represents a create or update category request.
type categoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// Validate validates the category request.
func (r *categoryRequest) Validate() error {
	return validator.New().Struct(r)
}

// CreateCategory handles the create category request.
func CreateCategory(w http.ResponseWriter, r *http.Request, service service) {
	req := categoryRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	created, err := service.CreateCategory(r.Context(), category.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeCategoryError(w, err, "failed to create category")

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

// ListCategories handles the list categories request.
func ListCategories(w http.ResponseWriter, r *http.Request, service service) {
	categories, err := service.ListCategories(r.Context())
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to list categories")
		slog.Error("failed to list categories", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, categories)
}

// GetCategory handles the get category request.
func GetCategory(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid category id")

		return
	}

	c, err := service.GetCategory(r.Context(), id)
	if err != nil {
		writeCategoryError(w, err, "failed to get category")

		return
	}

	respond.JSON(w, http.StatusOK, c)
}

// UpdateCategory handles the update category request.
func UpdateCategory(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid category id")

		return
	}

	req := categoryRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	updated, err := service.UpdateCategory(r.Context(), category.Category{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeCategoryError(w, err, "failed to update category")

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}

// DeleteCategory handles the delete category request.
func DeleteCategory(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid category id")

		return
	}

	if err := service.DeleteCategory(r.Context(), id); err != nil {
		writeCategoryError(w, err, "failed to delete category")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeCategoryError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, catalogsvc.ErrCategoryNotFound):
		respond.Error(w, http.StatusNotFound, "category not found")
	case errors.Is(err, catalogsvc.ErrNameTaken):
		respond.Error(w, http.StatusBadRequest, "name already taken")
	default:
		respond.Error(w, http.StatusInternalServerError, fallback)
		slog.Error(fallback, "error", err)
	}
}
