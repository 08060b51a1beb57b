package icategoryrepo

import (
	"context"
	"errors"

	"github.com/corray333/ecommerce-api/internal/service/models/category"
)

var (
	ErrNotFound  = errors.New("category not found")
	ErrNameTaken = errors.New("category name already taken")
)

// ICategoryRepository is an interface for the category postgres repository.
type ICategoryRepository interface {
	Insert(ctx context.Context, c category.Category) (category.Category, error)
	GetByID(ctx context.Context, id int64) (*category.Category, error)
	List(ctx context.Context) ([]category.Category, error)
	Update(ctx context.Context, c category.Category) (category.Category, error)
	Delete(ctx context.Context, id int64) error
}
