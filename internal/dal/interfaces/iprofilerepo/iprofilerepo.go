package iprofilerepo

import (
	"context"
	"errors"

	"github.com/corray333/ecommerce-api/internal/service/models/profile"
)

var (
	ErrNotFound      = errors.New("profile not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// IProfileRepository is an interface for the profile postgres repository.
type IProfileRepository interface {
	Insert(ctx context.Context, p profile.Profile) (profile.Profile, error)
	GetByID(ctx context.Context, id int64) (*profile.Profile, error)
	List(ctx context.Context) ([]profile.Profile, error)
	Update(ctx context.Context, p profile.Profile) (profile.Profile, error)
	Delete(ctx context.Context, id int64) error
}
