package iuserrepo

import (
	"context"
	"errors"

	"github.com/corray333/ecommerce-api/internal/service/models/user"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already taken")
)

// IUserRepository is an interface for the user postgres repository.
type IUserRepository interface {
	Insert(ctx context.Context, u user.User) (user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
}
