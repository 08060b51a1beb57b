package users

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corray333/ecommerce-api/internal/service/models/profile"
	"github.com/corray333/ecommerce-api/internal/service/models/user"
	"github.com/corray333/ecommerce-api/internal/service/services/usersvc"
	"github.com/corray333/ecommerce-api/internal/transport/http/respond"
	"github.com/corray333/ecommerce-api/pkg/http/middleware/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	Register(ctx context.Context, email, password, passwordConfirm string) (user.User, error)
	Login(ctx context.Context, email, password string) (user.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (user.TokenPair, error)

	CreateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error)
	GetProfile(ctx context.Context, id int64) (*profile.Profile, error)
	ListProfiles(ctx context.Context) ([]profile.Profile, error)
	UpdateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error)
	DeleteProfile(ctx context.Context, id int64) error
}

// registerRequest represents a register request.
type registerRequest struct {
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

// loginRequest represents a login request.
type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// refreshRequest represents a token refresh request.
type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// profileRequest represents a create or update profile request.
type profileRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Username  string `json:"username"   validate:"required"`
	Picture   string `json:"picture"`
	Address   string `json:"address"`
	Country   string `json:"country"`
}

// Register handles the register request.
func Register(w http.ResponseWriter, r *http.Request, service service) {
	req := registerRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	u, err := service.Register(r.Context(), req.Email, req.Password, req.PasswordConfirm)
	if err != nil {
		switch {
		case errors.Is(err, usersvc.ErrPasswordMismatch), errors.Is(err, usersvc.ErrEmailTaken):
			respond.Error(w, http.StatusBadRequest, err.Error())
		default:
			respond.Error(w, http.StatusInternalServerError, "failed to register")
			slog.Error("failed to register user", "error", err)
		}

		return
	}

	respond.JSON(w, http.StatusCreated, u)
}

// Login handles the login request.
func Login(w http.ResponseWriter, r *http.Request, service service) {
	req := loginRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	pair, err := service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usersvc.ErrInvalidCredentials) {
			respond.Error(w, http.StatusUnauthorized, "invalid credentials")

			return
		}

		respond.Error(w, http.StatusInternalServerError, "failed to login")
		slog.Error("failed to login user", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, pair)
}

// Refresh handles the token refresh request.
func Refresh(w http.ResponseWriter, r *http.Request, service service) {
	req := refreshRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	pair, err := service.Refresh(r.Context(), req.Refresh)
	if err != nil {
		if errors.Is(err, usersvc.ErrInvalidCredentials) {
			respond.Error(w, http.StatusUnauthorized, "invalid refresh token")

			return
		}

		respond.Error(w, http.StatusInternalServerError, "failed to refresh tokens")
		slog.Error("failed to refresh tokens", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, pair)
}

// CreateProfile handles the create profile request.
func CreateProfile(w http.ResponseWriter, r *http.Request, service service) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")

		return
	}

	req := profileRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	created, err := service.CreateProfile(r.Context(), profile.Profile{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Picture:   req.Picture,
		Address:   req.Address,
		Country:   req.Country,
	})
	if err != nil {
		writeProfileError(w, err, "failed to create profile")

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

// ListProfiles handles the list profiles request.
func ListProfiles(w http.ResponseWriter, r *http.Request, service service) {
	profiles, err := service.ListProfiles(r.Context())
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to list profiles")
		slog.Error("failed to list profiles", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, profiles)
}

// GetProfile handles the get profile request.
func GetProfile(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid profile id")

		return
	}

	p, err := service.GetProfile(r.Context(), id)
	if err != nil {
		writeProfileError(w, err, "failed to get profile")

		return
	}

	respond.JSON(w, http.StatusOK, p)
}

// UpdateProfile handles the update profile request.
func UpdateProfile(w http.ResponseWriter, r *http.Request, service service) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")

		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid profile id")

		return
	}

	req := profileRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	updated, err := service.UpdateProfile(r.Context(), profile.Profile{
		ID:        id,
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Picture:   req.Picture,
		Address:   req.Address,
		Country:   req.Country,
	})
	if err != nil {
		writeProfileError(w, err, "failed to update profile")

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}

// DeleteProfile handles the delete profile request.
func DeleteProfile(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid profile id")

		return
	}

	if err := service.DeleteProfile(r.Context(), id); err != nil {
		writeProfileError(w, err, "failed to delete profile")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeProfileError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usersvc.ErrProfileNotFound):
		respond.Error(w, http.StatusNotFound, "profile not found")
	case errors.Is(err, usersvc.ErrUsernameTaken):
		respond.Error(w, http.StatusBadRequest, "username already taken")
	default:
		respond.Error(w, http.StatusInternalServerError, fallback)
		slog.Error(fallback, "error", err)
	}
}
