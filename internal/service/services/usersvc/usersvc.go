package usersvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iprofilerepo"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iuserrepo"
	"github.com/corray333/ecommerce-api/internal/service/models/profile"
	"github.com/corray333/ecommerce-api/internal/service/models/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrPasswordMismatch is returned when the password confirmation
	// does not match the password.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already taken")
	// ErrInvalidCredentials is returned on a failed login. The cause
	// (unknown email or wrong password) is deliberately not revealed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrProfileNotFound is returned when the profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrUsernameTaken is returned when the username is already in use.
	ErrUsernameTaken = errors.New("username already taken")
)

// UserService handles registration, authentication and profiles.
type UserService struct {
	log         *slog.Logger
	userRepo    iuserrepo.IUserRepository
	profileRepo iprofilerepo.IProfileRepository
}

// option is a function that configures the UserService.
type option func(*UserService)

// MustNewUserService creates a new UserService.
func MustNewUserService(opts ...option) *UserService {
	s := &UserService{
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.userRepo == nil || s.profileRepo == nil {
		panic("usersvc: user and profile repositories are required")
	}

	return s
}

// WithLogger sets the logger for the UserService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithLogger(log *slog.Logger) option {
	return func(s *UserService) {
		s.log = log
	}
}

// WithUserRepository sets the user repository for the UserService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUserRepository(repo iuserrepo.IUserRepository) option {
	return func(s *UserService) {
		s.userRepo = repo
	}
}

// WithProfileRepository sets the profile repository for the UserService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProfileRepository(repo iprofilerepo.IProfileRepository) option {
	return func(s *UserService) {
		s.profileRepo = repo
	}
}

// Register creates a user with a bcrypt password hash.
func (s *UserService) Register(
	ctx context.Context,
	email, password, passwordConfirm string,
) (user.User, error) {
	if password != passwordConfirm {
		return user.User{}, ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := s.userRepo.Insert(ctx, user.User{
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		if errors.Is(err, iuserrepo.ErrEmailTaken) {
			return user.User{}, ErrEmailTaken
		}

		return user.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	s.log.Info("user registered", "user_id", u.ID)

	return u, nil
}

// Login verifies the credentials and issues a token pair.
func (s *UserService) Login(ctx context.Context, email, password string) (user.TokenPair, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, iuserrepo.ErrNotFound) {
			return user.TokenPair{}, ErrInvalidCredentials
		}

		return user.TokenPair{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return user.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := newTokenPair(u.ID)
	if err != nil {
		return user.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return pair, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (user.TokenPair, error) {
	userID, err := parseToken(refreshToken)
	if err != nil {
		return user.TokenPair{}, ErrInvalidCredentials
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, iuserrepo.ErrNotFound) {
			return user.TokenPair{}, ErrInvalidCredentials
		}

		return user.TokenPair{}, fmt.Errorf("failed to get user: %w", err)
	}

	pair, err := newTokenPair(userID)
	if err != nil {
		return user.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return pair, nil
}

// CreateProfile creates a profile for the user.
func (s *UserService) CreateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	created, err := s.profileRepo.Insert(ctx, p)
	if err != nil {
		if errors.Is(err, iprofilerepo.ErrUsernameTaken) {
			return profile.Profile{}, ErrUsernameTaken
		}

		return profile.Profile{}, fmt.Errorf("failed to insert profile: %w", err)
	}

	return created, nil
}

// GetProfile retrieves one profile.
func (s *UserService) GetProfile(ctx context.Context, id int64) (*profile.Profile, error) {
	p, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, iprofilerepo.ErrNotFound) {
			return nil, ErrProfileNotFound
		}

		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return p, nil
}

// ListProfiles retrieves all profiles.
func (s *UserService) ListProfiles(ctx context.Context) ([]profile.Profile, error) {
	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	return profiles, nil
}

// UpdateProfile overwrites a profile.
func (s *UserService) UpdateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	updated, err := s.profileRepo.Update(ctx, p)
	if err != nil {
		switch {
		case errors.Is(err, iprofilerepo.ErrNotFound):
			return profile.Profile{}, ErrProfileNotFound
		case errors.Is(err, iprofilerepo.ErrUsernameTaken):
			return profile.Profile{}, ErrUsernameTaken
		}

		return profile.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return updated, nil
}

// DeleteProfile removes a profile.
func (s *UserService) DeleteProfile(ctx context.Context, id int64) error {
	if err := s.profileRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, iprofilerepo.ErrNotFound) {
			return ErrProfileNotFound
		}

		return fmt.Errorf("failed to delete profile: %w", err)
	}

	return nil
}
