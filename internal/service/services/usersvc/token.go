package usersvc

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/corray333/ecommerce-api/internal/service/models/user"
	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

func jwtSecret() []byte {
	return []byte(os.Getenv("ECOM_JWT_SECRET"))
}

func newTokenPair(userID int64) (user.TokenPair, error) {
	access, err := signToken(userID, accessTokenTTL)
	if err != nil {
		return user.TokenPair{}, err
	}

	refresh, err := signToken(userID, refreshTokenTTL)
	if err != nil {
		return user.TokenPair{}, err
	}

	return user.TokenPair{Access: access, Refresh: refresh}, nil
}

func signToken(userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	})

	signed, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func parseToken(raw string) (int64, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return jwtSecret(), nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("token has no user_id claim")
	}

	return int64(userID), nil
}
