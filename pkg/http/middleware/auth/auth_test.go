package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, userID int64, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iat":     time.Now().Unix(),
		"exp":     expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func newProtectedHandler(gotUserID *int64) http.Handler {
	return NewAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if ok {
			*gotUserID = userID
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	t.Setenv("ECOM_JWT_SECRET", "test-secret")

	var gotUserID int64
	handler := newProtectedHandler(&gotUserID)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", 7, time.Now().Add(time.Hour)))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), gotUserID)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	var gotUserID int64
	handler := newProtectedHandler(&gotUserID)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, gotUserID)
}

func TestAuthMiddleware_WrongScheme(t *testing.T) {
	var gotUserID int64
	handler := newProtectedHandler(&gotUserID)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	t.Setenv("ECOM_JWT_SECRET", "test-secret")

	var gotUserID int64
	handler := newProtectedHandler(&gotUserID)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", 7, time.Now().Add(time.Hour)))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, gotUserID)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	t.Setenv("ECOM_JWT_SECRET", "test-secret")

	var gotUserID int64
	handler := newProtectedHandler(&gotUserID)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", 7, time.Now().Add(-time.Hour)))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
