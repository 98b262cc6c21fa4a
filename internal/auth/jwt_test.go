package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskyhq/tasky-be/internal/models"
)

func TestGenerateAndValidate(t *testing.T) {
	Init("test-secret", time.Hour)

	token, err := GenerateJWT(models.User{ID: "u-1"})
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestValidate_Expired(t *testing.T) {
	Init("test-secret", time.Nanosecond)
	token, err := GenerateJWT(models.User{ID: "u-1"})
	require.NoError(t, err)

	Init("test-secret", time.Hour)
	time.Sleep(10 * time.Millisecond)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidate_WrongKey(t *testing.T) {
	Init("test-secret", time.Hour)
	token, err := GenerateJWT(models.User{ID: "u-1"})
	require.NoError(t, err)

	Init("other-secret", time.Hour)
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	Init("test-secret", time.Hour)

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := JWTMiddleware()(next)

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token reaches handler with claims", func(t *testing.T) {
		token, err := GenerateJWT(models.User{ID: "u-42"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u-42", gotUserID)
	})
}

func TestUserIDFromContext_Unset(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", UserIDFromContext(req.Context()))
}
