package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskyhq/tasky-be/internal/models"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u-1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte("client-side-irrelevant-key"))
	require.NoError(t, err)
	return signed
}

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "tasky", "session.json")
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	store := NewStore(storePath(t))

	saved := Session{
		Token: signedToken(t, time.Now().Add(time.Hour)),
		User:  models.PublicUser{ID: "u-1", Username: "ada", Email: "ada@example.com"},
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved.Token, loaded.Token)
	assert.Equal(t, "ada", loaded.User.Username)
}

func TestStore_LoadAbsentFile(t *testing.T) {
	store := NewStore(storePath(t))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_ExpiredTokenClearsFile(t *testing.T) {
	path := storePath(t)
	store := NewStore(path)

	require.NoError(t, store.Save(Session{
		Token: signedToken(t, time.Now().Add(-time.Minute)),
		User:  models.PublicUser{ID: "u-1"},
	}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "stale session file should be removed")
}

func TestStore_CorruptFileTreatedAsAbsent(t *testing.T) {
	path := storePath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	store := NewStore(path)
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	store := NewStore(storePath(t))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
}

func TestTokenExpired_MalformedToken(t *testing.T) {
	assert.True(t, tokenExpired("not-a-jwt"))
}
