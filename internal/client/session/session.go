package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskyhq/tasky-be/internal/models"
)

// Session is the client-side credential pair: a bearer token and a
// denormalized copy of the user's public fields.
type Session struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Store persists a Session as JSON on disk. Login saves, logout clears,
// and Load drops a session whose token has already expired.
type Store struct {
	path string
}

// NewStore creates a Store at an explicit path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the session file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tasky", "session.json"), nil
}

// Load reads the persisted session. It returns nil without error when no
// session exists or the stored token is expired; in the latter case the
// stale file is removed.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A corrupt file is treated like an expired one.
		s.Clear()
		return nil, nil
	}

	if tokenExpired(sess.Token) {
		s.Clear()
		return nil, nil
	}
	return &sess, nil
}

// Save persists the session.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Clear removes the persisted session.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// tokenExpired decodes the token without verifying the signature (the
// client has no key) and checks the embedded expiry, like the web client's
// jwt-decode check at startup. Malformed tokens count as expired.
func tokenExpired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Before(time.Now())
}
