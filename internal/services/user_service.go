package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/taskyhq/tasky-be/internal/mail"
	"github.com/taskyhq/tasky-be/internal/models"
	"github.com/taskyhq/tasky-be/internal/password"
	"github.com/taskyhq/tasky-be/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, firstName, lastName, username, email, plaintext string) (models.User, error)
	Authenticate(ctx context.Context, emailOrUsername, plaintext string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	UpdateProfile(ctx context.Context, id, firstName, lastName, username, email string) (models.User, error)
	ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	SaveAvatar(ctx context.Context, id string, file io.Reader) (models.User, error)
}

// UserService provides business logic for accounts, credentials and
// profiles.
type UserService struct {
	db       *sql.DB
	avatars  *storage.AvatarStore
	mailer   mail.Mailer
	baseURL  string
	resetTTL time.Duration
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, avatars *storage.AvatarStore, mailer mail.Mailer, baseURL string, resetTTL time.Duration) *UserService {
	return &UserService{db: db, avatars: avatars, mailer: mailer, baseURL: baseURL, resetTTL: resetTTL}
}

const userColumns = "id, first_name, last_name, username, email, password_hash, avatar, reset_token, reset_token_expiry, created_at"

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.Email,
		&u.PasswordHash, &u.Avatar, &u.ResetToken, &u.ResetTokenExpiry, &u.CreatedAt)
	return u, err
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// Register creates a new user account. Username and email are normalized to
// lowercase; the password is strength-checked and stored as a bcrypt hash.
func (s *UserService) Register(ctx context.Context, firstName, lastName, username, email, plaintext string) (models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	if feedback := password.CheckStrength(plaintext, firstName, lastName, username, email); feedback != "" {
		return models.User{}, &WeakPasswordError{Feedback: feedback}
	}

	var existing string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM users WHERE email = ? OR username = ?", email, username).Scan(&existing)
	if err == nil {
		return models.User{}, ErrConflict
	}
	if err != sql.ErrNoRows {
		return models.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users(id, first_name, last_name, username, email, password_hash) VALUES(?, ?, ?, ?, ?, ?)",
		id, firstName, lastName, username, email, string(hashed))
	if err != nil {
		return models.User{}, err
	}

	return s.GetUserByID(ctx, id)
}

// Authenticate verifies credentials against a case-insensitive email or
// username match. The error is identical whether the account is missing or
// the password is wrong.
func (s *UserService) Authenticate(ctx context.Context, emailOrUsername, plaintext string) (models.User, error) {
	lookup := strings.ToLower(strings.TrimSpace(emailOrUsername))
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ? OR username = ?", lookup, lookup)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// UpdateProfile replaces the four profile fields, rejecting an email or
// username already held by another account.
func (s *UserService) UpdateProfile(ctx context.Context, id, firstName, lastName, username, email string) (models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	var existing string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE (email = ? OR username = ?) AND id != ?", email, username, id).Scan(&existing)
	if err == nil {
		return models.User{}, ErrConflict
	}
	if err != sql.ErrNoRows {
		return models.User{}, err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET first_name = ?, last_name = ?, username = ?, email = ? WHERE id = ?",
		firstName, lastName, username, email, id)
	if err != nil {
		return models.User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.User{}, ErrNotFound
	}
	return s.GetUserByID(ctx, id)
}

// ChangePassword verifies the current password, strength-checks the new
// one, and replaces the stored hash.
func (s *UserService) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	var hash string
	err := s.db.QueryRowContext(ctx, "SELECT password_hash FROM users WHERE id = ?", id).Scan(&hash)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(currentPassword)) != nil {
		return ErrInvalidCurrentPassword
	}

	if feedback := password.CheckStrength(newPassword); feedback != "" {
		return &WeakPasswordError{Feedback: feedback}
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	_, err = s.db.ExecContext(ctx, "UPDATE users SET password_hash = ? WHERE id = ?", string(newHash), id)
	return err
}

// ForgotPassword stores a random reset token with a short expiry and mails
// a reset link. The response is neutral regardless of whether the email
// matched an account, so the endpoint cannot be used to enumerate them.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var id string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM users WHERE email = ?", email).Scan(&id)
	if err == sql.ErrNoRows {
		log.Info().Str("email", email).Msg("Password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	token := hex.EncodeToString(buf)
	expiry := time.Now().UTC().Add(s.resetTTL)

	_, err = s.db.ExecContext(ctx,
		"UPDATE users SET reset_token = ?, reset_token_expiry = ? WHERE id = ?", token, expiry, id)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	if err := s.mailer.SendPasswordReset(email, link); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token: the new password is stored and both
// token fields are cleared, so a token can never be used twice.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE reset_token = ? AND reset_token_expiry > ?", token, time.Now().UTC()).Scan(&id)
	if err == sql.ErrNoRows {
		return ErrInvalidResetToken
	}
	if err != nil {
		return err
	}

	if feedback := password.CheckStrength(newPassword); feedback != "" {
		return &WeakPasswordError{Feedback: feedback}
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ?, reset_token = NULL, reset_token_expiry = NULL WHERE id = ?",
		string(newHash), id)
	return err
}

// SaveAvatar stores the uploaded image and persists its public path on the
// user record. The file is written before the row is updated.
func (s *UserService) SaveAvatar(ctx context.Context, id string, file io.Reader) (models.User, error) {
	path, err := s.avatars.Save(id, file)
	if err != nil {
		return models.User{}, err
	}

	_, err = s.db.ExecContext(ctx, "UPDATE users SET avatar = ? WHERE id = ?", path, id)
	if err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(ctx, id)
}
