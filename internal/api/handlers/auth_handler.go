package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/taskyhq/tasky-be/internal/auth"
	"github.com/taskyhq/tasky-be/internal/services"
)

// AuthHandler handles registration, login and credential management.
type AuthHandler struct {
	service        services.UserServiceProvider
	maxAvatarBytes int64
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider, maxAvatarBytes int64) *AuthHandler {
	return &AuthHandler{service: service, maxAvatarBytes: maxAvatarBytes}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

// Register handles new user registration. A successful registration also
// logs the user in: the response carries a fresh token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if payload.FirstName == "" || payload.LastName == "" || payload.Username == "" ||
		payload.Email == "" || payload.Password == "" {
		respondMessage(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	user, err := h.service.Register(r.Context(), payload.FirstName, payload.LastName,
		payload.Username, payload.Email, payload.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	token, err := auth.GenerateJWT(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully!",
		"token":   token,
		"user":    user.Public(),
	})
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if payload.EmailOrUsername == "" || payload.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Email/username and password are required.")
		return
	}

	user, err := h.service.Authenticate(r.Context(), payload.EmailOrUsername, payload.Password)
	if err != nil {
		log.Warn().Str("login", payload.EmailOrUsername).Msg("Failed authentication attempt")
		respondServiceError(w, err)
		return
	}

	token, err := auth.GenerateJWT(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Logged in successfully!",
		"token":   token,
		"user":    user.Public(),
	})
}

// ChangePassword replaces the caller's password after verifying the
// current one.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if payload.CurrentPassword == "" || payload.NewPassword == "" {
		respondMessage(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	if err := h.service.ChangePassword(r.Context(), userID, payload.CurrentPassword, payload.NewPassword); err != nil {
		respondServiceError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Password updated successfully.")
}

// ForgotPassword starts the reset flow. The response is the same whether
// or not the email matches an account.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if payload.Email == "" {
		respondMessage(w, http.StatusBadRequest, "Email is required.")
		return
	}

	if err := h.service.ForgotPassword(r.Context(), payload.Email); err != nil {
		log.Error().Err(err).Msg("Forgot-password flow failed")
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	respondMessage(w, http.StatusOK, "If that email is registered, a reset link has been sent.")
}

// ResetPassword consumes a mailed reset token.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if payload.Token == "" || payload.NewPassword == "" {
		respondMessage(w, http.StatusBadRequest, "Token and new password are required.")
		return
	}

	if err := h.service.ResetPassword(r.Context(), payload.Token, payload.NewPassword); err != nil {
		respondServiceError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Password has been reset. You can now log in.")
}

// UploadAvatar stores a new profile image for the caller. Exposed under
// both the auth and user surfaces; same contract.
func (h *AuthHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxAvatarBytes+1024)
	if err := r.ParseMultipartForm(h.maxAvatarBytes); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid upload.")
		return
	}
	file, _, err := r.FormFile("avatar")
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Avatar file field is required.")
		return
	}
	defer file.Close()

	userID := auth.UserIDFromContext(r.Context())
	user, err := h.service.SaveAvatar(r.Context(), userID, file)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Avatar updated successfully.",
		"user":    user.Public(),
	})
}
