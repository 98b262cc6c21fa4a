package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/taskyhq/tasky-be/internal/auth"
	"github.com/taskyhq/tasky-be/internal/services"
)

// UserHandler handles HTTP requests for the caller's profile.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// GetMe retrieves the currently authenticated user.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	user, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("User from token not found in DB")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user.Public())
}

// Update replaces the caller's profile fields.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Username  string `json:"username"`
		Email     string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if payload.FirstName == "" || payload.LastName == "" || payload.Username == "" || payload.Email == "" {
		respondMessage(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	user, err := h.service.UpdateProfile(r.Context(), userID,
		payload.FirstName, payload.LastName, payload.Username, payload.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully.",
		"user":    user.Public(),
	})
}
