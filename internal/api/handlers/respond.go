package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/taskyhq/tasky-be/internal/services"
	"github.com/taskyhq/tasky-be/internal/storage"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondServiceError maps service errors to the HTTP taxonomy. Unexpected
// errors become a generic 500; the original error is only logged.
func respondServiceError(w http.ResponseWriter, err error) {
	var weak *services.WeakPasswordError
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, services.ErrConflict):
		respondMessage(w, http.StatusConflict, "Email or username already in use.")
	case errors.Is(err, services.ErrInvalidCredentials):
		respondMessage(w, http.StatusBadRequest, "Invalid credentials.")
	case errors.Is(err, services.ErrInvalidCurrentPassword):
		respondMessage(w, http.StatusBadRequest, "Invalid current password.")
	case errors.Is(err, services.ErrInvalidResetToken):
		respondMessage(w, http.StatusBadRequest, "Invalid or expired reset token.")
	case errors.Is(err, services.ErrNotTrashed):
		respondMessage(w, http.StatusBadRequest, "Task is not in trash and cannot be permanently deleted.")
	case errors.Is(err, services.ErrTitleRequired):
		respondMessage(w, http.StatusBadRequest, "Title is required.")
	case errors.As(err, &weak):
		respondMessage(w, http.StatusBadRequest, weak.Feedback)
	case errors.Is(err, storage.ErrNotImage):
		respondMessage(w, http.StatusBadRequest, "Only image files are allowed.")
	case errors.Is(err, storage.ErrTooLarge):
		respondMessage(w, http.StatusBadRequest, "File is too large.")
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
