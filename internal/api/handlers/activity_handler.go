package handlers

import (
	"net/http"

	"github.com/taskyhq/tasky-be/internal/auth"
	"github.com/taskyhq/tasky-be/internal/services"
)

const recentActivityLimit = 50

// ActivityHandler serves the caller's recent activity feed.
type ActivityHandler struct {
	service services.ActivityServiceProvider
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(service services.ActivityServiceProvider) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// GetRecent returns the most recent activity entries for the caller.
func (h *ActivityHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	activities, err := h.service.GetRecent(r.Context(), userID, recentActivityLimit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, activities)
}
