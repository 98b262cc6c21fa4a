package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taskyhq/tasky-be/internal/auth"
	"github.com/taskyhq/tasky-be/internal/services"
)

// TaskHandler handles HTTP requests for task management. Every route is
// behind the auth gate; the owner is always the authenticated caller.
type TaskHandler struct {
	service services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create handles the request to create a new task.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	task, err := h.service.Create(r.Context(), userID, payload.Title, payload.Description)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Task created successfully!",
		"task":    task,
	})
}

// List returns the caller's tasks for the ?status= filter.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	tasks, err := h.service.List(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// Get returns a single task by ID.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	task, err := h.service.GetByID(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// Update applies a partial update. Fields absent from the body are left
// unchanged; an explicitly empty description clears it.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if payload.Title == nil && payload.Description == nil {
		respondMessage(w, http.StatusBadRequest, "At least title or description must be provided for update.")
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	task, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"),
		services.TaskUpdate{Title: payload.Title, Description: payload.Description})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Task updated successfully!",
		"task":    task,
	})
}

// SoftDelete moves a task to the trash.
func (h *TaskHandler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if err := h.service.SoftDelete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Task moved to trash successfully!")
}

// Restore brings a trashed task back as an active task.
func (h *TaskHandler) Restore(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if err := h.service.Restore(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Task restored successfully!")
}

// Complete marks a task as done.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if err := h.service.Complete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Task marked as complete!")
}

// Incomplete marks a task as not done.
func (h *TaskHandler) Incomplete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if err := h.service.Incomplete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Task marked as incomplete!")
}

// HardDelete permanently removes a trashed task.
func (h *TaskHandler) HardDelete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if err := h.service.HardDelete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Task permanently deleted successfully.")
}
