package models

import "time"

// Task statuses used by the list filter.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusTrash     = "trash"
)

// Task represents a single task owned by a user. A task is active,
// completed, or trashed; trashing keeps the record until a hard delete.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"isCompleted"`
	IsDeleted   bool      `json:"isDeleted"`
	DateCreated time.Time `json:"dateCreated"`
	DateUpdated time.Time `json:"dateUpdated"`
}
