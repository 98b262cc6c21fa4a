package models

import "time"

// Activity records a task mutation for the owner's activity feed.
type Activity struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	TaskID    *string   `json:"taskId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
