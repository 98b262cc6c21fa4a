package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/taskyhq/tasky-be/internal/models"
)

// ActivityServiceProvider defines the interface for the activity feed.
type ActivityServiceProvider interface {
	Record(ctx context.Context, userID, activityType, message string, taskID *string)
	GetRecent(ctx context.Context, userID string, limit int) ([]models.Activity, error)
}

// ActivityService logs task mutations for the owner's activity feed.
type ActivityService struct {
	db *sql.DB
}

// NewActivityService creates a new ActivityService.
func NewActivityService(db *sql.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Record writes an activity row. Feed entries are best-effort: a failure is
// logged but never propagated to the mutation that produced it.
func (s *ActivityService) Record(ctx context.Context, userID, activityType, message string, taskID *string) {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO activities(id, user_id, type, message, task_id) VALUES(?, ?, ?, ?, ?)",
		uuid.New().String(), userID, activityType, message, taskID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("type", activityType).Msg("Failed to record activity")
	}
}

// GetRecent retrieves the caller's most recent activity entries.
func (s *ActivityService) GetRecent(ctx context.Context, userID string, limit int) ([]models.Activity, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, type, message, task_id, created_at FROM activities WHERE user_id = ? ORDER BY created_at DESC LIMIT ?",
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []models.Activity{}
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Message, &a.TaskID, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
