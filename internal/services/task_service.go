package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskyhq/tasky-be/internal/models"
)

// Notifier pushes task-change notices to the owning user's connected
// clients. The websocket hub implements it.
type Notifier interface {
	NotifyUser(userID, action string, payload interface{})
}

// TaskUpdate carries a partial update. A nil field was not provided; a
// non-nil field is applied even when it points at an empty string, so
// clearing a description is possible.
type TaskUpdate struct {
	Title       *string
	Description *string
}

// TaskServiceProvider defines the interface for task services. Every
// operation is scoped to the owning user; cross-user access fails as
// ErrNotFound.
type TaskServiceProvider interface {
	Create(ctx context.Context, userID, title, description string) (models.Task, error)
	List(ctx context.Context, userID, status string) ([]models.Task, error)
	GetByID(ctx context.Context, userID, id string) (models.Task, error)
	Update(ctx context.Context, userID, id string, patch TaskUpdate) (models.Task, error)
	SoftDelete(ctx context.Context, userID, id string) error
	Restore(ctx context.Context, userID, id string) error
	Complete(ctx context.Context, userID, id string) error
	Incomplete(ctx context.Context, userID, id string) error
	HardDelete(ctx context.Context, userID, id string) error
}

// TaskService provides business logic for task management.
type TaskService struct {
	db       *sql.DB
	activity ActivityServiceProvider
	notifier Notifier
}

// NewTaskService creates a new TaskService. activity and notifier may be
// nil, in which case mutations are not recorded or pushed.
func NewTaskService(db *sql.DB, activity ActivityServiceProvider, notifier Notifier) *TaskService {
	return &TaskService{db: db, activity: activity, notifier: notifier}
}

const taskColumns = "id, user_id, title, description, is_completed, is_deleted, date_created, date_updated"

func scanTask(row *sql.Row) (models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description,
		&t.IsCompleted, &t.IsDeleted, &t.DateCreated, &t.DateUpdated)
	return t, err
}

// Create persists a new active task owned by the caller. Title is required;
// description may be empty.
func (s *TaskService) Create(ctx context.Context, userID, title, description string) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, ErrTitleRequired
	}

	now := time.Now().UTC()
	task := models.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		DateCreated: now,
		DateUpdated: now,
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tasks(id, user_id, title, description, is_completed, is_deleted, date_created, date_updated) VALUES(?, ?, ?, ?, 0, 0, ?, ?)",
		task.ID, task.UserID, task.Title, task.Description, task.DateCreated, task.DateUpdated)
	if err != nil {
		return models.Task{}, err
	}

	s.record(ctx, userID, "task.created", "Created task \""+task.Title+"\"", task.ID)
	s.notify(userID, "task.created", task)
	return task, nil
}

// List returns the caller's tasks for a status filter, newest first. An
// unknown or absent status falls back to active.
func (s *TaskService) List(ctx context.Context, userID, status string) ([]models.Task, error) {
	var predicate string
	switch status {
	case models.StatusCompleted:
		predicate = "is_completed = 1 AND is_deleted = 0"
	case models.StatusTrash:
		predicate = "is_deleted = 1"
	default:
		predicate = "is_completed = 0 AND is_deleted = 0"
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE user_id = ? AND "+predicate+" ORDER BY date_created DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description,
			&t.IsCompleted, &t.IsDeleted, &t.DateCreated, &t.DateUpdated); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetByID returns a task only when it exists and is owned by the caller.
func (s *TaskService) GetByID(ctx context.Context, userID, id string) (models.Task, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ? AND user_id = ?", id, userID)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return models.Task{}, ErrNotFound
	}
	return t, err
}

// Update applies the provided fields and bumps date_updated.
func (s *TaskService) Update(ctx context.Context, userID, id string, patch TaskUpdate) (models.Task, error) {
	existing, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return models.Task{}, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return models.Task{}, ErrTitleRequired
		}
		existing.Title = title
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	existing.DateUpdated = time.Now().UTC()

	_, err = s.db.ExecContext(ctx,
		"UPDATE tasks SET title = ?, description = ?, date_updated = ? WHERE id = ? AND user_id = ?",
		existing.Title, existing.Description, existing.DateUpdated, id, userID)
	if err != nil {
		return models.Task{}, err
	}

	s.record(ctx, userID, "task.updated", "Updated task \""+existing.Title+"\"", id)
	s.notify(userID, "task.updated", existing)
	return existing, nil
}

// SoftDelete moves a task to the trash. Completion state is untouched. A
// task already in the trash does not match the predicate and reports
// not-found.
func (s *TaskService) SoftDelete(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET is_deleted = 1, date_updated = ? WHERE id = ? AND user_id = ? AND is_deleted = 0",
		time.Now().UTC(), id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	s.record(ctx, userID, "task.trashed", "Moved a task to trash", id)
	s.notify(userID, "task.trashed", map[string]string{"id": id})
	return nil
}

// Restore takes a task out of the trash. The result is always an active
// task: completion is forced off regardless of its value before trashing.
func (s *TaskService) Restore(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET is_deleted = 0, is_completed = 0, date_updated = ? WHERE id = ? AND user_id = ? AND is_deleted = 1",
		time.Now().UTC(), id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	s.record(ctx, userID, "task.restored", "Restored a task from trash", id)
	s.notify(userID, "task.restored", map[string]string{"id": id})
	return nil
}

// Complete marks a currently incomplete task as done.
func (s *TaskService) Complete(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET is_completed = 1, date_updated = ? WHERE id = ? AND user_id = ? AND is_completed = 0",
		time.Now().UTC(), id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	s.record(ctx, userID, "task.completed", "Completed a task", id)
	s.notify(userID, "task.completed", map[string]string{"id": id})
	return nil
}

// Incomplete marks a currently completed task as not done.
func (s *TaskService) Incomplete(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET is_completed = 0, date_updated = ? WHERE id = ? AND user_id = ? AND is_completed = 1",
		time.Now().UTC(), id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	s.record(ctx, userID, "task.incompleted", "Marked a task as incomplete", id)
	s.notify(userID, "task.incompleted", map[string]string{"id": id})
	return nil
}

// HardDelete permanently removes a task. Only trashed tasks qualify; a
// missing or non-owned task reports not-found without revealing which.
func (s *TaskService) HardDelete(ctx context.Context, userID, id string) error {
	task, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if !task.IsDeleted {
		return ErrNotTrashed
	}

	_, err = s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}

	s.record(ctx, userID, "task.purged", "Permanently deleted a task", id)
	s.notify(userID, "task.purged", map[string]string{"id": id})
	return nil
}

func (s *TaskService) record(ctx context.Context, userID, eventType, message, taskID string) {
	if s.activity != nil {
		s.activity.Record(ctx, userID, eventType, message, &taskID)
	}
}

func (s *TaskService) notify(userID, action string, payload interface{}) {
	if s.notifier != nil {
		s.notifier.NotifyUser(userID, action, payload)
	}
}
