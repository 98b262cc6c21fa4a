package services

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskServiceWithMock(t *testing.T) (*TaskService, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewTaskService(db, nil, nil), mock, db
}

func taskRows(id, userID, title, description string, completed, deleted bool) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "user_id", "title", "description", "is_completed", "is_deleted", "date_created", "date_updated"}).
		AddRow(id, userID, title, description, completed, deleted, now, now)
}

func TestCreate_RequiresTitle(t *testing.T) {
	svc, mock, db := newTaskServiceWithMock(t)
	defer db.Close()

	_, err := svc.Create(context.Background(), "u-1", "   ", "desc")
	assert.ErrorIs(t, err, ErrTitleRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_PersistsActiveTask(t *testing.T) {
	svc, mock, db := newTaskServiceWithMock(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tasks")).
		WithArgs(sqlmock.AnyArg(), "u-1", "Buy milk", "2 liters", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	task, err := svc.Create(context.Background(), "u-1", "  Buy milk  ", "2 liters")
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.False(t, task.IsCompleted)
	assert.False(t, task.IsDeleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_StatusPredicates(t *testing.T) {
	cases := []struct {
		status    string
		predicate string
	}{
		{"active", "is_completed = 0 AND is_deleted = 0"},
		{"completed", "is_completed = 1 AND is_deleted = 0"},
		{"trash", "is_deleted = 1"},
		// Unknown filters fall back to active.
		{"bogus", "is_completed = 0 AND is_deleted = 0"},
		{"", "is_completed = 0 AND is_deleted = 0"},
	}
	for _, tc := range cases {
		t.Run("status="+tc.status, func(t *testing.T) {
			svc, mock, db := newTaskServiceWithMock(t)
			defer db.Close()

			mock.ExpectQuery(regexp.QuoteMeta(tc.predicate)).
				WithArgs("u-1").
				WillReturnRows(taskRows("t-1", "u-1", "a", "", false, false))

			tasks, err := svc.List(context.Background(), "u-1", tc.status)
			require.NoError(t, err)
			assert.Len(t, tasks, 1)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestList_OrdersNewestFirst(t *testing.T) {
	svc, mock, db := newTaskServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY date_created DESC")).
		WithArgs("u-1").
		WillReturnRows(taskRows("t-1", "u-1", "a", "", false, false))

	_, err := svc.List(context.Background(), "u-1", "active")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_ScopedToOwner(t *testing.T) {
	svc, mock, db := newTaskServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ? AND user_id = ?")).
		WithArgs("t-1", "u-2").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.GetByID(context.Background(), "u-2", "t-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_AppliesProvidedFields(t *testing.T) {
	svc, mock, db := newTaskServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ? AND user_id = ?")).
		WithArgs("t-1", "u-1").
		WillReturnRows(taskRows("t-1", "u-1", "old title", "old desc", false, false))

	empty := ""
	title := "new title"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks SET title = ?, description = ?, date_updated = ?")).
		WithArgs("new title", "", sqlmock.AnyArg(), "t-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	// An explicitly empty description clears it; a nil one would keep it.
	task, err := svc.Update(context.Background(), "u-1", "t-1", TaskUpdate{Title: &title, Description: &empty})
	require.NoError(t, err)
	assert.Equal(t, "new title", task.Title)
	assert.Equal(t, "", task.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_EmptyTitleRejected(t *testing.T) {
	svc, mock, db := newTaskServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ? AND user_id = ?")).
		WithArgs("t-1", "u-1").
		WillReturnRows(taskRows("t-1", "u-1", "old title", "", false, false))

	empty := ""
	_, err := svc.Update(context.Background(), "u-1", "t-1", TaskUpdate{Title: &empty})
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestSoftDelete_SecondDeleteNotFound(t *testing.T) {
	svc, mock, db := newTaskServiceWithMock(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("is_deleted = 0")).
		WithArgs(sqlmock.AnyArg(), "t-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.SoftDelete(context.Background(), "u-1", "t-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRestore_ForcesIncomplete(t *testing.T) {
	svc, mock, db := newTaskServiceWithMock(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("SET is_deleted = 0, is_completed = 0")).
		WithArgs(sqlmock.AnyArg(), "t-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.Restore(context.Background(), "u-1", "t-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestore_RequiresTrashed(t *testing.T) {
	svc, mock, db := newTaskServiceWithMock(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("is_deleted = 1")).
		WithArgs(sqlmock.AnyArg(), "t-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, svc.Restore(context.Background(), "u-1", "t-1"), ErrNotFound)
}

func TestComplete_RequiresIncomplete(t *testing.T) {
	svc, mock, db := newTaskServiceWithMock(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("is_completed = 0")).
		WithArgs(sqlmock.AnyArg(), "t-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, svc.Complete(context.Background(), "u-1", "t-1"), ErrNotFound)
}

func TestIncomplete_RequiresCompleted(t *testing.T) {
	svc, mock, db := newTaskServiceWithMock(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("is_completed = 1")).
		WithArgs(sqlmock.AnyArg(), "t-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, svc.Incomplete(context.Background(), "u-1", "t-1"), ErrNotFound)
}

func TestHardDelete_RequiresTrashed(t *testing.T) {
	svc, mock, db := newTaskServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ? AND user_id = ?")).
		WithArgs("t-1", "u-1").
		WillReturnRows(taskRows("t-1", "u-1", "a", "", true, false))

	// Not trashed: must fail without a DELETE reaching the database.
	assert.ErrorIs(t, svc.HardDelete(context.Background(), "u-1", "t-1"), ErrNotTrashed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHardDelete_RemovesTrashedTask(t *testing.T) {
	svc, mock, db := newTaskServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ? AND user_id = ?")).
		WithArgs("t-1", "u-1").
		WillReturnRows(taskRows("t-1", "u-1", "a", "", false, true))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id = ? AND user_id = ?")).
		WithArgs("t-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.HardDelete(context.Background(), "u-1", "t-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHardDelete_NonOwnedLooksMissing(t *testing.T) {
	svc, mock, db := newTaskServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ? AND user_id = ?")).
		WithArgs("t-1", "u-other").
		WillReturnError(sql.ErrNoRows)

	assert.ErrorIs(t, svc.HardDelete(context.Background(), "u-other", "t-1"), ErrNotFound)
}
