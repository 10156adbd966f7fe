package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"taskhub/internal/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestTaskRepository_UpdateStatus(t *testing.T) {
	taskID, projectID := uuid.New(), uuid.New()
	now := time.Now()

	t.Run("unchanged status still returns the task", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `tasks`").
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status", "project_id", "created_at", "updated_at"}).
				AddRow(taskID.String(), "Write docs", "DONE", projectID.String(), now, now))
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `tasks` SET `status`").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		task, err := NewTaskRepository(db).UpdateStatus(context.Background(), taskID, model.TaskStatusDone)

		require.NoError(t, err)
		assert.Equal(t, taskID, task.ID)
		assert.Equal(t, model.TaskStatusDone, task.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing task is not updated", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `tasks`").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		task, err := NewTaskRepository(db).UpdateStatus(context.Background(), taskID, model.TaskStatusDone)

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.Nil(t, task)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
