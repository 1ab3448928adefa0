package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

func TestAttendanceRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "class_id", "student_user_id", "date", "status", "created_at", "updated_at"}).
		AddRow(int64(5), int64(3), "u1", day, "late", time.Now(), time.Now())
	mock.ExpectQuery("INSERT INTO attendance").
		WithArgs(int64(3), "u1", day, "late", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(rows)

	stored, err := repo.Upsert(context.Background(), &models.Attendance{
		ClassID:       3,
		StudentUserID: "u1",
		Date:          day,
		Status:        models.AttendanceLate,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), stored.ID)
	assert.Equal(t, models.AttendanceLate, stored.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListByClassAndDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "class_id", "student_user_id", "date", "status", "created_at", "updated_at"}).
		AddRow(int64(5), int64(3), "u1", day, "present", time.Now(), time.Now()).
		AddRow(int64(6), int64(3), "u2", day, "absent", time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, class_id, student_user_id, date, status").
		WithArgs(int64(3), day).
		WillReturnRows(rows)

	records, err := repo.ListByClassAndDate(context.Background(), 3, day)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, models.AttendanceAbsent, records[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
