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

func TestScheduleRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	eventDate := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "source_app", "event_type", "source_id", "user_id", "title", "description", "event_date", "subject", "metadata", "created_at", "updated_at"}).
		AddRow(int64(21), "tutorboard", "assignment", int64(9), "u1", "[Assignment] Homework 3", "Algebra - Fractions", eventDate, "TutorBoard", `{"className":"Algebra","lessonTitle":"Fractions"}`, time.Now(), time.Now())
	mock.ExpectQuery("INSERT INTO shared_schedule").
		WithArgs("tutorboard", "assignment", int64(9), "u1",
			"[Assignment] Homework 3", "Algebra - Fractions", eventDate, "TutorBoard",
			`{"className":"Algebra","lessonTitle":"Fractions"}`, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(rows)

	stored, err := repo.Upsert(context.Background(), &models.ScheduleEntry{
		SourceApp:   "tutorboard",
		EventType:   models.ScheduleEventAssignment,
		SourceID:    9,
		UserID:      "u1",
		Title:       "[Assignment] Homework 3",
		Description: "Algebra - Fractions",
		EventDate:   eventDate,
		Subject:     "TutorBoard",
		Metadata:    `{"className":"Algebra","lessonTitle":"Fractions"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(21), stored.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryDeleteByEvent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec("DELETE FROM shared_schedule").
		WithArgs("tutorboard", "test", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.DeleteByEvent(context.Background(), "tutorboard", models.ScheduleEventTest, 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryListByEvent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	eventDate := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "source_app", "event_type", "source_id", "user_id", "title", "description", "event_date", "subject", "metadata", "created_at", "updated_at"}).
		AddRow(int64(21), "tutorboard", "test", int64(4), "u1", "[Test] Midterm", "Algebra - Review", eventDate, "TutorBoard", "{}", time.Now(), time.Now()).
		AddRow(int64(22), "tutorboard", "test", int64(4), "u2", "[Test] Midterm", "Algebra - Review", eventDate, "TutorBoard", "{}", time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, source_app, event_type, source_id, user_id").
		WithArgs("tutorboard", "test", int64(4)).
		WillReturnRows(rows)

	entries, err := repo.ListByEvent(context.Background(), "tutorboard", models.ScheduleEventTest, 4)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "u2", entries[1].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
