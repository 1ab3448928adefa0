package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTeacherRepositoryFindByHubUserID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	rows := sqlmock.NewRows([]string{"id", "hub_user_id", "username", "email", "display_name", "role", "created_at", "updated_at"}).
		AddRow(int64(7), "hub-42", "member42", "member42@hub.local", "member42", "teacher", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, hub_user_id, username, email, display_name, role, created_at, updated_at FROM teachers WHERE hub_user_id = $1")).
		WithArgs("hub-42").
		WillReturnRows(rows)

	teacher, err := repo.FindByHubUserID(context.Background(), "hub-42")
	require.NoError(t, err)
	assert.Equal(t, int64(7), teacher.ID)
	assert.Equal(t, "hub-42", teacher.HubUserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery("INSERT INTO teachers").
		WithArgs("hub-42", "member42", "member42@hub.local", "member42", "teacher", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	teacher := &models.Teacher{
		HubUserID:   "hub-42",
		Username:    "member42",
		Email:       "member42@hub.local",
		DisplayName: "member42",
		Role:        models.TeacherRoleTeacher,
	}
	require.NoError(t, repo.Create(context.Background(), teacher))
	assert.Equal(t, int64(7), teacher.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
