package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

func TestClassRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery("INSERT INTO classes").
		WithArgs(int64(1), "Algebra", nil, "TA-ABC123", "X7K2MQ", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	class := &models.Class{OwnerID: 1, Name: "Algebra", Code: "TA-ABC123", InviteCode: "X7K2MQ"}
	require.NoError(t, repo.Create(context.Background(), class))
	assert.Equal(t, int64(3), class.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryListByOwner(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "description", "code", "invite_code", "created_at", "updated_at", "member_count"}).
		AddRow(int64(3), int64(1), "Algebra", nil, "TA-ABC123", "X7K2MQ", time.Now(), time.Now(), 12).
		AddRow(int64(2), int64(1), "Geometry", nil, "TA-ABC122", "P4N9RW", time.Now(), time.Now(), 0)
	mock.ExpectQuery("SELECT c.id, c.owner_id, c.name").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	classes, err := repo.ListByOwner(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, classes, 2)
	assert.Equal(t, 12, classes[0].MemberCount)
	assert.Equal(t, 0, classes[1].MemberCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryUpdateAndDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE classes SET name = $2, description = $3, updated_at = $4 WHERE id = $1")).
		WithArgs(int64(3), "Algebra II", nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), &models.Class{ID: 3, Name: "Algebra II"}))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM classes WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}
