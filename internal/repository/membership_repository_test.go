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

func TestMembershipRepositoryFindActiveUserIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMembershipRepository(db)

	rows := sqlmock.NewRows([]string{"student_user_id"}).AddRow("u1").AddRow("u3")
	mock.ExpectQuery("SELECT student_user_id FROM class_members").
		WithArgs(int64(3), "u1", "u2", "u3").
		WillReturnRows(rows)

	ids, err := repo.FindActiveUserIDs(context.Background(), 3, []string{"u1", "u2", "u3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u3"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepositoryFindActiveUserIDsEmptyInput(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMembershipRepository(db)

	ids, err := repo.FindActiveUserIDs(context.Background(), 3, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMembershipRepository(db)

	mock.ExpectQuery("INSERT INTO class_members").
		WithArgs(int64(3), "u2", "member", true, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	member := &models.Membership{ClassID: 3, StudentUserID: "u2", Role: models.MemberRoleMember}
	require.NoError(t, repo.Create(context.Background(), member))
	assert.Equal(t, int64(11), member.ID)
	assert.True(t, member.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepositoryListProfilesByClass(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMembershipRepository(db)

	name := "Student One"
	rows := sqlmock.NewRows([]string{"id", "class_id", "student_user_id", "role", "active", "joined_at", "display_name", "email"}).
		AddRow(int64(11), int64(3), "u1", "member", true, time.Now(), name, nil).
		AddRow(int64(12), int64(3), "u2", "member", true, time.Now(), nil, nil)
	mock.ExpectQuery("SELECT m.id, m.class_id, m.student_user_id").
		WithArgs(int64(3)).
		WillReturnRows(rows)

	profiles, err := repo.ListProfilesByClass(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	require.NotNil(t, profiles[0].DisplayName)
	assert.Equal(t, name, *profiles[0].DisplayName)
	assert.Nil(t, profiles[1].DisplayName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepositoryDeactivate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMembershipRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE class_members SET active = FALSE WHERE id = $1")).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Deactivate(context.Background(), 11))
	assert.NoError(t, mock.ExpectationsWereMet())
}
