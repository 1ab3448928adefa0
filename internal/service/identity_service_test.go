package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

type mockTeacherRepo struct {
	byHubID     map[string]models.Teacher
	byID        map[int64]models.Teacher
	createErr   error
	created     *models.Teacher
	missLookups int
}

func (m *mockTeacherRepo) FindByHubUserID(ctx context.Context, hubUserID string) (*models.Teacher, error) {
	if m.missLookups > 0 {
		m.missLookups--
		return nil, sql.ErrNoRows
	}
	if teacher, ok := m.byHubID[hubUserID]; ok {
		return &teacher, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherRepo) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	if teacher, ok := m.byID[id]; ok {
		return &teacher, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	if m.createErr != nil {
		return m.createErr
	}
	teacher.ID = 1
	if m.byHubID == nil {
		m.byHubID = make(map[string]models.Teacher)
	}
	m.byHubID[teacher.HubUserID] = *teacher
	m.created = teacher
	return nil
}

func TestIdentityServiceResolveExisting(t *testing.T) {
	repo := &mockTeacherRepo{byHubID: map[string]models.Teacher{"hub-1": {ID: 9, HubUserID: "hub-1"}}}
	svc := NewIdentityService(repo, zap.NewNop())

	teacher, err := svc.ResolveTeacher(context.Background(), "hub-1")
	require.NoError(t, err)
	assert.Equal(t, int64(9), teacher.ID)
	assert.Nil(t, repo.created)
}

func TestIdentityServiceProvisionsOnFirstSight(t *testing.T) {
	repo := &mockTeacherRepo{}
	svc := NewIdentityService(repo, zap.NewNop())

	teacher, err := svc.ResolveTeacher(context.Background(), "hub-2")
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, "hub-2", teacher.HubUserID)
	assert.Equal(t, "memberhub-2", teacher.Username)
	assert.Equal(t, "memberhub-2@hub.local", teacher.Email)
	assert.Equal(t, models.TeacherRoleTeacher, teacher.Role)
}

func TestIdentityServiceInsertRaceRefetchesWinner(t *testing.T) {
	// The first lookup misses, the insert loses the race on hub_user_id
	// uniqueness, then the winner's row appears on re-fetch.
	repo := &mockTeacherRepo{
		byHubID:     map[string]models.Teacher{"hub-3": {ID: 4, HubUserID: "hub-3"}},
		createErr:   &pq.Error{Code: "23505"},
		missLookups: 1,
	}
	svc := NewIdentityService(repo, zap.NewNop())

	teacher, err := svc.ResolveTeacher(context.Background(), "hub-3")
	require.NoError(t, err)
	assert.Equal(t, int64(4), teacher.ID)
}

func TestIdentityServiceCreateFailureSurfaces(t *testing.T) {
	repo := &mockTeacherRepo{createErr: errors.New("connection reset")}
	svc := NewIdentityService(repo, zap.NewNop())

	_, err := svc.ResolveTeacher(context.Background(), "hub-5")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
}

func TestIdentityServiceRejectsEmptyHubID(t *testing.T) {
	svc := NewIdentityService(&mockTeacherRepo{}, zap.NewNop())

	_, err := svc.ResolveTeacher(context.Background(), "")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestIdentityServiceGetNotFound(t *testing.T) {
	svc := NewIdentityService(&mockTeacherRepo{}, zap.NewNop())

	_, err := svc.Get(context.Background(), 99)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}
