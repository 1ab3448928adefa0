package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorboard-api/internal/models"
	"github.com/noah-isme/tutorboard-api/pkg/config"
)

type mockScheduleRepo struct {
	upserts   []models.ScheduleEntry
	upsertErr map[string]error
	deleted   []string
}

func (m *mockScheduleRepo) Upsert(ctx context.Context, entry *models.ScheduleEntry) (*models.ScheduleEntry, error) {
	if err, ok := m.upsertErr[entry.UserID]; ok {
		return nil, err
	}
	entry.ID = int64(len(m.upserts) + 1)
	m.upserts = append(m.upserts, *entry)
	return entry, nil
}

func (m *mockScheduleRepo) DeleteByEvent(ctx context.Context, sourceApp string, eventType models.ScheduleEventType, sourceID int64) error {
	m.deleted = append(m.deleted, sourceApp+"/"+string(eventType))
	return nil
}

func newSyncService(repo *mockScheduleRepo, enabled bool) *ScheduleSyncService {
	return NewScheduleSyncService(repo, nil, zap.NewNop(), config.ScheduleSyncConfig{
		Enabled:   enabled,
		SourceApp: "tutorboard",
		Subject:   "TutorBoard",
	})
}

func TestScheduleSyncAssignmentWithoutDueDateIsNoop(t *testing.T) {
	repo := &mockScheduleRepo{}
	svc := newSyncService(repo, true)

	err := svc.SyncAssignment(context.Background(), "u1", &models.Assignment{ID: 9, Title: "Homework"}, LessonContext{})
	require.NoError(t, err)
	assert.Empty(t, repo.upserts)
}

func TestScheduleSyncAssignmentUpsertsRow(t *testing.T) {
	repo := &mockScheduleRepo{}
	svc := newSyncService(repo, true)

	due := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	err := svc.SyncAssignment(context.Background(), "u1",
		&models.Assignment{ID: 9, Title: "Homework 3", DueDate: &due},
		LessonContext{ClassName: "Algebra", LessonTitle: "Fractions"})
	require.NoError(t, err)

	require.Len(t, repo.upserts, 1)
	entry := repo.upserts[0]
	assert.Equal(t, "tutorboard", entry.SourceApp)
	assert.Equal(t, models.ScheduleEventAssignment, entry.EventType)
	assert.Equal(t, int64(9), entry.SourceID)
	assert.Equal(t, "u1", entry.UserID)
	assert.Equal(t, "[Assignment] Homework 3", entry.Title)
	assert.Equal(t, "Algebra - Fractions", entry.Description)
	assert.Equal(t, due, entry.EventDate)
	assert.JSONEq(t, `{"className":"Algebra","lessonTitle":"Fractions"}`, entry.Metadata)
}

func TestScheduleSyncDisabledSkipsWrites(t *testing.T) {
	repo := &mockScheduleRepo{}
	svc := newSyncService(repo, false)

	testDate := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.SyncTest(context.Background(), "u1", &models.Test{ID: 4, Title: "Midterm", TestDate: &testDate}, LessonContext{}))
	require.NoError(t, svc.Remove(context.Background(), models.ScheduleEventTest, 4))
	assert.Empty(t, repo.upserts)
	assert.Empty(t, repo.deleted)
}

func TestScheduleSyncFanOutAccountsEveryStudent(t *testing.T) {
	repo := &mockScheduleRepo{upsertErr: map[string]error{"u2": errors.New("insert failed")}}
	svc := newSyncService(repo, true)

	testDate := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	outcomes := svc.FanOutTest(context.Background(), []string{"u1", "u2", ""},
		&models.Test{ID: 4, Title: "Midterm", TestDate: &testDate}, LessonContext{ClassName: "Algebra", LessonTitle: "Review"})

	require.Len(t, outcomes, 3)
	assert.True(t, outcomes[0].Synced)
	assert.Equal(t, "u1", outcomes[0].StudentUserID)
	assert.False(t, outcomes[1].Synced)
	assert.Equal(t, "insert failed", outcomes[1].Reason)
	assert.True(t, outcomes[2].Skipped)
	assert.Equal(t, "no hub mapping", outcomes[2].Reason)

	// One row written despite the middle failure.
	assert.Len(t, repo.upserts, 1)
}

func TestScheduleSyncFanOutIsIdempotent(t *testing.T) {
	repo := &mockScheduleRepo{}
	svc := newSyncService(repo, true)

	due := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	assignment := &models.Assignment{ID: 9, Title: "Homework", DueDate: &due}
	first := svc.FanOutAssignment(context.Background(), []string{"u1"}, assignment, LessonContext{})
	second := svc.FanOutAssignment(context.Background(), []string{"u1"}, assignment, LessonContext{})

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.True(t, first[0].Synced)
	assert.True(t, second[0].Synced)
	// The repository converges on the natural key; both calls target the
	// same (source_app, event_type, source_id, user_id) row.
	for _, entry := range repo.upserts {
		assert.Equal(t, int64(9), entry.SourceID)
		assert.Equal(t, "u1", entry.UserID)
	}
}

func TestScheduleSyncRemove(t *testing.T) {
	repo := &mockScheduleRepo{}
	svc := newSyncService(repo, true)

	require.NoError(t, svc.Remove(context.Background(), models.ScheduleEventAssignment, 9))
	assert.Equal(t, []string{"tutorboard/assignment"}, repo.deleted)
}
