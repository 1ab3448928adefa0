package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

type mockLessonRepo struct {
	plans         map[int64]models.LessonPlan
	records       []models.LessonRecord
	updatePlanErr error
}

func (m *mockLessonRepo) CreatePlan(ctx context.Context, plan *models.LessonPlan) error {
	plan.ID = int64(len(m.plans) + 1)
	if m.plans == nil {
		m.plans = make(map[int64]models.LessonPlan)
	}
	m.plans[plan.ID] = *plan
	return nil
}

func (m *mockLessonRepo) FindPlanByID(ctx context.Context, id int64) (*models.LessonPlan, error) {
	if plan, ok := m.plans[id]; ok {
		return &plan, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockLessonRepo) ListPlansByClass(ctx context.Context, classID int64) ([]models.LessonPlan, error) {
	var out []models.LessonPlan
	for _, plan := range m.plans {
		if plan.ClassID == classID {
			out = append(out, plan)
		}
	}
	return out, nil
}

func (m *mockLessonRepo) UpdatePlan(ctx context.Context, plan *models.LessonPlan) error {
	if m.updatePlanErr != nil {
		return m.updatePlanErr
	}
	m.plans[plan.ID] = *plan
	return nil
}

func (m *mockLessonRepo) DeletePlan(ctx context.Context, id int64) error {
	delete(m.plans, id)
	return nil
}

func (m *mockLessonRepo) CreateRecord(ctx context.Context, record *models.LessonRecord) error {
	record.ID = int64(len(m.records) + 1)
	m.records = append(m.records, *record)
	return nil
}

func (m *mockLessonRepo) ListRecordsByPlan(ctx context.Context, planID int64) ([]models.LessonRecord, error) {
	var out []models.LessonRecord
	for _, record := range m.records {
		if record.LessonPlanID == planID {
			out = append(out, record)
		}
	}
	return out, nil
}

func newLessonFixture(repo *mockLessonRepo) *LessonService {
	guard := &mockGuard{ownerID: 7, classes: map[int64]models.Class{3: {ID: 3, OwnerID: 7, Name: "Algebra"}}}
	return NewLessonService(repo, guard, validator.New(), zap.NewNop(), 10)
}

func TestLessonServiceCreatePlan(t *testing.T) {
	repo := &mockLessonRepo{}
	svc := newLessonFixture(repo)

	plan, err := svc.CreatePlan(context.Background(), 7, 3, CreateLessonPlanRequest{Title: " Fractions "})
	require.NoError(t, err)
	assert.Equal(t, "Fractions", plan.Title)
	assert.Equal(t, 0, plan.Progress)
}

func TestLessonServiceAuthorizePlanTransitive(t *testing.T) {
	repo := &mockLessonRepo{plans: map[int64]models.LessonPlan{5: {ID: 5, ClassID: 3, Title: "Fractions"}}}
	svc := newLessonFixture(repo)

	_, _, err := svc.AuthorizePlan(context.Background(), 7, 99)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)

	// Ownership is enforced through the plan's class.
	_, _, err = svc.AuthorizePlan(context.Background(), 99, 5)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)

	plan, class, err := svc.AuthorizePlan(context.Background(), 7, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), plan.ID)
	assert.Equal(t, "Algebra", class.Name)
}

func TestLessonServiceRecordBumpsProgress(t *testing.T) {
	repo := &mockLessonRepo{plans: map[int64]models.LessonPlan{5: {ID: 5, ClassID: 3, Progress: 85}}}
	svc := newLessonFixture(repo)

	req := CreateLessonRecordRequest{RecordDate: time.Now(), Summary: "Covered chapter 4"}
	record, err := svc.CreateRecord(context.Background(), 7, 5, req)
	require.NoError(t, err)
	assert.Equal(t, "Covered chapter 4", record.Summary)
	assert.Equal(t, 95, repo.plans[5].Progress)

	// The next record caps at 100 instead of overflowing.
	_, err = svc.CreateRecord(context.Background(), 7, 5, req)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.plans[5].Progress)

	// At 100 there is nothing left to bump.
	_, err = svc.CreateRecord(context.Background(), 7, 5, req)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.plans[5].Progress)
	assert.Len(t, repo.records, 3)
}

func TestLessonServiceRecordSurvivesBumpFailure(t *testing.T) {
	repo := &mockLessonRepo{
		plans:         map[int64]models.LessonPlan{5: {ID: 5, ClassID: 3, Progress: 40}},
		updatePlanErr: errors.New("connection reset"),
	}
	svc := newLessonFixture(repo)

	record, err := svc.CreateRecord(context.Background(), 7, 5, CreateLessonRecordRequest{RecordDate: time.Now(), Summary: "Review"})
	require.NoError(t, err)
	assert.NotZero(t, record.ID)
	assert.Equal(t, 40, repo.plans[5].Progress)
}

func TestLessonServiceUpdatePlanClampsProgress(t *testing.T) {
	repo := &mockLessonRepo{plans: map[int64]models.LessonPlan{5: {ID: 5, ClassID: 3, Title: "Fractions"}}}
	svc := newLessonFixture(repo)

	progress := 100
	plan, err := svc.UpdatePlan(context.Background(), 7, 5, UpdateLessonPlanRequest{Title: "Fractions", Progress: &progress})
	require.NoError(t, err)
	assert.Equal(t, 100, plan.Progress)
}

func TestClampProgress(t *testing.T) {
	assert.Equal(t, 0, clampProgress(-5))
	assert.Equal(t, 55, clampProgress(55))
	assert.Equal(t, 100, clampProgress(130))
}
