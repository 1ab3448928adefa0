package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

type mockAssessmentRepo struct {
	tests       map[int64]models.Test
	assignments map[int64]models.Assignment
	submissions map[int64]models.AssignmentSubmission
	results     []models.TestResult
	resultErrs  map[string]error
	graded      *models.AssignmentSubmission
}

func (m *mockAssessmentRepo) CreateTest(ctx context.Context, test *models.Test) error {
	test.ID = int64(len(m.tests) + 1)
	if m.tests == nil {
		m.tests = make(map[int64]models.Test)
	}
	m.tests[test.ID] = *test
	return nil
}

func (m *mockAssessmentRepo) FindTestByID(ctx context.Context, id int64) (*models.Test, error) {
	if test, ok := m.tests[id]; ok {
		return &test, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAssessmentRepo) DeleteTest(ctx context.Context, id int64) error {
	delete(m.tests, id)
	return nil
}

func (m *mockAssessmentRepo) UpsertResult(ctx context.Context, result *models.TestResult) (*models.TestResult, error) {
	if err, ok := m.resultErrs[result.StudentUserID]; ok {
		return nil, err
	}
	result.ID = int64(len(m.results) + 1)
	m.results = append(m.results, *result)
	return result, nil
}

func (m *mockAssessmentRepo) CreateAssignment(ctx context.Context, assignment *models.Assignment) error {
	assignment.ID = int64(len(m.assignments) + 1)
	if m.assignments == nil {
		m.assignments = make(map[int64]models.Assignment)
	}
	m.assignments[assignment.ID] = *assignment
	return nil
}

func (m *mockAssessmentRepo) FindAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error) {
	if assignment, ok := m.assignments[id]; ok {
		return &assignment, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAssessmentRepo) DeleteAssignment(ctx context.Context, id int64) error {
	delete(m.assignments, id)
	return nil
}

func (m *mockAssessmentRepo) UpsertSubmission(ctx context.Context, sub *models.AssignmentSubmission) (*models.AssignmentSubmission, error) {
	sub.ID = int64(len(m.submissions) + 1)
	if m.submissions == nil {
		m.submissions = make(map[int64]models.AssignmentSubmission)
	}
	m.submissions[sub.ID] = *sub
	return sub, nil
}

func (m *mockAssessmentRepo) FindSubmissionByID(ctx context.Context, id int64) (*models.AssignmentSubmission, error) {
	if sub, ok := m.submissions[id]; ok {
		return &sub, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAssessmentRepo) UpdateGrade(ctx context.Context, id int64, grade string, feedback *string) (*models.AssignmentSubmission, error) {
	sub := m.submissions[id]
	sub.Grade = &grade
	sub.Feedback = feedback
	sub.Status = models.SubmissionGraded
	m.submissions[id] = sub
	m.graded = &sub
	return &sub, nil
}

type mockPlanAuthorizer struct {
	plans map[int64]models.LessonPlan
	class models.Class
	owner int64
}

func (m *mockPlanAuthorizer) AuthorizePlan(ctx context.Context, teacherID, planID int64) (*models.LessonPlan, *models.Class, error) {
	plan, ok := m.plans[planID]
	if !ok {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "lesson plan not found")
	}
	if teacherID != m.owner {
		return nil, nil, appErrors.Clone(appErrors.ErrForbidden, "class belongs to another teacher")
	}
	return &plan, &m.class, nil
}

type mockRoster struct {
	members []models.Membership
	err     error
}

func (m *mockRoster) ListActiveByClass(ctx context.Context, classID int64) ([]models.Membership, error) {
	return m.members, m.err
}

type mockMirror struct {
	assignmentFanOuts [][]string
	testFanOuts       [][]string
	removed           []string
}

func (m *mockMirror) FanOutAssignment(ctx context.Context, studentUserIDs []string, assignment *models.Assignment, lessonCtx LessonContext) []models.SyncOutcome {
	m.assignmentFanOuts = append(m.assignmentFanOuts, studentUserIDs)
	outcomes := make([]models.SyncOutcome, 0, len(studentUserIDs))
	for _, id := range studentUserIDs {
		outcomes = append(outcomes, models.SyncOutcome{StudentUserID: id, Synced: true})
	}
	return outcomes
}

func (m *mockMirror) FanOutTest(ctx context.Context, studentUserIDs []string, test *models.Test, lessonCtx LessonContext) []models.SyncOutcome {
	m.testFanOuts = append(m.testFanOuts, studentUserIDs)
	outcomes := make([]models.SyncOutcome, 0, len(studentUserIDs))
	for _, id := range studentUserIDs {
		outcomes = append(outcomes, models.SyncOutcome{StudentUserID: id, Synced: true})
	}
	return outcomes
}

func (m *mockMirror) Remove(ctx context.Context, eventType models.ScheduleEventType, sourceID int64) error {
	m.removed = append(m.removed, string(eventType))
	return nil
}

func newAssessmentFixture(repo *mockAssessmentRepo, roster *mockRoster, mirror *mockMirror) *AssessmentService {
	plans := &mockPlanAuthorizer{
		plans: map[int64]models.LessonPlan{5: {ID: 5, ClassID: 3, Title: "Fractions"}},
		class: models.Class{ID: 3, OwnerID: 7, Name: "Algebra"},
		owner: 7,
	}
	return NewAssessmentService(repo, plans, roster, mirror, validator.New(), zap.NewNop())
}

func TestAssessmentServiceCreateTestFansOut(t *testing.T) {
	repo := &mockAssessmentRepo{}
	roster := &mockRoster{members: []models.Membership{
		{StudentUserID: "u1", Active: true},
		{StudentUserID: "u2", Active: true},
	}}
	mirror := &mockMirror{}
	svc := newAssessmentFixture(repo, roster, mirror)

	testDate := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	test, outcomes, err := svc.CreateTest(context.Background(), 7, 5, CreateTestRequest{Title: "Midterm", TestDate: &testDate})
	require.NoError(t, err)
	assert.Equal(t, 100, test.MaxScore)
	require.Len(t, outcomes, 2)
	require.Len(t, mirror.testFanOuts, 1)
	assert.Equal(t, []string{"u1", "u2"}, mirror.testFanOuts[0])
}

func TestAssessmentServiceCreateTestDeniedForNonOwner(t *testing.T) {
	svc := newAssessmentFixture(&mockAssessmentRepo{}, &mockRoster{}, &mockMirror{})

	_, _, err := svc.CreateTest(context.Background(), 99, 5, CreateTestRequest{Title: "Midterm"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
}

func TestAssessmentServiceCreateAssignmentSurvivesRosterFailure(t *testing.T) {
	repo := &mockAssessmentRepo{}
	roster := &mockRoster{err: sql.ErrConnDone}
	mirror := &mockMirror{}
	svc := newAssessmentFixture(repo, roster, mirror)

	assignment, outcomes, err := svc.CreateAssignment(context.Background(), 7, 5, CreateAssignmentRequest{Title: "Homework"})
	require.NoError(t, err)
	assert.NotZero(t, assignment.ID)
	assert.Empty(t, outcomes)
}

func TestAssessmentServiceBulkInputResults(t *testing.T) {
	repo := &mockAssessmentRepo{tests: map[int64]models.Test{4: {ID: 4, LessonPlanID: 5, MaxScore: 100}}}
	svc := newAssessmentFixture(repo, &mockRoster{}, &mockMirror{})

	result, err := svc.BulkInputResults(context.Background(), 7, 4, BulkTestResultsRequest{
		Results: []TestResultInput{
			{StudentUserID: "u1", Score: 80},
			{StudentUserID: "u2", Score: 150}, // above max, ignored
			{StudentUserID: "u3", Score: 100},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Updated)
	assert.Len(t, repo.results, 2)
}

func TestAssessmentServiceGradeSubmission(t *testing.T) {
	content := "my answer"
	repo := &mockAssessmentRepo{
		assignments: map[int64]models.Assignment{9: {ID: 9, LessonPlanID: 5}},
		submissions: map[int64]models.AssignmentSubmission{
			21: {ID: 21, AssignmentID: 9, StudentUserID: "u1", Content: &content, Status: models.SubmissionSubmitted},
		},
	}
	svc := newAssessmentFixture(repo, &mockRoster{}, &mockMirror{})

	feedback := "well done"
	sub, err := svc.GradeSubmission(context.Background(), 7, 21, GradeSubmissionRequest{Grade: "A", Feedback: &feedback})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionGraded, sub.Status)
	require.NotNil(t, sub.Grade)
	assert.Equal(t, "A", *sub.Grade)
}

func TestAssessmentServiceGradeUnknownSubmission(t *testing.T) {
	svc := newAssessmentFixture(&mockAssessmentRepo{}, &mockRoster{}, &mockMirror{})

	_, err := svc.GradeSubmission(context.Background(), 7, 99, GradeSubmissionRequest{Grade: "A"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestAssessmentServiceDeleteRemovesMirror(t *testing.T) {
	repo := &mockAssessmentRepo{
		tests:       map[int64]models.Test{4: {ID: 4, LessonPlanID: 5}},
		assignments: map[int64]models.Assignment{9: {ID: 9, LessonPlanID: 5}},
	}
	mirror := &mockMirror{}
	svc := newAssessmentFixture(repo, &mockRoster{}, mirror)

	require.NoError(t, svc.DeleteTest(context.Background(), 7, 4))
	require.NoError(t, svc.DeleteAssignment(context.Background(), 7, 9))
	assert.Equal(t, []string{"test", "assignment"}, mirror.removed)
	assert.Empty(t, repo.tests)
	assert.Empty(t, repo.assignments)
}
