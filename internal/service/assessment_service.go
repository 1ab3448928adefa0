package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

type assessmentRepository interface {
	CreateTest(ctx context.Context, test *models.Test) error
	FindTestByID(ctx context.Context, id int64) (*models.Test, error)
	DeleteTest(ctx context.Context, id int64) error
	UpsertResult(ctx context.Context, result *models.TestResult) (*models.TestResult, error)
	CreateAssignment(ctx context.Context, assignment *models.Assignment) error
	FindAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error)
	DeleteAssignment(ctx context.Context, id int64) error
	UpsertSubmission(ctx context.Context, sub *models.AssignmentSubmission) (*models.AssignmentSubmission, error)
	FindSubmissionByID(ctx context.Context, id int64) (*models.AssignmentSubmission, error)
	UpdateGrade(ctx context.Context, id int64, grade string, feedback *string) (*models.AssignmentSubmission, error)
}

type planAuthorizer interface {
	AuthorizePlan(ctx context.Context, teacherID, planID int64) (*models.LessonPlan, *models.Class, error)
}

type rosterReader interface {
	ListActiveByClass(ctx context.Context, classID int64) ([]models.Membership, error)
}

type scheduleMirror interface {
	FanOutAssignment(ctx context.Context, studentUserIDs []string, assignment *models.Assignment, lessonCtx LessonContext) []models.SyncOutcome
	FanOutTest(ctx context.Context, studentUserIDs []string, test *models.Test, lessonCtx LessonContext) []models.SyncOutcome
	Remove(ctx context.Context, eventType models.ScheduleEventType, sourceID int64) error
}

// CreateTestRequest describes test creation payload.
type CreateTestRequest struct {
	Title    string     `json:"title" validate:"required,max=200"`
	TestDate *time.Time `json:"test_date"`
	MaxScore int        `json:"max_score" validate:"omitempty,min=1,max=1000"`
}

// CreateAssignmentRequest describes assignment creation payload.
type CreateAssignmentRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	DueDate     *time.Time `json:"due_date"`
}

// TestResultInput is one student's score inside a bulk input.
type TestResultInput struct {
	StudentUserID string `json:"student_user_id" validate:"required"`
	Score         int    `json:"score" validate:"min=0"`
}

// BulkTestResultsRequest records scores for many students at once.
type BulkTestResultsRequest struct {
	Results []TestResultInput `json:"results" validate:"required,min=1,dive"`
}

// BulkTestResultsResult reports how many scores were written.
type BulkTestResultsResult struct {
	Updated int `json:"updated"`
}

// GradeSubmissionRequest grades one submission.
type GradeSubmissionRequest struct {
	Grade    string  `json:"grade" validate:"required,max=20"`
	Feedback *string `json:"feedback" validate:"omitempty,max=2000"`
}

// AssessmentService manages tests, assignments, their per-student results
// and the schedule-mirror fan-out triggered by creation.
type AssessmentService struct {
	repo      assessmentRepository
	plans     planAuthorizer
	roster    rosterReader
	mirror    scheduleMirror
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssessmentService constructs an AssessmentService.
func NewAssessmentService(repo assessmentRepository, plans planAuthorizer, roster rosterReader, mirror scheduleMirror, validate *validator.Validate, logger *zap.Logger) *AssessmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{repo: repo, plans: plans, roster: roster, mirror: mirror, validator: validate, logger: logger}
}

// CreateTest adds a test under an owned lesson plan and mirrors it to the
// enrolled students' calendars. The mirror is best-effort; its outcomes are
// returned alongside the created test.
func (s *AssessmentService) CreateTest(ctx context.Context, teacherID, planID int64, req CreateTestRequest) (*models.Test, []models.SyncOutcome, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid test payload")
	}
	plan, class, err := s.plans.AuthorizePlan(ctx, teacherID, planID)
	if err != nil {
		return nil, nil, err
	}
	test := &models.Test{
		LessonPlanID: planID,
		Title:        strings.TrimSpace(req.Title),
		TestDate:     req.TestDate,
		MaxScore:     req.MaxScore,
	}
	if test.MaxScore <= 0 {
		test.MaxScore = 100
	}
	if err := s.repo.CreateTest(ctx, test); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create test")
	}

	outcomes := s.mirror.FanOutTest(ctx, s.enrolledUserIDs(ctx, class.ID), test, LessonContext{ClassName: class.Name, LessonTitle: plan.Title})
	return test, outcomes, nil
}

// CreateAssignment adds an assignment under an owned lesson plan and mirrors
// it to the enrolled students' calendars.
func (s *AssessmentService) CreateAssignment(ctx context.Context, teacherID, planID int64, req CreateAssignmentRequest) (*models.Assignment, []models.SyncOutcome, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	plan, class, err := s.plans.AuthorizePlan(ctx, teacherID, planID)
	if err != nil {
		return nil, nil, err
	}
	assignment := &models.Assignment{
		LessonPlanID: planID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		DueDate:      req.DueDate,
	}
	if err := s.repo.CreateAssignment(ctx, assignment); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}

	outcomes := s.mirror.FanOutAssignment(ctx, s.enrolledUserIDs(ctx, class.ID), assignment, LessonContext{ClassName: class.Name, LessonTitle: plan.Title})
	return assignment, outcomes, nil
}

// DeleteTest removes an owned test and its mirrored calendar rows.
func (s *AssessmentService) DeleteTest(ctx context.Context, teacherID, testID int64) error {
	test, err := s.authorizeTest(ctx, teacherID, testID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteTest(ctx, test.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete test")
	}
	if err := s.mirror.Remove(ctx, models.ScheduleEventTest, test.ID); err != nil {
		s.logger.Warn("schedule mirror cleanup failed", zap.Int64("test_id", test.ID), zap.Error(err))
	}
	return nil
}

// DeleteAssignment removes an owned assignment and its mirrored rows.
func (s *AssessmentService) DeleteAssignment(ctx context.Context, teacherID, assignmentID int64) error {
	assignment, err := s.authorizeAssignment(ctx, teacherID, assignmentID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteAssignment(ctx, assignment.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	if err := s.mirror.Remove(ctx, models.ScheduleEventAssignment, assignment.ID); err != nil {
		s.logger.Warn("schedule mirror cleanup failed", zap.Int64("assignment_id", assignment.ID), zap.Error(err))
	}
	return nil
}

// BulkInputResults upserts scores for many students. A single upsert failure
// is logged and excluded from the count.
func (s *AssessmentService) BulkInputResults(ctx context.Context, teacherID, testID int64, req BulkTestResultsRequest) (*BulkTestResultsResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid results payload")
	}
	test, err := s.authorizeTest(ctx, teacherID, testID)
	if err != nil {
		return nil, err
	}

	result := &BulkTestResultsResult{}
	for _, input := range req.Results {
		if input.Score > test.MaxScore {
			s.logger.Warn("score above max ignored",
				zap.Int64("test_id", testID),
				zap.String("student_user_id", input.StudentUserID),
				zap.Int("score", input.Score))
			continue
		}
		_, err := s.repo.UpsertResult(ctx, &models.TestResult{
			TestID:        testID,
			StudentUserID: input.StudentUserID,
			Score:         input.Score,
		})
		if err != nil {
			s.logger.Warn("test result upsert failed",
				zap.Int64("test_id", testID),
				zap.String("student_user_id", input.StudentUserID),
				zap.Error(err))
			continue
		}
		result.Updated++
	}
	return result, nil
}

// GradeSubmission records a grade on an owned submission and marks it graded.
func (s *AssessmentService) GradeSubmission(ctx context.Context, teacherID, submissionID int64, req GradeSubmissionRequest) (*models.AssignmentSubmission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	sub, err := s.repo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submission")
	}
	if _, err := s.authorizeAssignment(ctx, teacherID, sub.AssignmentID); err != nil {
		return nil, err
	}
	graded, err := s.repo.UpdateGrade(ctx, submissionID, req.Grade, req.Feedback)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to grade submission")
	}
	return graded, nil
}

func (s *AssessmentService) authorizeTest(ctx context.Context, teacherID, testID int64) (*models.Test, error) {
	test, err := s.repo.FindTestByID(ctx, testID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "test not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load test")
	}
	if _, _, err := s.plans.AuthorizePlan(ctx, teacherID, test.LessonPlanID); err != nil {
		return nil, err
	}
	return test, nil
}

func (s *AssessmentService) authorizeAssignment(ctx context.Context, teacherID, assignmentID int64) (*models.Assignment, error) {
	assignment, err := s.repo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	if _, _, err := s.plans.AuthorizePlan(ctx, teacherID, assignment.LessonPlanID); err != nil {
		return nil, err
	}
	return assignment, nil
}

// enrolledUserIDs returns the active roster's hub user ids. A lookup failure
// degrades to an empty fan-out; the source write already succeeded.
func (s *AssessmentService) enrolledUserIDs(ctx context.Context, classID int64) []string {
	members, err := s.roster.ListActiveByClass(ctx, classID)
	if err != nil {
		s.logger.Warn("roster lookup for mirror failed", zap.Int64("class_id", classID), zap.Error(err))
		return nil
	}
	ids := make([]string, 0, len(members))
	for _, member := range members {
		ids = append(ids, member.StudentUserID)
	}
	return ids
}
