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

type lessonRepository interface {
	CreatePlan(ctx context.Context, plan *models.LessonPlan) error
	FindPlanByID(ctx context.Context, id int64) (*models.LessonPlan, error)
	ListPlansByClass(ctx context.Context, classID int64) ([]models.LessonPlan, error)
	UpdatePlan(ctx context.Context, plan *models.LessonPlan) error
	DeletePlan(ctx context.Context, id int64) error
	CreateRecord(ctx context.Context, record *models.LessonRecord) error
	ListRecordsByPlan(ctx context.Context, planID int64) ([]models.LessonRecord, error)
}

// CreateLessonPlanRequest describes lesson plan creation payload.
type CreateLessonPlanRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// UpdateLessonPlanRequest describes lesson plan update payload.
type UpdateLessonPlanRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Progress    *int       `json:"progress" validate:"omitempty,min=0,max=100"`
}

// CreateLessonRecordRequest describes the append-only record payload.
type CreateLessonRecordRequest struct {
	RecordDate   time.Time `json:"record_date" validate:"required"`
	Summary      string    `json:"summary" validate:"required,max=2000"`
	PageRange    *string   `json:"page_range" validate:"omitempty,max=100"`
	ConceptNotes *string   `json:"concept_notes" validate:"omitempty,max=2000"`
}

// LessonService manages lesson plans and their append-only records.
type LessonService struct {
	repo              lessonRepository
	guard             classAuthorizer
	validator         *validator.Validate
	logger            *zap.Logger
	progressIncrement int
}

// NewLessonService constructs a LessonService.
func NewLessonService(repo lessonRepository, guard classAuthorizer, validate *validator.Validate, logger *zap.Logger, progressIncrement int) *LessonService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if progressIncrement <= 0 {
		progressIncrement = 10
	}
	return &LessonService{repo: repo, guard: guard, validator: validate, logger: logger, progressIncrement: progressIncrement}
}

// CreatePlan adds a lesson plan to an owned class.
func (s *LessonService) CreatePlan(ctx context.Context, teacherID, classID int64, req CreateLessonPlanRequest) (*models.LessonPlan, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson plan payload")
	}
	if _, err := s.guard.Authorize(ctx, teacherID, classID); err != nil {
		return nil, err
	}
	plan := &models.LessonPlan{
		ClassID:     classID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		ScheduledAt: req.ScheduledAt,
	}
	if err := s.repo.CreatePlan(ctx, plan); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create lesson plan")
	}
	return plan, nil
}

// ListPlans returns the lesson plans of an owned class.
func (s *LessonService) ListPlans(ctx context.Context, teacherID, classID int64) ([]models.LessonPlan, error) {
	if _, err := s.guard.Authorize(ctx, teacherID, classID); err != nil {
		return nil, err
	}
	plans, err := s.repo.ListPlansByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lesson plans")
	}
	return plans, nil
}

// AuthorizePlan loads a lesson plan and enforces ownership transitively
// through its class.
func (s *LessonService) AuthorizePlan(ctx context.Context, teacherID, planID int64) (*models.LessonPlan, *models.Class, error) {
	plan, err := s.repo.FindPlanByID(ctx, planID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "lesson plan not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lesson plan")
	}
	class, err := s.guard.Authorize(ctx, teacherID, plan.ClassID)
	if err != nil {
		return nil, nil, err
	}
	return plan, class, nil
}

// UpdatePlan modifies an owned lesson plan.
func (s *LessonService) UpdatePlan(ctx context.Context, teacherID, planID int64, req UpdateLessonPlanRequest) (*models.LessonPlan, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson plan payload")
	}
	plan, _, err := s.AuthorizePlan(ctx, teacherID, planID)
	if err != nil {
		return nil, err
	}
	plan.Title = strings.TrimSpace(req.Title)
	plan.Description = req.Description
	plan.ScheduledAt = req.ScheduledAt
	if req.Progress != nil {
		plan.Progress = clampProgress(*req.Progress)
	}
	if err := s.repo.UpdatePlan(ctx, plan); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update lesson plan")
	}
	return plan, nil
}

// DeletePlan removes an owned lesson plan.
func (s *LessonService) DeletePlan(ctx context.Context, teacherID, planID int64) error {
	if _, _, err := s.AuthorizePlan(ctx, teacherID, planID); err != nil {
		return err
	}
	if err := s.repo.DeletePlan(ctx, planID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete lesson plan")
	}
	return nil
}

// CreateRecord appends a lesson record and advances the plan's progress by
// the configured increment, capped at 100. The progress bump is best-effort
// bookkeeping: a failure there is logged, the record itself stands.
func (s *LessonService) CreateRecord(ctx context.Context, teacherID, planID int64, req CreateLessonRecordRequest) (*models.LessonRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson record payload")
	}
	plan, _, err := s.AuthorizePlan(ctx, teacherID, planID)
	if err != nil {
		return nil, err
	}
	record := &models.LessonRecord{
		LessonPlanID: planID,
		RecordDate:   req.RecordDate,
		Summary:      strings.TrimSpace(req.Summary),
		PageRange:    req.PageRange,
		ConceptNotes: req.ConceptNotes,
	}
	if err := s.repo.CreateRecord(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create lesson record")
	}

	if plan.Progress < 100 {
		plan.Progress = clampProgress(plan.Progress + s.progressIncrement)
		if err := s.repo.UpdatePlan(ctx, plan); err != nil {
			s.logger.Warn("lesson progress bump failed", zap.Int64("plan_id", planID), zap.Error(err))
		}
	}
	return record, nil
}

// ListRecords returns a plan's records.
func (s *LessonService) ListRecords(ctx context.Context, teacherID, planID int64) ([]models.LessonRecord, error) {
	if _, _, err := s.AuthorizePlan(ctx, teacherID, planID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListRecordsByPlan(ctx, planID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lesson records")
	}
	return records, nil
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
