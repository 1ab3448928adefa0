package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

type attendanceRepository interface {
	Upsert(ctx context.Context, record *models.Attendance) (*models.Attendance, error)
	ListByClassAndDate(ctx context.Context, classID int64, date time.Time) ([]models.Attendance, error)
}

// AttendanceRecordInput is one student's status inside a bulk check.
type AttendanceRecordInput struct {
	StudentUserID string                  `json:"student_user_id" validate:"required"`
	Status        models.AttendanceStatus `json:"status" validate:"required"`
}

// BulkAttendanceRequest marks a whole class for one date.
type BulkAttendanceRequest struct {
	Date    time.Time               `json:"date" validate:"required"`
	Records []AttendanceRecordInput `json:"records" validate:"required,min=1,dive"`
}

// BulkAttendanceResult reports how many rows were written.
type BulkAttendanceResult struct {
	Updated int `json:"updated"`
}

// AttendanceService upserts attendance idempotently on
// (class, student, date).
type AttendanceService struct {
	repo      attendanceRepository
	guard     classAuthorizer
	stats     statsInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(repo attendanceRepository, guard classAuthorizer, stats statsInvalidator, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, guard: guard, stats: stats, validator: validate, logger: logger}
}

// BulkCheck upserts one status per student for the date. A single record's
// failure is logged and excluded from the count; the batch never aborts.
func (s *AttendanceService) BulkCheck(ctx context.Context, teacherID, classID int64, req BulkAttendanceRequest) (*BulkAttendanceResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	for _, record := range req.Records {
		if !record.Status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "status must be present, late or absent")
		}
	}
	if _, err := s.guard.Authorize(ctx, teacherID, classID); err != nil {
		return nil, err
	}

	day := truncateToDay(req.Date)
	result := &BulkAttendanceResult{}
	for _, record := range req.Records {
		_, err := s.repo.Upsert(ctx, &models.Attendance{
			ClassID:       classID,
			StudentUserID: record.StudentUserID,
			Date:          day,
			Status:        record.Status,
		})
		if err != nil {
			s.logger.Warn("attendance upsert failed",
				zap.Int64("class_id", classID),
				zap.String("student_user_id", record.StudentUserID),
				zap.Error(err))
			continue
		}
		result.Updated++
	}

	if s.stats != nil && result.Updated > 0 {
		s.stats.InvalidateClass(ctx, classID)
	}
	return result, nil
}

// Sheet returns the attendance sheet of an owned class for one date.
func (s *AttendanceService) Sheet(ctx context.Context, teacherID, classID int64, date time.Time) ([]models.Attendance, error) {
	if _, err := s.guard.Authorize(ctx, teacherID, classID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListByClassAndDate(ctx, classID, truncateToDay(date))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
