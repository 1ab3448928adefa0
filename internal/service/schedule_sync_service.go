package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutorboard-api/internal/models"
	"github.com/noah-isme/tutorboard-api/pkg/config"
)

type scheduleRepository interface {
	Upsert(ctx context.Context, entry *models.ScheduleEntry) (*models.ScheduleEntry, error)
	DeleteByEvent(ctx context.Context, sourceApp string, eventType models.ScheduleEventType, sourceID int64) error
}

// LessonContext carries the human-readable context composed into mirrored
// schedule entries.
type LessonContext struct {
	ClassName   string `json:"className"`
	LessonTitle string `json:"lessonTitle"`
}

// ScheduleSyncService mirrors lesson-derived events into the shared external
// schedule table. Mirroring is best-effort: per-student failures are
// accounted and logged, never propagated to the source-of-truth write.
type ScheduleSyncService struct {
	repo    scheduleRepository
	metrics *MetricsService
	logger  *zap.Logger
	cfg     config.ScheduleSyncConfig
}

// NewScheduleSyncService constructs a ScheduleSyncService.
func NewScheduleSyncService(repo scheduleRepository, metrics *MetricsService, logger *zap.Logger, cfg config.ScheduleSyncConfig) *ScheduleSyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SourceApp == "" {
		cfg.SourceApp = "tutorboard"
	}
	return &ScheduleSyncService{repo: repo, metrics: metrics, logger: logger, cfg: cfg}
}

// SyncAssignment upserts one student's calendar row for an assignment.
// An assignment without a due date has nothing to schedule and is a no-op.
func (s *ScheduleSyncService) SyncAssignment(ctx context.Context, userID string, assignment *models.Assignment, lessonCtx LessonContext) error {
	if assignment.DueDate == nil {
		return nil
	}
	return s.upsert(ctx, userID, models.ScheduleEventAssignment, assignment.ID,
		fmt.Sprintf("[Assignment] %s", assignment.Title), *assignment.DueDate, lessonCtx)
}

// SyncTest upserts one student's calendar row for a test. A test without a
// date is a no-op.
func (s *ScheduleSyncService) SyncTest(ctx context.Context, userID string, test *models.Test, lessonCtx LessonContext) error {
	if test.TestDate == nil {
		return nil
	}
	return s.upsert(ctx, userID, models.ScheduleEventTest, test.ID,
		fmt.Sprintf("[Test] %s", test.Title), *test.TestDate, lessonCtx)
}

// FanOutAssignment mirrors an assignment to every given student. One
// student's failure never blocks another's; the returned outcomes are the
// authoritative account of what happened.
func (s *ScheduleSyncService) FanOutAssignment(ctx context.Context, studentUserIDs []string, assignment *models.Assignment, lessonCtx LessonContext) []models.SyncOutcome {
	return s.fanOut(ctx, studentUserIDs, string(models.ScheduleEventAssignment), func(userID string) error {
		return s.SyncAssignment(ctx, userID, assignment, lessonCtx)
	})
}

// FanOutTest mirrors a test to every given student.
func (s *ScheduleSyncService) FanOutTest(ctx context.Context, studentUserIDs []string, test *models.Test, lessonCtx LessonContext) []models.SyncOutcome {
	return s.fanOut(ctx, studentUserIDs, string(models.ScheduleEventTest), func(userID string) error {
		return s.SyncTest(ctx, userID, test, lessonCtx)
	})
}

// Remove deletes every mirrored row of one source event. Used when the
// source test/assignment is deleted.
func (s *ScheduleSyncService) Remove(ctx context.Context, eventType models.ScheduleEventType, sourceID int64) error {
	if !s.cfg.Enabled {
		return nil
	}
	return s.repo.DeleteByEvent(ctx, s.cfg.SourceApp, eventType, sourceID)
}

func (s *ScheduleSyncService) fanOut(ctx context.Context, studentUserIDs []string, eventType string, sync func(userID string) error) []models.SyncOutcome {
	outcomes := make([]models.SyncOutcome, 0, len(studentUserIDs))
	for _, userID := range studentUserIDs {
		// Legacy memberships may predate the hub mapping; nothing to
		// mirror for them.
		if userID == "" {
			outcomes = append(outcomes, models.SyncOutcome{Skipped: true, Reason: "no hub mapping"})
			s.metrics.RecordSyncOutcome(eventType, "skipped")
			continue
		}
		if err := sync(userID); err != nil {
			s.logger.Warn("schedule mirror failed",
				zap.String("event_type", eventType),
				zap.String("student_user_id", userID),
				zap.Error(err))
			outcomes = append(outcomes, models.SyncOutcome{StudentUserID: userID, Reason: err.Error()})
			s.metrics.RecordSyncOutcome(eventType, "failed")
			continue
		}
		outcomes = append(outcomes, models.SyncOutcome{StudentUserID: userID, Synced: true})
		s.metrics.RecordSyncOutcome(eventType, "synced")
	}
	return outcomes
}

func (s *ScheduleSyncService) upsert(ctx context.Context, userID string, eventType models.ScheduleEventType, sourceID int64, title string, date time.Time, lessonCtx LessonContext) error {
	if !s.cfg.Enabled {
		return nil
	}
	metadata, err := json.Marshal(lessonCtx)
	if err != nil {
		return fmt.Errorf("marshal schedule metadata: %w", err)
	}
	entry := &models.ScheduleEntry{
		SourceApp:   s.cfg.SourceApp,
		EventType:   eventType,
		SourceID:    sourceID,
		UserID:      userID,
		Title:       title,
		Description: fmt.Sprintf("%s - %s", lessonCtx.ClassName, lessonCtx.LessonTitle),
		EventDate:   date,
		Subject:     s.cfg.Subject,
		Metadata:    string(metadata),
	}
	if _, err := s.repo.Upsert(ctx, entry); err != nil {
		return err
	}
	return nil
}
