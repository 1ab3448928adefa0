package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

// LessonRepository manages persistence for lesson plans and records.
type LessonRepository struct {
	db *sqlx.DB
}

// NewLessonRepository constructs a LessonRepository.
func NewLessonRepository(db *sqlx.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

// CreatePlan inserts a lesson plan.
func (r *LessonRepository) CreatePlan(ctx context.Context, plan *models.LessonPlan) error {
	now := time.Now().UTC()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now

	const query = `INSERT INTO lesson_plans (class_id, title, description, scheduled_at, progress, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.GetContext(ctx, &plan.ID, query,
		plan.ClassID, plan.Title, plan.Description, plan.ScheduledAt, plan.Progress, plan.CreatedAt, plan.UpdatedAt); err != nil {
		return fmt.Errorf("create lesson plan: %w", err)
	}
	return nil
}

// FindPlanByID fetches a lesson plan.
func (r *LessonRepository) FindPlanByID(ctx context.Context, id int64) (*models.LessonPlan, error) {
	const query = `SELECT id, class_id, title, description, scheduled_at, progress, created_at, updated_at
		FROM lesson_plans WHERE id = $1`
	var plan models.LessonPlan
	if err := r.db.GetContext(ctx, &plan, query, id); err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListPlansByClass returns a class's lesson plans, oldest first.
func (r *LessonRepository) ListPlansByClass(ctx context.Context, classID int64) ([]models.LessonPlan, error) {
	const query = `SELECT id, class_id, title, description, scheduled_at, progress, created_at, updated_at
		FROM lesson_plans WHERE class_id = $1 ORDER BY created_at ASC`
	var plans []models.LessonPlan
	if err := r.db.SelectContext(ctx, &plans, query, classID); err != nil {
		return nil, fmt.Errorf("list lesson plans: %w", err)
	}
	return plans, nil
}

// UpdatePlan modifies title, description, schedule and progress.
func (r *LessonRepository) UpdatePlan(ctx context.Context, plan *models.LessonPlan) error {
	plan.UpdatedAt = time.Now().UTC()
	const query = `UPDATE lesson_plans SET title = $2, description = $3, scheduled_at = $4, progress = $5, updated_at = $6 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query,
		plan.ID, plan.Title, plan.Description, plan.ScheduledAt, plan.Progress, plan.UpdatedAt); err != nil {
		return fmt.Errorf("update lesson plan: %w", err)
	}
	return nil
}

// DeletePlan removes a lesson plan.
func (r *LessonRepository) DeletePlan(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM lesson_plans WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete lesson plan: %w", err)
	}
	return nil
}

// CreateRecord appends a lesson record. Records are immutable once written.
func (r *LessonRepository) CreateRecord(ctx context.Context, record *models.LessonRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO lesson_records (lesson_plan_id, record_date, summary, page_range, concept_notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.GetContext(ctx, &record.ID, query,
		record.LessonPlanID, record.RecordDate, record.Summary, record.PageRange, record.ConceptNotes, record.CreatedAt); err != nil {
		return fmt.Errorf("create lesson record: %w", err)
	}
	return nil
}

// ListRecordsByPlan returns a plan's records, newest first.
func (r *LessonRepository) ListRecordsByPlan(ctx context.Context, planID int64) ([]models.LessonRecord, error) {
	const query = `SELECT id, lesson_plan_id, record_date, summary, page_range, concept_notes, created_at
		FROM lesson_records WHERE lesson_plan_id = $1 ORDER BY record_date DESC`
	var records []models.LessonRecord
	if err := r.db.SelectContext(ctx, &records, query, planID); err != nil {
		return nil, fmt.Errorf("list lesson records: %w", err)
	}
	return records, nil
}
