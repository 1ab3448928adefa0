package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

// AssessmentRepository manages persistence for tests, assignments and their
// per-student results and submissions.
type AssessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository constructs an AssessmentRepository.
func NewAssessmentRepository(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// CreateTest inserts a test under a lesson plan.
func (r *AssessmentRepository) CreateTest(ctx context.Context, test *models.Test) error {
	if test.CreatedAt.IsZero() {
		test.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO tests (lesson_plan_id, title, test_date, max_score, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.GetContext(ctx, &test.ID, query,
		test.LessonPlanID, test.Title, test.TestDate, test.MaxScore, test.CreatedAt); err != nil {
		return fmt.Errorf("create test: %w", err)
	}
	return nil
}

// FindTestByID fetches a test.
func (r *AssessmentRepository) FindTestByID(ctx context.Context, id int64) (*models.Test, error) {
	const query = `SELECT id, lesson_plan_id, title, test_date, max_score, created_at FROM tests WHERE id = $1`
	var test models.Test
	if err := r.db.GetContext(ctx, &test, query, id); err != nil {
		return nil, err
	}
	return &test, nil
}

// DeleteTest removes a test row.
func (r *AssessmentRepository) DeleteTest(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tests WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete test: %w", err)
	}
	return nil
}

// UpsertResult inserts or updates a score on the (test, student) key.
func (r *AssessmentRepository) UpsertResult(ctx context.Context, result *models.TestResult) (*models.TestResult, error) {
	now := time.Now().UTC()
	if result.CreatedAt.IsZero() {
		result.CreatedAt = now
	}
	result.UpdatedAt = now
	const query = `INSERT INTO test_results (test_id, student_user_id, score, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (test_id, student_user_id)
DO UPDATE SET score = EXCLUDED.score, updated_at = EXCLUDED.updated_at
RETURNING id, test_id, student_user_id, score, created_at, updated_at`
	var stored models.TestResult
	if err := r.db.GetContext(ctx, &stored, query,
		result.TestID, result.StudentUserID, result.Score, result.CreatedAt, result.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert test result: %w", err)
	}
	return &stored, nil
}

// CreateAssignment inserts an assignment under a lesson plan.
func (r *AssessmentRepository) CreateAssignment(ctx context.Context, assignment *models.Assignment) error {
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO assignments (lesson_plan_id, title, description, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.GetContext(ctx, &assignment.ID, query,
		assignment.LessonPlanID, assignment.Title, assignment.Description, assignment.DueDate, assignment.CreatedAt); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// FindAssignmentByID fetches an assignment.
func (r *AssessmentRepository) FindAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error) {
	const query = `SELECT id, lesson_plan_id, title, description, due_date, created_at FROM assignments WHERE id = $1`
	var assignment models.Assignment
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// DeleteAssignment removes an assignment row.
func (r *AssessmentRepository) DeleteAssignment(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

// UpsertSubmission inserts or updates a submission on the
// (assignment, student) key.
func (r *AssessmentRepository) UpsertSubmission(ctx context.Context, sub *models.AssignmentSubmission) (*models.AssignmentSubmission, error) {
	now := time.Now().UTC()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = now
	}
	sub.UpdatedAt = now
	const query = `INSERT INTO assignment_submissions (assignment_id, student_user_id, content, status, grade, feedback, submitted_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (assignment_id, student_user_id)
DO UPDATE SET content = EXCLUDED.content, status = EXCLUDED.status, submitted_at = EXCLUDED.submitted_at, updated_at = EXCLUDED.updated_at
RETURNING id, assignment_id, student_user_id, content, status, grade, feedback, submitted_at, created_at, updated_at`
	var stored models.AssignmentSubmission
	if err := r.db.GetContext(ctx, &stored, query,
		sub.AssignmentID, sub.StudentUserID, sub.Content, sub.Status, sub.Grade, sub.Feedback, sub.SubmittedAt, sub.CreatedAt, sub.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert submission: %w", err)
	}
	return &stored, nil
}

// FindSubmissionByID fetches a submission.
func (r *AssessmentRepository) FindSubmissionByID(ctx context.Context, id int64) (*models.AssignmentSubmission, error) {
	const query = `SELECT id, assignment_id, student_user_id, content, status, grade, feedback, submitted_at, created_at, updated_at
		FROM assignment_submissions WHERE id = $1`
	var sub models.AssignmentSubmission
	if err := r.db.GetContext(ctx, &sub, query, id); err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpdateGrade records a grade and marks the submission graded.
func (r *AssessmentRepository) UpdateGrade(ctx context.Context, id int64, grade string, feedback *string) (*models.AssignmentSubmission, error) {
	const query = `UPDATE assignment_submissions
		SET grade = $2, feedback = $3, status = $4, updated_at = $5
		WHERE id = $1
		RETURNING id, assignment_id, student_user_id, content, status, grade, feedback, submitted_at, created_at, updated_at`
	var stored models.AssignmentSubmission
	if err := r.db.GetContext(ctx, &stored, query, id, grade, feedback, models.SubmissionGraded, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("grade submission: %w", err)
	}
	return &stored, nil
}
