package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

// AttendanceRepository handles persistence for attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert inserts or updates the status for one (class, student, date) key.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.Attendance) (*models.Attendance, error) {
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	const query = `INSERT INTO attendance (class_id, student_user_id, date, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (class_id, student_user_id, date)
DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
RETURNING id, class_id, student_user_id, date, status, created_at, updated_at`
	var stored models.Attendance
	if err := r.db.GetContext(ctx, &stored, query,
		record.ClassID, record.StudentUserID, record.Date, record.Status, record.CreatedAt, record.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}
	return &stored, nil
}

// ListByClassAndDate returns the attendance sheet for one class day.
func (r *AttendanceRepository) ListByClassAndDate(ctx context.Context, classID int64, date time.Time) ([]models.Attendance, error) {
	const query = `SELECT id, class_id, student_user_id, date, status, created_at, updated_at
		FROM attendance WHERE class_id = $1 AND date = $2 ORDER BY student_user_id ASC`
	var records []models.Attendance
	if err := r.db.SelectContext(ctx, &records, query, classID, date); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}
