package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

// TeacherRepository manages persistence for locally provisioned teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// FindByHubUserID fetches a teacher by the hub identity it is anchored to.
func (r *TeacherRepository) FindByHubUserID(ctx context.Context, hubUserID string) (*models.Teacher, error) {
	const query = `SELECT id, hub_user_id, username, email, display_name, role, created_at, updated_at FROM teachers WHERE hub_user_id = $1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, hubUserID); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// FindByID fetches a teacher by local id.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	const query = `SELECT id, hub_user_id, username, email, display_name, role, created_at, updated_at FROM teachers WHERE id = $1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create inserts a new teacher record. The hub_user_id column carries a
// uniqueness constraint; concurrent first requests surface as pq unique
// violations that the caller resolves by re-fetching.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	now := time.Now().UTC()
	if teacher.CreatedAt.IsZero() {
		teacher.CreatedAt = now
	}
	teacher.UpdatedAt = now

	const query = `INSERT INTO teachers (hub_user_id, username, email, display_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.GetContext(ctx, &teacher.ID, query,
		teacher.HubUserID, teacher.Username, teacher.Email, teacher.DisplayName, teacher.Role, teacher.CreatedAt, teacher.UpdatedAt); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}
