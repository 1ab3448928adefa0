package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

// ClassRepository manages persistence for classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// Create inserts a new class with its generated codes.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	now := time.Now().UTC()
	if class.CreatedAt.IsZero() {
		class.CreatedAt = now
	}
	class.UpdatedAt = now

	const query = `INSERT INTO classes (owner_id, name, description, code, invite_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.GetContext(ctx, &class.ID, query,
		class.OwnerID, class.Name, class.Description, class.Code, class.InviteCode, class.CreatedAt, class.UpdatedAt); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// FindByID fetches a class by id.
func (r *ClassRepository) FindByID(ctx context.Context, id int64) (*models.Class, error) {
	const query = `SELECT id, owner_id, name, description, code, invite_code, created_at, updated_at FROM classes WHERE id = $1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// ListByOwner returns the owner's classes with active member counts, newest first.
func (r *ClassRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.ClassSummary, error) {
	const query = `SELECT c.id, c.owner_id, c.name, c.description, c.code, c.invite_code, c.created_at, c.updated_at,
		COUNT(m.id) FILTER (WHERE m.active) AS member_count
		FROM classes c
		LEFT JOIN class_members m ON m.class_id = c.id
		WHERE c.owner_id = $1
		GROUP BY c.id
		ORDER BY c.created_at DESC`
	var classes []models.ClassSummary
	if err := r.db.SelectContext(ctx, &classes, query, ownerID); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// Update modifies name and description.
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	class.UpdatedAt = time.Now().UTC()
	const query = `UPDATE classes SET name = $2, description = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, class.ID, class.Name, class.Description, class.UpdatedAt); err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	return nil
}

// Delete removes a class row.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	return nil
}
