package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

// MembershipRepository manages persistence for class memberships.
type MembershipRepository struct {
	db *sqlx.DB
}

// NewMembershipRepository constructs a MembershipRepository.
func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// ListActiveByClass returns the active memberships of a class in join order.
func (r *MembershipRepository) ListActiveByClass(ctx context.Context, classID int64) ([]models.Membership, error) {
	const query = `SELECT id, class_id, student_user_id, role, active, joined_at
		FROM class_members WHERE class_id = $1 AND active ORDER BY joined_at ASC`
	var members []models.Membership
	if err := r.db.SelectContext(ctx, &members, query, classID); err != nil {
		return nil, fmt.Errorf("list class members: %w", err)
	}
	return members, nil
}

// ListProfilesByClass returns active memberships joined with directory info.
func (r *MembershipRepository) ListProfilesByClass(ctx context.Context, classID int64) ([]models.MemberProfile, error) {
	const query = `SELECT m.id, m.class_id, m.student_user_id, m.role, m.active, m.joined_at,
		h.display_name, h.email
		FROM class_members m
		LEFT JOIN hub_users h ON h.user_id = m.student_user_id
		WHERE m.class_id = $1 AND m.active
		ORDER BY m.joined_at ASC`
	var profiles []models.MemberProfile
	if err := r.db.SelectContext(ctx, &profiles, query, classID); err != nil {
		return nil, fmt.Errorf("list member profiles: %w", err)
	}
	return profiles, nil
}

// FindActiveUserIDs returns which of the given student ids already hold an
// active membership in the class, in one batched query.
func (r *MembershipRepository) FindActiveUserIDs(ctx context.Context, classID int64, userIDs []string) ([]string, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT student_user_id FROM class_members WHERE class_id = ? AND active AND student_user_id IN (?)`, classID, userIDs)
	if err != nil {
		return nil, fmt.Errorf("build membership lookup: %w", err)
	}
	query = r.db.Rebind(query)
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("lookup memberships: %w", err)
	}
	return ids, nil
}

// Create inserts a membership row. A partial unique index on active
// (class_id, student_user_id) pairs rejects duplicate enrollments; the
// importer maps that rejection to "already registered".
func (r *MembershipRepository) Create(ctx context.Context, member *models.Membership) error {
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now().UTC()
	}
	member.Active = true

	const query = `INSERT INTO class_members (class_id, student_user_id, role, active, joined_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.GetContext(ctx, &member.ID, query,
		member.ClassID, member.StudentUserID, member.Role, member.Active, member.JoinedAt); err != nil {
		return fmt.Errorf("create membership: %w", err)
	}
	return nil
}

// Deactivate clears the active flag on a membership.
func (r *MembershipRepository) Deactivate(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE class_members SET active = FALSE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deactivate membership: %w", err)
	}
	return nil
}
