package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

// CommentRepository manages persistence for private comments.
type CommentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository constructs a CommentRepository.
func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create appends a private comment.
func (r *CommentRepository) Create(ctx context.Context, comment *models.PrivateComment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO private_comments (author_id, target_id, student_user_id, context_type, context_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.GetContext(ctx, &comment.ID, query,
		comment.AuthorID, comment.TargetID, comment.StudentUserID, comment.ContextType, comment.ContextID, comment.Content, comment.CreatedAt); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// List returns the conversation between two users in both directions along
// with the total count, optionally scoped by student and context.
func (r *CommentRepository) List(ctx context.Context, filter models.CommentFilter) ([]models.PrivateComment, int, error) {
	base := `FROM private_comments
		WHERE ((author_id = $1 AND target_id = $2) OR (author_id = $2 AND target_id = $1))`
	args := []interface{}{filter.AuthorID, filter.TargetID}

	if filter.StudentUserID != "" {
		base += fmt.Sprintf(" AND student_user_id = $%d", len(args)+1)
		args = append(args, filter.StudentUserID)
	}
	if filter.ContextType != "" {
		base += fmt.Sprintf(" AND context_type = $%d", len(args)+1)
		args = append(args, filter.ContextType)
	}
	if filter.ContextID != 0 {
		base += fmt.Sprintf(" AND context_id = $%d", len(args)+1)
		args = append(args, filter.ContextID)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, author_id, target_id, student_user_id, context_type, context_id, content, created_at
		%s ORDER BY created_at DESC LIMIT %d OFFSET %d`, base, size, offset)
	var comments []models.PrivateComment
	if err := r.db.SelectContext(ctx, &comments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}

	countQuery := "SELECT COUNT(*) " + base
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}
	return comments, total, nil
}
