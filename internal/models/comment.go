package models

import "time"

// PrivateComment is an append-only message between two local users, optionally
// scoped to a student and a lesson/test/assignment context.
type PrivateComment struct {
	ID            int64     `db:"id" json:"id"`
	AuthorID      int64     `db:"author_id" json:"author_id"`
	TargetID      int64     `db:"target_id" json:"target_id"`
	StudentUserID *string   `db:"student_user_id" json:"student_user_id,omitempty"`
	ContextType   *string   `db:"context_type" json:"context_type,omitempty"`
	ContextID     *int64    `db:"context_id" json:"context_id,omitempty"`
	Content       string    `db:"content" json:"content"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// CommentFilter narrows private comment listings.
type CommentFilter struct {
	AuthorID      int64
	TargetID      int64
	StudentUserID string
	ContextType   string
	ContextID     int64
	Page          int
	PageSize      int
}
