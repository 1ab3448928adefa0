package models

import "time"

// TeacherRole tags locally provisioned accounts.
type TeacherRole string

const (
	TeacherRoleTeacher TeacherRole = "teacher"
	TeacherRoleAdmin   TeacherRole = "admin"
)

// Teacher is a locally provisioned account anchored to a hub identity.
// Created lazily on the first authenticated request and never deleted.
type Teacher struct {
	ID          int64       `db:"id" json:"id"`
	HubUserID   string      `db:"hub_user_id" json:"hub_user_id"`
	Username    string      `db:"username" json:"username"`
	Email       string      `db:"email" json:"email"`
	DisplayName string      `db:"display_name" json:"display_name"`
	Role        TeacherRole `db:"role" json:"role"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// HubUser is a read-only row of the hub identity directory. The directory is
// synchronised by the hub integration outside this service; this side only
// queries it to resolve external student ids during roster import.
type HubUser struct {
	UserID      string  `db:"user_id" json:"user_id"`
	Username    string  `db:"username" json:"username"`
	DisplayName string  `db:"display_name" json:"display_name"`
	Email       *string `db:"email" json:"email,omitempty"`
}
