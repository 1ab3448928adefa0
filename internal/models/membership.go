package models

import "time"

// MemberRole distinguishes the class owner from regular members.
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleMember MemberRole = "member"
)

// Membership enrolls an external student identity into a class. At most one
// active membership may exist per (class, student) pair; a partial unique
// index on active rows backs the importer's pre-check.
type Membership struct {
	ID            int64      `db:"id" json:"id"`
	ClassID       int64      `db:"class_id" json:"class_id"`
	StudentUserID string     `db:"student_user_id" json:"student_user_id"`
	Role          MemberRole `db:"role" json:"role"`
	Active        bool       `db:"active" json:"active"`
	JoinedAt      time.Time  `db:"joined_at" json:"joined_at"`
}

// MemberProfile joins a membership with directory info for roster listings.
type MemberProfile struct {
	Membership
	DisplayName *string `db:"display_name" json:"display_name,omitempty"`
	Email       *string `db:"email" json:"email,omitempty"`
}
