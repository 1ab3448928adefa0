package models

import "time"

// Class is a teacher-owned group of enrolled students.
// Code and InviteCode are generated at creation time and immutable.
type Class struct {
	ID          int64     `db:"id" json:"id"`
	OwnerID     int64     `db:"owner_id" json:"owner_id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Code        string    `db:"code" json:"code"`
	InviteCode  string    `db:"invite_code" json:"invite_code"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ClassSummary extends Class with its active member count for listings.
type ClassSummary struct {
	Class
	MemberCount int `db:"member_count" json:"member_count"`
}
