package models

import "time"

// AttendanceStatus enumerates per-day attendance outcomes.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// Valid reports whether the status is one of the known values.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceLate, AttendanceAbsent:
		return true
	}
	return false
}

// Attendance stores one status per (class, student, calendar day) and is
// upserted idempotently on that compound key.
type Attendance struct {
	ID            int64            `db:"id" json:"id"`
	ClassID       int64            `db:"class_id" json:"class_id"`
	StudentUserID string           `db:"student_user_id" json:"student_user_id"`
	Date          time.Time        `db:"date" json:"date"`
	Status        AttendanceStatus `db:"status" json:"status"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updated_at"`
}
