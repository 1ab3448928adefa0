package models

import "time"

// ScheduleEventType enumerates the lesson-derived events mirrored into the
// shared schedule table.
type ScheduleEventType string

const (
	ScheduleEventAssignment ScheduleEventType = "assignment"
	ScheduleEventTest       ScheduleEventType = "test"
)

// ScheduleEntry is a row of the shared external schedule table. Rows are
// upserted on (source_app, event_type, source_id, user_id): the first three
// columns identify the source event, the user id scopes the row to one
// student's calendar.
type ScheduleEntry struct {
	ID          int64             `db:"id" json:"id"`
	SourceApp   string            `db:"source_app" json:"source_app"`
	EventType   ScheduleEventType `db:"event_type" json:"event_type"`
	SourceID    int64             `db:"source_id" json:"source_id"`
	UserID      string            `db:"user_id" json:"user_id"`
	Title       string            `db:"title" json:"title"`
	Description string            `db:"description" json:"description"`
	EventDate   time.Time         `db:"event_date" json:"event_date"`
	Subject     string            `db:"subject" json:"subject"`
	Metadata    string            `db:"metadata" json:"metadata"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`
}

// SyncOutcome records one student's result inside a mirror fan-out batch.
// Failures are accounted here instead of aborting the batch.
type SyncOutcome struct {
	StudentUserID string `json:"student_user_id"`
	Synced        bool   `json:"synced"`
	Skipped       bool   `json:"skipped"`
	Reason        string `json:"reason,omitempty"`
}
