package models

import "time"

// LessonPlan belongs to a class and tracks teaching progress as a 0-100 percentage.
type LessonPlan struct {
	ID          int64      `db:"id" json:"id"`
	ClassID     int64      `db:"class_id" json:"class_id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description,omitempty"`
	ScheduledAt *time.Time `db:"scheduled_at" json:"scheduled_at,omitempty"`
	Progress    int        `db:"progress" json:"progress"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// LessonRecord is an append-only log of what a lesson covered on a date.
type LessonRecord struct {
	ID           int64     `db:"id" json:"id"`
	LessonPlanID int64     `db:"lesson_plan_id" json:"lesson_plan_id"`
	RecordDate   time.Time `db:"record_date" json:"record_date"`
	Summary      string    `db:"summary" json:"summary"`
	PageRange    *string   `db:"page_range" json:"page_range,omitempty"`
	ConceptNotes *string   `db:"concept_notes" json:"concept_notes,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
