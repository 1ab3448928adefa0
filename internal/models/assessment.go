package models

import "time"

// Test belongs to a lesson plan. A nil TestDate means the test is not
// scheduled and is skipped by the schedule mirror.
type Test struct {
	ID           int64      `db:"id" json:"id"`
	LessonPlanID int64      `db:"lesson_plan_id" json:"lesson_plan_id"`
	Title        string     `db:"title" json:"title"`
	TestDate     *time.Time `db:"test_date" json:"test_date,omitempty"`
	MaxScore     int        `db:"max_score" json:"max_score"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// TestResult is upserted on (test, student).
type TestResult struct {
	ID            int64     `db:"id" json:"id"`
	TestID        int64     `db:"test_id" json:"test_id"`
	StudentUserID string    `db:"student_user_id" json:"student_user_id"`
	Score         int       `db:"score" json:"score"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// SubmissionStatus tracks the grading lifecycle of a submission.
type SubmissionStatus string

const (
	SubmissionAssigned  SubmissionStatus = "assigned"
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
)

// Assignment belongs to a lesson plan. A nil DueDate means nothing to schedule.
type Assignment struct {
	ID           int64      `db:"id" json:"id"`
	LessonPlanID int64      `db:"lesson_plan_id" json:"lesson_plan_id"`
	Title        string     `db:"title" json:"title"`
	Description  *string    `db:"description" json:"description,omitempty"`
	DueDate      *time.Time `db:"due_date" json:"due_date,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// AssignmentSubmission is upserted on (assignment, student) and carries
// grading state.
type AssignmentSubmission struct {
	ID            int64            `db:"id" json:"id"`
	AssignmentID  int64            `db:"assignment_id" json:"assignment_id"`
	StudentUserID string           `db:"student_user_id" json:"student_user_id"`
	Content       *string          `db:"content" json:"content,omitempty"`
	Status        SubmissionStatus `db:"status" json:"status"`
	Grade         *string          `db:"grade" json:"grade,omitempty"`
	Feedback      *string          `db:"feedback" json:"feedback,omitempty"`
	SubmittedAt   *time.Time       `db:"submitted_at" json:"submitted_at,omitempty"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updated_at"`
}
