package models

import "time"

// DailySnapshot is an immutable per-member per-day study-time record.
// Snapshots are produced by an external rollup job and only read here;
// at most one row exists per (member, calendar day).
type DailySnapshot struct {
	ID            int64     `db:"id" json:"id"`
	MemberID      int64     `db:"member_id" json:"member_id"`
	SnapshotDate  time.Time `db:"snapshot_date" json:"snapshot_date"`
	TotalStudyMin int       `db:"total_study_min" json:"total_study_min"`
}
