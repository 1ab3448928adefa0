package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

// SnapshotRepository reads daily study snapshots. Snapshots are written by an
// external rollup subsystem; this service only aggregates them.
type SnapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository constructs a SnapshotRepository.
func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// ListByClassSince returns all snapshots of a class's members dated at or
// after the window start, ordered by date ascending.
func (r *SnapshotRepository) ListByClassSince(ctx context.Context, classID int64, since time.Time) ([]models.DailySnapshot, error) {
	const query = `SELECT s.id, s.member_id, s.snapshot_date, s.total_study_min
		FROM daily_snapshots s
		JOIN class_members m ON m.id = s.member_id
		WHERE m.class_id = $1 AND s.snapshot_date >= $2
		ORDER BY s.snapshot_date ASC`
	var snapshots []models.DailySnapshot
	if err := r.db.SelectContext(ctx, &snapshots, query, classID, since); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return snapshots, nil
}
