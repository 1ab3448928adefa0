package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

// ScheduleRepository writes the shared external schedule table. The table is
// owned by the calendar product; this side only upserts and deletes rows it
// sourced itself.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a ScheduleRepository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Upsert converges the row for one (source_app, event_type, source_id,
// user_id) key onto the given fields. Re-running with identical input leaves
// the row unchanged apart from updated_at.
func (r *ScheduleRepository) Upsert(ctx context.Context, entry *models.ScheduleEntry) (*models.ScheduleEntry, error) {
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	const query = `INSERT INTO shared_schedule (source_app, event_type, source_id, user_id, title, description, event_date, subject, metadata, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (source_app, event_type, source_id, user_id)
DO UPDATE SET title = EXCLUDED.title, description = EXCLUDED.description, event_date = EXCLUDED.event_date, subject = EXCLUDED.subject, metadata = EXCLUDED.metadata, updated_at = EXCLUDED.updated_at
RETURNING id, source_app, event_type, source_id, user_id, title, description, event_date, subject, metadata, created_at, updated_at`
	var stored models.ScheduleEntry
	if err := r.db.GetContext(ctx, &stored, query,
		entry.SourceApp, entry.EventType, entry.SourceID, entry.UserID,
		entry.Title, entry.Description, entry.EventDate, entry.Subject, entry.Metadata,
		entry.CreatedAt, entry.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert schedule entry: %w", err)
	}
	return &stored, nil
}

// DeleteByEvent removes every mirrored row of one source event.
func (r *ScheduleRepository) DeleteByEvent(ctx context.Context, sourceApp string, eventType models.ScheduleEventType, sourceID int64) error {
	const query = `DELETE FROM shared_schedule WHERE source_app = $1 AND event_type = $2 AND source_id = $3`
	if _, err := r.db.ExecContext(ctx, query, sourceApp, eventType, sourceID); err != nil {
		return fmt.Errorf("delete schedule entries: %w", err)
	}
	return nil
}

// ListByEvent returns the mirrored rows of one source event.
func (r *ScheduleRepository) ListByEvent(ctx context.Context, sourceApp string, eventType models.ScheduleEventType, sourceID int64) ([]models.ScheduleEntry, error) {
	const query = `SELECT id, source_app, event_type, source_id, user_id, title, description, event_date, subject, metadata, created_at, updated_at
		FROM shared_schedule WHERE source_app = $1 AND event_type = $2 AND source_id = $3 ORDER BY user_id ASC`
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, sourceApp, eventType, sourceID); err != nil {
		return nil, fmt.Errorf("list schedule entries: %w", err)
	}
	return entries, nil
}
