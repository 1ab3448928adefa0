package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutorboard-api/internal/models"
)

// HubUserRepository reads the hub identity directory. The directory is
// populated by the hub synchronisation job; this service never writes it.
type HubUserRepository struct {
	db *sqlx.DB
}

// NewHubUserRepository constructs a HubUserRepository.
func NewHubUserRepository(db *sqlx.DB) *HubUserRepository {
	return &HubUserRepository{db: db}
}

// FindByUserID fetches one directory entry.
func (r *HubUserRepository) FindByUserID(ctx context.Context, userID string) (*models.HubUser, error) {
	const query = `SELECT user_id, username, display_name, email FROM hub_users WHERE user_id = $1`
	var user models.HubUser
	if err := r.db.GetContext(ctx, &user, query, userID); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUserIDs resolves the given ids in one batched query. Ids absent from
// the directory are simply missing from the result; absence is a reportable
// outcome for the importer, not an error.
func (r *HubUserRepository) FindByUserIDs(ctx context.Context, userIDs []string) ([]models.HubUser, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT user_id, username, display_name, email FROM hub_users WHERE user_id IN (?)`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("build hub user lookup: %w", err)
	}
	query = r.db.Rebind(query)
	var users []models.HubUser
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("lookup hub users: %w", err)
	}
	return users, nil
}
