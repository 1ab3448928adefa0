package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

const pqUniqueViolation = "23505"

type teacherRepository interface {
	FindByHubUserID(ctx context.Context, hubUserID string) (*models.Teacher, error)
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
}

// IdentityService maps hub identities to local teacher accounts,
// provisioning lazily on first sight.
type IdentityService struct {
	repo   teacherRepository
	logger *zap.Logger
}

// NewIdentityService constructs an IdentityService.
func NewIdentityService(repo teacherRepository, logger *zap.Logger) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityService{repo: repo, logger: logger}
}

// ResolveTeacher returns the local teacher anchored to the hub identity,
// creating it on first sight. Two concurrent first requests race on the
// hub_user_id uniqueness constraint; the loser re-fetches the winner's row.
func (s *IdentityService) ResolveTeacher(ctx context.Context, hubUserID string) (*models.Teacher, error) {
	if hubUserID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "missing hub user id")
	}

	teacher, err := s.repo.FindByHubUserID(ctx, hubUserID)
	if err == nil {
		return teacher, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	created := &models.Teacher{
		HubUserID:   hubUserID,
		Username:    fmt.Sprintf("member%s", hubUserID),
		Email:       fmt.Sprintf("member%s@hub.local", hubUserID),
		DisplayName: fmt.Sprintf("member%s", hubUserID),
		Role:        models.TeacherRoleTeacher,
	}
	if err := s.repo.Create(ctx, created); err != nil {
		if isUniqueViolation(err) {
			existing, lookupErr := s.repo.FindByHubUserID(ctx, hubUserID)
			if lookupErr != nil {
				return nil, appErrors.Wrap(lookupErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher after insert race")
			}
			return existing, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to provision teacher")
	}

	s.logger.Info("provisioned teacher", zap.String("hub_user_id", hubUserID), zap.Int64("teacher_id", created.ID))
	return created, nil
}

// Get returns a teacher by local id.
func (s *IdentityService) Get(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	return teacher, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}
