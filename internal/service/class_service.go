package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

// inviteAlphabet is uppercase alphanumerics with the visually ambiguous
// 0, 1, I and O removed.
const (
	inviteAlphabet   = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	inviteCodeLength = 6
	classCodePrefix  = "TA-"
)

type classRepository interface {
	Create(ctx context.Context, class *models.Class) error
	FindByID(ctx context.Context, id int64) (*models.Class, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.ClassSummary, error)
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id int64) error
}

type membershipRepository interface {
	ListActiveByClass(ctx context.Context, classID int64) ([]models.Membership, error)
	ListProfilesByClass(ctx context.Context, classID int64) ([]models.MemberProfile, error)
	FindActiveUserIDs(ctx context.Context, classID int64, userIDs []string) ([]string, error)
	Create(ctx context.Context, member *models.Membership) error
}

type hubDirectory interface {
	FindByUserIDs(ctx context.Context, userIDs []string) ([]models.HubUser, error)
}

type statsInvalidator interface {
	InvalidateClass(ctx context.Context, classID int64)
}

// CreateClassRequest describes class creation payload.
type CreateClassRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// UpdateClassRequest describes class update payload.
type UpdateClassRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// ImportStudentsRequest carries the external ids to reconcile.
type ImportStudentsRequest struct {
	StudentUserIDs []string `json:"student_user_ids" validate:"required,min=1,dive,required"`
}

// ClassService owns class lifecycle, the ownership guard and roster import.
type ClassService struct {
	repo      classRepository
	members   membershipRepository
	directory hubDirectory
	stats     statsInvalidator
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewClassService constructs a ClassService.
func NewClassService(repo classRepository, members membershipRepository, directory hubDirectory, stats statsInvalidator, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, members: members, directory: directory, stats: stats, validator: validate, logger: logger, now: time.Now}
}

// SetStatsInvalidator wires the stats cache invalidation hook. Stats and
// class services reference each other, so this lands after construction.
func (s *ClassService) SetStatsInvalidator(stats statsInvalidator) {
	s.stats = stats
}

// Create generates the class code and invite code and persists the class.
func (s *ClassService) Create(ctx context.Context, ownerID int64, req CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	invite, err := generateInviteCode()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate invite code")
	}
	class := &models.Class{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Code:        s.generateClassCode(),
		InviteCode:  invite,
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}
	return class, nil
}

// ListMine returns the caller's classes with member counts.
func (s *ClassService) ListMine(ctx context.Context, ownerID int64) ([]models.ClassSummary, error) {
	classes, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// Authorize is the ownership guard. It fails NotFound when the class does not
// exist and Forbidden when the caller does not own it, in that order.
func (s *ClassService) Authorize(ctx context.Context, teacherID, classID int64) (*models.Class, error) {
	class, err := s.repo.FindByID(ctx, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	if class.OwnerID != teacherID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "class belongs to another teacher")
	}
	return class, nil
}

// Update modifies name/description after the ownership check.
func (s *ClassService) Update(ctx context.Context, teacherID, classID int64, req UpdateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	class, err := s.Authorize(ctx, teacherID, classID)
	if err != nil {
		return nil, err
	}
	class.Name = strings.TrimSpace(req.Name)
	class.Description = req.Description
	if err := s.repo.Update(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update class")
	}
	return class, nil
}

// Delete removes a class after the ownership check.
func (s *ClassService) Delete(ctx context.Context, teacherID, classID int64) error {
	if _, err := s.Authorize(ctx, teacherID, classID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, classID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class")
	}
	return nil
}

// Members returns the active roster with resolved directory profiles.
func (s *ClassService) Members(ctx context.Context, teacherID, classID int64) ([]models.MemberProfile, error) {
	if _, err := s.Authorize(ctx, teacherID, classID); err != nil {
		return nil, err
	}
	profiles, err := s.members.ListProfilesByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list members")
	}
	return profiles, nil
}

// ImportStudents reconciles external student ids against the hub directory
// and the existing roster. Every input id lands in exactly one partition;
// an id whose independent insert fails is accounted in Failed instead of
// aborting the batch.
func (s *ClassService) ImportStudents(ctx context.Context, teacherID, classID int64, req ImportStudentsRequest) (*models.ImportResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid import payload")
	}
	if _, err := s.Authorize(ctx, teacherID, classID); err != nil {
		return nil, err
	}

	ids := dedupePreservingOrder(req.StudentUserIDs)

	known, err := s.directory.FindByUserIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to query identity directory")
	}
	knownSet := make(map[string]struct{}, len(known))
	for _, user := range known {
		knownSet[user.UserID] = struct{}{}
	}

	result := &models.ImportResult{}
	var found []string
	for _, id := range ids {
		if _, ok := knownSet[id]; ok {
			found = append(found, id)
		} else {
			result.NotFound.IDs = append(result.NotFound.IDs, id)
		}
	}

	registered, err := s.members.FindActiveUserIDs(ctx, classID, found)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to query memberships")
	}
	registeredSet := make(map[string]struct{}, len(registered))
	for _, id := range registered {
		registeredSet[id] = struct{}{}
	}

	for _, id := range found {
		if _, ok := registeredSet[id]; ok {
			result.AlreadyRegistered.IDs = append(result.AlreadyRegistered.IDs, id)
			continue
		}
		member := &models.Membership{
			ClassID:       classID,
			StudentUserID: id,
			Role:          models.MemberRoleMember,
			JoinedAt:      s.now().UTC(),
		}
		if err := s.members.Create(ctx, member); err != nil {
			// A concurrent import of the same id loses the insert race on
			// the partial unique index; that is "already registered", not
			// a failure.
			if isUniqueViolation(err) {
				result.AlreadyRegistered.IDs = append(result.AlreadyRegistered.IDs, id)
				continue
			}
			s.logger.Warn("membership insert failed",
				zap.Int64("class_id", classID),
				zap.String("student_user_id", id),
				zap.Error(err))
			result.Failed = append(result.Failed, models.ImportFailure{StudentUserID: id, Reason: err.Error()})
			continue
		}
		result.Registered.IDs = append(result.Registered.IDs, id)
	}

	result.Registered.Count = len(result.Registered.IDs)
	result.AlreadyRegistered.Count = len(result.AlreadyRegistered.IDs)
	result.NotFound.Count = len(result.NotFound.IDs)

	if s.stats != nil && result.Registered.Count > 0 {
		s.stats.InvalidateClass(ctx, classID)
	}
	return result, nil
}

// generateClassCode derives a code from the current clock. Collisions at the
// same millisecond are accepted at this domain's creation rate.
func (s *ClassService) generateClassCode() string {
	millis := s.now().UTC().UnixMilli()
	return classCodePrefix + strings.ToUpper(strconv.FormatInt(millis, 36))
}

func generateInviteCode() (string, error) {
	max := big.NewInt(int64(len(inviteAlphabet)))
	code := make([]byte, inviteCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		code[i] = inviteAlphabet[n.Int64()]
	}
	return string(code), nil
}

func dedupePreservingOrder(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
