package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

type commentRepository interface {
	Create(ctx context.Context, comment *models.PrivateComment) error
	List(ctx context.Context, filter models.CommentFilter) ([]models.PrivateComment, int, error)
}

type teacherFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
}

// CreateCommentRequest describes a private comment payload.
type CreateCommentRequest struct {
	TargetID      int64   `json:"target_id" validate:"required,min=1"`
	StudentUserID *string `json:"student_user_id"`
	ContextType   *string `json:"context_type" validate:"omitempty,oneof=lesson test assignment"`
	ContextID     *int64  `json:"context_id" validate:"omitempty,min=1"`
	Content       string  `json:"content" validate:"required,max=2000"`
}

// ListCommentsRequest narrows a conversation listing.
type ListCommentsRequest struct {
	TargetID      int64  `form:"target_id" validate:"required,min=1"`
	StudentUserID string `form:"student_user_id"`
	ContextType   string `form:"context_type" validate:"omitempty,oneof=lesson test assignment"`
	ContextID     int64  `form:"context_id"`
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
}

// CommentService manages append-only private comments between teachers.
type CommentService struct {
	repo      commentRepository
	teachers  teacherFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCommentService constructs a CommentService.
func NewCommentService(repo commentRepository, teachers teacherFinder, validate *validator.Validate, logger *zap.Logger) *CommentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentService{repo: repo, teachers: teachers, validator: validate, logger: logger}
}

// Create appends a comment from the caller to the target teacher. A context
// id without a context type is rejected; the pair travels together.
func (s *CommentService) Create(ctx context.Context, authorID int64, req CreateCommentRequest) (*models.PrivateComment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid comment payload")
	}
	if req.TargetID == authorID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cannot comment to yourself")
	}
	if (req.ContextID != nil) != (req.ContextType != nil) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "context_type and context_id must be given together")
	}
	if _, err := s.teachers.FindByID(ctx, req.TargetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "target teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load target teacher")
	}

	comment := &models.PrivateComment{
		AuthorID:      authorID,
		TargetID:      req.TargetID,
		StudentUserID: req.StudentUserID,
		ContextType:   req.ContextType,
		ContextID:     req.ContextID,
		Content:       strings.TrimSpace(req.Content),
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create comment")
	}
	return comment, nil
}

// List returns both directions of the conversation between the caller and
// the target, newest first, with the total for pagination.
func (s *CommentService) List(ctx context.Context, callerID int64, req ListCommentsRequest) ([]models.PrivateComment, *models.Pagination, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid comment filter")
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.PageSize
	if size <= 0 || size > 100 {
		size = 50
	}

	comments, total, err := s.repo.List(ctx, models.CommentFilter{
		AuthorID:      callerID,
		TargetID:      req.TargetID,
		StudentUserID: req.StudentUserID,
		ContextType:   req.ContextType,
		ContextID:     req.ContextID,
		Page:          page,
		PageSize:      size,
	})
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list comments")
	}
	if comments == nil {
		comments = []models.PrivateComment{}
	}
	return comments, models.NewPagination(page, size, total), nil
}
