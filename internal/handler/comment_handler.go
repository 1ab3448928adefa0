package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorboard-api/internal/service"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
	"github.com/noah-isme/tutorboard-api/pkg/response"
)

// CommentHandler exposes private comment endpoints.
type CommentHandler struct {
	service *service.CommentService
}

// NewCommentHandler constructs a comment handler.
func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{service: svc}
}

// Create godoc
// @Summary Send a private comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param payload body service.CreateCommentRequest true "Comment payload"
// @Success 201 {object} response.Envelope
// @Router /comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	var req service.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	comment, err := h.service.Create(c.Request.Context(), teacherFromContext(c).ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment)
}

// List godoc
// @Summary List a private conversation
// @Tags Comments
// @Produce json
// @Param target_id query int true "Other teacher ID"
// @Param student_user_id query string false "Scope to one student"
// @Param context_type query string false "lesson, test or assignment"
// @Param context_id query int false "Context ID"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	var req service.ListCommentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	comments, pagination, err := h.service.List(c.Request.Context(), teacherFromContext(c).ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, comments, pagination)
}
