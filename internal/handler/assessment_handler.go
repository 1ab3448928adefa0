package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorboard-api/internal/service"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
	"github.com/noah-isme/tutorboard-api/pkg/response"
)

// AssessmentHandler exposes test and assignment endpoints.
type AssessmentHandler struct {
	service *service.AssessmentService
}

// NewAssessmentHandler constructs an assessment handler.
func NewAssessmentHandler(svc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{service: svc}
}

// CreateTest godoc
// @Summary Create test under a lesson plan
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path int true "Lesson plan ID"
// @Param payload body service.CreateTestRequest true "Test payload"
// @Success 201 {object} response.Envelope
// @Router /lesson-plans/{id}/tests [post]
func (h *AssessmentHandler) CreateTest(c *gin.Context) {
	planID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.CreateTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	test, outcomes, err := h.service.CreateTest(c.Request.Context(), teacherFromContext(c).ID, planID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"test": test, "schedule_sync": outcomes}, nil)
}

// DeleteTest godoc
// @Summary Delete test
// @Tags Assessments
// @Produce json
// @Param id path int true "Test ID"
// @Success 204
// @Router /tests/{id} [delete]
func (h *AssessmentHandler) DeleteTest(c *gin.Context) {
	testID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.DeleteTest(c.Request.Context(), teacherFromContext(c).ID, testID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// BulkInputResults godoc
// @Summary Record test scores in bulk
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path int true "Test ID"
// @Param payload body service.BulkTestResultsRequest true "Results payload"
// @Success 200 {object} response.Envelope
// @Router /tests/{id}/results [post]
func (h *AssessmentHandler) BulkInputResults(c *gin.Context) {
	testID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.BulkTestResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.BulkInputResults(c.Request.Context(), teacherFromContext(c).ID, testID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// CreateAssignment godoc
// @Summary Create assignment under a lesson plan
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path int true "Lesson plan ID"
// @Param payload body service.CreateAssignmentRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /lesson-plans/{id}/assignments [post]
func (h *AssessmentHandler) CreateAssignment(c *gin.Context) {
	planID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignment, outcomes, err := h.service.CreateAssignment(c.Request.Context(), teacherFromContext(c).ID, planID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"assignment": assignment, "schedule_sync": outcomes}, nil)
}

// DeleteAssignment godoc
// @Summary Delete assignment
// @Tags Assessments
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 204
// @Router /assignments/{id} [delete]
func (h *AssessmentHandler) DeleteAssignment(c *gin.Context) {
	assignmentID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.DeleteAssignment(c.Request.Context(), teacherFromContext(c).ID, assignmentID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GradeSubmission godoc
// @Summary Grade an assignment submission
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path int true "Submission ID"
// @Param payload body service.GradeSubmissionRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Router /submissions/{id}/grade [put]
func (h *AssessmentHandler) GradeSubmission(c *gin.Context) {
	submissionID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.GradeSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	sub, err := h.service.GradeSubmission(c.Request.Context(), teacherFromContext(c).ID, submissionID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sub, nil)
}
