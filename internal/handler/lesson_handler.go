package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorboard-api/internal/service"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
	"github.com/noah-isme/tutorboard-api/pkg/response"
)

// LessonHandler exposes lesson plan and lesson record endpoints.
type LessonHandler struct {
	service *service.LessonService
}

// NewLessonHandler constructs a lesson handler.
func NewLessonHandler(svc *service.LessonService) *LessonHandler {
	return &LessonHandler{service: svc}
}

// CreatePlan godoc
// @Summary Create lesson plan
// @Tags Lessons
// @Accept json
// @Produce json
// @Param id path int true "Class ID"
// @Param payload body service.CreateLessonPlanRequest true "Lesson plan payload"
// @Success 201 {object} response.Envelope
// @Router /classes/{id}/lesson-plans [post]
func (h *LessonHandler) CreatePlan(c *gin.Context) {
	classID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.CreateLessonPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	plan, err := h.service.CreatePlan(c.Request.Context(), teacherFromContext(c).ID, classID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, plan)
}

// ListPlans godoc
// @Summary List lesson plans
// @Tags Lessons
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/lesson-plans [get]
func (h *LessonHandler) ListPlans(c *gin.Context) {
	classID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	plans, err := h.service.ListPlans(c.Request.Context(), teacherFromContext(c).ID, classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plans, nil)
}

// UpdatePlan godoc
// @Summary Update lesson plan
// @Tags Lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson plan ID"
// @Param payload body service.UpdateLessonPlanRequest true "Lesson plan payload"
// @Success 200 {object} response.Envelope
// @Router /lesson-plans/{id} [put]
func (h *LessonHandler) UpdatePlan(c *gin.Context) {
	planID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateLessonPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	plan, err := h.service.UpdatePlan(c.Request.Context(), teacherFromContext(c).ID, planID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan, nil)
}

// DeletePlan godoc
// @Summary Delete lesson plan
// @Tags Lessons
// @Produce json
// @Param id path int true "Lesson plan ID"
// @Success 204
// @Router /lesson-plans/{id} [delete]
func (h *LessonHandler) DeletePlan(c *gin.Context) {
	planID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.DeletePlan(c.Request.Context(), teacherFromContext(c).ID, planID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CreateRecord godoc
// @Summary Append lesson record
// @Tags Lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson plan ID"
// @Param payload body service.CreateLessonRecordRequest true "Lesson record payload"
// @Success 201 {object} response.Envelope
// @Router /lesson-plans/{id}/records [post]
func (h *LessonHandler) CreateRecord(c *gin.Context) {
	planID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.CreateLessonRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.service.CreateRecord(c.Request.Context(), teacherFromContext(c).ID, planID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// ListRecords godoc
// @Summary List lesson records
// @Tags Lessons
// @Produce json
// @Param id path int true "Lesson plan ID"
// @Success 200 {object} response.Envelope
// @Router /lesson-plans/{id}/records [get]
func (h *LessonHandler) ListRecords(c *gin.Context) {
	planID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	records, err := h.service.ListRecords(c.Request.Context(), teacherFromContext(c).ID, planID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}
