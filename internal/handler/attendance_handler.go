package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorboard-api/internal/service"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
	"github.com/noah-isme/tutorboard-api/pkg/response"
)

// AttendanceHandler exposes attendance endpoints.
type AttendanceHandler struct {
	service *service.AttendanceService
}

// NewAttendanceHandler constructs an attendance handler.
func NewAttendanceHandler(svc *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: svc}
}

// BulkCheck godoc
// @Summary Mark attendance for a class and date
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path int true "Class ID"
// @Param payload body service.BulkAttendanceRequest true "Attendance payload"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/attendance [post]
func (h *AttendanceHandler) BulkCheck(c *gin.Context) {
	classID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.BulkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.BulkCheck(c.Request.Context(), teacherFromContext(c).ID, classID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Sheet godoc
// @Summary Attendance sheet for one date
// @Tags Attendance
// @Produce json
// @Param id path int true "Class ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/attendance [get]
func (h *AttendanceHandler) Sheet(c *gin.Context) {
	classID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD"))
		return
	}
	records, err := h.service.Sheet(c.Request.Context(), teacherFromContext(c).ID, classID, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}
