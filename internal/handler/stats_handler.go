package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorboard-api/internal/models"
	"github.com/noah-isme/tutorboard-api/internal/service"
	"github.com/noah-isme/tutorboard-api/pkg/response"
)

// StatsHandler exposes study statistics endpoints.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler constructs a stats handler.
func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{service: svc}
}

// ClassStats godoc
// @Summary Class study statistics
// @Tags Stats
// @Produce json
// @Param id path int true "Class ID"
// @Param period query string false "daily, weekly or monthly" default(weekly)
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/stats [get]
func (h *StatsHandler) ClassStats(c *gin.Context) {
	classID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	period := models.StatsPeriod(c.DefaultQuery("period", string(models.StatsPeriodWeekly)))
	stats, err := h.service.ClassStats(c.Request.Context(), teacherFromContext(c).ID, classID, period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Export godoc
// @Summary Export class study statistics
// @Tags Stats
// @Produce text/csv
// @Produce application/pdf
// @Param id path int true "Class ID"
// @Param period query string false "daily, weekly or monthly" default(weekly)
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /classes/{id}/stats/export [get]
func (h *StatsHandler) Export(c *gin.Context) {
	classID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	period := models.StatsPeriod(c.DefaultQuery("period", string(models.StatsPeriodWeekly)))
	export, err := h.service.ExportClassStats(c.Request.Context(), teacherFromContext(c).ID, classID, period, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	c.Data(http.StatusOK, export.ContentType, export.Content)
}
