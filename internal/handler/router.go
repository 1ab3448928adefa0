package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorboard-api/internal/middleware"
	"github.com/noah-isme/tutorboard-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Class      *ClassHandler
	Stats      *StatsHandler
	Lesson     *LessonHandler
	Attendance *AttendanceHandler
	Assessment *AssessmentHandler
	Comment    *CommentHandler
	Metrics    *MetricsHandler
}

// RegisterRoutes mounts the API surface under the given prefix. Every route
// in the group requires a valid hub token.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, auth *service.HubAuthService, identity *service.IdentityService) {
	api := r.Group(prefix)
	api.Use(middleware.HubAuth(auth, identity))

	api.POST("/classes", h.Class.Create)
	api.GET("/classes", h.Class.List)
	api.GET("/classes/:id", h.Class.Get)
	api.PUT("/classes/:id", h.Class.Update)
	api.DELETE("/classes/:id", h.Class.Delete)
	api.GET("/classes/:id/members", h.Class.Members)
	api.POST("/classes/:id/members/import", h.Class.ImportStudents)

	api.GET("/classes/:id/stats", h.Stats.ClassStats)
	api.GET("/classes/:id/stats/export", h.Stats.Export)

	api.POST("/classes/:id/lesson-plans", h.Lesson.CreatePlan)
	api.GET("/classes/:id/lesson-plans", h.Lesson.ListPlans)
	api.PUT("/lesson-plans/:id", h.Lesson.UpdatePlan)
	api.DELETE("/lesson-plans/:id", h.Lesson.DeletePlan)
	api.POST("/lesson-plans/:id/records", h.Lesson.CreateRecord)
	api.GET("/lesson-plans/:id/records", h.Lesson.ListRecords)

	api.POST("/classes/:id/attendance", h.Attendance.BulkCheck)
	api.GET("/classes/:id/attendance", h.Attendance.Sheet)

	api.POST("/lesson-plans/:id/tests", h.Assessment.CreateTest)
	api.DELETE("/tests/:id", h.Assessment.DeleteTest)
	api.POST("/tests/:id/results", h.Assessment.BulkInputResults)
	api.POST("/lesson-plans/:id/assignments", h.Assessment.CreateAssignment)
	api.DELETE("/assignments/:id", h.Assessment.DeleteAssignment)
	api.PUT("/submissions/:id/grade", h.Assessment.GradeSubmission)

	api.POST("/comments", h.Comment.Create)
	api.GET("/comments", h.Comment.List)
}
