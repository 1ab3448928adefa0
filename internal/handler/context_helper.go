package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorboard-api/internal/middleware"
	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

func teacherFromContext(c *gin.Context) *models.Teacher {
	value, exists := c.Get(middleware.ContextTeacherKey)
	if !exists {
		return nil
	}
	teacher, ok := value.(*models.Teacher)
	if !ok {
		return nil
	}
	return teacher
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name)
	}
	return id, nil
}
