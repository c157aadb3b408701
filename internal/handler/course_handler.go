package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-registration-api/internal/dto"
	"github.com/noah-isme/course-registration-api/pkg/response"
)

type courseCatalog interface {
	AvailableCourses(ctx context.Context, studentID string) ([]dto.CourseItem, error)
}

// CourseHandler exposes the open-course listing.
type CourseHandler struct {
	catalog courseCatalog
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(catalog courseCatalog) *CourseHandler {
	return &CourseHandler{catalog: catalog}
}

// List godoc
// @Summary List open course sections
// @Description Sections the authenticated student already registered for are excluded.
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	studentID := ""
	if claims := claimsFromContext(c); claims != nil {
		studentID = claims.StudentID
	}

	courses, err := h.catalog.AvailableCourses(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses)
}
