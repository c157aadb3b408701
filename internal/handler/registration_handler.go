package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-registration-api/internal/dto"
	appErrors "github.com/noah-isme/course-registration-api/pkg/errors"
	"github.com/noah-isme/course-registration-api/pkg/response"
)

type enrollmentService interface {
	Register(ctx context.Context, studentID, courseID string) (*dto.RegisteredCourseItem, error)
	Withdraw(ctx context.Context, studentID, courseID string) (*dto.RegisteredCourseItem, error)
}

type registrationCatalog interface {
	RegisteredCourses(ctx context.Context, studentID string) ([]dto.RegisteredCourseItem, error)
	WithdrawnCourses(ctx context.Context, studentID string) ([]dto.RegisteredCourseItem, error)
}

// RegistrationHandler exposes registration endpoints for the authenticated
// student.
type RegistrationHandler struct {
	enrollments enrollmentService
	catalog     registrationCatalog
}

// NewRegistrationHandler constructs RegistrationHandler.
func NewRegistrationHandler(enrollments enrollmentService, catalog registrationCatalog) *RegistrationHandler {
	return &RegistrationHandler{enrollments: enrollments, catalog: catalog}
}

// List godoc
// @Summary List the student's registered courses
// @Tags Registrations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /registrations [get]
func (h *RegistrationHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	items, err := h.catalog.RegisteredCourses(c.Request.Context(), claims.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// ListWithdrawn godoc
// @Summary List the student's withdrawn courses for the active term
// @Tags Registrations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /registrations/withdrawn [get]
func (h *RegistrationHandler) ListWithdrawn(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	items, err := h.catalog.WithdrawnCourses(c.Request.Context(), claims.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Create godoc
// @Summary Register the student into a course section
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body dto.RegisterCourseRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Router /registrations [post]
func (h *RegistrationHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.RegisterCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.enrollments.Register(c.Request.Context(), claims.StudentID, req.CourseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Delete godoc
// @Summary Withdraw the student from a course section
// @Tags Registrations
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /registrations/{courseId} [delete]
func (h *RegistrationHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	item, err := h.enrollments.Withdraw(c.Request.Context(), claims.StudentID, c.Param("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}
