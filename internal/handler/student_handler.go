package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-registration-api/internal/dto"
	appErrors "github.com/noah-isme/course-registration-api/pkg/errors"
	"github.com/noah-isme/course-registration-api/pkg/response"
)

type profileCatalog interface {
	StudentFullProfile(ctx context.Context, studentID string) (*dto.ProfileResponse, error)
}

// StudentHandler exposes the student profile endpoint.
type StudentHandler struct {
	catalog profileCatalog
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(catalog profileCatalog) *StudentHandler {
	return &StudentHandler{catalog: catalog}
}

// Me godoc
// @Summary Full profile for the authenticated student
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students/me [get]
func (h *StudentHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	profile, err := h.catalog.StudentFullProfile(c.Request.Context(), claims.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}
