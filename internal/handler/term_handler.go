package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-registration-api/internal/dto"
	"github.com/noah-isme/course-registration-api/pkg/response"
)

type termCatalog interface {
	Terms(ctx context.Context) ([]dto.TermItem, error)
	CurrentTerm(ctx context.Context) (*dto.TermItem, error)
}

// TermHandler exposes term endpoints.
type TermHandler struct {
	catalog termCatalog
}

// NewTermHandler constructs TermHandler.
func NewTermHandler(catalog termCatalog) *TermHandler {
	return &TermHandler{catalog: catalog}
}

// List godoc
// @Summary List academic terms
// @Tags Terms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /terms [get]
func (h *TermHandler) List(c *gin.Context) {
	terms, err := h.catalog.Terms(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, terms)
}

// Current godoc
// @Summary The current academic term
// @Tags Terms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /terms/current [get]
func (h *TermHandler) Current(c *gin.Context) {
	term, err := h.catalog.CurrentTerm(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, term)
}
