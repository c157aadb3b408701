package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-registration-api/internal/dto"
	"github.com/noah-isme/course-registration-api/internal/service"
	appErrors "github.com/noah-isme/course-registration-api/pkg/errors"
	"github.com/noah-isme/course-registration-api/pkg/response"
)

type historyService interface {
	History(ctx context.Context, studentID string, filter dto.HistoryFilter) ([]dto.HistoryItem, error)
}

type historyExporter interface {
	ExportHistory(ctx context.Context, studentID string, filter dto.HistoryFilter, format service.ExportFormat) (*service.ExportResult, error)
}

// HistoryHandler exposes registration-history endpoints.
type HistoryHandler struct {
	history  historyService
	exporter historyExporter
}

// NewHistoryHandler constructs HistoryHandler.
func NewHistoryHandler(history historyService, exporter historyExporter) *HistoryHandler {
	return &HistoryHandler{history: history, exporter: exporter}
}

// List godoc
// @Summary Registration history for the student
// @Tags History
// @Produce json
// @Param termId query string false "Filter by term id"
// @Param view query string false "registrations or withdrawals"
// @Success 200 {object} response.Envelope
// @Router /history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	filter, err := historyFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.history.History(c.Request.Context(), claims.StudentID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Export godoc
// @Summary Export registration history as CSV or PDF
// @Tags History
// @Produce text/csv
// @Produce application/pdf
// @Param termId query string false "Filter by term id"
// @Param view query string false "registrations or withdrawals"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /history/export [get]
func (h *HistoryHandler) Export(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	filter, err := historyFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportFormatCSV)))

	result, err := h.exporter.ExportHistory(c.Request.Context(), claims.StudentID, filter, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func historyFilterFromQuery(c *gin.Context) (dto.HistoryFilter, error) {
	filter := dto.HistoryFilter{
		TermID: c.Query("termId"),
		View:   dto.HistoryView(c.DefaultQuery("view", string(dto.HistoryViewRegistrations))),
	}
	switch filter.View {
	case dto.HistoryViewRegistrations, dto.HistoryViewWithdrawals:
		return filter, nil
	default:
		return dto.HistoryFilter{}, appErrors.Clone(appErrors.ErrValidation, "view must be registrations or withdrawals")
	}
}
