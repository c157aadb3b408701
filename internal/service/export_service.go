package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/course-registration-api/internal/dto"
	"github.com/noah-isme/course-registration-api/pkg/export"
	appErrors "github.com/noah-isme/course-registration-api/pkg/errors"
)

// exportStorage persists rendered export files.
type exportStorage interface {
	Save(filename string, data []byte) (string, error)
}

// historyReader is the catalog slice the exporter consumes.
type historyReader interface {
	History(ctx context.Context, studentID string, filter dto.HistoryFilter) ([]dto.HistoryItem, error)
}

// ExportFormat selects the rendering backend.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult is a rendered export: the stored filename, its MIME type and
// the raw bytes for inline download.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders a student's registration history to CSV or PDF and
// stores a copy under the export directory.
type ExportService struct {
	history historyReader
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	storage exportStorage
	logger  *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(history historyReader, storage exportStorage, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		history: history,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		storage: storage,
		logger:  logger,
	}
}

// ExportHistory renders the filtered history projection for a student.
func (s *ExportService) ExportHistory(ctx context.Context, studentID string, filter dto.HistoryFilter, format ExportFormat) (*ExportResult, error) {
	items, err := s.history.History(ctx, studentID, filter)
	if err != nil {
		return nil, err
	}

	dataset := historyDataset(items)
	title := fmt.Sprintf("Registration history %s", studentID)

	var content []byte
	var contentType, ext string
	switch format {
	case ExportFormatCSV:
		content, err = s.csv.Render(dataset)
		contentType, ext = "text/csv", "csv"
	case ExportFormatPDF:
		content, err = s.pdf.Render(dataset, title)
		contentType, ext = "application/pdf", "pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	filename := fmt.Sprintf("history-%s-%s-%s.%s", studentID, time.Now().UTC().Format("20060102T150405"), uuid.NewString()[:8], ext)
	if s.storage != nil {
		if _, err := s.storage.Save(filename, content); err != nil {
			s.logger.Warn("failed to store export copy", zap.String("filename", filename), zap.Error(err))
		}
	}

	return &ExportResult{Filename: filename, ContentType: contentType, Content: content}, nil
}

func historyDataset(items []dto.HistoryItem) export.Dataset {
	headers := []string{"Course", "Name", "Credit", "Term", "Status", "Registered", "Withdrawn", "Grade"}
	rows := make([]map[string]string, 0, len(items))
	for _, item := range items {
		withdrawn := ""
		if item.WithdrawDate != nil {
			withdrawn = item.WithdrawDate.Format("2006-01-02 15:04")
		}
		grade := ""
		if item.Grade != nil {
			grade = *item.Grade
		}
		rows = append(rows, map[string]string{
			"Course":     item.CourseID,
			"Name":       item.CourseName,
			"Credit":     fmt.Sprintf("%d", item.Credit),
			"Term":       item.Term,
			"Status":     item.Status,
			"Registered": item.RegistrationDate.Format("2006-01-02 15:04"),
			"Withdrawn":  withdrawn,
			"Grade":      grade,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
