package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/leopardweb/registrar-api/pkg/export"
	appErrors "github.com/leopardweb/registrar-api/pkg/errors"
)

// Export formats supported by the schedule/roster endpoints.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// ExportService renders schedules and rosters into downloadable documents.
type ExportService struct {
	enrollments *EnrollmentService
	csv         *export.CSVExporter
	pdf         *export.PDFExporter
	logger      *zap.Logger
}

// ExportResult is a rendered document with transport metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// NewExportService constructs the export service.
func NewExportService(enrollments *EnrollmentService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		enrollments: enrollments,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		logger:      logger,
	}
}

// RenderSchedule renders a student's schedule in the requested format.
func (s *ExportService) RenderSchedule(ctx context.Context, studentUsername, format string) (*ExportResult, error) {
	entries, err := s.enrollments.Schedule(ctx, studentUsername)
	if err != nil {
		return nil, err
	}

	table := export.Table{Headers: []string{"CRN", "Title", "Instructor", "Time"}}
	for _, entry := range entries {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(entry.CRN), entry.Title, entry.InstructorName, entry.TimeSlot,
		})
	}

	return s.render(table, format, fmt.Sprintf("schedule-%s", studentUsername), "schedule")
}

// RenderRoster renders a course roster in the requested format.
func (s *ExportService) RenderRoster(ctx context.Context, crn int, format string) (*ExportResult, error) {
	entries, err := s.enrollments.Roster(ctx, crn)
	if err != nil {
		return nil, err
	}

	table := export.Table{Headers: []string{"Name", "Surname"}}
	for _, entry := range entries {
		table.Rows = append(table.Rows, []string{entry.Name, entry.Surname})
	}

	return s.render(table, format, fmt.Sprintf("roster-%d", crn), fmt.Sprintf("roster %d", crn))
}

func (s *ExportService) render(table export.Table, format, basename, title string) (*ExportResult, error) {
	switch format {
	case FormatCSV:
		content, err := s.csv.Render(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: basename + ".csv"}, nil
	case FormatPDF:
		content, err := s.pdf.Render(table, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: basename + ".pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}
