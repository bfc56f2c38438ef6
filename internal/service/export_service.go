package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/models"
	appErrors "github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/errors"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/export"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/storage"
)

// Export formats supported for the weekly grid.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportRequest selects the week and rendering format.
type ExportRequest struct {
	Date   string `json:"date" validate:"required"`
	Format string `json:"format" validate:"required,oneof=csv pdf"`
	Filter models.WeekFilter
	Type   models.ScheduleTypeFilter
}

// ExportResult references the stored artifact.
type ExportResult struct {
	FileName  string    `json:"file_name"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExportService renders a projected week into a downloadable artifact and
// hands back a signed token for the download endpoint.
type ExportService struct {
	weekly    *WeeklyScheduleService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	store     *storage.LocalStorage
	signer    *storage.SignedURLSigner
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExportService constructs an export service.
func NewExportService(weekly *WeeklyScheduleService, store *storage.LocalStorage, signer *storage.SignedURLSigner, validate *validator.Validate, logger *zap.Logger) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		weekly:    weekly,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		store:     store,
		signer:    signer,
		validator: validate,
		logger:    logger,
	}
}

// Export projects the requested week, renders it and stores the file.
func (s *ExportService) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}
	reference, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}

	schedule, err := s.weekly.GetWeek(ctx, WeeklyScheduleRequest{Reference: reference, Filter: req.Filter, TypeFilter: req.Type})
	if err != nil {
		return nil, err
	}
	format := req.Format

	data := GridDataset(schedule)
	title := fmt.Sprintf("Lịch tuần %s", models.FormatDateLabel(schedule.Window.StartDate))

	var payload []byte
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(data)
	case ExportFormatPDF:
		payload, err = s.pdf.Render(data, title)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	id := uuid.NewString()
	name := fmt.Sprintf("week-%s-%s.%s", schedule.Window.StartDate.Format("2006-01-02"), id[:8], format)
	if _, err := s.store.Save(name, payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}

	token, expires, err := s.signer.Generate(id, name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export url")
	}

	s.logger.Info("weekly export generated",
		zap.String("file", name),
		zap.String("format", format))
	return &ExportResult{FileName: name, Token: token, ExpiresAt: expires}, nil
}

// RunCleanup periodically removes stored exports older than the TTL. It
// blocks until the context is cancelled.
func (s *ExportService) RunCleanup(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.store.CleanupOlderThan(ttl)
			if err != nil {
				s.logger.Warn("export cleanup failed", zap.Error(err))
				continue
			}
			if deleted > 0 {
				s.logger.Info("expired exports removed", zap.Int("count", deleted))
			}
		}
	}
}

// Resolve validates a signed download token and returns the stored file path.
func (s *ExportService) Resolve(token string) (string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return "", appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	return s.store.Path(relPath), nil
}

// GridDataset flattens a weekly schedule into the tabular form shared by the
// CSV and PDF renderers: one row per rendered cell, Monday through Sunday.
func GridDataset(schedule *models.WeeklySchedule) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Ca", "Thứ", "Ngày", "Tiết", "Lớp", "Môn", "Phòng", "Giảng viên", "Trạng thái"},
	}

	for _, row := range schedule.Grid.Shifts {
		for col, cells := range row.Days {
			// Tolerate schedules whose window carries fewer day entries
			// than the grid has columns; those cells export without the
			// day and date labels instead of panicking.
			var dayName, dateLabel string
			if col < len(schedule.Window.Days) {
				day := schedule.Window.Days[col]
				dayName = models.DayName(day.DayOfWeek)
				dateLabel = models.FormatDateLabel(day.Date)
			}
			for _, cell := range cells {
				status := cell.Label
				if status == "" {
					status = string(cell.Occurrence.Type)
				}
				data.Rows = append(data.Rows, []string{
					row.Label,
					dayName,
					dateLabel,
					cell.Occurrence.TimeSlot,
					cell.Occurrence.ClassName,
					cell.Occurrence.SubjectCode,
					cell.Occurrence.RoomName,
					cell.Occurrence.TeacherName,
					status,
				})
			}
		}
	}
	return data
}
