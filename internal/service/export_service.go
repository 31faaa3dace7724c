package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/accommodation-tracker/internal/calendar"
	"github.com/noah-isme/accommodation-tracker/internal/dto"
	"github.com/noah-isme/accommodation-tracker/internal/models"
	appErrors "github.com/noah-isme/accommodation-tracker/pkg/errors"
	"github.com/noah-isme/accommodation-tracker/pkg/export"
	"github.com/noah-isme/accommodation-tracker/pkg/jobs"
	"github.com/noah-isme/accommodation-tracker/pkg/storage"
)

// maxCSVDays bounds the tracking CSV to one school year of date columns.
const maxCSVDays = 366

var csvBaseHeaders = []string{
	"Student ID",
	"Last Name",
	"First Name",
	"Plan Type",
	"Accommodation Category",
	"Accommodation Description",
}

type trackingReader interface {
	GetTracking(ctx context.Context, classID int64, start, end string) ([]models.StudentTracking, error)
	GetPeriodTracking(ctx context.Context, classID, periodID int64) (*models.PeriodTracking, error)
}

type rosterReader interface {
	Summary(ctx context.Context, id int64) (*models.ClassSummary, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Path(filename string) string
}

type clipboardWriter interface {
	WriteAll(text string) error
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(sheet export.ServiceLogSheet) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	ClipboardFallback bool
	PDFWorkers        int
}

// ExportService renders tracking data to CSV and per-student PDFs and delivers
// the results to the exports directory.
type ExportService struct {
	tracking  trackingReader
	roster    rosterReader
	classes   classRepository
	storage   fileStorage
	clipboard clipboardWriter
	csv       csvRenderer
	pdf       pdfRenderer
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       ExportConfig
	renders   *jobs.Pool
	now       func() time.Time
}

// NewExportService constructs an ExportService. clipboard may be nil, in which
// case a failed file save falls straight through to inline content.
func NewExportService(tracking trackingReader, roster rosterReader, classes classRepository, storage fileStorage, clipboard clipboardWriter, cfg ExportConfig, metrics *MetricsService, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		tracking:  tracking,
		roster:    roster,
		classes:   classes,
		storage:   storage,
		clipboard: clipboard,
		csv:       csv,
		pdf:       pdf,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		renders:   jobs.NewPool("pdf-export", jobs.PoolConfig{Workers: cfg.PDFWorkers, Logger: logger}),
		now:       time.Now,
	}
}

// ExportTrackingCSV writes one row per (student, accommodation) with a column
// for every calendar date in [start, end].
func (s *ExportService) ExportTrackingCSV(ctx context.Context, classID int64, start, end string) (*dto.CSVExportResult, error) {
	class, err := s.loadClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	from, fromErr := calendar.ParseDate(start)
	to, toErr := calendar.ParseDate(end)
	if fromErr == nil && toErr == nil && calendar.DaysBetween(from, to)+1 > maxCSVDays {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("csv export spans at most %d days", maxCSVDays))
	}
	students, err := s.tracking.GetTracking(ctx, classID, start, end)
	if err != nil {
		return nil, err
	}
	dates := formatDates(calendar.Days(from, to))

	dataset := TrackingDataset(students, dates)
	name := fmt.Sprintf("%s_tracking_%s_%s.csv", storage.SanitizeName(class.Name), dates[0], dates[len(dates)-1])
	return s.deliverCSV(dataset, name)
}

// ExportRosterCSV writes the class roster with each student's accommodations.
func (s *ExportService) ExportRosterCSV(ctx context.Context, classID int64) (*dto.CSVExportResult, error) {
	summary, err := s.roster.Summary(ctx, classID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}

	dataset := RosterDataset(summary)
	name := fmt.Sprintf("%s_accommodations.csv", storage.SanitizeName(summary.Name))
	return s.deliverCSV(dataset, name)
}

// ExportPeriodPDFs writes one service log PDF per enrolled student covering
// every weekday of the period. A failing student is counted and skipped.
func (s *ExportService) ExportPeriodPDFs(ctx context.Context, classID, periodID int64) (*dto.PDFExportResult, error) {
	tracked, err := s.tracking.GetPeriodTracking(ctx, classID, periodID)
	if err != nil {
		return nil, err
	}
	if len(tracked.Students) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no students to export")
	}

	dir := fmt.Sprintf("%s_%s_Reports", storage.SanitizeName(tracked.Class.Name), storage.SanitizeName(tracked.Period.Name))
	result := &dto.PDFExportResult{Directory: s.storage.Path(dir), Files: []string{}}
	signedOn := s.now()

	tasks := make([]jobs.Task, len(tracked.Students))
	paths := make([]string, len(tracked.Students))
	for i, st := range tracked.Students {
		i, st := i, st
		name := fmt.Sprintf("%s_%s_%s.pdf", storage.SanitizeName(st.LastName), storage.SanitizeName(st.FirstName), storage.SanitizeName(tracked.Period.Name))
		tasks[i] = jobs.Task{
			ID: fmt.Sprintf("%s %s", st.FirstName, st.LastName),
			Run: func(context.Context) error {
				path, err := s.writeStudentPDF(tracked, st, signedOn, filepath.Join(dir, name))
				paths[i] = path
				return err
			},
		}
	}

	for i, res := range s.renders.Run(ctx, tasks) {
		if res.Err != nil {
			result.ErrorCount++
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", res.ID, res.Err))
			s.logger.Warn("student pdf export failed",
				zap.Int64("class_id", classID),
				zap.Int64("student_id", tracked.Students[i].ID),
				zap.Error(res.Err),
			)
			continue
		}
		result.SuccessCount++
		result.Files = append(result.Files, paths[i])
	}

	outcome := "file"
	if result.ErrorCount > 0 {
		outcome = "partial"
	}
	s.metrics.RecordExport("pdf", outcome)
	s.logger.Info("period pdf export finished",
		zap.Int64("class_id", classID),
		zap.Int64("period_id", periodID),
		zap.Int("success", result.SuccessCount),
		zap.Int("errors", result.ErrorCount),
	)
	return result, nil
}

func (s *ExportService) writeStudentPDF(tracked *models.PeriodTracking, st models.StudentTracking, signedOn time.Time, name string) (string, error) {
	sheet := export.ServiceLogSheet{
		StudentFirstName: st.FirstName,
		StudentLastName:  st.LastName,
		ClassName:        tracked.Class.Name,
		ClassLine:        fmt.Sprintf("Class: %s - %s (Period %s)", tracked.Class.Name, tracked.Class.Subject, tracked.Class.Period),
		PeriodLine:       fmt.Sprintf("Six-Week Period: %s (%s)", tracked.Period.Name, tracked.Period.Year),
		Dates:            tracked.Dates,
		SignedOn:         signedOn,
	}
	for _, acc := range st.Accommodations {
		sheet.Columns = append(sheet.Columns, export.SheetColumn{
			Header:   fmt.Sprintf("%s: %s", acc.Category, acc.Description),
			Provided: acc.ServiceLogs,
		})
	}

	data, err := s.pdf.Render(sheet)
	if err != nil {
		return "", err
	}
	return s.storage.Save(name, data)
}

// deliverCSV tries the exports directory, then the clipboard, then returns the
// text inline.
func (s *ExportService) deliverCSV(dataset export.Dataset, name string) (*dto.CSVExportResult, error) {
	payload, err := s.csv.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrExportFailed.Code, appErrors.ErrExportFailed.Status, "failed to render csv")
	}
	result := &dto.CSVExportResult{Rows: len(dataset.Rows)}

	path, saveErr := s.storage.Save(name, payload)
	if saveErr == nil {
		result.Destination = dto.DestinationFile
		result.Path = path
		s.metrics.RecordExport("csv", result.Destination)
		return result, nil
	}
	s.logger.Warn("csv file save failed", zap.String("file", name), zap.Error(saveErr))

	if s.cfg.ClipboardFallback && s.clipboard != nil {
		clipErr := s.clipboard.WriteAll(string(payload))
		if clipErr == nil {
			result.Destination = dto.DestinationClipboard
			s.metrics.RecordExport("csv", result.Destination)
			return result, nil
		}
		s.logger.Warn("csv clipboard fallback failed", zap.Error(clipErr))
	}

	result.Destination = dto.DestinationInline
	result.Content = string(payload)
	s.metrics.RecordExport("csv", result.Destination)
	return result, nil
}

func (s *ExportService) loadClass(ctx context.Context, id int64) (*models.Class, error) {
	class, err := s.classes.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, internalError(err, "failed to load class")
	}
	return class, nil
}

// TrackingDataset flattens tracking into CSV rows. Students without
// accommodations get a single row with blank accommodation and date cells.
func TrackingDataset(students []models.StudentTracking, dates []string) export.Dataset {
	headers := append(append([]string{}, csvBaseHeaders...), dates...)
	data := export.Dataset{Headers: headers, Rows: [][]string{}}
	for _, st := range students {
		if len(st.Accommodations) == 0 {
			data.Rows = append(data.Rows, studentCells(st.Student, "", ""))
			continue
		}
		for _, acc := range st.Accommodations {
			row := studentCells(st.Student, acc.Category, acc.Description)
			for _, d := range dates {
				cell := ""
				if acc.ServiceLogs.Provided(d) {
					cell = export.ProvidedMark
				}
				row = append(row, cell)
			}
			data.Rows = append(data.Rows, row)
		}
	}
	return data
}

// RosterDataset flattens a class summary into CSV rows.
func RosterDataset(summary *models.ClassSummary) export.Dataset {
	data := export.Dataset{Headers: append([]string{}, csvBaseHeaders...), Rows: [][]string{}}
	for _, st := range summary.Students {
		if len(st.Accommodations) == 0 {
			data.Rows = append(data.Rows, studentCells(st.Student, "", ""))
			continue
		}
		for _, acc := range st.Accommodations {
			data.Rows = append(data.Rows, studentCells(st.Student, acc.Category, acc.Description))
		}
	}
	return data
}

func studentCells(st models.Student, category, description string) []string {
	return []string{st.StudentID, st.LastName, st.FirstName, string(st.PlanType), category, description}
}
