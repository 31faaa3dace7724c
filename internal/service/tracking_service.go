package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/accommodation-tracker/internal/calendar"
	"github.com/noah-isme/accommodation-tracker/internal/dto"
	"github.com/noah-isme/accommodation-tracker/internal/models"
	appErrors "github.com/noah-isme/accommodation-tracker/pkg/errors"
)

type serviceLogRepository interface {
	Toggle(ctx context.Context, classID, accommodationID int64, date string) (bool, error)
	ListByClassAndRange(ctx context.Context, classID int64, start, end string) ([]models.ServiceLog, error)
}

// TrackingService aggregates enrolled students, their accommodations and the
// service marks recorded for a class over a date range.
type TrackingService struct {
	classes        classRepository
	students       studentRepository
	accommodations accommodationRepository
	periods        periodRepository
	logs           serviceLogRepository
	metrics        *MetricsService
	logger         *zap.Logger
	now            func() time.Time
}

// NewTrackingService constructs TrackingService. metrics may be nil.
func NewTrackingService(classes classRepository, students studentRepository, accommodations accommodationRepository, periods periodRepository, logs serviceLogRepository, metrics *MetricsService, logger *zap.Logger) *TrackingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrackingService{
		classes:        classes,
		students:       students,
		accommodations: accommodations,
		periods:        periods,
		logs:           logs,
		metrics:        metrics,
		logger:         logger,
		now:            time.Now,
	}
}

// GetTracking returns every student enrolled in the class with each owned
// accommodation and its marks for dates in [start, end]. Dates without a
// recorded value are absent from the marks. A missing class yields an empty list.
func (s *TrackingService) GetTracking(ctx context.Context, classID int64, start, end string) ([]models.StudentTracking, error) {
	from, err := calendar.ParseDate(start)
	if err != nil {
		return nil, validationError(err, "invalid start date")
	}
	to, err := calendar.ParseDate(end)
	if err != nil {
		return nil, validationError(err, "invalid end date")
	}
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end date must not be before start date")
	}
	return s.aggregate(ctx, classID, calendar.FormatDate(from), calendar.FormatDate(to))
}

// ToggleService flips the mark for (class, accommodation, date) and returns the
// stored value. The first toggle of a key records it as provided.
func (s *TrackingService) ToggleService(ctx context.Context, classID, accommodationID int64, date string) (bool, error) {
	day, err := calendar.ParseDate(date)
	if err != nil {
		return false, validationError(err, "invalid service date")
	}
	if _, err := s.classes.FindByID(ctx, classID); err != nil {
		if isNotFound(err) {
			return false, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return false, internalError(err, "failed to load class")
	}
	if _, err := s.accommodations.FindByID(ctx, accommodationID); err != nil {
		if isNotFound(err) {
			return false, appErrors.Clone(appErrors.ErrNotFound, "accommodation not found")
		}
		return false, internalError(err, "failed to load accommodation")
	}

	provided, err := s.logs.Toggle(ctx, classID, accommodationID, calendar.FormatDate(day))
	if err != nil {
		return false, internalError(err, "failed to toggle service log")
	}
	s.metrics.RecordToggle(provided)
	s.logger.Debug("service log toggled",
		zap.Int64("class_id", classID),
		zap.Int64("accommodation_id", accommodationID),
		zap.String("date", calendar.FormatDate(day)),
		zap.Bool("provided", provided),
	)
	return provided, nil
}

// GetPeriodTracking aggregates the class over every weekday of a six-week period.
func (s *TrackingService) GetPeriodTracking(ctx context.Context, classID, periodID int64) (*models.PeriodTracking, error) {
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, internalError(err, "failed to load class")
	}
	stored, period, err := s.loadPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	days := calendar.Weekdays(period.Start, period.End)
	if len(days) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "period has no weekdays")
	}
	dates := formatDates(days)

	students, err := s.aggregate(ctx, classID, dates[0], dates[len(dates)-1])
	if err != nil {
		return nil, err
	}
	return &models.PeriodTracking{Class: *class, Period: *stored, Dates: dates, Students: students}, nil
}

// GetWeek resolves the Mon-Thu window to display and aggregates the class over it.
func (s *TrackingService) GetWeek(ctx context.Context, req dto.WeekRequest) (*dto.WeekView, error) {
	var (
		stored *models.SixWeekPeriod
		period *calendar.Period
	)
	if req.PeriodID != nil {
		var err error
		stored, period, err = s.loadPeriod(ctx, *req.PeriodID)
		if err != nil {
			return nil, err
		}
	}

	var week time.Time
	if req.WeekStart != "" {
		day, err := calendar.ParseDate(req.WeekStart)
		if err != nil {
			return nil, validationError(err, "invalid week start")
		}
		week = calendar.MondayOf(day)
		if period != nil && !overlapsPeriod(week, period) {
			week = calendar.ResolveCurrentWeek(period, week)
		}
	} else {
		week = calendar.ResolveCurrentWeek(period, s.now())
	}

	if req.Direction != "" {
		dir, ok := calendar.ParseDirection(req.Direction)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "direction must be prev or next")
		}
		week, _ = calendar.Navigate(dir, week, period)
	}

	window := calendar.WeekWindow(week)
	dates := formatDates(window[:])
	students, err := s.aggregate(ctx, req.ClassID, dates[0], dates[len(dates)-1])
	if err != nil {
		return nil, err
	}

	return &dto.WeekView{
		ClassID:   req.ClassID,
		WeekStart: calendar.FormatDate(week),
		Dates:     dates,
		Label:     calendar.WeekNumberLabel(week, period),
		InPeriod:  calendar.IsWeekInPeriod(week, period),
		CanPrev:   calendar.CanNavigate(calendar.Prev, week, period),
		CanNext:   calendar.CanNavigate(calendar.Next, week, period),
		Period:    stored,
		Students:  students,
	}, nil
}

// overlapsPeriod reports whether any day of the Mon-Thu window starting at week
// falls inside period.
func overlapsPeriod(week time.Time, period *calendar.Period) bool {
	last := calendar.AddDays(week, calendar.WindowDays-1)
	return !last.Before(period.Start) && !week.After(period.End)
}

func (s *TrackingService) loadPeriod(ctx context.Context, id int64) (*models.SixWeekPeriod, *calendar.Period, error) {
	stored, err := s.periods.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "period not found")
		}
		return nil, nil, internalError(err, "failed to load period")
	}
	period, err := calendar.PeriodFromModel(*stored)
	if err != nil {
		return nil, nil, internalError(err, "stored period has malformed dates")
	}
	return stored, period, nil
}

// aggregate expects start and end as normalised YYYY-MM-DD strings.
func (s *TrackingService) aggregate(ctx context.Context, classID int64, start, end string) ([]models.StudentTracking, error) {
	began := time.Now()
	defer func() { s.metrics.ObserveTrackingBuild(time.Since(began)) }()

	students, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		return nil, internalError(err, "failed to load class roster")
	}
	owned, err := s.accommodations.ListByStudents(ctx, studentIDs(students))
	if err != nil {
		return nil, internalError(err, "failed to load accommodations")
	}
	logs, err := s.logs.ListByClassAndRange(ctx, classID, start, end)
	if err != nil {
		return nil, internalError(err, "failed to load service logs")
	}

	marks := make(map[int64]models.ServiceMarks)
	for _, log := range logs {
		m, ok := marks[log.AccommodationID]
		if !ok {
			m = models.ServiceMarks{}
			marks[log.AccommodationID] = m
		}
		m[log.ServiceDate] = log.Provided
	}

	result := make([]models.StudentTracking, 0, len(students))
	for _, st := range students {
		tracked := models.StudentTracking{Student: st, Accommodations: []models.AccommodationTracking{}}
		for _, acc := range owned[st.ID] {
			m := marks[acc.ID]
			if m == nil {
				m = models.ServiceMarks{}
			}
			tracked.Accommodations = append(tracked.Accommodations, models.AccommodationTracking{Accommodation: acc, ServiceLogs: m})
		}
		result = append(result, tracked)
	}
	return result, nil
}

func formatDates(days []time.Time) []string {
	dates := make([]string, 0, len(days))
	for _, d := range days {
		dates = append(dates, calendar.FormatDate(d))
	}
	return dates
}
