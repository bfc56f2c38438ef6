package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/models"
	appErrors "github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/errors"
)

type occurrenceRepository interface {
	ListWeek(ctx context.Context, weekStart time.Time, filter models.WeekFilter) ([]models.ScheduleOccurrence, error)
}

type referenceRepository interface {
	Departments(ctx context.Context) ([]models.Department, error)
	Classes(ctx context.Context) ([]models.ClassRef, error)
	Teachers(ctx context.Context) ([]models.TeacherRef, error)
}

// WeeklyScheduleRequest describes one weekly view query.
type WeeklyScheduleRequest struct {
	Reference  time.Time
	Filter     models.WeekFilter
	TypeFilter models.ScheduleTypeFilter
}

// WeeklyScheduleService runs the fetch, classify and project pipeline for the
// weekly view. Projection is pure; the service adds persistence, caching and
// a bounded fetch timeout around it.
type WeeklyScheduleService struct {
	repo       occurrenceRepository
	references referenceRepository
	cache      *CacheService
	cacheTTL   time.Duration
	timeout    time.Duration
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewWeeklyScheduleService instantiates WeeklyScheduleService.
func NewWeeklyScheduleService(repo occurrenceRepository, references referenceRepository, cache *CacheService, cacheTTL, timeout time.Duration, logger *zap.Logger) *WeeklyScheduleService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeeklyScheduleService{
		repo:       repo,
		references: references,
		cache:      cache,
		cacheTTL:   cacheTTL,
		timeout:    timeout,
		logger:     logger,
	}
}

// WithMetrics attaches fetch instrumentation. A nil metrics service is a
// no-op observer.
func (s *WeeklyScheduleService) WithMetrics(metrics *MetricsService) *WeeklyScheduleService {
	s.metrics = metrics
	return s
}

// GetWeek computes the window for the request's reference date, loads that
// week's occurrence set and projects it onto the grid. Each call is one
// repository query; the returned payload fully replaces whatever the caller
// displayed before.
func (s *WeeklyScheduleService) GetWeek(ctx context.Context, req WeeklyScheduleRequest) (*models.WeeklySchedule, error) {
	if req.TypeFilter == "" {
		req.TypeFilter = models.TypeFilterAll
	}
	window := ComputeWeekWindow(req.Reference)

	key := gridCacheKey(window.StartDate, req.Filter, req.TypeFilter)
	var cached models.WeeklySchedule
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	fetchStart := time.Now()
	occurrences, err := s.repo.ListWeek(ctx, window.StartDate, req.Filter)
	if err != nil {
		s.metrics.ObserveFetch("error", time.Since(fetchStart))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load weekly schedule")
	}
	s.metrics.ObserveFetch("success", time.Since(fetchStart))

	classified := ClassifyWeek(occurrences, window)
	if dropped := len(occurrences) - countPlaceable(classified); dropped > 0 {
		s.logger.Debug("occurrences excluded from grid",
			zap.Int("dropped", dropped),
			zap.Time("week_start", window.StartDate))
	}

	result := &models.WeeklySchedule{
		Window: window,
		Grid:   ProjectGrid(classified, req.TypeFilter),
		Filter: req.Filter,
		Type:   req.TypeFilter,
	}

	_ = s.cache.Set(ctx, key, result, s.cacheTTL)
	return result, nil
}

// References returns the department/class/teacher dropdown bundle. Only the
// admin role loads it; any other role gets an empty bundle without touching
// the database.
func (s *WeeklyScheduleService) References(ctx context.Context, role models.UserRole) (*models.ReferenceBundle, error) {
	bundle := &models.ReferenceBundle{}
	if role != models.RoleAdmin {
		return bundle, nil
	}

	var err error
	if bundle.Departments, err = s.references.Departments(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load departments")
	}
	if bundle.Classes, err = s.references.Classes(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classes")
	}
	if bundle.Teachers, err = s.references.Teachers(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teachers")
	}
	return bundle, nil
}

// InvalidateGrids purges every cached grid; called when a push event signals
// a server-side schedule mutation.
func (s *WeeklyScheduleService) InvalidateGrids(ctx context.Context) error {
	return s.cache.Invalidate(ctx, "schedule:week:*")
}

func gridCacheKey(weekStart time.Time, filter models.WeekFilter, typeFilter models.ScheduleTypeFilter) string {
	return fmt.Sprintf("schedule:week:%s:%s:%s:%s:%s",
		weekStart.Format("2006-01-02"), filter.DepartmentID, filter.ClassID, filter.TeacherID, typeFilter)
}

func countPlaceable(classified []models.ClassifiedOccurrence) int {
	n := 0
	for _, occ := range classified {
		if occ.HasTemporalFields() {
			n++
		}
	}
	return n
}
