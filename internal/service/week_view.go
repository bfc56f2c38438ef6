package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/models"
)

// weekFetcher is the single entry point through which the displayed grid is
// replaced. Both user navigation and push-event refreshes go through it.
type weekFetcher interface {
	GetWeek(ctx context.Context, req WeeklyScheduleRequest) (*models.WeeklySchedule, error)
	References(ctx context.Context, role models.UserRole) (*models.ReferenceBundle, error)
}

// WeekViewState is a consistent snapshot of one view session.
type WeekViewState struct {
	Schedule   *models.WeeklySchedule
	References *models.ReferenceBundle
	// InitialLoading is set until the very first fetch resolves; Refreshing
	// covers subsequent fetches. The distinction matters because the first
	// admin load also pulls the reference dropdowns.
	InitialLoading bool
	Refreshing     bool
	// Err holds the last fetch failure. The previous schedule stays visible;
	// a failed refresh never blanks the view.
	Err error
}

// WeekView owns the state of one displayed week: current reference date,
// filter and projected grid. Navigation calls are debounced so a burst of
// date-picker changes issues one fetch, and responses apply strictly
// last-request-wins: a stale in-flight result is discarded, never cancelled.
type WeekView struct {
	fetcher  weekFetcher
	role     models.UserRole
	debounce time.Duration
	logger   *zap.Logger

	mu        sync.Mutex
	reference time.Time
	filter    models.WeekFilter
	typeFlt   models.ScheduleTypeFilter
	state     WeekViewState
	refsDone  bool

	token   uint64
	timer   *time.Timer
	closed  bool
	pending chan struct{}
}

// NewWeekView creates a session for the given role, displaying the week of
// the provided reference date. The first fetch starts on the first Navigate
// or Refresh call.
func NewWeekView(fetcher weekFetcher, role models.UserRole, reference time.Time, debounce time.Duration, logger *zap.Logger) *WeekView {
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeekView{
		fetcher:   fetcher,
		role:      role,
		debounce:  debounce,
		logger:    logger,
		reference: reference,
		typeFlt:   models.TypeFilterAll,
		state:     WeekViewState{InitialLoading: true},
	}
}

// Navigate moves the view to the week of the given date with the given
// filters. Rapid consecutive calls inside the debounce window coalesce into a
// single fetch for the final target; the loading indicator flips immediately
// on the first call of a burst.
func (v *WeekView) Navigate(date time.Time, filter models.WeekFilter, typeFilter models.ScheduleTypeFilter) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.reference = date
	v.filter = filter
	if typeFilter != "" {
		v.typeFlt = typeFilter
	}
	if v.state.Schedule != nil {
		v.state.Refreshing = true
	}

	if v.timer != nil {
		v.timer.Stop()
	}
	v.timer = time.AfterFunc(v.debounce, func() {
		v.fetch()
	})
}

// Refresh re-fetches using whatever week and filter are current. The fetch
// runs on its own goroutine so the invalidation listener's dispatch loop is
// never blocked by a slow backend; it never captures stale navigation state
// because the target is read at fetch time under the lock.
func (v *WeekView) Refresh() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	if v.state.Schedule != nil {
		v.state.Refreshing = true
	}
	v.mu.Unlock()
	go v.fetch()
}

// State returns a snapshot of the session.
func (v *WeekView) State() WeekViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Close stops any pending debounce timer and marks the session unusable.
func (v *WeekView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
}

func (v *WeekView) fetch() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.token++
	token := v.token
	req := WeeklyScheduleRequest{Reference: v.reference, Filter: v.filter, TypeFilter: v.typeFlt}
	needRefs := v.role == models.RoleAdmin && !v.refsDone
	done := make(chan struct{})
	v.pending = done
	v.mu.Unlock()

	ctx := context.Background()

	var refs *models.ReferenceBundle
	if needRefs {
		bundle, err := v.fetcher.References(ctx, v.role)
		if err != nil {
			v.logger.Warn("reference prefetch failed", zap.Error(err))
		} else {
			refs = bundle
		}
	}

	schedule, err := v.fetcher.GetWeek(ctx, req)

	v.mu.Lock()
	defer v.mu.Unlock()
	defer close(done)

	// A newer request was issued while this one was in flight; its result
	// must not overwrite the newer one.
	if token != v.token || v.closed {
		return
	}

	v.state.InitialLoading = false
	v.state.Refreshing = false
	if refs != nil {
		v.state.References = refs
		v.refsDone = true
	}
	if err != nil {
		v.state.Err = err
		return
	}
	v.state.Err = nil
	v.state.Schedule = schedule
}

// wait blocks until the most recent fetch settles; test hook.
func (v *WeekView) wait() {
	v.mu.Lock()
	done := v.pending
	v.mu.Unlock()
	if done != nil {
		<-done
	}
}
