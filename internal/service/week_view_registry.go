package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/models"
	appErrors "github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/errors"
)

type weekViewSession struct {
	view  *WeekView
	owner string
}

// WeekViewRegistry tracks the live console view sessions. The invalidation
// listener refreshes every open session after purging the grid cache, so a
// connected console re-fetches the week it is currently showing.
type WeekViewRegistry struct {
	fetcher  weekFetcher
	debounce time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	sessions map[string]weekViewSession
}

// NewWeekViewRegistry creates an empty registry whose sessions fetch through
// the given pipeline.
func NewWeekViewRegistry(fetcher weekFetcher, debounce time.Duration, logger *zap.Logger) *WeekViewRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeekViewRegistry{
		fetcher:  fetcher,
		debounce: debounce,
		logger:   logger,
		sessions: make(map[string]weekViewSession),
	}
}

// Open creates a view session owned by the given user and returns its id.
// The session starts empty; the caller issues the first Navigate.
func (r *WeekViewRegistry) Open(owner string, role models.UserRole, reference time.Time) string {
	id := uuid.NewString()
	view := NewWeekView(r.fetcher, role, reference, r.debounce, r.logger)

	r.mu.Lock()
	r.sessions[id] = weekViewSession{view: view, owner: owner}
	count := len(r.sessions)
	r.mu.Unlock()

	r.logger.Debug("view session opened", zap.String("session_id", id), zap.Int("open_sessions", count))
	return id
}

// View returns the session when it exists and belongs to the given owner.
func (r *WeekViewRegistry) View(id, owner string) (*WeekView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "view session not found")
	}
	if session.owner != owner {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "view session belongs to another user")
	}
	return session.view, nil
}

// Close tears down one session. Closing a foreign or unknown session is
// reported the same way View reports it.
func (r *WeekViewRegistry) Close(id, owner string) error {
	r.mu.Lock()
	session, ok := r.sessions[id]
	if ok && session.owner == owner {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "view session not found")
	}
	if session.owner != owner {
		return appErrors.Clone(appErrors.ErrForbidden, "view session belongs to another user")
	}
	session.view.Close()
	return nil
}

// RefreshAll re-fetches every open session. Each refresh dispatches on its
// own goroutine, so a slow backend never stalls the caller.
func (r *WeekViewRegistry) RefreshAll() {
	r.mu.Lock()
	views := make([]*WeekView, 0, len(r.sessions))
	for _, session := range r.sessions {
		views = append(views, session.view)
	}
	r.mu.Unlock()

	for _, view := range views {
		view.Refresh()
	}
}

// Len reports the number of open sessions.
func (r *WeekViewRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// CloseAll tears down every session; used on shutdown.
func (r *WeekViewRegistry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]weekViewSession)
	r.mu.Unlock()

	for _, session := range sessions {
		session.view.Close()
	}
}
