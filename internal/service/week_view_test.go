package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/models"
)

// fetchCall lets the test hold a GetWeek call open and release it with a
// chosen result, simulating slow in-flight requests.
type fetchCall struct {
	req   WeeklyScheduleRequest
	reply chan fetchReply
}

type fetchReply struct {
	schedule *models.WeeklySchedule
	err      error
}

type fetcherStub struct {
	mu       sync.Mutex
	calls    chan fetchCall
	refCalls int
	refErr   error
}

func newFetcherStub() *fetcherStub {
	return &fetcherStub{calls: make(chan fetchCall, 16)}
}

func (f *fetcherStub) GetWeek(ctx context.Context, req WeeklyScheduleRequest) (*models.WeeklySchedule, error) {
	call := fetchCall{req: req, reply: make(chan fetchReply)}
	f.calls <- call
	reply := <-call.reply
	return reply.schedule, reply.err
}

func (f *fetcherStub) References(ctx context.Context, role models.UserRole) (*models.ReferenceBundle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refCalls++
	if f.refErr != nil {
		return nil, f.refErr
	}
	return &models.ReferenceBundle{Departments: []models.Department{{ID: "cntt"}}}, nil
}

func (f *fetcherStub) referenceCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refCalls
}

func (f *fetcherStub) nextCall(t *testing.T) fetchCall {
	t.Helper()
	select {
	case call := <-f.calls:
		return call
	case <-time.After(2 * time.Second):
		t.Fatal("no fetch was issued")
		return fetchCall{}
	}
}

func (f *fetcherStub) expectNoCall(t *testing.T, within time.Duration) {
	t.Helper()
	select {
	case <-f.calls:
		t.Fatal("unexpected fetch issued")
	case <-time.After(within):
	}
}

func scheduleFor(ref time.Time) *models.WeeklySchedule {
	window := ComputeWeekWindow(ref)
	return &models.WeeklySchedule{Window: window, Type: models.TypeFilterAll}
}

func TestWeekViewDebounceCoalescesNavigation(t *testing.T) {
	fetcher := newFetcherStub()
	view := NewWeekView(fetcher, models.RoleTeacher, time.Now(), 30*time.Millisecond, zap.NewNop())
	defer view.Close()

	// Three rapid navigations land inside one debounce window.
	base := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	view.Navigate(base, models.WeekFilter{}, models.TypeFilterAll)
	view.Navigate(base.AddDate(0, 0, 7), models.WeekFilter{}, models.TypeFilterAll)
	view.Navigate(base.AddDate(0, 0, 14), models.WeekFilter{}, models.TypeFilterAll)

	call := fetcher.nextCall(t)
	assert.Equal(t, base.AddDate(0, 0, 14), call.req.Reference)
	call.reply <- fetchReply{schedule: scheduleFor(call.req.Reference)}

	fetcher.expectNoCall(t, 100*time.Millisecond)

	view.wait()
	state := view.State()
	require.NotNil(t, state.Schedule)
	assert.Equal(t, time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), state.Schedule.Window.StartDate)
	assert.False(t, state.InitialLoading)
	assert.False(t, state.Refreshing)
}

func TestWeekViewLastRequestWins(t *testing.T) {
	fetcher := newFetcherStub()
	view := NewWeekView(fetcher, models.RoleTeacher, time.Now(), 5*time.Millisecond, zap.NewNop())
	defer view.Close()

	weekA := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	weekB := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)

	view.Navigate(weekA, models.WeekFilter{}, models.TypeFilterAll)
	first := fetcher.nextCall(t)

	view.Navigate(weekB, models.WeekFilter{}, models.TypeFilterAll)
	second := fetcher.nextCall(t)

	// The newer request resolves first; the stale one lands afterwards and
	// must be discarded.
	second.reply <- fetchReply{schedule: scheduleFor(weekB)}
	require.Eventually(t, func() bool {
		state := view.State()
		return state.Schedule != nil && state.Schedule.Window.StartDate.Equal(weekB)
	}, time.Second, 5*time.Millisecond)

	first.reply <- fetchReply{schedule: scheduleFor(weekA)}
	time.Sleep(50 * time.Millisecond)

	state := view.State()
	require.NotNil(t, state.Schedule)
	assert.Equal(t, weekB, state.Schedule.Window.StartDate)
}

func TestWeekViewErrorKeepsLastGoodGrid(t *testing.T) {
	fetcher := newFetcherStub()
	view := NewWeekView(fetcher, models.RoleTeacher, time.Now(), 5*time.Millisecond, zap.NewNop())
	defer view.Close()

	weekA := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	view.Navigate(weekA, models.WeekFilter{}, models.TypeFilterAll)
	call := fetcher.nextCall(t)
	call.reply <- fetchReply{schedule: scheduleFor(weekA)}
	view.wait()

	view.Navigate(weekA.AddDate(0, 0, 7), models.WeekFilter{}, models.TypeFilterAll)
	call = fetcher.nextCall(t)
	call.reply <- fetchReply{err: errors.New("backend down")}
	view.wait()

	state := view.State()
	require.Error(t, state.Err)
	require.NotNil(t, state.Schedule)
	assert.Equal(t, weekA, state.Schedule.Window.StartDate)
	assert.False(t, state.Refreshing)

	// A following success clears the error.
	view.Refresh()
	call = fetcher.nextCall(t)
	call.reply <- fetchReply{schedule: scheduleFor(weekA.AddDate(0, 0, 7))}
	view.wait()

	state = view.State()
	assert.NoError(t, state.Err)
	assert.Equal(t, weekA.AddDate(0, 0, 7), state.Schedule.Window.StartDate)
}

func TestWeekViewRefreshDoesNotBlockCaller(t *testing.T) {
	fetcher := newFetcherStub()
	view := NewWeekView(fetcher, models.RoleTeacher, time.Now(), 5*time.Millisecond, zap.NewNop())
	defer view.Close()

	// Refresh must return while the fetch is still in flight; the reply is
	// only sent after Refresh has come back.
	returned := make(chan struct{})
	go func() {
		view.Refresh()
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("Refresh blocked until the fetch settled")
	}

	call := fetcher.nextCall(t)
	call.reply <- fetchReply{schedule: scheduleFor(call.req.Reference)}
	view.wait()
	require.NotNil(t, view.State().Schedule)
}

func TestWeekViewAdminLoadsReferencesOnce(t *testing.T) {
	fetcher := newFetcherStub()
	view := NewWeekView(fetcher, models.RoleAdmin, time.Now(), 5*time.Millisecond, zap.NewNop())
	defer view.Close()

	weekA := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	view.Navigate(weekA, models.WeekFilter{}, models.TypeFilterAll)
	call := fetcher.nextCall(t)
	call.reply <- fetchReply{schedule: scheduleFor(weekA)}
	view.wait()

	state := view.State()
	require.NotNil(t, state.References)
	assert.Equal(t, 1, fetcher.referenceCalls())

	view.Navigate(weekA.AddDate(0, 0, 7), models.WeekFilter{}, models.TypeFilterAll)
	call = fetcher.nextCall(t)
	call.reply <- fetchReply{schedule: scheduleFor(weekA.AddDate(0, 0, 7))}
	view.wait()

	assert.Equal(t, 1, fetcher.referenceCalls())
}

func TestWeekViewNonAdminNeverLoadsReferences(t *testing.T) {
	fetcher := newFetcherStub()
	view := NewWeekView(fetcher, models.RoleStudent, time.Now(), 5*time.Millisecond, zap.NewNop())
	defer view.Close()

	view.Navigate(time.Now(), models.WeekFilter{}, models.TypeFilterAll)
	call := fetcher.nextCall(t)
	call.reply <- fetchReply{schedule: scheduleFor(time.Now())}
	view.wait()

	assert.Equal(t, 0, fetcher.referenceCalls())
	assert.Nil(t, view.State().References)
}

func TestWeekViewCloseStopsPendingNavigation(t *testing.T) {
	fetcher := newFetcherStub()
	view := NewWeekView(fetcher, models.RoleTeacher, time.Now(), 50*time.Millisecond, zap.NewNop())

	view.Navigate(time.Now(), models.WeekFilter{}, models.TypeFilterAll)
	view.Close()

	fetcher.expectNoCall(t, 150*time.Millisecond)

	// Navigation after close is a no-op.
	view.Navigate(time.Now(), models.WeekFilter{}, models.TypeFilterAll)
	fetcher.expectNoCall(t, 100*time.Millisecond)
}
