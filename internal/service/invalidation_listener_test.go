package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/repository"
)

type fakeSubscription struct {
	events chan string
	once   sync.Once
}

func (s *fakeSubscription) Events() <-chan string { return s.events }

func (s *fakeSubscription) Close() error {
	s.once.Do(func() { close(s.events) })
	return nil
}

type fakeEventSource struct {
	mu         sync.Mutex
	sub        *fakeSubscription
	subscribes int
	channels   []string
}

func (f *fakeEventSource) Subscribe(ctx context.Context, channels ...string) (repository.EventSubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribes++
	f.channels = channels
	f.sub = &fakeSubscription{events: make(chan string, 8)}
	return f.sub, nil
}

func (f *fakeEventSource) publish(event string) {
	f.mu.Lock()
	sub := f.sub
	f.mu.Unlock()
	sub.events <- event
}

type eventRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *eventRecorder) handle(ctx context.Context, event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

func TestInvalidationListenerDeliversRelevantEvents(t *testing.T) {
	source := &fakeEventSource{}
	recorder := &eventRecorder{}
	listener := NewInvalidationListener(source, nil, recorder.handle, 8, zap.NewNop())

	require.NoError(t, listener.Subscribe(context.Background()))
	defer listener.Close()

	assert.Equal(t, DefaultEventChannels, source.channels)

	source.publish("schedule-updated")
	source.publish("schedule-exception-updated")
	source.publish("schedule-request-created")

	require.Eventually(t, func() bool {
		return len(recorder.seen()) == 3
	}, time.Second, 5*time.Millisecond)
	assert.Contains(t, recorder.seen(), "schedule-updated")
}

func TestInvalidationListenerIgnoresUnknownEvents(t *testing.T) {
	source := &fakeEventSource{}
	recorder := &eventRecorder{}
	listener := NewInvalidationListener(source, nil, recorder.handle, 8, zap.NewNop())

	require.NoError(t, listener.Subscribe(context.Background()))
	defer listener.Close()

	source.publish("user-logged-in")
	source.publish("schedule-updated")

	require.Eventually(t, func() bool {
		return len(recorder.seen()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"schedule-updated"}, recorder.seen())
}

func TestInvalidationListenerDoubleSubscribe(t *testing.T) {
	source := &fakeEventSource{}
	listener := NewInvalidationListener(source, nil, func(ctx context.Context, event string) {}, 8, zap.NewNop())

	require.NoError(t, listener.Subscribe(context.Background()))
	defer listener.Close()

	err := listener.Subscribe(context.Background())
	require.ErrorIs(t, err, ErrAlreadySubscribed)
	assert.Equal(t, 1, source.subscribes)
}

func TestInvalidationListenerCloseAndResubscribe(t *testing.T) {
	source := &fakeEventSource{}
	recorder := &eventRecorder{}
	listener := NewInvalidationListener(source, nil, recorder.handle, 8, zap.NewNop())

	require.NoError(t, listener.Subscribe(context.Background()))
	listener.Close()

	// Close resets the guard; a new subscription works.
	require.NoError(t, listener.Subscribe(context.Background()))
	defer listener.Close()
	assert.Equal(t, 2, source.subscribes)

	source.publish("schedule-updated")
	require.Eventually(t, func() bool {
		return len(recorder.seen()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestInvalidationListenerCloseIdempotent(t *testing.T) {
	source := &fakeEventSource{}
	listener := NewInvalidationListener(source, nil, func(ctx context.Context, event string) {}, 8, zap.NewNop())

	require.NoError(t, listener.Subscribe(context.Background()))
	listener.Close()
	listener.Close()
}

func TestInvalidationListenerCustomChannels(t *testing.T) {
	source := &fakeEventSource{}
	recorder := &eventRecorder{}
	listener := NewInvalidationListener(source, []string{"room-maintenance"}, recorder.handle, 8, zap.NewNop())

	require.NoError(t, listener.Subscribe(context.Background()))
	defer listener.Close()

	source.publish("schedule-updated")
	source.publish("room-maintenance")

	require.Eventually(t, func() bool {
		return len(recorder.seen()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"room-maintenance"}, recorder.seen())
}
