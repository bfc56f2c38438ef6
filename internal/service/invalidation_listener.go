package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/repository"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/jobs"
)

// Push-event channels the weekly view reacts to. Anything else on the wire
// is ignored.
var DefaultEventChannels = []string{
	"schedule-updated",
	"schedule-exception-updated",
	"schedule-request-created",
}

// ErrAlreadySubscribed is returned when Subscribe is called on a live
// listener; exactly one subscription exists per listener.
var ErrAlreadySubscribed = errors.New("invalidation listener already subscribed")

// EventHandler reacts to one delivered event. Implementations must read the
// *current* view state at call time, never a snapshot captured at
// subscription time.
type EventHandler func(ctx context.Context, event string)

// InvalidationListener ties the push-event collaborator to the weekly
// schedule pipeline: every delivered event purges the grid cache and
// refreshes the active view sessions. Events fan out through a small worker
// queue so a slow refresh never blocks the receive loop.
type InvalidationListener struct {
	source   repository.EventSource
	channels []string
	handler  EventHandler
	queue    *jobs.Queue
	logger   *zap.Logger

	mu         sync.Mutex
	subscribed bool
	sub        repository.EventSubscription
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewInvalidationListener constructs a listener. A nil channel list falls
// back to DefaultEventChannels.
func NewInvalidationListener(source repository.EventSource, channels []string, handler EventHandler, queueBuffer int, logger *zap.Logger) *InvalidationListener {
	if len(channels) == 0 {
		channels = DefaultEventChannels
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &InvalidationListener{
		source:   source,
		channels: channels,
		handler:  handler,
		logger:   logger,
	}
	l.queue = jobs.NewQueue("invalidation", l.dispatch, jobs.QueueConfig{
		Workers:    1,
		BufferSize: queueBuffer,
		Logger:     logger,
	})
	return l
}

// Subscribe lazily establishes the push connection and starts consuming
// events. Calling it on an already-subscribed listener is a programming
// error surfaced as ErrAlreadySubscribed; the guard makes double mounting
// (say, a handler re-registering on reload) harmless.
func (l *InvalidationListener) Subscribe(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.subscribed {
		return ErrAlreadySubscribed
	}

	sub, err := l.source.Subscribe(ctx, l.channels...)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	l.sub = sub
	l.cancel = cancel
	l.done = make(chan struct{})
	l.subscribed = true

	l.queue.Start(runCtx)
	go l.consume(runCtx, sub, l.done)

	l.logger.Info("invalidation listener subscribed", zap.Strings("channels", l.channels))
	return nil
}

// Close detaches all handlers and resets the subscription guard so a new
// listening identity can subscribe again. Idempotent.
func (l *InvalidationListener) Close() {
	l.mu.Lock()
	if !l.subscribed {
		l.mu.Unlock()
		return
	}
	l.subscribed = false
	cancel := l.cancel
	sub := l.sub
	done := l.done
	l.sub = nil
	l.cancel = nil
	l.mu.Unlock()

	cancel()
	_ = sub.Close()
	<-done
	l.queue.Stop()
	l.logger.Info("invalidation listener closed")
}

func (l *InvalidationListener) consume(ctx context.Context, sub repository.EventSubscription, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			if !l.relevant(event) {
				continue
			}
			if err := l.queue.Enqueue(jobs.Job{Type: event}); err != nil {
				l.logger.Warn("dropping invalidation event", zap.String("event", event), zap.Error(err))
			}
		}
	}
}

func (l *InvalidationListener) dispatch(ctx context.Context, job jobs.Job) error {
	l.handler(ctx, job.Type)
	return nil
}

func (l *InvalidationListener) relevant(event string) bool {
	for _, c := range l.channels {
		if c == event {
			return true
		}
	}
	return false
}
