package bridge

import (
	"context"
	"sync"
)

// Dispatcher runs callbacks on the host's UI thread. Dispatch must not block
// on fn and must be safe to call from any goroutine.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatcherFunc adapts a host-provided "post to main thread" function.
type DispatcherFunc func(fn func())

func (f DispatcherFunc) Dispatch(fn func()) { f(fn) }

// Loop is a single-goroutine Dispatcher. Whatever goroutine calls Run acts
// as the UI thread; tasks run in submission order.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	stopped bool
}

// NewLoop returns an idle loop. Tasks queue until Run is called.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Dispatch enqueues fn. It never blocks, so tasks may dispatch further tasks.
// Tasks submitted after Run returns are dropped.
func (l *Loop) Dispatch(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run executes tasks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
		if len(batch) > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			l.mu.Lock()
			l.stopped = true
			l.queue = nil
			l.mu.Unlock()
			return ctx.Err()
		case <-l.wake:
		}
	}
}
