// Package bridge drives one embedded web surface per feature: it injects the
// session payload once per load and turns messages posted back by the page
// into typed events delivered on the host's UI thread.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/kinestex/kinestex-go/internal/payload"
	"github.com/kinestex/kinestex-go/internal/validate"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MessageChannel is the only script-message channel the page may post on.
const MessageChannel = "listener"

// DefaultSettleDelay gives the page time to register its own message
// listener after the surface reports load completion. It is a heuristic,
// not a readiness guarantee.
const DefaultSettleDelay = time.Second

// InjectionErrorMessage is delivered as an error event when the surface
// fails to evaluate the payload script.
const InjectionErrorMessage = "Failed to send data to the embedded content"

// ErrDisposed is returned by operations on a disposed session.
var ErrDisposed = errors.New("bridge: session disposed")

// Surface is the host-owned renderable web view.
type Surface interface {
	// Load begins fetching url. Completion is reported back through
	// Session.HandleLoadFinished.
	Load(ctx context.Context, url string) error
	// EvaluateScript runs script in the loaded page.
	EvaluateScript(ctx context.Context, script string) error
}

// Loading receives the caller-owned loading flag.
type Loading interface {
	SetLoading(loading bool)
}

// LoadingFlag is a ready-made Loading safe for concurrent reads.
type LoadingFlag struct {
	v atomic.Bool
}

func (f *LoadingFlag) SetLoading(loading bool) { f.v.Store(loading) }

func (f *LoadingFlag) IsLoading() bool { return f.v.Load() }

type noLoading struct{}

func (noLoading) SetLoading(bool) {}

// Handler receives inbound events on the dispatcher's thread.
type Handler func(Event)

// Host bundles what the caller owns for one view.
type Host struct {
	Surface Surface
	Loading Loading
	OnEvent Handler
}

// Options tune a session. Dispatcher is required.
type Options struct {
	Dispatcher  Dispatcher
	SettleDelay time.Duration
	Logger      *slog.Logger
}

// State is the session lifecycle position.
type State int32

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Session is one live embedded surface.
type Session struct {
	id         uuid.UUID
	surface    Surface
	loading    Loading
	onEvent    Handler
	dispatcher Dispatcher
	settle     time.Duration
	log        *slog.Logger
	tracer     trace.Tracer

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	cfg   payload.Config
	state State
	// gen counts loads; injected is the last gen whose payload injection was
	// scheduled. Equal values mean this load is already handled.
	gen      uint64
	injected uint64
	timer    *time.Timer
	release  func(*Session)
}

// NewSession binds cfg to a host surface. The session stays Idle until Start.
func NewSession(cfg payload.Config, host Host, opts Options) (*Session, error) {
	if host.Surface == nil {
		return nil, errors.New("bridge: nil surface")
	}
	if opts.Dispatcher == nil {
		return nil, errors.New("bridge: nil dispatcher")
	}
	if opts.SettleDelay < 0 {
		opts.SettleDelay = 0
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	loading := host.Loading
	if loading == nil {
		loading = noLoading{}
	}
	onEvent := host.OnEvent
	if onEvent == nil {
		onEvent = func(Event) {}
	}

	id := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:         id,
		surface:    host.Surface,
		loading:    loading,
		onEvent:    onEvent,
		dispatcher: opts.Dispatcher,
		settle:     opts.SettleDelay,
		log:        log.With("session", id.String(), "feature", string(cfg.Feature)),
		tracer:     otel.Tracer("kinestex/bridge"),
		ctx:        ctx,
		cancel:     cancel,
		cfg:        cfg.Clone(),
		state:      StateIdle,
	}, nil
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) Feature() payload.Feature { return s.cfg.Feature }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Payload returns a copy of the payload that the next load will inject.
func (s *Session) Payload() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone().Payload
}

// Start asks the surface to load the feature URL (Idle -> Loading).
func (s *Session) Start() error {
	s.mu.Lock()
	if s.state != StateIdle {
		st := s.state
		s.mu.Unlock()
		return fmt.Errorf("bridge: start in state %s", st)
	}
	s.state = StateLoading
	s.gen = 1
	url := s.cfg.URL
	s.mu.Unlock()

	s.loading.SetLoading(true)
	s.log.Info("loading surface", "url", url)
	if err := s.surface.Load(s.ctx, url); err != nil {
		return fmt.Errorf("bridge: load %s: %w", url, err)
	}
	return nil
}

// HandleLoadStarted records a navigation or reload; the next load completion
// injects the payload again. Any injection still pending for the previous
// load is abandoned. Load events before Start are ignored.
func (s *Session) HandleLoadStarted() {
	s.mu.Lock()
	if s.state == StateDisposed || s.state == StateIdle {
		s.mu.Unlock()
		return
	}
	s.gen++
	s.state = StateLoading
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.loading.SetLoading(true)
}

// HandleLoadFinished schedules the payload injection for the current load.
// Repeated completions for the same load are ignored.
func (s *Session) HandleLoadFinished() {
	s.mu.Lock()
	if s.state == StateDisposed || s.state == StateIdle || s.injected == s.gen {
		s.mu.Unlock()
		return
	}
	s.injected = s.gen
	gen := s.gen
	run := func() { s.dispatcher.Dispatch(func() { s.inject(gen) }) }
	if s.settle > 0 {
		s.timer = time.AfterFunc(s.settle, run)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	run()
}

// inject runs on the dispatcher.
func (s *Session) inject(gen uint64) {
	s.mu.Lock()
	if s.state == StateDisposed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.state = StateReady
	s.timer = nil
	script, err := s.cfg.InjectionScript()
	s.mu.Unlock()

	s.loading.SetLoading(false)

	ctx, span := s.tracer.Start(s.ctx, "bridge.inject",
		trace.WithAttributes(
			attribute.String("bridge.feature", string(s.cfg.Feature)),
			attribute.Int64("bridge.load", int64(gen)),
		),
	)
	defer span.End()

	if err == nil {
		err = s.surface.EvaluateScript(ctx, script)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "injection failed")
		s.log.Error("payload injection failed", "error", err)
		s.onEvent(errorEvent(InjectionErrorMessage))
		return
	}
	s.log.Debug("payload injected", "load", gen)
}

// HandleMessage accepts one string posted by the page on channel. It may be
// called from any goroutine; the event handler always runs on the
// dispatcher. Malformed or untyped messages are logged and dropped.
func (s *Session) HandleMessage(channel, body string) {
	if channel != MessageChannel {
		s.log.Warn("message on unexpected channel dropped", "channel", channel)
		return
	}
	if s.State() == StateDisposed {
		return
	}
	ev, err := Classify([]byte(body))
	if err != nil {
		s.log.Warn("inbound message dropped", "error", err, "body", truncate(body, 200))
		return
	}
	s.dispatcher.Dispatch(func() {
		if s.State() == StateDisposed {
			return
		}
		s.onEvent(ev)
	})
}

// UpdateCurrentExercise changes the currentExercise payload entry. When the
// surface is already loaded a small followup message is posted; the full
// payload is not re-sent and the state does not change.
func (s *Session) UpdateCurrentExercise(name string) error {
	if err := validate.Field("current exercise", name); err != nil {
		return err
	}

	s.mu.Lock()
	if s.state == StateDisposed {
		s.mu.Unlock()
		return ErrDisposed
	}
	s.cfg.Payload[payload.KeyCurrentExercise] = name
	ready := s.state == StateReady
	s.mu.Unlock()

	if !ready {
		return nil
	}
	script, err := payload.CurrentExerciseScript(name)
	if err != nil {
		return err
	}
	s.dispatcher.Dispatch(func() {
		if s.State() != StateReady {
			return
		}
		if err := s.surface.EvaluateScript(s.ctx, script); err != nil {
			s.log.Error("current exercise update failed", "error", err)
			s.onEvent(errorEvent(InjectionErrorMessage))
		}
	})
	return nil
}

// Dispose stops the session. Pending injections and queued events are
// abandoned. Dispose is idempotent.
func (s *Session) Dispose() {
	s.mu.Lock()
	if s.state == StateDisposed {
		s.mu.Unlock()
		return
	}
	s.state = StateDisposed
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	release := s.release
	s.mu.Unlock()

	s.cancel()
	if release != nil {
		release(s)
	}
	s.log.Info("session disposed")
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
