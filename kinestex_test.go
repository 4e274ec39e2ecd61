package kinestex

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/kinestex/kinestex-go/internal/devserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSurface struct {
	mu      sync.Mutex
	loads   []string
	scripts []string
}

func (s *recordingSurface) Load(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads = append(s.loads, url)
	return nil
}

func (s *recordingSurface) EvaluateScript(_ context.Context, script string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts = append(s.scripts, script)
	return nil
}

func (s *recordingSurface) Scripts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.scripts...)
}

func (s *recordingSurface) Loads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.loads...)
}

// inline runs dispatched work on the calling goroutine, so load callbacks
// inject synchronously.
type inline struct{}

func (inline) Dispatch(fn func()) { fn() }

func newTestSDK(t *testing.T, opts ...Option) *SDK {
	t.Helper()
	base := []Option{
		WithDispatcher(inline{}),
		WithSettleDelay(0),
		WithBridgeBaseURL("https://app.kinestex.test"),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	k, err := New(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(k.Close)
	return k
}

var testBase = Base{APIKey: "key-1", Company: "Acme", UserID: "user-1"}

func TestNewRequiresDispatcher(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, ErrNoDispatcher)
}

func TestMainViewInjectsOncePerLoad(t *testing.T) {
	k := newTestSDK(t)
	surface := &recordingSurface{}
	var loading LoadingFlag

	s, err := k.NewMainView(testBase, Cardio, Host{Surface: surface, Loading: &loading})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.kinestex.test"}, surface.Loads())
	assert.True(t, loading.IsLoading())

	s.HandleLoadFinished()
	s.HandleLoadFinished()
	scripts := surface.Scripts()
	require.Len(t, scripts, 1)
	assert.Contains(t, scripts[0], `"planC":"Cardio"`)
	assert.Contains(t, scripts[0], `"key":"key-1"`)
	assert.Contains(t, scripts[0], `"company":"Acme"`)
	assert.Contains(t, scripts[0], `"userId":"user-1"`)
	assert.False(t, loading.IsLoading())

	s.HandleLoadStarted()
	s.HandleLoadFinished()
	assert.Len(t, surface.Scripts(), 2)
}

func TestViewURLs(t *testing.T) {
	k := newTestSDK(t)
	tests := []struct {
		name string
		open func(Host) (*Session, error)
		url  string
	}{
		{"plan", func(h Host) (*Session, error) { return k.NewPlanView(testBase, "Circulation Booster", h) },
			"https://app.kinestex.test/plan/Circulation%20Booster"},
		{"workout", func(h Host) (*Session, error) { return k.NewWorkoutView(testBase, "Fitness Lite", h) },
			"https://app.kinestex.test/workout/Fitness%20Lite"},
		{"experience", func(h Host) (*Session, error) { return k.NewExperienceView(testBase, "box", "Boxing", h) },
			"https://app.kinestex.test/experiences/box"},
		{"challenge", func(h Host) (*Session, error) { return k.NewChallengeView(testBase, "Squats", 100, true, h) },
			"https://app.kinestex.test/challenge"},
		{"leaderboard", func(h Host) (*Session, error) { return k.NewLeaderboardView(testBase, "Squats", "jane doe", h) },
			"https://app.kinestex.test/leaderboard?username=jane%20doe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := &recordingSurface{}
			s, err := tt.open(Host{Surface: surface})
			require.NoError(t, err)
			defer s.Dispose()
			assert.Equal(t, []string{tt.url}, surface.Loads())
		})
	}
}

// TestRejectedInputTouchesNothing verifies a validation failure creates no
// session and never loads the surface.
func TestRejectedInputTouchesNothing(t *testing.T) {
	k := newTestSDK(t)
	surface := &recordingSurface{}
	host := Host{Surface: surface, OnEvent: func(Event) { t.Error("unexpected event") }}

	s, err := k.NewWorkoutView(testBase, "Fitness.Lite", host)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrDisallowed)

	bad := testBase
	bad.Custom = map[string]any{"style": "dark;"}
	s, err = k.NewMainView(bad, Category{}, host)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrDisallowed)

	s, err = k.NewCameraView(testBase, []string{"Squats", "<script>"}, "Squats", host)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrDisallowed)
	_, live := k.Camera()
	assert.False(t, live)

	assert.Empty(t, surface.Loads())
}

// TestCameraSingleton verifies a second camera construction returns the live
// session and its arguments are not injected.
func TestCameraSingleton(t *testing.T) {
	k := newTestSDK(t)
	first := &recordingSurface{}
	second := &recordingSurface{}

	s1, err := k.NewCameraView(testBase, []string{"Squats", "Lunges"}, "Squats", Host{Surface: first})
	require.NoError(t, err)
	s1.HandleLoadFinished()

	s2, err := k.NewCameraView(testBase, []string{"Pushups"}, "Pushups", Host{Surface: second})
	require.NoError(t, err)
	assert.Same(t, s1, s2)
	assert.Empty(t, second.Loads())
	assert.Equal(t, "Squats", s1.Payload()["currentExercise"])

	scripts := first.Scripts()
	require.Len(t, scripts, 1)
	assert.NotContains(t, scripts[0], "Pushups")

	require.NoError(t, k.UpdateCurrentExercise("Lunges"))
	scripts = first.Scripts()
	require.Len(t, scripts, 2)
	assert.Equal(t, `window.postMessage({"currentExercise":"Lunges"}, '*');`, scripts[1])
}

func TestUpdateCurrentExercise(t *testing.T) {
	k := newTestSDK(t)

	assert.ErrorIs(t, k.UpdateCurrentExercise("Squats"), ErrNoCamera)
	assert.ErrorIs(t, k.UpdateCurrentExercise("Squats()"), ErrDisallowed)

	surface := &recordingSurface{}
	_, err := k.NewCameraView(testBase, []string{"Squats"}, "Squats", Host{Surface: surface})
	require.NoError(t, err)

	// Before the load completes only the payload changes.
	require.NoError(t, k.UpdateCurrentExercise("Lunges"))
	assert.Empty(t, surface.Scripts())

	s, _ := k.Camera()
	s.HandleLoadFinished()
	scripts := surface.Scripts()
	require.Len(t, scripts, 1)
	assert.True(t, strings.Contains(scripts[0], `"currentExercise":"Lunges"`))
}

func TestReleaseCameraAllowsNewSession(t *testing.T) {
	k := newTestSDK(t)

	s1, err := k.NewCameraView(testBase, []string{"Squats"}, "Squats", Host{Surface: &recordingSurface{}})
	require.NoError(t, err)
	k.ReleaseCamera()
	assert.Equal(t, "disposed", s1.State().String())

	surface := &recordingSurface{}
	s2, err := k.NewCameraView(testBase, []string{"Pushups"}, "Pushups", Host{Surface: surface})
	require.NoError(t, err)
	assert.NotSame(t, s1, s2)
	assert.Len(t, surface.Loads(), 1)
}

func TestInboundEventsReachHost(t *testing.T) {
	k := newTestSDK(t)
	var got []Event
	s, err := k.NewWorkoutView(testBase, "Fitness Lite", Host{
		Surface: &recordingSurface{},
		OnEvent: func(ev Event) { got = append(got, ev) },
	})
	require.NoError(t, err)

	s.HandleMessage(MessageChannel, `{"type":"exercise_completed","data":"X"}`)
	s.HandleMessage(MessageChannel, `{"no_type":true}`)
	s.HandleMessage(MessageChannel, `{"type":"totally_unknown_event","foo":1}`)

	require.Len(t, got, 2)
	assert.Equal(t, KindExerciseCompleted, got[0].Kind)
	legacy, ok := got[0].Legacy()
	require.True(t, ok)
	assert.Equal(t, "X", legacy)
	assert.Equal(t, KindCustom, got[1].Kind)
	assert.Equal(t, map[string]any{"type": "totally_unknown_event", "foo": float64(1)}, got[1].Data)
}

func TestContentClientUsesAPIBaseURL(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(devserver.New(devserver.DefaultStore(), devserver.Credentials{APIKey: "key-1"}, log))
	defer ts.Close()

	k := newTestSDK(t, WithAPIBaseURL(ts.URL+"/api/v1/"), WithHTTPClient(ts.Client()))
	c := k.Content("key-1", "Acme")

	w, err := c.Workout(context.Background(), "Fitness Lite")
	require.NoError(t, err)
	assert.Equal(t, "Fitness Lite", w.Title)

	_, err = k.Content("other", "Acme").Workout(context.Background(), "Fitness Lite")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "invalid API key")
}
