// Package kinestex embeds the KinesteX web experience in a host surface and
// fetches KinesteX workout, plan and exercise content.
//
// Each NewXxxView call validates its inputs, builds the session payload and
// starts loading the feature URL on the host's Surface. The host reports
// load progress and posted messages back to the returned Session; typed
// events reach Host.OnEvent on the configured Dispatcher.
package kinestex

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/kinestex/kinestex-go/internal/bridge"
	"github.com/kinestex/kinestex-go/internal/content"
	"github.com/kinestex/kinestex-go/internal/models"
	"github.com/kinestex/kinestex-go/internal/payload"
	"github.com/kinestex/kinestex-go/internal/validate"
)

type (
	Base        = payload.Base
	UserProfile = payload.UserProfile
	Category    = payload.Category
	Lifestyle   = payload.Lifestyle
	Gender      = payload.Gender
	Feature     = payload.Feature

	Session     = bridge.Session
	Host        = bridge.Host
	Surface     = bridge.Surface
	Loading     = bridge.Loading
	LoadingFlag = bridge.LoadingFlag
	Dispatcher  = bridge.Dispatcher
	Loop        = bridge.Loop
	Event       = bridge.Event
	Kind        = bridge.Kind

	ContentClient  = content.Client
	ContentFilter  = content.Filter
	ContentRequest = content.Request
	ContentResult  = content.Result
	APIError       = content.APIError
	Workout        = models.Workout
	Plan           = models.Plan
	Exercise       = models.Exercise
	BodyPart       = models.BodyPart
)

const (
	KindLaunched            = bridge.KindLaunched
	KindWorkoutFinished     = bridge.KindWorkoutFinished
	KindError               = bridge.KindError
	KindExerciseCompleted   = bridge.KindExerciseCompleted
	KindExited              = bridge.KindExited
	KindWorkoutOpened       = bridge.KindWorkoutOpened
	KindWorkoutStarted      = bridge.KindWorkoutStarted
	KindPlanUnlocked        = bridge.KindPlanUnlocked
	KindRepCounted          = bridge.KindRepCounted
	KindMistake             = bridge.KindMistake
	KindLeftCameraFrame     = bridge.KindLeftCameraFrame
	KindReturnedCameraFrame = bridge.KindReturnedCameraFrame
	KindWorkoutOverview     = bridge.KindWorkoutOverview
	KindExerciseOverview    = bridge.KindExerciseOverview
	KindWorkoutCompleted    = bridge.KindWorkoutCompleted
	KindCustom              = bridge.KindCustom
)

// MessageChannel is the channel name hosts must route page messages from.
const MessageChannel = bridge.MessageChannel

// NewLoop returns a Dispatcher whose Run goroutine acts as the UI thread.
func NewLoop() *Loop { return bridge.NewLoop() }

var (
	Cardio           = payload.Cardio
	WeightManagement = payload.WeightManagement
	Strength         = payload.Strength
	Rehabilitation   = payload.Rehabilitation
)

const (
	Sedentary      = payload.Sedentary
	SlightlyActive = payload.SlightlyActive
	Active         = payload.Active
	VeryActive     = payload.VeryActive

	GenderUnknown = payload.GenderUnknown
	Male          = payload.Male
	Female        = payload.Female
)

// CustomCategory passes a caller-defined label to the main flow.
func CustomCategory(label string) Category { return payload.CustomCategory(label) }

var (
	// ErrDisallowed matches every input rejected for unsafe characters.
	ErrDisallowed = validate.ErrDisallowed
	// ErrNoDispatcher is returned by New without WithDispatcher.
	ErrNoDispatcher = errors.New("kinestex: dispatcher is required")
	// ErrNoCamera is returned by UpdateCurrentExercise when no camera
	// session is live.
	ErrNoCamera = errors.New("kinestex: no live camera session")
)

// IsDisallowed reports whether s contains characters that are never
// accepted in payload values, URLs or content queries.
func IsDisallowed(s string) bool { return validate.IsDisallowed(s) }

// SDK creates views and content clients. It owns the camera singleton.
type SDK struct {
	builder    *payload.Builder
	registry   *bridge.Registry
	dispatcher bridge.Dispatcher
	settle     time.Duration
	log        *slog.Logger
	apiBaseURL string
	httpClient *http.Client
	bridgeURL  string
	lang       string
}

type Option func(*SDK)

// WithDispatcher sets the UI-thread dispatcher events are delivered on.
func WithDispatcher(d Dispatcher) Option {
	return func(k *SDK) { k.dispatcher = d }
}

func WithLogger(log *slog.Logger) Option {
	return func(k *SDK) { k.log = log }
}

// WithBridgeBaseURL points views at another host of the web application.
func WithBridgeBaseURL(u string) Option {
	return func(k *SDK) { k.bridgeURL = u }
}

// WithAPIBaseURL points content clients at another API root.
func WithAPIBaseURL(u string) Option {
	return func(k *SDK) { k.apiBaseURL = u }
}

// WithSettleDelay overrides the pause between load completion and payload
// injection.
func WithSettleDelay(d time.Duration) Option {
	return func(k *SDK) { k.settle = d }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(k *SDK) { k.httpClient = hc }
}

// WithContentLang sets the language content clients request by default.
func WithContentLang(lang string) Option {
	return func(k *SDK) { k.lang = lang }
}

// New returns an SDK. A Dispatcher is required.
func New(opts ...Option) (*SDK, error) {
	k := &SDK{
		settle:     bridge.DefaultSettleDelay,
		log:        slog.Default(),
		apiBaseURL: content.DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(k)
	}
	if k.dispatcher == nil {
		return nil, ErrNoDispatcher
	}
	k.builder = payload.NewBuilder(k.bridgeURL)
	k.registry = bridge.NewRegistry(k.log)
	return k, nil
}

// NewMainView opens the main flow. A zero Category leaves the flow unscoped.
func (k *SDK) NewMainView(base Base, category Category, host Host) (*Session, error) {
	cfg, err := k.builder.Main(base, category)
	return k.open(payload.FeatureMain, cfg, err, host)
}

func (k *SDK) NewPlanView(base Base, plan string, host Host) (*Session, error) {
	cfg, err := k.builder.Plan(base, plan)
	return k.open(payload.FeaturePlan, cfg, err, host)
}

func (k *SDK) NewWorkoutView(base Base, workout string, host Host) (*Session, error) {
	cfg, err := k.builder.Workout(base, workout)
	return k.open(payload.FeatureWorkout, cfg, err, host)
}

// NewExperienceView opens a named experience. exercise may be empty.
func (k *SDK) NewExperienceView(base Base, experience, exercise string, host Host) (*Session, error) {
	cfg, err := k.builder.Experience(base, experience, exercise)
	return k.open(payload.FeatureExperience, cfg, err, host)
}

// NewChallengeView runs a timed challenge of countdown seconds.
func (k *SDK) NewChallengeView(base Base, exercise string, countdown int, showLeaderboard bool, host Host) (*Session, error) {
	cfg, err := k.builder.Challenge(base, exercise, countdown, showLeaderboard)
	return k.open(payload.FeatureChallenge, cfg, err, host)
}

// NewLeaderboardView shows the leaderboard for exercise. username may be
// empty.
func (k *SDK) NewLeaderboardView(base Base, exercise, username string, host Host) (*Session, error) {
	cfg, err := k.builder.Leaderboard(base, exercise, username)
	return k.open(payload.FeatureLeaderboard, cfg, err, host)
}

// NewCameraView returns the live camera session if one exists, ignoring the
// new arguments and host; otherwise it creates and starts one. Inputs are
// validated in both cases.
func (k *SDK) NewCameraView(base Base, exercises []string, current string, host Host) (*Session, error) {
	cfg, err := k.builder.Camera(base, exercises, current)
	if err != nil {
		k.reject(payload.FeatureCamera, err)
		return nil, err
	}

	s, created, err := k.registry.GetOrCreate(payload.FeatureCamera, func() (*Session, error) {
		return bridge.NewSession(cfg, host, k.sessionOptions())
	})
	if err != nil {
		k.log.Error("camera view construction failed", "error", err)
		return nil, err
	}
	if !created {
		return s, nil
	}
	if err := s.Start(); err != nil {
		s.Dispose()
		k.log.Error("camera view start failed", "error", err)
		return nil, err
	}
	return s, nil
}

// UpdateCurrentExercise changes the live camera session's current exercise.
func (k *SDK) UpdateCurrentExercise(name string) error {
	if err := validate.Field("current exercise", name); err != nil {
		k.reject(payload.FeatureCamera, err)
		return err
	}
	s, ok := k.registry.Lookup(payload.FeatureCamera)
	if !ok {
		return ErrNoCamera
	}
	return s.UpdateCurrentExercise(name)
}

// Camera returns the live camera session.
func (k *SDK) Camera() (*Session, bool) {
	return k.registry.Lookup(payload.FeatureCamera)
}

// ReleaseCamera disposes the live camera session so the next NewCameraView
// creates a fresh one.
func (k *SDK) ReleaseCamera() {
	k.registry.Release(payload.FeatureCamera)
}

// Close disposes the camera session. Other views are owned by the caller.
func (k *SDK) Close() {
	k.registry.Close()
}

// Content returns a client for one tenant against the configured API root.
// Credentials are validated on every fetch.
func (k *SDK) Content(apiKey, company string) *ContentClient {
	opts := []content.Option{
		content.WithBaseURL(k.apiBaseURL),
		content.WithLogger(k.log),
		content.WithLang(k.lang),
	}
	if k.httpClient != nil {
		opts = append(opts, content.WithHTTPClient(k.httpClient))
	}
	return content.NewClient(apiKey, company, opts...)
}

func (k *SDK) sessionOptions() bridge.Options {
	return bridge.Options{
		Dispatcher:  k.dispatcher,
		SettleDelay: k.settle,
		Logger:      k.log,
	}
}

func (k *SDK) open(feature payload.Feature, cfg payload.Config, err error, host Host) (*Session, error) {
	if err != nil {
		k.reject(feature, err)
		return nil, err
	}
	s, err := bridge.NewSession(cfg, host, k.sessionOptions())
	if err != nil {
		k.log.Error("view construction failed", "feature", string(feature), "error", err)
		return nil, err
	}
	if err := s.Start(); err != nil {
		s.Dispose()
		k.log.Error("view start failed", "feature", string(feature), "error", err)
		return nil, err
	}
	return s, nil
}

// reject logs a construction failure by field name only.
func (k *SDK) reject(feature payload.Feature, err error) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		k.log.Warn("view input rejected", "feature", string(feature), "field", verr.Field)
		return
	}
	k.log.Warn("view input rejected", "feature", string(feature), "error", err)
}
