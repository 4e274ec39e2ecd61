// Package payload assembles the flat key/value map injected into the
// embedded content and picks the URL for each feature.
package payload

import (
	"fmt"
	"maps"
	"net/url"
	"sort"
	"strings"

	"github.com/kinestex/kinestex-go/internal/validate"
)

// DefaultBaseURL hosts the embedded web application.
const DefaultBaseURL = "https://kinestex.vercel.app"

// Feature names one embedded surface kind.
type Feature string

const (
	FeatureMain        Feature = "main"
	FeaturePlan        Feature = "plan"
	FeatureWorkout     Feature = "workout"
	FeatureExperience  Feature = "experience"
	FeatureChallenge   Feature = "challenge"
	FeatureLeaderboard Feature = "leaderboard"
	FeatureCamera      Feature = "camera"
)

// Payload keys the builder writes. Custom parameters may use any other key.
const (
	KeyCategory        = "planC"
	KeyAge             = "age"
	KeyHeight          = "height"
	KeyWeight          = "weight"
	KeyGender          = "gender"
	KeyLifestyle       = "lifestyle"
	KeyExercise        = "exercise"
	KeyCountdown       = "countdown"
	KeyShowLeaderboard = "showLeaderboard"
	KeyExercises       = "exercises"
	KeyCurrentExercise = "currentExercise"
)

// Base carries the inputs shared by every feature.
type Base struct {
	APIKey  string
	Company string
	UserID  string
	User    *UserProfile
	// Custom is merged after every builder-owned key.
	Custom map[string]any
}

// Config is everything a bridge session needs. Only the currentExercise
// payload entry changes after construction.
type Config struct {
	Feature Feature
	APIKey  string
	Company string
	UserID  string
	URL     string
	Payload map[string]any
}

// Clone returns a copy whose payload map can be mutated independently.
func (c Config) Clone() Config {
	c.Payload = maps.Clone(c.Payload)
	return c
}

// Builder produces feature configs against a given web application host.
type Builder struct {
	baseURL string
}

// NewBuilder returns a Builder for baseURL, or DefaultBaseURL when empty.
func NewBuilder(baseURL string) *Builder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Builder{baseURL: strings.TrimRight(baseURL, "/")}
}

// Main builds the main flow, optionally scoped to a plan category.
func (b *Builder) Main(base Base, category Category) (Config, error) {
	if category.IsCustom() {
		if err := validate.Field("custom category", category.String()); err != nil {
			return Config{}, err
		}
	}
	extra := map[string]any{}
	if category.String() != "" {
		extra[KeyCategory] = category.String()
	}
	return b.build(FeatureMain, b.baseURL, base, extra)
}

// Plan opens a named plan.
func (b *Builder) Plan(base Base, name string) (Config, error) {
	if err := validate.Field("plan name", name); err != nil {
		return Config{}, err
	}
	return b.build(FeaturePlan, b.baseURL+"/plan/"+encodeSpaces(name), base, nil)
}

// Workout opens a named workout.
func (b *Builder) Workout(base Base, name string) (Config, error) {
	if err := validate.Field("workout name", name); err != nil {
		return Config{}, err
	}
	return b.build(FeatureWorkout, b.baseURL+"/workout/"+encodeSpaces(name), base, nil)
}

// Experience opens a named experience, optionally starting on exercise.
func (b *Builder) Experience(base Base, name, exercise string) (Config, error) {
	if err := validate.Fields("experience name", name, "exercise name", exercise); err != nil {
		return Config{}, err
	}
	extra := map[string]any{}
	if exercise != "" {
		extra[KeyExercise] = exercise
	}
	return b.build(FeatureExperience, b.baseURL+"/experiences/"+encodeSpaces(name), base, extra)
}

// Challenge runs a timed single-exercise challenge.
func (b *Builder) Challenge(base Base, exercise string, countdown int, showLeaderboard bool) (Config, error) {
	if err := validate.Field("exercise name", exercise); err != nil {
		return Config{}, err
	}
	if countdown < 0 {
		return Config{}, fmt.Errorf("payload: negative countdown %d", countdown)
	}
	return b.build(FeatureChallenge, b.baseURL+"/challenge", base, map[string]any{
		KeyExercise:        exercise,
		KeyCountdown:       countdown,
		KeyShowLeaderboard: showLeaderboard,
	})
}

// Leaderboard shows the leaderboard for exercise, highlighting username
// when given.
func (b *Builder) Leaderboard(base Base, exercise, username string) (Config, error) {
	if err := validate.Fields("exercise name", exercise, "username", username); err != nil {
		return Config{}, err
	}
	u := b.baseURL + "/leaderboard"
	if username != "" {
		u += "?username=" + encodeSpaces(username)
	}
	return b.build(FeatureLeaderboard, u, base, map[string]any{KeyExercise: exercise})
}

// Camera opens the motion-tracking camera with an ordered exercise list.
func (b *Builder) Camera(base Base, exercises []string, current string) (Config, error) {
	for _, e := range exercises {
		if err := validate.Field("exercise name", e); err != nil {
			return Config{}, err
		}
	}
	if err := validate.Field("current exercise", current); err != nil {
		return Config{}, err
	}
	return b.build(FeatureCamera, b.baseURL+"/camera", base, map[string]any{
		KeyExercises:       append([]string(nil), exercises...),
		KeyCurrentExercise: current,
	})
}

func (b *Builder) build(feature Feature, rawURL string, base Base, extra map[string]any) (Config, error) {
	if err := validate.Fields(
		"api key", base.APIKey,
		"company", base.Company,
		"user id", base.UserID,
	); err != nil {
		return Config{}, err
	}
	if _, err := url.Parse(rawURL); err != nil {
		return Config{}, fmt.Errorf("payload: feature url: %w", err)
	}

	p := make(map[string]any, len(extra)+len(base.Custom)+5)
	if u := base.User; u != nil {
		p[KeyAge] = u.Age
		p[KeyHeight] = u.Height
		p[KeyWeight] = u.Weight
		p[KeyGender] = u.Gender.String()
		p[KeyLifestyle] = u.Lifestyle.String()
	}
	maps.Copy(p, extra)

	// Sorted so the first invalid entry is deterministic.
	keys := make([]string, 0, len(base.Custom))
	for k := range base.Custom {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := validate.Field("custom parameter key", k); err != nil {
			return Config{}, err
		}
		v := base.Custom[k]
		if err := validate.Value("custom parameter "+k, v); err != nil {
			return Config{}, err
		}
		p[k] = v
	}

	return Config{
		Feature: feature,
		APIKey:  base.APIKey,
		Company: base.Company,
		UserID:  base.UserID,
		URL:     rawURL,
		Payload: p,
	}, nil
}

func encodeSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "%20")
}
