package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned for inbound bodies that are not a JSON object.
	ErrMalformed = errors.New("bridge: message is not a JSON object")
	// ErrUntyped is returned when the object has no string "type" field.
	ErrUntyped = errors.New("bridge: message has no type")
)

// Kind classifies an inbound event. Values are the canonical wire types.
type Kind string

const (
	KindLaunched            Kind = "kinestex_launched"
	KindWorkoutFinished     Kind = "finished_workout"
	KindError               Kind = "error_occured"
	KindExerciseCompleted   Kind = "exercise_completed"
	KindExited              Kind = "exit_kinestex"
	KindWorkoutOpened       Kind = "workout_opened"
	KindWorkoutStarted      Kind = "workout_started"
	KindPlanUnlocked        Kind = "plan_unlocked"
	KindRepCounted          Kind = "successful_repeat"
	KindMistake             Kind = "mistake"
	KindLeftCameraFrame     Kind = "left_camera_frame"
	KindReturnedCameraFrame Kind = "returned_camera_frame"
	KindWorkoutOverview     Kind = "workout_overview"
	KindExerciseOverview    Kind = "exercise_overview"
	KindWorkoutCompleted    Kind = "workout_completed"

	// KindCustom is the fallback for any type outside the vocabulary.
	KindCustom Kind = "custom"
)

var vocabulary = map[string]Kind{
	string(KindLaunched):            KindLaunched,
	string(KindWorkoutFinished):     KindWorkoutFinished,
	string(KindError):               KindError,
	"error_occurred":                KindError,
	string(KindExerciseCompleted):   KindExerciseCompleted,
	string(KindExited):              KindExited,
	string(KindWorkoutOpened):       KindWorkoutOpened,
	string(KindWorkoutStarted):      KindWorkoutStarted,
	string(KindPlanUnlocked):        KindPlanUnlocked,
	string(KindRepCounted):          KindRepCounted,
	string(KindMistake):             KindMistake,
	string(KindLeftCameraFrame):     KindLeftCameraFrame,
	string(KindReturnedCameraFrame): KindReturnedCameraFrame,
	string(KindWorkoutOverview):     KindWorkoutOverview,
	string(KindExerciseOverview):    KindExerciseOverview,
	string(KindWorkoutCompleted):    KindWorkoutCompleted,
}

// legacyDataKey holds the payload in the older inbound shape.
const legacyDataKey = "data"

// Event is one typed inbound message. Data is the full decoded object,
// including "type", so fields unknown today still reach the caller.
type Event struct {
	Kind Kind
	// Type is the wire type as received; it differs from Kind for aliases
	// and for KindCustom.
	Type string
	Data map[string]any
}

// Value looks up key in the flattened shape first, then inside a legacy
// "data" object.
func (e Event) Value(key string) (any, bool) {
	if v, ok := e.Data[key]; ok {
		return v, true
	}
	if nested, ok := e.Data[legacyDataKey].(map[string]any); ok {
		v, ok := nested[key]
		return v, ok
	}
	return nil, false
}

// Legacy returns the "data" field of the older protocol shape verbatim.
func (e Event) Legacy() (any, bool) {
	v, ok := e.Data[legacyDataKey]
	return v, ok
}

// Message returns the human-readable text an event carries, if any:
// "message" in either shape, else a legacy string "data".
func (e Event) Message() string {
	if v, ok := e.Value("message"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	if v, ok := e.Legacy(); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Classify decodes an inbound body and maps its type onto the vocabulary.
// Unknown types yield KindCustom; only malformed or untyped bodies fail.
func Classify(body []byte) (Event, error) {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if obj == nil {
		return Event{}, ErrMalformed
	}
	typ, ok := obj["type"].(string)
	if !ok {
		return Event{}, ErrUntyped
	}
	kind, ok := vocabulary[typ]
	if !ok {
		kind = KindCustom
	}
	return Event{Kind: kind, Type: typ, Data: obj}, nil
}

func errorEvent(message string) Event {
	return Event{
		Kind: KindError,
		Type: string(KindError),
		Data: map[string]any{"type": string(KindError), "message": message},
	}
}
