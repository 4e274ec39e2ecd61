package models

// Raw* types mirror the content API's JSON. Optional fields are pointers so
// that normalization can tell "absent" from zero.

// RawExercise is an exercise document, and also one item of a workout
// sequence. A sequence item may itself hold a nested Sequence block, and an
// item titled "Rest" is a rest marker rather than an exercise.
type RawExercise struct {
	ID               *string       `json:"id,omitempty"`
	Title            string        `json:"title"`
	ThumbnailURL     string        `json:"thumbnail_URL,omitempty"`
	VideoURL         string        `json:"video_URL,omitempty"`
	Countdown        *FlexInt      `json:"countdown,omitempty"`
	Repeats          *FlexInt      `json:"repeats,omitempty"`
	AverageReps      *FlexInt      `json:"average_reps,omitempty"`
	AverageCountdown *FlexInt      `json:"average_countdown,omitempty"`
	AverageCalories  *FlexFloat    `json:"average_calories,omitempty"`
	BodyParts        FlexStrings   `json:"body_parts,omitempty"`
	Description      string        `json:"description,omitempty"`
	DifficultyLevel  *string       `json:"dif_level,omitempty"`
	CommonMistakes   string        `json:"common_mistakes,omitempty"`
	Steps            FlexStrings   `json:"steps,omitempty"`
	Tips             string        `json:"tips,omitempty"`
	Sequence         []RawExercise `json:"sequence,omitempty"`
}

// RawWorkout is a workout document.
type RawWorkout struct {
	ID              *string       `json:"id,omitempty"`
	Title           string        `json:"title"`
	WorkoutDescImg  string        `json:"workout_desc_img,omitempty"`
	Category        *string       `json:"category,omitempty"`
	Description     string        `json:"description,omitempty"`
	TotalMinutes    *FlexInt      `json:"total_minutes,omitempty"`
	Calories        *FlexFloat    `json:"calories,omitempty"`
	BodyParts       FlexStrings   `json:"body_parts,omitempty"`
	DifficultyLevel *string       `json:"dif_level,omitempty"`
	Sequence        []RawExercise `json:"sequence,omitempty"`
}

// RawPlan is a plan document.
type RawPlan struct {
	ID       *string                 `json:"id,omitempty"`
	ImgURL   string                  `json:"img_URL,omitempty"`
	Title    string                  `json:"title"`
	Category RawPlanCategory         `json:"category"`
	Levels   map[string]RawPlanLevel `json:"levels,omitempty"`
}

type RawPlanCategory struct {
	Description string             `json:"description,omitempty"`
	Levels      map[string]FlexInt `json:"levels,omitempty"`
}

type RawPlanLevel struct {
	Title       string                `json:"title,omitempty"`
	Description string                `json:"description,omitempty"`
	Days        map[string]RawPlanDay `json:"days,omitempty"`
}

type RawPlanDay struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Workouts    []RawWorkoutSummary `json:"workouts,omitempty"`
}

type RawWorkoutSummary struct {
	ID           *string    `json:"id,omitempty"`
	ImgURL       string     `json:"imgURL,omitempty"`
	Title        string     `json:"title"`
	Calories     *FlexFloat `json:"calories,omitempty"`
	TotalMinutes *FlexInt   `json:"total_minutes,omitempty"`
}

// RawPage is the collection envelope.
type RawPage[T any] struct {
	Items     []T    `json:"items"`
	LastDocID string `json:"lastDocId"`
}
