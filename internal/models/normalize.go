package models

const (
	// MissingID replaces an absent document id.
	MissingID = "NA"
	// DefaultDifficulty replaces an absent exercise difficulty.
	DefaultDifficulty = "Medium"
	// DefaultRestDuration is the rest marker countdown when none is given,
	// and the rest duration of a standalone exercise.
	DefaultRestDuration = 10
	// RestTitle marks a sequence item that is a pause, not an exercise.
	RestTitle = "Rest"
)

// NormalizeExercise maps a raw exercise with the given rest duration.
func NormalizeExercise(raw RawExercise, rest int) Exercise {
	difficulty := DefaultDifficulty
	if raw.DifficultyLevel != nil && *raw.DifficultyLevel != "" {
		difficulty = *raw.DifficultyLevel
	}
	return Exercise{
		ID:               idOrMissing(raw.ID),
		Title:            raw.Title,
		ThumbnailURL:     raw.ThumbnailURL,
		VideoURL:         raw.VideoURL,
		WorkoutCountdown: raw.Countdown.Ptr(),
		WorkoutReps:      raw.Repeats.Ptr(),
		AverageReps:      raw.AverageReps.Ptr(),
		AverageCountdown: raw.AverageCountdown.Ptr(),
		RestDuration:     rest,
		AverageCalories:  raw.AverageCalories.Ptr(),
		BodyParts:        raw.BodyParts.Slice(),
		Description:      raw.Description,
		DifficultyLevel:  difficulty,
		CommonMistakes:   raw.CommonMistakes,
		Steps:            raw.Steps.Slice(),
		Tips:             raw.Tips,
	}
}

// NormalizeSequence flattens a possibly nested raw sequence in order. A
// "Rest" item is dropped and its countdown (default 10) becomes the rest
// duration of the next real exercise; the carried value is consumed once.
func NormalizeSequence(items []RawExercise) []Exercise {
	out := []Exercise{}
	rest := 0
	var walk func([]RawExercise)
	walk = func(items []RawExercise) {
		for _, item := range items {
			switch {
			case len(item.Sequence) > 0:
				walk(item.Sequence)
			case item.Title == RestTitle:
				rest = item.Countdown.Or(DefaultRestDuration)
			default:
				out = append(out, NormalizeExercise(item, rest))
				rest = 0
			}
		}
	}
	walk(items)
	return out
}

// NormalizeWorkout renames workout_desc_img and calories and flattens the
// sequence.
func NormalizeWorkout(raw RawWorkout) Workout {
	return Workout{
		ID:              idOrMissing(raw.ID),
		Title:           raw.Title,
		ImgURL:          raw.WorkoutDescImg,
		Category:        raw.Category,
		Description:     raw.Description,
		TotalMinutes:    raw.TotalMinutes.Ptr(),
		TotalCalories:   raw.Calories.Ptr(),
		BodyParts:       raw.BodyParts.Slice(),
		DifficultyLevel: raw.DifficultyLevel,
		Sequence:        NormalizeSequence(raw.Sequence),
	}
}

func NormalizePlan(raw RawPlan) Plan {
	ratings := make(map[string]int, len(raw.Category.Levels))
	for k, v := range raw.Category.Levels {
		ratings[k] = int(v)
	}
	levels := make(map[string]PlanLevel, len(raw.Levels))
	for name, lvl := range raw.Levels {
		days := make(map[string]PlanDay, len(lvl.Days))
		for dayName, day := range lvl.Days {
			days[dayName] = normalizePlanDay(day)
		}
		levels[name] = PlanLevel{Title: lvl.Title, Description: lvl.Description, Days: days}
	}
	return Plan{
		ID:     idOrMissing(raw.ID),
		ImgURL: raw.ImgURL,
		Title:  raw.Title,
		Category: PlanCategory{
			Description: raw.Category.Description,
			Levels:      ratings,
		},
		Levels: levels,
	}
}

func normalizePlanDay(raw RawPlanDay) PlanDay {
	day := PlanDay{Title: raw.Title, Description: raw.Description}
	if raw.Workouts != nil {
		day.Workouts = make([]WorkoutSummary, 0, len(raw.Workouts))
		for _, w := range raw.Workouts {
			day.Workouts = append(day.Workouts, WorkoutSummary{
				ID:           idOrMissing(w.ID),
				ImgURL:       w.ImgURL,
				Title:        w.Title,
				Calories:     w.Calories.Ptr(),
				TotalMinutes: w.TotalMinutes.Or(0),
			})
		}
	}
	return day
}

// NormalizePage maps every item of a raw collection with fn.
func NormalizePage[R, T any](raw RawPage[R], fn func(R) T) Page[T] {
	items := make([]T, 0, len(raw.Items))
	for _, r := range raw.Items {
		items = append(items, fn(r))
	}
	return Page[T]{Items: items, LastDocID: raw.LastDocID}
}

// StandaloneExercise normalizes an exercise fetched on its own.
func StandaloneExercise(raw RawExercise) Exercise {
	return NormalizeExercise(raw, DefaultRestDuration)
}

func idOrMissing(id *string) string {
	if id == nil || *id == "" {
		return MissingID
	}
	return *id
}
