package devserver

import "github.com/kinestex/kinestex-go/internal/models"

func str(s string) *string { return &s }

func num(n int) *models.FlexInt {
	v := models.FlexInt(n)
	return &v
}

func kcal(f float64) *models.FlexFloat {
	v := models.FlexFloat(f)
	return &v
}

func rest(seconds int) models.RawExercise {
	return models.RawExercise{Title: models.RestTitle, Countdown: num(seconds)}
}

// DefaultStore returns the built-in documents served when no fixture
// directory is configured.
func DefaultStore() *Store {
	squats := models.RawExercise{
		ID:               str("jz73VFlUyZ9nyd64OjRb"),
		Title:            "Squats",
		ThumbnailURL:     "https://cdn.kinestex.test/squats.webp",
		VideoURL:         "https://cdn.kinestex.test/squats.mp4",
		Countdown:        num(20),
		Repeats:          num(15),
		AverageReps:      num(12),
		AverageCountdown: num(25),
		AverageCalories:  kcal(5.5),
		BodyParts:        models.FlexStrings{"Quads", "Glutes", "Hamstrings"},
		Description:      "Lower the hips until the thighs are parallel to the floor.",
		DifficultyLevel:  str("Easy"),
		CommonMistakes:   "Knees caving inward",
		Steps:            models.FlexStrings{"Stand with feet shoulder-width apart", "Lower the hips", "Return to standing"},
		Tips:             "Keep the chest up.",
	}
	crunch := models.RawExercise{
		ID:        str("ZVMeLsaXQ9Tzr5JYXg29"),
		Title:     "Crunch",
		Countdown: num(30),
		BodyParts: models.FlexStrings{"Abs"},
		Steps:     models.FlexStrings{"Lie on your back", "Curl the shoulders up"},
	}
	lunges := models.RawExercise{
		ID:        str("gJGOiZhCvJrhEP7sTy78"),
		Title:     "Lunges",
		Repeats:   num(10),
		BodyParts: models.FlexStrings{"Quads", "Glutes"},
	}

	return &Store{
		Workouts: []models.RawWorkout{
			{
				ID:              str("9zE1kzWoGSwFfNWbxyfb"),
				Title:           "Fitness Lite",
				WorkoutDescImg:  "https://cdn.kinestex.test/fitness-lite.webp",
				Category:        str("Fitness"),
				Description:     "A short full body session.",
				TotalMinutes:    num(12),
				Calories:        kcal(80),
				BodyParts:       models.FlexStrings{"Quads", "Glutes", "Abs"},
				DifficultyLevel: str("Easy"),
				Sequence: []models.RawExercise{
					squats,
					rest(15),
					{Sequence: []models.RawExercise{crunch, rest(20), lunges}},
					lunges,
				},
			},
			{
				ID:           str("Xx2fLF7Pg4xQEnCrHQCb"),
				Title:        "Cardio Blast",
				Category:     str("Cardio"),
				TotalMinutes: num(20),
				Calories:     kcal(190),
				BodyParts:    models.FlexStrings{"Full Body"},
				Sequence:     []models.RawExercise{lunges, rest(10), squats},
			},
		},
		Plans: []models.RawPlan{
			{
				ID:     str("gEOW3prwgKk3DfW4W2lz"),
				ImgURL: "https://cdn.kinestex.test/circulation.webp",
				Title:  "Circulation Booster",
				Category: models.RawPlanCategory{
					Description: "Improve blood flow",
					Levels:      map[string]models.FlexInt{"Cardio": 3, "Strength": 1, "Rehabilitation": 0},
				},
				Levels: map[string]models.RawPlanLevel{
					"1": {
						Title:       "Beginner",
						Description: "Start gently",
						Days: map[string]models.RawPlanDay{
							"1": {
								Title: "Day 1",
								Workouts: []models.RawWorkoutSummary{
									{ID: str("9zE1kzWoGSwFfNWbxyfb"), ImgURL: "https://cdn.kinestex.test/fitness-lite.webp", Title: "Fitness Lite", Calories: kcal(80), TotalMinutes: num(12)},
								},
							},
							"2": {Title: "Day 2", Description: "Rest day"},
						},
					},
				},
			},
		},
		Exercises: []models.RawExercise{squats, crunch, lunges},
	}
}
