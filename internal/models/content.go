// Package models holds the content API's raw document shapes and the stable
// public shapes they normalize into.
package models

type Exercise struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	ThumbnailURL     string   `json:"thumbnail_URL"`
	VideoURL         string   `json:"video_URL"`
	WorkoutCountdown *int     `json:"workout_countdown,omitempty"`
	WorkoutReps      *int     `json:"workout_reps,omitempty"`
	AverageReps      *int     `json:"average_reps,omitempty"`
	AverageCountdown *int     `json:"average_countdown,omitempty"`
	RestDuration     int      `json:"rest_duration"`
	AverageCalories  *float64 `json:"average_calories,omitempty"`
	BodyParts        []string `json:"body_parts"`
	Description      string   `json:"description"`
	DifficultyLevel  string   `json:"dif_level"`
	CommonMistakes   string   `json:"common_mistakes"`
	Steps            []string `json:"steps"`
	Tips             string   `json:"tips"`
}

type Workout struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	ImgURL          string     `json:"img_URL"`
	Category        *string    `json:"category,omitempty"`
	Description     string     `json:"description"`
	TotalMinutes    *int       `json:"total_minutes,omitempty"`
	TotalCalories   *float64   `json:"total_calories,omitempty"`
	BodyParts       []string   `json:"body_parts"`
	DifficultyLevel *string    `json:"dif_level,omitempty"`
	Sequence        []Exercise `json:"sequence"`
}

type Plan struct {
	ID       string               `json:"id"`
	ImgURL   string               `json:"img_URL"`
	Title    string               `json:"title"`
	Category PlanCategory         `json:"category"`
	Levels   map[string]PlanLevel `json:"levels"`
}

// PlanCategory describes a plan and rates it per training dimension
// (e.g. "Strength": 3).
type PlanCategory struct {
	Description string         `json:"description"`
	Levels      map[string]int `json:"levels"`
}

type PlanLevel struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Days        map[string]PlanDay `json:"days"`
}

type PlanDay struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Workouts    []WorkoutSummary `json:"workouts,omitempty"`
}

type WorkoutSummary struct {
	ID           string   `json:"id"`
	ImgURL       string   `json:"imgURL"`
	Title        string   `json:"title"`
	Calories     *float64 `json:"calories,omitempty"`
	TotalMinutes int      `json:"total_minutes"`
}

// Page is a collection result. LastDocID is opaque; pass it back to fetch
// the next page.
type Page[T any] struct {
	Items     []T    `json:"items"`
	LastDocID string `json:"lastDocId"`
}
