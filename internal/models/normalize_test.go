package models

import (
	"encoding/json"
	"testing"
)

// TestNormalizeSequenceFoldsRest verifies that a "Rest" item never becomes an
// exercise and that its countdown lands on the following exercise only.
func TestNormalizeSequenceFoldsRest(t *testing.T) {
	raw := `[
		{"title":"Squats","countdown":20,"repeats":15},
		{"title":"Rest","countdown":15},
		{"title":"Lunges","countdown":30},
		{"title":"Burpees"}
	]`
	var items []RawExercise
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		t.Fatal(err)
	}

	got := NormalizeSequence(items)
	if len(got) != 3 {
		t.Fatalf("got %d exercises, want 3", len(got))
	}
	want := []struct {
		title string
		rest  int
	}{
		{"Squats", 0},
		{"Lunges", 15},
		{"Burpees", 0},
	}
	for i, w := range want {
		if got[i].Title != w.title {
			t.Errorf("[%d] title = %q, want %q", i, got[i].Title, w.title)
		}
		if got[i].RestDuration != w.rest {
			t.Errorf("[%d] rest_duration = %d, want %d", i, got[i].RestDuration, w.rest)
		}
	}
	if got[0].WorkoutReps == nil || *got[0].WorkoutReps != 15 {
		t.Errorf("workout_reps = %v, want 15", got[0].WorkoutReps)
	}
	if got[0].WorkoutCountdown == nil || *got[0].WorkoutCountdown != 20 {
		t.Errorf("workout_countdown = %v, want 20", got[0].WorkoutCountdown)
	}
}

// TestNormalizeSequenceRestDefault verifies a rest marker without a countdown
// contributes the default of 10 seconds.
func TestNormalizeSequenceRestDefault(t *testing.T) {
	items := []RawExercise{{Title: "Rest"}, {Title: "Plank"}}
	got := NormalizeSequence(items)
	if len(got) != 1 || got[0].RestDuration != DefaultRestDuration {
		t.Fatalf("got %+v, want one exercise with rest %d", got, DefaultRestDuration)
	}
}

// TestNormalizeSequenceNested verifies nested sequence blocks are flattened in
// order and that a trailing rest inside a block carries to the next block.
func TestNormalizeSequenceNested(t *testing.T) {
	raw := `[
		{"title":"Warm Up","sequence":[
			{"title":"Jumping Jack"},
			{"title":"Rest","countdown":"5"}
		]},
		{"title":"Circuit","sequence":[
			{"title":"Push Ups"},
			{"title":"Rest","countdown":20},
			{"title":"Sit Ups"}
		]}
	]`
	var items []RawExercise
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		t.Fatal(err)
	}
	got := NormalizeSequence(items)

	titles := make([]string, len(got))
	for i, e := range got {
		titles[i] = e.Title
	}
	wantTitles := []string{"Jumping Jack", "Push Ups", "Sit Ups"}
	if len(titles) != len(wantTitles) {
		t.Fatalf("titles = %v, want %v", titles, wantTitles)
	}
	for i := range wantTitles {
		if titles[i] != wantTitles[i] {
			t.Errorf("titles[%d] = %q, want %q", i, titles[i], wantTitles[i])
		}
	}
	if got[1].RestDuration != 5 {
		t.Errorf("Push Ups rest = %d, want 5", got[1].RestDuration)
	}
	if got[2].RestDuration != 20 {
		t.Errorf("Sit Ups rest = %d, want 20", got[2].RestDuration)
	}
}

// TestNormalizeSequenceEmpty verifies an absent sequence yields an empty,
// non-nil list so it encodes as [].
func TestNormalizeSequenceEmpty(t *testing.T) {
	got := NormalizeSequence(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("got %#v, want empty slice", got)
	}
}

// TestNormalizeExerciseDefaults verifies the defaults for missing raw fields.
func TestNormalizeExerciseDefaults(t *testing.T) {
	ex := StandaloneExercise(RawExercise{Title: "Squats"})
	if ex.ID != MissingID {
		t.Errorf("id = %q, want %q", ex.ID, MissingID)
	}
	if ex.DifficultyLevel != DefaultDifficulty {
		t.Errorf("dif_level = %q, want %q", ex.DifficultyLevel, DefaultDifficulty)
	}
	if ex.RestDuration != DefaultRestDuration {
		t.Errorf("rest_duration = %d, want %d", ex.RestDuration, DefaultRestDuration)
	}
	if ex.BodyParts == nil || ex.Steps == nil {
		t.Error("list fields must be non-nil")
	}
	if ex.AverageReps != nil || ex.AverageCalories != nil {
		t.Error("optional averages must stay nil")
	}
}

// TestNormalizeWorkoutRenamesFields verifies workout_desc_img -> img_URL and
// calories -> total_calories, including numeric strings from the API.
func TestNormalizeWorkoutRenamesFields(t *testing.T) {
	raw := `{
		"id":"w1",
		"title":"Fitness Lite",
		"workout_desc_img":"https://img.test/w1.png",
		"category":"Fitness",
		"total_minutes":"23",
		"calories":120.5,
		"body_parts":"Abs, Glutes",
		"sequence":[{"id":"e1","title":"Squats","dif_level":"Easy","steps":["Stand","Sit"]}]
	}`
	var rw RawWorkout
	if err := json.Unmarshal([]byte(raw), &rw); err != nil {
		t.Fatal(err)
	}
	w := NormalizeWorkout(rw)

	if w.ImgURL != "https://img.test/w1.png" {
		t.Errorf("img_URL = %q", w.ImgURL)
	}
	if w.TotalCalories == nil || *w.TotalCalories != 120.5 {
		t.Errorf("total_calories = %v, want 120.5", w.TotalCalories)
	}
	if w.TotalMinutes == nil || *w.TotalMinutes != 23 {
		t.Errorf("total_minutes = %v, want 23", w.TotalMinutes)
	}
	if len(w.BodyParts) != 2 || w.BodyParts[1] != "Glutes" {
		t.Errorf("body_parts = %v", w.BodyParts)
	}
	if w.DifficultyLevel != nil {
		t.Errorf("dif_level = %v, want nil", *w.DifficultyLevel)
	}
	if len(w.Sequence) != 1 || w.Sequence[0].DifficultyLevel != "Easy" || len(w.Sequence[0].Steps) != 2 {
		t.Errorf("sequence = %+v", w.Sequence)
	}

	out, err := json.Marshal(w)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded["img_URL"]; !ok {
		t.Error("public JSON missing img_URL")
	}
	if _, ok := decoded["total_calories"]; !ok {
		t.Error("public JSON missing total_calories")
	}
}

// TestNormalizePlan verifies nested levels/days and summary defaults.
func TestNormalizePlan(t *testing.T) {
	raw := `{
		"id":"p1",
		"img_URL":"https://img.test/p1.png",
		"title":"Full Cardio",
		"category":{"description":"Cardio focus","levels":{"Cardio":5,"Strength":"2"}},
		"levels":{
			"Level 1":{"title":"Start","description":"Easy week","days":{
				"Day 1":{"title":"Legs","description":"","workouts":[{"title":"Leg Day","imgURL":"x","total_minutes":20}]},
				"Day 2":{"title":"Rest day","description":"Recover"}
			}}
		}
	}`
	var rp RawPlan
	if err := json.Unmarshal([]byte(raw), &rp); err != nil {
		t.Fatal(err)
	}
	p := NormalizePlan(rp)

	if p.Category.Levels["Strength"] != 2 || p.Category.Levels["Cardio"] != 5 {
		t.Errorf("category levels = %v", p.Category.Levels)
	}
	day1 := p.Levels["Level 1"].Days["Day 1"]
	if len(day1.Workouts) != 1 {
		t.Fatalf("day 1 workouts = %d, want 1", len(day1.Workouts))
	}
	if day1.Workouts[0].ID != MissingID || day1.Workouts[0].TotalMinutes != 20 {
		t.Errorf("summary = %+v", day1.Workouts[0])
	}
	if p.Levels["Level 1"].Days["Day 2"].Workouts != nil {
		t.Error("day without workouts must keep a nil list")
	}
}

// TestNormalizePage verifies the cursor is carried through unchanged.
func TestNormalizePage(t *testing.T) {
	raw := RawPage[RawWorkout]{Items: []RawWorkout{{Title: "A"}, {Title: "B"}}, LastDocID: "cursor-9"}
	page := NormalizePage(raw, NormalizeWorkout)
	if len(page.Items) != 2 || page.LastDocID != "cursor-9" {
		t.Fatalf("page = %+v", page)
	}
}
