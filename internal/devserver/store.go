package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/kinestex/kinestex-go/internal/models"
)

// Fixture file names read by LoadStore.
const (
	WorkoutsFile  = "workouts.json"
	PlansFile     = "plans.json"
	ExercisesFile = "exercises.json"
)

// Store holds raw content documents in API order. It is read-only once built.
type Store struct {
	Workouts  []models.RawWorkout
	Plans     []models.RawPlan
	Exercises []models.RawExercise
}

// LoadStore reads fixture files from dir. A missing file falls back to the
// built-in documents of that kind; a malformed file is an error.
func LoadStore(dir string) (*Store, error) {
	def := DefaultStore()
	s := &Store{}
	var err error
	if s.Workouts, err = loadFixture(filepath.Join(dir, WorkoutsFile), def.Workouts); err != nil {
		return nil, err
	}
	if s.Plans, err = loadFixture(filepath.Join(dir, PlansFile), def.Plans); err != nil {
		return nil, err
	}
	if s.Exercises, err = loadFixture(filepath.Join(dir, ExercisesFile), def.Exercises); err != nil {
		return nil, err
	}
	s.assignIDs()
	return s, nil
}

func loadFixture[T any](path string, fallback []T) ([]T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fallback, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", filepath.Base(path), err)
	}
	return out, nil
}

// assignIDs gives every top-level document without an id a random one, so
// that cursors can point at it.
func (s *Store) assignIDs() {
	for i := range s.Workouts {
		ensureID(&s.Workouts[i].ID)
	}
	for i := range s.Plans {
		ensureID(&s.Plans[i].ID)
	}
	for i := range s.Exercises {
		ensureID(&s.Exercises[i].ID)
	}
}

func ensureID(id **string) {
	if *id == nil || **id == "" {
		v := uuid.NewString()
		*id = &v
	}
}

func docID(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

// query narrows a collection listing.
type query struct {
	selector  string
	category  string
	bodyParts []string
}

func (q query) matchSelector(id *string, title string) bool {
	return q.selector == "" || docID(id) == q.selector || title == q.selector
}

func (q query) matchBodyParts(parts models.FlexStrings) bool {
	if len(q.bodyParts) == 0 {
		return true
	}
	for _, want := range q.bodyParts {
		for _, have := range parts {
			if strings.EqualFold(strings.TrimSpace(have), want) {
				return true
			}
		}
	}
	return false
}

func (s *Store) findWorkout(sel string) (models.RawWorkout, bool) {
	for _, w := range s.Workouts {
		if docID(w.ID) == sel || w.Title == sel {
			return w, true
		}
	}
	return models.RawWorkout{}, false
}

func (s *Store) findPlan(sel string) (models.RawPlan, bool) {
	for _, p := range s.Plans {
		if docID(p.ID) == sel || p.Title == sel {
			return p, true
		}
	}
	return models.RawPlan{}, false
}

func (s *Store) findExercise(sel string) (models.RawExercise, bool) {
	for _, e := range s.Exercises {
		if docID(e.ID) == sel || e.Title == sel {
			return e, true
		}
	}
	return models.RawExercise{}, false
}

func (s *Store) listWorkouts(q query) []models.RawWorkout {
	var out []models.RawWorkout
	for _, w := range s.Workouts {
		if !q.matchSelector(w.ID, w.Title) || !q.matchBodyParts(w.BodyParts) {
			continue
		}
		if q.category != "" && (w.Category == nil || !strings.EqualFold(*w.Category, q.category)) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// listPlans treats a plan as belonging to every category it rates above zero.
func (s *Store) listPlans(q query) []models.RawPlan {
	var out []models.RawPlan
	for _, p := range s.Plans {
		if !q.matchSelector(p.ID, p.Title) {
			continue
		}
		if q.category != "" && !ratedIn(p.Category.Levels, q.category) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func ratedIn(levels map[string]models.FlexInt, category string) bool {
	for name, v := range levels {
		if strings.EqualFold(name, category) && v > 0 {
			return true
		}
	}
	return false
}

// listExercises ignores the category filter; exercises carry none.
func (s *Store) listExercises(q query) []models.RawExercise {
	var out []models.RawExercise
	for _, e := range s.Exercises {
		if q.matchSelector(e.ID, e.Title) && q.matchBodyParts(e.BodyParts) {
			out = append(out, e)
		}
	}
	return out
}

var errUnknownCursor = errors.New("unknown lastDocId")

// paginate returns the items after cursor, at most limit of them, and the
// cursor for the next page or "" when the listing is exhausted.
func paginate[T any](items []T, id func(T) string, cursor string, limit int) ([]T, string, error) {
	start := 0
	if cursor != "" {
		start = -1
		for i, it := range items {
			if id(it) == cursor {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return nil, "", errUnknownCursor
		}
	}
	end := min(start+limit, len(items))
	page := append([]T{}, items[start:end]...)
	next := ""
	if end < len(items) && len(page) > 0 {
		next = id(page[len(page)-1])
	}
	return page, next, nil
}
