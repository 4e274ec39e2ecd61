package content

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/kinestex/kinestex-go/internal/models"
	"github.com/kinestex/kinestex-go/internal/validate"
)

// Type selects the REST collection.
type Type string

const (
	TypeWorkout  Type = "workout"
	TypePlan     Type = "plan"
	TypeExercise Type = "exercise"
)

// ParseType accepts the singular or plural spelling.
func ParseType(s string) (Type, error) {
	switch s {
	case "workout", "workouts":
		return TypeWorkout, nil
	case "plan", "plans":
		return TypePlan, nil
	case "exercise", "exercises":
		return TypeExercise, nil
	default:
		return "", fmt.Errorf("%w: unknown content type %q", ErrInvalidRequest, s)
	}
}

func (t Type) path() string {
	return string(t) + "s"
}

// DefaultLang is sent when Request.Lang is empty.
const DefaultLang = "en"

// Request describes one fetch. ID wins over Title when both are set. Setting
// Category or BodyParts always selects the collection response shape, even
// with a selector.
type Request struct {
	Type      Type
	ID        string
	Title     string
	Category  string
	BodyParts []models.BodyPart
	LastDocID string
	Limit     int
	Lang      string
}

// Selector returns the path segment identifying one document, if any.
func (r Request) Selector() string {
	if r.ID != "" {
		return r.ID
	}
	return r.Title
}

// Collection reports whether the response is the {items, lastDocId} envelope.
func (r Request) Collection() bool {
	if r.Category != "" || len(r.BodyParts) > 0 {
		return true
	}
	return r.Selector() == ""
}

func (r Request) validate() error {
	switch r.Type {
	case TypeWorkout, TypePlan, TypeExercise:
	default:
		return fmt.Errorf("%w: unknown content type %q", ErrInvalidRequest, r.Type)
	}
	if r.Limit < 0 {
		return fmt.Errorf("%w: negative limit %d", ErrInvalidRequest, r.Limit)
	}
	return validate.Fields(
		"id", r.ID,
		"title", r.Title,
		"category", r.Category,
		"lastDocId", r.LastDocID,
		"lang", r.Lang,
	)
}

func (r Request) path() string {
	p := "/" + r.Type.path()
	if sel := r.Selector(); sel != "" {
		p += "/" + url.PathEscape(sel)
	}
	return p
}

func (r Request) query() url.Values {
	q := url.Values{}
	lang := r.Lang
	if lang == "" {
		lang = DefaultLang
	}
	q.Set("lang", lang)
	if r.Category != "" {
		q.Set("category", r.Category)
	}
	if r.LastDocID != "" {
		q.Set("lastDocId", r.LastDocID)
	}
	if len(r.BodyParts) > 0 {
		q.Set("body_parts", models.JoinBodyParts(r.BodyParts))
	}
	if r.Limit > 0 {
		q.Set("limit", strconv.Itoa(r.Limit))
	}
	return q
}
