package content

import (
	"context"
	"fmt"

	"github.com/kinestex/kinestex-go/internal/models"
)

// Filter narrows a collection fetch.
type Filter struct {
	Category  string
	BodyParts []models.BodyPart
	LastDocID string
	Limit     int
	Lang      string
}

func (f Filter) request(t Type) Request {
	return Request{
		Type:      t,
		Category:  f.Category,
		BodyParts: f.BodyParts,
		LastDocID: f.LastDocID,
		Limit:     f.Limit,
		Lang:      f.Lang,
	}
}

func single(t Type, idOrTitle string) (Request, error) {
	if idOrTitle == "" {
		return Request{}, fmt.Errorf("%w: empty %s selector", ErrInvalidRequest, t)
	}
	return Request{Type: t, ID: idOrTitle}, nil
}

// Workout fetches one workout by id or title.
func (c *Client) Workout(ctx context.Context, idOrTitle string) (*models.Workout, error) {
	req, err := single(TypeWorkout, idOrTitle)
	if err != nil {
		return nil, err
	}
	res, err := c.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	return res.Workout, nil
}

// Workouts lists workouts.
func (c *Client) Workouts(ctx context.Context, f Filter) (*models.Page[models.Workout], error) {
	res, err := c.Fetch(ctx, f.request(TypeWorkout))
	if err != nil {
		return nil, err
	}
	return res.Workouts, nil
}

// Plan fetches one plan by id or title.
func (c *Client) Plan(ctx context.Context, idOrTitle string) (*models.Plan, error) {
	req, err := single(TypePlan, idOrTitle)
	if err != nil {
		return nil, err
	}
	res, err := c.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	return res.Plan, nil
}

func (c *Client) Plans(ctx context.Context, f Filter) (*models.Page[models.Plan], error) {
	res, err := c.Fetch(ctx, f.request(TypePlan))
	if err != nil {
		return nil, err
	}
	return res.Plans, nil
}

// Exercise fetches one exercise by id or title. Standalone exercises carry
// the default rest duration.
func (c *Client) Exercise(ctx context.Context, idOrTitle string) (*models.Exercise, error) {
	req, err := single(TypeExercise, idOrTitle)
	if err != nil {
		return nil, err
	}
	res, err := c.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	return res.Exercise, nil
}

func (c *Client) Exercises(ctx context.Context, f Filter) (*models.Page[models.Exercise], error) {
	res, err := c.Fetch(ctx, f.request(TypeExercise))
	if err != nil {
		return nil, err
	}
	return res.Exercises, nil
}
