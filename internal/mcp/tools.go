package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kinestex/kinestex-go/internal/content"
	"github.com/kinestex/kinestex-go/internal/models"
	"github.com/kinestex/kinestex-go/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

func contentTool(name, noun string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(fmt.Sprintf("Fetch %ss from KinesteX. With id or title (and no filters) returns one %s; otherwise returns a page {items, lastDocId}. Rest periods are folded into the following exercise's rest_duration.", noun, noun)),
		mcp.WithString("id", mcp.Description("Document id. Takes precedence over title.")),
		mcp.WithString("title", mcp.Description("Document title, e.g. 'Fitness Lite'.")),
		mcp.WithString("category", mcp.Description("Category filter. Forces a paginated result.")),
		mcp.WithString("body_parts", mcp.Description("Comma-separated body parts (see kinestex://body_parts). Forces a paginated result.")),
		mcp.WithString("last_doc_id", mcp.Description("Cursor from a previous page's lastDocId.")),
		mcp.WithNumber("limit", mcp.Description("Page size.")),
		mcp.WithString("lang", mcp.Description("Content language. Defaults to 'en'.")),
	)
}

var (
	toolGetWorkout  = contentTool("get_workout", "workout")
	toolGetPlan     = contentTool("get_plan", "plan")
	toolGetExercise = contentTool("get_exercise", "exercise")
)

// --- Tool handlers ---

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.fetch(ctx, content.TypeWorkout, req)
}

func (h *handlers) getPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.fetch(ctx, content.TypePlan, req)
}

func (h *handlers) getExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.fetch(ctx, content.TypeExercise, req)
}

func (h *handlers) fetch(ctx context.Context, t content.Type, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	creq, err := buildRequest(t, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := h.src.Fetch(ctx, creq)
	if err != nil {
		h.log.Error("mcp get_"+string(t), "error", err)
		return mcp.NewToolResultError(describe(err)), nil
	}

	result, err := mcp.NewToolResultJSON(resultValue(res))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func buildRequest(t content.Type, req mcp.CallToolRequest) (content.Request, error) {
	creq := content.Request{
		Type:      t,
		ID:        req.GetString("id", ""),
		Title:     req.GetString("title", ""),
		Category:  req.GetString("category", ""),
		LastDocID: req.GetString("last_doc_id", ""),
		Limit:     req.GetInt("limit", 0),
		Lang:      req.GetString("lang", ""),
	}
	if raw := req.GetString("body_parts", ""); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			bp, ok := models.ParseBodyPart(name)
			if !ok {
				return content.Request{}, fmt.Errorf("unknown body part %q", strings.TrimSpace(name))
			}
			creq.BodyParts = append(creq.BodyParts, bp)
		}
	}
	return creq, nil
}

func describe(err error) string {
	var apiErr *content.APIError
	switch {
	case errors.Is(err, validate.ErrDisallowed), errors.Is(err, content.ErrInvalidRequest):
		return "invalid request: " + err.Error()
	case errors.As(err, &apiErr):
		return fmt.Sprintf("content API returned %d: %s", apiErr.StatusCode, apiErr.Message)
	default:
		return "fetch failed: " + err.Error()
	}
}

// resultValue returns whichever field of res is populated.
func resultValue(res *content.Result) any {
	switch {
	case res.Workout != nil:
		return res.Workout
	case res.Workouts != nil:
		return res.Workouts
	case res.Plan != nil:
		return res.Plan
	case res.Plans != nil:
		return res.Plans
	case res.Exercise != nil:
		return res.Exercise
	case res.Exercises != nil:
		return res.Exercises
	}
	return nil
}
