package devserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kinestex/kinestex-go/internal/content"
	"github.com/kinestex/kinestex-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = Credentials{APIKey: "dev-key", Company: "Acme"}

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(New(DefaultStore(), testCreds, log))
	t.Cleanup(ts.Close)
	return ts
}

func newTestClient(ts *httptest.Server) *content.Client {
	return content.NewClient(testCreds.APIKey, testCreds.Company, content.WithBaseURL(ts.URL+"/api/v1"))
}

// TestWorkoutByTitle verifies a title selector with a space resolves and the
// nested sequence comes back with rest folded into the following exercise.
func TestWorkoutByTitle(t *testing.T) {
	c := newTestClient(newTestAPI(t))

	w, err := c.Workout(context.Background(), "Fitness Lite")
	require.NoError(t, err)
	assert.Equal(t, "9zE1kzWoGSwFfNWbxyfb", w.ID)
	assert.Equal(t, "https://cdn.kinestex.test/fitness-lite.webp", w.ImgURL)

	var titles []string
	var rests []int
	for _, ex := range w.Sequence {
		titles = append(titles, ex.Title)
		rests = append(rests, ex.RestDuration)
	}
	assert.Equal(t, []string{"Squats", "Crunch", "Lunges", "Lunges"}, titles)
	assert.Equal(t, []int{0, 15, 20, 0}, rests)
}

func TestWorkoutsCategoryFilter(t *testing.T) {
	c := newTestClient(newTestAPI(t))

	page, err := c.Workouts(context.Background(), content.Filter{Category: "Cardio"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Cardio Blast", page.Items[0].Title)
	assert.Empty(t, page.LastDocID)
}

func TestPlansCategoryUsesRatings(t *testing.T) {
	c := newTestClient(newTestAPI(t))
	ctx := context.Background()

	page, err := c.Plans(ctx, content.Filter{Category: "Strength"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Items[0].Category.Levels["Cardio"])

	page, err = c.Plans(ctx, content.Filter{Category: "Rehabilitation"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestExercisesBodyPartFilter(t *testing.T) {
	c := newTestClient(newTestAPI(t))

	page, err := c.Exercises(context.Background(), content.Filter{BodyParts: []models.BodyPart{models.Abs}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Crunch", page.Items[0].Title)
	assert.Equal(t, models.DefaultRestDuration, page.Items[0].RestDuration)
}

func TestExercisesPagination(t *testing.T) {
	c := newTestClient(newTestAPI(t))
	ctx := context.Background()

	first, err := c.Exercises(ctx, content.Filter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "ZVMeLsaXQ9Tzr5JYXg29", first.LastDocID)

	second, err := c.Exercises(ctx, content.Filter{Limit: 2, LastDocID: first.LastDocID})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "Lunges", second.Items[0].Title)
	assert.Empty(t, second.LastDocID)
}

func TestSelectorWithFilterReturnsEnvelope(t *testing.T) {
	c := newTestClient(newTestAPI(t))

	res, err := c.Fetch(context.Background(), content.Request{
		Type:      content.TypeWorkout,
		ID:        "Cardio Blast",
		BodyParts: []models.BodyPart{models.FullBody},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Workouts)
	require.Len(t, res.Workouts.Items, 1)
}

func TestNotFoundEnvelope(t *testing.T) {
	c := newTestClient(newTestAPI(t))

	_, err := c.Plan(context.Background(), "missing")
	var apiErr *content.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "not found")
}

func TestCredentialAuth(t *testing.T) {
	ts := newTestAPI(t)

	tests := []struct {
		name    string
		key     string
		company string
		status  int
		msg     string
	}{
		{"missing key", "", "Acme", http.StatusUnauthorized, "missing API key"},
		{"missing company", "dev-key", "", http.StatusUnauthorized, "missing company name"},
		{"wrong key", "nope", "Acme", http.StatusForbidden, "invalid API key"},
		{"wrong company", "dev-key", "Other", http.StatusForbidden, "unknown company"},
		{"ok", "dev-key", "Acme", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/workouts", nil)
			require.NoError(t, err)
			if tt.key != "" {
				req.Header.Set(HeaderAPIKey, tt.key)
			}
			if tt.company != "" {
				req.Header.Set(HeaderCompany, tt.company)
			}
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.msg != "" {
				var body map[string]string
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.msg, body["error"])
			}
		})
	}
}

func TestBadQueryParams(t *testing.T) {
	ts := newTestAPI(t)

	for _, path := range []string{
		"/api/v1/exercises?lastDocId=nope",
		"/api/v1/exercises?limit=0",
		"/api/v1/exercises?limit=abc",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(HeaderAPIKey, testCreds.APIKey)
		req.Header.Set(HeaderCompany, testCreds.Company)
		rec := httptest.NewRecorder()
		ts.Config.Handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := New(DefaultStore(), testCreds, slog.New(slog.NewTextHandler(io.Discard, nil)))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/workouts", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
