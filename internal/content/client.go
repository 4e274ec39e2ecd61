// Package content fetches workouts, plans and exercises from the KinesteX
// content API and normalizes them into the public models.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kinestex/kinestex-go/internal/models"
	"github.com/kinestex/kinestex-go/internal/validate"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is the production content API.
const DefaultBaseURL = "https://admin.kinestex.com/api/v1/"

// Header names carrying the credentials.
const (
	HeaderAPIKey  = "x-api-key"
	HeaderCompany = "x-company-name"
)

// Client calls the content API. Every Fetch is one GET; nothing is cached
// or coalesced.
type Client struct {
	baseURL    string
	apiKey     string
	company    string
	lang       string
	httpClient *http.Client
	log        *slog.Logger
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLang sets the language used when a request leaves Lang empty.
func WithLang(lang string) Option {
	return func(c *Client) { c.lang = lang }
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a client for one tenant. Credentials are validated on
// every Fetch, before any request is made.
func NewClient(apiKey, company string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(DefaultBaseURL, "/"),
		apiKey:     apiKey,
		company:    company,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        slog.Default(),
		tracer:     otel.Tracer("kinestex/content"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result holds exactly one populated field, chosen by the request's type and
// response shape.
type Result struct {
	Workout   *models.Workout
	Workouts  *models.Page[models.Workout]
	Plan      *models.Plan
	Plans     *models.Page[models.Plan]
	Exercise  *models.Exercise
	Exercises *models.Page[models.Exercise]
}

// Fetch performs one request and decodes it per req.Type and
// req.Collection().
func (c *Client) Fetch(ctx context.Context, req Request) (*Result, error) {
	if err := validate.Fields("api key", c.apiKey, "company", c.company); err != nil {
		return nil, err
	}
	if req.Lang == "" {
		req.Lang = c.lang
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	ctx, span := c.tracer.Start(ctx, "content.Fetch",
		trace.WithAttributes(
			attribute.String("content.type", string(req.Type)),
			attribute.Bool("content.collection", req.Collection()),
		),
	)
	defer span.End()

	body, err := c.get(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, err
	}

	res, err := decode(req, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return nil, err
	}
	return res, nil
}

func (c *Client) get(ctx context.Context, r Request) ([]byte, error) {
	path := r.path()
	u := c.baseURL + path + "?" + r.query().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrInvalidRequest, err)
	}
	req.Header.Set(HeaderAPIKey, c.apiKey)
	req.Header.Set(HeaderCompany, c.company)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNetwork, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}
	c.log.Debug("content request", "path", path, "status", resp.StatusCode, "duration", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp.StatusCode, body)
	}
	return body, nil
}

func apiError(status int, body []byte) *APIError {
	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Message != "" {
			return &APIError{StatusCode: status, Message: env.Message}
		}
		if env.Error != "" {
			return &APIError{StatusCode: status, Message: env.Error}
		}
	}
	return &APIError{StatusCode: status, Message: fmt.Sprintf("request failed with status code %d", status)}
}

func decode(r Request, body []byte) (*Result, error) {
	collection := r.Collection()
	switch r.Type {
	case TypeWorkout:
		if collection {
			page, err := decodePage(body, "workouts", models.NormalizeWorkout)
			return &Result{Workouts: page}, err
		}
		w, err := decodeOne(body, "workout", models.NormalizeWorkout)
		return &Result{Workout: w}, err
	case TypePlan:
		if collection {
			page, err := decodePage(body, "plans", models.NormalizePlan)
			return &Result{Plans: page}, err
		}
		p, err := decodeOne(body, "plan", models.NormalizePlan)
		return &Result{Plan: p}, err
	case TypeExercise:
		if collection {
			page, err := decodePage(body, "exercises", models.StandaloneExercise)
			return &Result{Exercises: page}, err
		}
		e, err := decodeOne(body, "exercise", models.StandaloneExercise)
		return &Result{Exercise: e}, err
	}
	return nil, fmt.Errorf("%w: unknown content type %q", ErrInvalidRequest, r.Type)
}

func decodeOne[R, T any](body []byte, what string, fn func(R) T) (*T, error) {
	if err := checkDocument(body); err != nil {
		return nil, &decodeError{what: what, err: err}
	}
	var raw R
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &decodeError{what: what, err: err}
	}
	out := fn(raw)
	return &out, nil
}

// checkDocument rejects single-item bodies that are not a document object:
// null, a collection envelope, or an object without id or title.
func checkDocument(body []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return err
	}
	if fields == nil {
		return errors.New("empty document")
	}
	if _, ok := fields["items"]; ok {
		return errors.New("collection body for a single item")
	}
	_, hasID := fields["id"]
	_, hasTitle := fields["title"]
	if !hasID && !hasTitle {
		return errors.New("document has no id or title")
	}
	return nil
}

func decodePage[R, T any](body []byte, what string, fn func(R) T) (*models.Page[T], error) {
	var raw models.RawPage[R]
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &decodeError{what: what, err: err}
	}
	if raw.Items == nil {
		return nil, &decodeError{what: what, err: errors.New("missing items")}
	}
	page := models.NormalizePage(raw, fn)
	return &page, nil
}
