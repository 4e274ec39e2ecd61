// Package devserver is a local stand-in for the KinesteX content API. It
// serves raw fixture documents with the same paths, headers, filters,
// pagination cursor and error envelope as the hosted API.
package devserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kinestex/kinestex-go/internal/models"
)

// Pagination bounds for collection listings.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Credentials are the header values every content request must carry. An
// empty field accepts any non-empty header.
type Credentials struct {
	APIKey  string
	Company string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  *Store
	creds  Credentials
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(store *Store, creds Credentials, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		creds:  creds,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(CredentialAuth(s.creds))
		r.Get("/{kind}", s.handleContent)
		r.Get("/{kind}/{selector}", s.handleContent)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
}

// handleContent serves one document for a bare selector, and the
// {items, lastDocId} envelope for a listing or any filtered request.
func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	selector := chi.URLParam(r, "selector")
	params := r.URL.Query()

	q := query{selector: selector, category: params.Get("category")}
	if bp := params.Get("body_parts"); bp != "" {
		for _, p := range strings.Split(bp, ",") {
			if p = strings.TrimSpace(p); p != "" {
				q.bodyParts = append(q.bodyParts, p)
			}
		}
	}
	collection := selector == "" || q.category != "" || len(q.bodyParts) > 0

	limit := DefaultLimit
	if v := params.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(n, MaxLimit)
	}
	cursor := params.Get("lastDocId")

	switch kind {
	case "workouts":
		if !collection {
			doc, ok := s.store.findWorkout(selector)
			serveOne(w, doc, ok)
			return
		}
		servePage(w, s.store.listWorkouts(q), func(d models.RawWorkout) string { return docID(d.ID) }, cursor, limit)
	case "plans":
		if !collection {
			doc, ok := s.store.findPlan(selector)
			serveOne(w, doc, ok)
			return
		}
		servePage(w, s.store.listPlans(q), func(d models.RawPlan) string { return docID(d.ID) }, cursor, limit)
	case "exercises":
		if !collection {
			doc, ok := s.store.findExercise(selector)
			serveOne(w, doc, ok)
			return
		}
		servePage(w, s.store.listExercises(q), func(d models.RawExercise) string { return docID(d.ID) }, cursor, limit)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func serveOne[T any](w http.ResponseWriter, doc T, ok bool) {
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func servePage[T any](w http.ResponseWriter, items []T, id func(T) string, cursor string, limit int) {
	page, next, err := paginate(items, id, cursor, limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.RawPage[T]{Items: page, LastDocID: next})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
