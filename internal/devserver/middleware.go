package devserver

import (
	"log/slog"
	"net/http"
	"time"
)

// Header names the content API authenticates with.
const (
	HeaderAPIKey  = "x-api-key"
	HeaderCompany = "x-company-name"
)

// CredentialAuth returns middleware that validates the API key and company
// headers.
func CredentialAuth(creds Credentials) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(HeaderAPIKey)
			company := r.Header.Get(HeaderCompany)
			if key == "" {
				writeError(w, http.StatusUnauthorized, "missing API key")
				return
			}
			if company == "" {
				writeError(w, http.StatusUnauthorized, "missing company name")
				return
			}
			if creds.APIKey != "" && key != creds.APIKey {
				writeError(w, http.StatusForbidden, "invalid API key")
				return
			}
			if creds.Company != "" && company != creds.Company {
				writeError(w, http.StatusForbidden, "unknown company")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogging returns middleware that logs each request.
func RequestLogging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"status", sw.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// CORS adds permissive CORS headers so browser surfaces can call the dev API.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key, X-Company-Name")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusWriter wraps ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
