package handler

import (
	"context"
	"net/http"
)

// DB is the minimal database surface the base handler needs.
type DB interface {
	Ping(ctx context.Context) error
}

// Handler carries shared dependencies for cross-cutting endpoints and
// middleware (health check, CORS).
type Handler struct {
	db          DB
	frontendURL string
}

// New creates the base Handler.
func New(db DB, frontendURL string) *Handler {
	return &Handler{db: db, frontendURL: frontendURL}
}

// CORS allows the configured frontend origin with credentials and handles
// preflight requests.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
