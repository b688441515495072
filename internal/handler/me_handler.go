package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/contactdesk/backend/internal/repository"
	"github.com/contactdesk/backend/pkg/auth"
)

// MeHandler returns the currently signed-in operator.
type MeHandler struct {
	userRepo      repository.UserRepository
	sessionSecret []byte
	adminEmails   map[string]bool
}

// NewMeHandler creates a MeHandler (DI: UserRepository injected).
func NewMeHandler(userRepo repository.UserRepository, sessionSecret []byte, adminEmails []string) *MeHandler {
	set := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		set[e] = true
	}
	return &MeHandler{userRepo: userRepo, sessionSecret: sessionSecret, adminEmails: set}
}

// meResponse is the JSON response for GET /api/me.
type meResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Me handles GET /api/me.
func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	cookie, err := r.Cookie(auth.SessionCookieName())
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	userID, err := auth.VerifySessionToken(cookie.Value, h.sessionSecret)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_session"})
		return
	}

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "user_not_found"})
		return
	}

	_ = json.NewEncoder(w).Encode(meResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		IsAdmin:   h.adminEmails[user.Email],
		CreatedAt: user.CreatedAt,
	})
}
