package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/contactdesk/backend/internal/model"
	"github.com/contactdesk/backend/internal/repository"
	"github.com/contactdesk/backend/internal/service"
	"github.com/contactdesk/backend/pkg/auth"
)

const (
	minNameLength    = 2
	maxMessageLength = 5000
)

// ContactHandler handles the public contact form and the admin dashboard reads.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// submitRequest is the expected JSON body for POST /api/contact.
type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// validEmail reports whether s parses as a bare RFC 5322 address.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// Submit handles POST /api/contact.
// name (min 2 chars), a valid email and a non-empty message are required;
// message max 5000 chars.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	if len([]rune(strings.TrimSpace(req.Name))) < minNameLength {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "name_too_short"})
		return
	}

	if !validEmail(req.Email) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "email_invalid"})
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "message_required"})
		return
	}

	if len([]rune(req.Message)) > maxMessageLength {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "message_too_long"})
		return
	}

	contact := &model.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   req.Email,
		Message: req.Message,
	}

	if err := h.contactService.Submit(r.Context(), contact); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "submit_failed"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
}

// adminListResponse is the JSON response for GET /api/admin/contacts.
type adminListResponse struct {
	Contacts []*model.ContactOverview `json:"contacts"`
}

// requireAdmin writes 401/403 and returns false unless the request carries
// an authenticated admin session.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := auth.UserIDFromContext(r.Context()); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return false
	}
	if !auth.IsAdminFromContext(r.Context()) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
		return false
	}
	return true
}

// AdminList handles GET /api/admin/contacts (admin-only).
// Returns contacts newest-first with their derived send states and full
// send history. Supports query params: limit, offset.
func (h *ContactHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if !requireAdmin(w, r) {
		return
	}

	opts := model.ContactListOptions{Limit: 20, Offset: 0}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			opts.Limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			opts.Offset = n
		}
	}

	contacts, err := h.contactService.ListWithSendStates(r.Context(), opts)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}

	// Return [] not null for empty lists
	if contacts == nil {
		contacts = []*model.ContactOverview{}
	}

	_ = json.NewEncoder(w).Encode(adminListResponse{Contacts: contacts})
}

// emailsResponse is the JSON response for GET /api/admin/contacts/{id}/emails.
type emailsResponse struct {
	Emails []*model.EmailLog `json:"emails"`
}

// Emails handles GET /api/admin/contacts/{id}/emails (admin-only).
func (h *ContactHandler) Emails(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if !requireAdmin(w, r) {
		return
	}

	contactID := r.PathValue("id")
	if _, err := h.contactService.Get(r.Context(), contactID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "contact_not_found"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "lookup_failed"})
		return
	}

	emails, err := h.contactService.Emails(r.Context(), contactID)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}
	if emails == nil {
		emails = []*model.EmailLog{}
	}

	_ = json.NewEncoder(w).Encode(emailsResponse{Emails: emails})
}
