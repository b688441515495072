package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/contactdesk/backend/internal/model"
	"github.com/contactdesk/backend/internal/repository"
	"github.com/contactdesk/backend/internal/service"
)

// SendHandler handles admin outreach email dispatch.
type SendHandler struct {
	contactService  service.ContactService
	dispatchService service.DispatchService
}

// NewSendHandler creates a SendHandler with the given services.
func NewSendHandler(contactService service.ContactService, dispatchService service.DispatchService) *SendHandler {
	return &SendHandler{contactService: contactService, dispatchService: dispatchService}
}

// sendRequest is the expected JSON body for POST /api/admin/send.
// content is only consulted when template is "custom".
type sendRequest struct {
	ContactID string `json:"contact_id"`
	Template  string `json:"template"`
	Content   string `json:"content"`
}

// sendResponse is returned after a successful dispatch so the dashboard can
// update without an immediate refetch; the caller still owns invalidating
// its cached contact list.
type sendResponse struct {
	Email *model.EmailLog `json:"email"`
}

// Send handles POST /api/admin/send (admin-only).
// Validates the request, resolves the contact, renders the template, sends
// via the provider and records the send.
func (h *SendHandler) Send(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if !requireAdmin(w, r) {
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	if req.ContactID == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "contact_id_required"})
		return
	}

	if !model.IsNamedTemplate(req.Template) && req.Template != model.TemplateCustom {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "template_invalid"})
		return
	}

	contact, err := h.contactService.Get(r.Context(), req.ContactID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "contact_not_found"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "lookup_failed"})
		return
	}

	entry, err := h.dispatchService.Dispatch(r.Context(), service.DispatchRequest{
		ContactID:    contact.ID,
		ContactName:  contact.Name,
		ContactEmail: contact.Email,
		Template:     req.Template,
		Content:      req.Content,
	})
	switch {
	case errors.Is(err, service.ErrEmptyContent):
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "content_required"})
		return
	case errors.Is(err, service.ErrNotRecorded):
		// The email went out but the send log was not written; the dashboard
		// will still offer the template.
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "sent_not_recorded"})
		return
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "send_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(sendResponse{Email: entry})
}
