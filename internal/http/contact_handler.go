package http

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/manikantha-asam/ecommerce/internal/notify"
)

type ContactHandler struct {
	notifier notify.Notifier
}

func NewContactHandler(notifier notify.Notifier) *ContactHandler {
	return &ContactHandler{notifier: notifier}
}

type ContactRequestDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// POST /api/contact
func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if req.Name == "" || req.Email == "" || req.Message == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name, email and message are required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "email address is not valid")
		return
	}

	msg := notify.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := h.notifier.SendContactMessage(r.Context(), msg); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"detail": "message sent successfully"})
}
