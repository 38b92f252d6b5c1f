package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/manikantha-asam/ecommerce/internal/domain"
	"github.com/manikantha-asam/ecommerce/internal/service"
)

type AccountHandler struct {
	accounts *service.AccountService
}

func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type LoginRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequestDTO struct {
	Refresh string `json:"refresh"`
}

type ResetRequestDTO struct {
	Email string `json:"email"`
}

type ResetConfirmDTO struct {
	Password string `json:"password"`
}

// POST /api/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg domain.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	customer, err := h.accounts.Register(r.Context(), &reg)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, customer)
}

// POST /api/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	pair, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pair)
}

// POST /api/logout — blacklists the refresh token.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "refresh token is required")
		return
	}

	if err := h.accounts.Logout(r.Context(), req.Refresh); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_token", "invalid refresh token")
		return
	}
	respondJSON(w, http.StatusResetContent, map[string]string{"detail": "logout successful"})
}

// POST /api/token/refresh
func (h *AccountHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "refresh token is required")
		return
	}

	access, err := h.accounts.RefreshAccess(r.Context(), req.Refresh)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"access": access})
}

// GET /api/customer
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	customer, err := h.accounts.GetProfile(r.Context(), identity)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

// PUT /api/customer
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var reg domain.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	customer, err := h.accounts.UpdateProfile(r.Context(), identity, &reg)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

// POST /api/request-password-reset
func (h *AccountHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email is required")
		return
	}

	if err := h.accounts.RequestPasswordReset(r.Context(), req.Email); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"detail": "password reset email sent"})
}

// POST /api/reset-password/{token}
func (h *AccountHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "reset token is required")
		return
	}

	var req ResetConfirmDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.accounts.ResetPassword(r.Context(), token, req.Password); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"detail": "password has been reset"})
}

// GET /api/customers (staff)
func (h *AccountHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	customers, err := h.accounts.ListCustomers(r.Context(), identity, r.URL.Query().Get("search"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if customers == nil {
		customers = make([]*domain.Customer, 0)
	}
	respondJSON(w, http.StatusOK, customers)
}
