package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/manikantha-asam/ecommerce/internal/auth"
	"github.com/manikantha-asam/ecommerce/internal/domain"
	"github.com/manikantha-asam/ecommerce/internal/notify"
	"github.com/manikantha-asam/ecommerce/internal/repository"
	"github.com/manikantha-asam/ecommerce/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError converts domain and infrastructure errors into the
// uniform HTTP error shape. Ownership-masked lookups arrive here already
// collapsed into not-found sentinels.
func handleServiceError(w http.ResponseWriter, err error) {
	var fieldErrs domain.FieldErrors
	if errors.As(err, &fieldErrs) {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Code:    "validation_error",
			Details: fieldErrs.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrCustomerNotFound),
		errors.Is(err, repository.ErrCartNotFound),
		errors.Is(err, repository.ErrCartItemNotFound),
		errors.Is(err, repository.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())

	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenRevoked):
		respondError(w, http.StatusUnauthorized, "invalid_token", err.Error())

	case errors.Is(err, service.ErrNotStaff):
		respondError(w, http.StatusForbidden, "permission_denied", err.Error())

	case errors.Is(err, service.ErrDeletionDisabled):
		respondError(w, http.StatusForbidden, "deletion_disabled", err.Error())

	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidResetToken),
		errors.Is(err, repository.ErrProductInUse):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())

	case errors.Is(err, notify.ErrInvalidRecipient):
		respondError(w, http.StatusBadRequest, "invalid_header", "invalid header found")

	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
