package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/srirupaul05/foodbridge/internal/domain"
	"github.com/srirupaul05/foodbridge/internal/platform/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps domain sentinels to HTTP statuses. Anything unmapped is
// a 500 with a generic body; the real error goes to the log only.
func respondError(w http.ResponseWriter, log logger.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Errorf("request failed: %v", err)
		respondJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrSelfClaim):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrClaimNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrChatNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyClaimed),
		errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDailyLimit):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrInvalidListing),
		errors.Is(err, domain.ErrInvalidItem),
		errors.Is(err, domain.ErrInvalidMessage),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrCodeExpired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
