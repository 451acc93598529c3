package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/srirupaul05/foodbridge/internal/domain"
	"github.com/srirupaul05/foodbridge/internal/platform/logger"
	"github.com/srirupaul05/foodbridge/internal/platform/metrics"
	"github.com/srirupaul05/foodbridge/internal/usecase"
)

type ClaimHandler struct {
	claims  *usecase.ClaimUsecase
	metrics *metrics.Manager
	logger  logger.Logger
}

func NewClaimHandler(claims *usecase.ClaimUsecase, m *metrics.Manager, log logger.Logger) *ClaimHandler {
	return &ClaimHandler{claims: claims, metrics: m, logger: log}
}

type claimWithWarning struct {
	*domain.Claim
	Warning string `json:"warning,omitempty"`
}

// Claim handles POST /api/listings/{id}/claim. The claim either happened or
// it didn't: a lost race is a 409, a stats hiccup is still a 201.
func (h *ClaimHandler) Claim(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	claim, err := h.claims.Claim(r.Context(), chi.URLParam(r, "id"), session.UserID, session.Name)

	if errors.Is(err, domain.ErrStatsIncomplete) {
		h.metrics.ListingsClaimedTotal.Inc()
		respondJSON(w, http.StatusCreated, claimWithWarning{Claim: claim, Warning: err.Error()})
		return
	}
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyClaimed) {
			h.metrics.ClaimConflictsTotal.Inc()
		}
		respondError(w, h.logger, err)
		return
	}

	h.metrics.ListingsClaimedTotal.Inc()
	respondJSON(w, http.StatusCreated, claim)
}

// Mine handles GET /api/claims: the caller's own claims, newest first.
func (h *ClaimHandler) Mine(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	claims, err := h.claims.ClaimsByRecipient(r.Context(), session.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, claims)
}
