package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/srirupaul05/foodbridge/internal/domain"
	"github.com/srirupaul05/foodbridge/internal/platform/logger"
	"github.com/srirupaul05/foodbridge/internal/usecase"
)

type TrackerHandler struct {
	tracker *usecase.TrackerUsecase
	logger  logger.Logger
}

func NewTrackerHandler(tracker *usecase.TrackerUsecase, log logger.Logger) *TrackerHandler {
	return &TrackerHandler{tracker: tracker, logger: log}
}

type addItemRequest struct {
	Name       string    `json:"name"`
	Quantity   float64   `json:"quantity"`
	Unit       string    `json:"unit"`
	Category   string    `json:"category,omitempty"`
	ExpiryDate time.Time `json:"expiryDate"`
}

func (h *TrackerHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	session := SessionFrom(r.Context())
	item, err := h.tracker.Add(r.Context(), session.UserID, usecase.AddTrackerItemInput{
		Name:       req.Name,
		Quantity:   req.Quantity,
		Unit:       req.Unit,
		Category:   domain.Category(req.Category),
		ExpiryDate: req.ExpiryDate,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *TrackerHandler) List(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	items, err := h.tracker.List(r.Context(), session.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *TrackerHandler) Remove(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	if err := h.tracker.Remove(r.Context(), session.UserID, chi.URLParam(r, "id")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Draft handles GET /api/tracker/{id}/draft: a listing form pre-filled from
// the item, which itself stays in the tracker.
func (h *TrackerHandler) Draft(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	draft, err := h.tracker.ToListingDraft(r.Context(), session.UserID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, draft)
}
