package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/srirupaul05/foodbridge/internal/domain"
	"github.com/srirupaul05/foodbridge/internal/platform/logger"
	"github.com/srirupaul05/foodbridge/internal/platform/metrics"
	"github.com/srirupaul05/foodbridge/internal/usecase"
)

const maxPhotoSize = 5 << 20 // 5 MiB

type ListingHandler struct {
	listings *usecase.ListingUsecase
	metrics  *metrics.Manager
	logger   logger.Logger
}

func NewListingHandler(listings *usecase.ListingUsecase, m *metrics.Manager, log logger.Logger) *ListingHandler {
	return &ListingHandler{listings: listings, metrics: m, logger: log}
}

type createListingRequest struct {
	FoodName    string     `json:"foodName"`
	Category    string     `json:"category"`
	Quantity    float64    `json:"quantity"`
	Unit        string     `json:"unit"`
	Location    string     `json:"location"`
	ExpiryDate  time.Time  `json:"expiryDate"`
	PickupStart *time.Time `json:"pickupStart,omitempty"`
	PickupEnd   *time.Time `json:"pickupEnd,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

type listingWithWarning struct {
	*domain.Listing
	Warning string `json:"warning,omitempty"`
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	session := SessionFrom(r.Context())
	listing, err := h.listings.Create(r.Context(), session.UserID, session.Name, usecase.CreateListingInput{
		FoodName:    req.FoodName,
		Category:    domain.Category(req.Category),
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Location:    req.Location,
		ExpiryDate:  req.ExpiryDate,
		PickupStart: req.PickupStart,
		PickupEnd:   req.PickupEnd,
		Notes:       req.Notes,
	})
	// A stats failure does not fail the post; the listing exists, so report
	// 201 with a warning instead of an error status.
	if errors.Is(err, domain.ErrStatsIncomplete) {
		respondJSON(w, http.StatusCreated, listingWithWarning{Listing: listing, Warning: err.Error()})
		return
	}
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.metrics.ListingsCreatedTotal.Inc()
	respondJSON(w, http.StatusCreated, listing)
}

func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ListingFilter{
		Category:   domain.Category(q.Get("category")),
		Query:      q.Get("q"),
		ExpiryBand: q.Get("expiry"),
	}
	if limit, err := strconv.ParseInt(q.Get("limit"), 10, 64); err == nil {
		filter.Limit = limit
	}

	views, err := h.listings.ListAvailable(r.Context(), filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	listing, err := h.listings.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) Mine(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	views, err := h.listings.ListByDonor(r.Context(), session.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	if err := h.listings.Delete(r.Context(), chi.URLParam(r, "id"), session.UserID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ListingHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "photo file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "cannot read photo"})
		return
	}

	session := SessionFrom(r.Context())
	url, err := h.listings.UploadPhoto(r.Context(), chi.URLParam(r, "id"), session.UserID, header.Filename, data)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"photoUrl": url})
}
