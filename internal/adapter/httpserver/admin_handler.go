package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/srirupaul05/foodbridge/internal/platform/logger"
	"github.com/srirupaul05/foodbridge/internal/usecase"
)

// AdminHandler exposes the moderation dashboard. Every call re-checks the
// allowlist inside the usecase; there is no admin flag on the session.
type AdminHandler struct {
	admin  *usecase.AdminUsecase
	logger logger.Logger
}

func NewAdminHandler(admin *usecase.AdminUsecase, log logger.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: log}
}

func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	overview, err := h.admin.GetOverview(r.Context(), session.Email)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	users, err := h.admin.ListUsers(r.Context(), session.Email)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) Listings(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	listings, err := h.admin.ListListings(r.Context(), session.Email)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

func (h *AdminHandler) Claims(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	rows, err := h.admin.ListClaims(r.Context(), session.Email)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	if err := h.admin.DeleteUser(r.Context(), session.Email, chi.URLParam(r, "id")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *AdminHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	if err := h.admin.DeleteListing(r.Context(), session.Email, chi.URLParam(r, "id")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *AdminHandler) DeleteClaim(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	if err := h.admin.DeleteClaim(r.Context(), session.Email, chi.URLParam(r, "id")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
