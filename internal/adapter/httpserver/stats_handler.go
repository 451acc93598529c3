package httpserver

import (
	"net/http"
	"strconv"

	"github.com/srirupaul05/foodbridge/internal/platform/logger"
	"github.com/srirupaul05/foodbridge/internal/usecase"
)

type StatsHandler struct {
	stats  *usecase.StatsUsecase
	logger logger.Logger
}

func NewStatsHandler(stats *usecase.StatsUsecase, log logger.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, logger: log}
}

func (h *StatsHandler) MyImpact(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	summary, err := h.stats.UserImpact(r.Context(), session.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *StatsHandler) GlobalImpact(w http.ResponseWriter, r *http.Request) {
	global, err := h.stats.GlobalImpact(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, global)
}

func (h *StatsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	entries, err := h.stats.Leaderboard(r.Context(), limit)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
