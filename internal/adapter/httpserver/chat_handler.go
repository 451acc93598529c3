package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/srirupaul05/foodbridge/internal/platform/logger"
	"github.com/srirupaul05/foodbridge/internal/platform/metrics"
	"github.com/srirupaul05/foodbridge/internal/usecase"
)

type ChatHandler struct {
	chat    *usecase.ChatUsecase
	metrics *metrics.Manager
	logger  logger.Logger
}

func NewChatHandler(chat *usecase.ChatUsecase, m *metrics.Manager, log logger.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, metrics: m, logger: log}
}

func (h *ChatHandler) Open(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	chat, err := h.chat.EnsureChat(r.Context(), chi.URLParam(r, "id"), session.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, chat)
}

func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	msgs, err := h.chat.ListMessages(r.Context(), chi.URLParam(r, "id"), session.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, msgs)
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	session := SessionFrom(r.Context())
	msg, err := h.chat.SendMessage(r.Context(), chi.URLParam(r, "id"), session.UserID, session.Name, req.Text)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.metrics.MessagesSentTotal.Inc()
	respondJSON(w, http.StatusCreated, msg)
}
