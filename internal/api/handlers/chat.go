package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kidsphere/kidsphere/internal/auth"
	"github.com/kidsphere/kidsphere/internal/models"
	"github.com/kidsphere/kidsphere/internal/moderation"
	"github.com/kidsphere/kidsphere/internal/queue"
)

// ChatWarning is returned verbatim when a message is rejected.
const ChatWarning = "⚠️ Please keep the chat kind and safe. This message was not sent."

type MessageStore interface {
	SaveMessage(ctx context.Context, msg *models.Message) error
	ListMessagesBetween(ctx context.Context, userID, friendID int64, limit int) ([]models.Message, error)
}

type ChatHandler struct {
	filter *moderation.MessageFilter
	store  MessageStore
	audit  AuditEnqueuer
}

func NewChatHandler(filter *moderation.MessageFilter, store MessageStore, audit AuditEnqueuer) *ChatHandler {
	return &ChatHandler{filter: filter, store: store, audit: audit}
}

type sendMessageRequest struct {
	SenderID   int64  `json:"senderId"`
	ReceiverID int64  `json:"receiverId"`
	Content    string `json:"content"`
	FileURL    string `json:"fileUrl,omitempty"`
	FileType   string `json:"fileType,omitempty"`
	FileName   string `json:"fileName,omitempty"`
}

type blockedMessageResponse struct {
	Blocked bool   `json:"blocked"`
	Warning string `json:"warning"`
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" && req.FileURL == "" {
		writeError(w, http.StatusBadRequest, "message content is required")
		return
	}
	if req.ReceiverID == 0 {
		writeError(w, http.StatusBadRequest, "receiverId is required")
		return
	}

	senderID := auth.UserIDFromContext(r.Context())
	if senderID == 0 {
		senderID = req.SenderID
	}

	// A message that trips the filter is rejected outright, never sent
	// with the words masked.
	if !h.filter.Clean(content) {
		if h.audit != nil {
			err := h.audit.EnqueueModerationAudit(queue.ModerationAuditPayload{
				UserID: senderID,
				Kind:   models.EventKindChatMessage,
				Input:  content,
				Reason: "message contained blocked words",
			})
			if err != nil {
				slog.Error("failed to enqueue moderation audit", "kind", models.EventKindChatMessage, "error", err)
			}
		}
		writeJSON(w, http.StatusBadRequest, blockedMessageResponse{Blocked: true, Warning: ChatWarning})
		return
	}

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    content,
		FileURL:    req.FileURL,
		FileType:   req.FileType,
		FileName:   req.FileName,
	}

	if err := h.store.SaveMessage(r.Context(), msg); err != nil {
		slog.Error("failed to save message", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save message")
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user ID")
		return
	}
	friendID, err := strconv.ParseInt(chi.URLParam(r, "friendID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid friend ID")
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	msgs, err := h.store.ListMessagesBetween(r.Context(), userID, friendID, limit)
	if err != nil {
		slog.Error("failed to list messages", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": msgs})
}
