package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/kidsphere/kidsphere/internal/auth"
	"github.com/kidsphere/kidsphere/internal/chatbot"
	"github.com/kidsphere/kidsphere/internal/models"
	"github.com/kidsphere/kidsphere/internal/queue"
)

// Responder is the chatbot surface, satisfied by chatbot.Service.
type Responder interface {
	Respond(ctx context.Context, userID int64, message string, file *chatbot.Attachment) string
}

// ConversationLister reads past chatbot exchanges, satisfied by storage.Store.
type ConversationLister interface {
	ListConversations(ctx context.Context, userID int64, limit int) ([]models.Conversation, error)
}

type ChatbotHandler struct {
	svc   Responder
	convs ConversationLister
	audit AuditEnqueuer
}

func NewChatbotHandler(svc Responder, convs ConversationLister, audit AuditEnqueuer) *ChatbotHandler {
	return &ChatbotHandler{svc: svc, convs: convs, audit: audit}
}

type chatbotRequest struct {
	UserID   int64  `json:"userId"`
	Message  string `json:"message"`
	FileURL  string `json:"fileUrl,omitempty"`
	FileType string `json:"fileType,omitempty"`
	FileName string `json:"fileName,omitempty"`
}

type chatbotResponse struct {
	Response string `json:"response"`
}

func (h *ChatbotHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req chatbotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" && req.FileURL == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	var file *chatbot.Attachment
	if req.FileURL != "" {
		file = &chatbot.Attachment{
			URL:  req.FileURL,
			Type: req.FileType,
			Name: req.FileName,
		}
	}

	userID := auth.UserIDFromContext(r.Context())
	if userID == 0 {
		userID = req.UserID
	}
	reply := h.svc.Respond(r.Context(), userID, message, file)

	// The guard answers with its fixed redirect, which is how we know
	// the message was deflected rather than sent to a backend.
	if reply == chatbot.SafeRedirect && h.audit != nil {
		err := h.audit.EnqueueModerationAudit(queue.ModerationAuditPayload{
			UserID: userID,
			Kind:   models.EventKindChatbot,
			Input:  message,
			Reason: "chatbot topic redirected",
		})
		if err != nil {
			slog.Error("failed to enqueue moderation audit", "kind", models.EventKindChatbot, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, chatbotResponse{Response: reply})
}

func (h *ChatbotHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	convs, err := h.convs.ListConversations(r.Context(), userID, limit)
	if err != nil {
		slog.Error("failed to list conversations", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list conversations")
		return
	}
	if convs == nil {
		convs = []models.Conversation{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"conversations": convs})
}
