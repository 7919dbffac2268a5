package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kidsphere/kidsphere/internal/models"
	"github.com/kidsphere/kidsphere/internal/moderation"
)

type memoryMessageStore struct {
	saved []models.Message
}

func (s *memoryMessageStore) SaveMessage(ctx context.Context, msg *models.Message) error {
	msg.ID = int64(len(s.saved) + 1)
	s.saved = append(s.saved, *msg)
	return nil
}

func (s *memoryMessageStore) ListMessagesBetween(ctx context.Context, userID, friendID int64, limit int) ([]models.Message, error) {
	var out []models.Message
	for _, m := range s.saved {
		if (m.SenderID == userID && m.ReceiverID == friendID) ||
			(m.SenderID == friendID && m.ReceiverID == userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func newChatHandler(store MessageStore, aud AuditEnqueuer) *ChatHandler {
	return NewChatHandler(moderation.NewMessageFilter(moderation.DefaultLexicon()), store, aud)
}

func postMessage(t *testing.T, h *ChatHandler, req sendMessageRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(req)
	r := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	h.Send(rec, r)
	return rec
}

func TestSendCleanMessage(t *testing.T) {
	store := &memoryMessageStore{}
	h := newChatHandler(store, nil)

	rec := postMessage(t, h, sendMessageRequest{
		SenderID: 1, ReceiverID: 2, Content: "want to play a game later?",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if len(store.saved) != 1 {
		t.Fatalf("saved %d messages, want 1", len(store.saved))
	}
	if store.saved[0].Content != "want to play a game later?" {
		t.Errorf("saved content = %q", store.saved[0].Content)
	}
	if store.saved[0].ReceiverID != 2 {
		t.Errorf("receiver = %d, want 2", store.saved[0].ReceiverID)
	}
}

func TestSendBlockedMessage(t *testing.T) {
	store := &memoryMessageStore{}
	aud := &recordingAudit{}
	h := newChatHandler(store, aud)

	rec := postMessage(t, h, sendMessageRequest{
		SenderID: 1, ReceiverID: 2, Content: "you are an idiot",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body blockedMessageResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Blocked {
		t.Error("expected blocked = true")
	}
	if body.Warning != ChatWarning {
		t.Errorf("warning = %q, want %q", body.Warning, ChatWarning)
	}
	if len(store.saved) != 0 {
		t.Errorf("saved %d messages, want none", len(store.saved))
	}
	if len(aud.payloads) != 1 || aud.payloads[0].Kind != "chat_message" {
		t.Errorf("audit payloads = %+v, want one chat_message event", aud.payloads)
	}
}

func TestSendEmptyMessage(t *testing.T) {
	h := newChatHandler(&memoryMessageStore{}, nil)

	rec := postMessage(t, h, sendMessageRequest{SenderID: 1, ReceiverID: 2, Content: "   "})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSendMissingReceiver(t *testing.T) {
	h := newChatHandler(&memoryMessageStore{}, nil)

	rec := postMessage(t, h, sendMessageRequest{SenderID: 1, Content: "hello"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestMessageHistory(t *testing.T) {
	store := &memoryMessageStore{}
	h := newChatHandler(store, nil)

	postMessage(t, h, sendMessageRequest{SenderID: 1, ReceiverID: 2, Content: "hello there"})
	postMessage(t, h, sendMessageRequest{SenderID: 1, ReceiverID: 3, Content: "different friend"})

	r := chi.NewRouter()
	r.Get("/messages/{userID}/{friendID}", h.History)

	req := httptest.NewRequest(http.MethodGet, "/messages/1/2", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Messages []models.Message `json:"messages"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(body.Messages))
	}
	if body.Messages[0].Content != "hello there" {
		t.Errorf("content = %q", body.Messages[0].Content)
	}
}
