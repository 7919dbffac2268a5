package chatbot

import (
	"context"
	"log/slog"

	"github.com/kidsphere/kidsphere/internal/llm"
)

const systemPrompt = "You are a friendly, child-safe assistant for kids. Keep responses short, fun, and educational. Never discuss violence, adult content, drugs, or harmful topics. If asked about inappropriate topics, politely redirect to safe topics like animals, science, stories, or games."

const (
	fallbackReply    = "I'm having a little trouble right now. Let's try again in a moment!"
	noBackendReply   = "Hi there! I'm your friendly assistant. I'm here to help you learn and have fun! What would you like to talk about?"
	maxReplyTokens   = 200
)

// ConversationStore persists chatbot exchanges.
type ConversationStore interface {
	SaveConversation(ctx context.Context, userID int64, message, response string) error
}

// Attachment describes a file sent with a chatbot message.
type Attachment struct {
	URL  string
	Type string
	Name string
}

// Service answers a child's chatbot message: guard first, then file
// acknowledgment, then the language-model backend. It never returns an error
// to the caller; backend failures degrade to a friendly fixed reply.
type Service struct {
	gw    llm.Gateway
	guard *Guard
	store ConversationStore
	model string
}

func NewService(gw llm.Gateway, store ConversationStore, model string) *Service {
	return &Service{
		gw:    gw,
		guard: NewGuard(),
		store: store,
		model: model,
	}
}

// Respond produces the reply for a chatbot message and records the exchange.
func (s *Service) Respond(ctx context.Context, userID int64, message string, file *Attachment) string {
	if reply, blocked := s.guard.Check(message); blocked {
		s.save(ctx, userID, message, reply)
		return reply
	}

	if file != nil {
		if reply, ok := FileAck(file.Type, file.Name); ok {
			s.save(ctx, userID, "["+file.Type+": "+file.Name+"] "+message, reply)
			return reply
		}
	}

	if s.gw == nil {
		s.save(ctx, userID, message, noBackendReply)
		return noBackendReply
	}

	resp, err := s.gw.Chat(ctx, llm.ChatRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
		MaxTokens: maxReplyTokens,
	})
	if err != nil {
		slog.Error("chatbot backend failed", "error", err)
		s.save(ctx, userID, message, fallbackReply)
		return fallbackReply
	}

	reply := resp.Content
	if reply == "" {
		reply = "I'm here to help! What would you like to know?"
	}
	s.save(ctx, userID, message, reply)
	return reply
}

func (s *Service) save(ctx context.Context, userID int64, message, response string) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveConversation(ctx, userID, message, response); err != nil {
		slog.Warn("save chatbot conversation", "error", err, "user_id", userID)
	}
}
