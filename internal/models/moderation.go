package models

import (
	"time"

	"github.com/google/uuid"
)

// Moderation event kinds, one per surface that can block content.
const (
	EventKindChatMessage  = "chat_message"
	EventKindSearchQuery  = "search_query"
	EventKindSearchResult = "search_result"
	EventKindChatbot      = "chatbot"
)

type ModerationEvent struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Kind      string    `json:"kind" db:"kind"`
	Input     string    `json:"input" db:"input"`
	Term      string    `json:"term,omitempty" db:"term"`
	Category  string    `json:"category,omitempty" db:"category"`
	Reason    string    `json:"reason" db:"reason"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
