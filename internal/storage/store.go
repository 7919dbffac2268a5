package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kidsphere/kidsphere/internal/models"
)

// Store is the Postgres persistence layer for chat, chatbot
// conversations, and per-child settings.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) SaveMessage(ctx context.Context, msg *models.Message) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO messages (sender_id, receiver_id, content, file_url, file_type, file_name)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		msg.SenderID, msg.ReceiverID, msg.Content, msg.FileURL, msg.FileType, msg.FileName,
	).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// ListMessagesBetween returns the chat history for a pair of friends in
// chronological order.
func (s *Store) ListMessagesBetween(ctx context.Context, userID, friendID int64, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, sender_id, receiver_id, content,
		        COALESCE(file_url, ''), COALESCE(file_type, ''), COALESCE(file_name, ''),
		        created_at
		 FROM messages
		 WHERE (sender_id = $1 AND receiver_id = $2)
		    OR (sender_id = $2 AND receiver_id = $1)
		 ORDER BY created_at ASC LIMIT $3`,
		userID, friendID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var msgs []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.FileURL, &m.FileType, &m.FileName, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (s *Store) SaveConversation(ctx context.Context, userID int64, message, response string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO chatbot_conversations (user_id, message, response)
		 VALUES ($1, $2, $3)`,
		userID, message, response,
	)
	if err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}
	return nil
}

func (s *Store) ListConversations(ctx context.Context, userID int64, limit int) ([]models.Conversation, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, message, response, created_at
		 FROM chatbot_conversations WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}
	defer rows.Close()

	var convs []models.Conversation
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Message, &c.Response, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

// GetChildSettings returns the stored settings for a child, or the
// defaults when no row exists yet.
func (s *Store) GetChildSettings(ctx context.Context, userID int64) (models.ChildSettings, error) {
	var cs models.ChildSettings
	err := s.db.QueryRow(ctx,
		`SELECT user_id, allow_explore, allow_shorts, updated_at
		 FROM child_settings WHERE user_id = $1`,
		userID,
	).Scan(&cs.UserID, &cs.AllowExplore, &cs.AllowShorts, &cs.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.DefaultChildSettings(userID), nil
	}
	if err != nil {
		return cs, fmt.Errorf("query child settings: %w", err)
	}
	return cs, nil
}

func (s *Store) UpsertChildSettings(ctx context.Context, cs models.ChildSettings) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO child_settings (user_id, allow_explore, allow_shorts, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (user_id) DO UPDATE
		 SET allow_explore = EXCLUDED.allow_explore,
		     allow_shorts = EXCLUDED.allow_shorts,
		     updated_at = now()`,
		cs.UserID, cs.AllowExplore, cs.AllowShorts,
	)
	if err != nil {
		return fmt.Errorf("upsert child settings: %w", err)
	}
	return nil
}
