package models

import "time"

type Message struct {
	ID         int64     `json:"id" db:"id"`
	SenderID   int64     `json:"senderId" db:"sender_id"`
	ReceiverID int64     `json:"receiverId" db:"receiver_id"`
	Content    string    `json:"content" db:"content"`
	FileURL    string    `json:"fileUrl,omitempty" db:"file_url"`
	FileType   string    `json:"fileType,omitempty" db:"file_type"`
	FileName   string    `json:"fileName,omitempty" db:"file_name"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type Conversation struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	Response  string    `json:"response" db:"response"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
