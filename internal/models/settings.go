package models

import "time"

// ChildSettings holds the per-child toggles a parent controls.
type ChildSettings struct {
	UserID       int64     `json:"userId" db:"user_id"`
	AllowExplore bool      `json:"allowExplore" db:"allow_explore"`
	AllowShorts  bool      `json:"allowShorts" db:"allow_shorts"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

func DefaultChildSettings(userID int64) ChildSettings {
	return ChildSettings{
		UserID:       userID,
		AllowExplore: true,
		AllowShorts:  false,
	}
}
