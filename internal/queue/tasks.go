package queue

const TypeModerationAudit = "moderation:audit"

type ModerationAuditPayload struct {
	UserID   int64  `json:"user_id"`
	Kind     string `json:"kind"`
	Input    string `json:"input"`
	Term     string `json:"term,omitempty"`
	Category string `json:"category,omitempty"`
	Reason   string `json:"reason"`
}
