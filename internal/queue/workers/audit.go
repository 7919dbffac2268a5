package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/kidsphere/kidsphere/internal/audit"
	"github.com/kidsphere/kidsphere/internal/models"
	"github.com/kidsphere/kidsphere/internal/queue"
)

// AuditWorker persists moderation events off the request path so a
// slow database never delays a blocked-content response.
type AuditWorker struct {
	auditSvc *audit.Service
}

func NewAuditWorker(auditSvc *audit.Service) *AuditWorker {
	return &AuditWorker{auditSvc: auditSvc}
}

func (w *AuditWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.ModerationAuditPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	ev := models.ModerationEvent{
		UserID:   payload.UserID,
		Kind:     payload.Kind,
		Input:    payload.Input,
		Term:     payload.Term,
		Category: payload.Category,
		Reason:   payload.Reason,
	}

	if err := w.auditSvc.Record(ctx, ev); err != nil {
		return fmt.Errorf("record moderation event: %w", err)
	}

	slog.Info("moderation event recorded", "kind", payload.Kind, "user_id", payload.UserID)
	return nil
}
