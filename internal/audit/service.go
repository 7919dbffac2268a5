package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kidsphere/kidsphere/internal/models"
)

// Service records moderation events so parents and admins can review
// what the filters blocked and why.
type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

func (s *Service) Record(ctx context.Context, ev models.ModerationEvent) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO moderation_events (user_id, kind, input, term, category, reason)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		ev.UserID, ev.Kind, ev.Input, ev.Term, ev.Category, ev.Reason,
	)
	if err != nil {
		return fmt.Errorf("insert moderation event: %w", err)
	}
	return nil
}

type EventQuery struct {
	UserID    int64
	Kind      string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

func (s *Service) ListEvents(ctx context.Context, q EventQuery) ([]models.ModerationEvent, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	query := `SELECT id, user_id, kind, input, COALESCE(term, ''), COALESCE(category, ''), reason, created_at
			  FROM moderation_events WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if q.UserID != 0 {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, q.UserID)
		argIdx++
	}
	if q.Kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", argIdx)
		args = append(args, q.Kind)
		argIdx++
	}
	if q.StartDate != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *q.StartDate)
		argIdx++
	}
	if q.EndDate != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argIdx)
		args = append(args, *q.EndDate)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, q.Limit, q.Offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query moderation events: %w", err)
	}
	defer rows.Close()

	var events []models.ModerationEvent
	for rows.Next() {
		var ev models.ModerationEvent
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Kind, &ev.Input, &ev.Term, &ev.Category, &ev.Reason, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan moderation event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

type KindSummary struct {
	Kind     string `json:"kind"`
	Category string `json:"category"`
	Total    int    `json:"total"`
}

// Summary groups blocked events by surface and category over a window.
func (s *Service) Summary(ctx context.Context, startDate, endDate *time.Time) ([]KindSummary, error) {
	query := `SELECT kind, COALESCE(category, ''), COUNT(*) AS total
			  FROM moderation_events WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if startDate != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *startDate)
		argIdx++
	}
	if endDate != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argIdx)
		args = append(args, *endDate)
		argIdx++
	}

	query += " GROUP BY kind, category ORDER BY total DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query event summary: %w", err)
	}
	defer rows.Close()

	var summaries []KindSummary
	for rows.Next() {
		var ks KindSummary
		if err := rows.Scan(&ks.Kind, &ks.Category, &ks.Total); err != nil {
			return nil, fmt.Errorf("scan event summary: %w", err)
		}
		summaries = append(summaries, ks)
	}
	return summaries, rows.Err()
}
