package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/kidsphere/kidsphere/internal/audit"
	"github.com/kidsphere/kidsphere/internal/models"
)

type AdminHandler struct {
	auditSvc *audit.Service
}

func NewAdminHandler(auditSvc *audit.Service) *AdminHandler {
	return &AdminHandler{auditSvc: auditSvc}
}

func (h *AdminHandler) ModerationEvents(w http.ResponseWriter, r *http.Request) {
	q := audit.EventQuery{
		Kind: r.URL.Query().Get("kind"),
	}

	if v := r.URL.Query().Get("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user_id")
			return
		}
		q.UserID = id
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		q.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		q.Offset = n
	}

	var err error
	if q.StartDate, err = parseDateParam(r, "start_date"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date")
		return
	}
	if q.EndDate, err = parseDateParam(r, "end_date"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date")
		return
	}

	events, err := h.auditSvc.ListEvents(r.Context(), q)
	if err != nil {
		slog.Error("failed to list moderation events", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list moderation events")
		return
	}
	if events == nil {
		events = []models.ModerationEvent{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

func (h *AdminHandler) ModerationSummary(w http.ResponseWriter, r *http.Request) {
	start, err := parseDateParam(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date")
		return
	}
	end, err := parseDateParam(r, "end_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date")
		return
	}

	summary, err := h.auditSvc.Summary(r.Context(), start, end)
	if err != nil {
		slog.Error("failed to summarize moderation events", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to summarize moderation events")
		return
	}
	if summary == nil {
		summary = []audit.KindSummary{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"summary": summary})
}

func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
