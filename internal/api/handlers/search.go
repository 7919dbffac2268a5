package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kidsphere/kidsphere/internal/auth"
	"github.com/kidsphere/kidsphere/internal/models"
	"github.com/kidsphere/kidsphere/internal/moderation"
	"github.com/kidsphere/kidsphere/internal/queue"
	"github.com/kidsphere/kidsphere/internal/search"
)

const sourceHeader = "X-Safe-Search-Source"

// Searcher is the upstream search surface, satisfied by search.Client.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) (*search.Response, error)
}

// AuditEnqueuer pushes moderation events onto the background queue.
type AuditEnqueuer interface {
	EnqueueModerationAudit(payload queue.ModerationAuditPayload) error
}

type SearchHandler struct {
	classifier *moderation.QueryClassifier
	sanitizer  *moderation.Sanitizer
	upstream   Searcher
	audit      AuditEnqueuer
	limit      int
}

func NewSearchHandler(classifier *moderation.QueryClassifier, sanitizer *moderation.Sanitizer, upstream Searcher, audit AuditEnqueuer, limit int) *SearchHandler {
	if limit <= 0 {
		limit = 6
	}
	return &SearchHandler{
		classifier: classifier,
		sanitizer:  sanitizer,
		upstream:   upstream,
		audit:      audit,
		limit:      limit,
	}
}

type searchResponse struct {
	Blocked bool                `json:"blocked"`
	Reason  string              `json:"reason,omitempty"`
	Results []moderation.Result `json:"results"`
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	if d := h.classifier.Classify(query); d != nil {
		if d.Blocked {
			h.recordBlock(r, models.EventKindSearchQuery, query, d.MatchedTerm, string(d.MatchedCategory), d.Reason)
			writeJSON(w, http.StatusOK, searchResponse{Blocked: true, Reason: d.Reason, Results: []moderation.Result{}})
			return
		}
		w.Header().Set(sourceHeader, d.Source)
		writeJSON(w, http.StatusOK, searchResponse{Results: d.Results})
		return
	}

	resp, err := h.upstream.Search(r.Context(), query, h.limit)
	if err != nil {
		slog.Error("upstream search failed", "error", err)
		writeError(w, http.StatusBadGateway, "search is temporarily unavailable")
		return
	}

	results, outcome := h.sanitizer.Sanitize(resp.Results)
	w.Header().Set(sourceHeader, resp.Source)

	switch outcome {
	case moderation.SanitizeAllBlocked:
		h.recordBlock(r, models.EventKindSearchResult, query, "", "", moderation.ReasonOnlyBlockedSites)
		writeJSON(w, http.StatusOK, searchResponse{Blocked: true, Reason: moderation.ReasonOnlyBlockedSites, Results: []moderation.Result{}})
	default:
		if results == nil {
			results = []moderation.Result{}
		}
		writeJSON(w, http.StatusOK, searchResponse{Results: results})
	}
}

func (h *SearchHandler) recordBlock(r *http.Request, kind, input, term, category, reason string) {
	if h.audit == nil {
		return
	}
	err := h.audit.EnqueueModerationAudit(queue.ModerationAuditPayload{
		UserID:   auth.UserIDFromContext(r.Context()),
		Kind:     kind,
		Input:    input,
		Term:     term,
		Category: category,
		Reason:   reason,
	})
	if err != nil {
		slog.Error("failed to enqueue moderation audit", "kind", kind, "error", err)
	}
}
