package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kidsphere/kidsphere/internal/auth"
	"github.com/kidsphere/kidsphere/internal/cache"
	"github.com/kidsphere/kidsphere/internal/models"
	"github.com/kidsphere/kidsphere/internal/video"
)

// VideoProvider is the metadata surface, satisfied by video.Client.
type VideoProvider interface {
	VideoInfo(ctx context.Context, videoID string) (*video.Item, error)
	SearchKids(ctx context.Context, query string, allowShorts bool) ([]video.SearchResult, error)
}

// SettingsStore reads the parental controls for a child.
type SettingsStore interface {
	GetChildSettings(ctx context.Context, userID int64) (models.ChildSettings, error)
}

type VideosHandler struct {
	provider VideoProvider
	settings SettingsStore
	cache    *cache.Cache
	cacheTTL time.Duration
}

func NewVideosHandler(provider VideoProvider, settings SettingsStore, c *cache.Cache, ttl time.Duration) *VideosHandler {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &VideosHandler{provider: provider, settings: settings, cache: c, cacheTTL: ttl}
}

type eligibilityResponse struct {
	video.Eligibility
	Reason string `json:"reason,omitempty"`
}

type videoNotFoundResponse struct {
	Playable bool   `json:"playable"`
	Reason   string `json:"reason"`
}

func (h *VideosHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")
	if videoID == "" {
		writeError(w, http.StatusBadRequest, "missing video id")
		return
	}

	cacheKey := "video:eligibility:" + videoID
	if h.cache != nil {
		var cached eligibilityResponse
		if err := h.cache.Get(r.Context(), cacheKey, &cached); err == nil {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	item, err := h.provider.VideoInfo(r.Context(), videoID)
	if err != nil {
		if !errors.Is(err, video.ErrNotFound) {
			slog.Error("video lookup failed", "video_id", videoID, "error", err)
		}
		writeJSON(w, http.StatusNotFound, videoNotFoundResponse{Reason: "Video not found"})
		return
	}

	resp := eligibilityResponse{Eligibility: video.CheckEligibility(item)}

	if h.cache != nil {
		if err := h.cache.Set(r.Context(), cacheKey, resp, h.cacheTTL); err != nil {
			slog.Warn("cache eligibility", "video_id", videoID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *VideosHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	userID := auth.UserIDFromContext(r.Context())

	settings := models.DefaultChildSettings(userID)
	if h.settings != nil {
		s, err := h.settings.GetChildSettings(r.Context(), userID)
		if err != nil {
			slog.Warn("load child settings", "user_id", userID, "error", err)
		} else {
			settings = s
		}
	}

	if !settings.AllowExplore {
		writeError(w, http.StatusForbidden, "video exploration is turned off for this account")
		return
	}

	results, err := h.provider.SearchKids(r.Context(), query, settings.AllowShorts)
	if err != nil {
		slog.Error("video search failed", "error", err)
		writeError(w, http.StatusBadGateway, "video search is temporarily unavailable")
		return
	}
	if results == nil {
		results = []video.SearchResult{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"videos": results})
}
