package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kidsphere/kidsphere/internal/models"
	"github.com/kidsphere/kidsphere/internal/video"
)

type stubVideoProvider struct {
	item        *video.Item
	infoErr     error
	results     []video.SearchResult
	searchErr   error
	gotShorts   bool
	searchCalls int
}

func (p *stubVideoProvider) VideoInfo(ctx context.Context, videoID string) (*video.Item, error) {
	return p.item, p.infoErr
}

func (p *stubVideoProvider) SearchKids(ctx context.Context, query string, allowShorts bool) ([]video.SearchResult, error) {
	p.searchCalls++
	p.gotShorts = allowShorts
	return p.results, p.searchErr
}

type stubSettings struct {
	settings models.ChildSettings
}

func (s *stubSettings) GetChildSettings(ctx context.Context, userID int64) (models.ChildSettings, error) {
	return s.settings, nil
}

func videosRouter(h *VideosHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/videos/search", h.Search)
	r.Get("/videos/{id}/eligibility", h.Eligibility)
	return r
}

func TestEligibilityNotFound(t *testing.T) {
	provider := &stubVideoProvider{infoErr: video.ErrNotFound}
	h := NewVideosHandler(provider, nil, nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/videos/abc123/eligibility", nil)
	rec := httptest.NewRecorder()
	videosRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body videoNotFoundResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Playable {
		t.Error("expected playable = false")
	}
	if body.Reason != "Video not found" {
		t.Errorf("reason = %q, want Video not found", body.Reason)
	}
}

func playableItem(t *testing.T) *video.Item {
	t.Helper()
	raw := `{
		"id": "abc123",
		"status": {"embeddable": true, "privacyStatus": "public"},
		"contentDetails": {"duration": "PT4M10S"},
		"snippet": {"title": "Volcano science", "channelTitle": "Science Kids"}
	}`
	var item video.Item
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("unmarshal item: %v", err)
	}
	return &item
}

func TestEligibilityPlayable(t *testing.T) {
	provider := &stubVideoProvider{item: playableItem(t)}
	h := NewVideosHandler(provider, nil, nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/videos/abc123/eligibility", nil)
	rec := httptest.NewRecorder()
	videosRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body video.Eligibility
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Playable {
		t.Error("expected playable = true")
	}
	if body.DurationSeconds != 250 {
		t.Errorf("duration = %d, want 250", body.DurationSeconds)
	}
}

func TestVideoSearchExploreDisabled(t *testing.T) {
	provider := &stubVideoProvider{}
	settings := &stubSettings{settings: models.ChildSettings{UserID: 1, AllowExplore: false}}
	h := NewVideosHandler(provider, settings, nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/videos/search?q=volcanoes", nil)
	rec := httptest.NewRecorder()
	videosRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if provider.searchCalls != 0 {
		t.Errorf("search called %d times, want 0", provider.searchCalls)
	}
}

func TestVideoSearchPassesShortsSetting(t *testing.T) {
	provider := &stubVideoProvider{results: []video.SearchResult{{ID: "v1", Title: "Volcanoes for kids"}}}
	settings := &stubSettings{settings: models.ChildSettings{UserID: 1, AllowExplore: true, AllowShorts: true}}
	h := NewVideosHandler(provider, settings, nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/videos/search?q=volcanoes", nil)
	rec := httptest.NewRecorder()
	videosRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !provider.gotShorts {
		t.Error("allowShorts was not passed through")
	}

	var body struct {
		Videos []video.SearchResult `json:"videos"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Videos) != 1 {
		t.Fatalf("videos = %d, want 1", len(body.Videos))
	}
}
