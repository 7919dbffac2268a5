package video

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestYouTube(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-key", 5*time.Second)
	c.baseURL = srv.URL
	return c
}

func TestVideoInfo_Found(t *testing.T) {
	c := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "abc123" {
			t.Errorf("id param: %q", got)
		}
		w.Write([]byte(`{"items":[{
			"id":"abc123",
			"status":{"embeddable":true,"privacyStatus":"public"},
			"contentDetails":{"duration":"PT5M"},
			"snippet":{"title":"Shapes","channelTitle":"Learn TV"}
		}]}`))
	})

	item, err := c.VideoInfo(context.Background(), "abc123")
	if err != nil {
		t.Fatal(err)
	}
	e := CheckEligibility(item)
	if !e.Playable || e.DurationSeconds != 300 {
		t.Fatalf("eligibility: %+v", e)
	}
}

func TestVideoInfo_NotFound(t *testing.T) {
	c := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	})

	_, err := c.VideoInfo(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error: %v", err)
	}
}

func TestSearchKids_FiltersAndValidates(t *testing.T) {
	c := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("part") {
		case "snippet":
			if got := r.URL.Query().Get("safeSearch"); got != "strict" {
				t.Errorf("safeSearch: %q", got)
			}
			w.Write([]byte(`{"items":[
				{"id":{"videoId":"good"},"snippet":{"title":"Math for kids","description":"counting","thumbnails":{"medium":{"url":"https://i.example/1.jpg"}}}},
				{"id":{"videoId":"scaryone"},"snippet":{"title":"Scary prank for kids","description":"","thumbnails":{"medium":{"url":"https://i.example/2.jpg"}}}},
				{"id":{"videoId":"offtopic"},"snippet":{"title":"Quarterly earnings call","description":"finance","thumbnails":{"medium":{"url":"https://i.example/3.jpg"}}}},
				{"id":{"videoId":"noembed"},"snippet":{"title":"Alphabet song for kids","description":"","thumbnails":{"medium":{"url":"https://i.example/4.jpg"}}}}
			]}`))
		default:
			w.Write([]byte(`{"items":[
				{"id":"good","status":{"embeddable":true,"privacyStatus":"public"},"contentDetails":{"duration":"PT3M"}},
				{"id":"noembed","status":{"embeddable":false,"privacyStatus":"public"},"contentDetails":{"duration":"PT3M"}}
			]}`))
		}
	})

	got, err := c.SearchKids(context.Background(), "math", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "good" {
		t.Fatalf("results: %+v", got)
	}
}

func TestSearchKids_ShortsExcludedWhenDisabled(t *testing.T) {
	c := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("part") {
		case "snippet":
			if got := r.URL.Query().Get("videoDuration"); got != "medium" {
				t.Errorf("videoDuration: %q", got)
			}
			w.Write([]byte(`{"items":[
				{"id":{"videoId":"short1"},"snippet":{"title":"Numbers for kids","description":"","thumbnails":{"default":{"url":"https://i.example/s.jpg"}}}}
			]}`))
		default:
			w.Write([]byte(`{"items":[
				{"id":"short1","status":{"embeddable":true,"privacyStatus":"public"},"contentDetails":{"duration":"PT30S"}}
			]}`))
		}
	})

	got, err := c.SearchKids(context.Background(), "numbers", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("short video survived: %+v", got)
	}
}
