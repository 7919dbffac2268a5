package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// ErrNotFound is returned when the metadata provider has no record for the
// requested video ID.
var ErrNotFound = errors.New("video not found")

// Client calls the YouTube Data API for video metadata and kid-safe search.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Item is the subset of upstream video metadata the eligibility check needs.
// Optional fields use pointers so absence is distinguishable from defaults.
type Item struct {
	ID             string      `json:"id"`
	Status         *itemStatus `json:"status"`
	ContentDetails *itemDetails `json:"contentDetails"`
	Snippet        *itemSnippet `json:"snippet"`
}

type itemStatus struct {
	Embeddable    *bool  `json:"embeddable"`
	PrivacyStatus string `json:"privacyStatus"`
}

type itemDetails struct {
	Duration          string             `json:"duration"`
	RegionRestriction *regionRestriction `json:"regionRestriction"`
}

type regionRestriction struct {
	Blocked []string `json:"blocked"`
	Allowed []string `json:"allowed"`
}

type itemSnippet struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channelTitle"`
	Thumbnails   struct {
		Medium  struct{ URL string `json:"url"` } `json:"medium"`
		Default struct{ URL string `json:"url"` } `json:"default"`
	} `json:"thumbnails"`
}

type videosResponse struct {
	Items []Item `json:"items"`
}

// VideoInfo fetches status, contentDetails and snippet for one video.
func (c *Client) VideoInfo(ctx context.Context, videoID string) (*Item, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("youtube API key not configured")
	}

	params := url.Values{}
	params.Set("part", "status,contentDetails,snippet")
	params.Set("id", videoID)
	params.Set("key", c.apiKey)

	var parsed videosResponse
	if err := c.get(ctx, "/videos", params, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Items) == 0 {
		return nil, ErrNotFound
	}
	return &parsed.Items[0], nil
}

func (c *Client) videoDetails(ctx context.Context, ids []string) (map[string]Item, error) {
	params := url.Values{}
	params.Set("part", "status,contentDetails")
	params.Set("id", strings.Join(ids, ","))
	params.Set("key", c.apiKey)

	var parsed videosResponse
	if err := c.get(ctx, "/videos", params, &parsed); err != nil {
		return nil, err
	}
	details := make(map[string]Item, len(parsed.Items))
	for _, it := range parsed.Items {
		details[it.ID] = it
	}
	return details, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("youtube request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("youtube %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("youtube %s decode: %w", path, err)
	}
	return nil
}
