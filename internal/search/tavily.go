package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/kidsphere/kidsphere/internal/moderation"
)

// Source tags for the X-Safe-Search-Source response header.
const (
	SourceTavily    = "tavily"
	SourceWikipedia = "wikipedia"
)

const defaultEndpoint = "https://api.tavily.com/v1/search"

// Kid-safety qualifier appended to every outbound query.
const kidQualifier = " for kids"

// Response is the adapter's normalized output plus the source that served it.
type Response struct {
	Results []moderation.Result
	Source  string
}

// Client calls the Tavily search API, normalizes its varying response shapes,
// and falls back to Wikipedia when the endpoint answers 404. Any other non-OK
// status is a hard failure for the boundary layer to handle.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	fallback   *WikipediaClient
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: timeout},
		fallback:   NewWikipediaClient(timeout),
	}
}

type tavilyRequest struct {
	Q              string `json:"q"`
	Limit          int    `json:"limit"`
	IncludeImages  bool   `json:"includeImages"`
	IncludeAnswers bool   `json:"includeAnswers"`
}

// tavilyItem covers the field aliases seen across provider responses; the
// first non-empty alias wins.
type tavilyItem struct {
	Title    string `json:"title"`
	Headline string `json:"headline"`
	Name     string `json:"name"`

	URL  string `json:"url"`
	Link string `json:"link"`
	Href string `json:"href"`

	Snippet     string `json:"snippet"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

type tavilyResponse struct {
	Results []tavilyItem `json:"results"`
	Items   []tavilyItem `json:"items"`
	Data    []tavilyItem `json:"data"`
}

// Search runs the query against Tavily with the kid-safety qualifier. The 404
// fallback path never returns an error; the caller always gets a best-effort
// result list and a source tag.
func (c *Client) Search(ctx context.Context, query string, limit int) (*Response, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("tavily API key not configured")
	}

	body, _ := json.Marshal(tavilyRequest{
		Q:              query + kidQualifier,
		Limit:          limit,
		IncludeImages:  false,
		IncludeAnswers: false,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("tavily request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		slog.Warn("tavily returned 404, falling back to wikipedia search")
		results := c.fallback.Search(ctx, query, limit)
		return &Response{Results: results, Source: SourceWikipedia}, nil
	}
	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tavily API error: %d %s", resp.StatusCode, string(text))
	}

	var parsed tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		// Malformed body is normalized, not raised.
		slog.Warn("tavily response decode failed", "error", err)
		return &Response{Results: []moderation.Result{}, Source: SourceTavily}, nil
	}

	items := parsed.Results
	if len(items) == 0 {
		items = parsed.Items
	}
	if len(items) == 0 {
		items = parsed.Data
	}

	results := make([]moderation.Result, 0, len(items))
	for _, it := range items {
		r := normalizeItem(it)
		if r.URL == "" {
			continue
		}
		results = append(results, r)
		if len(results) == limit {
			break
		}
	}

	return &Response{Results: results, Source: SourceTavily}, nil
}

func normalizeItem(it tavilyItem) moderation.Result {
	return moderation.Result{
		Title:   firstNonEmpty(it.Title, it.Headline, it.Name, "Untitled"),
		URL:     firstNonEmpty(it.URL, it.Link, it.Href),
		Content: firstNonEmpty(it.Snippet, it.Summary, it.Description),
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
