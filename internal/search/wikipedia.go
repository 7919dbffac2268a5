package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/kidsphere/kidsphere/internal/moderation"
)

const wikipediaAPI = "https://en.wikipedia.org/w/api.php"

var htmlTag = regexp.MustCompile(`<[^>]+>`)

// WikipediaClient is the safe fallback source: results come only from
// wikipedia.org. It is deliberately conservative and swallows its own
// failures, returning an empty list, because it only runs on the 404
// fallback path where the caller must not see an error.
type WikipediaClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewWikipediaClient(timeout time.Duration) *WikipediaClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WikipediaClient{
		endpoint:   wikipediaAPI,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type wikiSearchResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

// Search queries the MediaWiki search API with the raw query (the kid
// qualifier reduces matches on Wikipedia) and builds article URLs from titles.
func (w *WikipediaClient) Search(ctx context.Context, query string, limit int) []moderation.Result {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("utf8", "1")
	params.Set("format", "json")
	params.Set("srlimit", fmt.Sprintf("%d", limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		slog.Warn("wikipedia fallback request", "error", err)
		return []moderation.Result{}
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		slog.Warn("wikipedia fallback failed", "error", err)
		return []moderation.Result{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("wikipedia fallback status", "status", resp.StatusCode)
		return []moderation.Result{}
	}

	var parsed wikiSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		slog.Warn("wikipedia fallback decode", "error", err)
		return []moderation.Result{}
	}

	results := make([]moderation.Result, 0, len(parsed.Query.Search))
	for _, it := range parsed.Query.Search {
		if it.Title == "" {
			continue
		}
		results = append(results, moderation.Result{
			Title:   it.Title,
			URL:     articleURL(it.Title),
			Content: htmlTag.ReplaceAllString(it.Snippet, ""),
		})
		if len(results) == limit {
			break
		}
	}
	return results
}

func articleURL(title string) string {
	return "https://en.wikipedia.org/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}
