package video

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
)

// SearchResult is a kid-safe video listing entry.
type SearchResult struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl"`
	ChannelTitle string `json:"channelTitle"`
}

// Keyword lists applied to title and description. A candidate video has to
// avoid every blocked keyword and hit at least one allowed keyword; anything
// the lists cannot vouch for is dropped.
var (
	allowedKeywords = []string{
		"kids", "children", "learning", "education", "cartoon",
		"math for kids", "science for kids", "drawing for kids",
		"story for kids", "alphabet", "numbers", "nursery",
	}
	blockedKeywords = []string{
		"prank", "horror", "scary", "fight", "gun", "kill",
		"blood", "kiss", "dating", "boyfriend", "girlfriend",
		"challenge", "adult", "18+", "violence",
	}
)

func containsAny(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet *itemSnippet `json:"snippet"`
	} `json:"items"`
}

// SearchKids runs a strict safe search for a child's explore query: the
// request itself is restricted (strict safe search, embeddable, syndicated,
// education category), candidates are filtered through the keyword lists, and
// survivors are validated in one batch metadata call so non-embeddable,
// non-public, short (when shorts are disabled) and region-restricted videos
// never reach the player.
func (c *Client) SearchKids(ctx context.Context, query string, allowShorts bool) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", "20")
	params.Set("safeSearch", "strict")
	params.Set("videoEmbeddable", "true")
	params.Set("videoSyndicated", "true")
	params.Set("videoCategoryId", "27")
	params.Set("relevanceLanguage", "en")
	params.Set("key", c.apiKey)
	if !allowShorts {
		params.Set("videoDuration", "medium")
	}

	var parsed searchResponse
	if err := c.get(ctx, "/search", params, &parsed); err != nil {
		return nil, err
	}

	candidates := make([]SearchResult, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		if it.ID.VideoID == "" || it.Snippet == nil {
			continue
		}
		text := it.Snippet.Title + " " + it.Snippet.Description
		if containsAny(text, blockedKeywords) {
			continue
		}
		if !containsAny(it.Snippet.Title, allowedKeywords) && !containsAny(it.Snippet.Description, allowedKeywords) {
			continue
		}
		thumb := it.Snippet.Thumbnails.Medium.URL
		if thumb == "" {
			thumb = it.Snippet.Thumbnails.Default.URL
		}
		if thumb == "" {
			continue
		}
		candidates = append(candidates, SearchResult{
			ID:           it.ID.VideoID,
			Title:        it.Snippet.Title,
			ThumbnailURL: thumb,
			ChannelTitle: it.Snippet.ChannelTitle,
		})
	}

	if len(candidates) == 0 {
		return candidates, nil
	}

	ids := make([]string, len(candidates))
	for i, v := range candidates {
		ids[i] = v.ID
	}

	details, err := c.videoDetails(ctx, ids)
	if err != nil {
		// Validation is best-effort; the keyword-filtered list already passed
		// the strict search constraints.
		slog.Warn("youtube details validation failed", "error", err)
		return candidates, nil
	}

	validated := candidates[:0]
	for _, v := range candidates {
		det, ok := details[v.ID]
		if !ok {
			slog.Warn("youtube details missing, excluding", "video_id", v.ID)
			continue
		}
		e := CheckEligibility(&det)
		if !e.Embeddable {
			slog.Warn("video not embeddable, excluding", "video_id", v.ID)
			continue
		}
		if e.Privacy != "public" && e.Privacy != "unknown" {
			slog.Warn("video not public, excluding", "video_id", v.ID, "privacy", e.Privacy)
			continue
		}
		if !allowShorts && e.DurationSeconds > 0 && e.DurationSeconds < 60 {
			slog.Warn("short video excluded", "video_id", v.ID, "duration", e.DurationSeconds)
			continue
		}
		if e.RegionBlocked {
			slog.Warn("region-restricted video excluded", "video_id", v.ID)
			continue
		}
		validated = append(validated, v)
	}

	return validated, nil
}
