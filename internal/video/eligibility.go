package video

import "regexp"

// Eligibility is the policy view of a video's metadata: Playable plus the
// diagnostics that explain why the video was excluded when it is not.
type Eligibility struct {
	Playable        bool   `json:"playable"`
	Embeddable      bool   `json:"embeddable"`
	Privacy         string `json:"privacy"`
	DurationSeconds int    `json:"duration"`
	RegionBlocked   bool   `json:"regionBlocked"`
	Snippet         struct {
		Title        string `json:"title"`
		ChannelTitle string `json:"channelTitle"`
	} `json:"snippet"`
}

var isoDuration = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseDuration converts an ISO-8601 duration token (PT#H#M#S) to total
// seconds. Missing components default to zero; unparseable input yields zero.
func ParseDuration(iso string) int {
	m := isoDuration.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}
	return atoiDefault(m[1])*3600 + atoiDefault(m[2])*60 + atoiDefault(m[3])
}

func atoiDefault(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// CheckEligibility derives the playability policy from upstream metadata:
// playable = embeddable && public && not region-restricted. Missing optional
// fields never panic; absent embeddable defaults to true (the provider omits
// it for ordinary videos), and any region restriction entry counts as
// restricted.
func CheckEligibility(item *Item) Eligibility {
	var e Eligibility

	e.Embeddable = true
	privacy := "unknown"
	if item.Status != nil {
		if item.Status.Embeddable != nil {
			e.Embeddable = *item.Status.Embeddable
		}
		if item.Status.PrivacyStatus != "" {
			privacy = item.Status.PrivacyStatus
		}
	}
	e.Privacy = privacy

	if item.ContentDetails != nil {
		e.DurationSeconds = ParseDuration(item.ContentDetails.Duration)
		if rr := item.ContentDetails.RegionRestriction; rr != nil {
			e.RegionBlocked = len(rr.Blocked) > 0 || len(rr.Allowed) > 0
		}
	}

	if item.Snippet != nil {
		e.Snippet.Title = item.Snippet.Title
		e.Snippet.ChannelTitle = item.Snippet.ChannelTitle
	}

	e.Playable = e.Embeddable && e.Privacy == "public" && !e.RegionBlocked
	return e
}
