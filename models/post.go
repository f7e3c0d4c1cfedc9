package models

import (
	"fmt"
	"strings"
	"time"
)

// Supported platform tags. Every post is tagged with one of these before it
// enters scoring.
const (
	PlatformInstagram = "instagram"
	PlatformLinkedIn  = "linkedin"
	PlatformTwitter   = "twitter"
)

// AllPlatforms lists the platforms searched when a request does not narrow
// them down.
var AllPlatforms = []string{PlatformInstagram, PlatformLinkedIn, PlatformTwitter}

// InstagramPost is the raw record shape returned by the Instagram scraper.
type InstagramPost struct {
	Caption       string   `json:"caption"`
	Hashtags      []string `json:"hashtags"`
	LikesCount    int      `json:"likesCount"`
	CommentsCount int      `json:"commentsCount"`
	OwnerUsername string   `json:"ownerUsername"`
	OwnerFullName string   `json:"ownerFullName"`
	URL           string   `json:"url"`
	ShortCode     string   `json:"shortCode"`
	DisplayURL    string   `json:"displayUrl"`
	Timestamp     string   `json:"timestamp"`
}

// LinkedInPost is the raw record shape returned by the LinkedIn scraper.
// Engagement fields come in two naming variants depending on the actor
// version; pointers keep "absent" distinguishable from zero.
type LinkedInPost struct {
	Text          string `json:"text"`
	Commentary    string `json:"commentary"`
	NumLikes      *int   `json:"numLikes"`
	ReactionCount *int   `json:"reactionCount"`
	NumComments   *int   `json:"numComments"`
	CommentCount  *int   `json:"commentCount"`
	NumShares     *int   `json:"numShares"`
	ShareCount    *int   `json:"shareCount"`
	AuthorName    string `json:"authorName"`
	AuthorProfile string `json:"authorProfileUrl"`
	URL           string `json:"url"`
	PostURL       string `json:"postUrl"`
	PostedAtISO   string `json:"postedAtISO"`
	PostedAtMs    int64  `json:"postedAtTimestamp"`
}

// TwitterEngagement is the nested engagement block on tweets.
type TwitterEngagement struct {
	Likes    int `json:"likes"`
	Retweets int `json:"retweets"`
	Replies  int `json:"replies"`
}

// TwitterPost is the raw record shape returned by the Twitter/X scraper.
type TwitterPost struct {
	ID         string            `json:"id"`
	Text       string            `json:"text"`
	FullText   string            `json:"full_text"`
	Engagement TwitterEngagement `json:"engagement"`
	Username   string            `json:"username"`
	URL        string            `json:"url"`
	CreatedAt  string            `json:"created_at"`
}

// PlatformPost is the tagged union of the three raw platform shapes.
// Exactly one of the variant pointers is set, matching Platform.
type PlatformPost struct {
	Platform  string         `json:"platform"`
	Instagram *InstagramPost `json:"instagram,omitempty"`
	LinkedIn  *LinkedInPost  `json:"linkedin,omitempty"`
	Twitter   *TwitterPost   `json:"twitter,omitempty"`
}

// Post is the canonical normalized post used by all downstream scoring.
// Counters are likes/comments/shares equivalents after platform field
// precedence has been applied.
type Post struct {
	Platform string    `json:"platform"`
	Text     string    `json:"text"`
	Likes    int       `json:"likes"`
	Comments int       `json:"comments"`
	Shares   int       `json:"shares"`
	PostedAt time.Time `json:"posted_at"`
	// HasTimestamp is false when the raw record carried no parseable
	// timestamp. Such posts are treated as recent, never excluded.
	HasTimestamp bool     `json:"has_timestamp"`
	URL          string   `json:"url"`
	Owner        string   `json:"owner"`
	Hashtags     []string `json:"hashtags,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
}

// Normalize collapses the tagged union into the canonical Post. The platform
// tag is always set on the result, even for an empty variant.
func (pp PlatformPost) Normalize() Post {
	switch {
	case pp.Instagram != nil:
		return pp.Instagram.normalize()
	case pp.LinkedIn != nil:
		return pp.LinkedIn.normalize()
	case pp.Twitter != nil:
		return pp.Twitter.normalize()
	}
	return Post{Platform: pp.Platform}
}

func (p *InstagramPost) normalize() Post {
	url := p.URL
	if url == "" && p.ShortCode != "" {
		url = fmt.Sprintf("https://www.instagram.com/p/%s/", p.ShortCode)
	}
	ts, ok := parseTimestamp(p.Timestamp)
	return Post{
		Platform:     PlatformInstagram,
		Text:         p.Caption,
		Likes:        p.LikesCount,
		Comments:     p.CommentsCount,
		PostedAt:     ts,
		HasTimestamp: ok,
		URL:          url,
		Owner:        p.OwnerUsername,
		Hashtags:     p.Hashtags,
		ImageURL:     p.DisplayURL,
	}
}

func (p *LinkedInPost) normalize() Post {
	text := p.Text
	if text == "" {
		text = p.Commentary
	}
	url := p.URL
	if url == "" {
		url = p.PostURL
	}
	ts, ok := parseTimestamp(p.PostedAtISO)
	if !ok && p.PostedAtMs > 0 {
		ts, ok = time.UnixMilli(p.PostedAtMs).UTC(), true
	}
	owner := p.AuthorName
	if owner == "" {
		owner = p.AuthorProfile
	}
	return Post{
		Platform:     PlatformLinkedIn,
		Text:         text,
		Likes:        firstNonNil(p.NumLikes, p.ReactionCount),
		Comments:     firstNonNil(p.NumComments, p.CommentCount),
		Shares:       firstNonNil(p.NumShares, p.ShareCount),
		PostedAt:     ts,
		HasTimestamp: ok,
		URL:          url,
		Owner:        owner,
	}
}

func (p *TwitterPost) normalize() Post {
	text := p.Text
	if text == "" {
		text = p.FullText
	}
	url := p.URL
	if url == "" && p.Username != "" && p.ID != "" {
		url = fmt.Sprintf("https://twitter.com/%s/status/%s", p.Username, p.ID)
	}
	ts, ok := parseTimestamp(p.CreatedAt)
	return Post{
		Platform:     PlatformTwitter,
		Text:         text,
		Likes:        p.Engagement.Likes,
		Comments:     p.Engagement.Replies,
		Shares:       p.Engagement.Retweets,
		PostedAt:     ts,
		HasTimestamp: ok,
		URL:          url,
		Owner:        p.Username,
	}
}

// firstNonNil applies the documented field precedence for aliased counters.
func firstNonNil(vals ...*int) int {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

// timestampLayouts are tried in order. The Ruby date layout covers the
// legacy Twitter created_at format.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
	time.RubyDate,
}

// parseTimestamp parses a raw timestamp string best-effort. Callers must
// treat ok=false as "recent", not as an error (fail-open recency policy).
func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
