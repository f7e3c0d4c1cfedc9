package dto

import (
	"time"

	"github.com/esiebomaj/Warmer-Pro/models"
)

// PostDTO is the simplified post view returned by the related-posts
// endpoints. Counters are the normalized likes/comments/shares equivalents.
type PostDTO struct {
	Platform   string     `json:"platform"`
	URL        string     `json:"url"`
	Owner      string     `json:"owner,omitempty"`
	Text       string     `json:"text"`
	Likes      int        `json:"likes"`
	Comments   int        `json:"comments"`
	Shares     int        `json:"shares"`
	Engagement int        `json:"engagement"`
	PostedAt   *time.Time `json:"posted_at,omitempty"`
}

// NewPostDTO flattens a normalized post. engagement is supplied by the
// caller so the weighting stays in one place.
func NewPostDTO(p models.Post, engagement int) PostDTO {
	d := PostDTO{
		Platform:   p.Platform,
		URL:        p.URL,
		Owner:      p.Owner,
		Text:       p.Text,
		Likes:      p.Likes,
		Comments:   p.Comments,
		Shares:     p.Shares,
		Engagement: engagement,
	}
	if p.HasTimestamp {
		ts := p.PostedAt
		d.PostedAt = &ts
	}
	return d
}

// GenerateCommentRequest is the body of POST /generate-comment. The post is
// the tagged raw record, matching what the related-posts endpoints emitted.
type GenerateCommentRequest struct {
	Post               models.PlatformPost `json:"post" binding:"required"`
	Keywords           string              `json:"keywords"`
	PriorPostText      string              `json:"prior_post_text"`
	CustomInstructions string              `json:"custom_instructions"`
}

// GenerateCommentResponse is the body returned by POST /generate-comment.
type GenerateCommentResponse struct {
	Comment string `json:"comment"`
}
