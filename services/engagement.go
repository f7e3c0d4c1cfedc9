package services

import "github.com/esiebomaj/Warmer-Pro/models"

// EngagementBreakdown carries the raw per-post engagement components after
// platform field precedence has been applied.
type EngagementBreakdown struct {
	Likes    int
	Comments int
	Shares   int
}

// Composite is the weighted engagement measure. Shares and retweets count
// double; the weighting must be preserved exactly for score reproducibility.
func (b EngagementBreakdown) Composite() int {
	return b.Likes + b.Comments + 2*b.Shares
}

// Breakdown extracts the engagement components of a normalized post.
func Breakdown(p models.Post) EngagementBreakdown {
	return EngagementBreakdown{
		Likes:    p.Likes,
		Comments: p.Comments,
		Shares:   p.Shares,
	}
}

// CompositeEngagement is the single engagement number for a post. Always
// non-negative for non-negative counters and a pure function of them.
func CompositeEngagement(p models.Post) int {
	return Breakdown(p).Composite()
}

// PrimarySignal is the platform's primary engagement signal, used to
// estimate views.
func PrimarySignal(p models.Post) int {
	return p.Likes
}
