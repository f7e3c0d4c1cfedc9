package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/esiebomaj/Warmer-Pro/config"
	"github.com/esiebomaj/Warmer-Pro/logger"
	"github.com/esiebomaj/Warmer-Pro/models"
)

var hashtagPattern = regexp.MustCompile(`#(\w+)`)

// TrendScorer computes ranked trending topics from a batch of posts.
type TrendScorer struct {
	cfg config.AnalyticsConfig
}

func NewTrendScorer(cfg config.AnalyticsConfig) *TrendScorer {
	return &TrendScorer{cfg: cfg}
}

// hashtagAggregate is the per-run accumulation for one canonical hashtag.
// Request-scoped; never cached across runs.
type hashtagAggregate struct {
	tag             string
	posts           []models.Post
	platforms       map[string]bool
	totalEngagement int
	estimatedViews  float64
}

// ScoreTopics filters posts to the timeframe, aggregates hashtags and
// returns the ranked topics. Fully deterministic for identical input: ties
// are broken by hashtag name.
func (s *TrendScorer) ScoreTopics(posts []models.Post, timeframeHours int) []models.TrendingTopic {
	if timeframeHours <= 0 {
		timeframeHours = 24
	}
	recent := s.filterByTimeframe(posts, timeframeHours)

	aggregates := map[string]*hashtagAggregate{}
	var order []string

	for _, post := range recent {
		composite := CompositeEngagement(post)
		views := float64(PrimarySignal(post)) * s.cfg.ViewMultipliers[post.Platform]

		for _, tag := range extractHashtags(post) {
			agg, ok := aggregates[tag]
			if !ok {
				agg = &hashtagAggregate{tag: tag, platforms: map[string]bool{}}
				aggregates[tag] = agg
				order = append(order, tag)
			}
			agg.posts = append(agg.posts, post)
			agg.platforms[post.Platform] = true
			agg.totalEngagement += composite
			agg.estimatedViews += views
		}
	}

	topics := make([]models.TrendingTopic, 0, len(order))
	for _, tag := range order {
		agg := aggregates[tag]
		if len(agg.posts) == 0 {
			continue
		}
		score := s.score(agg, timeframeHours)
		if score <= s.cfg.NoiseFloor {
			continue
		}
		topics = append(topics, s.buildTopic(agg, score, timeframeHours))
	}

	sort.SliceStable(topics, func(i, j int) bool {
		if topics[i].Score != topics[j].Score {
			return topics[i].Score > topics[j].Score
		}
		return topics[i].Topic < topics[j].Topic
	})

	if len(topics) > s.cfg.MaxTopics {
		topics = topics[:s.cfg.MaxTopics]
	}
	return topics
}

// filterByTimeframe keeps posts newer than the timeframe. Posts without a
// parseable timestamp are kept (fail-open) and the fallback is logged so a
// silently skewed run can be spotted.
func (s *TrendScorer) filterByTimeframe(posts []models.Post, timeframeHours int) []models.Post {
	cutoff := time.Now().Add(-time.Duration(timeframeHours) * time.Hour)

	kept := make([]models.Post, 0, len(posts))
	missing := 0
	for _, p := range posts {
		if !p.HasTimestamp {
			missing++
			kept = append(kept, p)
			continue
		}
		if p.PostedAt.After(cutoff) {
			kept = append(kept, p)
		}
	}
	if missing > 0 {
		logger.WarnWithFields("posts without parseable timestamp treated as recent", logger.Fields{
			"count": missing,
			"total": len(posts),
		})
	}
	return kept
}

// extractHashtags returns the canonical (lowercased, no '#') hashtags of a
// post. Instagram posts carry a pre-populated list; other platforms are
// scanned from the free text.
func extractHashtags(p models.Post) []string {
	var tags []string
	seen := map[string]bool{}

	add := func(raw string) {
		tag := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	if p.Platform == models.PlatformInstagram && len(p.Hashtags) > 0 {
		for _, tag := range p.Hashtags {
			add(tag)
		}
		return tags
	}

	for _, m := range hashtagPattern.FindAllStringSubmatch(p.Text, -1) {
		add(m[1])
	}
	return tags
}

// score applies the weighted trend formula and the cross-platform bonus.
func (s *TrendScorer) score(agg *hashtagAggregate, timeframeHours int) float64 {
	velocity := float64(agg.totalEngagement) / float64(timeframeHours)

	views := agg.estimatedViews
	if views < float64(s.cfg.MinViewEstimate) {
		views = float64(s.cfg.MinViewEstimate)
	}
	engagementRate := float64(agg.totalEngagement) / views * 100

	frequency := float64(len(agg.posts)) * 10

	base := s.cfg.VelocityWeight*velocity +
		s.cfg.EngagementWeight*engagementRate +
		s.cfg.FrequencyWeight*frequency

	return base * s.cfg.PlatformMultiplier * float64(len(agg.platforms))
}

func (s *TrendScorer) buildTopic(agg *hashtagAggregate, score float64, timeframeHours int) models.TrendingTopic {
	platforms := make([]string, 0, len(agg.platforms))
	for p := range agg.platforms {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)

	sampleCount := len(agg.posts)
	if sampleCount > s.cfg.MaxSamplePosts {
		sampleCount = s.cfg.MaxSamplePosts
	}
	samples := make([]models.TopicPost, 0, sampleCount)
	for _, p := range agg.posts[:sampleCount] {
		samples = append(samples, models.TopicPost{
			Platform:   p.Platform,
			URL:        p.URL,
			Owner:      p.Owner,
			Engagement: CompositeEngagement(p),
			Text:       truncateRunes(p.Text, 140),
		})
	}

	return models.TrendingTopic{
		Topic:           "#" + agg.tag,
		Score:           score,
		Platforms:       platforms,
		PostCount:       len(agg.posts),
		TotalEngagement: agg.totalEngagement,
		SamplePosts:     samples,
		Velocity:        fmt.Sprintf("+%d posts/%dh", len(agg.posts), timeframeHours),
	}
}

func truncateRunes(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max]) + "..."
}
