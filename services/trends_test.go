package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esiebomaj/Warmer-Pro/config"
	"github.com/esiebomaj/Warmer-Pro/models"
	"github.com/esiebomaj/Warmer-Pro/services"
)

func defaultAnalytics() config.AnalyticsConfig {
	return config.AnalyticsConfig{
		VelocityWeight:     0.4,
		EngagementWeight:   0.3,
		FrequencyWeight:    0.3,
		PlatformMultiplier: 1.5,
		NoiseFloor:         5,
		MaxTopics:          20,
		MaxSamplePosts:     5,
		MinViewEstimate:    100,
		ViewMultipliers: map[string]float64{
			"instagram": 10,
			"linkedin":  8,
			"twitter":   20,
		},
		MinPostTextLength: 20,
		MaxClusterPosts:   100,
	}
}

func instagramPost(tag string, likes, comments int) models.Post {
	return models.Post{
		Platform:     models.PlatformInstagram,
		Text:         "some caption about #" + tag,
		Likes:        likes,
		Comments:     comments,
		PostedAt:     time.Now().Add(-1 * time.Hour),
		HasTimestamp: true,
		URL:          "https://www.instagram.com/p/x/",
		Hashtags:     []string{tag},
	}
}

func TestScoreTopicsThreeFitnessPosts(t *testing.T) {
	scorer := services.NewTrendScorer(defaultAnalytics())

	posts := []models.Post{
		instagramPost("fitness", 100, 5),
		instagramPost("fitness", 100, 5),
		instagramPost("fitness", 100, 5),
	}

	topics := scorer.ScoreTopics(posts, 24)
	require.Len(t, topics, 1)

	topic := topics[0]
	assert.Equal(t, "#fitness", topic.Topic)
	assert.Equal(t, 315, topic.TotalEngagement)
	assert.Equal(t, 3, topic.PostCount)
	assert.Equal(t, []string{"instagram"}, topic.Platforms)
	assert.Equal(t, "+3 posts/24h", topic.Velocity)

	// velocity 315/24 = 13.125, rate 315/3000*100 = 10.5, frequency 30,
	// base 17.4, single-platform multiplier 1.5
	assert.InDelta(t, 26.1, topic.Score, 1e-9)
}

func TestScoreTopicsNoiseFloor(t *testing.T) {
	scorer := services.NewTrendScorer(defaultAnalytics())

	// one post with zero engagement: base = 0.3*10 = 3, *1.5 = 4.5 <= 5
	topics := scorer.ScoreTopics([]models.Post{instagramPost("quiet", 0, 0)}, 24)
	assert.Empty(t, topics)
}

func TestScoreTopicsCrossPlatformBonus(t *testing.T) {
	scorer := services.NewTrendScorer(defaultAnalytics())

	single := scorer.ScoreTopics([]models.Post{
		instagramPost("golang", 100, 5),
	}, 24)
	require.Len(t, single, 1)
	assert.Len(t, single[0].Platforms, 1)

	cross := scorer.ScoreTopics([]models.Post{
		instagramPost("golang", 100, 5),
		{
			Platform:     models.PlatformTwitter,
			Text:         "loving #golang today",
			Likes:        100,
			Comments:     5,
			PostedAt:     time.Now().Add(-1 * time.Hour),
			HasTimestamp: true,
		},
	}, 24)
	require.Len(t, cross, 1)
	assert.Len(t, cross[0].Platforms, 2)
	assert.Greater(t, cross[0].Score, single[0].Score)
}

func TestScoreTopicsMonotonicInEngagement(t *testing.T) {
	scorer := services.NewTrendScorer(defaultAnalytics())

	// extra comments raise total engagement without touching the view
	// estimate, the platform count or the post count
	low := scorer.ScoreTopics([]models.Post{instagramPost("yoga", 100, 5)}, 24)
	high := scorer.ScoreTopics([]models.Post{instagramPost("yoga", 100, 50)}, 24)
	require.Len(t, low, 1)
	require.Len(t, high, 1)
	assert.GreaterOrEqual(t, high[0].Score, low[0].Score)
}

func TestScoreTopicsIdempotent(t *testing.T) {
	scorer := services.NewTrendScorer(defaultAnalytics())

	posts := []models.Post{
		instagramPost("fitness", 100, 5),
		instagramPost("health", 300, 25),
		instagramPost("fitness", 50, 2),
	}

	first := scorer.ScoreTopics(posts, 24)
	second := scorer.ScoreTopics(posts, 24)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Topic, second[i].Topic)
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

func TestScoreTopicsFailOpenOnMissingTimestamp(t *testing.T) {
	scorer := services.NewTrendScorer(defaultAnalytics())

	noTimestamp := models.Post{
		Platform: models.PlatformInstagram,
		Likes:    500,
		Comments: 50,
		Hashtags: []string{"mystery"},
	}
	old := instagramPost("mystery", 500, 50)
	old.PostedAt = time.Now().Add(-100 * time.Hour)

	topics := scorer.ScoreTopics([]models.Post{noTimestamp, old}, 24)
	require.Len(t, topics, 1)
	// the undated post is kept, the genuinely old one is filtered out
	assert.Equal(t, 1, topics[0].PostCount)
}

func TestScoreTopicsRegexExtractionForTwitter(t *testing.T) {
	scorer := services.NewTrendScorer(defaultAnalytics())

	topics := scorer.ScoreTopics([]models.Post{{
		Platform:     models.PlatformTwitter,
		Text:         "Big news for #AI and #ML! #ai again",
		Likes:        200,
		Comments:     10,
		PostedAt:     time.Now().Add(-time.Hour),
		HasTimestamp: true,
	}}, 24)

	names := make([]string, 0, len(topics))
	for _, tp := range topics {
		names = append(names, tp.Topic)
	}
	// lowercased and de-duplicated within the post
	assert.Contains(t, names, "#ai")
	assert.Contains(t, names, "#ml")
	assert.Len(t, topics, 2)
}
