package models

import "time"

// TrendingTopic is the read-only view of one scored hashtag. Created once
// per aggregation pass and serialized immediately; never mutated afterward.
type TrendingTopic struct {
	Topic           string      `json:"topic"`
	Score           float64     `json:"score"`
	Platforms       []string    `json:"platforms"`
	PostCount       int         `json:"post_count"`
	TotalEngagement int         `json:"total_engagement"`
	SamplePosts     []TopicPost `json:"sample_posts"`
	Velocity        string      `json:"velocity"`
}

// TopicPost is the capped sample of a topic's source posts.
type TopicPost struct {
	Platform   string `json:"platform"`
	URL        string `json:"url"`
	Owner      string `json:"owner,omitempty"`
	Engagement int    `json:"engagement"`
	Text       string `json:"text"`
}

// PostIndexEntry maps a clustering-call ordinal back to a real post.
// Ordinals are 1-based and only valid within a single clustering call.
type PostIndexEntry struct {
	Number   int    `json:"number"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// PostRef is a resolved reference to a source post.
type PostRef struct {
	Number   int    `json:"number"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// SampleQuote is a literal quote from the corpus. PostNumbers preserves the
// ordinals exactly as the model returned them; Posts holds only the subset
// that resolved against the index.
type SampleQuote struct {
	Text        string    `json:"text"`
	PostNumbers []int     `json:"post_numbers"`
	Posts       []PostRef `json:"posts"`
}

// ConversationCluster is one semantically grouped discussion with resolved
// provenance.
type ConversationCluster struct {
	Topic        string        `json:"topic"`
	Description  string        `json:"description"`
	Sentiment    string        `json:"sentiment"`
	Subtopics    []string      `json:"subtopics"`
	SampleQuotes []SampleQuote `json:"sample_quotes"`
	RelatedPosts []PostRef     `json:"related_posts"`
	Mentions     int           `json:"mentions"`
}

// RawQuote is a sample quote as emitted by the clustering model, before
// ordinal resolution.
type RawQuote struct {
	Text        string `json:"text"`
	PostNumbers []int  `json:"post_numbers"`
}

// RawCluster is the clustering model's output shape. Post ordinals are not
// yet validated against the index.
type RawCluster struct {
	Topic        string     `json:"topic"`
	Description  string     `json:"description"`
	Sentiment    string     `json:"sentiment"`
	Subtopics    []string   `json:"subtopics"`
	PostNumbers  []int      `json:"post_numbers"`
	SampleQuotes []RawQuote `json:"sample_quotes"`
}

// ConversationAnalysis is the clustering result plus the metadata that is
// preserved even when the collaborator call fails.
type ConversationAnalysis struct {
	Clusters           []ConversationCluster `json:"clusters"`
	TotalPostsAnalyzed int                   `json:"total_posts_analyzed"`
	PostIndex          []PostIndexEntry      `json:"post_index"`
}

// TrendingSummary combines topic-derived totals with request metadata.
type TrendingSummary struct {
	Keywords          []string       `json:"keywords"`
	Platforms         []string       `json:"platforms"`
	TimeframeHours    int            `json:"timeframe_hours"`
	TotalPosts        int            `json:"total_posts"`
	TotalEngagement   int            `json:"total_engagement"`
	PlatformBreakdown map[string]int `json:"platform_breakdown"`
	TopTopic          *TrendingTopic `json:"top_topic,omitempty"`
	AnalyzedAt        time.Time      `json:"analyzed_at"`
}

// TrendingReport is the full response of one aggregation pass.
type TrendingReport struct {
	TrendingTopics []TrendingTopic      `json:"trending_topics"`
	Conversations  ConversationAnalysis `json:"conversations"`
	Summary        TrendingSummary      `json:"summary"`
}
