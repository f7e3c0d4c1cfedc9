package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/esiebomaj/Warmer-Pro/config"
	"github.com/esiebomaj/Warmer-Pro/logger"
	"github.com/esiebomaj/Warmer-Pro/models"
)

// corpusTextCap bounds the per-post text included in the model corpus.
const corpusTextCap = 500

var validSentiments = map[string]bool{
	"positive": true,
	"negative": true,
	"mixed":    true,
	"neutral":  true,
}

// ConversationService builds the clustering corpus, delegates to the
// language-model collaborator and resolves its output back to real posts.
type ConversationService struct {
	clusterer SemanticClusterer
	cfg       config.AnalyticsConfig
}

func NewConversationService(clusterer SemanticClusterer, cfg config.AnalyticsConfig) *ConversationService {
	return &ConversationService{clusterer: clusterer, cfg: cfg}
}

// AnalyzeConversations runs one clustering pass over the posts. Collaborator
// failure degrades to an empty cluster list; the post-count metadata and
// index are populated either way.
func (s *ConversationService) AnalyzeConversations(ctx context.Context, posts []models.Post) models.ConversationAnalysis {
	kept := s.collect(posts)
	index, corpus := s.buildIndex(kept)

	analysis := models.ConversationAnalysis{
		Clusters:           []models.ConversationCluster{},
		TotalPostsAnalyzed: len(index),
		PostIndex:          index,
	}
	if len(index) == 0 {
		return analysis
	}

	raw, err := s.clusterer.Cluster(ctx, corpus)
	if err != nil {
		logger.ErrorWithFields("conversation clustering failed, returning empty clusters", logger.Fields{
			"error":          err.Error(),
			"posts_analyzed": len(index),
		})
		return analysis
	}

	lookup := make(map[int]models.PostIndexEntry, len(index))
	for _, entry := range index {
		lookup[entry.Number] = entry
	}
	for _, rc := range raw {
		analysis.Clusters = append(analysis.Clusters, s.resolve(rc, lookup))
	}
	return analysis
}

// collect keeps posts with enough text to be worth clustering and ranks
// them by composite engagement descending. The cap that follows is a token
// budget bound, so the highest-engagement posts must come first.
func (s *ConversationService) collect(posts []models.Post) []models.Post {
	kept := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if utf8.RuneCountInString(strings.TrimSpace(p.Text)) < s.cfg.MinPostTextLength {
			continue
		}
		kept = append(kept, p)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return CompositeEngagement(kept[i]) > CompositeEngagement(kept[j])
	})

	if len(kept) > s.cfg.MaxClusterPosts {
		kept = kept[:s.cfg.MaxClusterPosts]
	}
	return kept
}

// buildIndex assigns 1-based ordinals in ranked order and renders the
// corpus. The index is the only channel from model output back to real
// URLs; ordinals are never reused across calls.
func (s *ConversationService) buildIndex(posts []models.Post) ([]models.PostIndexEntry, string) {
	index := make([]models.PostIndexEntry, 0, len(posts))
	var corpus strings.Builder

	for i, p := range posts {
		number := i + 1
		index = append(index, models.PostIndexEntry{
			Number:   number,
			Platform: p.Platform,
			URL:      p.URL,
		})
		fmt.Fprintf(&corpus, "Post %d [%s] (engagement: %d): %s\n\n",
			number, p.Platform, CompositeEngagement(p), truncateRunes(strings.TrimSpace(p.Text), corpusTextCap))
	}
	return index, corpus.String()
}

// resolve maps a raw cluster's ordinals through the index. Unknown ordinals
// are dropped, never fabricated; the quote-level post_numbers are preserved
// exactly as returned so clients can see what the model claimed.
func (s *ConversationService) resolve(rc models.RawCluster, lookup map[int]models.PostIndexEntry) models.ConversationCluster {
	sentiment := strings.ToLower(strings.TrimSpace(rc.Sentiment))
	if !validSentiments[sentiment] {
		sentiment = "neutral"
	}

	related := s.resolveRefs(rc.PostNumbers, lookup)

	quotes := make([]models.SampleQuote, 0, len(rc.SampleQuotes))
	for _, q := range rc.SampleQuotes {
		quotes = append(quotes, models.SampleQuote{
			Text:        q.Text,
			PostNumbers: q.PostNumbers,
			Posts:       s.resolveRefs(q.PostNumbers, lookup),
		})
	}

	return models.ConversationCluster{
		Topic:        rc.Topic,
		Description:  rc.Description,
		Sentiment:    sentiment,
		Subtopics:    rc.Subtopics,
		SampleQuotes: quotes,
		RelatedPosts: related,
		Mentions:     len(related),
	}
}

func (s *ConversationService) resolveRefs(numbers []int, lookup map[int]models.PostIndexEntry) []models.PostRef {
	refs := make([]models.PostRef, 0, len(numbers))
	for _, n := range numbers {
		entry, ok := lookup[n]
		if !ok {
			logger.WarnWithFields("clustering referenced unknown post ordinal, dropping", logger.Fields{
				"ordinal": n,
				"indexed": len(lookup),
			})
			continue
		}
		refs = append(refs, models.PostRef{
			Number:   entry.Number,
			Platform: entry.Platform,
			URL:      entry.URL,
		})
	}
	return refs
}
