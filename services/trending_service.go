package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/esiebomaj/Warmer-Pro/logger"
	"github.com/esiebomaj/Warmer-Pro/models"
)

// ErrNoPosts signals that no posts could be fetched from any platform. The
// report returned alongside it is still well formed, so callers can render
// it uniformly while distinguishing "no data" from an ordinary empty result.
var ErrNoPosts = errors.New("no posts fetched from any platform")

// maxConcurrentFetches bounds the platform x keyword fan-out against the
// scraping collaborator.
const maxConcurrentFetches = 6

// TrendingService is the top-level aggregator: one shared corpus fetch,
// then trend scoring and conversation clustering in parallel.
type TrendingService struct {
	searcher      PostSearcher
	trends        *TrendScorer
	conversations *ConversationService
	searchLimit   int
}

func NewTrendingService(searcher PostSearcher, trends *TrendScorer, conversations *ConversationService, searchLimit int) *TrendingService {
	return &TrendingService{
		searcher:      searcher,
		trends:        trends,
		conversations: conversations,
		searchLimit:   searchLimit,
	}
}

// IdentifyTrendingTopics fetches posts for every platform x keyword pair and
// merges trend scores and conversation clusters into one report. Individual
// fetch failures are logged and tolerated; the returned report is always
// well formed. ErrNoPosts is returned (with the empty report) only when
// nothing at all could be fetched.
func (s *TrendingService) IdentifyTrendingTopics(ctx context.Context, keywords, platforms []string, timeframeHours int) (*models.TrendingReport, error) {
	platforms = normalizePlatforms(platforms)
	if timeframeHours <= 0 {
		timeframeHours = 24
	}

	corpus := s.fetchCorpus(ctx, keywords, platforms)

	posts := make([]models.Post, 0, len(corpus))
	for _, pp := range corpus {
		posts = append(posts, pp.Normalize())
	}

	// The corpus is complete and read-only from here on; scoring and
	// clustering are independent and run concurrently.
	var (
		wg            sync.WaitGroup
		topics        []models.TrendingTopic
		conversations models.ConversationAnalysis
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		topics = s.trends.ScoreTopics(posts, timeframeHours)
	}()
	go func() {
		defer wg.Done()
		conversations = s.conversations.AnalyzeConversations(ctx, posts)
	}()
	wg.Wait()

	if topics == nil {
		topics = []models.TrendingTopic{}
	}

	report := &models.TrendingReport{
		TrendingTopics: topics,
		Conversations:  conversations,
		Summary:        buildSummary(keywords, platforms, timeframeHours, posts, topics),
	}

	if len(posts) == 0 {
		return report, ErrNoPosts
	}
	return report, nil
}

// fetchCorpus fans out one search per platform x keyword pair. Failures are
// isolated: a failed fetch only means its posts are absent from the corpus.
func (s *TrendingService) fetchCorpus(ctx context.Context, keywords, platforms []string) []models.PlatformPost {
	var (
		mu     sync.Mutex
		corpus []models.PlatformPost
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, platform := range platforms {
		for _, keyword := range keywords {
			g.Go(func() error {
				posts, err := s.searcher.SearchPosts(ctx, platform, keyword, s.searchLimit)
				if err != nil {
					logger.WarnWithFields("platform fetch failed, continuing without it", logger.Fields{
						"platform": platform,
						"keyword":  keyword,
						"error":    err.Error(),
					})
					return nil
				}
				mu.Lock()
				corpus = append(corpus, posts...)
				mu.Unlock()
				return nil
			})
		}
	}
	g.Wait()

	return corpus
}

func buildSummary(keywords, platforms []string, timeframeHours int, posts []models.Post, topics []models.TrendingTopic) models.TrendingSummary {
	breakdown := map[string]int{}
	totalEngagement := 0
	for _, p := range posts {
		breakdown[p.Platform]++
		totalEngagement += CompositeEngagement(p)
	}

	summary := models.TrendingSummary{
		Keywords:          keywords,
		Platforms:         platforms,
		TimeframeHours:    timeframeHours,
		TotalPosts:        len(posts),
		TotalEngagement:   totalEngagement,
		PlatformBreakdown: breakdown,
		AnalyzedAt:        time.Now().UTC(),
	}
	if len(topics) > 0 {
		top := topics[0]
		summary.TopTopic = &top
	}
	return summary
}

// normalizePlatforms lowercases platform names, drops unknown ones and
// defaults to all supported platforms when none remain.
func normalizePlatforms(platforms []string) []string {
	known := map[string]bool{
		models.PlatformInstagram: true,
		models.PlatformLinkedIn:  true,
		models.PlatformTwitter:   true,
	}
	out := make([]string, 0, len(platforms))
	for _, p := range platforms {
		p = strings.ToLower(strings.TrimSpace(p))
		if known[p] {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return append([]string{}, models.AllPlatforms...)
	}
	return out
}
