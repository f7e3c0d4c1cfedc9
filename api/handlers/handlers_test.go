package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esiebomaj/Warmer-Pro/api/handlers"
	"github.com/esiebomaj/Warmer-Pro/config"
	"github.com/esiebomaj/Warmer-Pro/models"
	"github.com/esiebomaj/Warmer-Pro/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// failingSearcher records the keywords it was asked for and always fails.
type failingSearcher struct {
	mu       sync.Mutex
	keywords []string
}

func (s *failingSearcher) SearchPosts(_ context.Context, _, keyword string, _ int) ([]models.PlatformPost, error) {
	s.mu.Lock()
	s.keywords = append(s.keywords, keyword)
	s.mu.Unlock()
	return nil, errors.New("scraper unavailable")
}

type noopClusterer struct{}

func (noopClusterer) Cluster(context.Context, string) ([]models.RawCluster, error) {
	return nil, nil
}

type cannedWriter struct {
	lastPlatform string
}

func (w *cannedWriter) GenerateComment(_ context.Context, post models.Post, _, _, _ string) (string, error) {
	w.lastPlatform = post.Platform
	return "sounds great", nil
}

func analyticsCfg() config.AnalyticsConfig {
	return config.AnalyticsConfig{
		VelocityWeight:     0.4,
		EngagementWeight:   0.3,
		FrequencyWeight:    0.3,
		PlatformMultiplier: 1.5,
		NoiseFloor:         5,
		MaxTopics:          20,
		MaxSamplePosts:     5,
		MinViewEstimate:    100,
		MinPostTextLength:  20,
		MaxClusterPosts:    100,
		MaxActionPosts:     12,
	}
}

func doJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func trendingRouter(searcher services.PostSearcher) *gin.Engine {
	cfg := analyticsCfg()
	svc := services.NewTrendingService(
		searcher,
		services.NewTrendScorer(cfg),
		services.NewConversationService(noopClusterer{}, cfg),
		30,
	)
	r := gin.New()
	r.POST("/trending-topics", handlers.TrendingTopicsHandler(svc))
	return r
}

func actionsRouter(searcher services.PostSearcher) *gin.Engine {
	svc := services.NewActionService(searcher, &stubProfiles{}, &cannedWriter{}, 12)
	r := gin.New()
	r.POST("/actions", handlers.ActionsHandler(svc))
	return r
}

// stubProfiles resolves no profiles; enough for the degraded paths under
// test.
type stubProfiles struct{}

func (stubProfiles) GetProfiles(context.Context, []string) (map[string]models.CreatorProfile, error) {
	return map[string]models.CreatorProfile{}, nil
}

func TestTrendingTopicsHandlerRejectsMissingKeywords(t *testing.T) {
	r := trendingRouter(&failingSearcher{})

	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, "/trending-topics", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, "/trending-topics", `{"niche_keywords": []}`).Code)
}

func TestTrendingTopicsHandlerNoDataStillRenders(t *testing.T) {
	r := trendingRouter(&failingSearcher{})

	w := doJSON(t, r, "/trending-topics", `{"niche_keywords": ["fitness"], "platforms": ["instagram"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var report models.TrendingReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Empty(t, report.TrendingTopics)
	assert.Zero(t, report.Summary.TotalPosts)
	assert.Equal(t, []string{"fitness"}, report.Summary.Keywords)
}

func TestActionsHandlerRejectsEmptyKeyword(t *testing.T) {
	r := actionsRouter(&failingSearcher{})

	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, "/actions", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, "/actions", `{"keyword": "   "}`).Code)
}

func TestActionsHandlerDegradesToEmptyList(t *testing.T) {
	r := actionsRouter(&failingSearcher{})

	w := doJSON(t, r, "/actions", `{"keyword": "fitness"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var actions []models.Action
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &actions))
	assert.Empty(t, actions)
}

func TestActionsHandlerLowercasesKeyword(t *testing.T) {
	searcher := &failingSearcher{}
	r := actionsRouter(searcher)

	doJSON(t, r, "/actions", `{"keyword": " Fitness "}`)
	require.Len(t, searcher.keywords, 1)
	assert.Equal(t, "fitness", searcher.keywords[0])
}

func TestCreatorsHandlerRejectsEmptyKeyword(t *testing.T) {
	searcher := &failingSearcher{}
	svc := services.NewCreatorService(searcher, stubProfiles{}, 30)
	r := gin.New()
	r.POST("/creators", handlers.CreatorsHandler(svc))

	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, "/creators", `{"keyword": "  "}`).Code)
	assert.Empty(t, searcher.keywords)
}

func TestGenerateCommentHandler(t *testing.T) {
	writer := &cannedWriter{}
	r := gin.New()
	r.POST("/generate-comment", handlers.GenerateCommentHandler(writer))

	w := doJSON(t, r, "/generate-comment",
		`{"post": {"instagram": {"caption": "leg day", "ownerUsername": "alice"}}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sounds great", resp["comment"])
	assert.Equal(t, models.PlatformInstagram, writer.lastPlatform)
}
