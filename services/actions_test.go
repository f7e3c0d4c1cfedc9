package services_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esiebomaj/Warmer-Pro/models"
	"github.com/esiebomaj/Warmer-Pro/services"
)

// stubProfiles serves canned profiles keyed by username.
type stubProfiles struct {
	profiles map[string]models.CreatorProfile
	err      error
}

func (s *stubProfiles) GetProfiles(_ context.Context, usernames []string) (map[string]models.CreatorProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := map[string]models.CreatorProfile{}
	for _, u := range usernames {
		if p, ok := s.profiles[u]; ok {
			out[u] = p
		}
	}
	return out, nil
}

// stubWriter echoes a deterministic comment per post, failing for the
// configured URLs.
type stubWriter struct {
	mu      sync.Mutex
	failFor map[string]bool
	calls   int
}

func (s *stubWriter) GenerateComment(_ context.Context, post models.Post, _, _, _ string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.failFor[post.URL] {
		return "", errors.New("model unavailable")
	}
	return "great take, @" + post.Owner, nil
}

func actionPost(owner, shortCode string, likes int) models.PlatformPost {
	return models.PlatformPost{
		Platform: models.PlatformInstagram,
		Instagram: &models.InstagramPost{
			Caption:       "a caption about training for " + owner,
			LikesCount:    likes,
			CommentsCount: 3,
			OwnerUsername: owner,
			ShortCode:     shortCode,
			DisplayURL:    "https://cdn.example.com/" + shortCode + ".jpg",
		},
	}
}

func newActionService(searcher services.PostSearcher, profiles services.ProfileFetcher, writer services.CommentWriter) *services.ActionService {
	return services.NewActionService(searcher, profiles, writer, 12)
}

func TestGetActionsBuildsTaskTriples(t *testing.T) {
	searcher := &stubSearcher{posts: map[string][]models.PlatformPost{
		models.PlatformInstagram: {
			actionPost("alice", "p1", 50),
			actionPost("alice", "p2", 80),
			actionPost("bob", "p3", 30),
		},
	}}
	profiles := &stubProfiles{profiles: map[string]models.CreatorProfile{
		"alice": {Username: "alice", ProfilePicURL: "https://cdn.example.com/alice.jpg"},
	}}
	svc := newActionService(searcher, profiles, &stubWriter{})

	actions, err := svc.GetActions(context.Background(), "training")
	require.NoError(t, err)

	// One follow per unique creator plus a like and a comment per post.
	require.Len(t, actions, 8)

	follows := 0
	for _, a := range actions {
		if a.Action == models.ActionFollow {
			follows++
		}
	}
	assert.Equal(t, 2, follows)

	assert.Equal(t, models.ActionFollow, actions[0].Action)
	assert.Equal(t, "https://instagram.com/alice", actions[0].URL)
	assert.Equal(t, "https://cdn.example.com/alice.jpg", actions[0].ImgURL)

	like := actions[1]
	assert.Equal(t, models.ActionLike, like.Action)
	assert.Equal(t, "https://www.instagram.com/p/p1/", like.URL)
	assert.Equal(t, "https://cdn.example.com/p1.jpg", like.ImgURL)
	assert.NotEmpty(t, like.Caption)

	comment := actions[2]
	assert.Equal(t, models.ActionComment, comment.Action)
	assert.Equal(t, like.URL, comment.URL)
	assert.Equal(t, "great take, @alice", comment.Comment)

	// Second alice post gets no second follow.
	assert.Equal(t, models.ActionLike, actions[3].Action)
	assert.Equal(t, "https://www.instagram.com/p/p2/", actions[3].URL)
}

func TestGetActionsTruncatesCaptionPreview(t *testing.T) {
	post := actionPost("alice", "p1", 50)
	post.Instagram.Caption = strings.Repeat("w ", 120)
	searcher := &stubSearcher{posts: map[string][]models.PlatformPost{
		models.PlatformInstagram: {post},
	}}
	svc := newActionService(searcher, &stubProfiles{}, &stubWriter{})

	actions, err := svc.GetActions(context.Background(), "training")
	require.NoError(t, err)
	require.Len(t, actions, 3)

	caption := actions[1].Caption
	assert.True(t, strings.HasSuffix(caption, "..."))
	assert.Len(t, []rune(caption), 103)
}

func TestGetActionsSkipsPostsWithFailedComments(t *testing.T) {
	searcher := &stubSearcher{posts: map[string][]models.PlatformPost{
		models.PlatformInstagram: {
			actionPost("alice", "p1", 50),
			actionPost("bob", "p2", 30),
		},
	}}
	writer := &stubWriter{failFor: map[string]bool{
		"https://www.instagram.com/p/p2/": true,
	}}
	svc := newActionService(searcher, &stubProfiles{}, writer)

	actions, err := svc.GetActions(context.Background(), "training")
	require.NoError(t, err)

	// bob's post contributes nothing, not even a follow.
	require.Len(t, actions, 3)
	for _, a := range actions {
		assert.NotContains(t, a.URL, "bob")
		assert.NotContains(t, a.URL, "p2")
	}
}

func TestGetActionsToleratesProfileLookupFailure(t *testing.T) {
	searcher := &stubSearcher{posts: map[string][]models.PlatformPost{
		models.PlatformInstagram: {actionPost("alice", "p1", 50)},
	}}
	profiles := &stubProfiles{err: errors.New("scraper unavailable")}
	svc := newActionService(searcher, profiles, &stubWriter{})

	actions, err := svc.GetActions(context.Background(), "training")
	require.NoError(t, err)
	require.Len(t, actions, 3)
	assert.Equal(t, models.ActionFollow, actions[0].Action)
	assert.Empty(t, actions[0].ImgURL)
}

func TestGetActionsSearchFailure(t *testing.T) {
	searcher := &stubSearcher{posts: map[string][]models.PlatformPost{}}
	svc := newActionService(searcher, &stubProfiles{}, &stubWriter{})

	_, err := svc.GetActions(context.Background(), "training")
	assert.Error(t, err)
}

func TestGetActionsCapsPostCount(t *testing.T) {
	searcher := &stubSearcher{posts: map[string][]models.PlatformPost{
		models.PlatformInstagram: {
			actionPost("alice", "p1", 50),
			actionPost("bob", "p2", 30),
			actionPost("carol", "p3", 20),
		},
	}}
	writer := &stubWriter{}
	svc := services.NewActionService(searcher, &stubProfiles{}, writer, 2)

	actions, err := svc.GetActions(context.Background(), "training")
	require.NoError(t, err)
	assert.Len(t, actions, 6)
	assert.Equal(t, 2, writer.calls)
}

func TestEngagementPotentialBuckets(t *testing.T) {
	cases := []struct {
		name     string
		likes    int
		comments int
		want     int
	}{
		{"no engagement", 0, 0, 1},
		{"likes only", 50, 0, 2},
		{"decent ratio", 500, 8, 4},
		{"viral", 2000, 200, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := models.Post{Likes: tc.likes, Comments: tc.comments}
			assert.Equal(t, tc.want, services.EngagementPotential(p))
		})
	}
}
