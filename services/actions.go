package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/esiebomaj/Warmer-Pro/logger"
	"github.com/esiebomaj/Warmer-Pro/models"
)

// maxConcurrentComments bounds parallel comment generation against the
// language-model collaborator.
const maxConcurrentComments = 4

// captionPreviewCap bounds the caption excerpt attached to like and comment
// actions.
const captionPreviewCap = 100

// ActionService turns a keyword search into concrete engagement tasks:
// follow the creator, like the post, comment on it with generated text.
type ActionService struct {
	searcher PostSearcher
	profiles ProfileFetcher
	writer   CommentWriter
	maxPosts int
}

func NewActionService(searcher PostSearcher, profiles ProfileFetcher, writer CommentWriter, maxPosts int) *ActionService {
	return &ActionService{
		searcher: searcher,
		profiles: profiles,
		writer:   writer,
		maxPosts: maxPosts,
	}
}

// GetActions searches Instagram posts for the keyword and converts each into
// a follow/like/comment task triple. One follow per unique creator; posts
// whose comment generation fails contribute no actions. Output order follows
// the search result order.
func (s *ActionService) GetActions(ctx context.Context, keyword string) ([]models.Action, error) {
	raw, err := s.searcher.SearchPosts(ctx, models.PlatformInstagram, keyword, s.maxPosts)
	if err != nil {
		return nil, err
	}

	posts := make([]models.Post, 0, len(raw))
	ownerSet := map[string]bool{}
	for _, pp := range raw {
		if len(posts) >= s.maxPosts {
			break
		}
		p := pp.Normalize()
		if EngagementPotential(p) < 1 {
			continue
		}
		posts = append(posts, p)
		if p.Owner != "" {
			ownerSet[p.Owner] = true
		}
	}
	if len(posts) == 0 {
		return []models.Action{}, nil
	}

	owners := make([]string, 0, len(ownerSet))
	for owner := range ownerSet {
		owners = append(owners, owner)
	}
	profiles, err := s.profiles.GetProfiles(ctx, owners)
	if err != nil {
		logger.WarnWithFields("profile lookup failed, actions will lack profile pictures", logger.Fields{
			"keyword": keyword,
			"error":   err.Error(),
		})
		profiles = map[string]models.CreatorProfile{}
	}

	comments := s.generateComments(ctx, posts, keyword)

	actions := make([]models.Action, 0, 3*len(posts))
	followed := map[string]bool{}
	for i, p := range posts {
		comment, ok := comments[i]
		if !ok {
			continue
		}
		caption := truncateRunes(p.Text, captionPreviewCap)

		if p.Owner != "" && !followed[p.Owner] {
			followed[p.Owner] = true
			actions = append(actions, models.Action{
				Action: models.ActionFollow,
				URL:    fmt.Sprintf("https://instagram.com/%s", p.Owner),
				ImgURL: profiles[p.Owner].ProfilePicURL,
			})
		}
		actions = append(actions, models.Action{
			Action:  models.ActionLike,
			URL:     p.URL,
			Caption: caption,
			ImgURL:  p.ImageURL,
		})
		actions = append(actions, models.Action{
			Action:  models.ActionComment,
			URL:     p.URL,
			Comment: comment,
			Caption: caption,
			ImgURL:  p.ImageURL,
		})
	}
	return actions, nil
}

// generateComments writes one comment per post in parallel. Failed posts are
// simply absent from the result map.
func (s *ActionService) generateComments(ctx context.Context, posts []models.Post, keyword string) map[int]string {
	results := make([]string, len(posts))
	generated := make([]bool, len(posts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentComments)
	for i, p := range posts {
		g.Go(func() error {
			comment, err := s.writer.GenerateComment(ctx, p, keyword, "", "")
			if err != nil {
				logger.WarnWithFields("comment generation failed, skipping post", logger.Fields{
					"keyword": keyword,
					"url":     p.URL,
					"error":   err.Error(),
				})
				return nil
			}
			results[i] = comment
			generated[i] = true
			return nil
		})
	}
	g.Wait()

	comments := make(map[int]string, len(posts))
	for i := range posts {
		if generated[i] {
			comments[i] = results[i]
		}
	}
	return comments
}

// EngagementPotential is a coarse 0-7 measure of how worthwhile engaging
// with a post is: likes volume, comment-to-like ratio and a recency point.
// Timestamps are unreliable at this stage, so every post gets the recency
// point.
func EngagementPotential(p models.Post) int {
	score := 0
	switch {
	case p.Likes > 1000:
		score += 3
	case p.Likes > 100:
		score += 2
	case p.Likes > 10:
		score += 1
	}
	if p.Likes > 0 {
		ratio := float64(p.Comments) / float64(p.Likes)
		switch {
		case ratio > 0.05:
			score += 3
		case ratio > 0.02:
			score += 2
		case ratio > 0.01:
			score += 1
		}
	}
	score++
	return score
}
