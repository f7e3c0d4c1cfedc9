package apify

import (
	"context"
	"fmt"

	"github.com/esiebomaj/Warmer-Pro/models"
)

// Actor IDs, in the owner~name form the REST API expects.
const (
	instagramSearchActor  = "apify~instagram-scraper"
	instagramProfileActor = "apify~instagram-profile-scraper"
	linkedinSearchActor   = "curious_coder~linkedin-post-search-scraper"
	twitterSearchActor    = "apidojo~tweet-scraper"
)

// SearchPosts queries one platform for posts matching the keyword and tags
// every result with its platform of origin. It may return fewer than limit
// records, or none.
func (c *Client) SearchPosts(ctx context.Context, platform, keyword string, limit int) ([]models.PlatformPost, error) {
	switch platform {
	case models.PlatformInstagram:
		return c.searchInstagram(ctx, keyword, limit)
	case models.PlatformLinkedIn:
		return c.searchLinkedIn(ctx, keyword, limit)
	case models.PlatformTwitter:
		return c.searchTwitter(ctx, keyword, limit)
	}
	return nil, fmt.Errorf("unsupported platform: %s", platform)
}

// searchInstagram runs a hashtag search. Each hashtag detail record carries
// its top posts nested under topPosts; those are what we keep.
func (c *Client) searchInstagram(ctx context.Context, keyword string, limit int) ([]models.PlatformPost, error) {
	input := map[string]any{
		"search":        keyword,
		"searchType":    "hashtag",
		"searchLimit":   5,
		"resultsType":   "details",
		"resultsLimit":  2,
		"addParentData": false,
	}

	var items []struct {
		TopPosts []models.InstagramPost `json:"topPosts"`
	}
	if err := c.runActor(ctx, instagramSearchActor, input, &items); err != nil {
		return nil, err
	}

	posts := make([]models.PlatformPost, 0, limit)
	for _, item := range items {
		for i := range item.TopPosts {
			if len(posts) >= limit {
				return posts, nil
			}
			posts = append(posts, models.PlatformPost{
				Platform:  models.PlatformInstagram,
				Instagram: &item.TopPosts[i],
			})
		}
	}
	return posts, nil
}

func (c *Client) searchLinkedIn(ctx context.Context, keyword string, limit int) ([]models.PlatformPost, error) {
	input := map[string]any{
		"keyword": keyword,
		"limit":   limit,
		"sortBy":  "date_posted",
	}

	var items []models.LinkedInPost
	if err := c.runActor(ctx, linkedinSearchActor, input, &items); err != nil {
		return nil, err
	}

	posts := make([]models.PlatformPost, 0, len(items))
	for i := range items {
		if len(posts) >= limit {
			break
		}
		posts = append(posts, models.PlatformPost{
			Platform: models.PlatformLinkedIn,
			LinkedIn: &items[i],
		})
	}
	return posts, nil
}

func (c *Client) searchTwitter(ctx context.Context, keyword string, limit int) ([]models.PlatformPost, error) {
	input := map[string]any{
		"searchTerms": []string{keyword},
		"maxItems":    limit,
		"sort":        "Latest",
	}

	var items []models.TwitterPost
	if err := c.runActor(ctx, twitterSearchActor, input, &items); err != nil {
		return nil, err
	}

	posts := make([]models.PlatformPost, 0, len(items))
	for i := range items {
		if len(posts) >= limit {
			break
		}
		posts = append(posts, models.PlatformPost{
			Platform: models.PlatformTwitter,
			Twitter:  &items[i],
		})
	}
	return posts, nil
}

// GetProfiles scrapes creator profiles for the given usernames and returns
// them keyed by username. Usernames the scraper could not resolve are simply
// absent from the map.
func (c *Client) GetProfiles(ctx context.Context, usernames []string) (map[string]models.CreatorProfile, error) {
	if len(usernames) == 0 {
		return map[string]models.CreatorProfile{}, nil
	}

	input := map[string]any{"usernames": usernames}

	var items []models.CreatorProfile
	if err := c.runActor(ctx, instagramProfileActor, input, &items); err != nil {
		return nil, err
	}

	profiles := make(map[string]models.CreatorProfile, len(items))
	for _, p := range items {
		if p.Username == "" {
			continue
		}
		profiles[p.Username] = p
	}
	return profiles, nil
}
