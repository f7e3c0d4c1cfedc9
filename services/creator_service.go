package services

import (
	"context"
	"sort"

	"github.com/esiebomaj/Warmer-Pro/logger"
	"github.com/esiebomaj/Warmer-Pro/models"
)

// CreatorFilters narrows the creator listing. Nil bounds are ignored.
type CreatorFilters struct {
	FollowersGT     *int
	FollowersLT     *int
	SortByEmergence bool
}

// CreatorService lists the creators behind a keyword's posts, optionally
// ranked by emergence score.
type CreatorService struct {
	searcher    PostSearcher
	profiles    ProfileFetcher
	searchLimit int
}

func NewCreatorService(searcher PostSearcher, profiles ProfileFetcher, searchLimit int) *CreatorService {
	return &CreatorService{searcher: searcher, profiles: profiles, searchLimit: searchLimit}
}

// GetCreators searches Instagram posts for the keyword, resolves the unique
// post owners to profiles and applies the filters. With SortByEmergence the
// result is ranked by growth potential; private profiles are never scored.
func (s *CreatorService) GetCreators(ctx context.Context, keyword string, filters CreatorFilters) ([]models.ScoredCreator, error) {
	raw, err := s.searcher.SearchPosts(ctx, models.PlatformInstagram, keyword, s.searchLimit)
	if err != nil {
		return nil, err
	}

	posts := make([]models.Post, 0, len(raw))
	ownerSet := map[string]bool{}
	for _, pp := range raw {
		p := pp.Normalize()
		posts = append(posts, p)
		if p.Owner != "" {
			ownerSet[p.Owner] = true
		}
	}

	owners := make([]string, 0, len(ownerSet))
	for owner := range ownerSet {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	profiles, err := s.profiles.GetProfiles(ctx, owners)
	if err != nil {
		return nil, err
	}
	logger.InfoWithFields("resolved creator profiles", logger.Fields{
		"keyword":  keyword,
		"owners":   len(owners),
		"profiles": len(profiles),
	})

	creators := make([]models.ScoredCreator, 0, len(profiles))
	for _, owner := range owners {
		profile, ok := profiles[owner]
		if !ok {
			continue
		}
		if filters.FollowersGT != nil && profile.FollowersCount < *filters.FollowersGT {
			continue
		}
		if filters.FollowersLT != nil && profile.FollowersCount > *filters.FollowersLT {
			continue
		}

		creator := models.ScoredCreator{Profile: profile}
		if filters.SortByEmergence {
			creator.Emergence = ScoreCreator(profile, posts)
		}
		creators = append(creators, creator)
	}

	if filters.SortByEmergence {
		SortByEmergence(creators)
	}
	return creators, nil
}
