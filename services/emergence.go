package services

import (
	"sort"

	"github.com/esiebomaj/Warmer-Pro/models"
)

// ScoreCreator computes the growth-potential score of a creator from their
// profile and their own posts in the batch. Private profiles are not scored
// and return nil.
//
// The bucket boundaries are empirically tuned; they must not drift, or
// scores stop being comparable across runs.
func ScoreCreator(profile models.CreatorProfile, allPosts []models.Post) *models.EmergenceScore {
	if profile.Private {
		return nil
	}

	var own []models.Post
	for _, p := range allPosts {
		if p.Owner == profile.Username {
			own = append(own, p)
		}
	}

	// Division guards: a creator with zero following or zero sampled posts
	// still gets a finite score.
	sampleSize := len(own)
	if sampleSize < 1 {
		sampleSize = 1
	}
	following := profile.FollowsCount
	if following < 1 {
		following = 1
	}

	var likeSum, commentSum int
	for _, p := range own {
		likeSum += p.Likes
		commentSum += p.Comments
	}
	avgLikes := float64(likeSum) / float64(sampleSize)
	avgComments := float64(commentSum) / float64(sampleSize)

	engagementRate := 0.0
	if profile.FollowersCount > 0 {
		engagementRate = (avgLikes + avgComments) / float64(profile.FollowersCount) * 100
	}
	followerRatio := float64(profile.FollowersCount) / float64(following)

	score := &models.EmergenceScore{
		EngagementPoints: engagementPoints(engagementRate),
		RatioPoints:      ratioPoints(followerRatio),
		FollowerPoints:   followerPoints(profile.FollowersCount),
		ActivityPoints:   activityPoints(profile.PostsCount),
		EngagementRate:   engagementRate,
		FollowerRatio:    followerRatio,
		AvgLikes:         avgLikes,
		AvgComments:      avgComments,
	}
	score.Composite = score.EngagementPoints + score.RatioPoints + score.FollowerPoints + score.ActivityPoints
	return score
}

// engagementPoints buckets the engagement rate, max 35.
func engagementPoints(rate float64) int {
	switch {
	case rate >= 6:
		return 35
	case rate >= 3:
		return 28
	case rate >= 1.5:
		return 20
	case rate >= 0.5:
		return 10
	default:
		return 3
	}
}

// ratioPoints buckets the follower/following ratio, max 25.
func ratioPoints(ratio float64) int {
	switch {
	case ratio >= 10:
		return 25
	case ratio >= 5:
		return 20
	case ratio >= 2:
		return 15
	case ratio >= 1:
		return 10
	default:
		return 5
	}
}

// followerPoints buckets the follower count, max 20 in the 5k-50k sweet
// spot and graduated down outside it.
func followerPoints(followers int) int {
	switch {
	case followers >= 5000 && followers <= 50000:
		return 20
	case followers >= 1000 && followers < 5000:
		return 18
	case followers > 50000 && followers <= 100000:
		return 15
	case followers >= 500 && followers < 1000:
		return 12
	case followers > 100000 && followers <= 500000:
		return 8
	default:
		return 3
	}
}

// activityPoints buckets the lifetime post count, max 20.
func activityPoints(posts int) int {
	switch {
	case posts >= 200:
		return 20
	case posts >= 100:
		return 16
	case posts >= 50:
		return 12
	case posts >= 20:
		return 8
	default:
		return 4
	}
}

// SortByEmergence orders creators by composite score descending. Unscored
// (private) creators sort last; ties break by username for determinism.
func SortByEmergence(creators []models.ScoredCreator) {
	sort.SliceStable(creators, func(i, j int) bool {
		si, sj := creators[i].Emergence, creators[j].Emergence
		switch {
		case si == nil && sj == nil:
			return creators[i].Profile.Username < creators[j].Profile.Username
		case si == nil:
			return false
		case sj == nil:
			return true
		case si.Composite != sj.Composite:
			return si.Composite > sj.Composite
		}
		return creators[i].Profile.Username < creators[j].Profile.Username
	})
}
