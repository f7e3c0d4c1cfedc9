package services

import (
	"context"

	"github.com/esiebomaj/Warmer-Pro/models"
)

// PostSearcher is the scraping collaborator. It may return fewer records
// than limit, or none; it must not block past its own timeout.
type PostSearcher interface {
	SearchPosts(ctx context.Context, platform, keyword string, limit int) ([]models.PlatformPost, error)
}

// ProfileFetcher is the profile-lookup collaborator.
type ProfileFetcher interface {
	GetProfiles(ctx context.Context, usernames []string) (map[string]models.CreatorProfile, error)
}

// SemanticClusterer is the language-model collaborator for conversation
// clustering. The returned ordinals are unvalidated.
type SemanticClusterer interface {
	Cluster(ctx context.Context, corpus string) ([]models.RawCluster, error)
}

// CommentWriter is the language-model collaborator for comment generation.
type CommentWriter interface {
	GenerateComment(ctx context.Context, post models.Post, keywords, priorText, customInstructions string) (string, error)
}
