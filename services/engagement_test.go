package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/esiebomaj/Warmer-Pro/models"
	"github.com/esiebomaj/Warmer-Pro/services"
)

func TestCompositeEngagementWeighting(t *testing.T) {
	p := models.Post{Likes: 10, Comments: 5, Shares: 3}
	// shares count double
	assert.Equal(t, 10+5+2*3, services.CompositeEngagement(p))
}

func TestCompositeEngagementNonNegativeAndPure(t *testing.T) {
	posts := []models.Post{
		{},
		{Platform: models.PlatformTwitter, Likes: 1},
		{Platform: models.PlatformLinkedIn, Likes: 100, Comments: 20, Shares: 50},
	}
	for _, p := range posts {
		first := services.CompositeEngagement(p)
		assert.GreaterOrEqual(t, first, 0)
		// pure function of the counters
		assert.Equal(t, first, services.CompositeEngagement(p))
	}
}

func TestBreakdownComponents(t *testing.T) {
	b := services.Breakdown(models.Post{Likes: 7, Comments: 2, Shares: 1})
	assert.Equal(t, 7, b.Likes)
	assert.Equal(t, 2, b.Comments)
	assert.Equal(t, 1, b.Shares)
	assert.Equal(t, 11, b.Composite())
}
