package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/esiebomaj/Warmer-Pro/dto"
	"github.com/esiebomaj/Warmer-Pro/logger"
	"github.com/esiebomaj/Warmer-Pro/models"
	"github.com/esiebomaj/Warmer-Pro/services"
)

// TrendingTopicsHandler runs the full trending-topics analysis for a set of
// niche keywords. "No data" still renders as a well-formed empty report.
func TrendingTopicsHandler(svc *services.TrendingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.TrendingTopicsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(req.NicheKeywords) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "niche_keywords cannot be empty"})
			return
		}

		report, err := svc.IdentifyTrendingTopics(c.Request.Context(), req.NicheKeywords, req.Platforms, req.TimeframeHours)
		if err != nil {
			if !errors.Is(err, services.ErrNoPosts) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			logger.WarnWithFields("trending analysis produced no data", logger.Fields{
				"keywords": req.NicheKeywords,
			})
		}
		c.JSON(http.StatusOK, report)
	}
}

// CreatorsHandler lists the creators behind a keyword, optionally ranked by
// emergence score.
func CreatorsHandler(svc *services.CreatorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreatorsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if strings.TrimSpace(req.Keyword) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "keyword cannot be empty"})
			return
		}

		creators, err := svc.GetCreators(c.Request.Context(), strings.TrimSpace(req.Keyword), services.CreatorFilters{
			FollowersGT:     req.FollowersCountGT,
			FollowersLT:     req.FollowersCountLT,
			SortByEmergence: req.SortByEmergence,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, creators)
	}
}

// RelatedPostsHandler returns simplified posts for each keyword on the
// platform named in the route. Per-keyword failures are tolerated; a
// keyword that fails just contributes no posts.
func RelatedPostsHandler(searcher services.PostSearcher, platform string, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.RelatedPostsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(req.Keywords) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "keywords cannot be empty"})
			return
		}

		out := make([]dto.PostDTO, 0)
		for _, keyword := range req.Keywords {
			raw, err := searcher.SearchPosts(c.Request.Context(), platform, keyword, limit)
			if err != nil {
				logger.WarnWithFields("related posts fetch failed", logger.Fields{
					"platform": platform,
					"keyword":  keyword,
					"error":    err.Error(),
				})
				continue
			}
			for _, pp := range raw {
				p := pp.Normalize()
				out = append(out, dto.NewPostDTO(p, services.CompositeEngagement(p)))
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

// ActionsHandler converts a keyword search into follow/like/comment tasks.
// A failed analysis degrades to an empty action list rather than an error,
// so the consuming UI always has something to render.
func ActionsHandler(svc *services.ActionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ActionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		keyword := strings.ToLower(strings.TrimSpace(req.Keyword))
		if keyword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "keyword cannot be empty"})
			return
		}

		actions, err := svc.GetActions(c.Request.Context(), keyword)
		if err != nil {
			logger.WarnWithFields("action generation failed, returning empty list", logger.Fields{
				"keyword": keyword,
				"error":   err.Error(),
			})
			c.JSON(http.StatusOK, []models.Action{})
			return
		}
		c.JSON(http.StatusOK, actions)
	}
}

// GenerateCommentHandler writes an engagement comment for one post.
func GenerateCommentHandler(writer services.CommentWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.GenerateCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		post := req.Post.Normalize()
		if post.Platform == "" {
			post.Platform = models.PlatformInstagram
		}

		comment, err := writer.GenerateComment(c.Request.Context(), post, req.Keywords, req.PriorPostText, req.CustomInstructions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.GenerateCommentResponse{Comment: comment})
	}
}
