package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/esiebomaj/Warmer-Pro/api/handlers"
	"github.com/esiebomaj/Warmer-Pro/api/middleware"
	"github.com/esiebomaj/Warmer-Pro/apify"
	"github.com/esiebomaj/Warmer-Pro/clusterer"
	"github.com/esiebomaj/Warmer-Pro/commenter"
	"github.com/esiebomaj/Warmer-Pro/config"
	"github.com/esiebomaj/Warmer-Pro/models"
	"github.com/esiebomaj/Warmer-Pro/services"
)

func New() *gin.Engine {
	cfg := config.GetConfig()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())
	r.Use(middleware.RequestTrace())

	// Collaborators
	scraper := apify.New(cfg.Apify)
	clusters := clusterer.New(cfg.Gemini)
	comments := commenter.New(cfg.Gemini)

	// Services
	trendScorer := services.NewTrendScorer(cfg.Analytics)
	conversationSvc := services.NewConversationService(clusters, cfg.Analytics)
	trendingSvc := services.NewTrendingService(scraper, trendScorer, conversationSvc, cfg.Apify.ResultsPerSearch)
	creatorSvc := services.NewCreatorService(scraper, scraper, cfg.Apify.ResultsPerSearch)
	actionSvc := services.NewActionService(scraper, scraper, comments, cfg.Analytics.MaxActionPosts)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "API is operational"})
	})

	r.POST("/trending-topics", handlers.TrendingTopicsHandler(trendingSvc))
	r.POST("/creators", handlers.CreatorsHandler(creatorSvc))
	r.POST("/actions", handlers.ActionsHandler(actionSvc))
	r.POST("/generate-comment", handlers.GenerateCommentHandler(comments))
	r.GET("/proxy-image", handlers.ProxyImageHandler())

	related := r.Group("/related-posts")
	{
		related.POST("/instagram", handlers.RelatedPostsHandler(scraper, models.PlatformInstagram, cfg.Apify.ResultsPerSearch))
		related.POST("/linkedin", handlers.RelatedPostsHandler(scraper, models.PlatformLinkedIn, cfg.Apify.ResultsPerSearch))
		related.POST("/twitter", handlers.RelatedPostsHandler(scraper, models.PlatformTwitter, cfg.Apify.ResultsPerSearch))
	}

	return r
}

// corsMiddleware wraps rs/cors for the local development UI: all origins,
// headers and methods, mirroring the original deployment.
func corsMiddleware() gin.HandlerFunc {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)
		if ctx.Request.Method == http.MethodOptions &&
			ctx.Request.Header.Get("Access-Control-Request-Method") != "" {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	}
}
