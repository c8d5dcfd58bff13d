package handler

import (
	"net/http"

	"gamecatalog/backend/internal/auth"
	"gamecatalog/backend/internal/logging"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// BasePath prefixes every API route.
const BasePath = "/api/v1"

// SetupRouter builds the engine with every route of the API.
func SetupRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(logging.GinLogger(), gin.Recovery())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	requireUser := []gin.HandlerFunc{auth.AuthMiddleware(h.issuer), auth.RequireUser(h.Repo)}

	// API v1 routes
	apiV1 := router.Group(BasePath)
	apiV1.Use(h.RepositorySession())
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", h.RegisterUser)
			authRoutes.POST("/login", h.LoginUser)
		}

		// Browsing works without an account; a valid token adds favourite flags.
		public := apiV1.Group("")
		public.Use(auth.OptionalAuthMiddleware(h.issuer))
		{
			public.GET("/home", h.GetHome)
			public.GET("/search", h.SearchGames)
			public.GET("/genres", h.GetGenres)
			public.GET("/genres/:name/games", h.GetGamesByGenre)
			public.GET("/publishers", h.GetPublishers)
			public.GET("/publishers/:name/games", h.GetGamesByPublisher)
			public.GET("/games", h.GetGames)
			public.GET("/games/:id", h.GetGameByID)
			public.GET("/games/:id/reviews/stream", h.StreamReviews)
		}

		// Game actions (protected)
		gameRoutes := apiV1.Group("/games")
		gameRoutes.Use(requireUser...)
		{
			gameRoutes.POST("/:id/reviews", h.PostReview)
			gameRoutes.POST("/:id/favourite", h.AddFavourite)
			gameRoutes.DELETE("/:id/favourite", h.RemoveFavourite)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(requireUser...)
		{
			userRoutes.GET("/me", h.GetMyProfile)
		}
	}

	return router
}
