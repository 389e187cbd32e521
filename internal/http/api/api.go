package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/basakrdnz/vibevault/internal/config"
	"github.com/basakrdnz/vibevault/internal/discovery"
	"github.com/basakrdnz/vibevault/internal/http/api/handlers"
	"github.com/basakrdnz/vibevault/internal/moods"
	"github.com/basakrdnz/vibevault/internal/movies"
	"github.com/basakrdnz/vibevault/internal/observability"
	"github.com/basakrdnz/vibevault/internal/omdb"
	"github.com/basakrdnz/vibevault/internal/ratelimit"
	"github.com/basakrdnz/vibevault/internal/social"
	"github.com/basakrdnz/vibevault/internal/users"
	"github.com/basakrdnz/vibevault/internal/watchlist"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	DB        *gorm.DB
	JWT       config.JWTConfig
	Users     *users.Service
	Social    *social.Service
	Movies    *movies.Service
	Watchlist *watchlist.Service
	Moods     *moods.Service
	Discovery *discovery.Service
	OMDB      *omdb.Client
	Limiter   *ratelimit.Manager
}

// RegisterRoutes registers all API routes, middleware, and handlers.
func RegisterRoutes(r *gin.Engine, svcs Services) {
	if r == nil || svcs.DB == nil {
		return
	}

	r.Use(observability.HTTPMetricsMiddleware())
	r.GET("/metrics", observability.MetricsHandler())

	apiGroup := r.Group("/api")

	healthHandler := handlers.NewHealthHandler(svcs.DB)
	apiGroup.GET("/health", healthHandler.Health)

	authHandler := handlers.NewAuthHandler(svcs.Users, svcs.JWT)
	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.POST("/auth/login", authHandler.Login)

	authed := apiGroup.Group("")
	authed.Use(userAuthMiddleware(svcs.JWT))

	userHandler := handlers.NewUserHandler(svcs.Users)
	authed.GET("/user/profile", userHandler.GetProfile)
	authed.PUT("/user/profile", userHandler.UpdateProfile)
	authed.GET("/user/social-settings", userHandler.GetSocialSettings)
	authed.POST("/user/social-settings", userHandler.UpdateSocialSettings)
	authed.GET("/user/export", userHandler.Export)
	authed.DELETE("/user/delete", userHandler.Delete)

	socialHandler := handlers.NewSocialHandler(svcs.Social)
	authed.POST("/social/request",
		rateLimitMiddleware(svcs.Limiter, "send_request", ratelimit.SendRequestRule, ratelimit.SendRequestKey),
		socialHandler.SendRequest)
	authed.POST("/social/respond",
		rateLimitMiddleware(svcs.Limiter, "respond", ratelimit.RespondRule, ratelimit.RespondKey),
		socialHandler.Respond)
	authed.GET("/social/friends", socialHandler.Friends)
	authed.GET("/social/requests", socialHandler.Requests)

	movieHandler := handlers.NewMovieHandler(svcs.Movies, svcs.OMDB)
	authed.GET("/movies", movieHandler.List)
	authed.POST("/movies", movieHandler.Create)
	authed.GET("/movies/popular", movieHandler.Popular)
	authed.GET("/movies/random", movieHandler.Random)
	authed.GET("/movies/search", movieHandler.Search)
	authed.GET("/movies/details", movieHandler.Details)
	authed.GET("/movies/:id", movieHandler.Get)
	authed.PUT("/movies/:id", movieHandler.Update)
	authed.DELETE("/movies/:id", movieHandler.Delete)

	watchlistHandler := handlers.NewWatchlistHandler(svcs.Watchlist)
	authed.POST("/watchlist", watchlistHandler.Add)
	authed.GET("/watchlist", watchlistHandler.List)
	authed.GET("/watchlist/check", watchlistHandler.Check)
	authed.GET("/watchlist/stats", watchlistHandler.Stats)
	authed.PUT("/watchlist/:id", watchlistHandler.Update)
	authed.DELETE("/watchlist/:id", watchlistHandler.Remove)

	moodHandler := handlers.NewMoodHandler(svcs.Moods)
	authed.POST("/mood-analytics", moodHandler.AddEntry)
	authed.GET("/mood-analytics", moodHandler.MovieAnalytics)
	authed.GET("/mood-analytics/user-entries", moodHandler.UserEntries)
	authed.GET("/mood-analytics/user-stats", moodHandler.UserStats)
	authed.GET("/mood-analytics/emotions", moodHandler.Emotions)

	discoveryHandler := handlers.NewDiscoveryHandler(svcs.Discovery)
	authed.POST("/discovery", discoveryHandler.Record)
	authed.GET("/discovery", discoveryHandler.History)

	cacheHandler := handlers.NewCacheHandler(svcs.Movies.Cache())
	authed.GET("/cache", cacheHandler.Info)
	authed.DELETE("/cache", cacheHandler.Clear)
}
