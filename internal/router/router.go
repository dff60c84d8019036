package router

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrymatch/backend/config"
	"github.com/pageza/pantrymatch/backend/internal/api"
	"github.com/pageza/pantrymatch/backend/internal/middleware"
	"github.com/pageza/pantrymatch/backend/internal/service"
)

// Dependencies are the services the routes are served by.
// Scans, Images and ScanLimiter are optional.
type Dependencies struct {
	DB          *gorm.DB
	Auth        middleware.TokenValidator
	Recipes     *service.RecipeService
	Ingredients *service.IngredientService
	Preferences *service.PreferenceService
	Ratings     *service.RatingService
	Matches     *service.MatchService
	Suggestions *service.SuggestionService
	Scans       *service.ScanService
	Images      *service.ImageService
	ScanLimiter *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies, cfg *config.Config, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(
		middleware.Recovery(log, cfg.Debug),
		requestid.New(),
		middleware.RequestLogger(log),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.Metrics(),
	)
	router.NoRoute(middleware.NotFound())

	router.GET("/health", api.HealthHandler(deps.DB))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.AuthMiddleware(deps.Auth)
	var scanLimit gin.HandlerFunc
	if deps.ScanLimiter != nil {
		scanLimit = deps.ScanLimiter.RateLimitMiddleware()
	}

	// API v1 routes
	v1 := router.Group("/api/v1")

	api.NewRecipeHandler(deps.Recipes, deps.Matches, deps.Suggestions, deps.Images, log, cfg.Debug).
		RegisterRoutes(v1, auth)
	api.NewIngredientHandler(deps.Ingredients, deps.Scans, log, cfg.Debug).
		RegisterRoutes(v1, auth, scanLimit)
	api.NewPreferenceHandler(deps.Preferences, log, cfg.Debug).
		RegisterRoutes(v1, auth)
	api.NewRatingHandler(deps.Ratings, log, cfg.Debug).
		RegisterRoutes(v1, auth)

	return router
}
