package routes

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
)

// Handlers groups the HTTP handlers mounted by SetupRoutes
type Handlers struct {
	Health *handler.HealthHandler
	Brand  *handler.BrandHandler
	Code   *handler.CodeHandler
	User   *handler.UserHandler
	Reward *handler.RewardHandler
}

// SetupRoutes configures all the routes for the API. A nil metricsHandler
// leaves the metrics endpoint unmounted.
func SetupRoutes(router *gin.Engine, h Handlers, metricsPath string, metricsHandler http.Handler) {
	router.GET("/health", h.Health.Health)
	if metricsHandler != nil {
		router.GET(metricsPath, gin.WrapH(metricsHandler))
	}

	// Brand dashboard
	brandRoutes := router.Group("/brands")
	{
		brandRoutes.POST("", h.Brand.CreateBrand)
		brandRoutes.GET("", h.Brand.ListBrands)
		brandRoutes.GET("/:brandId", h.Brand.GetBrand)
		brandRoutes.GET("/:brandId/stats", h.Brand.GetBrandStats)
		brandRoutes.GET("/:brandId/codes", h.Brand.ListBrandCodes)
	}

	codeRoutes := router.Group("/codes")
	{
		codeRoutes.POST("", h.Code.CreateCode)
		codeRoutes.POST("/with-image", h.Code.CreateCodeWithImage)
		codeRoutes.GET("/:token/image", h.Code.GetCodeImage)
	}

	// Mobile app
	userRoutes := router.Group("/users")
	{
		userRoutes.POST("", h.User.CreateUser)
		userRoutes.GET("/:userId", h.User.GetUser)
		userRoutes.GET("/:userId/history", h.User.GetUserHistory)
	}

	router.POST("/scan/:token", h.Reward.Scan)
	router.POST("/game/play", h.Reward.PlayGame)

	router.NoRoute(middleware.NotFound())
}

// MiddlewareOptions carries the optional middleware dependencies
type MiddlewareOptions struct {
	CORS            config.CORSConfig
	TracingService  string
	RequestObserver middleware.RequestObserver
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider, opts MiddlewareOptions) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RequestID())
	if opts.TracingService != "" {
		router.Use(middleware.Tracing(opts.TracingService))
	}
	router.Use(middleware.Logger(logger, timeProvider))
	if opts.RequestObserver != nil {
		router.Use(middleware.Metrics(opts.RequestObserver, timeProvider))
	}
	router.Use(middleware.CORS(opts.CORS))
}
