package api

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/offsetcal/internal/middleware"
)

// RouterOptions tunes the global middlewares.
type RouterOptions struct {
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
}

// DefaultRouterOptions allows 60 requests per minute per client and 10s per request.
func DefaultRouterOptions() RouterOptions {
	return RouterOptions{RateLimit: 60, RateWindow: time.Minute, RequestTimeout: 10 * time.Second}
}

// NewRouter creates a Gin engine with the global middlewares, swagger docs and
// the /api/v1 routes. Health and readiness probes are registered separately by
// app.InitializeApp.
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(opts.RateLimit, opts.RateWindow),
		middleware.Timeout(opts.RequestTimeout),
	)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/offset", handler.GetOffset)
		v1.POST("/offset/batch", handler.PostOffsetBatch)
		v1.POST("/offset/arrow", handler.PostOffsetArrow)
		v1.GET("/range", handler.GetRange)
		v1.GET("/range/searchsorted", handler.GetRangeSearchSorted)
		v1.GET("/busdays/count", handler.GetBusDayCount)
		v1.GET("/busdays/offset", handler.GetBusDayOffset)
		v1.GET("/busdays/last", handler.GetBusDayLast)
		v1.GET("/calendars", handler.GetCalendars)
		v1.POST("/calendars/:name/reload", handler.PostReload)
		v1.GET("/markets/:code/schedule", handler.GetSchedule)
		v1.GET("/markets/:code/days", handler.GetValidDays)
		v1.GET("/markets/:code/days/searchsorted", handler.GetValidDaysSearchSorted)
		v1.GET("/markets/:code/trading-index", handler.GetTradingIndex)
		v1.GET("/markets/:code/open", handler.GetMarketOpen)
	}

	return router
}
