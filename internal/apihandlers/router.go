package apihandlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"civiceye/internal/app"
)

// NewRouter builds the gin engine with middleware and every API route.
func NewRouter(a *app.App) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// AccessLog wraps Recovery so recovered panics are still logged and counted.
	router.Use(RequestID(), AccessLog(a.Metrics), Recovery())
	if mw := CORS(a.Config.CORS.AllowedOrigins); mw != nil {
		router.Use(mw)
	}
	if rl := a.Config.RateLimit; rl.Enabled {
		router.Use(RateLimit(rate.NewLimiter(rate.Limit(rl.RPS), rl.Burst)))
	}

	apiHandler := NewAPIHandler(a)

	router.GET("/", apiHandler.RootHandler)
	router.GET("/health", apiHandler.HealthHandler)
	router.GET("/categories", apiHandler.CategoriesHandler)
	router.GET("/stats", apiHandler.StatsHandler)
	router.POST("/categorize", apiHandler.CategorizeHandler)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.Metrics.Registry, promhttp.HandlerOpts{})))

	router.NoRoute(NoRouteHandler)
	router.NoMethod(NoMethodHandler)

	return router
}
