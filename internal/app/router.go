package app

import (
	"better_results_backend/docs"
	"better_results_backend/internal/config"
	"better_results_backend/internal/middleware"
	"better_results_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由
	router.GET("/api/health", c.health.HealthCheck)

	// 2. 需要 Smartschool 会话的路由
	results := router.Group("/api/results")
	results.Use(middleware.SessionMiddleware(cfg.Smartschool.SessionCookie))
	{
		results.GET("/overview", c.results.Overview)
		results.GET("/grid", c.results.Grid)
		results.GET("/grid/periods", c.results.PeriodGrids)
		results.GET("/graph", c.results.Graph)
		results.GET("/totals", c.results.Totals)
		results.DELETE("/cache", c.results.InvalidateCache)

		results.GET("/export", c.export.Download)
		results.POST("/export/archive", c.export.Archive)
		results.GET("/export/archives", c.export.ListArchives)
	}
}
