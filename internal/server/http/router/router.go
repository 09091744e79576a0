package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/linkmart/linkmart/internal/server/http/handlers"
	"github.com/linkmart/linkmart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	statusHandler := handlers.NewStatusHandler(facade)
	benchmarkHandler := handlers.NewBenchmarkHandler(facade)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.GET("/:id/line-items", orderHandler.LineItems)
	orders.POST("/:id/submit", orderHandler.Submit)

	internal := orders.Group("")
	internal.Use(middleware.InternalOnly())
	internal.GET("/:id/status", statusHandler.Get)
	internal.PATCH("/:id/status", statusHandler.Change)
	internal.GET("/:id/benchmarks", benchmarkHandler.List)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade), middleware.InternalOnly())
	admin.POST("/users", authHandler.Register)
	admin.GET("/pool-migration/orders/:id/eligibility", benchmarkHandler.Eligibility)
	admin.POST("/pool-migration/orders/:id/rollback", benchmarkHandler.Rollback)

	return engine
}
