package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/server/http/handlers"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CollectionsFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	dashboardHandler := handlers.NewDashboardHandler(facade)

	api := engine.Group("/api")
	agent := api.Group("/agent")
	agent.POST("/register", authHandler.Register)
	agent.POST("/login", authHandler.Login)

	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired(facade))
	authorized.POST("/orders", orderHandler.Ingest)
	authorized.GET("/orders/pending", orderHandler.Pending)
	authorized.GET("/orders/search", orderHandler.Search)
	authorized.GET("/orders/:number", orderHandler.Detail)
	authorized.POST("/orders/:number/payment", paymentHandler.Record)
	authorized.GET("/dashboard/summary", dashboardHandler.Summary)

	return engine
}
