package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/pkg/signature"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/server/http/handlers"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, verifier *signature.Verifier, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	checkoutHandler := handlers.NewCheckoutHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade, verifier)
	catalogHandler := handlers.NewCatalogHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	api := engine.Group("/api")
	api.POST("/checkout/settle", checkoutHandler.Settle)
	api.POST("/webhooks/payment", webhookHandler.HandlePayment)
	api.POST("/catalog/sync", catalogHandler.Sync)
	api.GET("/products", productHandler.List)
	api.GET("/orders/:reference", orderHandler.Get)
	api.GET("/health", healthHandler.Check)

	return engine
}
