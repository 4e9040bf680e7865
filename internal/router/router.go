// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/slabdesk/slabdesk-backend/internal/config"
	"github.com/slabdesk/slabdesk-backend/internal/handlers"
	"github.com/slabdesk/slabdesk-backend/internal/limiter"
	"github.com/slabdesk/slabdesk-backend/internal/middleware"
	"github.com/slabdesk/slabdesk-backend/internal/services"
	"github.com/slabdesk/slabdesk-backend/internal/utils"
)

func Initialize(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Warn("Card image storage unavailable, uploads disabled")
	}
	pricingService := services.NewPricingService(db, redisClient,
		time.Duration(cfg.Pricing.CacheTTLSeconds)*time.Second)

	sessionService := services.NewSessionService(db)
	assetService := services.NewAssetService(db, pricingService,
		time.Duration(cfg.Pricing.RefreshDelaySeconds)*time.Second)
	contactService := services.NewContactService(db)
	eventService := services.NewEventService(db)
	consignmentService := services.NewConsignmentService(db)
	catalogService := services.NewCatalogService(db)
	paymentService := services.NewPaymentService(db, cfg)
	inviteService := services.NewInviteService(db)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(sessionService)
	sessionAssetHandler := handlers.NewSessionAssetHandler(assetService)
	contactHandler := handlers.NewContactHandler(contactService)
	eventHandler := handlers.NewEventHandler(eventService)
	consignmentHandler := handlers.NewConsignmentHandler(consignmentService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, storageService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	inviteHandler := handlers.NewInviteHandler(inviteService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.Auth.JWTSecret)
	utils.SetJWTIssuer(cfg.Auth.Issuer)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Buying desk routes
		desk := v1.Group("/buying-desk")
		desk.Use(middleware.AuthRequired())
		{
			sessions := desk.Group("/sessions")
			{
				sessions.GET("", sessionHandler.GetSessions)
				sessions.POST("", sessionHandler.CreateSession)
				sessions.GET("/:id", sessionHandler.GetSession)
				sessions.PATCH("/:id", sessionHandler.UpdateSession)
				sessions.DELETE("/:id", sessionHandler.DeleteSession)

				sessions.GET("/:id/assets", sessionAssetHandler.GetSessionAssets)
				sessions.POST("/:id/assets", sessionAssetHandler.AddAsset)
				sessions.DELETE("/:id/assets/:assetId", sessionAssetHandler.RemoveAsset)
				sessions.POST("/:id/cart/move", sessionAssetHandler.MoveToCart)
				sessions.DELETE("/:id/cart/:cartId", sessionAssetHandler.RemoveFromCart)
				sessions.POST("/:id/checkout", sessionAssetHandler.Checkout)
				sessions.POST("/:id/revert/:assetId", sessionAssetHandler.RevertPurchase)
			}
		}

		// Contact routes
		contacts := v1.Group("/contacts")
		contacts.Use(middleware.AuthRequired())
		{
			contacts.GET("", contactHandler.GetContacts)
			contacts.POST("", contactHandler.CreateContact)
			contacts.GET("/:id", contactHandler.GetContact)
			contacts.PATCH("/:id", contactHandler.UpdateContact)
			contacts.DELETE("/:id", contactHandler.DeleteContact)
		}

		// Event routes
		events := v1.Group("/events")
		events.Use(middleware.AuthRequired())
		{
			events.GET("", eventHandler.GetEvents)
			events.POST("", eventHandler.CreateEvent)
			events.GET("/:id", eventHandler.GetEvent)
			events.PATCH("/:id", eventHandler.UpdateEvent)
			events.DELETE("/:id", eventHandler.DeleteEvent)
		}

		// Consignment routes
		consignments := v1.Group("/consignments")
		consignments.Use(middleware.AuthRequired())
		{
			consignments.GET("", consignmentHandler.GetConsignments)
			consignments.POST("", consignmentHandler.CreateConsignment)
			consignments.GET("/:id", consignmentHandler.GetConsignment)
			consignments.PATCH("/:id", consignmentHandler.UpdateConsignment)
			consignments.DELETE("/:id", consignmentHandler.DeleteConsignment)
			consignments.POST("/:id/sell", consignmentHandler.SellConsignment)
		}

		// Catalog routes
		assets := v1.Group("/assets")
		{
			assets.GET("", middleware.OptionalAuth(), catalogHandler.SearchAssets)
			assets.GET("/:id", middleware.OptionalAuth(), catalogHandler.GetAsset)

			protected := assets.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", catalogHandler.CreateAsset)
				protected.POST("/upload-images", catalogHandler.UploadImages)
			}
		}

		// Storefront routes
		storefront := v1.Group("/storefront")
		storefront.Use(middleware.AuthRequired())
		{
			storefront.POST("/payment-intent", paymentHandler.CreatePaymentIntent)
		}

		// Invite routes (public)
		invites := v1.Group("/invites")
		invites.Use(middleware.RateLimit(inviteLimiterStore(redisClient, cfg)))
		{
			invites.POST("/validate", inviteHandler.ValidateInvite)
		}
	}

	return r
}

// inviteLimiterStore picks Redis when available so the limit holds
// across replicas, falling back to a per-process store.
func inviteLimiterStore(redisClient *redis.Client, cfg *config.Config) limiter.Store {
	window := time.Duration(cfg.RateLimit.InviteWindowSeconds) * time.Second
	max := cfg.RateLimit.InviteMaxAttempts
	if max < 1 {
		max = 1
	}

	if redisClient != nil {
		return limiter.NewRedisStore(redisClient, "ratelimit:invite", window, max)
	}
	return limiter.NewMemoryStore(rate.Every(window/time.Duration(max)), max)
}
