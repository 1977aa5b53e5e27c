package controller

import (
	"product-auth-system/conf"
	"product-auth-system/controller/handler"
	"product-auth-system/controller/respond"
	_ "product-auth-system/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers everything the router wires up
type Handlers struct {
	Tag     *handler.TagHandler
	Product *handler.ProductHandler
	Scan    *handler.ScanHandler
}

// SetupRouter setup API router
func SetupRouter(h Handlers) *gin.Engine {
	// Create Gin engine
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Allow all origins, can be configured to specific domains
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "Accept", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * 3600, // 12 hours
	}))

	// Add timing middleware
	r.Use(respond.TimingMiddleware())

	// API v1 route group
	v1 := r.Group("/api/v1")
	{
		// Tag lifecycle routes
		tags := v1.Group("/tags")
		{
			// List tags (cursor pagination)
			tags.GET("", h.Tag.ListTags)

			// Create tag
			tags.POST("", h.Tag.CreateTag)

			// Get tag by ID
			tags.GET("/:id", h.Tag.GetTag)

			// Update tag (products and metadata frozen once stamped)
			tags.PUT("/:id", h.Tag.UpdateTag)

			// Resolve a scanned QR code to its tag
			tags.GET("/code/:code", h.Tag.GetTagByCode)

			// Preview stamping preconditions
			tags.GET("/:id/stamping/preview", h.Tag.PreviewStamping)

			// Stamp the tag onto the blockchain
			tags.POST("/:id/stamp", h.Tag.Stamp)

			// Advance the on-chain status
			tags.POST("/:id/status", h.Tag.AdvanceStatus)

			// Revoke the tag (terminal)
			tags.POST("/:id/revoke", h.Tag.Revoke)
		}

		// Product catalog routes
		products := v1.Group("/products")
		{
			products.POST("", h.Product.CreateProduct)
			products.GET("/:id", h.Product.GetProduct)
		}

		// Consumer scan routes
		scans := v1.Group("/scans")
		{
			// Record a scan and assess its fraud risk
			scans.POST("/assess", h.Scan.AssessScanRisk)
		}
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "product-auth",
		})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Serve locally stored artifacts (QR images, metadata documents)
	if conf.Cfg.Storage.Type == "local" {
		r.Static("/files", conf.Cfg.Storage.Local.BasePath)
	}

	return r
}
