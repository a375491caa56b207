package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/greenbasket/produce-orders/config"
	"github.com/greenbasket/produce-orders/controllers"
	"github.com/greenbasket/produce-orders/middlewares"
	"github.com/greenbasket/produce-orders/services"
)

func SetupRouter(cfg *config.Config, db *gorm.DB, catalog *services.CatalogStore) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// Process-wide limit: 50 requests per second per IP. Must be registered
	// before any route, or gin never runs it for them.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	orderSvc := services.NewOrderService(db, catalog, cfg)

	itemCtrl := controllers.NewItemController(catalog)
	orderCtrl := controllers.NewOrderController(orderSvc)
	adminCtrl := controllers.NewAdminController(cfg)

	api := r.Group("/api")

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	api.GET("/config", adminCtrl.GetConfig)
	api.GET("/items", itemCtrl.GetActiveItems)
	api.POST("/orders", orderCtrl.CreateOrder)

	// Rate limiter on login only
	login := api.Group("/admin")
	login.Use(middlewares.NewStrictRateLimiter())
	{
		login.POST("/login", adminCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := api.Group("/")
	admin.Use(middlewares.AdminAuth(cfg))

	admin.GET("/items/all", itemCtrl.GetAllItems)
	admin.POST("/items", itemCtrl.CreateItem)
	admin.PUT("/items/:item_id", itemCtrl.UpdateItem)

	admin.GET("/orders", orderCtrl.GetAllOrders)
	admin.GET("/orders/export", orderCtrl.ExportOrders)

	return r
}
