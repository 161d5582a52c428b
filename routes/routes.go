package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"solune-backend/config"
	"solune-backend/controllers"
	"solune-backend/utils"
)

func SetupRouter(ctl *controllers.Controller) *gin.Engine {
	if ctl.Config.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	origins := ctl.Config.Origins()
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	r.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			return allowed[origin]
		},
		MaxAge: 12 * time.Hour,
	}))

	r.Use(config.PerformanceLogger(ctl.Logger))
	if ctl.Metrics != nil {
		r.Use(ctl.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(ctl.Metrics.Handler()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"version":  ctl.Hub.Current().Version,
			"loadedAt": ctl.Hub.Current().LoadedAt,
		})
	})

	requireAuth := utils.AuthMiddleware(ctl.Config.JWTSecret)

	auth := r.Group("/auth")
	{
		auth.POST("/register", ctl.Register)
		auth.POST("/login", ctl.Login)

		auth.Use(requireAuth)
		auth.GET("/me", ctl.Me)
		auth.PUT("/me", ctl.UpdateProfile)
	}

	api := r.Group("/api")
	api.Use(requireAuth)
	{
		appointments := api.Group("/appointments")
		{
			res := ctl.Appointments()
			appointments.GET("", res.List)
			appointments.POST("", res.Create)
			appointments.POST("/discount-check", ctl.DiscountCheck)
			appointments.GET("/:id", res.Get)
			appointments.PUT("/:id", res.Update)
			appointments.DELETE("/:id", res.Delete)
		}

		expenses := api.Group("/expenses")
		{
			res := ctl.Expenses()
			expenses.GET("", res.List)
			expenses.POST("", res.Create)
			expenses.GET("/:id", res.Get)
			expenses.PUT("/:id", res.Update)
			expenses.DELETE("/:id", res.Delete)
		}

		// Inventory routes
		products := api.Group("/products")
		{
			res := ctl.Products()
			products.GET("", res.List)
			products.POST("", res.Create)
			products.GET("/:id", res.Get)
			products.PUT("/:id", res.Update)
			products.DELETE("/:id", ctl.DeleteProduct)
		}
		txns := api.Group("/stock-transactions")
		{
			res := ctl.StockTransactions()
			txns.GET("", res.List)
			txns.POST("", res.Create)
			txns.GET("/:id", res.Get)
			txns.PUT("/:id", res.Update)
			txns.DELETE("/:id", res.Delete)
		}
		api.GET("/inventory/stock", ctl.GetStockLevels)
		api.GET("/inventory/transactions", ctl.GetStockLog)

		// Catalog routes
		services := api.Group("/services")
		{
			res := ctl.Services()
			services.GET("", res.List)
			services.POST("", res.Create)
			services.GET("/:id", res.Get)
			services.PUT("/:id", res.Update)
			services.DELETE("/:id", res.Delete)
		}
		groups := api.Group("/service-groups")
		{
			res := ctl.ServiceGroups()
			groups.GET("", res.List)
			groups.POST("", res.Create)
			groups.GET("/:id", res.Get)
			groups.PUT("/:id", res.Update)
			groups.DELETE("/:id", res.Delete)
		}
		stylists := api.Group("/stylists")
		{
			res := ctl.Stylists()
			stylists.GET("", res.List)
			stylists.POST("", res.Create)
			stylists.GET("/:id", res.Get)
			stylists.PUT("/:id", res.Update)
			stylists.DELETE("/:id", res.Delete)
		}

		// Analytics routes
		analytics := api.Group("/analytics")
		{
			analytics.GET("/summary", ctl.GetSummary)
			analytics.GET("/services", ctl.GetServiceDistribution)
			analytics.GET("/stylists", ctl.GetStylistStats)
			analytics.GET("/payments", ctl.GetPaymentSplit)
			analytics.GET("/stream", ctl.StreamSummary)
		}
		api.GET("/dashboard", ctl.GetDashboardOverview)
		api.GET("/clients", ctl.GetClients)

		promotions := api.Group("/promotions")
		{
			promotions.GET("/templates", ctl.GetPromotionTemplates)
			promotions.POST("/send", ctl.SendPromotion)
			promotions.GET("/log", ctl.GetPromotionLog)
		}
	}

	return r
}
