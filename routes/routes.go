package routes

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookstore/controllers"
	"bookstore/middleware"
	"bookstore/services"
)

// Deps is everything the HTTP surface needs. Ping may be nil, in which case
// /health always reports ok.
type Deps struct {
	Auth        *services.AuthService
	Books       *services.BookService
	Orders      *services.OrderService
	Stats       *services.StatsService
	Ping        func(ctx context.Context) error
	CORSOrigins []string
	Log         *zap.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	log := d.Log.Sugar()

	r.Use(middleware.Recovery(d.Log), middleware.RequestLogger(d.Log))
	r.Use(cors.New(corsConfig(d.CORSOrigins)))

	authCtl := controllers.NewAuthController(d.Auth, log)
	bookCtl := controllers.NewBookController(d.Books, log)
	orderCtl := controllers.NewOrderController(d.Orders, log)
	adminCtl := controllers.NewAdminController(d.Stats, log)

	ping := d.Ping
	if ping == nil {
		ping = func(context.Context) error { return nil }
	}
	r.GET("/health", controllers.Health(ping, log))

	requireAuth := middleware.AuthMiddleware(d.Auth)
	requireAdmin := middleware.AdminMiddleware()

	api := r.Group("/api")
	{
		books := api.Group("/books")
		{
			books.GET("", bookCtl.GetBooks)
			books.GET("/:id", bookCtl.GetBook)

			admin := books.Group("/", requireAuth, requireAdmin)
			{
				admin.POST("/create-book", bookCtl.CreateBook)
				admin.PUT("/update-book/:id", bookCtl.UpdateBook)
				admin.DELETE("/delete-book/:id", bookCtl.DeleteBook)
			}
		}

		orders := api.Group("/orders")
		{
			orders.POST("/create-order", orderCtl.CreateOrder)
			orders.GET("/:email", orderCtl.GetOrdersByEmail)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/admin", authCtl.AdminLogin)
			auth.POST("/logout", requireAuth, authCtl.Logout)
		}

		api.GET("/admin/get-stats", requireAuth, requireAdmin, adminCtl.GetStats)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
