package routes

import (
	"net/http"

	"github.com/chalkboard-id/chalkboard-api/internal/config"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	domainRepo "github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/handler"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/middleware"
	"github.com/chalkboard-id/chalkboard-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Session  *handler.SessionHandler
	FnbOrder *handler.FnbOrderHandler
	Payment  *handler.PaymentHandler
	Table    *handler.TableHandler
	Pricing  *handler.PricingHandler
	Staff    *handler.StaffHandler
	Menu     *handler.MenuHandler
	Settings *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	// RateLimiter is created from Cfg.RateLimit when nil
	RateLimiter *middleware.UserRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := deps.RateLimiter
		if rateLimiter == nil {
			rateLimiter = middleware.NewUserRateLimiter(middleware.RateLimiterConfigFrom(deps.Cfg.RateLimit))
		}
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/profile", h.Auth.GetProfile)

	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		TTL:  deps.Cfg.Idempotency.TTL,
	})
	adminOnly := middleware.RequireRole(enum.UserRoleAdmin)

	registerSessionRoutes(protected, h, idempotent)
	registerFnbOrderRoutes(protected, h, idempotent)
	registerPaymentRoutes(protected, h)
	registerTableRoutes(protected, h, adminOnly)
	registerPricingRoutes(protected, h, adminOnly)
	registerStaffRoutes(protected, h, adminOnly)
	registerMenuRoutes(protected, h, adminOnly)
	registerSettingsRoutes(protected, h, adminOnly)
}

func registerSessionRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	sessions := protected.Group("/sessions")
	{
		sessions.GET("", h.Session.List)
		sessions.POST("", idempotent, h.Session.Start)
		sessions.GET("/active", h.Session.ListActive)
		sessions.GET("/:id", h.Session.Get)
		sessions.POST("/:id/move", h.Session.Move)
		sessions.PUT("/:id/duration", h.Session.UpdateDuration)
		sessions.POST("/:id/recalculate", h.Session.Recalculate)
		sessions.POST("/:id/end", idempotent, h.Session.End)
		sessions.POST("/:id/cancel", h.Session.Cancel)
		sessions.PUT("/:id/rating", h.Session.Rate)
	}
}

func registerFnbOrderRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	orders := protected.Group("/fnb-orders")
	{
		orders.GET("", h.FnbOrder.List)
		orders.POST("", idempotent, h.FnbOrder.Create)
		orders.GET("/drafts", h.FnbOrder.ListDrafts)
		orders.POST("/checkout", idempotent, h.FnbOrder.Checkout)
		orders.GET("/:id", h.FnbOrder.Get)
		orders.PUT("/:id", h.FnbOrder.UpdateDraft)
		orders.POST("/:id/cancel", h.FnbOrder.CancelDraft)
		orders.POST("/:id/assign-table", idempotent, h.FnbOrder.AssignTable)
		orders.POST("/:id/assign-transaction", idempotent, h.FnbOrder.AssignTransaction)
	}
}

func registerPaymentRoutes(protected *gin.RouterGroup, h *Handlers) {
	payments := protected.Group("/payments")
	{
		payments.GET("", h.Payment.List)
		payments.GET("/:id", h.Payment.Get)
		payments.PUT("/:id/status", h.Payment.UpdateStatus)
		payments.POST("/:id/print", h.Payment.PrintReceipt)
	}
}

func registerTableRoutes(protected *gin.RouterGroup, h *Handlers, adminOnly gin.HandlerFunc) {
	tables := protected.Group("/tables")
	{
		tables.GET("", h.Table.List)
		tables.GET("/:id", h.Table.Get)
		tables.POST("", adminOnly, h.Table.Create)
		tables.PUT("/:id", adminOnly, h.Table.Update)
		tables.PUT("/:id/status", adminOnly, h.Table.UpdateStatus)
		tables.PUT("/:id/active", adminOnly, h.Table.SetActive)
	}
}

func registerPricingRoutes(protected *gin.RouterGroup, h *Handlers, adminOnly gin.HandlerFunc) {
	packages := protected.Group("/pricing-packages")
	{
		packages.GET("", h.Pricing.List)
		packages.GET("/:id", h.Pricing.Get)
		packages.POST("", adminOnly, h.Pricing.Create)
		packages.PUT("/:id", adminOnly, h.Pricing.Update)
		packages.DELETE("/:id", adminOnly, h.Pricing.Delete)
	}
}

func registerStaffRoutes(protected *gin.RouterGroup, h *Handlers, adminOnly gin.HandlerFunc) {
	staff := protected.Group("/staff")
	{
		staff.GET("", h.Staff.List)
		staff.GET("/:id", h.Staff.Get)
		staff.POST("", adminOnly, h.Staff.Create)
		staff.PUT("/:id", adminOnly, h.Staff.Update)
		staff.DELETE("/:id", adminOnly, h.Staff.Delete)
	}
}

func registerMenuRoutes(protected *gin.RouterGroup, h *Handlers, adminOnly gin.HandlerFunc) {
	categories := protected.Group("/fnb-categories")
	{
		categories.GET("", h.Menu.ListCategories)
		categories.GET("/:id", h.Menu.GetCategory)
		categories.POST("", adminOnly, h.Menu.CreateCategory)
		categories.PUT("/:id", adminOnly, h.Menu.UpdateCategory)
		categories.DELETE("/:id", adminOnly, h.Menu.DeleteCategory)
	}

	items := protected.Group("/fnb-items")
	{
		items.GET("", h.Menu.ListItems)
		items.GET("/low-stock", h.Menu.LowStock)
		items.GET("/:id", h.Menu.GetItem)
		items.POST("", adminOnly, h.Menu.CreateItem)
		items.PUT("/:id", adminOnly, h.Menu.UpdateItem)
		items.DELETE("/:id", adminOnly, h.Menu.DeleteItem)
		items.POST("/:id/restock", adminOnly, h.Menu.Restock)
	}
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers, adminOnly gin.HandlerFunc) {
	settings := protected.Group("/settings")
	{
		settings.GET("", h.Settings.List)
		settings.GET("/tax", h.Settings.GetTax)
		settings.PUT("/tax", adminOnly, h.Settings.UpdateTax)
		settings.GET("/:key", h.Settings.Get)
		settings.PUT("/:key", adminOnly, h.Settings.Set)
	}
}
