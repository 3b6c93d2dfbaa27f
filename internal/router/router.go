package router

import (
	"time"

	"garagedesk/internal/config"
	"garagedesk/internal/handler"
	"garagedesk/internal/infra"
	"garagedesk/internal/middleware"
	"garagedesk/internal/repository"
	"garagedesk/internal/service"
	"garagedesk/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	vietqr := infra.NewVietQR(cfg.VietQRBankCode, cfg.VietQRAccountNumber, cfg.VietQRAccountName)

	// ── Repositories ─────────────────────────────────────────────────────────
	profileRepo := repository.NewProfileRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	orderRepo := repository.NewRepairOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	partRepo := repository.NewSparePartRepository(db)
	laborRepo := repository.NewLaborTypeRepository(db)
	stockRepo := repository.NewStockMovementRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(profileRepo, cfg)
	customerSvc := service.NewCustomerService(customerRepo)
	vehicleSvc := service.NewVehicleService(vehicleRepo, orderRepo, paymentRepo)
	orderSvc := service.NewRepairOrderService(orderRepo, partRepo, laborRepo, stockRepo, dispatcher)
	paymentSvc := service.NewPaymentService(paymentRepo, vehicleRepo, orderRepo, rdb, vietqr)
	inventorySvc := service.NewInventoryService(partRepo, laborRepo, stockRepo)
	reportSvc := service.NewReportService(paymentRepo, orderRepo, partRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, dispatcher)
	settingsSvc := service.NewSettingsService(settingsRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	staffH := handler.NewStaffHandler(authSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	vehiclesH := handler.NewVehiclesHandler(vehicleSvc)
	ordersH := handler.NewRepairOrdersHandler(orderSvc)
	paymentsH := handler.NewPaymentsHandler(paymentSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	invoicesH := handler.NewInvoicesHandler(invoiceSvc, settingsSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Self-service payment page — no auth, tighter rate limit
	r.GET("/v1/pay/:plate", middleware.RateLimiter(30, time.Minute), paymentsH.PublicByPlate)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		anyStaff := middleware.RequireRole("admin", "employee")
		adminOnly := middleware.RequireRole("admin")

		// Customers
		v1.GET("/customers", anyStaff, customersH.List)
		v1.GET("/customers/:id", anyStaff, customersH.Get)
		v1.POST("/customers", anyStaff, customersH.Create)
		v1.PUT("/customers/:id", anyStaff, customersH.Update)
		v1.DELETE("/customers/:id", adminOnly, customersH.Delete)

		// Vehicles
		v1.GET("/vehicles", anyStaff, vehiclesH.List)
		v1.GET("/vehicles/:id", anyStaff, vehiclesH.Get)
		v1.GET("/vehicles/:id/debt", anyStaff, vehiclesH.Debt)
		v1.POST("/vehicles", anyStaff, vehiclesH.Create)
		v1.PUT("/vehicles/:id", anyStaff, vehiclesH.Update)
		v1.DELETE("/vehicles/:id", adminOnly, vehiclesH.Delete)

		// Repair orders — the kanban workflow
		v1.GET("/orders", anyStaff, ordersH.List)
		v1.GET("/orders/board", anyStaff, ordersH.Board)
		v1.GET("/orders/:id", anyStaff, ordersH.Get)
		v1.POST("/orders", anyStaff, ordersH.Create)
		v1.PUT("/orders/:id", anyStaff, ordersH.Update)
		v1.PATCH("/orders/:id/status", anyStaff, ordersH.ChangeStatus)
		v1.POST("/orders/:id/items", anyStaff, ordersH.AddItem)
		v1.DELETE("/orders/:id/items/:itemId", anyStaff, ordersH.RemoveItem)
		v1.GET("/orders/:id/invoice", anyStaff, invoicesH.GetByOrder)
		v1.GET("/orders/:id/invoice/pdf", anyStaff, invoicesH.DownloadPDF)
		v1.POST("/orders/:id/invoice/retry", adminOnly, invoicesH.Retry)

		// Payments
		v1.GET("/payments", anyStaff, paymentsH.List)
		v1.POST("/payments", anyStaff, paymentsH.Record)
		v1.DELETE("/payments/:id", adminOnly, paymentsH.Delete)

		// Spare parts — any staff can read, admin writes
		v1.GET("/parts", anyStaff, inventoryH.ListParts)
		v1.GET("/parts/low-stock", anyStaff, inventoryH.LowStock)
		v1.GET("/parts/movements", anyStaff, inventoryH.Movements)
		v1.GET("/parts/:id", anyStaff, inventoryH.GetPart)
		v1.PATCH("/parts/:id/stock", adminOnly, inventoryH.AdjustStock)
		parts := v1.Group("/parts", adminOnly)
		{
			parts.POST("", inventoryH.CreatePart)
			parts.PUT("/:id", inventoryH.UpdatePart)
			parts.DELETE("/:id", inventoryH.DeactivatePart)
			parts.PATCH("/:id/reactivate", inventoryH.ReactivatePart)
		}

		// Labor types
		v1.GET("/labor-types", anyStaff, inventoryH.ListLabor)
		labor := v1.Group("/labor-types", adminOnly)
		{
			labor.POST("", inventoryH.CreateLabor)
			labor.PUT("/:id", inventoryH.UpdateLabor)
			labor.DELETE("/:id", inventoryH.DeactivateLabor)
		}

		// Reports — admin only
		reports := v1.Group("/reports", adminOnly)
		{
			reports.GET("/sales", reportsH.Sales)
			reports.GET("/inventory", reportsH.Inventory)
		}

		// Staff management — admin only
		staff := v1.Group("/staff", adminOnly)
		{
			staff.POST("", staffH.Create)
			staff.GET("", staffH.List)
			staff.PUT("/:id", staffH.Update)
			staff.DELETE("/:id", staffH.Deactivate)
			staff.PATCH("/:id/reactivate", staffH.Reactivate)
		}

		// Shop settings — admin only
		settings := v1.Group("/settings", adminOnly)
		{
			settings.GET("", invoicesH.ListSettings)
			settings.PUT("/:key", invoicesH.SetSetting)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
