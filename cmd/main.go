package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"invoicehub/internal/caching"
	"invoicehub/internal/config"
	"invoicehub/internal/handlers"
	"invoicehub/internal/logger"
	"invoicehub/internal/metrics"
	"invoicehub/internal/middleware"
	"invoicehub/internal/repositories"
	"invoicehub/internal/services"
	"invoicehub/pkg/database"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(&logger.Config{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: "invoicehub",
	}); err != nil {
		panic(err)
	}
	defer zap.L().Sync()

	if cfg.Database.URL == "" {
		zap.L().Fatal("DATABASE_URL is required")
	}
	if cfg.JWT.Secret == "" {
		zap.L().Fatal("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	storage, err := services.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		zap.L().Fatal("Failed to initialize object storage", zap.Error(err))
	}
	if err := storage.EnsureBucketExists(ctx, cfg.Minio.Bucket); err != nil {
		zap.L().Fatal("Failed to ensure storage bucket", zap.Error(err))
	}

	// Repositories
	companyRepo := repositories.NewCompanyRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	clientRepo := repositories.NewClientRepo(pool)
	invoiceRepo := repositories.NewInvoiceRepo(pool)
	paymentRepo := repositories.NewPaymentRepo(pool)
	settingsRepo := repositories.NewSettingsRepo(pool)
	auditRepo := repositories.NewAuditLogRepo(pool)

	// Services
	authSvc := services.NewAuthService(pool, userRepo, companyRepo, cacheSvc, cfg.JWT.Secret, cfg.JWT.TokenTTL, cfg.JWT.RefreshTTL)
	clientSvc := services.NewClientService(clientRepo)
	settingsSvc := services.NewSettingsService(settingsRepo, storage, cfg.Minio.Bucket)
	invoiceSvc := services.NewInvoiceService(invoiceRepo, clientRepo, settingsSvc)
	paymentSvc := services.NewPaymentService(paymentRepo, invoiceRepo)
	dashboardSvc := services.NewDashboardService(paymentRepo)
	companySvc := services.NewCompanyService(companyRepo, clientRepo, invoiceRepo)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	clientHandlers := handlers.NewClientHandlers(clientSvc)
	invoiceHandlers := handlers.NewInvoiceHandlers(invoiceSvc)
	paymentHandlers := handlers.NewPaymentHandlers(paymentSvc)
	settingsHandlers := handlers.NewSettingsHandlers(settingsSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(dashboardSvc)
	adminHandlers := handlers.NewAdminHandlers(companySvc, auditRepo)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	auditMw := middleware.NewAuditMiddleware(auditRepo)

	metrics.Register()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(logger.Middleware())
	e.Use(metrics.Middleware())

	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)
	e.GET("/metrics", metrics.Handler())

	auth := e.Group("/api/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.GET("/me", authHandlers.Me, middleware.Auth(cfg.JWT.Secret))

	api := e.Group("/api", middleware.Auth(cfg.JWT.Secret), middleware.RequireCompanyScope(), auditMw.AuditRequest())

	api.POST("/clients", clientHandlers.CreateClient)
	api.GET("/clients", clientHandlers.GetClients)
	api.GET("/clients/:id", clientHandlers.GetClient)
	api.PUT("/clients/:id", clientHandlers.UpdateClient)
	api.DELETE("/clients/:id", clientHandlers.DeleteClient)

	api.POST("/invoices", invoiceHandlers.CreateInvoice)
	api.GET("/invoices", invoiceHandlers.GetInvoices)
	api.GET("/invoices/next-number", invoiceHandlers.NextNumber)
	api.GET("/invoices/:id", invoiceHandlers.GetInvoice)
	api.PUT("/invoices/:id", invoiceHandlers.UpdateInvoice)
	api.DELETE("/invoices/:id", invoiceHandlers.DeleteInvoice)
	api.GET("/invoices/:id/pdf", invoiceHandlers.GetInvoicePDF)

	api.POST("/payments", paymentHandlers.CreatePayment)
	api.GET("/payments", paymentHandlers.GetPayments)

	api.GET("/settings", settingsHandlers.GetSettings)
	api.PUT("/settings", settingsHandlers.UpdateSettings)
	api.POST("/settings/logo", settingsHandlers.UploadLogo)

	api.GET("/dashboard/stats", dashboardHandlers.GetStats)

	admin := e.Group("/api/admin", middleware.Auth(cfg.JWT.Secret), middleware.RequireSuperAdmin())
	admin.POST("/companies", adminHandlers.CreateCompany)
	admin.GET("/companies", adminHandlers.GetCompanies)
	admin.GET("/companies/:id", adminHandlers.GetCompany)
	admin.PUT("/companies/:id", adminHandlers.UpdateCompany)
	admin.DELETE("/companies/:id", adminHandlers.DeleteCompany)
	admin.GET("/companies/:id/audit-logs", adminHandlers.GetAuditLogs)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Server stopped", zap.Error(err))
		}
	}()
	zap.L().Info("Server started", zap.String("port", cfg.Server.Port))

	<-ctx.Done()
	zap.L().Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Graceful shutdown failed", zap.Error(err))
	}
}
