package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"

	"flowmarine/internal/caching"
	"flowmarine/internal/handlers"
	"flowmarine/internal/jobs"
	"flowmarine/internal/jobs/background"
	"flowmarine/internal/middleware"
	"flowmarine/internal/models"
	"flowmarine/internal/repositories"
	"flowmarine/internal/services"
	"flowmarine/pkg/database"
)

const version = "1.0.0"

const documentBucket = "flowmarine-rfq-documents"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379" // Default Redis address
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0 // Default DB
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000" // Default MinIO endpoint
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	// Initialize document storage
	documentSvc, err := services.NewDocumentService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize document storage: %v", err)
	}
	if err := documentSvc.EnsureBucketExists(context.Background(), documentBucket); err != nil {
		log.Fatalf("Failed to ensure document bucket: %v", err)
	}

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	vesselRepo := repositories.NewVesselRepo(pool)
	vendorRepo := repositories.NewVendorRepo(pool)
	requisitionRepo := repositories.NewRequisitionRepo(pool)
	rfqRepo := repositories.NewRFQRepo(pool)
	rfqVendorRepo := repositories.NewRFQVendorRepo(pool)
	quoteRepo := repositories.NewQuoteRepo(pool)
	certificateRepo := repositories.NewCertificateRepo(pool)
	notificationRepo := repositories.NewNotificationRepo(pool)
	auditLogRepo := repositories.NewAuditLogsRepo(pool)
	txRunner := repositories.NewTxRunner(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	auditSvc := services.NewAuditLogsService(auditLogRepo)
	notificationSvc := services.NewNotificationService(notificationRepo, services.NewLogEmailSender())
	authSvc := services.NewAuthService(userRepo, cacheSvc, jwtSecret, 15*time.Minute, 7*24*time.Hour)
	requisitionSvc := services.NewRequisitionService(requisitionRepo, vesselRepo, auditSvc)
	vendorSvc := services.NewVendorService(vendorRepo, auditSvc, cacheSvc)
	rfqSvc := services.NewRFQService(txRunner, rfqRepo, requisitionRepo, rfqVendorRepo, vendorRepo, vesselRepo, quoteRepo, auditSvc, notificationSvc, cacheSvc)
	quoteSvc := services.NewQuoteService(quoteRepo, rfqRepo, rfqVendorRepo, auditSvc)
	complianceSvc := services.NewComplianceService(vesselRepo, certificateRepo, notificationSvc, cacheSvc)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	requisitionHandlers := handlers.NewRequisitionHandlers(requisitionSvc)
	rfqHandlers := handlers.NewRFQHandlers(rfqSvc)
	vendorHandlers := handlers.NewVendorHandlers(vendorSvc)
	quoteHandlers := handlers.NewQuoteHandlers(quoteSvc)
	complianceHandlers := handlers.NewComplianceHandlers(complianceSvc)
	auditLogHandlers := handlers.NewAuditLogsHandlers(auditSvc)
	documentHandlers := handlers.NewDocumentHandlers(documentSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	deadlineSvc := jobs.NewDeadlineSweepService(rfqRepo, quoteRepo, notificationSvc)
	scheduler := background.NewJobScheduler(notificationSvc, complianceSvc, deadlineSvc)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/metrics", healthHandlers.GetMetrics)

	// API routes
	versionMiddleware := middleware.NewVersionMiddleware()
	v1 := e.Group("/v1")
	v1.Use(versionMiddleware.VersionHeader("v1"))

	// Authentication routes (no JWT required, brute-force limited)
	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(cacheSvc, 10, time.Minute))
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)

	// Protected routes (require JWT)
	protected := v1.Group("")
	protected.Use(middleware.JWTMiddleware(jwtSecret))

	crewUp := middleware.RequireRole(models.RoleCrew, models.RoleProcurementOfficer, models.RoleSuperintendent)
	procurement := middleware.RequireRole(models.RoleProcurementOfficer)
	superintendent := middleware.RequireRole(models.RoleSuperintendent)

	// Requisition routes
	protected.POST("/requisitions", requisitionHandlers.CreateRequisition, crewUp)
	protected.GET("/requisitions", requisitionHandlers.ListRequisitions, crewUp)
	protected.GET("/requisitions/:id", requisitionHandlers.GetRequisition, crewUp)
	protected.POST("/requisitions/:id/submit", requisitionHandlers.SubmitRequisition, crewUp)
	protected.POST("/requisitions/:id/approve", requisitionHandlers.ApproveRequisition, superintendent)
	protected.POST("/requisitions/:id/reject", requisitionHandlers.RejectRequisition, superintendent)

	// RFQ routes
	protected.POST("/rfqs", rfqHandlers.CreateRFQ, procurement)
	protected.GET("/rfqs", rfqHandlers.ListRFQs, crewUp)
	protected.GET("/rfqs/:id", rfqHandlers.GetRFQ, crewUp)
	protected.PUT("/rfqs/:id", rfqHandlers.UpdateRFQ, procurement)
	protected.POST("/rfqs/:id/select-vendors", rfqHandlers.SelectVendors, procurement)
	protected.POST("/rfqs/:id/distribute", rfqHandlers.DistributeRFQ, procurement)
	protected.POST("/rfqs/:id/cancel", rfqHandlers.CancelRFQ, procurement)

	// Quote routes
	protected.POST("/quotes", quoteHandlers.SubmitQuote, procurement)
	protected.GET("/rfqs/:id/quotes", quoteHandlers.ListQuotesByRFQ, crewUp)
	protected.GET("/quotes/:id", quoteHandlers.GetQuote, crewUp)
	protected.POST("/quotes/:id/accept", quoteHandlers.AcceptQuote, procurement)
	protected.POST("/quotes/:id/reject", quoteHandlers.RejectQuote, procurement)

	// Vendor routes
	protected.GET("/vendors", vendorHandlers.ListVendors, crewUp)
	protected.POST("/vendors", vendorHandlers.CreateVendor, procurement)
	protected.GET("/vendors/:id", vendorHandlers.GetVendor, crewUp)
	protected.PUT("/vendors/:id", vendorHandlers.UpdateVendor, procurement)
	protected.DELETE("/vendors/:id", vendorHandlers.DeleteVendor, superintendent)

	// Document routes
	protected.POST("/rfqs/:id/documents", documentHandlers.UploadDocument, procurement)
	protected.GET("/rfqs/:id/documents/:name", documentHandlers.GetDocumentURL, crewUp)
	protected.DELETE("/rfqs/:id/documents/:name", documentHandlers.DeleteDocument, procurement)

	// Compliance routes
	protected.GET("/vessels/:id/compliance", complianceHandlers.GetVesselReport, crewUp)
	protected.GET("/certificates/expiring", complianceHandlers.ListExpiringCertificates, superintendent)

	// Audit routes
	protected.GET("/audit-logs", auditLogHandlers.ListAuditLogs, superintendent)
	protected.GET("/audit-logs/:resource/:id", auditLogHandlers.GetResourceHistory, superintendent)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	go func() {
		log.Printf("FlowMarine server v%s starting on port %d", version, port)
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Wait for interrupt, then drain
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := scheduler.Stop(); err != nil {
		log.Printf("Failed to stop job scheduler: %v", err)
	}
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Printf("Server stopped cleanly")
}
