package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	activityapp "github.com/coldpitch/backend/internal/application/activity"
	authapp "github.com/coldpitch/backend/internal/application/auth"
	campaignapp "github.com/coldpitch/backend/internal/application/campaign"
	clientapp "github.com/coldpitch/backend/internal/application/client"
	invoiceapp "github.com/coldpitch/backend/internal/application/invoice"
	prospectapp "github.com/coldpitch/backend/internal/application/prospect"
	settingsapp "github.com/coldpitch/backend/internal/application/settings"
	staffapp "github.com/coldpitch/backend/internal/application/staff"
	"github.com/coldpitch/backend/internal/infrastructure/auth"
	"github.com/coldpitch/backend/internal/infrastructure/config"
	"github.com/coldpitch/backend/internal/infrastructure/email"
	"github.com/coldpitch/backend/internal/infrastructure/event"
	"github.com/coldpitch/backend/internal/infrastructure/logger"
	"github.com/coldpitch/backend/internal/infrastructure/persistence"
	"github.com/coldpitch/backend/internal/infrastructure/printing"
	"github.com/coldpitch/backend/internal/infrastructure/scheduler"
	"github.com/coldpitch/backend/internal/infrastructure/storage"
	"github.com/coldpitch/backend/internal/interfaces/http/handler"
	"github.com/coldpitch/backend/internal/interfaces/http/middleware"
	"github.com/coldpitch/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ColdPitch backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Route GORM SQL logs through zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	prospectRepo := persistence.NewGormProspectRepository(db.DB)
	campaignRepo := persistence.NewGormCampaignRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	staffRepo := persistence.NewGormStaffRepository(db.DB)
	authUserRepo := persistence.NewGormAuthUserRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	activityRepo := persistence.NewGormActivityLogRepository(db.DB)

	// Token infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected")
	}

	passwordHasher := auth.NewBcryptPasswordHasher()

	// Outbound email via SES. Without a sender address the send
	// endpoints report the channel as unconfigured.
	var emailSender campaignapp.EmailSender
	var credentialsMailer staffapp.CredentialsMailer
	if cfg.Email.SenderAddress != "" {
		sesSender, err := email.NewSESSender(context.Background(), cfg.Email, log)
		if err != nil {
			log.Fatal("Failed to initialize SES sender", zap.Error(err))
		}
		emailSender = sesSender
		credentialsMailer = sesSender
		log.Info("SES email sender configured",
			zap.String("sender", cfg.Email.SenderAddress),
			zap.String("region", cfg.Email.Region),
		)
	} else {
		log.Warn("Email sender not configured, campaign sends and credentials emails are disabled")
	}

	// Object storage for CSV export archives, best-effort
	var exportArchiver prospectapp.ExportArchiver
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Warn("Object storage unavailable, export archiving disabled", zap.Error(err))
		} else {
			exportArchiver = s3Storage
			log.Info("Export archive storage configured", zap.String("bucket", cfg.Storage.Bucket))
		}
	}

	// Invoice PDF rendering via headless Chrome
	var pdfRenderer invoiceapp.PDFRenderer
	if cfg.PDF.Enabled {
		chromeRenderer := printing.NewChromedpRenderer(cfg.PDF, log)
		defer chromeRenderer.Close()
		pdfRenderer = chromeRenderer
		log.Info("PDF renderer configured")
	}

	// Event bus with the audit trail recorder subscribed to all events
	eventBus := event.NewInMemoryEventBus(log)
	recorder := activityapp.NewRecorder(activityRepo, staffRepo, log)
	eventBus.Subscribe(recorder)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Application services
	prospectService := prospectapp.NewProspectService(prospectRepo, eventBus)
	importExportService := prospectapp.NewImportExportService(prospectRepo, eventBus, exportArchiver, log)
	campaignService := campaignapp.NewCampaignService(campaignRepo, prospectRepo, emailSender, eventBus, log)
	campaignService.SetSendConcurrency(cfg.Email.SendConcurrency)
	invoiceService := invoiceapp.NewInvoiceService(invoiceRepo, eventBus, pdfRenderer, log)
	clientService := clientapp.NewClientService(clientRepo, projectRepo, eventBus)
	staffService := staffapp.NewStaffService(staffRepo, authUserRepo, passwordHasher, credentialsMailer, eventBus, log)
	authService := authapp.NewAuthService(authUserRepo, staffRepo, jwtService, passwordHasher, blacklist, log)
	settingsService := settingsapp.NewSettingsService(settingsRepo)
	activityService := activityapp.NewActivityService(activityRepo)

	// Ensure an admin account exists. There are no default
	// credentials; without operator-supplied ones nobody can log in
	// until bootstrap is configured.
	if cfg.Bootstrap.AdminEmail != "" && cfg.Bootstrap.AdminPassword != "" {
		bootstrapCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := staffService.BootstrapAdmin(bootstrapCtx, cfg.Bootstrap.AdminName, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword)
		cancel()
		if err != nil {
			log.Fatal("Admin bootstrap failed", zap.Error(err))
		}
		log.Info("Admin bootstrap complete", zap.String("email", cfg.Bootstrap.AdminEmail))
	} else {
		log.Warn("Admin bootstrap not configured, no admin account is created")
	}

	// Background sweeps: overdue invoices, overdue renewals, audit
	// trail retention
	if cfg.Jobs.Enabled {
		sweeper := scheduler.NewSweepScheduler(invoiceService, clientService, activityService, cfg.Jobs, log)
		sweeper.Start(context.Background())
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := sweeper.Stop(stopCtx); err != nil {
				log.Error("Error stopping sweep scheduler", zap.Error(err))
			}
		}()
		log.Info("Sweep scheduler started", zap.Duration("interval", cfg.Jobs.SweepInterval))
	}

	// HTTP handlers
	healthHdl := handler.NewHealthHandler(version)
	authHdl := handler.NewAuthHandler(authService, cfg.Cookie)
	prospectHdl := handler.NewProspectHandler(prospectService, importExportService)
	campaignHdl := handler.NewCampaignHandler(campaignService)
	invoiceHdl := handler.NewInvoiceHandler(invoiceService)
	clientHdl := handler.NewClientHandler(clientService)
	staffHdl := handler.NewStaffHandler(staffService)
	settingsHdl := handler.NewSettingsHandler(settingsService)
	activityHdl := handler.NewActivityHandler(activityService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health endpoints, outside API versioning and authentication
	engine.GET("/health", healthHdl.Health)
	engine.GET("/ping", healthHdl.Ping)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Auth routes: login and refresh are public, the rest require a
	// valid token. A stricter rate limit guards credential endpoints.
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.RateLimit(authLimiter))
	}
	authRoutes.POST("/login", authHdl.Login)
	authRoutes.POST("/refresh", authHdl.RefreshToken)
	authRoutes.POST("/logout", authHdl.Logout)
	authRoutes.GET("/me", authHdl.GetCurrentUser)
	authRoutes.PUT("/password", authHdl.ChangePassword)

	// Prospect funnel
	prospectRoutes := router.NewDomainGroup("prospects", "/prospects")
	prospectRoutes.POST("", prospectHdl.Create)
	prospectRoutes.GET("", prospectHdl.List)
	prospectRoutes.GET("/funnel", prospectHdl.FunnelCounts)
	prospectRoutes.POST("/import", prospectHdl.Import)
	prospectRoutes.GET("/export", prospectHdl.Export)
	prospectRoutes.GET("/:id", prospectHdl.Get)
	prospectRoutes.PUT("/:id", prospectHdl.Update)
	prospectRoutes.PATCH("/:id/status", prospectHdl.ChangeStatus)
	prospectRoutes.DELETE("/:id", prospectHdl.Delete)

	// Email campaigns
	campaignRoutes := router.NewDomainGroup("campaigns", "/campaigns")
	campaignRoutes.POST("", campaignHdl.Create)
	campaignRoutes.GET("", campaignHdl.List)
	campaignRoutes.GET("/:id", campaignHdl.Get)
	campaignRoutes.PUT("/:id", campaignHdl.Update)
	campaignRoutes.DELETE("/:id", campaignHdl.Delete)
	campaignRoutes.POST("/:id/send", campaignHdl.Send)
	campaignRoutes.POST("/:id/pause", campaignHdl.Pause)
	campaignRoutes.POST("/:id/resume", campaignHdl.Resume)
	campaignRoutes.POST("/:id/complete", campaignHdl.Complete)
	campaignRoutes.POST("/:id/engagement", campaignHdl.RecordEngagement)
	campaignRoutes.GET("/:id/stats", campaignHdl.Stats)

	// Invoicing
	invoiceRoutes := router.NewDomainGroup("invoices", "/invoices")
	invoiceRoutes.POST("", invoiceHdl.Create)
	invoiceRoutes.GET("", invoiceHdl.List)
	invoiceRoutes.GET("/number/:number", invoiceHdl.GetByNumber)
	invoiceRoutes.GET("/client/:clientId", invoiceHdl.ListByClient)
	invoiceRoutes.GET("/:id", invoiceHdl.Get)
	invoiceRoutes.PUT("/:id", invoiceHdl.Update)
	invoiceRoutes.DELETE("/:id", invoiceHdl.Delete)
	invoiceRoutes.POST("/:id/payments", invoiceHdl.RecordPayment)
	invoiceRoutes.POST("/:id/send", invoiceHdl.MarkSent)
	invoiceRoutes.POST("/:id/cancel", invoiceHdl.Cancel)
	invoiceRoutes.GET("/:id/pdf", invoiceHdl.DownloadPDF)

	// Clients and recurring projects
	clientRoutes := router.NewDomainGroup("clients", "/clients")
	clientRoutes.POST("", clientHdl.Create)
	clientRoutes.GET("", clientHdl.List)
	clientRoutes.GET("/:id", clientHdl.Get)
	clientRoutes.PUT("/:id", clientHdl.Update)
	clientRoutes.DELETE("/:id", clientHdl.Delete)
	clientRoutes.POST("/:id/deactivate", clientHdl.Deactivate)
	clientRoutes.POST("/:id/reactivate", clientHdl.Reactivate)
	clientRoutes.GET("/:id/projects", clientHdl.ListProjects)

	projectRoutes := router.NewDomainGroup("projects", "/projects")
	projectRoutes.POST("", clientHdl.CreateProject)
	projectRoutes.GET("/renewals/upcoming", clientHdl.UpcomingRenewals)
	projectRoutes.GET("/renewals/stats", clientHdl.RenewalStats)
	projectRoutes.GET("/:id", clientHdl.GetProject)
	projectRoutes.PUT("/:id", clientHdl.UpdateProject)
	projectRoutes.DELETE("/:id", clientHdl.DeleteProject)
	projectRoutes.POST("/:id/renewal/paid", clientHdl.MarkRenewalPaid)
	projectRoutes.POST("/:id/deactivate", clientHdl.DeactivateProject)

	// Staff administration. Destructive account operations are
	// restricted to admins.
	staffRoutes := router.NewDomainGroup("staff", "/staff")
	staffRoutes.POST("", staffHdl.Create)
	staffRoutes.GET("", staffHdl.List)
	staffRoutes.GET("/:id", staffHdl.Get)
	staffRoutes.PUT("/:id", staffHdl.Update)
	staffRoutes.POST("/:id/suspend", staffHdl.Suspend)
	staffRoutes.POST("/:id/activate", staffHdl.Activate)
	staffRoutes.GET("/:id/activity", activityHdl.ListByStaff)
	staffRoutes.DELETE("/:id", middleware.RequireAdmin(), staffHdl.Delete)

	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.Use(middleware.RequireAdmin())
	adminRoutes.DELETE("/auth-users/:id", staffHdl.DeleteAuthUser)
	adminRoutes.POST("/credentials-email", staffHdl.SendCredentialsEmail)

	// Workspace settings
	settingsRoutes := router.NewDomainGroup("settings", "/settings")
	settingsRoutes.GET("", settingsHdl.Get)
	settingsRoutes.PUT("/profile", settingsHdl.UpdateProfile)
	settingsRoutes.PUT("/notifications", settingsHdl.UpdateNotifications)
	settingsRoutes.PUT("/team", settingsHdl.UpdateTeam)

	// Audit trail
	activityRoutes := router.NewDomainGroup("activity", "/activity")
	activityRoutes.GET("", activityHdl.List)

	r.Register(authRoutes).
		Register(prospectRoutes).
		Register(campaignRoutes).
		Register(invoiceRoutes).
		Register(clientRoutes).
		Register(projectRoutes).
		Register(staffRoutes).
		Register(adminRoutes).
		Register(settingsRoutes).
		Register(activityRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
