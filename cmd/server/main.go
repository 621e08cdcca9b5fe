package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"car_rental/internal/cache"
	"car_rental/internal/config"
	"car_rental/internal/handler"
	"car_rental/internal/logger"
	"car_rental/internal/middleware"
	"car_rental/internal/repository"
	"car_rental/internal/service"
	"car_rental/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog := logger.New(cfg.ServiceName, cfg.LogLevel)

	// Ensure uploads directory exists
	if err := os.MkdirAll(filepath.Join(cfg.UploadsDir, "documents"), os.ModePerm); err != nil {
		fatal(appLog, "failed to create uploads directory", err, logger.String("dir", cfg.UploadsDir))
	}
	appLog.Info("uploads directory ready", logger.String("dir", cfg.UploadsDir))

	// --- Database Connection ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := config.ConnectDB(ctx, cfg.DB, appLog)
	if err != nil {
		fatal(appLog, "failed to connect to database", err)
	}
	defer dbPool.Close()

	if err := config.RunMigrations(cfg.DB, appLog); err != nil {
		dbPool.Close()
		fatal(appLog, "failed to migrate database", err)
	}

	// --- Car cache ---
	carCache := cache.NewNoopCarCache()
	if cfg.RedisAddr != "" {
		rdb := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			appLog.Warning("redis unreachable, car cache disabled", logger.String("addr", cfg.RedisAddr), logger.Error(err))
		} else {
			carCache = cache.NewRedisCarCache(rdb, cfg.CarCacheTTL)
			appLog.Info("car cache enabled", logger.String("addr", cfg.RedisAddr), logger.Duration("ttl", cfg.CarCacheTTL))
		}
	}

	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpirationHours)

	// --- Repositories ---
	profileRepo := repository.NewProfileRepository(dbPool)
	carRepo := repository.NewCarRepository(dbPool)
	inquiryRepo := repository.NewInquiryRepository(dbPool)
	notificationRepo := repository.NewNotificationRepository(dbPool)
	documentRepo := repository.NewDocumentRepository(dbPool)
	bookingRepo := repository.NewBookingRepository(dbPool)
	branchRepo := repository.NewBranchRepository(dbPool)
	expenseRepo := repository.NewExpenseRepository(dbPool)

	// --- Services ---
	guard := service.NewAccessGuard(profileRepo)
	notificationService := service.NewNotificationService(notificationRepo, profileRepo, appLog.With(logger.String("component", "notifications")))
	authService := service.NewAuthService(profileRepo, jwtUtil, appLog)
	carService := service.NewCarService(carRepo, carCache, appLog)
	inquiryService := service.NewInquiryService(inquiryRepo, carRepo, guard, notificationService)
	documentService := service.NewDocumentService(documentRepo, guard, notificationService, cfg.UploadsDir, appLog)
	bookingService := service.NewBookingService(bookingRepo, carRepo, inquiryRepo, guard, notificationService)
	branchService := service.NewBranchService(branchRepo)
	expenseService := service.NewExpenseService(expenseRepo)

	// --- Router ---
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(appLog),
		middleware.MetricsMiddleware(),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins),
	)

	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)
	adminMW := middleware.AdminMiddleware(guard)

	api := router.Group("/api")
	handler.NewAuthHandler(authService, appLog).RegisterAuthRoutes(api, jwtAuthMW)
	handler.NewCarHandler(carService, appLog).RegisterCarRoutes(api, jwtAuthMW, adminMW)
	handler.NewInquiryHandler(inquiryService, appLog).RegisterInquiryRoutes(api, jwtAuthMW)
	handler.NewNotificationHandler(notificationService, appLog).RegisterNotificationRoutes(api, jwtAuthMW)
	handler.NewDocumentHandler(documentService, appLog).RegisterDocumentRoutes(api, jwtAuthMW)
	handler.NewBookingHandler(bookingService, appLog).RegisterBookingRoutes(api, jwtAuthMW)
	handler.NewBranchHandler(branchService, appLog).RegisterBranchRoutes(api, jwtAuthMW, adminMW)
	handler.NewExpenseHandler(expenseService, appLog).RegisterExpenseRoutes(api, jwtAuthMW, adminMW)

	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info("server starting", logger.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(appLog, "listen failed", err, logger.String("port", cfg.ServerPort))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	appLog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("server forced to shutdown", logger.Error(err))
	}

	appLog.Info("server exiting")
}

var (
	osExit = os.Exit
	exit   = osExit
)

// fatal logs a startup failure and exits; deferred cleanup does not run
func fatal(l logger.ILogger, msg string, err error, fields ...logger.Field) {
	l.Error(msg, append(fields, logger.Error(err))...)
	exit(1)
}
