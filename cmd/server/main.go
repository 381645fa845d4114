package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dealership/internal/config"
	"dealership/internal/handler"
	"dealership/internal/logger"
	"dealership/internal/middleware"
	"dealership/internal/repository"
	"dealership/internal/service"
	"dealership/internal/utils"
	"dealership/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const tokenExpiration = 24 * time.Hour

func main() {
	log := logger.New(os.Getenv("LOG_LEVEL"))
	defer log.Sync()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, relying on environment variables")
	}

	// --- Configuration ---
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatal("failed to load DB config", zap.Error(err))
	}
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatal("failed to load app config", zap.Error(err))
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(dbCfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	if err := config.AutoMigrate(dbPool); err != nil {
		log.Fatal("failed to auto-migrate database", zap.Error(err))
	}

	// --- Utilities and Validators ---
	jwtUtil := utils.NewJWTUtil(appCfg.TokenSecret, tokenExpiration)
	carValidator := validation.NewCarValidator(nil)
	customerValidator := validation.NewCustomerValidator(nil)

	// --- Repositories ---
	carRepo := repository.NewCarRepository(dbPool)
	customerRepo := repository.NewCustomerRepository(dbPool)
	userRepo := repository.NewUserRepository(dbPool)

	// --- Services ---
	carService := service.NewCarService(carRepo)
	customerService := service.NewCustomerService(customerRepo)
	userService := service.NewUserService(userRepo, jwtUtil)

	// --- Handlers ---
	carHandler := handler.NewCarHandler(carService, carValidator, log)
	customerHandler := handler.NewCustomerHandler(customerService, customerValidator, log)
	userHandler := handler.NewUserHandler(userService, appCfg.CookieName, log)

	// --- Router ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))

	authMW := middleware.CookieAuthMiddleware(jwtUtil, appCfg.CookieName)

	root := router.Group("/")
	carHandler.RegisterCarRoutes(root, authMW)
	customerHandler.RegisterCustomerRoutes(root, authMW)
	userHandler.RegisterUserRoutes(root, authMW)

	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + appCfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Info("server starting", zap.String("port", appCfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exiting")
}
